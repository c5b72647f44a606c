package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-guide/internal/config"
	"github.com/jonathan/career-guide/internal/identity"
)

var (
	tokenSubject string
	tokenEmail   string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development bearer token",
	Long:  "Signs a token with JWT_SECRET for the given subject, for calling the API locally.",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "Subject (user) identifier (required)")
	tokenCmd.Flags().StringVarP(&tokenEmail, "email", "e", "", "Email claim")

	if err := tokenCmd.MarkFlagRequired("subject"); err != nil {
		panic(fmt.Sprintf("failed to mark subject flag as required: %v", err))
	}

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := identity.NewJWTVerifier(jwtCfg).Issue(tokenSubject, tokenEmail)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
