package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-guide/internal/config"
	"github.com/jonathan/career-guide/internal/logger"
	"github.com/jonathan/career-guide/internal/observability"
	"github.com/jonathan/career-guide/internal/types"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Generate a career roadmap from a profile file",
	Long:  "Runs roadmap generation for a career title against a profile JSON file and prints the roadmap as JSON. A default roadmap is printed when generation fails.",
	RunE:  runRoadmap,
}

var (
	roadmapTitle   string
	roadmapProfile string
	roadmapAnswers string
	roadmapOutput  string
	roadmapVerbose bool
)

func init() {
	roadmapCmd.Flags().StringVarP(&roadmapTitle, "title", "t", "", "Career title (required)")
	roadmapCmd.Flags().StringVarP(&roadmapProfile, "profile", "p", "", "Path to profile JSON file (required)")
	roadmapCmd.Flags().StringVarP(&roadmapAnswers, "answers", "a", "", "Path to follow-up answers JSON array")
	roadmapCmd.Flags().StringVarP(&roadmapOutput, "out", "o", "", "Write the roadmap JSON to this file instead of stdout")
	roadmapCmd.Flags().BoolVarP(&roadmapVerbose, "verbose", "v", false, "Print a readable summary to stderr")

	if err := roadmapCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("failed to mark title flag as required: %v", err))
	}
	if err := roadmapCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}

	rootCmd.AddCommand(roadmapCmd)
}

func runRoadmap(cmd *cobra.Command, _ []string) error {
	title := strings.TrimSpace(roadmapTitle)
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}

	var profile types.Profile
	if err := readJSONFile(roadmapProfile, &profile); err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	var answers []types.AIAnswer
	if roadmapAnswers != "" {
		if err := readJSONFile(roadmapAnswers, &answers); err != nil {
			return fmt.Errorf("failed to read answers: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, client, err := newGuidance(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	supplemental := types.FilterAnswered(types.AnswersToQA(answers))
	roadmap := svc.CareerRoadmap(ctx, title, profile, supplemental)

	if roadmapVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintProfile(&profile)
		printer.PrintRoadmap(&roadmap)
	}

	out, err := json.MarshalIndent(roadmap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal roadmap: %w", err)
	}
	if roadmapOutput != "" {
		if err := os.WriteFile(roadmapOutput, append(out, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func readJSONFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
