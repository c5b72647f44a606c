package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-guide/internal/llm"
)

// cannedClient answers every prompt with reply, or fails with err.
type cannedClient struct {
	reply string
	err   error
	calls int
}

func (c *cannedClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	c.calls++
	return c.reply, c.err
}

func (c *cannedClient) GetModel(llm.ModelTier) string { return "test-model" }

func (c *cannedClient) Close() error { return nil }

var errProvider = errors.New("provider unavailable")

// useClient swaps the model client constructor for the duration of the test.
func useClient(t *testing.T, c llm.Client) {
	t.Helper()
	orig := newLLMClient
	newLLMClient = func(context.Context, *llm.Config, string) (llm.Client, error) { return c, nil }
	t.Cleanup(func() { newLLMClient = orig })
}

// resetFlags restores defaults so flag values do not carry between runs.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command in-process and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
