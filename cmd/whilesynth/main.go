// Command whilesynth is a command-line driver for the While-language
// synthesizer and verifier. It is a reference front-end, not part of
// the library's contract: everything it does goes through
// pkg/whilelang exactly as any other caller would.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	z3Path        string
	solverTimeout string
	jsonLogs      bool
	verbose       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "whilesynth",
		Short:         "Synthesize and verify holes in While-language programs",
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&z3Path, "z3", "z3", "path to the z3 binary")
	rootCmd.PersistentFlags().StringVar(&solverTimeout, "solver-timeout", "0", "per-candidate solver timeout (e.g. \"2s\"); 0 disables it")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit structured logs as JSON instead of text")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")

	rootCmd.AddCommand(newVarsCmd(), newSynthCmd(), newVerifyCmd(), newWatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if jsonLogs {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
