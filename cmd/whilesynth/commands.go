package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/whilesynth/internal/cache"
	"github.com/aledsdavies/whilesynth/internal/diagnose"
	"github.com/aledsdavies/whilesynth/internal/driver"
	"github.com/aledsdavies/whilesynth/internal/request"
	"github.com/aledsdavies/whilesynth/internal/smt"
	"github.com/aledsdavies/whilesynth/pkg/whilelang"
)

func newVarsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "vars",
		Short: "List the variable names appearing in a program",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(file, args)
			if err != nil {
				return err
			}
			vars, err := whilelang.GetVars(source)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(vars, " "))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "program file (default: read source from args or stdin)")
	return cmd
}

func newSynthCmd() *cobra.Command {
	var specPath string
	var useCache bool
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Fill a program's holes to satisfy a JSON synthesis request",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readSpec(specPath)
			if err != nil {
				return err
			}
			req, err := request.Parse(raw)
			if err != nil {
				return err
			}

			var store *cache.Store
			key := cache.NewKey(req.Source, req.Inputs, req.Outputs, req.WithExprs)
			if useCache {
				store, err = openCache()
				if err != nil {
					return err
				}
				if res, err := store.Get(key); err == nil {
					fmt.Fprintln(cmd.OutOrStdout(), renderResult(res))
					return nil
				} else if !errors.Is(err, cache.ErrMiss) {
					newLogger().Warn("synth: cache read failed, recomputing", "error", err)
				}
			}

			eng, err := buildEngine()
			if err != nil {
				return err
			}
			result, err := eng.Synthesize(cmd.Context(), req.Source, req.Inputs, req.Outputs, req.WithExprs)
			if err != nil {
				return reportUnsupportedSpec(err, req.Source)
			}

			if store != nil {
				res := classifyResult(result)
				if err := store.Put(key, res); err != nil {
					newLogger().Warn("synth: cache write failed", "error", err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&specPath, "spec", "", "path to the JSON synthesis request (default: stdin)")
	cmd.Flags().BoolVar(&useCache, "cache", false, "cache completed syntheses under $XDG_CACHE_HOME/whilesynth, keyed by request digest")
	return cmd
}

func openCache() (*cache.Store, error) {
	dir, err := cache.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("synth: resolving cache dir: %w", err)
	}
	return cache.Open(dir)
}

// classifyResult reconstructs the typed driver.Result that produced
// result's three-way string, so a cache entry replays the same
// Outcome (not just the raw text) on a later hit.
func classifyResult(result string) driver.Result {
	switch result {
	case driver.NoSolution.String():
		return driver.Result{Outcome: driver.NoSolution}
	case driver.Timeout.String():
		return driver.Result{Outcome: driver.Timeout}
	default:
		return driver.Result{Outcome: driver.Solved, Source: result}
	}
}

// renderResult is classifyResult's inverse: the three-way string a
// cache hit should print, matching what a live Synthesize call would
// have printed for the same Outcome.
func renderResult(res driver.Result) string {
	if res.Outcome == driver.Solved {
		return res.Source
	}
	return res.Outcome.String()
}

// reportUnsupportedSpec enriches a driver.UnsupportedSpecError with a
// "did you mean x?" suggestion drawn from the program's own variables
// (spec §7's UnsupportedSpec row), rather than surfacing the bare
// unknown-name error.
func reportUnsupportedSpec(err error, source string) error {
	var unsupported *driver.UnsupportedSpecError
	if !errors.As(err, &unsupported) {
		return err
	}
	vars, varErr := whilelang.GetVars(source)
	if varErr != nil {
		return err
	}
	return fmt.Errorf("%w (%s)", err, diagnose.UnboundVariableHint(unsupported.Name, vars))
}

func newVerifyCmd() *cobra.Command {
	var specPath string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a program against a Hoare triple, or synthesize then verify",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine()
			if err != nil {
				return err
			}
			raw, err := readSpec(specPath)
			if err != nil {
				return err
			}
			req, err := request.Parse(raw)
			if err != nil {
				return err
			}
			P, err := request.ParsePredicate(req.Pre)
			if err != nil {
				return err
			}
			Q, err := request.ParsePredicate(req.Post)
			if err != nil {
				return err
			}
			linv, err := request.ParsePredicate(req.Invariant)
			if err != nil {
				return err
			}

			source, holds, err := eng.SynthesizeAndVerify(cmd.Context(), req.Source, req.Inputs, req.Outputs, P, Q, linv, req.WithExprs)
			if err != nil {
				return reportUnsupportedSpec(err, req.Source)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%v\n", source, holds)
			return nil
		},
	}
	cmd.Flags().StringVar(&specPath, "spec", "", "path to the JSON synthesis request (default: stdin)")
	return cmd
}

func buildEngine() (*whilelang.Engine, error) {
	solver := smt.Solver(smt.NewZ3Solver(z3Path))
	if d, err := time.ParseDuration(solverTimeout); err == nil && d > 0 {
		solver = smt.WithTimeout(solver, d)
	}
	eng := whilelang.New(solver)
	eng.Logger = newLogger()
	return eng, nil
}

func readSource(file string, args []string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		return string(data), err
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	return string(data), err
}

func readSpec(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}
