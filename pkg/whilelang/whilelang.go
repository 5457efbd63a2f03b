// Package whilelang is the public, language-neutral facade over the
// synthesizer and verifier (spec §6): GetVars, Synthesize,
// SynthesizeAndVerify, and Verify, each a thin adapter over the
// internal packages that do the actual work. A UI front-end or a CLI
// is the only intended caller; nothing in this package is reentrant
// across goroutines sharing one *Engine (spec §5).
package whilelang

import (
	"context"
	"log/slog"

	"github.com/aledsdavies/whilesynth/internal/config"
	"github.com/aledsdavies/whilesynth/internal/driver"
	"github.com/aledsdavies/whilesynth/internal/lang/astutil"
	"github.com/aledsdavies/whilesynth/internal/lang/parser"
	"github.com/aledsdavies/whilesynth/internal/smt"
	"github.com/aledsdavies/whilesynth/internal/verify"
	"github.com/aledsdavies/whilesynth/internal/wp"
)

// Engine bundles the collaborators a synthesis/verification call
// needs: an SMT solver and a configuration. It holds no per-call
// state, so one Engine may serve many sequential calls, but per spec
// §5 the caller must not invoke it re-entrantly from two goroutines.
type Engine struct {
	Solver smt.Solver
	Config config.Config
	Logger *slog.Logger
}

// New returns an Engine with spec.md's default configuration.
func New(solver smt.Solver) *Engine {
	return &Engine{Solver: solver, Config: config.Default(), Logger: slog.New(slog.DiscardHandler)}
}

// GetVars returns the names appearing in the parsed program (spec
// §6's getVars).
func GetVars(source string) ([]string, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return astutil.Vars(prog), nil
}

// Synthesize runs the full driver state machine and returns either the
// completed source, "solution can't be found", or "timeout" (spec
// §6's synthesize), matching the three-way string result exactly.
func (eng *Engine) Synthesize(ctx context.Context, source string, inputs, outputs map[string]int, withExprs bool) (string, error) {
	cfg := eng.Config
	cfg.WithExprs = withExprs
	res, err := driver.Synthesize(ctx, eng.Solver, cfg, source, inputs, outputs, eng.Logger)
	if err != nil {
		return "", err
	}
	if res.Outcome == driver.Solved {
		return res.Source, nil
	}
	return res.Outcome.String(), nil
}

// SynthesizeAndVerify runs Synthesize against (inputs, outputs), then
// re-parses the completed program and checks it against the caller's
// own (P, Q, linv) (spec §6's synthesizeAndVerify).
func (eng *Engine) SynthesizeAndVerify(ctx context.Context, source string, inputs, outputs map[string]int, P, Q, linv wp.Predicate, withExprs bool) (string, bool, error) {
	cfg := eng.Config
	cfg.WithExprs = withExprs
	res, verdict, err := verify.SynthesizeAndVerify(ctx, eng.Solver, cfg, source, inputs, outputs, P, Q, linv, eng.Logger)
	if err != nil {
		return "", false, err
	}
	if res.Outcome != driver.Solved {
		return res.Outcome.String(), false, nil
	}
	return res.Source, verdict.Holds, nil
}

// Verify checks the Hoare triple {P} source {Q} under loop invariant
// linv (spec §6's verify).
func (eng *Engine) Verify(ctx context.Context, source string, P, Q, linv wp.Predicate) (bool, smt.Model, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return false, nil, err
	}
	verdict, err := verify.Verify(ctx, eng.Solver, prog, P, Q, linv)
	if err != nil {
		return false, nil, err
	}
	return verdict.Holds, verdict.Model, nil
}
