// Package verify implements the Hoare-triple verifier (C9) of spec
// §4.9, and the synthesizeAndVerify composition of spec §6.
package verify

import (
	"context"
	"log/slog"

	"github.com/aledsdavies/whilesynth/internal/config"
	"github.com/aledsdavies/whilesynth/internal/driver"
	"github.com/aledsdavies/whilesynth/internal/lang/ast"
	"github.com/aledsdavies/whilesynth/internal/lang/astutil"
	"github.com/aledsdavies/whilesynth/internal/lang/parser"
	"github.com/aledsdavies/whilesynth/internal/smt"
	"github.com/aledsdavies/whilesynth/internal/synth/env"
	"github.com/aledsdavies/whilesynth/internal/wp"
)

// Verdict is the result of Verify: Holds reports whether {P} ast {Q}
// was discharged (linv used for every while node encountered); when
// it is false, Model is the solver's countermodel witnessing a state
// that satisfies P but not the computed weakest precondition.
type Verdict struct {
	Holds bool
	Model smt.Model
}

// Verify builds e = mk_env(vars(ast)), computes wp(ast, Q, linv)(e),
// and checks P(e) ∧ ¬wp(...)(e) for satisfiability (spec §4.9): SAT
// means the triple does not hold and the model is a countermodel;
// UNSAT means it holds.
func Verify(ctx context.Context, solver smt.Solver, stmt ast.Stmt, P, Q, linv wp.Predicate) (Verdict, error) {
	e := env.Make(astutil.Vars(stmt))

	pTerm, err := P(e)
	if err != nil {
		return Verdict{}, err
	}
	wpTerm, err := wp.WP(stmt, Q, linv, wp.NewFresher())(e)
	if err != nil {
		return Verdict{}, err
	}

	result, model, err := solver.Check(ctx, smt.And(pTerm, smt.Not(wpTerm)))
	if err != nil {
		return Verdict{}, err
	}
	if result == smt.Sat {
		return Verdict{Holds: false, Model: model}, nil
	}
	return Verdict{Holds: true}, nil
}

// SynthesizeAndVerify composes the driver with a post-hoc Hoare check
// (spec §4.9): it first runs Synthesize with (inputs, outputs) as the
// (possibly weak) example specification, then re-parses the completed
// program and verifies it against the caller's own, independently
// supplied (P, Q, linv).
func SynthesizeAndVerify(ctx context.Context, solver smt.Solver, cfg config.Config, source string, inputs, outputs map[string]int, P, Q, linv wp.Predicate, logger *slog.Logger) (driver.Result, Verdict, error) {
	res, err := driver.Synthesize(ctx, solver, cfg, source, inputs, outputs, logger)
	if err != nil || res.Outcome != driver.Solved {
		return res, Verdict{}, err
	}

	fixed, err := parser.Parse(res.Source)
	if err != nil {
		return res, Verdict{}, err
	}
	verdict, err := Verify(ctx, solver, fixed, P, Q, linv)
	return res, verdict, err
}
