package smt

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Result is the three-valued outcome of a solver check.
type Result int

const (
	Unknown Result = iota
	Sat
	Unsat
)

// Model maps free integer constants to their value in a satisfying
// assignment. It is only meaningful when a Check call returns Sat.
type Model map[string]int

// Eval looks up name, returning (0, false) if the model leaves it
// unconstrained — the model-extraction counterpart of the
// "unconstrained hole defaults to 0" rule (spec §4.2, §8).
func (m Model) Eval(name string) (int, bool) {
	v, ok := m[name]
	return v, ok
}

// Solver is the external SMT collaborator (spec §1, §6): given a
// closed Boolean formula, it decides satisfiability and, on Sat,
// extracts a model. Implementations are expected to be blocking and
// are called from a single goroutine at a time (spec §5).
type Solver interface {
	Check(ctx context.Context, formula Term) (Result, Model, error)
}

// WithTimeout wraps an inner Solver so every Check call is raced
// against a wall-clock deadline, per spec §5 ("implementations may
// optionally run a solver call under a wall-clock timeout and treat a
// timeout as equivalent to unknown/next candidate"). The race itself
// is an errgroup the way the pack's server-style goroutine fan-ins
// race a request against a cancellable context.
func WithTimeout(inner Solver, d time.Duration) Solver {
	return timeoutSolver{inner: inner, d: d}
}

type timeoutSolver struct {
	inner Solver
	d     time.Duration
}

func (s timeoutSolver) Check(ctx context.Context, formula Term) (Result, Model, error) {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()

	var (
		result Result
		model  Model
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, m, err := s.inner.Check(gctx, formula)
		result, model = r, m
		return err
	})
	if err := g.Wait(); err != nil {
		return Unknown, nil, err
	}
	if gctx.Err() != nil {
		return Unknown, nil, gctx.Err()
	}
	return result, model, nil
}
