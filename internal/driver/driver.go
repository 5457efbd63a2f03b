// Package driver implements the synthesis driver (C8) of spec §4.8:
// parse, rename holes, unroll loops, then walk the candidate
// enumerator until one candidate's WP-implication query is SAT.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/aledsdavies/whilesynth/internal/config"
	"github.com/aledsdavies/whilesynth/internal/enum"
	"github.com/aledsdavies/whilesynth/internal/lang/astutil"
	"github.com/aledsdavies/whilesynth/internal/lang/parser"
	"github.com/aledsdavies/whilesynth/internal/smt"
	"github.com/aledsdavies/whilesynth/internal/synth/env"
	"github.com/aledsdavies/whilesynth/internal/wp"
)

// Outcome classifies how a synthesis run ended (spec §7's disposition
// table, minus the conditions that are Go errors instead: ParseError
// and the encoder's SyntaxError).
type Outcome int

const (
	// Solved means Source holds the completed program text.
	Solved Outcome = iota
	// NoSolution means every candidate up to the phase cap was UNSAT.
	NoSolution
	// Timeout means the enumerator's phase cap was exceeded while
	// withExprs was true.
	Timeout
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case NoSolution:
		return "solution can't be found"
	case Timeout:
		return "timeout"
	default:
		return "unknown outcome"
	}
}

// Result is the outcome of one Synthesize call.
type Result struct {
	Outcome Outcome
	Source  string // valid only when Outcome == Solved
}

// UnsupportedSpecError is returned when an input/output binding names
// a variable absent from the program (spec §7's UnsupportedSpec,
// which the spec's own table treats as "solver returns UNSAT" — we
// surface it as a distinct error instead since, unlike a genuine
// UNSAT candidate, it holds for every candidate and is worth telling
// the caller about directly rather than burning the whole phase cap).
type UnsupportedSpecError struct{ Name string }

func (e *UnsupportedSpecError) Error() string {
	return fmt.Sprintf("driver: %q is not a variable of this program", e.Name)
}

// Synthesize runs the full state machine of spec §4.8: Parsing ->
// HoleRename -> Unroll -> Enumerate -> Query -> {SatSplice,
// NextCandidate, Timeout, NoSolution}. solver is consulted once per
// candidate; a SolverException (err != nil from Check) is treated as
// UNSAT and enumeration continues, per spec §7.
func Synthesize(ctx context.Context, solver smt.Solver, cfg config.Config, source string, inputs, outputs map[string]int, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.SolverTimeout > 0 {
		solver = smt.WithTimeout(solver, cfg.SolverTimeout)
	}

	prog, err := parser.Parse(source)
	if err != nil {
		return Result{}, err
	}

	renamed, holes := astutil.FindAndReplaceHoles(prog)
	unrolled := wp.UnrollAll(renamed, cfg.UnrollDepth)

	holeSet := make(map[string]bool, len(holes))
	for _, h := range holes {
		holeSet[h] = true
	}
	var vars []string
	for _, v := range astutil.Vars(unrolled) {
		if !holeSet[v] {
			vars = append(vars, v)
		}
	}

	P := exampleConstraint(inputs)
	Q := exampleConstraint(outputs)

	logger.Debug("synthesize: starting", "vars", vars, "holes", holes, "withExprs", cfg.WithExprs)

	enumerator := enum.New(vars, holes, cfg.WithExprs, cfg.PhaseCap)
	allNames := append(append([]string{}, vars...), holes...)

	for {
		cand, ok := enumerator.Next()
		if !ok {
			if enumerator.TimedOut() {
				logger.Info("synthesize: phase cap exceeded", "cap", cfg.PhaseCap)
				return Result{Outcome: Timeout}, nil
			}
			logger.Info("synthesize: candidates exhausted")
			return Result{Outcome: NoSolution}, nil
		}

		e := env.Make(allNames)
		for hole, atom := range cand {
			e = e.Upd(hole, atom.Binding)
		}

		pTerm, err := P(e)
		if err != nil {
			return Result{}, err
		}
		wpTerm, err := wp.WP(unrolled, Q, wp.True, wp.NewFresher())(e)
		if err != nil {
			return Result{}, err
		}
		phi := smt.ForAll(vars, smt.Implies(pTerm, wpTerm))

		result, model, err := solver.Check(ctx, phi)
		if err != nil {
			logger.Warn("synthesize: solver exception on candidate, continuing", "error", err)
			continue
		}
		if result != smt.Sat {
			continue
		}

		spliced := astutil.Splice(source, holes, func(name string) (string, bool) {
			if atom, ok := cand[name]; ok {
				return atom.Render(model), false
			}
			v, ok := model.Eval(name)
			if !ok {
				return "", true
			}
			return strconv.Itoa(v), false
		})
		logger.Debug("synthesize: SAT", "phase", "candidate found")
		return Result{Outcome: Solved, Source: spliced}, nil
	}
}

// exampleConstraint builds the Predicate "conjunction of name=value
// for each (name,value) in bindings" (spec §4.8's P(e)/Q(e)).
func exampleConstraint(bindings map[string]int) wp.Predicate {
	names := make([]string, 0, len(bindings))
	for n := range bindings {
		names = append(names, n)
	}
	sort.Strings(names)
	return func(e env.Env) (smt.Term, error) {
		var terms []smt.Term
		for _, n := range names {
			term, _, ok := e.Lookup(n)
			if !ok {
				return smt.Term{}, &UnsupportedSpecError{Name: n}
			}
			terms = append(terms, smt.Eq(term, smt.Int(bindings[n])))
		}
		return smt.And(terms...), nil
	}
}
