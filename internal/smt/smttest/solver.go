// Package smttest provides a brute-force smt.Solver for tests that
// need a real decision procedure without shelling out to z3. It
// exhaustively searches a bounded integer range for every free
// constant, which is exact (not an approximation) as long as a
// satisfying assignment, if one exists, falls inside the range —
// true for every hand-picked range in this package's callers.
package smttest

import (
	"context"
	"fmt"

	"github.com/aledsdavies/whilesynth/internal/smt"
)

// BruteForceSolver decides a formula by trying every assignment of
// its free integer constants within [Low, High].
type BruteForceSolver struct {
	Low, High int
}

// New returns a BruteForceSolver searching [low, high] inclusive.
func New(low, high int) *BruteForceSolver {
	return &BruteForceSolver{Low: low, High: high}
}

func (s *BruteForceSolver) Check(ctx context.Context, formula smt.Term) (smt.Result, smt.Model, error) {
	vars := freeVars(formula, nil)
	model := smt.Model{}
	if search(formula, vars, 0, s.Low, s.High, model) {
		return smt.Sat, model, nil
	}
	return smt.Unsat, nil, nil
}

// search assigns vars[i:] by brute force, evaluating formula once
// every variable has a value; bound variables introduced by ForAll
// are handled inside eval itself, not here.
func search(formula smt.Term, vars []string, i, low, high int, model smt.Model) bool {
	if i == len(vars) {
		ok, err := eval(formula, model)
		return err == nil && ok
	}
	for v := low; v <= high; v++ {
		model[vars[i]] = v
		if search(formula, vars, i+1, low, high, model) {
			return true
		}
	}
	delete(model, vars[i])
	return false
}

// freeVars collects every KindIntConst name in t not already bound
// (appearing in bound), in first-occurrence order.
func freeVars(t smt.Term, bound map[string]bool) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(t smt.Term, bound map[string]bool)
	walk = func(t smt.Term, bound map[string]bool) {
		switch t.Kind {
		case smt.KindIntConst:
			if bound[t.Name] || seen[t.Name] {
				return
			}
			seen[t.Name] = true
			out = append(out, t.Name)
		case smt.KindApp:
			for _, a := range t.Args {
				walk(a, bound)
			}
		case smt.KindForAll:
			inner := map[string]bool{}
			for k, v := range bound {
				inner[k] = v
			}
			for _, v := range t.BoundVars {
				inner[v] = true
			}
			walk(*t.Body, inner)
		}
	}
	walk(t, bound)
	return out
}

func eval(t smt.Term, model smt.Model) (bool, error) {
	v, err := evalAny(t, model)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("smttest: expected boolean term, got %T", v)
	}
	return b, nil
}

// evalAny evaluates t to either an int or a bool under model,
// brute-forcing any ForAll it meets over the fixed
// [forAllLow, forAllHigh] range rather than the outer search range.
func evalAny(t smt.Term, model smt.Model) (interface{}, error) {
	switch t.Kind {
	case smt.KindIntConst:
		v, ok := model[t.Name]
		if !ok {
			return nil, fmt.Errorf("smttest: unbound constant %q", t.Name)
		}
		return v, nil
	case smt.KindIntLit:
		return t.Int, nil
	case smt.KindBoolLit:
		return t.Bool, nil
	case smt.KindForAll:
		return evalForAll(t, model)
	case smt.KindApp:
		return evalApp(t, model)
	default:
		return nil, fmt.Errorf("smttest: unsupported term kind %v", t.Kind)
	}
}

// forAllRange is wide enough for every quantifier this package's
// callers actually construct (loop-freshened Skolem constants in
// small hand-written test programs); it is independent of the outer
// solver's own search range.
const forAllLow, forAllHigh = -5, 5

func evalForAll(t smt.Term, model smt.Model) (interface{}, error) {
	return forAll(t.BoundVars, 0, model, *t.Body)
}

func forAll(vars []string, i int, model smt.Model, body smt.Term) (interface{}, error) {
	if i == len(vars) {
		return eval(body, model)
	}
	for v := forAllLow; v <= forAllHigh; v++ {
		model[vars[i]] = v
		ok, err := forAll(vars, i+1, model, body)
		if err != nil {
			delete(model, vars[i])
			return nil, err
		}
		if !ok.(bool) {
			delete(model, vars[i])
			return false, nil
		}
	}
	delete(model, vars[i])
	return true, nil
}

func evalApp(t smt.Term, model smt.Model) (interface{}, error) {
	args := make([]interface{}, len(t.Args))
	for i, a := range t.Args {
		v, err := evalAny(a, model)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	switch t.Op {
	case "+":
		return args[0].(int) + args[1].(int), nil
	case "-":
		return args[0].(int) - args[1].(int), nil
	case "*":
		return args[0].(int) * args[1].(int), nil
	case "div":
		b := args[1].(int)
		if b == 0 {
			return nil, fmt.Errorf("smttest: division by zero")
		}
		return smtDiv(args[0].(int), b), nil
	case "=":
		return args[0].(int) == args[1].(int), nil
	case "<":
		return args[0].(int) < args[1].(int), nil
	case ">":
		return args[0].(int) > args[1].(int), nil
	case "<=":
		return args[0].(int) <= args[1].(int), nil
	case ">=":
		return args[0].(int) >= args[1].(int), nil
	case "and":
		for _, a := range args {
			if !a.(bool) {
				return false, nil
			}
		}
		return true, nil
	case "or":
		for _, a := range args {
			if a.(bool) {
				return true, nil
			}
		}
		return false, nil
	case "not":
		return !args[0].(bool), nil
	case "=>":
		return !args[0].(bool) || args[1].(bool), nil
	default:
		return nil, fmt.Errorf("smttest: unsupported operator %q", t.Op)
	}
}

// smtDiv matches SMT-LIB's div, whose remainder is never negative: it
// rounds down for a positive divisor and up for a negative one, unlike
// Go's truncate-toward-zero integer division.
func smtDiv(a, b int) int {
	q := a / b
	if a%b < 0 {
		if b > 0 {
			q--
		} else {
			q++
		}
	}
	return q
}
