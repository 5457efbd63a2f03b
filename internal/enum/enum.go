// Package enum implements the candidate enumerator (C7) of spec §4.7:
// a lazy, phased sequence of hole-fill substitutions, growing from
// atoms (phase 0) to deeper arithmetic combinations (phase k+1 =
// phase_k combined with phase_0 via +, -, *, /), capped at a global
// phase index.
package enum

import (
	"fmt"
	"strconv"

	"github.com/aledsdavies/whilesynth/internal/smt"
	"github.com/aledsdavies/whilesynth/internal/synth/env"
)

// DefaultPhaseCap is spec §4.7's cap of 10.
const DefaultPhaseCap = 10

// Atom is one hole's entry in a Candidate: an env.Binding the driver
// installs to build the SMT query, paired with a renderer that turns
// whatever the solver's model assigned it into the literal or
// expression text to splice back into the source. The two must stay
// in lockstep, which is why they travel together instead of the
// driver trying to reconstruct text from a resolved Term after the
// fact. compound marks an Atom whose Render output already contains a
// top-level infix operator (i.e. it was built by combine, not one of
// the phase-0 atoms) — see combine's doc comment for why that matters.
type Atom struct {
	Binding  env.Binding
	Render   func(m smt.Model) string
	compound bool
}

// Candidate maps each hole name to the Atom the driver should install
// over the base environment before building the WP query.
type Candidate map[string]Atom

var arithOps = []string{"+", "-", "*", "/"}

// Enumerator lazily produces candidates, materializing one phase's
// worth of vectors at a time (never the whole combinatorial space up
// front) and stopping as soon as the driver stops pulling from it.
type Enumerator struct {
	vars      []string
	holes     []string
	withExprs bool
	phaseCap  int

	phase0  []Candidate // cached; reused to build every later phase
	current []Candidate
	idx     int
	phase   int
	timeout bool
}

// New returns an Enumerator over the given original variable names
// and hole names. If withExprs is false, it yields exactly one
// candidate — each hole bound to its own fresh, unconstrained integer
// constant (spec §4.8: "withExprs=false short-circuits the enumerator
// after the single 'holes are fresh symbolic constants' attempt").
func New(vars, holes []string, withExprs bool, phaseCap int) *Enumerator {
	e := &Enumerator{vars: vars, holes: holes, withExprs: withExprs, phaseCap: phaseCap}
	if !withExprs {
		cand := make(Candidate, len(holes))
		for _, h := range holes {
			cand[h] = freshAtom(h)
		}
		e.current = []Candidate{cand}
		return e
	}
	e.phase0 = buildPhase0(vars, holes)
	e.current = e.phase0
	return e
}

// Next returns the next candidate, or ok=false once the enumerator is
// exhausted (only possible when withExprs is false) or the phase cap
// has been exceeded (TimedOut then reports true).
func (e *Enumerator) Next() (Candidate, bool) {
	for {
		if e.idx < len(e.current) {
			c := e.current[e.idx]
			e.idx++
			return c, true
		}
		if !e.withExprs {
			return nil, false
		}
		e.phase++
		// Phase indices 0..phaseCap inclusive are all tried; only a
		// phase index that exceeds phaseCap times out, per spec §4.7's
		// "exceeding it returns a timeout verdict" (not "reaching it").
		if e.phase > e.phaseCap {
			e.timeout = true
			return nil, false
		}
		e.current = combinePhase(e.current, e.phase0, e.holes)
		e.idx = 0
		if len(e.current) == 0 {
			return nil, false
		}
	}
}

// TimedOut reports whether enumeration stopped because the phase cap
// was exceeded (spec §7's Timeout row), as opposed to having
// genuinely exhausted a finite candidate space.
func (e *Enumerator) TimedOut() bool { return e.timeout }

// buildPhase0 is the Cartesian product, across holes, of each hole's
// atom choices: a fresh unconstrained integer, or an alias of any
// original program variable.
func buildPhase0(vars, holes []string) []Candidate {
	if len(holes) == 0 {
		return []Candidate{{}}
	}
	perHole := make([][]Atom, len(holes))
	for i, h := range holes {
		opts := make([]Atom, 0, len(vars)+1)
		opts = append(opts, freshAtom(h))
		for _, v := range vars {
			opts = append(opts, aliasAtom(v))
		}
		perHole[i] = opts
	}
	return cartesian(holes, perHole)
}

func cartesian(holes []string, perHole [][]Atom) []Candidate {
	result := []Candidate{{}}
	for i, opts := range perHole {
		var next []Candidate
		for _, partial := range result {
			for _, opt := range opts {
				cand := make(Candidate, len(partial)+1)
				for k, v := range partial {
					cand[k] = v
				}
				cand[holes[i]] = opt
				next = append(next, cand)
			}
		}
		result = next
	}
	return result
}

// combinePhase builds the next phase = { a (op) b : a in prev, b in
// phase0, op in {+,-,*,/} }, combined pointwise across every hole in
// the vector with the same a, b, and op (spec §4.7: "every hole grows
// together").
func combinePhase(prev, phase0 []Candidate, holes []string) []Candidate {
	var next []Candidate
	for _, a := range prev {
		for _, b := range phase0 {
			for _, op := range arithOps {
				cand := make(Candidate, len(holes))
				for _, h := range holes {
					cand[h] = combine(op, a[h], b[h])
				}
				next = append(next, cand)
			}
		}
	}
	return next
}

func freshAtom(holeName string) Atom {
	name := fmt.Sprintf("%s~fresh", holeName)
	return Atom{
		Binding: env.Const{Term: smt.IntConst(name)},
		Render: func(m smt.Model) string {
			v, ok := m.Eval(name)
			if !ok {
				return "0"
			}
			return strconv.Itoa(v)
		},
	}
}

func aliasAtom(varName string) Atom {
	return Atom{
		Binding: env.Thunk(func(e env.Env) (smt.Term, smt.Term) {
			term, guard, ok := e.Lookup(varName)
			if !ok {
				return smt.Term{}, smt.Bool(false)
			}
			return term, guard
		}),
		Render: func(smt.Model) string { return varName },
	}
}

// combine builds the op-applied pointwise entry for one hole, at one
// position in the phase's Cartesian product. Every fresh atom it
// touches must itself already be unique (named off the hole once at
// phase-0 construction time), so reusing a and b across many
// candidates at this phase never conflates two logically distinct
// symbolic slots.
func combine(op string, a, b Atom) Atom {
	binding := env.Thunk(func(e env.Env) (smt.Term, smt.Term) {
		aTerm, aGuard := a.Binding.Resolve(e)
		bTerm, bGuard := b.Binding.Resolve(e)
		guard := smt.And(aGuard, bGuard)
		var term smt.Term
		switch op {
		case "+":
			term = smt.Add(aTerm, bTerm)
		case "-":
			term = smt.Sub(aTerm, bTerm)
		case "*":
			term = smt.Mul(aTerm, bTerm)
		case "/":
			term = smt.Div(aTerm, bTerm)
			guard = smt.And(guard, smt.NotZero(bTerm))
		default:
			panic("enum: unknown operator " + op)
		}
		return term, guard
	})
	// Additive operators render with surrounding spaces ("b + a");
	// multiplicative ones render tight ("2*b"), matching spec §8's
	// worked expression-synthesis scenario exactly. A phase-1 result
	// (a and b both phase-0 atoms, so a.compound is false) renders
	// bare — "2*b", not "(2*b)" — since the grammar's single-op
	// E0 op E0 already accepts it unparenthesized wherever a hole's
	// own E0 site sat. From phase 2 on, a is itself a compound
	// (already-operator-bearing) result of a previous combine; without
	// parenthesizing it, splicing "2*b + a" would chain three operands
	// through two operators, which E0 op E0 does not accept. Wrapping
	// only the compound operand keeps every phase's render a valid
	// E0 op E0 — the parenthesized group is one E0, b is the other.
	render := func(m smt.Model) string {
		aText := a.Render(m)
		if a.compound {
			aText = "(" + aText + ")"
		}
		switch op {
		case "+", "-":
			return aText + " " + op + " " + b.Render(m)
		default:
			return aText + op + b.Render(m)
		}
	}
	return Atom{Binding: binding, Render: render, compound: true}
}
