// Package wp implements the weakest-precondition calculator (C5) and
// the loop unroller (C6) of spec §4.5/§4.6.
package wp

import (
	"fmt"
	"sort"

	"github.com/aledsdavies/whilesynth/internal/encode"
	"github.com/aledsdavies/whilesynth/internal/lang/ast"
	"github.com/aledsdavies/whilesynth/internal/lang/astutil"
	"github.com/aledsdavies/whilesynth/internal/smt"
	"github.com/aledsdavies/whilesynth/internal/synth/env"
)

// Predicate is a callback from a symbolic environment to a Boolean
// SMT term (spec §6): the shape of Q, linv, and of every partial WP
// result built along the way. It returns an error wherever the
// original encode.Expr/lookup path would have (an unbound variable in
// a user-supplied predicate, or a malformed AST node).
type Predicate func(e env.Env) (smt.Term, error)

// True is the Predicate "e -> true", the trivial loop invariant the
// driver always uses, after unrolling every loop (spec §4.8).
func True(env.Env) (smt.Term, error) { return smt.Bool(true), nil }

// WP returns the weakest-precondition transformer for s: a Predicate
// that, given the state e, returns the formula that must hold in e
// for s to establish Q (under loop invariant linv for every while
// node). fresh supplies the Skolem-fresh names the while rule
// introduces; pass a shared *Fresher across one query's construction.
func WP(s ast.Stmt, Q Predicate, linv Predicate, fresh *Fresher) Predicate {
	switch n := s.(type) {
	case *ast.Skip:
		return Q

	case *ast.Seq:
		inner := WP(n.Second, Q, linv, fresh)
		return WP(n.First, inner, linv, fresh)

	case *ast.Assign:
		return func(e env.Env) (smt.Term, error) {
			expr, guard, err := encode.Expr(n.Right, e)
			if err != nil {
				return smt.Term{}, err
			}
			qTerm, err := Q(e.Upd(n.Left.Name, env.Const{Term: expr}))
			if err != nil {
				return smt.Term{}, err
			}
			return smt.And(guard, qTerm), nil
		}

	case *ast.If:
		return func(e env.Env) (smt.Term, error) {
			cond, guard, err := encode.Expr(n.Cond, e)
			if err != nil {
				return smt.Term{}, err
			}
			wpThen, err := WP(n.Then, Q, linv, fresh)(e)
			if err != nil {
				return smt.Term{}, err
			}
			wpElse, err := WP(n.Else, Q, linv, fresh)(e)
			if err != nil {
				return smt.Term{}, err
			}
			return smt.And(guard, smt.Or(smt.And(cond, wpThen), smt.And(smt.Not(cond), wpElse))), nil
		}

	case *ast.Assert:
		return func(e env.Env) (smt.Term, error) {
			cond, guard, err := encode.Expr(n.Cond, e)
			if err != nil {
				return smt.Term{}, err
			}
			qTerm, err := Q(e)
			if err != nil {
				return smt.Term{}, err
			}
			return smt.And(guard, cond, qTerm), nil
		}

	case *ast.While:
		return wpWhile(n, Q, linv, fresh)

	default:
		return func(env.Env) (smt.Term, error) {
			return smt.Term{}, fmt.Errorf("wp: unsupported statement node %T", s)
		}
	}
}

// wpWhile is the partial-correctness while rule of spec §4.5: sound
// given a sufficiently strong linv, and otherwise reliant on C6's
// unrolling having already turned this node into a bounded if-cascade
// (in which case linv is True and this residual node only needs to be
// unreachable within the unroll depth — see UnrollAll's doc comment).
func wpWhile(n *ast.While, Q, linv Predicate, fresh *Fresher) Predicate {
	assigned := astutil.AssignedSet(n.Body)

	return func(e env.Env) (smt.Term, error) {
		ePrime, freshVars := freshen(e, assigned, fresh)

		condE, guardE, err := encode.Expr(n.Cond, e)
		if err != nil {
			return smt.Term{}, err
		}
		condEPrime, guardEPrime, err := encode.Expr(n.Cond, ePrime)
		if err != nil {
			return smt.Term{}, err
		}
		linvE, err := linv(e)
		if err != nil {
			return smt.Term{}, err
		}
		linvEPrime, err := linv(ePrime)
		if err != nil {
			return smt.Term{}, err
		}
		qE, err := Q(e)
		if err != nil {
			return smt.Term{}, err
		}
		qEPrime, err := Q(ePrime)
		if err != nil {
			return smt.Term{}, err
		}
		wpBody, err := WP(n.Body, linv, linv, fresh)(ePrime)
		if err != nil {
			return smt.Term{}, err
		}

		inner := smt.And(
			smt.Implies(smt.And(linvEPrime, condEPrime), wpBody),
			smt.Implies(smt.And(linvEPrime, smt.Not(condEPrime)), qEPrime),
			smt.Implies(linvEPrime, guardEPrime),
		)

		maintainsInvariant := smt.Implies(condE, smt.And(linvE, smt.ForAll(freshVars, inner)))
		exitsImmediately := smt.Implies(smt.Not(condE), qE)

		return smt.And(maintainsInvariant, exitsImmediately, guardE), nil
	}
}

// freshen builds the e' environment of spec §4.5: every name in
// assigned is rebound to a brand-new Skolem constant (returned
// alongside, for the quantifier's bound-variable list); every other
// name keeps its binding from e.
func freshen(e env.Env, assigned map[string]bool, fresh *Fresher) (ePrime env.Env, freshVars []string) {
	names := e.Names()
	sort.Strings(names)
	ePrime = e
	for _, name := range names {
		if !assigned[name] {
			continue
		}
		freshName := fresh.Next(name)
		ePrime = ePrime.Upd(name, env.Const{Term: smt.IntConst(freshName)})
		freshVars = append(freshVars, freshName)
	}
	return ePrime, freshVars
}
