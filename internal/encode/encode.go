// Package encode implements the expression encoder of spec §4.4 (C4):
// translating a While-language expression into an SMT term, alongside
// the well-definedness side condition that every division's divisor
// is nonzero.
//
// Spec §5/§9 notes that a reference implementation can thread the
// guard through a single mutable module-global cell instead of a
// return value; this package always takes the "design-correct form"
// the spec calls out as equivalent and cleaner — encode returns
// (term, guard) explicitly, and every caller (internal/wp) conjoins
// guard into its own result rather than reading a shared cell.
package encode

import (
	"fmt"

	"github.com/aledsdavies/whilesynth/internal/lang/ast"
	"github.com/aledsdavies/whilesynth/internal/smt"
	"github.com/aledsdavies/whilesynth/internal/synth/env"
)

// UnboundVariableError is returned when an expression references a
// name absent from the environment — typically a Hoare-triple
// predicate naming a variable the program never mentions (spec §7's
// UnsupportedSpec). Input/output bindings naming such a variable are
// reported by the driver as UnsupportedSpecError instead.
type UnboundVariableError struct{ Name string }

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("encode: unbound variable %q", e.Name)
}

// SyntaxError is returned for an AST node the encoder does not know
// how to translate. Spec §7 marks this a programmer error (a
// well-formed parse should never produce one): the driver does not
// catch it, and returns it to its caller like any other error from
// building a candidate's query.
type SyntaxError struct{ Node ast.Node }

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("encode: unsupported expression node %T", e.Node)
}

// Expr translates e against environment en, returning the SMT term
// and the conjunction of "divisor != 0" conditions for every division
// in e (true if e contains none).
func Expr(e ast.Expr, en env.Env) (term smt.Term, guard smt.Term, err error) {
	switch n := e.(type) {
	case *ast.Id:
		term, guard, ok := en.Lookup(n.Name)
		if !ok {
			return smt.Term{}, smt.Term{}, &UnboundVariableError{Name: n.Name}
		}
		return term, guard, nil

	case *ast.Num:
		return smt.Int(n.Value), smt.Bool(true), nil

	case *ast.BinOp:
		left, leftGuard, err := Expr(n.Left, en)
		if err != nil {
			return smt.Term{}, smt.Term{}, err
		}
		right, rightGuard, err := Expr(n.Right, en)
		if err != nil {
			return smt.Term{}, smt.Term{}, err
		}
		guard := smt.And(leftGuard, rightGuard)

		switch n.Op {
		case ast.Add:
			return smt.Add(left, right), guard, nil
		case ast.Sub:
			return smt.Sub(left, right), guard, nil
		case ast.Mul:
			return smt.Mul(left, right), guard, nil
		case ast.Div:
			return smt.Div(left, right), smt.And(guard, smt.NotZero(right)), nil
		case ast.OpEq:
			return smt.Eq(left, right), guard, nil
		case ast.OpNeq:
			return smt.Neq(left, right), guard, nil
		case ast.OpLt:
			return smt.Lt(left, right), guard, nil
		case ast.OpGt:
			return smt.Gt(left, right), guard, nil
		case ast.OpLe:
			return smt.Le(left, right), guard, nil
		case ast.OpGe:
			return smt.Ge(left, right), guard, nil
		default:
			return smt.Term{}, smt.Term{}, &SyntaxError{Node: n}
		}

	default:
		return smt.Term{}, smt.Term{}, &SyntaxError{Node: e}
	}
}
