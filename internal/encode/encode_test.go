package encode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/whilesynth/internal/lang/ast"
	"github.com/aledsdavies/whilesynth/internal/smt"
	"github.com/aledsdavies/whilesynth/internal/synth/env"
)

func TestExprIdentifier(t *testing.T) {
	e := env.Make([]string{"a"})
	term, guard, err := Expr(&ast.Id{Name: "a"}, e)
	require.NoError(t, err)
	assert.Equal(t, smt.IntConst("a"), term)
	assert.Equal(t, smt.Bool(true), guard)
}

func TestExprUnboundVariable(t *testing.T) {
	e := env.Make([]string{"a"})
	_, _, err := Expr(&ast.Id{Name: "b"}, e)
	require.Error(t, err)
	var unbound *UnboundVariableError
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, "b", unbound.Name)
}

func TestExprNumLiteral(t *testing.T) {
	e := env.Make(nil)
	term, guard, err := Expr(&ast.Num{Value: 42}, e)
	require.NoError(t, err)
	assert.Equal(t, smt.Int(42), term)
	assert.Equal(t, smt.Bool(true), guard)
}

func TestExprArithmeticBinOp(t *testing.T) {
	e := env.Make([]string{"a", "b"})
	term, guard, err := Expr(&ast.BinOp{Op: ast.Add, Left: &ast.Id{Name: "a"}, Right: &ast.Id{Name: "b"}}, e)
	require.NoError(t, err)
	assert.Equal(t, smt.Add(smt.IntConst("a"), smt.IntConst("b")), term)
	assert.Equal(t, smt.Bool(true), guard)
}

func TestExprRelationalBinOp(t *testing.T) {
	e := env.Make([]string{"a"})
	term, _, err := Expr(&ast.BinOp{Op: ast.OpLe, Left: &ast.Id{Name: "a"}, Right: &ast.Num{Value: 0}}, e)
	require.NoError(t, err)
	assert.Equal(t, smt.Le(smt.IntConst("a"), smt.Int(0)), term)
}

func TestExprDivisionExtendsGuard(t *testing.T) {
	e := env.Make([]string{"a", "b"})
	term, guard, err := Expr(&ast.BinOp{Op: ast.Div, Left: &ast.Id{Name: "a"}, Right: &ast.Id{Name: "b"}}, e)
	require.NoError(t, err)
	assert.Equal(t, smt.Div(smt.IntConst("a"), smt.IntConst("b")), term)
	assert.Equal(t, smt.NotZero(smt.IntConst("b")), guard)
}

func TestExprNestedDivisionGuardsConjoin(t *testing.T) {
	e := env.Make([]string{"a", "b", "c"})
	// (a / b) / c: both b != 0 and c != 0 must hold.
	inner := &ast.BinOp{Op: ast.Div, Left: &ast.Id{Name: "a"}, Right: &ast.Id{Name: "b"}}
	outer := &ast.BinOp{Op: ast.Div, Left: inner, Right: &ast.Id{Name: "c"}}
	_, guard, err := Expr(outer, e)
	require.NoError(t, err)
	want := smt.And(smt.NotZero(smt.IntConst("b")), smt.NotZero(smt.IntConst("c")))
	assert.Equal(t, want, guard)
}

func TestExprUnsupportedNodeIsSyntaxError(t *testing.T) {
	e := env.Make(nil)
	_, _, err := Expr(&ast.Hole{}, e)
	require.Error(t, err)
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
}

func TestExprThunkBindingResolvesAtLookupTime(t *testing.T) {
	e := env.Make([]string{"a"})
	e = e.Upd("a", env.Thunk(func(env.Env) (smt.Term, smt.Term) { return smt.Int(7), smt.Bool(true) }))
	term, _, err := Expr(&ast.Id{Name: "a"}, e)
	require.NoError(t, err)
	assert.Equal(t, smt.Int(7), term)
}
