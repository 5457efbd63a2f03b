package smt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeVarsExcludesBoundQuantifierVars(t *testing.T) {
	formula := ForAll([]string{"n"}, Eq(Add(IntConst("n"), IntConst("a")), Int(0)))
	assert.Equal(t, []string{"a"}, freeVars(formula))
}

func TestFreeVarsSortedAndDeduped(t *testing.T) {
	formula := And(Eq(IntConst("b"), Int(0)), Eq(IntConst("a"), IntConst("b")))
	assert.Equal(t, []string{"a", "b"}, freeVars(formula))
}

func TestRenderProducesWellFormedScript(t *testing.T) {
	formula := Eq(IntConst("hole_0"), Int(6))
	script := render(formula, []string{"hole_0"})
	assert.Contains(t, script, "(declare-fun hole_0 () Int)")
	assert.Contains(t, script, "(assert (= hole_0 6))")
	assert.Contains(t, script, "(check-sat)")
	assert.Contains(t, script, "(get-model)")
}

func TestRenderTermNegativeLiteral(t *testing.T) {
	var b strings.Builder
	renderTerm(&b, Int(-3))
	assert.Equal(t, "(- 3)", b.String())
}

func TestParseResponseUnsat(t *testing.T) {
	res, model, err := parseResponse("unsat\n", nil)
	require.NoError(t, err)
	assert.Equal(t, Unsat, res)
	assert.Nil(t, model)
}

func TestParseResponseUnknown(t *testing.T) {
	res, model, err := parseResponse("unknown\n", nil)
	require.NoError(t, err)
	assert.Equal(t, Unknown, res)
	assert.Nil(t, model)
}

func TestParseResponseSatWithModel(t *testing.T) {
	output := "sat\n(\n  (define-fun hole_0 () Int 6)\n  (define-fun hole_1 () Int (- 3))\n)\n"
	res, model, err := parseResponse(output, []string{"hole_0", "hole_1"})
	require.NoError(t, err)
	assert.Equal(t, Sat, res)
	assert.Equal(t, 6, model["hole_0"])
	assert.Equal(t, -3, model["hole_1"])
}

func TestParseResponseSatNoFreeVars(t *testing.T) {
	res, model, err := parseResponse("sat\n", nil)
	require.NoError(t, err)
	assert.Equal(t, Sat, res)
	assert.Equal(t, Model{}, model)
}

func TestParseResponseEmptyIsError(t *testing.T) {
	_, _, err := parseResponse("", nil)
	require.Error(t, err)
}

func TestParseResponseUnrecognizedStatus(t *testing.T) {
	_, _, err := parseResponse("garbage\n", nil)
	require.Error(t, err)
}

func TestEvalIntLiteral(t *testing.T) {
	tests := []struct {
		name string
		expr sexpr
		want int
		ok   bool
	}{
		{"positive atom", sexpr{atom: "6"}, 6, true},
		{"negated", sexpr{list: []sexpr{{atom: "-"}, {atom: "3"}}}, -3, true},
		{"non-numeric atom", sexpr{atom: "x"}, 0, false},
	}
	for _, tt := range tests {
		got, ok := evalIntLiteral(tt.expr)
		assert.Equal(t, tt.ok, ok, tt.name)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.name)
		}
	}
}
