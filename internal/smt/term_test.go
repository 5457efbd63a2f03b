package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAndIdentityHandling(t *testing.T) {
	assert.Equal(t, Bool(true), And())
	assert.Equal(t, Bool(true), And(Bool(true), Bool(true)))
	x := Eq(IntConst("a"), Int(0))
	assert.Equal(t, x, And(x))
	assert.Equal(t, x, And(Bool(true), x))
}

func TestOrIdentityHandling(t *testing.T) {
	assert.Equal(t, Bool(false), Or())
	assert.Equal(t, Bool(false), Or(Bool(false), Bool(false)))
	x := Eq(IntConst("a"), Int(0))
	assert.Equal(t, x, Or(x))
	assert.Equal(t, x, Or(Bool(false), x))
}

func TestNotCollapsesDoubleNegationAndLiterals(t *testing.T) {
	assert.Equal(t, Bool(false), Not(Bool(true)))
	assert.Equal(t, Bool(true), Not(Bool(false)))
	x := Eq(IntConst("a"), Int(0))
	assert.Equal(t, x, Not(Not(x)))
}

func TestImpliesShortCircuitsOnLiteralAntecedent(t *testing.T) {
	x := Eq(IntConst("a"), Int(0))
	assert.Equal(t, x, Implies(Bool(true), x))
	assert.Equal(t, Bool(true), Implies(Bool(false), x))
}

func TestForAllEmptyVarsDegeneratesToBody(t *testing.T) {
	body := Eq(IntConst("a"), Int(0))
	assert.Equal(t, body, ForAll(nil, body))
}

func TestNeqIsNotEq(t *testing.T) {
	got := Neq(IntConst("a"), Int(1))
	assert.Equal(t, "(not (= a 1))", got.String())
}

func TestTermStringRendering(t *testing.T) {
	formula := ForAll([]string{"n"}, Implies(Ge(IntConst("n"), Int(0)), Eq(Add(IntConst("n"), Int(1)), IntConst("m"))))
	assert.Equal(t, "(forall [n] (=> (>= n 0) (= (+ n 1) m)))", formula.String())
}
