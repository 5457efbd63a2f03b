package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSexprsAtomsAndLists(t *testing.T) {
	exprs, err := parseSexprs("(define-fun hole_0 () Int 6)")
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	e := exprs[0]
	require.False(t, e.isAtom())
	require.Len(t, e.list, 5)
	assert.Equal(t, "define-fun", e.list[0].atom)
	assert.Equal(t, "hole_0", e.list[1].atom)
	assert.True(t, e.list[2].isAtom())
	assert.Equal(t, "Int", e.list[3].atom)
	assert.Equal(t, "6", e.list[4].atom)
}

func TestParseSexprsNested(t *testing.T) {
	exprs, err := parseSexprs("(define-fun hole_1 () Int (- 3))")
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	val := exprs[0].list[4]
	require.False(t, val.isAtom())
	assert.Equal(t, "-", val.list[0].atom)
	assert.Equal(t, "3", val.list[1].atom)
}

func TestParseSexprsUnmatchedParen(t *testing.T) {
	_, err := parseSexprs(")")
	require.Error(t, err)
}

func TestParseSexprsUnexpectedEOF(t *testing.T) {
	_, err := parseSexprs("(define-fun")
	require.Error(t, err)
}
