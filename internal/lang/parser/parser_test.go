package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/whilesynth/internal/lang/ast"
)

func TestParseSimpleStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"skip", "skip", "skip"},
		{"assign", "a := 1", "a := 1"},
		{"assign hole", "a := ??", "a := ??"},
		{"sequence", "a := 1;b := 2", "a := 1;b := 2"},
		{"parenthesized sequence", "(a := 1;b := 2)", "a := 1;b := 2"},
		{"if", "if a = 0 then a := 1 else a := 2", "if a = 0 then a := 1 else a := 2"},
		{"while", "while a > 0 do a := a - 1", "while a > 0 do a := a - 1"},
		{"assert", "assert a = 0", "assert a = 0"},
		{"binop expr", "a := b + c", "a := b + c"},
		{"parenthesized expr", "a := (b + c)", "a := b + c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stmt.String())
		})
	}
}

func TestParseRejectsChainedBinOp(t *testing.T) {
	_, err := Parse("a := b + c + d")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrTrailingInput, perr.Kind)
}

func TestParseWhileNestsRightInIf(t *testing.T) {
	// "if a then while b do c else d" -- the while's S1 body absorbs
	// only "c", and "else d" attaches to the outer if.
	stmt, err := Parse("if a = 0 then while b > 0 do c := 1 else d := 2")
	require.NoError(t, err)
	ifStmt, ok := stmt.(*ast.If)
	require.True(t, ok)
	_, ok = ifStmt.Then.(*ast.While)
	assert.True(t, ok)
	assign, ok := ifStmt.Else.(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "d", assign.Left.Name)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ErrorKind
	}{
		{"missing assign", "a 1", ErrExpectedToken},
		{"missing then", "if a = 0 a := 1 else a := 2", ErrExpectedToken},
		{"unexpected eof", "if a = 0 then", ErrUnexpectedEOF},
		{"unknown statement start", "+ a := 1", ErrUnexpectedToken},
		{"trailing input", "skip skip", ErrTrailingInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.kind, perr.Kind)
		})
	}
}

func TestParseExprStandalone(t *testing.T) {
	expr, err := ParseExpr("a + 1")
	require.NoError(t, err)
	assert.Equal(t, "a + 1", expr.String())
}

func TestParseExprRejectsTrailingInput(t *testing.T) {
	_, err := ParseExpr("a + 1 b")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrTrailingInput, perr.Kind)
}

func TestParseAssignRequiresIdentifierTarget(t *testing.T) {
	_, err := Parse("1 := 2")
	require.Error(t, err)
}
