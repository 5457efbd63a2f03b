package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{ILLEGAL, "ILLEGAL"},
		{EOF, "EOF"},
		{IDENT, "IDENT"},
		{NUM, "NUM"},
		{SKIP, "skip"},
		{WHILE, "while"},
		{HOLE, "??"},
		{ASSIGN, ":="},
		{Type(9999), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
}

func TestKeywordsCoverReservedWords(t *testing.T) {
	want := []string{"skip", "if", "then", "else", "while", "do", "assert"}
	assert.Len(t, Keywords, len(want))
	for _, w := range want {
		_, ok := Keywords[w]
		assert.Truef(t, ok, "missing keyword %q", w)
	}
}

func TestRelOpsAndArithOpsDisjoint(t *testing.T) {
	for op := range RelOps {
		_, ok := ArithOps[op]
		assert.Falsef(t, ok, "%v is in both RelOps and ArithOps", op)
	}
	assert.True(t, RelOps[EQ])
	assert.True(t, RelOps[LE])
	assert.True(t, ArithOps[PLUS])
	assert.True(t, ArithOps[SLASH])
}

func TestTokenStringIsValue(t *testing.T) {
	tok := Token{Type: IDENT, Value: "count", Pos: Position{Line: 1, Column: 1}}
	assert.Equal(t, "count", tok.String())
}
