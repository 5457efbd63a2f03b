// Package lexer tokenizes While-language source text.
package lexer

import (
	"log/slog"

	"github.com/aledsdavies/whilesynth/internal/lang/token"
)

// ASCII classification tables, following the fast single-byte lookup
// style used for hot tokenizer loops.
var (
	isSpace [128]bool
	isDigit [128]bool
	isIdent [128]bool
	isStart [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isSpace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
		isDigit[i] = ch >= '0' && ch <= '9'
		isStart[i] = (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
		isIdent[i] = isStart[i] || isDigit[i]
	}
}

// Lexer turns source text into a flat token stream. It holds no state
// beyond a cursor, so it is cheap to construct per parse.
type Lexer struct {
	src    string
	pos    int // byte offset of the next unread rune
	line   int
	col    int
	logger *slog.Logger
}

// New returns a Lexer over src. A nil logger is replaced with a
// discard logger so callers never need a nil check.
func New(src string, logger *slog.Logger) *Lexer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Lexer{src: src, line: 1, col: 1, logger: logger}
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) byteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch < 128 && isSpace[ch] {
			l.advance()
			continue
		}
		break
	}
}

func (l *Lexer) pos0() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// Next returns the next token in the stream. It returns an EOF token
// forever once the input is exhausted, and an ILLEGAL token (with the
// offending rune as its Value) if nothing matches.
func (l *Lexer) Next() token.Token {
	l.skipSpace()
	start := l.pos0()
	if l.pos >= len(l.src) {
		return token.Token{Type: token.EOF, Value: "", Pos: start}
	}

	ch := l.peekByte()

	// "??" hole marker.
	if ch == '?' && l.byteAt(1) == '?' {
		l.advance()
		l.advance()
		return token.Token{Type: token.HOLE, Value: "??", Pos: start}
	}

	// Identifier or keyword.
	if ch < 128 && isStart[ch] {
		begin := l.pos
		for l.pos < len(l.src) && l.src[l.pos] < 128 && isIdent[l.src[l.pos]] {
			l.advance()
		}
		word := l.src[begin:l.pos]
		if kw, ok := token.Keywords[word]; ok {
			return token.Token{Type: kw, Value: word, Pos: start}
		}
		return token.Token{Type: token.IDENT, Value: word, Pos: start}
	}

	// Signed or unsigned integer literal. A leading '+'/'-' binds into
	// the literal only when a digit follows with no intervening space
	// (longest-match tokenization); otherwise it is the arithmetic
	// operator, matching the original tokenizer's greedy behaviour.
	if isDigit0(ch) || ((ch == '+' || ch == '-') && isDigit0(l.byteAt(1))) {
		begin := l.pos
		l.advance() // digit, or the sign
		for l.pos < len(l.src) && isDigit0(l.peekByte()) {
			l.advance()
		}
		return token.Token{Type: token.NUM, Value: l.src[begin:l.pos], Pos: start}
	}

	// Two-character operators before their one-character prefixes.
	switch {
	case ch == ':' && l.byteAt(1) == '=':
		l.advance()
		l.advance()
		return token.Token{Type: token.ASSIGN, Value: ":=", Pos: start}
	case ch == '!' && l.byteAt(1) == '=':
		l.advance()
		l.advance()
		return token.Token{Type: token.NEQ, Value: "!=", Pos: start}
	case ch == '<' && l.byteAt(1) == '=':
		l.advance()
		l.advance()
		return token.Token{Type: token.LE, Value: "<=", Pos: start}
	case ch == '>' && l.byteAt(1) == '=':
		l.advance()
		l.advance()
		return token.Token{Type: token.GE, Value: ">=", Pos: start}
	}

	single := map[byte]token.Type{
		'+': token.PLUS, '-': token.MINUS, '*': token.STAR, '/': token.SLASH,
		'=': token.EQ, '<': token.LT, '>': token.GT,
		'(': token.LPAREN, ')': token.RPAREN, ';': token.SEMI,
	}
	if t, ok := single[ch]; ok {
		l.advance()
		return token.Token{Type: t, Value: string(ch), Pos: start}
	}

	l.logger.Debug("lexer: illegal character", "char", string(ch), "line", start.Line, "col", start.Column)
	l.advance()
	return token.Token{Type: token.ILLEGAL, Value: string(ch), Pos: start}
}

func isDigit0(ch byte) bool {
	return ch < 128 && isDigit[ch]
}

// All tokenizes the entire input, including a trailing EOF token.
func All(src string, logger *slog.Logger) []token.Token {
	lx := New(src, logger)
	var toks []token.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Type == token.EOF {
			return toks
		}
	}
}
