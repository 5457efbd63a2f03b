// Package parser implements the While language grammar of spec §4.1:
//
//	S   -> S1 | S1 ';' S
//	S1  -> 'skip' | id ':=' E | 'if' E 'then' S 'else' S1 | 'while' E 'do' S1
//	S1  -> '(' S ')' | 'assert' E
//	E   -> E0 | E0 op E0
//	E0  -> id | num | '??' | '(' E ')'
//
// The grammar is LL(1): each production is chosen by the single
// lookahead token, so a straightforward recursive-descent parser
// yields the unique parse the grammar guarantees without
// backtracking. Chained binary expressions ("a + b + c") are
// deliberately not accepted — see spec §9's open question on parser
// ambiguity.
package parser

import (
	"github.com/aledsdavies/whilesynth/internal/lang/ast"
	"github.com/aledsdavies/whilesynth/internal/lang/lexer"
	"github.com/aledsdavies/whilesynth/internal/lang/token"
)

type parser struct {
	toks  []token.Token
	pos   int
	input string
}

// Parse tokenizes and parses src, returning the program's AST. On any
// grammar violation it returns a nil Stmt and a *ParseError (spec §7:
// ParseError -> "invalid program" to the caller).
func Parse(src string) (ast.Stmt, error) {
	p := &parser{toks: lexer.All(src, nil), input: src}
	stmt, err := p.parseS()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != token.EOF {
		return nil, &ParseError{Kind: ErrTrailingInput, Got: p.peek(), Want: "end of input", Input: src}
	}
	return stmt, nil
}

// ParseExpr parses a single While-language expression (the E
// production) standing alone, with nothing else following it. It is
// used outside the statement grammar to read the individual clauses
// of a Hoare-triple predicate (spec §6's P/Q/linv), which compose
// several such expressions with a conjunction the statement grammar
// itself has no syntax for.
func ParseExpr(src string) (ast.Expr, error) {
	p := &parser{toks: lexer.All(src, nil), input: src}
	expr, err := p.parseE()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != token.EOF {
		return nil, &ParseError{Kind: ErrTrailingInput, Got: p.peek(), Want: "end of input", Input: src}
	}
	return expr, nil
}

func (p *parser) peek() token.Token { return p.toks[p.pos] }

func (p *parser) next() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(tt token.Type, want string) (token.Token, error) {
	if p.peek().Type != tt {
		return token.Token{}, &ParseError{Kind: ErrExpectedToken, Got: p.peek(), Want: want, Input: p.input}
	}
	return p.next(), nil
}

// parseS handles the S -> S1 | S1 ';' S production.
func (p *parser) parseS() (ast.Stmt, error) {
	first, err := p.parseS1()
	if err != nil {
		return nil, err
	}
	if p.peek().Type == token.SEMI {
		pos := p.peek().Pos
		p.next()
		rest, err := p.parseS()
		if err != nil {
			return nil, err
		}
		return &ast.Seq{First: first, Second: rest, Position: pos}, nil
	}
	return first, nil
}

// parseS1 handles every S1 alternative.
func (p *parser) parseS1() (ast.Stmt, error) {
	t := p.peek()
	switch t.Type {
	case token.SKIP:
		p.next()
		return &ast.Skip{Position: t.Pos}, nil

	case token.IDENT:
		p.next()
		id := &ast.Id{Name: t.Value, Position: t.Pos}
		if _, err := p.expect(token.ASSIGN, "':='"); err != nil {
			return nil, err
		}
		rhs, err := p.parseE()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Left: id, Right: rhs, Position: t.Pos}, nil

	case token.IF:
		p.next()
		cond, err := p.parseE()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.THEN, "'then'"); err != nil {
			return nil, err
		}
		thenS, err := p.parseS()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ELSE, "'else'"); err != nil {
			return nil, err
		}
		elseS, err := p.parseS1()
		if err != nil {
			return nil, err
		}
		return &ast.If{Cond: cond, Then: thenS, Else: elseS, Position: t.Pos}, nil

	case token.WHILE:
		p.next()
		cond, err := p.parseE()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.DO, "'do'"); err != nil {
			return nil, err
		}
		body, err := p.parseS1()
		if err != nil {
			return nil, err
		}
		return &ast.While{Cond: cond, Body: body, Position: t.Pos}, nil

	case token.LPAREN:
		p.next()
		inner, err := p.parseS()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return inner, nil

	case token.ASSERT:
		p.next()
		cond, err := p.parseE()
		if err != nil {
			return nil, err
		}
		return &ast.Assert{Cond: cond, Position: t.Pos}, nil

	case token.EOF:
		return nil, &ParseError{Kind: ErrUnexpectedEOF, Got: t, Want: "a statement", Input: p.input}
	default:
		return nil, &ParseError{Kind: ErrUnexpectedToken, Got: t, Want: "a statement", Input: p.input}
	}
}

// parseE handles E -> E0 | E0 op E0.
func (p *parser) parseE() (ast.Expr, error) {
	left, err := p.parseE0()
	if err != nil {
		return nil, err
	}
	if op, ok := binOpFor(p.peek().Type); ok {
		opTok := p.next()
		right, err := p.parseE0()
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Op: op, Left: left, Right: right, Position: opTok.Pos}, nil
	}
	return left, nil
}

// parseE0 handles E0 -> id | num | '??' | '(' E ')'.
func (p *parser) parseE0() (ast.Expr, error) {
	t := p.peek()
	switch t.Type {
	case token.IDENT:
		p.next()
		return &ast.Id{Name: t.Value, Position: t.Pos}, nil
	case token.NUM:
		p.next()
		n, err := parseInt(t.Value)
		if err != nil {
			return nil, &ParseError{Kind: ErrUnexpectedToken, Got: t, Want: "a well-formed integer", Input: p.input}
		}
		return &ast.Num{Value: n, Position: t.Pos}, nil
	case token.HOLE:
		p.next()
		return &ast.Hole{Position: t.Pos}, nil
	case token.LPAREN:
		p.next()
		inner, err := p.parseE()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, &ParseError{Kind: ErrUnexpectedToken, Got: t, Want: "an identifier, number, '??', or '('", Input: p.input}
	}
}

func binOpFor(tt token.Type) (ast.Op, bool) {
	switch tt {
	case token.PLUS:
		return ast.Add, true
	case token.MINUS:
		return ast.Sub, true
	case token.STAR:
		return ast.Mul, true
	case token.SLASH:
		return ast.Div, true
	case token.EQ:
		return ast.OpEq, true
	case token.NEQ:
		return ast.OpNeq, true
	case token.LT:
		return ast.OpLt, true
	case token.GT:
		return ast.OpGt, true
	case token.LE:
		return ast.OpLe, true
	case token.GE:
		return ast.OpGe, true
	default:
		return "", false
	}
}

func parseInt(s string) (int, error) {
	neg := false
	i := 0
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		i = 1
	}
	n := 0
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, &ParseError{Kind: ErrUnexpectedToken, Want: "digits"}
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}
