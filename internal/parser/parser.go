// Package parser turns a token stream into an ast.Program via recursive
// descent for statements and a Pratt expression parser for expressions
// (spec.md §4.2). Ported from the teacher's cursor-based
// parser.Parser (parser/parser.go: currentToken/peekToken/nextToken) for
// statement dispatch, and from debugger.ExprParser
// (debugger/expr_parser.go: parseExpression(minPrecedence)/parsePrimary)
// for the Pratt core, generalized to a full nud/led table.
package parser

import (
	"fmt"

	"github.com/sangwon090/mamba/internal/ast"
	"github.com/sangwon090/mamba/internal/errs"
	"github.com/sangwon090/mamba/internal/lexer"
)

// Parser is a random-access cursor over a pre-tokenized input.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New constructs a Parser over a full token list (as produced by
// lexer.Lexer.Tokenize), terminated by lexer.TokenEOF.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the entire token stream into a top-level ast.Program.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	p := New(tokens)
	var stmts []ast.Statement
	for !p.atEOF() {
		stmt, err := p.parseTopLevelStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &ast.Program{Statements: stmts}, nil
}

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return lexer.Token{Type: lexer.TokenEOF}
	}
	return p.tokens[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) atEOF() bool {
	return p.current().Type == lexer.TokenEOF
}

func (p *Parser) errPos() errs.Position {
	t := p.current()
	return errs.Position{Filename: t.Pos.Filename, Line: t.Pos.Line, Column: t.Pos.Column}
}

// expect consumes the current token if it matches tt, else returns a
// fatal UnexpectedToken error naming what was expected and what was found
// (spec.md §4.2: "a precise 'expected X, found Y' message").
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.current().Type != tt {
		return lexer.Token{}, p.unexpected(tt.String())
	}
	return p.advance(), nil
}

func (p *Parser) unexpected(expected string) error {
	found := p.current()
	return errs.New(errs.PhaseParser, errs.KindUnexpectedToken, p.errPos(),
		fmt.Sprintf("expected %s, found %s", expected, found.Type))
}

func (p *Parser) insufficientTokens(context string) error {
	return errs.New(errs.PhaseParser, errs.KindInsufficientTokens, p.errPos(),
		"insufficient tokens while parsing "+context)
}

// parseType consumes a TokenTypeName and returns its DataType.
func (p *Parser) parseType() (ast.DataType, error) {
	if p.current().Type != lexer.TokenTypeName {
		return ast.DataType{}, p.unexpected("type name")
	}
	tok := p.advance()
	return tok.DType, nil
}
