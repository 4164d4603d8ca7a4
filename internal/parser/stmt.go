package parser

import (
	"github.com/sangwon090/mamba/internal/ast"
	"github.com/sangwon090/mamba/internal/errs"
	"github.com/sangwon090/mamba/internal/lexer"
)

// parseTopLevelStatement dispatches the three legal top-level forms
// (spec.md §3: "Only Let, Def, Extern are legal at top level").
func (p *Parser) parseTopLevelStatement() (ast.Statement, error) {
	switch p.current().Type {
	case lexer.TokenLet:
		return p.parseLet()
	case lexer.TokenDef:
		return p.parseDef()
	case lexer.TokenExtern:
		return p.parseExtern()
	default:
		return nil, p.unexpected("'let', 'def' or 'extern'")
	}
}

// parseBodyStatement dispatches the five forms legal inside a function body.
func (p *Parser) parseBodyStatement() (ast.Statement, error) {
	switch p.current().Type {
	case lexer.TokenLet:
		return p.parseLet()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenReturn:
		return p.parseReturn()
	default:
		return p.parseExpressionStatement()
	}
}

// parseBlock consumes INDENT stmt+ DEDENT.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if _, err := p.expect(lexer.TokenIndent); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for p.current().Type != lexer.TokenDedent {
		if p.atEOF() {
			return nil, p.insufficientTokens("block body")
		}
		stmt, err := p.parseBodyStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(lexer.TokenDedent); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseParams parses `(params?)`, enforcing distinct parameter names
// (spec.md §3 invariant 2).
func (p *Parser) parseParams() ([]ast.Param, error) {
	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}
	var params []ast.Param
	seen := map[string]bool{}
	for p.current().Type != lexer.TokenRParen {
		nameTok, err := p.expect(lexer.TokenIdentifier)
		if err != nil {
			return nil, err
		}
		if seen[nameTok.Text] {
			return nil, errs.New(errs.PhaseParser, errs.KindDuplicateParam, p.errPos(),
				"duplicate parameter name: "+nameTok.Text)
		}
		seen[nameTok.Text] = true
		if _, err := p.expect(lexer.TokenColon); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: nameTok.Text, Type: ty})
		if p.current().Type == lexer.TokenComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return params, nil
}

// parseDef: IDENT '(' params? ')' '->' TYPE ':' INDENT stmt+ DEDENT
func (p *Parser) parseDef() (ast.Statement, error) {
	p.advance() // 'def'
	nameTok, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenArrow); err != nil {
		return nil, err
	}
	retTy, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Def{Name: nameTok.Text, Params: params, ReturnType: retTy, Body: body}, nil
}

// parseExtern: IDENT '(' params? ')' '->' TYPE ';'
func (p *Parser) parseExtern() (ast.Statement, error) {
	p.advance() // 'extern'
	nameTok, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenArrow); err != nil {
		return nil, err
	}
	retTy, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.Extern{Name: nameTok.Text, Params: params, ReturnType: retTy}, nil
}

// parseLet: IDENT ':' TYPE '=' expr ';'
func (p *Parser) parseLet() (ast.Statement, error) {
	p.advance() // 'let'
	identTok, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenEqual); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr(precLowest, &ty)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.Let{Ident: identTok.Text, Type: ty, Expr: expr}, nil
}

// parseIf: expr ':' INDENT stmt+ DEDENT (elif|else)?
func (p *Parser) parseIf() (ast.Statement, error) {
	p.advance() // 'if' or 'elif'
	cond, err := p.parseExpr(precLowest, nil)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	branch := ast.IfBranch{Kind: ast.BranchNone}
	switch p.current().Type {
	case lexer.TokenElif:
		elif, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		branch = ast.IfBranch{Kind: ast.BranchElif, Elif: elif.(*ast.If)}
	case lexer.TokenElse:
		p.advance()
		if _, err := p.expect(lexer.TokenColon); err != nil {
			return nil, err
		}
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		branch = ast.IfBranch{Kind: ast.BranchElse, Else: elseBody}
	}

	return &ast.If{Cond: cond, Then: then, Branch: branch}, nil
}

// parseWhile: expr ':' INDENT stmt+ DEDENT
func (p *Parser) parseWhile() (ast.Statement, error) {
	p.advance() // 'while'
	cond, err := p.parseExpr(precLowest, nil)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body}, nil
}

// parseReturn: expr ';'
func (p *Parser) parseReturn() (ast.Statement, error) {
	p.advance() // 'return'
	expr, err := p.parseExpr(precLowest, nil)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.Return{Expr: expr}, nil
}

// parseExpressionStatement: expr ';'?
func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	expr, err := p.parseExpr(precLowest, nil)
	if err != nil {
		return nil, err
	}
	if p.current().Type == lexer.TokenSemicolon {
		p.advance()
	}
	return &ast.ExpressionStmt{Expr: expr}, nil
}
