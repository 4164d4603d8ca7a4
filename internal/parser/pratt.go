package parser

import (
	"github.com/sangwon090/mamba/internal/ast"
	"github.com/sangwon090/mamba/internal/errs"
	"github.com/sangwon090/mamba/internal/lexer"
)

// parseExpr is the Pratt entry point (spec.md §4.2). expectedType, when
// non-nil, is the hint an enclosing Let supplies (its declared type) for
// coercing an unsuffixed integer literal's width; return statements and call
// arguments pass no hint. Per spec.md §9 it wins
// over the i32 default but never overrides an explicit source suffix
// (SPEC_FULL.md §4 item 1).
func (p *Parser) parseExpr(prec precedence, expectedType *ast.DataType) (ast.Expression, error) {
	left, err := p.parseNud(expectedType)
	if err != nil {
		return nil, err
	}

	for {
		tok := p.current()
		opPrec, isInfix := infixPrecedence[tok.Type]
		if !isInfix || opPrec <= prec {
			break
		}

		if tok.Type == lexer.TokenLParen {
			left, err = p.parseCallSuffix(left)
			if err != nil {
				return nil, err
			}
			continue
		}

		op := infixOp[tok.Type]
		p.advance()
		right, err := p.parseExpr(opPrec, nil)
		if err != nil {
			return nil, err
		}
		left = &ast.Infix{Op: op, Left: left, Right: right}
	}

	return left, nil
}

// parseNud builds the null-denotation for the current token: a literal,
// identifier, parenthesized subexpression, or unary prefix.
func (p *Parser) parseNud(expectedType *ast.DataType) (ast.Expression, error) {
	tok := p.current()

	switch tok.Type {
	case lexer.TokenLiteralInt:
		p.advance()
		ty := tok.DType
		if expectedType != nil && !tok.Literal.Explicit {
			ty = *expectedType
		}
		return &ast.LiteralExpr{Lit: tok.Literal, Type: ty}, nil

	case lexer.TokenLiteralString:
		p.advance()
		return &ast.LiteralExpr{Lit: tok.Literal, Type: ast.Str}, nil

	case lexer.TokenLiteralBool:
		p.advance()
		return &ast.LiteralExpr{Lit: tok.Literal, Type: ast.Bool}, nil

	case lexer.TokenIdentifier:
		p.advance()
		return &ast.Identifier{Name: tok.Text}, nil

	case lexer.TokenLParen:
		p.advance()
		expr, err := p.parseExpr(precLowest, expectedType)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.TokenNot:
		p.advance()
		right, err := p.parseExpr(precUnary, nil)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.OpLogicalNot, Right: right}, nil

	default:
		if op, ok := prefixOp[tok.Type]; ok {
			p.advance()
			right, err := p.parseExpr(precUnary, expectedType)
			if err != nil {
				return nil, err
			}
			return &ast.Unary{Op: op, Right: right}, nil
		}
		if tok.Type == lexer.TokenEOF {
			return nil, p.insufficientTokens("expression")
		}
		return nil, errs.New(errs.PhaseParser, errs.KindUnknownOperator, p.errPos(),
			"unexpected token in expression: "+tok.Type.String())
	}
}

// parseCallSuffix parses the `(` led hook: a comma-separated argument list
// ending at `)`. left must be the callee's Identifier.
func (p *Parser) parseCallSuffix(left ast.Expression) (ast.Expression, error) {
	ident, ok := left.(*ast.Identifier)
	if !ok {
		return nil, errs.New(errs.PhaseParser, errs.KindUnexpectedToken, p.errPos(),
			"call target must be an identifier")
	}
	p.advance() // consume '('
	var args []ast.Expression
	for p.current().Type != lexer.TokenRParen {
		arg, err := p.parseExpr(precLowest, nil)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.current().Type == lexer.TokenComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return &ast.FnCall{Ident: ident.Name, Args: args}, nil
}
