package parser

import (
	"github.com/sangwon090/mamba/internal/ast"
	"github.com/sangwon090/mamba/internal/lexer"
)

// precedence is the Pratt ladder from spec.md §4.2, low to high. Logical
// and/or sit just above Lowest (SPEC_FULL.md §4 item 3: adjacent to
// EqualNotEqual, strictly below it so `a == b and c == d` parses as
// `(a == b) and (c == d)`).
type precedence int

const (
	precLowest precedence = iota
	precLogical
	precEqualNotEqual
	precLessGreater
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precShift
	precPlusMinus
	precMulDivMod
	precUnary
	precParen
	precFnCall
)

// prefixOp maps a token in prefix (nud) position to its unary operator.
// Only +, - and ~ are unary prefixes; `not` is handled separately because it
// applies to bool rather than integers.
var prefixOp = map[lexer.TokenType]ast.Operator{
	lexer.TokenPlus:  ast.OpUnaryPlus,
	lexer.TokenMinus: ast.OpUnaryMinus,
	lexer.TokenTilde: ast.OpBitwiseNot,
}

// infixPrecedence maps a token in infix (led) position to its binding
// precedence. A token not present here is not an infix operator at all.
var infixPrecedence = map[lexer.TokenType]precedence{
	lexer.TokenAnd: precLogical,
	lexer.TokenOr:  precLogical,

	lexer.TokenEqEq:  precEqualNotEqual,
	lexer.TokenNotEq: precEqualNotEqual,

	lexer.TokenLess:       precLessGreater,
	lexer.TokenGreater:    precLessGreater,
	lexer.TokenLessEq:     precLessGreater,
	lexer.TokenGreaterEq:  precLessGreater,

	lexer.TokenPipe: precBitwiseOr,
	lexer.TokenCaret: precBitwiseXor,
	lexer.TokenAmpersand: precBitwiseAnd,

	lexer.TokenShl: precShift,
	lexer.TokenShr: precShift,

	lexer.TokenPlus:  precPlusMinus,
	lexer.TokenMinus: precPlusMinus,

	lexer.TokenStar:    precMulDivMod,
	lexer.TokenSlash:   precMulDivMod,
	lexer.TokenPercent: precMulDivMod,

	lexer.TokenLParen: precFnCall,
}

var infixOp = map[lexer.TokenType]ast.Operator{
	lexer.TokenAnd:       ast.OpLogicalAnd,
	lexer.TokenOr:        ast.OpLogicalOr,
	lexer.TokenEqEq:      ast.OpEq,
	lexer.TokenNotEq:     ast.OpNe,
	lexer.TokenLess:      ast.OpLt,
	lexer.TokenGreater:   ast.OpGt,
	lexer.TokenLessEq:    ast.OpLe,
	lexer.TokenGreaterEq: ast.OpGe,
	lexer.TokenPipe:      ast.OpBitwiseOr,
	lexer.TokenCaret:     ast.OpBitwiseXor,
	lexer.TokenAmpersand: ast.OpBitwiseAnd,
	lexer.TokenShl:       ast.OpShl,
	lexer.TokenShr:       ast.OpShr,
	lexer.TokenPlus:      ast.OpAdd,
	lexer.TokenMinus:     ast.OpSub,
	lexer.TokenStar:      ast.OpMul,
	lexer.TokenSlash:     ast.OpDiv,
	lexer.TokenPercent:   ast.OpMod,
}
