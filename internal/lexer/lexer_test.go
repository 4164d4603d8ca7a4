package lexer_test

import (
	"math/big"
	"testing"

	"github.com/sangwon090/mamba/internal/ast"
	"github.com/sangwon090/mamba/internal/errs"
	"github.com/sangwon090/mamba/internal/lexer"
)

func TestLexer_BasicTokens(t *testing.T) {
	input := "let x: i32 = 1;"
	l := lexer.New(input, "test.mb")

	expected := []lexer.TokenType{
		lexer.TokenLet,
		lexer.TokenIdentifier,
		lexer.TokenColon,
		lexer.TokenTypeName,
		lexer.TokenEqual,
		lexer.TokenLiteralInt,
		lexer.TokenSemicolon,
		lexer.TokenEOF,
	}

	for i, exp := range expected {
		tok := l.Next()
		if tok.Type != exp {
			t.Errorf("token %d: expected %v, got %v", i, exp, tok.Type)
		}
	}
}

func TestLexer_IndentAndDedentBracketTheBlock(t *testing.T) {
	input := "def f() -> i32:\n" +
		"    return 0;\n"
	l := lexer.New(input, "test.mb")

	expected := []lexer.TokenType{
		lexer.TokenDef, lexer.TokenIdentifier, lexer.TokenLParen, lexer.TokenRParen,
		lexer.TokenArrow, lexer.TokenTypeName, lexer.TokenColon,
		lexer.TokenIndent,
		lexer.TokenReturn, lexer.TokenLiteralInt, lexer.TokenSemicolon,
		lexer.TokenDedent,
		lexer.TokenEOF,
	}

	for i, exp := range expected {
		tok := l.Next()
		if tok.Type != exp {
			t.Errorf("token %d: expected %v, got %v", i, exp, tok.Type)
		}
	}
}

func TestLexer_TwoSpaceIndentDoesNotReachIndentWidth(t *testing.T) {
	// indentWidth is 4; a 2-space body is still level 0, so no Indent token
	// is ever synthesized for it.
	input := "def f() -> i32:\n" +
		"  return 0;\n"
	l := lexer.New(input, "test.mb")

	for i, tok := range l.Tokenize() {
		if tok.Type == lexer.TokenIndent {
			t.Fatalf("token %d: unexpected INDENT for a 2-space body", i)
		}
	}
}

func TestLexer_DedentUnwindsMultipleLevelsAtOnce(t *testing.T) {
	input := "def f() -> i32:\n" +
		"    if true:\n" +
		"        return 1;\n" +
		"let y: i32 = 0;\n"
	l := lexer.New(input, "test.mb")

	var dedents int
	var tok lexer.Token
	for {
		tok = l.Next()
		if tok.Type == lexer.TokenDedent {
			dedents++
		}
		if tok.Type == lexer.TokenEOF {
			break
		}
	}
	if dedents != 2 {
		t.Errorf("expected 2 dedent tokens total, got %d", dedents)
	}
}

func TestLexer_BlankAndCommentOnlyLinesDoNotAffectIndentation(t *testing.T) {
	input := "def f() -> i32:\n" +
		"    # a comment\n" +
		"\n" +
		"    return 0;\n"
	l := lexer.New(input, "test.mb")

	var indents int
	for {
		tok := l.Next()
		if tok.Type == lexer.TokenIndent {
			indents++
		}
		if tok.Type == lexer.TokenEOF {
			break
		}
	}
	if indents != 1 {
		t.Errorf("expected exactly 1 Indent token, got %d", indents)
	}
}

func TestLexer_HashInsideStringIsNotAComment(t *testing.T) {
	input := `extern puts(s: str) -> i32;` + "\n"
	l := lexer.New(input, "test.mb")
	_ = l.Tokenize()
	if l.Errors().HasErrors() {
		t.Fatalf("unexpected lex errors: %v", l.Errors())
	}

	input2 := "let x: str = \"a # b\";\n"
	l2 := lexer.New(input2, "test.mb")
	toks := l2.Tokenize()
	var sawString bool
	for _, tok := range toks {
		if tok.Type == lexer.TokenLiteralString {
			sawString = true
			if tok.Text != "a # b" {
				t.Errorf("expected string body %q, got %q", "a # b", tok.Text)
			}
		}
	}
	if !sawString {
		t.Fatalf("expected a string literal token")
	}
}

func TestLexer_IntegerSuffixesSetWidthAndSignedness(t *testing.T) {
	tests := []struct {
		input string
		dt    ast.DataType
	}{
		{"7u8", ast.UnsignedInt(8)},
		{"123i64", ast.SignedInt(64)},
		{"9u", ast.UnsignedInt(32)},
		{"42", ast.SignedInt(32)},
	}

	for _, tt := range tests {
		l := lexer.New(tt.input, "test.mb")
		tok := l.Next()
		if tok.Type != lexer.TokenLiteralInt {
			t.Errorf("input %q: expected INT token, got %v", tt.input, tok.Type)
			continue
		}
		if !tok.DType.Equal(tt.dt) {
			t.Errorf("input %q: expected type %v, got %v", tt.input, tt.dt, tok.DType)
		}
	}
}

func TestLexer_LongestMatchOperatorScanning(t *testing.T) {
	tests := []struct {
		input string
		want  lexer.TokenType
	}{
		{"<<=", lexer.TokenShlEq},
		{"<<", lexer.TokenShl},
		{"<=", lexer.TokenLessEq},
		{"<", lexer.TokenLess},
		{"==", lexer.TokenEqEq},
		{"=", lexer.TokenEqual},
	}

	for _, tt := range tests {
		l := lexer.New(tt.input, "test.mb")
		tok := l.Next()
		if tok.Type != tt.want {
			t.Errorf("input %q: expected %v, got %v", tt.input, tt.want, tok.Type)
		}
	}
}

func TestLexer_KeywordsAndTypeNamesAreNotIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		want  lexer.TokenType
	}{
		{"if", lexer.TokenIf},
		{"elif", lexer.TokenElif},
		{"else", lexer.TokenElse},
		{"while", lexer.TokenWhile},
		{"and", lexer.TokenAnd},
		{"or", lexer.TokenOr},
		{"not", lexer.TokenNot},
		{"i32", lexer.TokenTypeName},
		{"u64", lexer.TokenTypeName},
		{"notarealkeyword", lexer.TokenIdentifier},
	}

	for _, tt := range tests {
		l := lexer.New(tt.input, "test.mb")
		tok := l.Next()
		if tok.Type != tt.want {
			t.Errorf("input %q: expected %v, got %v", tt.input, tt.want, tok.Type)
		}
	}
}

func TestLexer_BoolLiteralsCarryTheirValue(t *testing.T) {
	l := lexer.New("true false", "test.mb")

	tok := l.Next()
	if tok.Type != lexer.TokenLiteralBool || tok.Literal.Value.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("expected literal true, got %v %+v", tok.Type, tok.Literal)
	}
	tok = l.Next()
	if tok.Type != lexer.TokenLiteralBool || tok.Literal.Value.Cmp(big.NewInt(0)) != 0 {
		t.Errorf("expected literal false, got %v %+v", tok.Type, tok.Literal)
	}
}

// TestLexer_WideIntegerLiteralDoesNotWrap proves the digit accumulator is a
// big.Int, not a uint64: a u128 literal just past 2^64-1 must round-trip
// exactly, matching the original lexer's own i128/u128-valued Literal
// variants (original_source/src/lexer/token.rs).
func TestLexer_WideIntegerLiteralDoesNotWrap(t *testing.T) {
	const digits = "18446744073709551616" // 2^64, one past uint64's max
	l := lexer.New(digits+"u128", "test.mb")

	tok := l.Next()
	if tok.Type != lexer.TokenLiteralInt {
		t.Fatalf("expected INT token, got %v", tok.Type)
	}
	want, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		t.Fatalf("test bug: could not parse %q as a base-10 big.Int", digits)
	}
	if tok.Literal.Value.Cmp(want) != 0 {
		t.Errorf("expected literal value %s, got %s", want, tok.Literal.Value)
	}
	if l.Errors().HasErrors() {
		t.Fatalf("unexpected lex errors for an in-range u128 literal: %v", l.Errors())
	}
}

// TestLexer_OversizedLiteralForItsWidthIsReported proves a literal that
// overflows even a 128-bit accumulator's declared width is caught rather
// than silently truncated.
func TestLexer_OversizedLiteralForItsWidthIsReported(t *testing.T) {
	l := lexer.New("256u8", "test.mb")
	_ = l.Tokenize()
	if !l.Errors().HasErrors() {
		t.Fatalf("expected an integer overflow error for 256u8")
	}
	if l.Errors().Errors[0].Kind != errs.KindIntegerOverflow {
		t.Errorf("expected KindIntegerOverflow, got %v", l.Errors().Errors[0].Kind)
	}
}

func TestLexer_UnterminatedStringIsReported(t *testing.T) {
	l := lexer.New(`"never closed`, "test.mb")
	_ = l.Tokenize()
	if !l.Errors().HasErrors() {
		t.Fatalf("expected an unterminated string error")
	}
}

func TestLexer_UnrecognizedByteIsReportedAndScanningContinues(t *testing.T) {
	l := lexer.New("let x " + "`" + " = 1;", "test.mb")
	toks := l.Tokenize()
	if !l.Errors().HasErrors() {
		t.Fatalf("expected an unrecognized-byte error")
	}
	if toks[len(toks)-1].Type != lexer.TokenEOF {
		t.Errorf("expected scanning to continue through to EOF despite the bad byte")
	}
}

func TestLexer_TrailingWhitespaceUnwindsToEOF(t *testing.T) {
	input := "def f() -> i32:\n" +
		"    return 0;\n" +
		"   \n"
	l := lexer.New(input, "test.mb")
	toks := l.Tokenize()
	last := toks[len(toks)-1]
	if last.Type != lexer.TokenEOF {
		t.Fatalf("expected stream to end in EOF, got %v", last.Type)
	}
}
