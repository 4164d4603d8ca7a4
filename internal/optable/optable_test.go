package optable_test

import (
	"testing"

	"github.com/sangwon090/mamba/internal/ast"
	"github.com/sangwon090/mamba/internal/optable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLabels is the minimal optable.LabelSource a table test needs.
type fakeLabels struct{ n int }

func (f *fakeLabels) NextLabel() string {
	f.n++
	return "%t" + string(rune('0'+f.n))
}

func TestCast_SameWidthCrossSignIsNoOp(t *testing.T) {
	ctx := &fakeLabels{}
	emitted, ok := optable.Cast(ctx, "%5", ast.SignedInt(ast.W32), ast.UnsignedInt(ast.W32))
	require.True(t, ok)
	assert.Equal(t, "%5", emitted.Value)
	assert.Empty(t, emitted.Code)
}

func TestCast_WideningAlwaysUsesZext(t *testing.T) {
	ctx := &fakeLabels{}
	emitted, ok := optable.Cast(ctx, "%v", ast.SignedInt(ast.W8), ast.SignedInt(ast.W32))
	require.True(t, ok)
	assert.Contains(t, emitted.Code, "zext i8 %v to i32")
}

func TestCast_NarrowingUsesTrunc(t *testing.T) {
	ctx := &fakeLabels{}
	emitted, ok := optable.Cast(ctx, "%v", ast.UnsignedInt(ast.W64), ast.UnsignedInt(ast.W16))
	require.True(t, ok)
	assert.Contains(t, emitted.Code, "trunc i64 %v to i16")
}

func TestCast_NonIntegerHasNoEntry(t *testing.T) {
	ctx := &fakeLabels{}
	_, ok := optable.Cast(ctx, "%v", ast.Str, ast.SignedInt(ast.W32))
	assert.False(t, ok)
}

func TestInfix_ComparisonAlwaysSigned(t *testing.T) {
	ctx := &fakeLabels{}
	for _, ty := range []ast.DataType{ast.SignedInt(ast.W32), ast.UnsignedInt(ast.W32)} {
		emitted, ok := optable.Infix(ctx, ty, ast.OpLt, "%a", "%b")
		require.True(t, ok)
		assert.Contains(t, emitted.Code, "icmp slt")
	}
}

func TestInfix_ArithmeticUsesNswAndSignedDivRem(t *testing.T) {
	ctx := &fakeLabels{}
	for _, ty := range []ast.DataType{ast.SignedInt(ast.W32), ast.UnsignedInt(ast.W32)} {
		add, ok := optable.Infix(ctx, ty, ast.OpAdd, "%a", "%b")
		require.True(t, ok)
		assert.Contains(t, add.Code, "add nsw")

		div, ok := optable.Infix(ctx, ty, ast.OpDiv, "%a", "%b")
		require.True(t, ok)
		assert.Contains(t, div.Code, "sdiv")
	}
}

func TestInfix_BitwiseAndLogicalRegistered(t *testing.T) {
	ctx := &fakeLabels{}
	emitted, ok := optable.Infix(ctx, ast.SignedInt(ast.W32), ast.OpBitwiseAnd, "%a", "%b")
	require.True(t, ok)
	assert.Contains(t, emitted.Code, "and i32")

	emitted, ok = optable.Infix(ctx, ast.Bool, ast.OpLogicalAnd, "%a", "%b")
	require.True(t, ok)
	assert.Contains(t, emitted.Code, "and i1")
}

func TestUnary_MinusAndBitwiseNotShareSubNsw(t *testing.T) {
	ctx := &fakeLabels{}
	minus, ok := optable.Unary(ctx, ast.SignedInt(ast.W32), ast.OpUnaryMinus, "%v")
	require.True(t, ok)
	assert.Contains(t, minus.Code, "sub nsw i32 0, %v")

	not, ok := optable.Unary(ctx, ast.SignedInt(ast.W32), ast.OpBitwiseNot, "%v")
	require.True(t, ok)
	assert.Contains(t, not.Code, "sub nsw i32 0, %v")
}

func TestUnary_UnsignedBitwiseNotUsesXor(t *testing.T) {
	ctx := &fakeLabels{}
	emitted, ok := optable.Unary(ctx, ast.UnsignedInt(ast.W8), ast.OpBitwiseNot, "%v")
	require.True(t, ok)
	assert.Contains(t, emitted.Code, "xor i8 %v, -1")
}

func TestUnary_PlusIsTranscription(t *testing.T) {
	ctx := &fakeLabels{}
	emitted, ok := optable.Unary(ctx, ast.SignedInt(ast.W16), ast.OpUnaryPlus, "%v")
	require.True(t, ok)
	assert.Equal(t, "%v", emitted.Value)
	assert.Empty(t, emitted.Code)
}

func TestWider_PicksGreaterRank(t *testing.T) {
	got := optable.Wider(ast.SignedInt(ast.W8), ast.SignedInt(ast.W64))
	assert.Equal(t, ast.SignedInt(ast.W64), got)

	got = optable.Wider(ast.SignedInt(ast.W64), ast.SignedInt(ast.W8))
	assert.Equal(t, ast.SignedInt(ast.W64), got)
}
