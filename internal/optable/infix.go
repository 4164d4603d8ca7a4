package optable

import (
	"fmt"

	"github.com/sangwon090/mamba/internal/ast"
)

// cmpMnemonic maps a comparison operator to its icmp mnemonic. Grounded on
// original_source/src/parser/expression/mod.rs's Operator::to_mnemonic: the
// original emits the SAME signed mnemonic (slt/sle/sgt/sge) for both signed
// and unsigned operand types — it never switches to ult/ule/ugt/uge for an
// unsigned comparison. That is preserved here rather than silently
// corrected; eq/ne have no signed/unsigned distinction in icmp regardless.
var cmpMnemonic = map[ast.Operator]string{
	ast.OpEq: "eq", ast.OpNe: "ne",
	ast.OpLt: "slt", ast.OpLe: "sle",
	ast.OpGt: "sgt", ast.OpGe: "sge",
}

// populateInfixTable mirrors original_source/src/codegen/llvm/types/op.rs's
// infix_op() table: comparisons, then arithmetic (add/sub/mul always with
// the nsw flag, divide/modulo always sdiv/srem, shifts shl/ashr) registered
// identically for both SignedInteger and UnsignedInteger — the original
// never switches to a udiv/urem/lshr form for unsigned operands, a quirk
// preserved here rather than fixed. Bitwise and/or/xor and Bool and/or have
// no original analogue (op.rs never registers them); they are this table's
// Mamba additions for spec.md's full precedence ladder and SPEC_FULL.md §4
// item 3's logical operators, grounded on LLVM's ordinary signedness-free
// and/or/xor mnemonics.
func populateInfixTable(t map[opKey]infixFunc) {
	for cmp, mnemonic := range cmpMnemonic {
		mnemonic := mnemonic
		for _, w := range integerWidths {
			registerIcmp(t, ast.SignedInt(w), cmp, mnemonic)
			registerIcmp(t, ast.UnsignedInt(w), cmp, mnemonic)
		}
	}

	for _, w := range integerWidths {
		signed := ast.SignedInt(w)
		unsigned := ast.UnsignedInt(w)

		registerArith(t, signed, ast.OpAdd, "add nsw")
		registerArith(t, signed, ast.OpSub, "sub nsw")
		registerArith(t, signed, ast.OpMul, "mul nsw")
		registerArith(t, signed, ast.OpDiv, "sdiv")
		registerArith(t, signed, ast.OpMod, "srem")
		registerArith(t, signed, ast.OpShl, "shl")
		registerArith(t, signed, ast.OpShr, "ashr")

		registerArith(t, unsigned, ast.OpAdd, "add nsw")
		registerArith(t, unsigned, ast.OpSub, "sub nsw")
		registerArith(t, unsigned, ast.OpMul, "mul nsw")
		registerArith(t, unsigned, ast.OpDiv, "sdiv")
		registerArith(t, unsigned, ast.OpMod, "srem")
		registerArith(t, unsigned, ast.OpShl, "shl")
		registerArith(t, unsigned, ast.OpShr, "ashr")

		registerArith(t, signed, ast.OpBitwiseAnd, "and")
		registerArith(t, signed, ast.OpBitwiseOr, "or")
		registerArith(t, signed, ast.OpBitwiseXor, "xor")
		registerArith(t, unsigned, ast.OpBitwiseAnd, "and")
		registerArith(t, unsigned, ast.OpBitwiseOr, "or")
		registerArith(t, unsigned, ast.OpBitwiseXor, "xor")
	}

	registerArith(t, ast.Bool, ast.OpLogicalAnd, "and")
	registerArith(t, ast.Bool, ast.OpLogicalOr, "or")
}

func registerIcmp(t map[opKey]infixFunc, ty ast.DataType, op ast.Operator, mnemonic string) {
	t[opKey{Type: ty, Op: op}] = func(ctx LabelSource, ty ast.DataType, left, right string) Emitted {
		lbl := ctx.NextLabel()
		code := fmt.Sprintf("%s = icmp %s %s %s, %s", lbl, mnemonic, ty.LLVM(), left, right)
		return Emitted{Value: lbl, Code: code}
	}
}

func registerArith(t map[opKey]infixFunc, ty ast.DataType, op ast.Operator, mnemonic string) {
	t[opKey{Type: ty, Op: op}] = func(ctx LabelSource, ty ast.DataType, left, right string) Emitted {
		lbl := ctx.NextLabel()
		code := fmt.Sprintf("%s = %s %s %s, %s", lbl, mnemonic, ty.LLVM(), left, right)
		return Emitted{Value: lbl, Code: code}
	}
}
