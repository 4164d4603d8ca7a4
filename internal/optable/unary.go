package optable

import (
	"fmt"

	"github.com/sangwon090/mamba/internal/ast"
)

// populateUnaryTable mirrors original_source/src/codegen/llvm/types/op.rs's
// unary_op() table exactly: UnaryPlus on a signed integer is a pure
// transcription (no instruction), UnaryMinus and BitwiseNot on a signed
// integer both lower to `sub nsw <ty> 0, v` (the original registers the same
// emitter for both operators — preserved here rather than "fixed" to a
// dedicated xor-based complement), and BitwiseNot on an unsigned integer
// lowers to `xor <ty> v, -1`. LogicalNot on Bool is this table's one Mamba
// addition (SPEC_FULL.md §4 item 3: logical operators have no original
// analogue), grounded on the same xor-against-all-ones shape as unsigned
// BitwiseNot.
func populateUnaryTable(t map[opKey]unaryFunc) {
	for _, w := range integerWidths {
		signed := ast.SignedInt(w)

		t[opKey{Type: signed, Op: ast.OpUnaryPlus}] = func(ctx LabelSource, ty ast.DataType, operand string) Emitted {
			return Emitted{Value: operand}
		}

		t[opKey{Type: signed, Op: ast.OpUnaryMinus}] = func(ctx LabelSource, ty ast.DataType, operand string) Emitted {
			lbl := ctx.NextLabel()
			code := fmt.Sprintf("%s = sub nsw %s 0, %s", lbl, ty.LLVM(), operand)
			return Emitted{Value: lbl, Code: code}
		}

		t[opKey{Type: signed, Op: ast.OpBitwiseNot}] = func(ctx LabelSource, ty ast.DataType, operand string) Emitted {
			lbl := ctx.NextLabel()
			code := fmt.Sprintf("%s = sub nsw %s 0, %s", lbl, ty.LLVM(), operand)
			return Emitted{Value: lbl, Code: code}
		}

		unsigned := ast.UnsignedInt(w)
		t[opKey{Type: unsigned, Op: ast.OpBitwiseNot}] = func(ctx LabelSource, ty ast.DataType, operand string) Emitted {
			lbl := ctx.NextLabel()
			code := fmt.Sprintf("%s = xor %s %s, -1", lbl, ty.LLVM(), operand)
			return Emitted{Value: lbl, Code: code}
		}
	}

	t[opKey{Type: ast.Bool, Op: ast.OpLogicalNot}] = func(ctx LabelSource, ty ast.DataType, operand string) Emitted {
		lbl := ctx.NextLabel()
		code := fmt.Sprintf("%s = xor %s %s, -1", lbl, ty.LLVM(), operand)
		return Emitted{Value: lbl, Code: code}
	}
}
