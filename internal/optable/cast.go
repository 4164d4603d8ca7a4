package optable

import (
	"fmt"

	"github.com/sangwon090/mamba/internal/ast"
)

var integerWidths = []ast.Width{ast.W8, ast.W16, ast.W32, ast.W64, ast.W128}

// allIntegerTypes enumerates every (signedness, width) pair plus bool
// (treated as an unsigned 1-bit integer for casting purposes only).
func allIntegerTypes() []ast.DataType {
	var out []ast.DataType
	for _, w := range integerWidths {
		out = append(out, ast.SignedInt(w), ast.UnsignedInt(w))
	}
	out = append(out, ast.Bool)
	return out
}

// populateCastTable registers a zext emitter for every widening (from,to)
// pair and a trunc emitter for every narrowing pair, mirroring
// original_source/src/codegen/llvm/types/cast.rs exactly: same-width
// cross-signedness pairs are never registered here (Cast's no-op
// short-circuit covers them instead), and every widening — even from a
// signed source — uses zext, not sext, matching the original's behavior.
func populateCastTable(t map[castKey]castFunc) {
	types := allIntegerTypes()
	for _, from := range types {
		for _, to := range types {
			fw := effectiveWidth(from)
			tw := effectiveWidth(to)
			if fw == tw {
				continue // equal or same-width cross-sign: no-op, no entry needed
			}
			from, to := from, to
			if tw > fw {
				t[castKey{From: from, To: to}] = func(ctx LabelSource, value string, from, to ast.DataType) Emitted {
					lbl := ctx.NextLabel()
					code := fmt.Sprintf("%s = zext %s %s to %s", lbl, from.LLVM(), value, to.LLVM())
					return Emitted{Value: lbl, Code: code}
				}
			} else {
				t[castKey{From: from, To: to}] = func(ctx LabelSource, value string, from, to ast.DataType) Emitted {
					lbl := ctx.NextLabel()
					code := fmt.Sprintf("%s = trunc %s %s to %s", lbl, from.LLVM(), value, to.LLVM())
					return Emitted{Value: lbl, Code: code}
				}
			}
		}
	}
}

// effectiveWidth treats bool as width 1 regardless of the zero-value Width
// DataType.Bool carries.
func effectiveWidth(d ast.DataType) int {
	if d.Kind == ast.KBool {
		return 1
	}
	return int(d.Width)
}
