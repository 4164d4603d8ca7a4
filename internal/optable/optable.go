// Package optable is the shared cast/operator lookup described in spec.md
// §4.4: three frozen maps (cast, unary, infix), built once under sync.Once (spec.md §5: "at
// most once under concurrent first touch... then immutable and safe for
// unsynchronized concurrent reads"), replacing the combinatorial
// (type,operator) match statements the IR generator would otherwise need.
//
// Grounded on other_examples/5ca52f0c_sokoide-llvm5__codegen-generator.go.go
// for the "closure mints a fresh SSA label and returns emitted code" shape,
// and on original_source/src/codegen/llvm/types/{cast,op}.rs for the
// exhaustive per-width-pair population strategy (including that original's
// cast table only registers zext/trunc entries — it never registers a
// same-width cross-signedness pair, leaving that case to the no-op path).
package optable

import (
	"sync"

	"github.com/sangwon090/mamba/internal/ast"
)

// LabelSource mints a fresh SSA label (e.g. "%5"). irgen.GlobalContext
// implements this so table emitters never need their own counter.
type LabelSource interface {
	NextLabel() string
}

// Emitted is the (value, code) pair every table entry produces: value is
// the SSA name (or literal) the emitted code computes, code is the IR line
// (or empty string for a no-op transcription).
type Emitted struct {
	Value string
	Code  string
}

type castKey struct {
	From ast.DataType
	To   ast.DataType
}

type opKey struct {
	Type ast.DataType
	Op   ast.Operator
}

type castFunc func(ctx LabelSource, value string, from, to ast.DataType) Emitted
type unaryFunc func(ctx LabelSource, ty ast.DataType, operand string) Emitted
type infixFunc func(ctx LabelSource, ty ast.DataType, left, right string) Emitted

var (
	once       sync.Once
	castTable  map[castKey]castFunc
	unaryTable map[opKey]unaryFunc
	infixTable map[opKey]infixFunc
)

func ensureInit() {
	once.Do(func() {
		castTable = make(map[castKey]castFunc)
		unaryTable = make(map[opKey]unaryFunc)
		infixTable = make(map[opKey]infixFunc)
		populateCastTable(castTable)
		populateUnaryTable(unaryTable)
		populateInfixTable(infixTable)
	})
}

// Cast coerces value from `from` to `to`, consulting the cast table. Equal
// types and same-width signed/unsigned pairs are a no-op transcription
// (spec.md §4.3: "no instruction emitted in principle"). ok is false when
// no cast exists between the two types (e.g. either side is non-integer),
// which the caller surfaces as IRGenError::BadCast.
func Cast(ctx LabelSource, value string, from, to ast.DataType) (Emitted, bool) {
	ensureInit()
	if from.Equal(to) {
		return Emitted{Value: value}, true
	}
	if from.IsInteger() && to.IsInteger() && from.Width == to.Width {
		return Emitted{Value: value}, true
	}
	fn, ok := castTable[castKey{From: from, To: to}]
	if !ok {
		return Emitted{}, false
	}
	return fn(ctx, value, from, to), true
}

// Unary looks up and invokes the emitter for op on a value of type ty.
func Unary(ctx LabelSource, ty ast.DataType, op ast.Operator, operand string) (Emitted, bool) {
	ensureInit()
	fn, ok := unaryTable[opKey{Type: ty, Op: op}]
	if !ok {
		return Emitted{}, false
	}
	return fn(ctx, ty, operand), true
}

// Infix looks up and invokes the emitter for op over two operands already
// unified to type ty (the caller promotes through Cast first).
func Infix(ctx LabelSource, ty ast.DataType, op ast.Operator, left, right string) (Emitted, bool) {
	ensureInit()
	fn, ok := infixTable[opKey{Type: ty, Op: op}]
	if !ok {
		return Emitted{}, false
	}
	return fn(ctx, ty, left, right), true
}

// Wider returns whichever of a, b has the greater IntegerRank, used by the
// generator to pick a promotion direction in mixed-width expressions
// (spec.md §3: "a total order is defined on integer types by bit width").
func Wider(a, b ast.DataType) ast.DataType {
	if b.IntegerRank() > a.IntegerRank() {
		return b
	}
	return a
}
