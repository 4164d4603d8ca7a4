// Package ast defines Mamba's closed sum types: data types, expressions and
// statements. The node set is fixed and known at build time, so each sum is
// a Go interface with an unexported tag method rather than an open class
// hierarchy — there is never a reason to type-switch on an unknown case.
package ast

import "fmt"

// Width is an integer bit width, one of the values Mamba's lexer recognizes.
type Width int

const (
	W8 Width = 8
	W16 Width = 16
	W32 Width = 32
	W64 Width = 64
	W128 Width = 128
)

// Kind discriminates the DataType sum.
type Kind int

const (
	KVoid Kind = iota
	KBool
	KStr
	KSignedInt
	KUnsignedInt
	KFloat
)

// DataType is Mamba's disjoint union over void, bool, str, and sized
// integer/float types. Integer/float variants carry a Width; the others
// ignore it.
type DataType struct {
	Kind  Kind
	Width Width
}

var (
	Void = DataType{Kind: KVoid}
	Bool = DataType{Kind: KBool}
	Str  = DataType{Kind: KStr}
)

func SignedInt(w Width) DataType   { return DataType{Kind: KSignedInt, Width: w} }
func UnsignedInt(w Width) DataType { return DataType{Kind: KUnsignedInt, Width: w} }
func Float(w Width) DataType       { return DataType{Kind: KFloat, Width: w} }

func (d DataType) IsInteger() bool {
	return d.Kind == KSignedInt || d.Kind == KUnsignedInt
}

func (d DataType) Signed() bool { return d.Kind == KSignedInt }

// String renders the surface-language spelling, e.g. "i32", "u8", "bool".
func (d DataType) String() string {
	switch d.Kind {
	case KVoid:
		return "void"
	case KBool:
		return "bool"
	case KStr:
		return "str"
	case KSignedInt:
		return fmt.Sprintf("i%d", d.Width)
	case KUnsignedInt:
		return fmt.Sprintf("u%d", d.Width)
	case KFloat:
		return fmt.Sprintf("f%d", d.Width)
	default:
		return "<unknown type>"
	}
}

// LLVM renders the LLVM IR type spelling: iN for every integer width and for
// bool (i1), ptr for str, void for void. Floats have no LLVM spelling in this
// implementation (spec.md's float Non-goal) and are never passed through
// this method by the generator.
func (d DataType) LLVM() string {
	switch d.Kind {
	case KVoid:
		return "void"
	case KBool:
		return "i1"
	case KStr:
		return "ptr"
	case KSignedInt, KUnsignedInt:
		return fmt.Sprintf("i%d", d.Width)
	default:
		return "<unsupported>"
	}
}

// IntegerRank totally orders integer types by bit width, used to pick a
// promotion direction in mixed-width expressions. Equal width, differing
// signedness ranks equal: the cast table treats same-width signed/unsigned
// pairs as equivalent bit patterns.
func (d DataType) IntegerRank() int {
	return int(d.Width)
}

// Equal reports whether two DataTypes are the identical variant and width.
func (d DataType) Equal(other DataType) bool {
	return d.Kind == other.Kind && d.Width == other.Width
}
