// Package irgen lowers an ast.Program to textual LLVM IR (spec.md §4.3).
// Ported from original_source/src/codegen/llvm/mod.rs's GlobalContext /
// ScopedContext split and its generate_statement/generate_expr recursion
// shape, and from other_examples/5ca52f0c_sokoide-llvm5's emit/newLabel
// helper style and its "scan the trailing emitted line for ret" trick for
// deciding whether a block needs a following unconditional branch.
package irgen

import (
	"fmt"

	"github.com/sangwon090/mamba/internal/ast"
)

// fnSig is a recorded function signature, built from Def/Extern and
// consulted for FnCall arity/type checking (SPEC_FULL.md §4 item 5).
type fnSig struct {
	ParamTypes []ast.DataType
	ReturnType ast.DataType
}

// globalVar is a recorded top-level Let binding (spec.md §4.3's
// `global_var: map<name, Literal>`, reduced to the type needed to load or
// reference it from an expression; the literal itself is not kept).
type globalVar struct {
	Type ast.DataType
}

// GlobalContext is the per-compilation state shared across the whole
// program: the monotonic label counter and the two top-level symbol
// tables. It implements optable.LabelSource so the operator/cast table
// closures can mint SSA labels without their own counter.
type GlobalContext struct {
	globalVars map[string]globalVar
	fnDecls    map[string]fnSig
	labelIdx   uint64
}

func newGlobalContext() *GlobalContext {
	return &GlobalContext{
		globalVars: make(map[string]globalVar),
		fnDecls:    make(map[string]fnSig),
	}
}

// nextIndex mints the next raw label index, shared by both the `%N` SSA
// value form and the `lN` block label form (spec.md §4.3: "Every fresh
// temporary comes from GlobalContext::get_label(); labels are never
// reused").
func (g *GlobalContext) nextIndex() uint64 {
	idx := g.labelIdx
	g.labelIdx++
	return idx
}

// NextLabel mints a fresh SSA value name in `%N` form. Implements
// optable.LabelSource.
func (g *GlobalContext) NextLabel() string {
	return fmt.Sprintf("%%%d", g.nextIndex())
}

// NextBlockLabel mints a fresh basic-block label in bare `lN` form (used on
// its own line as `lN:` and referenced as `%lN` in a branch).
func (g *GlobalContext) NextBlockLabel() string {
	return fmt.Sprintf("l%d", g.nextIndex())
}

// NextGlobalName mints a fresh file-scope global name from the same
// monotonic counter, for anonymous constants such as string literals
// (e.g. "str.3").
func (g *GlobalContext) NextGlobalName(prefix string) string {
	return fmt.Sprintf("%s.%d", prefix, g.nextIndex())
}

// frameKind discriminates a ScopedContext entry: spec.md §4.3's
// `FnDecl(params, return_type)` vs `Scope(locals)`.
type frameKind int

const (
	frameParams frameKind = iota
	frameLocals
)

type frame struct {
	kind frameKind
	vars map[string]ast.DataType
}

// scopeStack mirrors spec.md §4.3's scope_stack: function entry pushes a
// params frame then a locals frame; function exit pops both.
type scopeStack struct {
	frames     []frame
	returnType ast.DataType
}

func (s *scopeStack) pushFunc(params map[string]ast.DataType, returnType ast.DataType) {
	s.returnType = returnType
	s.frames = append(s.frames, frame{kind: frameParams, vars: params})
	s.frames = append(s.frames, frame{kind: frameLocals, vars: make(map[string]ast.DataType)})
}

func (s *scopeStack) popFunc() {
	s.frames = s.frames[:len(s.frames)-2]
}

func (s *scopeStack) declareLocal(name string, ty ast.DataType) {
	s.frames[len(s.frames)-1].vars[name] = ty
}

// resolve walks the scope stack innermost-to-outermost, reporting whether
// name is a function parameter (referenced directly as `%name`) or a local
// (loaded from its alloca). found is false if name isn't in scope at all.
func (s *scopeStack) resolve(name string) (ty ast.DataType, isParam bool, found bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if t, ok := s.frames[i].vars[name]; ok {
			return t, s.frames[i].kind == frameParams, true
		}
	}
	return ast.DataType{}, false, false
}
