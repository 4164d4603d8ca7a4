package irgen

import (
	"fmt"
	"strings"

	"github.com/sangwon090/mamba/internal/ast"
	"github.com/sangwon090/mamba/internal/errs"
)

// Options configures a single Generate call; its zero value (no prelude,
// no target triple line) is a valid configuration. The CLI driver populates
// this from internal/config's Codegen section.
type Options struct {
	TargetTriple string
	EmitPrelude  bool
}

// prelude is the "implicit prelude of IR declarations" spec.md §4.3 calls
// for: declarations for a small set of runtime helpers. They are emitted as
// IR text only and are not entered in the generator's function table, so a
// call to one of them from Mamba source is reported as an unknown function
// unless the source declares it with its own `extern`. Grounded on
// other_examples/5ca52f0c_sokoide-llvm5's own declare-block prelude
// (printf/malloc/free), trimmed to what Mamba's integer/str/bool type
// system can actually pass across an extern boundary.
const prelude = `declare i32 @printf(ptr, ...) nounwind
declare ptr @malloc(i64) nounwind
declare void @free(ptr) nounwind
`

// generator holds the state of a single Program → IR lowering. It is
// never reused across compilations (spec.md §5: "scoped to a single IRGen
// instance").
type generator struct {
	ctx    *GlobalContext
	scopes scopeStack
}

// Generate lowers prog to a complete textual IR module, or returns the
// first IRGenError encountered (spec.md §7: "No partial-IR emission on
// error").
func Generate(prog *ast.Program, opts Options) (string, error) {
	g := &generator{ctx: newGlobalContext()}

	var out strings.Builder
	if opts.TargetTriple != "" {
		fmt.Fprintf(&out, "target triple = %q\n\n", opts.TargetTriple)
	}
	if opts.EmitPrelude {
		out.WriteString(prelude)
		out.WriteString("\n")
	}

	for _, stmt := range prog.Statements {
		code, err := g.emitTopLevel(stmt)
		if err != nil {
			return "", err
		}
		out.WriteString(code)
	}

	return out.String(), nil
}

// rejectFloat enforces spec.md's float Non-goal at the point a DataType
// enters codegen: LLVM's float spelling is unimplemented (ast.DataType.LLVM
// returns "<unsupported>" for it), so any float reaching here is a
// generator-level error rather than a silently wrong emission.
func rejectFloat(ty ast.DataType, pos errs.Position, context string) error {
	if ty.Kind == ast.KFloat {
		return errs.New(errs.PhaseIRGen, errs.KindUnsupportedType, pos,
			fmt.Sprintf("floating-point types are not supported (%s: %s)", context, ty))
	}
	return nil
}

// endsWithReturn reports whether code's last non-blank line is a `ret`
// instruction. Used by If/While emission to decide whether a block needs a
// following unconditional branch — a deliberately shallow, textual check
// rather than a structural reachability analysis, grounded on
// sokoide-llvm5's own VisitIfStmt/VisitFunctionDecl trailing-line scan.
func endsWithReturn(code string) bool {
	lines := strings.Split(code, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		return strings.HasPrefix(line, "ret ")
	}
	return false
}

var zeroPos = errs.Position{}
