package irgen

import (
	"fmt"
	"strings"

	"github.com/sangwon090/mamba/internal/ast"
	"github.com/sangwon090/mamba/internal/errs"
	"github.com/sangwon090/mamba/internal/optable"
)

// value is the (SSA name or constant spelling, type) pair generate_expr
// returns for every expression node (spec.md §4.3: "generate_expr →
// (code, value_token, type)" — code is returned separately as the first
// result of each emit* method instead of bundled into this struct).
type value struct {
	Value string
	Type  ast.DataType
}

// emitExpr dispatches the closed Expression sum.
func (g *generator) emitExpr(expr ast.Expression) (string, value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return g.emitLiteral(e)
	case *ast.Identifier:
		return g.emitIdentifier(e)
	case *ast.Unary:
		return g.emitUnary(e)
	case *ast.Infix:
		return g.emitInfix(e)
	case *ast.FnCall:
		return g.emitFnCall(e)
	default:
		return "", value{}, errs.New(errs.PhaseIRGen, errs.KindUnsupportedOperator, zeroPos,
			fmt.Sprintf("unsupported expression node %T", expr))
	}
}

// emitLiteral materializes a literal into a named SSA value via an
// alloca/store/load triplet (spec.md §4.3), uniformly for every literal
// kind: a string literal first gets a private unnamed_addr constant
// holding its bytes, then that constant's address is stored/loaded through
// the triplet exactly like an integer or bool constant would be.
func (g *generator) emitLiteral(lit *ast.LiteralExpr) (string, value, error) {
	if err := rejectFloat(lit.Type, zeroPos, "literal"); err != nil {
		return "", value{}, err
	}

	var out strings.Builder
	var spelling string
	if lit.Type.Kind == ast.KStr {
		name := g.ctx.NextGlobalName("str")
		body := string(lit.Lit.Bits)
		fmt.Fprintf(&out, "@%s = private unnamed_addr constant [%d x i8] c\"%s\\00\"\n",
			name, len(body)+1, llvmEscapeString(body))
		spelling = "@" + name
	} else {
		spelling = lit.Lit.Value.String()
	}

	ptrLbl := g.ctx.NextLabel()
	valLbl := g.ctx.NextLabel()
	fmt.Fprintf(&out, "%s = alloca %s, align 4\n", ptrLbl, lit.Type.LLVM())
	fmt.Fprintf(&out, "store %s %s, ptr %s, align 4\n", lit.Type.LLVM(), spelling, ptrLbl)
	fmt.Fprintf(&out, "%s = load %s, ptr %s, align 4\n", valLbl, lit.Type.LLVM(), ptrLbl)

	return out.String(), value{Value: valLbl, Type: lit.Type}, nil
}

// emitIdentifier resolves innermost→outermost: the scope stack (parameter
// frame then local scopes), then global_var (spec.md §4.3). Parameters are
// used directly as `%name`; locals and non-string globals are loaded;
// string globals yield `@name` directly since they're already a pointer
// constant.
func (g *generator) emitIdentifier(id *ast.Identifier) (string, value, error) {
	if ty, isParam, found := g.scopes.resolve(id.Name); found {
		if isParam {
			return "", value{Value: "%" + id.Name, Type: ty}, nil
		}
		lbl := g.ctx.NextLabel()
		code := fmt.Sprintf("%s = load %s, ptr %%%s, align 4\n", lbl, ty.LLVM(), id.Name)
		return code, value{Value: lbl, Type: ty}, nil
	}

	if gv, ok := g.ctx.globalVars[id.Name]; ok {
		if gv.Type.Kind == ast.KStr {
			return "", value{Value: "@" + id.Name, Type: gv.Type}, nil
		}
		lbl := g.ctx.NextLabel()
		code := fmt.Sprintf("%s = load %s, ptr @%s, align 4\n", lbl, gv.Type.LLVM(), id.Name)
		return code, value{Value: lbl, Type: gv.Type}, nil
	}

	return "", value{}, errs.New(errs.PhaseIRGen, errs.KindUnknownIdentifier, zeroPos,
		"unknown identifier: "+id.Name)
}

// emitUnary recurses into the operand, then looks up unary_op[(ty, op)].
func (g *generator) emitUnary(u *ast.Unary) (string, value, error) {
	code, operand, err := g.emitExpr(u.Right)
	if err != nil {
		return "", value{}, err
	}

	emitted, ok := optable.Unary(g.ctx, operand.Type, u.Op, operand.Value)
	if !ok {
		return "", value{}, errs.New(errs.PhaseIRGen, errs.KindUnsupportedOperator, zeroPos,
			fmt.Sprintf("operator %s is not supported on %s", u.Op, operand.Type))
	}

	var out strings.Builder
	out.WriteString(code)
	out.WriteString(withNewline(emitted.Code))
	return out.String(), value{Value: emitted.Value, Type: operand.Type}, nil
}

// emitInfix recurses into both sides, promotes the narrower operand to the
// wider type through the cast table if they differ, then looks up
// infix_op[(ty, op)]. Comparison operators yield bool regardless of the
// promoted operand type; every other operator's result shares it.
func (g *generator) emitInfix(inf *ast.Infix) (string, value, error) {
	leftCode, left, err := g.emitExpr(inf.Left)
	if err != nil {
		return "", value{}, err
	}
	rightCode, right, err := g.emitExpr(inf.Right)
	if err != nil {
		return "", value{}, err
	}

	var out strings.Builder
	out.WriteString(leftCode)
	out.WriteString(rightCode)

	ty := left.Type
	leftVal, rightVal := left.Value, right.Value
	if !left.Type.Equal(right.Type) {
		ty = optable.Wider(left.Type, right.Type)
		if !left.Type.Equal(ty) {
			v, code, ok := g.cast(leftVal, left.Type, ty)
			if !ok {
				return "", value{}, badCast(left.Type, ty)
			}
			out.WriteString(code)
			leftVal = v
		}
		if !right.Type.Equal(ty) {
			v, code, ok := g.cast(rightVal, right.Type, ty)
			if !ok {
				return "", value{}, badCast(right.Type, ty)
			}
			out.WriteString(code)
			rightVal = v
		}
	}

	emitted, ok := optable.Infix(g.ctx, ty, inf.Op, leftVal, rightVal)
	if !ok {
		return "", value{}, errs.New(errs.PhaseIRGen, errs.KindUnsupportedOperator, zeroPos,
			fmt.Sprintf("operator %s is not supported on %s", inf.Op, ty))
	}
	out.WriteString(withNewline(emitted.Code))

	resultType := ty
	if isComparisonOp(inf.Op) {
		resultType = ast.Bool
	}
	return out.String(), value{Value: emitted.Value, Type: resultType}, nil
}

// emitFnCall checks the callee against fn_decl for existence and arity
// (SPEC_FULL.md §4 item 5), casting each argument to its declared
// parameter type when they differ.
func (g *generator) emitFnCall(call *ast.FnCall) (string, value, error) {
	sig, ok := g.ctx.fnDecls[call.Ident]
	if !ok {
		return "", value{}, errs.New(errs.PhaseIRGen, errs.KindUnknownFunction, zeroPos,
			"unknown function: "+call.Ident)
	}
	if len(call.Args) != len(sig.ParamTypes) {
		return "", value{}, errs.New(errs.PhaseIRGen, errs.KindArityMismatch, zeroPos,
			fmt.Sprintf("%s expects %d argument(s), got %d", call.Ident, len(sig.ParamTypes), len(call.Args)))
	}

	var out strings.Builder
	argStrs := make([]string, len(call.Args))
	for i, arg := range call.Args {
		code, v, err := g.emitExpr(arg)
		if err != nil {
			return "", value{}, err
		}
		out.WriteString(code)

		val := v.Value
		if !v.Type.Equal(sig.ParamTypes[i]) {
			cv, castCode, ok := g.cast(v.Value, v.Type, sig.ParamTypes[i])
			if !ok {
				return "", value{}, badCast(v.Type, sig.ParamTypes[i])
			}
			out.WriteString(castCode)
			val = cv
		}
		argStrs[i] = fmt.Sprintf("%s %s", sig.ParamTypes[i].LLVM(), val)
	}

	if sig.ReturnType.Kind == ast.KVoid {
		fmt.Fprintf(&out, "call void @%s(%s)\n", call.Ident, strings.Join(argStrs, ", "))
		return out.String(), value{Type: ast.Void}, nil
	}

	lbl := g.ctx.NextLabel()
	fmt.Fprintf(&out, "%s = call %s @%s(%s)\n", lbl, sig.ReturnType.LLVM(), call.Ident, strings.Join(argStrs, ", "))
	return out.String(), value{Value: lbl, Type: sig.ReturnType}, nil
}

func isComparisonOp(op ast.Operator) bool {
	switch op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return true
	default:
		return false
	}
}

func badCast(from, to ast.DataType) error {
	return errs.New(errs.PhaseIRGen, errs.KindBadCast, zeroPos,
		fmt.Sprintf("no cast from %s to %s", from, to))
}

// llvmEscapeString renders s as an LLVM string-constant body: printable
// ASCII passes through, everything else (including '"' and '\') becomes a
// `\XX` hex escape.
func llvmEscapeString(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' || c < 0x20 || c >= 0x7f {
			fmt.Fprintf(&sb, "\\%02X", c)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
