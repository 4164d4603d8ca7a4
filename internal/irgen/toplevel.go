package irgen

import (
	"fmt"
	"strings"

	"github.com/sangwon090/mamba/internal/ast"
	"github.com/sangwon090/mamba/internal/errs"
)

// emitTopLevel dispatches the three legal top-level forms (spec.md §4.3:
// "Any other → fatal IllegalTopLevel").
func (g *generator) emitTopLevel(stmt ast.Statement) (string, error) {
	switch s := stmt.(type) {
	case *ast.Let:
		return g.emitGlobalLet(s)
	case *ast.Extern:
		return g.emitExtern(s)
	case *ast.Def:
		return g.emitDef(s)
	default:
		return "", errs.New(errs.PhaseIRGen, errs.KindIllegalTopLevel, zeroPos,
			fmt.Sprintf("%T is not legal at top level", stmt))
	}
}

// emitGlobalLet emits a global variable. SPEC_FULL.md §4 item 6 restricts
// a global's initializer to a literal expression — LLVM globals need a
// constant initializer, and Mamba has no constant-folding pass to derive
// one from an arbitrary expression.
func (g *generator) emitGlobalLet(stmt *ast.Let) (string, error) {
	if err := rejectFloat(stmt.Type, zeroPos, "global "+stmt.Ident); err != nil {
		return "", err
	}
	lit, ok := stmt.Expr.(*ast.LiteralExpr)
	if !ok {
		return "", errs.New(errs.PhaseIRGen, errs.KindNonConstantGlobal, zeroPos,
			"global `"+stmt.Ident+"` must be initialized with a literal")
	}

	g.ctx.globalVars[stmt.Ident] = globalVar{Type: stmt.Type}

	if stmt.Type.Kind == ast.KStr {
		body := string(lit.Lit.Bits)
		line := fmt.Sprintf("@%s = private unnamed_addr constant [%d x i8] c\"%s\\00\"\n",
			stmt.Ident, len(body)+1, llvmEscapeString(body))
		return line, nil
	}

	return fmt.Sprintf("@%s = global %s %s\n", stmt.Ident, stmt.Type.LLVM(), lit.Lit.Value.String()), nil
}

// emitExtern declares a function with no body, provided by the link step.
func (g *generator) emitExtern(stmt *ast.Extern) (string, error) {
	paramTypes := make([]ast.DataType, len(stmt.Params))
	paramDecls := make([]string, len(stmt.Params))
	for i, p := range stmt.Params {
		if err := rejectFloat(p.Type, zeroPos, "extern "+stmt.Name+" param "+p.Name); err != nil {
			return "", err
		}
		paramTypes[i] = p.Type
		paramDecls[i] = p.Type.LLVM()
	}
	if err := rejectFloat(stmt.ReturnType, zeroPos, "extern "+stmt.Name+" return type"); err != nil {
		return "", err
	}

	g.ctx.fnDecls[stmt.Name] = fnSig{ParamTypes: paramTypes, ReturnType: stmt.ReturnType}

	return fmt.Sprintf("declare %s @%s(%s) nounwind\n",
		stmt.ReturnType.LLVM(), stmt.Name, strings.Join(paramDecls, ", ")), nil
}

// emitDef emits a function definition: signature, pushed scopes, body,
// popped scopes.
func (g *generator) emitDef(stmt *ast.Def) (string, error) {
	paramTypes := make([]ast.DataType, len(stmt.Params))
	paramDecls := make([]string, len(stmt.Params))
	paramScope := make(map[string]ast.DataType, len(stmt.Params))
	for i, p := range stmt.Params {
		if err := rejectFloat(p.Type, zeroPos, "def "+stmt.Name+" param "+p.Name); err != nil {
			return "", err
		}
		paramTypes[i] = p.Type
		paramDecls[i] = fmt.Sprintf("%s %%%s", p.Type.LLVM(), p.Name)
		paramScope[p.Name] = p.Type
	}
	if err := rejectFloat(stmt.ReturnType, zeroPos, "def "+stmt.Name+" return type"); err != nil {
		return "", err
	}

	// Recorded before the body is lowered so a recursive call resolves.
	g.ctx.fnDecls[stmt.Name] = fnSig{ParamTypes: paramTypes, ReturnType: stmt.ReturnType}

	g.scopes.pushFunc(paramScope, stmt.ReturnType)
	body, err := g.emitBlock(stmt.Body)
	g.scopes.popFunc()
	if err != nil {
		return "", err
	}

	var out strings.Builder
	fmt.Fprintf(&out, "define %s @%s(%s) {\n", stmt.ReturnType.LLVM(), stmt.Name, strings.Join(paramDecls, ", "))
	out.WriteString(body)
	out.WriteString("}\n\n")
	return out.String(), nil
}
