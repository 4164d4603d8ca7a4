package irgen

import (
	"fmt"
	"strings"

	"github.com/sangwon090/mamba/internal/ast"
	"github.com/sangwon090/mamba/internal/errs"
	"github.com/sangwon090/mamba/internal/optable"
)

// emitBlock emits an ordered list of body statements, concatenating their
// code in source order.
func (g *generator) emitBlock(stmts []ast.Statement) (string, error) {
	var out strings.Builder
	for _, stmt := range stmts {
		code, err := g.emitLocal(stmt)
		if err != nil {
			return "", err
		}
		out.WriteString(code)
	}
	return out.String(), nil
}

// emitLocal dispatches the five forms legal inside a function body
// (spec.md §3).
func (g *generator) emitLocal(stmt ast.Statement) (string, error) {
	switch s := stmt.(type) {
	case *ast.Let:
		return g.emitLocalLet(s)
	case *ast.If:
		return g.emitIf(s)
	case *ast.While:
		return g.emitWhile(s)
	case *ast.Return:
		return g.emitReturn(s)
	case *ast.ExpressionStmt:
		return g.emitExpressionStmt(s)
	default:
		return "", errs.New(errs.PhaseIRGen, errs.KindIllegalLocal, zeroPos,
			fmt.Sprintf("%T is not legal inside a function body", stmt))
	}
}

// emitLocalLet allocates on the stack and stores the (possibly cast)
// initializer value, recording the binding's type in the innermost scope.
func (g *generator) emitLocalLet(stmt *ast.Let) (string, error) {
	if err := rejectFloat(stmt.Type, zeroPos, "local "+stmt.Ident); err != nil {
		return "", err
	}

	exprCode, val, err := g.emitExpr(stmt.Expr)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString(exprCode)

	value := val.Value
	if !val.Type.Equal(stmt.Type) {
		emitted, castCode, ok := g.cast(val.Value, val.Type, stmt.Type)
		if !ok {
			return "", errs.New(errs.PhaseIRGen, errs.KindBadCast, zeroPos,
				fmt.Sprintf("cannot initialize `%s: %s` from %s", stmt.Ident, stmt.Type, val.Type))
		}
		out.WriteString(castCode)
		value = emitted
	}

	fmt.Fprintf(&out, "%%%s = alloca %s, align 4\n", stmt.Ident, stmt.Type.LLVM())
	fmt.Fprintf(&out, "store %s %s, ptr %%%s, align 4\n", stmt.Type.LLVM(), value, stmt.Ident)

	g.scopes.declareLocal(stmt.Ident, stmt.Type)
	return out.String(), nil
}

func (g *generator) emitExpressionStmt(stmt *ast.ExpressionStmt) (string, error) {
	code, _, err := g.emitExpr(stmt.Expr)
	return code, err
}

// emitReturn evaluates the return expression, coercing it through the cast
// table to the enclosing function's declared return type if they differ.
func (g *generator) emitReturn(stmt *ast.Return) (string, error) {
	code, val, err := g.emitExpr(stmt.Expr)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString(code)

	value := val.Value
	retTy := g.scopes.returnType
	if !val.Type.Equal(retTy) {
		emitted, castCode, ok := g.cast(val.Value, val.Type, retTy)
		if !ok {
			return "", errs.New(errs.PhaseIRGen, errs.KindBadCast, zeroPos,
				fmt.Sprintf("cannot return %s as %s", val.Type, retTy))
		}
		out.WriteString(castCode)
		value = emitted
	}

	fmt.Fprintf(&out, "ret %s %s\n", retTy.LLVM(), value)
	return out.String(), nil
}

// emitIf evaluates the condition, branches to a then/false-edge label pair,
// and mints a shared continuation label whenever control can reach past the
// statement (spec.md §4.3 + scenario 7: two arms that both return need no
// continuation block at all). A bare `if` with no else has no else *block*,
// but its false edge still needs a real, distinct target: it must skip the
// then-block and land directly on the continuation, not alias the
// then-label the way a literal port of the original's else_idx=0 reuse
// would (see DESIGN.md's "Deliberate deviation" note).
func (g *generator) emitIf(stmt *ast.If) (string, error) {
	condCode, cond, err := g.emitExpr(stmt.Cond)
	if err != nil {
		return "", err
	}
	if !cond.Type.Equal(ast.Bool) {
		return "", errs.New(errs.PhaseIRGen, errs.KindUnsupportedType, zeroPos,
			"if condition must be bool, got "+cond.Type.String())
	}

	hasElse := stmt.Branch.Kind != ast.BranchNone
	thenLbl := g.ctx.NextBlockLabel()
	var falseLbl string
	if hasElse {
		falseLbl = g.ctx.NextBlockLabel()
	}

	var out strings.Builder
	out.WriteString(condCode)

	thenCode, err := g.emitBlock(stmt.Then)
	if err != nil {
		return "", err
	}
	thenReturns := endsWithReturn(thenCode)

	var elseCode string
	elseReturns := true
	if hasElse {
		switch stmt.Branch.Kind {
		case ast.BranchElif:
			elseCode, err = g.emitIf(stmt.Branch.Elif)
		case ast.BranchElse:
			elseCode, err = g.emitBlock(stmt.Branch.Else)
		}
		if err != nil {
			return "", err
		}
		elseReturns = endsWithReturn(elseCode)
	}

	// No else means the false edge has nowhere of its own to land: it
	// always needs the continuation block, even when the then-arm returns.
	needCont := !hasElse || !thenReturns || !elseReturns
	var contLbl string
	if needCont {
		contLbl = g.ctx.NextBlockLabel()
	}
	if !hasElse {
		falseLbl = contLbl
	}

	fmt.Fprintf(&out, "br i1 %s, label %%%s, label %%%s\n", cond.Value, thenLbl, falseLbl)

	fmt.Fprintf(&out, "%s:\n", thenLbl)
	out.WriteString(thenCode)
	if !thenReturns {
		fmt.Fprintf(&out, "br label %%%s\n", contLbl)
	}

	if hasElse {
		fmt.Fprintf(&out, "%s:\n", falseLbl)
		out.WriteString(elseCode)
		if !elseReturns {
			fmt.Fprintf(&out, "br label %%%s\n", contLbl)
		}
	}

	if needCont {
		fmt.Fprintf(&out, "%s:\n", contLbl)
	}

	return out.String(), nil
}

// emitWhile follows spec.md §4.3's specified header/body/exit contract (the
// one place the original source left codegen stubbed), with one addition
// the contract's wording doesn't spell out: a body that ends in `return`
// already terminates its block, so the trailing `br label %header` is
// skipped for that arm (same endsWithReturn check emitIf uses) rather than
// emitting a second terminator LLVM would reject.
func (g *generator) emitWhile(stmt *ast.While) (string, error) {
	header := g.ctx.NextBlockLabel()
	body := g.ctx.NextBlockLabel()
	exit := g.ctx.NextBlockLabel()

	var out strings.Builder
	fmt.Fprintf(&out, "br label %%%s\n", header)

	fmt.Fprintf(&out, "%s:\n", header)
	condCode, cond, err := g.emitExpr(stmt.Cond)
	if err != nil {
		return "", err
	}
	if !cond.Type.Equal(ast.Bool) {
		return "", errs.New(errs.PhaseIRGen, errs.KindUnsupportedType, zeroPos,
			"while condition must be bool, got "+cond.Type.String())
	}
	out.WriteString(condCode)
	fmt.Fprintf(&out, "br i1 %s, label %%%s, label %%%s\n", cond.Value, body, exit)

	fmt.Fprintf(&out, "%s:\n", body)
	bodyCode, err := g.emitBlock(stmt.Body)
	if err != nil {
		return "", err
	}
	out.WriteString(bodyCode)
	if !endsWithReturn(bodyCode) {
		fmt.Fprintf(&out, "br label %%%s\n", header)
	}

	fmt.Fprintf(&out, "%s:\n", exit)
	return out.String(), nil
}

// cast consults the shared cast table, returning the coerced value and the
// code needed to produce it.
func (g *generator) cast(value string, from, to ast.DataType) (string, string, bool) {
	emitted, ok := optable.Cast(g.ctx, value, from, to)
	if !ok {
		return "", "", false
	}
	return emitted.Value, withNewline(emitted.Code), true
}

func withNewline(code string) string {
	if code == "" {
		return ""
	}
	return code + "\n"
}
