package lower

import (
	"fmt"
	"strings"

	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/typelower"
)

// LowerBlock lowers every statement of block in sequence, indenting each
// line by indent. sc is mutated in place as statements bind names — callers
// that need an isolated scope (closures, try-blocks) must pass sc.Clone().
func LowerBlock(block *ast.BlockStmt, sc *Scope, ctx *Context, indent string) string {
	var b strings.Builder
	for _, s := range block.Stmts {
		b.WriteString(indent)
		b.WriteString(LowerStmt(s, sc, ctx, indent))
		b.WriteString("\n")
	}
	return b.String()
}

// LowerStmt lowers a single statement to Rust text (§4.5). indent is the
// current indentation prefix, used for nested block bodies.
func LowerStmt(s ast.Stmt, sc *Scope, ctx *Context, indent string) string {
	switch n := s.(type) {
	case *ast.ExprStmt:
		return LowerExpr(n.Expr, sc, ctx) + ";"
	case *ast.ReturnStmt:
		if n.Value == nil {
			return "return;"
		}
		return fmt.Sprintf("return %s;", LowerExpr(n.Value, sc, ctx))
	case *ast.BlockStmt:
		return lowerNestedBlock(n, sc.Clone(), ctx, indent)
	case *ast.IfStmt:
		return lowerIfStmt(n, sc, ctx, indent)
	case *ast.WhileStmt:
		return fmt.Sprintf("while %s %s", LowerExpr(n.Test, sc, ctx), lowerBodyAsBlock(n.Body, sc, ctx, indent))
	case *ast.ForStmt:
		return lowerForStmt(n, sc, ctx, indent)
	case *ast.ForInStmt:
		return lowerForInStmt(n, sc, ctx, indent)
	case *ast.ForOfStmt:
		return lowerForOfStmt(n, sc, ctx, indent)
	case *ast.ThrowStmt:
		return lowerThrowStmt(n, sc, ctx)
	case *ast.BreakStmt:
		return "break;"
	case *ast.ContinueStmt:
		return "continue;"
	case *ast.TryStmt:
		return lowerTryStmt(n, sc, ctx, indent)
	case *ast.VarDeclStmt:
		return lowerVarDeclStmt(n, sc, ctx)
	default:
		return s.String()
	}
}

func lowerNestedBlock(n *ast.BlockStmt, sc *Scope, ctx *Context, indent string) string {
	inner := indent + "    "
	return "{\n" + LowerBlock(n, sc, ctx, inner) + indent + "}"
}

// lowerBodyAsBlock lowers a loop/if body, wrapping a bare (non-block)
// statement in braces so the emitted Rust is always a block.
func lowerBodyAsBlock(body ast.Stmt, sc *Scope, ctx *Context, indent string) string {
	if block, ok := body.(*ast.BlockStmt); ok {
		return lowerNestedBlock(block, sc.Clone(), ctx, indent)
	}
	inner := indent + "    "
	return "{\n" + inner + LowerStmt(body, sc.Clone(), ctx, inner) + "\n" + indent + "}"
}

func lowerIfStmt(n *ast.IfStmt, sc *Scope, ctx *Context, indent string) string {
	test := LowerExpr(n.Test, sc, ctx)
	cons := lowerBodyAsBlock(n.Cons, sc, ctx, indent)
	if n.Alt == nil {
		return fmt.Sprintf("if %s %s", test, cons)
	}
	if elseIf, ok := n.Alt.(*ast.IfStmt); ok {
		return fmt.Sprintf("if %s %s else %s", test, cons, lowerIfStmt(elseIf, sc, ctx, indent))
	}
	return fmt.Sprintf("if %s %s else %s", test, cons, lowerBodyAsBlock(n.Alt, sc, ctx, indent))
}

// lowerForStmt implements §4.5's "For(;;)" rule: init becomes a preceding
// statement, test defaults to `true`, and the update expression is
// appended to the end of the body, all emitted as a `while`.
func lowerForStmt(n *ast.ForStmt, sc *Scope, ctx *Context, indent string) string {
	inner := sc.Clone()

	var init string
	if n.Init != nil {
		init = LowerStmt(n.Init, inner, ctx, indent) + "\n" + indent
	}

	test := "true"
	if n.Test != nil {
		test = LowerExpr(n.Test, inner, ctx)
	}

	bodyIndent := indent + "    "
	var body strings.Builder
	body.WriteString("{\n")
	if block, ok := n.Body.(*ast.BlockStmt); ok {
		body.WriteString(LowerBlock(block, inner, ctx, bodyIndent))
	} else {
		body.WriteString(bodyIndent)
		body.WriteString(LowerStmt(n.Body, inner, ctx, bodyIndent))
		body.WriteString("\n")
	}
	if n.Update != nil {
		body.WriteString(bodyIndent)
		body.WriteString(LowerExpr(n.Update, inner, ctx))
		body.WriteString(";\n")
	}
	body.WriteString(indent)
	body.WriteString("}")

	return fmt.Sprintf("%swhile %s %s", init, test, body.String())
}

// lowerForInStmt and lowerForOfStmt implement §4.5's "For-in / For-of":
// iterate the expression by cloned iterator, binding inherits the type
// annotation when present.
func lowerForInStmt(n *ast.ForInStmt, sc *Scope, ctx *Context, indent string) string {
	inner := sc.Clone()
	if n.BindingType != nil {
		inner.Bind(n.Binding, typelower.Lower(n.BindingType, ""))
	}
	right := LowerExpr(n.Right, sc, ctx)
	body := lowerBodyAsBlock(n.Body, inner, ctx, indent)
	return fmt.Sprintf("for %s in (%s).clone() %s", n.Binding, right, body)
}

func lowerForOfStmt(n *ast.ForOfStmt, sc *Scope, ctx *Context, indent string) string {
	inner := sc.Clone()
	if n.BindingType != nil {
		inner.Bind(n.Binding, typelower.Lower(n.BindingType, ""))
	}
	right := LowerExpr(n.Right, sc, ctx)
	body := lowerBodyAsBlock(n.Body, inner, ctx, indent)
	return fmt.Sprintf("for %s in (%s).clone() %s", n.Binding, right, body)
}

// lowerThrowStmt implements §4.5's "Throw": `return Err(<value>);`, with
// `new Error(msg)` unwrapped to `msg`.
func lowerThrowStmt(n *ast.ThrowStmt, sc *Scope, ctx *Context) string {
	if newErr, ok := n.Arg.(*ast.NewExpr); ok && newErr.Callee == "Error" && len(newErr.Args) == 1 {
		return fmt.Sprintf("return Err(%s);", LowerExpr(newErr.Args[0], sc, ctx))
	}
	return fmt.Sprintf("return Err(%s);", LowerExpr(n.Arg, sc, ctx))
}

// lowerTryStmt implements §4.5's "Try/Catch/Finally": the try block becomes
// an inner closure returning a unit/error Result, bound to a fresh local;
// a catch destructures Err(name); a finally is appended verbatim.
func lowerTryStmt(n *ast.TryStmt, sc *Scope, ctx *Context, indent string) string {
	inner := indent + "    "
	closureScope := sc.Clone()
	closureBody := LowerBlock(n.Block, closureScope, ctx, inner+"    ")

	var b strings.Builder
	b.WriteString("{\n")
	b.WriteString(inner)
	b.WriteString("let __trust_try_result: Result<(), String> = (move || {\n")
	b.WriteString(closureBody)
	b.WriteString(inner)
	b.WriteString("    Ok(())\n")
	b.WriteString(inner)
	b.WriteString("})();\n")

	if n.CatchBody != nil {
		catchScope := sc.Clone()
		catchScope.Bind(n.CatchParam, "String")
		b.WriteString(inner)
		b.WriteString(fmt.Sprintf("if let Err(%s) = __trust_try_result {\n", n.CatchParam))
		b.WriteString(LowerBlock(n.CatchBody, catchScope, ctx, inner+"    "))
		b.WriteString(inner)
		b.WriteString("}\n")
	}

	if n.Finally != nil {
		b.WriteString(LowerBlock(n.Finally, sc.Clone(), ctx, inner))
	}

	b.WriteString(indent)
	b.WriteString("}")
	return b.String()
}

// lowerVarDeclStmt implements §4.5's "Variable declaration", including
// shared-cell wrapping and clone-on-reassignment-to-another-cell-binding.
func lowerVarDeclStmt(n *ast.VarDeclStmt, sc *Scope, ctx *Context) string {
	mutKeyword := ""
	if n.Kind == "var" {
		mutKeyword = "mut "
	}

	if n.Type != nil {
		rustType := typelower.Lower(n.Type, "")
		sc.Bind(n.Name, rustType)

		switch {
		case typelower.IsSingleThreadCell(n.Type):
			init := wrapOrCloneCell(n.Init, sc, ctx, "Rc::new(RefCell::new(%s))")
			return fmt.Sprintf("let %s%s = %s;", mutKeyword, n.Name, init)
		case typelower.IsMultiThreadCell(n.Type):
			init := wrapOrCloneCell(n.Init, sc, ctx, "Arc::new(Mutex::new(%s))")
			return fmt.Sprintf("let %s%s = %s;", mutKeyword, n.Name, init)
		default:
			return fmt.Sprintf("let %s%s: %s = %s;", mutKeyword, n.Name, rustType, LowerExpr(n.Init, sc, ctx))
		}
	}

	return fmt.Sprintf("let %s%s = %s;", mutKeyword, n.Name, LowerExpr(n.Init, sc, ctx))
}

// wrapOrCloneCell implements the bare-identifier-already-cell-bound case:
// when the initializer is an identifier already bound to a shared cell,
// emit a `.clone()` instead of re-wrapping it.
func wrapOrCloneCell(init ast.Expr, sc *Scope, ctx *Context, wrapFormat string) string {
	if name, ok := identName(init); ok && sc.IsSharedCell(name) {
		return name + ".clone()"
	}
	return fmt.Sprintf(wrapFormat, LowerExpr(init, sc, ctx))
}
