package lower

import (
	"fmt"
	"strings"

	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/resolve"
	"github.com/trusty-lang/trustyc/internal/typelower"
)

// Context carries cross-cutting state expression/statement lowering needs
// beyond the current Scope: whether the json stdlib module was imported
// (gates serde derives, §4.6). Module aliases are not held here; they are
// bound on the Scope.
type Context struct {
	JSONImported bool
}

// LowerExpr lowers a single expression node to Rust text (§4.4).
func LowerExpr(e ast.Expr, sc *Scope, ctx *Context) string {
	switch n := e.(type) {
	case nil:
		return ""
	case *ast.NumberLit:
		return n.Raw
	case *ast.BoolLit:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.StringLit:
		return fmt.Sprintf("%q.to_string()", n.Raw)
	case *ast.TemplateLit:
		return lowerTemplateLit(n, sc, ctx)
	case *ast.Identifier:
		return n.Name
	case *ast.ThisExpr:
		return "self"
	case *ast.ArrayLit:
		return lowerArrayLit(n, sc, ctx)
	case *ast.ObjectLit:
		return lowerBareObjectLit(n, sc, ctx)
	case *ast.BinaryExpr:
		return lowerBinaryExpr(n, sc, ctx)
	case *ast.UnaryExpr:
		return fmt.Sprintf("(%s%s)", n.Op, LowerExpr(n.Expr, sc, ctx))
	case *ast.ConditionalExpr:
		return fmt.Sprintf("if %s { %s } else { %s }",
			LowerExpr(n.Test, sc, ctx), LowerExpr(n.Cons, sc, ctx), LowerExpr(n.Alt, sc, ctx))
	case *ast.MemberExpr:
		return lowerMemberExpr(n, sc, ctx)
	case *ast.AssignExpr:
		return lowerAssignExpr(n, sc, ctx)
	case *ast.CallExpr:
		return lowerCallExpr(n, sc, ctx)
	case *ast.NewExpr:
		return lowerNewExpr(n, sc, ctx)
	case *ast.ArrowExpr:
		return lowerArrowExpr(n, sc, ctx)
	case *ast.AwaitExpr:
		return fmt.Sprintf("(%s).join().unwrap()", LowerExpr(n.Expr, sc, ctx))
	case *ast.BlockExpr:
		return lowerBlockExpr(n, sc, ctx)
	case *ast.IfExpr:
		return lowerIfExpr(n, sc, ctx)
	default:
		return e.String()
	}
}

func lowerExprList(exprs []ast.Expr, sc *Scope, ctx *Context) []string {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		out[i] = LowerExpr(e, sc, ctx)
	}
	return out
}

func lowerTemplateLit(n *ast.TemplateLit, sc *Scope, ctx *Context) string {
	if len(n.Exprs) == 0 {
		return fmt.Sprintf("%q.to_string()", strings.Join(n.Quasis, ""))
	}
	var format strings.Builder
	for i, q := range n.Quasis {
		format.WriteString(q)
		if i < len(n.Exprs) {
			format.WriteString("{}")
		}
	}
	args := lowerExprList(n.Exprs, sc, ctx)
	return fmt.Sprintf("format!(%q, %s)", format.String(), strings.Join(args, ", "))
}

func lowerArrayLit(n *ast.ArrayLit, sc *Scope, ctx *Context) string {
	return fmt.Sprintf("vec![%s]", strings.Join(lowerExprList(n.Elems, sc, ctx), ", "))
}

// lowerBareObjectLit lowers an object literal that appears outside a
// capitalized struct-constructor call; it has no Rust equivalent on its
// own, so it is rendered as `(k1: v1, k2: v2, ...)`. That text is not
// valid Rust; §4.4 only defines object-literal lowering in the
// struct-constructor position.
func lowerBareObjectLit(n *ast.ObjectLit, sc *Scope, ctx *Context) string {
	parts := make([]string, len(n.Props))
	for i, p := range n.Props {
		parts[i] = fmt.Sprintf("%s: %s", p.Key, LowerExpr(p.Value, sc, ctx))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func lowerBinaryExpr(n *ast.BinaryExpr, sc *Scope, ctx *Context) string {
	if n.Op == "**" {
		return lowerExponent(n, sc, ctx)
	}
	left := LowerExpr(n.Left, sc, ctx)
	right := LowerExpr(n.Right, sc, ctx)
	return fmt.Sprintf("(%s %s %s)", left, n.Op, right)
}

// lowerExponent implements §4.4's type-directed `**` lowering: the
// inferred Rust type of the left operand picks between integer `.pow`
// and float `.powf`, falling back to f64 when nothing is known.
func lowerExponent(n *ast.BinaryExpr, sc *Scope, ctx *Context) string {
	left := LowerExpr(n.Left, sc, ctx)
	right := LowerExpr(n.Right, sc, ctx)
	ty := inferredType(n.Left, sc)

	switch {
	case isIntType(ty):
		return fmt.Sprintf("(%s as %s).pow((%s).max(0) as u32)", left, ty, right)
	case isFloatType(ty):
		return fmt.Sprintf("(%s as %s).powf(%s as %s)", left, ty, right, ty)
	default:
		return fmt.Sprintf("(%s as f64).powf(%s as f64)", left, right)
	}
}

func isIntType(ty string) bool {
	switch ty {
	case "i8", "i16", "i32", "i64":
		return true
	}
	return false
}

func isFloatType(ty string) bool {
	return ty == "f32" || ty == "f64"
}

// inferredType returns the best-effort Rust type of e using only the
// current scope: an identifier's bound type, or "" when unknown. This is
// the coarse "positional rule" fallback §9 describes, not a type system.
func inferredType(e ast.Expr, sc *Scope) string {
	if id, ok := e.(*ast.Identifier); ok {
		if t, ok := sc.Lookup(id.Name); ok {
			return t
		}
	}
	return ""
}

func lowerMemberExpr(n *ast.MemberExpr, sc *Scope, ctx *Context) string {
	objText := LowerExpr(n.Object, sc, ctx)

	if n.Computed {
		return fmt.Sprintf("%s[%s as usize]", objText, LowerExpr(n.Index, sc, ctx))
	}

	receiverName, isIdent := identName(n.Object)

	if n.Property == "length" {
		switch {
		case isIdent && sc.IsSingleThreadCell(receiverName) && sc.IsStringLike(receiverName):
			return fmt.Sprintf("%s.borrow().chars().count()", objText)
		case isIdent && sc.IsMultiThreadCell(receiverName) && sc.IsStringLike(receiverName):
			return fmt.Sprintf("%s.lock().unwrap().chars().count()", objText)
		case isIdent && sc.IsStringLike(receiverName):
			return fmt.Sprintf("%s.chars().count()", objText)
		case isIdent && sc.IsSingleThreadCell(receiverName):
			return fmt.Sprintf("%s.borrow().len()", objText)
		case isIdent && sc.IsMultiThreadCell(receiverName):
			return fmt.Sprintf("%s.lock().unwrap().len()", objText)
		default:
			return fmt.Sprintf("%s.len()", objText)
		}
	}

	if isIdent && sc.IsModuleAlias(receiverName) {
		return fmt.Sprintf("%s::%s", objText, n.Property)
	}
	if isIdent && sc.IsSingleThreadCell(receiverName) {
		return fmt.Sprintf("%s.borrow().%s", objText, n.Property)
	}
	if isIdent && sc.IsMultiThreadCell(receiverName) {
		return fmt.Sprintf("%s.lock().unwrap().%s", objText, n.Property)
	}
	return fmt.Sprintf("%s.%s", objText, n.Property)
}

func lowerAssignExpr(n *ast.AssignExpr, sc *Scope, ctx *Context) string {
	value := LowerExpr(n.Value, sc, ctx)

	member, ok := n.Target.(*ast.MemberExpr)
	if !ok {
		return fmt.Sprintf("%s = %s", LowerExpr(n.Target, sc, ctx), value)
	}

	objText := LowerExpr(member.Object, sc, ctx)
	if member.Computed {
		return fmt.Sprintf("%s[%s as usize] = %s", objText, LowerExpr(member.Index, sc, ctx), value)
	}

	receiverName, isIdent := identName(member.Object)
	switch {
	case isIdent && sc.IsSingleThreadCell(receiverName):
		return fmt.Sprintf("%s.borrow_mut().%s = %s", objText, member.Property, value)
	case isIdent && sc.IsMultiThreadCell(receiverName):
		return fmt.Sprintf("%s.lock().unwrap().%s = %s", objText, member.Property, value)
	default:
		return fmt.Sprintf("%s.%s = %s", objText, member.Property, value)
	}
}

func identName(e ast.Expr) (string, bool) {
	id, ok := e.(*ast.Identifier)
	if !ok {
		return "", false
	}
	return id.Name, true
}

func lowerArrowExpr(n *ast.ArrowExpr, sc *Scope, ctx *Context) string {
	params := strings.Join(n.Params, ", ")
	if n.BlockBody != nil {
		inner := sc.Clone()
		body := LowerBlock(n.BlockBody, inner, ctx, "")
		return fmt.Sprintf("move |%s| {\n%s}", params, body)
	}
	return fmt.Sprintf("move |%s| %s", params, LowerExpr(n.ExprBody, sc, ctx))
}

func lowerBlockExpr(n *ast.BlockExpr, sc *Scope, ctx *Context) string {
	var b strings.Builder
	b.WriteString("{ ")
	for _, s := range n.Stmts {
		b.WriteString(LowerStmt(s, sc, ctx, ""))
		b.WriteString(" ")
	}
	if n.Tail != nil {
		b.WriteString(LowerExpr(n.Tail, sc, ctx))
	}
	b.WriteString(" }")
	return b.String()
}

func lowerIfExpr(n *ast.IfExpr, sc *Scope, ctx *Context) string {
	test := LowerExpr(n.Test, sc, ctx)
	then := LowerExpr(n.Then, sc, ctx)
	if n.Else == nil {
		return fmt.Sprintf("if %s { %s }", test, then)
	}
	return fmt.Sprintf("if %s { %s } else { %s }", test, then, LowerExpr(n.Else, sc, ctx))
}
