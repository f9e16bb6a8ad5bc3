package lower

import (
	"fmt"
	"strings"

	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/errors"
	"github.com/trusty-lang/trustyc/internal/typelower"
)

// LowerInterface implements §4.6 "Interface → struct": `#[derive(Debug,
// Clone)]` by default, plus the two serde derives when jsonImported; a
// recursive field is boxed via typelower.LowerField.
func LowerInterface(d *ast.InterfaceDecl, jsonImported bool) string {
	derives := "Debug, Clone"
	var useSerde string
	if jsonImported {
		derives += ", Serialize, Deserialize"
		useSerde = "use serde::{Serialize, Deserialize};\n"
	}

	var b strings.Builder
	b.WriteString(useSerde)
	b.WriteString(fmt.Sprintf("#[derive(%s)]\n", derives))
	b.WriteString(fmt.Sprintf("pub struct %s {\n", d.Name))
	for _, f := range d.Fields {
		b.WriteString(fmt.Sprintf("    pub %s: %s,\n", f.Name, typelower.LowerField(f.Type, d.Name)))
	}
	b.WriteString("}")
	return b.String()
}

// LowerEnum implements §4.6 "Enum". Numeric discriminants are preserved
// on the Rust enum directly; a string-discriminant enum instead gets
// plain variants plus an `as_str()` accessor and a Display impl.
func LowerEnum(d *ast.EnumDecl) string {
	if hasStringDiscriminant(d) {
		return lowerStringEnum(d)
	}

	var b strings.Builder
	b.WriteString("#[derive(Debug, Clone, Copy, PartialEq, Eq)]\n")
	b.WriteString(fmt.Sprintf("pub enum %s {\n", d.Name))
	for _, v := range d.Variants {
		if v.Discriminant == nil {
			b.WriteString(fmt.Sprintf("    %s,\n", v.Name))
			continue
		}
		if num, ok := v.Discriminant.(*ast.NumberLit); ok {
			b.WriteString(fmt.Sprintf("    %s = %s,\n", v.Name, num.Raw))
			continue
		}
		b.WriteString(fmt.Sprintf("    %s,\n", v.Name))
	}
	b.WriteString("}")
	return b.String()
}

func hasStringDiscriminant(d *ast.EnumDecl) bool {
	for _, v := range d.Variants {
		if _, ok := v.Discriminant.(*ast.StringLit); ok {
			return true
		}
	}
	return false
}

func lowerStringEnum(d *ast.EnumDecl) string {
	var b strings.Builder
	b.WriteString("#[derive(Debug, Clone, Copy, PartialEq, Eq)]\n")
	b.WriteString(fmt.Sprintf("pub enum %s {\n", d.Name))
	for _, v := range d.Variants {
		b.WriteString(fmt.Sprintf("    %s,\n", v.Name))
	}
	b.WriteString("}\n\n")

	b.WriteString(fmt.Sprintf("impl %s {\n", d.Name))
	b.WriteString("    pub fn as_str(&self) -> &'static str {\n")
	b.WriteString("        match self {\n")
	for _, v := range d.Variants {
		raw := v.Name
		if s, ok := v.Discriminant.(*ast.StringLit); ok {
			raw = s.Raw
		}
		b.WriteString(fmt.Sprintf("            %s::%s => %q,\n", d.Name, v.Name, raw))
	}
	b.WriteString("        }\n    }\n}\n\n")

	b.WriteString(fmt.Sprintf("impl std::fmt::Display for %s {\n", d.Name))
	b.WriteString("    fn fmt(&self, f: &mut std::fmt::Formatter<'_>) -> std::fmt::Result {\n")
	b.WriteString("        write!(f, \"{}\", self.as_str())\n")
	b.WriteString("    }\n}")
	return b.String()
}

// LowerFunc implements §4.6 "Function": sync functions lower directly;
// async functions lower to a thread-spawning wrapper whose declared return
// type becomes a JoinHandle.
func LowerFunc(d *ast.FuncDecl, moduleAliases []string) string {
	params := lowerParams(d.Params)
	sc := NewScope()
	for _, alias := range moduleAliases {
		sc.BindAlias(alias)
	}
	for _, p := range d.Params {
		sc.Bind(p.Name, typelower.Lower(p.Type, ""))
	}
	ctx := &Context{}
	retType := typelower.Lower(d.ReturnType, "")
	body := LowerBlock(d.Body, sc, ctx, "    ")

	if !d.Async {
		return fmt.Sprintf("pub fn %s(%s) -> %s {\n%s}", d.Name, params, retType, body)
	}

	return fmt.Sprintf(
		"pub fn %s(%s) -> std::thread::JoinHandle<%s> {\n    std::thread::spawn(move || {\n%s    })\n}",
		d.Name, params, retType, indentBlock(body, "    "))
}

func lowerParams(params []*ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, typelower.Lower(p.Type, ""))
	}
	return strings.Join(parts, ", ")
}

func indentBlock(body, indent string) string {
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = indent + l
	}
	return strings.Join(lines, "\n") + "\n"
}

// LowerImpl implements §4.6 "`implements` block → impl". Static and async
// methods are unsupported (LOW001/LOW002). self-param mutability is chosen
// by a shallow scan of the method body for a `this.*` assignment target.
func LowerImpl(d *ast.ImplDecl, moduleAliases []string) (string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("impl %s {\n", d.TypeName))
	for _, m := range d.Methods {
		if m.Async {
			return "", errors.WrapReport(errors.New(errors.LOW001, "lower",
				fmt.Sprintf("async method %q in implements block is unsupported", m.Name), &ast.Span{Start: m.Pos, End: m.Pos}))
		}
		if m.Static {
			return "", errors.WrapReport(errors.New(errors.LOW002, "lower",
				fmt.Sprintf("static method %q in implements block is unsupported", m.Name), &ast.Span{Start: m.Pos, End: m.Pos}))
		}
		b.WriteString(lowerMethod(m, moduleAliases))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String(), nil
}

func lowerMethod(m *ast.MethodDecl, moduleAliases []string) string {
	selfParam := "&self"
	if mutatesSelf(m.Body) {
		selfParam = "&mut self"
	}

	params := lowerParams(m.Params)
	signature := selfParam
	if params != "" {
		signature += ", " + params
	}

	sc := NewScope()
	for _, alias := range moduleAliases {
		sc.BindAlias(alias)
	}
	for _, p := range m.Params {
		sc.Bind(p.Name, typelower.Lower(p.Type, ""))
	}
	ctx := &Context{}
	retType := typelower.Lower(m.ReturnType, "")
	body := LowerBlock(m.Body, sc, ctx, "        ")

	return fmt.Sprintf("    pub fn %s(%s) -> %s {\n%s    }\n", m.Name, signature, retType, body)
}

// mutatesSelf implements the shallow self-mutation scan (§4.6): true if any
// statement in body, including statements nested in blocks, if/loop bodies
// and try/catch/finally blocks, is an expression statement assigning to a
// `this.*` member. Closures and sub-expressions are not searched.
func mutatesSelf(body *ast.BlockStmt) bool {
	for _, s := range body.Stmts {
		if stmtMutatesSelf(s) {
			return true
		}
	}
	return false
}

func stmtMutatesSelf(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.ExprStmt:
		return exprMutatesSelf(n.Expr)
	case *ast.BlockStmt:
		return mutatesSelf(n)
	case *ast.IfStmt:
		if stmtMutatesSelf(n.Cons) {
			return true
		}
		return n.Alt != nil && stmtMutatesSelf(n.Alt)
	case *ast.WhileStmt:
		return stmtMutatesSelf(n.Body)
	case *ast.ForStmt:
		return stmtMutatesSelf(n.Body)
	case *ast.ForInStmt:
		return stmtMutatesSelf(n.Body)
	case *ast.ForOfStmt:
		return stmtMutatesSelf(n.Body)
	case *ast.TryStmt:
		if mutatesSelf(n.Block) {
			return true
		}
		if n.CatchBody != nil && mutatesSelf(n.CatchBody) {
			return true
		}
		return n.Finally != nil && mutatesSelf(n.Finally)
	default:
		return false
	}
}

func exprMutatesSelf(e ast.Expr) bool {
	assign, ok := e.(*ast.AssignExpr)
	if !ok {
		return false
	}
	member, ok := assign.Target.(*ast.MemberExpr)
	if !ok {
		return false
	}
	_, isThis := member.Object.(*ast.ThisExpr)
	return isThis
}

// LowerGlobalConst implements §4.5 "Global const": string constants become
// `&'static str`; untyped numeric constants default to `i32`.
func LowerGlobalConst(d *ast.GlobalConstDecl) string {
	sc := NewScope()
	ctx := &Context{}

	if d.Type != nil {
		return fmt.Sprintf("pub const %s: %s = %s;", d.Name, typelower.Lower(d.Type, ""), LowerExpr(d.Value, sc, ctx))
	}

	if s, ok := d.Value.(*ast.StringLit); ok {
		return fmt.Sprintf("pub const %s: &'static str = %q;", d.Name, s.Raw)
	}

	return fmt.Sprintf("pub const %s: i32 = %s;", d.Name, LowerExpr(d.Value, sc, ctx))
}
