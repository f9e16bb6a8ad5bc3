// Package ast defines the node set produced by the stand-in front end
// (internal/lexer + internal/parser) that plays the role spec.md assigns to
// "the external TypeScript parser": it turns preprocessed SRC text into a
// tree the lowering packages (internal/typelower, internal/lower) walk
// read-only to produce Rust text. The tree is never mutated after parsing.
package ast

import "fmt"

// Node is the base interface for all AST nodes.
type Node interface {
	String() string
	Position() Pos
}

// Pos represents a position in the source code.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span represents a range in source code, attached to structured errors so
// a downstream language server can extract it (spec.md §7).
type Span struct {
	Start Pos
	End   Pos
}

// File is a complete parsed compilation unit.
type File struct {
	Imports []*ImportDecl
	Decls   []Decl
	Pos     Pos
}

func (f *File) Position() Pos { return f.Pos }
func (f *File) String() string {
	return fmt.Sprintf("File(%d imports, %d decls)", len(f.Imports), len(f.Decls))
}

// ImportDecl is a single `import ... from "...";` declaration.
type ImportDecl struct {
	Source       string   // the string literal after `from`
	DefaultAlias string   // "" if no default import
	Named        []string // named specifiers, in source order
	Pos          Pos
	Span         Span
}

func (i *ImportDecl) Position() Pos   { return i.Pos }
func (i *ImportDecl) String() string  { return fmt.Sprintf("import ... from %q", i.Source) }

// Decl is any top-level declaration.
type Decl interface {
	Node
	declNode()
}

// Type is any type-syntax node (§4.3).
type Type interface {
	Node
	typeNode()
}

// Expr is any expression node (§4.4).
type Expr interface {
	Node
	exprNode()
}

// Stmt is any statement node (§4.5).
type Stmt interface {
	Node
	stmtNode()
}

// ---------------------------------------------------------------------------
// Types

// NamedType is a bare or parameterized type name: `int32`, `Pointer<T>`,
// `Map<K,V>`, `Box<T>`, or any other identifier-headed type.
type NamedType struct {
	Name string
	Args []Type
	Pos  Pos
}

func (t *NamedType) Position() Pos { return t.Pos }
func (t *NamedType) typeNode()     {}
func (t *NamedType) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	s := t.Name + "<"
	for i, a := range t.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ">"
}

// ArrayType is `T[]`.
type ArrayType struct {
	Elem Type
	Pos  Pos
}

func (t *ArrayType) Position() Pos  { return t.Pos }
func (t *ArrayType) typeNode()      {}
func (t *ArrayType) String() string { return t.Elem.String() + "[]" }

// ---------------------------------------------------------------------------
// Declarations

// InterfaceDecl is a `struct`-turned-`interface` declaration (§4.1 rule 5).
type InterfaceDecl struct {
	Name   string
	Fields []*FieldDecl
	Pos    Pos
}

func (d *InterfaceDecl) Position() Pos  { return d.Pos }
func (d *InterfaceDecl) declNode()      {}
func (d *InterfaceDecl) String() string { return "interface " + d.Name }

// FieldDecl is one field of an InterfaceDecl.
type FieldDecl struct {
	Name string
	Type Type
	Pos  Pos
}

// EnumDecl is an `enum` declaration, numeric- or string-discriminated.
type EnumDecl struct {
	Name     string
	Variants []*EnumVariant
	Pos      Pos
}

func (d *EnumDecl) Position() Pos  { return d.Pos }
func (d *EnumDecl) declNode()      {}
func (d *EnumDecl) String() string { return "enum " + d.Name }

// EnumVariant is one member of an EnumDecl. Discriminant is nil for a plain
// variant, a *NumberLit for a numeric discriminant, or a *StringLit for a
// string discriminant.
type EnumVariant struct {
	Name         string
	Discriminant Expr
	Pos          Pos
}

// Param is a function or method parameter.
type Param struct {
	Name string
	Type Type
	Pos  Pos
}

// FuncDecl is a top-level (sync or async) function declaration.
type FuncDecl struct {
	Name       string
	Params     []*Param
	ReturnType Type
	Body       *BlockStmt
	Async      bool
	Pos        Pos
}

func (d *FuncDecl) Position() Pos  { return d.Pos }
func (d *FuncDecl) declNode()      {}
func (d *FuncDecl) String() string { return "function " + d.Name }

// MethodDecl is a method inside an ImplDecl.
type MethodDecl struct {
	Name       string
	Params     []*Param
	ReturnType Type
	Body       *BlockStmt
	Async      bool
	Static     bool
	Pos        Pos
}

// ImplDecl is an `implements X { ... }` block, preprocessed from
// `implements X { function m(...) {...} }` into `class X { m(...) {...} }`
// (§4.1 rule 1) before parsing.
type ImplDecl struct {
	TypeName string
	Methods  []*MethodDecl
	Pos      Pos
}

func (d *ImplDecl) Position() Pos  { return d.Pos }
func (d *ImplDecl) declNode()      {}
func (d *ImplDecl) String() string { return "implements " + d.TypeName }

// GlobalConstDecl is a top-level `const` declaration (§4.5 "Global const").
type GlobalConstDecl struct {
	Name  string
	Type  Type
	Value Expr
	Pos   Pos
}

func (d *GlobalConstDecl) Position() Pos  { return d.Pos }
func (d *GlobalConstDecl) declNode()      {}
func (d *GlobalConstDecl) String() string { return "const " + d.Name }

// ---------------------------------------------------------------------------
// Expressions

type Identifier struct {
	Name string
	Pos  Pos
}

func (e *Identifier) Position() Pos  { return e.Pos }
func (e *Identifier) exprNode()      {}
func (e *Identifier) String() string { return e.Name }

type ThisExpr struct{ Pos Pos }

func (e *ThisExpr) Position() Pos  { return e.Pos }
func (e *ThisExpr) exprNode()      {}
func (e *ThisExpr) String() string { return "this" }

type NumberLit struct {
	Raw string // verbatim numeric text
	Pos Pos
}

func (e *NumberLit) Position() Pos  { return e.Pos }
func (e *NumberLit) exprNode()      {}
func (e *NumberLit) String() string { return e.Raw }

type BoolLit struct {
	Value bool
	Pos   Pos
}

func (e *BoolLit) Position() Pos { return e.Pos }
func (e *BoolLit) exprNode()     {}
func (e *BoolLit) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

// StringLit is a single/double-quoted string literal. Raw is the literal
// text between quotes with escapes preserved verbatim, per §4.4.
type StringLit struct {
	Raw string
	Pos Pos
}

func (e *StringLit) Position() Pos  { return e.Pos }
func (e *StringLit) exprNode()      {}
func (e *StringLit) String() string { return `"` + e.Raw + `"` }

// TemplateLit is a backtick template literal. Quasis has len(Exprs)+1
// entries; Quasis[i] is the literal text before Exprs[i].
type TemplateLit struct {
	Quasis []string
	Exprs  []Expr
	Pos    Pos
}

func (e *TemplateLit) Position() Pos  { return e.Pos }
func (e *TemplateLit) exprNode()      {}
func (e *TemplateLit) String() string { return "`...`" }

type ArrayLit struct {
	Elems []Expr
	Pos   Pos
}

func (e *ArrayLit) Position() Pos  { return e.Pos }
func (e *ArrayLit) exprNode()      {}
func (e *ArrayLit) String() string { return "[...]" }

// ObjectProp is one property of an ObjectLit, the object literal that
// becomes a struct constructor's field list when it is the sole argument to
// a capitalized call (§4.4 "Call").
type ObjectProp struct {
	Key       string
	Value     Expr
	Shorthand bool
	Pos       Pos
}

type ObjectLit struct {
	Props []*ObjectProp
	Pos   Pos
}

func (e *ObjectLit) Position() Pos  { return e.Pos }
func (e *ObjectLit) exprNode()      {}
func (e *ObjectLit) String() string { return "{...}" }

type BinaryExpr struct {
	Op    string // "+","-","*","/","%","**","==","!=","<","<=",">",">=","&&","||"
	Left  Expr
	Right Expr
	Pos   Pos
}

func (e *BinaryExpr) Position() Pos  { return e.Pos }
func (e *BinaryExpr) exprNode()      {}
func (e *BinaryExpr) String() string { return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right) }

type UnaryExpr struct {
	Op   string // "-","!"
	Expr Expr
	Pos  Pos
}

func (e *UnaryExpr) Position() Pos  { return e.Pos }
func (e *UnaryExpr) exprNode()      {}
func (e *UnaryExpr) String() string { return fmt.Sprintf("(%s%s)", e.Op, e.Expr) }

// ConditionalExpr is `test ? cons : alt` (§4.4 "Conditional").
type ConditionalExpr struct {
	Test Expr
	Cons Expr
	Alt  Expr
	Pos  Pos
}

func (e *ConditionalExpr) Position() Pos { return e.Pos }
func (e *ConditionalExpr) exprNode()     {}
func (e *ConditionalExpr) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", e.Test, e.Cons, e.Alt)
}

// MemberExpr is `obj.prop` or `obj[computed]`.
type MemberExpr struct {
	Object   Expr
	Property string // set when !Computed
	Computed bool
	Index    Expr // set when Computed
	Pos      Pos
}

func (e *MemberExpr) Position() Pos { return e.Pos }
func (e *MemberExpr) exprNode()     {}
func (e *MemberExpr) String() string {
	if e.Computed {
		return fmt.Sprintf("%s[%s]", e.Object, e.Index)
	}
	return fmt.Sprintf("%s.%s", e.Object, e.Property)
}

// AssignExpr is `target = value`.
type AssignExpr struct {
	Target Expr
	Value  Expr
	Pos    Pos
}

func (e *AssignExpr) Position() Pos  { return e.Pos }
func (e *AssignExpr) exprNode()      {}
func (e *AssignExpr) String() string { return fmt.Sprintf("(%s = %s)", e.Target, e.Value) }

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Pos    Pos
}

func (e *CallExpr) Position() Pos  { return e.Pos }
func (e *CallExpr) exprNode()      {}
func (e *CallExpr) String() string { return fmt.Sprintf("%s(...)", e.Callee) }

// NewExpr is `new Callee(args...)`. Only `new Map()`/`new Set()` get special
// handling at the expression-lowering layer (§4.4); everything else is
// routed through the constructor-call path, i.e. lowered as if it were a
// CallExpr on Callee.
type NewExpr struct {
	Callee string
	Args   []Expr
	Pos    Pos
}

func (e *NewExpr) Position() Pos  { return e.Pos }
func (e *NewExpr) exprNode()      {}
func (e *NewExpr) String() string { return "new " + e.Callee + "(...)" }

// ArrowExpr is `(params) => expr` or `(params) => { ... }`.
type ArrowExpr struct {
	Params    []string
	ExprBody  Expr // set when the body is a bare expression
	BlockBody *BlockStmt
	Pos       Pos
}

func (e *ArrowExpr) Position() Pos  { return e.Pos }
func (e *ArrowExpr) exprNode()      {}
func (e *ArrowExpr) String() string { return "(...) => ..." }

// AwaitExpr is the expression-form `await e` (§4.4 "Await"). The
// statement-form `wait e;` never reaches the parser: the preprocessor
// rewrites it to `(e).join().unwrap();` textually (§4.1 rule 6).
type AwaitExpr struct {
	Expr Expr
	Pos  Pos
}

func (e *AwaitExpr) Position() Pos  { return e.Pos }
func (e *AwaitExpr) exprNode()      {}
func (e *AwaitExpr) String() string { return "await " + e.Expr.String() }

// BlockExpr is a block used in expression position: a sequence of
// statements ending in an optional tail expression (no trailing `;`),
// Rust-style. This is the shape the preprocessor's `match` rewrite produces
// (`({ let __m0 = E; if ... })`, §4.1 rule 2): the front end recognizes a
// parenthesized `{ ... }` in expression position as a BlockExpr rather than
// rejecting it, since match's IIFE form is not expressible as plain
// TypeScript.
type BlockExpr struct {
	Stmts []Stmt
	Tail  Expr // nil if the block ends in a statement, not a bare expression
	Pos   Pos
}

func (e *BlockExpr) Position() Pos  { return e.Pos }
func (e *BlockExpr) exprNode()      {}
func (e *BlockExpr) String() string { return "{ ... }" }

// IfExpr is `if test { then } else ...`, used only inside the tail position
// of a BlockExpr (the match-rewrite's if/else-if/else chain). Else is nil,
// an *IfExpr (else-if), or an Expr (final else's tail).
type IfExpr struct {
	Test Expr
	Then Expr
	Else Expr
	Pos  Pos
}

func (e *IfExpr) Position() Pos  { return e.Pos }
func (e *IfExpr) exprNode()      {}
func (e *IfExpr) String() string { return "if " + e.Test.String() + " { ... }" }

// ---------------------------------------------------------------------------
// Statements

type ExprStmt struct {
	Expr Expr
	Pos  Pos
}

func (s *ExprStmt) Position() Pos  { return s.Pos }
func (s *ExprStmt) stmtNode()      {}
func (s *ExprStmt) String() string { return s.Expr.String() + ";" }

type ReturnStmt struct {
	Value Expr // nil for bare `return;`
	Pos   Pos
}

func (s *ReturnStmt) Position() Pos { return s.Pos }
func (s *ReturnStmt) stmtNode()     {}
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

type BlockStmt struct {
	Stmts []Stmt
	Pos   Pos
}

func (s *BlockStmt) Position() Pos  { return s.Pos }
func (s *BlockStmt) stmtNode()      {}
func (s *BlockStmt) String() string { return fmt.Sprintf("{ %d stmts }", len(s.Stmts)) }

type IfStmt struct {
	Test Expr
	Cons Stmt
	Alt  Stmt // nil if no else
	Pos  Pos
}

func (s *IfStmt) Position() Pos  { return s.Pos }
func (s *IfStmt) stmtNode()      {}
func (s *IfStmt) String() string { return "if (" + s.Test.String() + ") ..." }

type WhileStmt struct {
	Test Expr
	Body Stmt
	Pos  Pos
}

func (s *WhileStmt) Position() Pos  { return s.Pos }
func (s *WhileStmt) stmtNode()      {}
func (s *WhileStmt) String() string { return "while (" + s.Test.String() + ") ..." }

// ForStmt is the C-style `for(init; test; update)`.
type ForStmt struct {
	Init   Stmt // *VarDeclStmt, *ExprStmt, or nil
	Test   Expr // nil defaults to `true`
	Update Expr // nil if absent
	Body   Stmt
	Pos    Pos
}

func (s *ForStmt) Position() Pos  { return s.Pos }
func (s *ForStmt) stmtNode()      {}
func (s *ForStmt) String() string { return "for (...) ..." }

type ForInStmt struct {
	Binding     string
	BindingType Type // nil if unannotated
	Right       Expr
	Body        Stmt
	Pos         Pos
}

func (s *ForInStmt) Position() Pos  { return s.Pos }
func (s *ForInStmt) stmtNode()      {}
func (s *ForInStmt) String() string { return "for (" + s.Binding + " in ...) ..." }

type ForOfStmt struct {
	Binding     string
	BindingType Type
	Right       Expr
	Body        Stmt
	Pos         Pos
}

func (s *ForOfStmt) Position() Pos  { return s.Pos }
func (s *ForOfStmt) stmtNode()      {}
func (s *ForOfStmt) String() string { return "for (" + s.Binding + " of ...) ..." }

// TryStmt is `try { ... } catch (e) { ... } finally { ... }`; CatchBody and
// Finally are nil when absent; CatchParam is "" when there is no catch.
type TryStmt struct {
	Block      *BlockStmt
	CatchParam string
	CatchBody  *BlockStmt
	Finally    *BlockStmt
	Pos        Pos
}

func (s *TryStmt) Position() Pos  { return s.Pos }
func (s *TryStmt) stmtNode()      {}
func (s *TryStmt) String() string { return "try { ... }" }

// ThrowStmt is `throw EXPR;`. Arg is either a plain expression or a
// `new Error(msg)` NewExpr, unwrapped to `msg` at lowering time.
type ThrowStmt struct {
	Arg Expr
	Pos Pos
}

func (s *ThrowStmt) Position() Pos  { return s.Pos }
func (s *ThrowStmt) stmtNode()      {}
func (s *ThrowStmt) String() string { return "throw " + s.Arg.String() + ";" }

type BreakStmt struct{ Pos Pos }

func (s *BreakStmt) Position() Pos  { return s.Pos }
func (s *BreakStmt) stmtNode()      {}
func (s *BreakStmt) String() string { return "break;" }

type ContinueStmt struct{ Pos Pos }

func (s *ContinueStmt) Position() Pos  { return s.Pos }
func (s *ContinueStmt) stmtNode()      {}
func (s *ContinueStmt) String() string { return "continue;" }

// VarDeclStmt is `var|let|const NAME[: Type] = init;`. `val` has already
// been rewritten to `let` by the preprocessor (§4.1 rule 3).
type VarDeclStmt struct {
	Kind string // "var", "let", "const"
	Name string
	Type Type // nil if unannotated
	Init Expr
	Pos  Pos
}

func (s *VarDeclStmt) Position() Pos  { return s.Pos }
func (s *VarDeclStmt) stmtNode()      {}
func (s *VarDeclStmt) String() string { return s.Kind + " " + s.Name + " = ...;" }
