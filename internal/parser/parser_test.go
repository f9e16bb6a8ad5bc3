package parser

import (
	"testing"

	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/lexer"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	l := lexer.New(src, "test.src")
	p := New(l, "test.src")
	file := p.ParseFile()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors: %v", p.Errors())
	}
	return file
}

func TestParseFunctionDecl(t *testing.T) {
	file := parse(t, `function add(a: int32, b: int32): int32 { return a + b; }`)
	if len(file.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(file.Decls))
	}
	fn, ok := file.Decls[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T", file.Decls[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected func decl: %+v", fn)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected 1 stmt in body, got %d", len(fn.Body.Stmts))
	}
}

func TestParseInterfaceDecl(t *testing.T) {
	file := parse(t, `interface Point { x: int32; y: int32 }`)
	decl, ok := file.Decls[0].(*ast.InterfaceDecl)
	if !ok {
		t.Fatalf("expected *ast.InterfaceDecl, got %T", file.Decls[0])
	}
	if decl.Name != "Point" || len(decl.Fields) != 2 {
		t.Fatalf("unexpected interface decl: %+v", decl)
	}
}

func TestParseEnumDecl(t *testing.T) {
	file := parse(t, `enum Status { Active = "active", Inactive = "inactive" }`)
	decl, ok := file.Decls[0].(*ast.EnumDecl)
	if !ok {
		t.Fatalf("expected *ast.EnumDecl, got %T", file.Decls[0])
	}
	if len(decl.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(decl.Variants))
	}
	if _, ok := decl.Variants[0].Discriminant.(*ast.StringLit); !ok {
		t.Fatalf("expected string discriminant, got %T", decl.Variants[0].Discriminant)
	}
}

func TestParseImplDecl(t *testing.T) {
	file := parse(t, `class Point { distance(): int32 { return 0; } }`)
	decl, ok := file.Decls[0].(*ast.ImplDecl)
	if !ok {
		t.Fatalf("expected *ast.ImplDecl, got %T", file.Decls[0])
	}
	if decl.TypeName != "Point" || len(decl.Methods) != 1 {
		t.Fatalf("unexpected impl decl: %+v", decl)
	}
}

func TestParseArrowExpr(t *testing.T) {
	file := parse(t, `function f(): int32 { const add = (a: int32, b: int32) => a + b; return add(1, 2); }`)
	fn := file.Decls[0].(*ast.FuncDecl)
	varDecl := fn.Body.Stmts[0].(*ast.VarDeclStmt)
	arrow, ok := varDecl.Init.(*ast.ArrowExpr)
	if !ok {
		t.Fatalf("expected *ast.ArrowExpr, got %T", varDecl.Init)
	}
	if len(arrow.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(arrow.Params))
	}
}

func TestParseTemplateLiteral(t *testing.T) {
	file := parse(t, "function f(name: string): string { return `hello ${name}!`; }")
	fn := file.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	tmpl, ok := ret.Value.(*ast.TemplateLit)
	if !ok {
		t.Fatalf("expected *ast.TemplateLit, got %T", ret.Value)
	}
	if len(tmpl.Exprs) != 1 {
		t.Fatalf("expected 1 interpolation, got %d", len(tmpl.Exprs))
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	file := parse(t, `function f(): int32 { try { return 1; } catch (e) { return 2; } finally { } }`)
	fn := file.Decls[0].(*ast.FuncDecl)
	tryStmt, ok := fn.Body.Stmts[0].(*ast.TryStmt)
	if !ok {
		t.Fatalf("expected *ast.TryStmt, got %T", fn.Body.Stmts[0])
	}
	if tryStmt.CatchParam != "e" || tryStmt.Finally == nil {
		t.Fatalf("unexpected try stmt: %+v", tryStmt)
	}
}

func TestParseForVariants(t *testing.T) {
	file := parse(t, `function f(): int32 {
		for (let i = 0; i < 10; i = i + 1) { }
		for (let x of items) { }
		for (let k in obj) { }
		return 0;
	}`)
	fn := file.Decls[0].(*ast.FuncDecl)
	if _, ok := fn.Body.Stmts[0].(*ast.ForStmt); !ok {
		t.Fatalf("stmt 0: expected *ast.ForStmt, got %T", fn.Body.Stmts[0])
	}
	if _, ok := fn.Body.Stmts[1].(*ast.ForOfStmt); !ok {
		t.Fatalf("stmt 1: expected *ast.ForOfStmt, got %T", fn.Body.Stmts[1])
	}
	if _, ok := fn.Body.Stmts[2].(*ast.ForInStmt); !ok {
		t.Fatalf("stmt 2: expected *ast.ForInStmt, got %T", fn.Body.Stmts[2])
	}
}

func TestParseConditionalExpr(t *testing.T) {
	file := parse(t, `function f(x: int32): int32 { return x > 0 ? 1 : -1; }`)
	fn := file.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	if _, ok := ret.Value.(*ast.ConditionalExpr); !ok {
		t.Fatalf("expected *ast.ConditionalExpr, got %T", ret.Value)
	}
}

func TestParseMatchRewriteBlockExpr(t *testing.T) {
	// This is the textual shape internal/preprocess emits for `match`.
	src := `function f(x: int32): string {
		return ({ let __m0 = x; if __m0 == 1 { "one" } else if __m0 == 2 { "two" } else { "other" } });
	}`
	file := parse(t, src)
	fn := file.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	block, ok := ret.Value.(*ast.BlockExpr)
	if !ok {
		t.Fatalf("expected *ast.BlockExpr, got %T", ret.Value)
	}
	if len(block.Stmts) != 1 {
		t.Fatalf("expected 1 stmt (the let), got %d", len(block.Stmts))
	}
	ifExpr, ok := block.Tail.(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected tail *ast.IfExpr, got %T", block.Tail)
	}
	if _, ok := ifExpr.Else.(*ast.IfExpr); !ok {
		t.Fatalf("expected else-if chain, got %T", ifExpr.Else)
	}
}

func TestParseImportDecl(t *testing.T) {
	file := parse(t, `import { readFile } from "trusty:fs";`)
	if len(file.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(file.Imports))
	}
	if file.Imports[0].Source != "trusty:fs" || len(file.Imports[0].Named) != 1 {
		t.Fatalf("unexpected import: %+v", file.Imports[0])
	}
}

func TestParseGlobalConst(t *testing.T) {
	file := parse(t, `const MAX: int32 = 100;`)
	decl, ok := file.Decls[0].(*ast.GlobalConstDecl)
	if !ok {
		t.Fatalf("expected *ast.GlobalConstDecl, got %T", file.Decls[0])
	}
	if decl.Name != "MAX" {
		t.Fatalf("unexpected const decl: %+v", decl)
	}
}
