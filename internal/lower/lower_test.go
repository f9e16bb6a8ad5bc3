package lower_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/lexer"
	"github.com/trusty-lang/trustyc/internal/lower"
	"github.com/trusty-lang/trustyc/internal/parser"
	"github.com/trusty-lang/trustyc/internal/preprocess"
)

// parseFile preprocesses and parses src, failing the test on any error.
func parseFile(t *testing.T, src string) *ast.File {
	t.Helper()
	preprocessed, err := preprocess.Preprocess(src, "test.src")
	require.NoError(t, err)
	l := lexer.New(preprocessed, "test.src")
	p := parser.New(l, "test.src")
	file := p.ParseFile()
	require.Empty(t, p.Errors())
	return file
}

func firstFunc(t *testing.T, file *ast.File) *ast.FuncDecl {
	t.Helper()
	for _, d := range file.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok {
			return fn
		}
	}
	t.Fatal("no function declaration found")
	return nil
}

func firstImpl(t *testing.T, file *ast.File) *ast.ImplDecl {
	t.Helper()
	for _, d := range file.Decls {
		if impl, ok := d.(*ast.ImplDecl); ok {
			return impl
		}
	}
	t.Fatal("no implements block found")
	return nil
}

func TestLowerFuncSyncReturnsDirectly(t *testing.T) {
	file := parseFile(t, `function add(a: int32, b: int32): int32 { return a + b; }`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "pub fn add(a: i32, b: i32) -> i32 {")
	require.Contains(t, out, "return (a + b);")
}

func TestLowerFuncAsyncSpawnsThread(t *testing.T) {
	file := parseFile(t, `async function fetch(): int32 { return 1; }`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "std::thread::JoinHandle<i32>")
	require.Contains(t, out, "std::thread::spawn(move ||")
}

func TestLowerVarDeclSharedCellWrapsInit(t *testing.T) {
	file := parseFile(t, `function make(): int32 { let cell: Pointer<int32> = 1; return cell.get(); }`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "Rc::new(RefCell::new(1))")
}

func TestLowerVarDeclSharedCellCloneOnReassign(t *testing.T) {
	file := parseFile(t, `
		function share(a: Pointer<int32>): int32 {
			let b: Pointer<int32> = a;
			return b.get();
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "let b = a.clone();")
}

func TestLowerMemberAccessBorrowsSharedCell(t *testing.T) {
	file := parseFile(t, `
		function touch(p: Pointer<int32>): int32 {
			return p.value;
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "p.borrow().value")
}

func TestLowerAssignToSharedCellBorrowsMut(t *testing.T) {
	file := parseFile(t, `
		function bump(p: Pointer<int32>): int32 {
			p.value = 5;
			return p.value;
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "p.borrow_mut().value = 5;")
}

func TestLowerIfAndWhile(t *testing.T) {
	file := parseFile(t, `
		function count(n: int32): int32 {
			let i: int32 = 0;
			while (i < n) {
				i = i + 1;
			}
			if (i == n) {
				return i;
			} else {
				return 0;
			}
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "while (i < n) {")
	require.Contains(t, out, "if (i == n) {")
	require.Contains(t, out, "} else {")
}

func TestLowerForLoopBecomesWhile(t *testing.T) {
	file := parseFile(t, `
		function sum(n: int32): int32 {
			let total: int32 = 0;
			for (let i: int32 = 0; i < n; i = i + 1) {
				total = total + i;
			}
			return total;
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "while (i < n) {")
	require.Contains(t, out, "i = i + 1;")
}

func TestLowerThrowUnwrapsNewError(t *testing.T) {
	file := parseFile(t, `
		function fail(): int32 {
			throw new Error("boom");
			return 0;
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, `return Err("boom".to_string());`)
}

func TestLowerTryCatch(t *testing.T) {
	file := parseFile(t, `
		function safe(): int32 {
			try {
				throw new Error("boom");
			} catch (e) {
				return 0;
			}
			return 1;
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "__trust_try_result")
	require.Contains(t, out, "if let Err(e) = __trust_try_result {")
}

func TestLowerStructConstructorCall(t *testing.T) {
	file := parseFile(t, `
		function build(): Point {
			return Point({ x: 1, y: 2 });
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "Point { x: 1, y: 2 }")
}

func TestLowerBuiltinCastToString(t *testing.T) {
	file := parseFile(t, `
		function show(n: int32): string {
			return string(n);
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, ".to_string()")
}

func TestLowerStringMethods(t *testing.T) {
	file := parseFile(t, `
		function norm(name: string): string {
			let upper: string = name.toUpperCase();
			return upper;
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "name.to_uppercase()")
}

func TestLowerConsoleWriteUsesSinglePlaceholder(t *testing.T) {
	file := parseFile(t, `
		function show(msg: string): void {
			console.write(msg);
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, `println!("{}", msg)`)
}

func TestLowerStringCharAtIndexOfLastIndexOf(t *testing.T) {
	file := parseFile(t, `
		function probe(name: string): int32 {
			let c: string = name.charAt(0);
			let i: int32 = name.indexOf("a");
			let j: int32 = name.lastIndexOf("a");
			return i + j;
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "name.chars().nth((0) as usize).map(|c| c.to_string()).unwrap_or_default()")
	require.Contains(t, out, `name.find(("a".to_string()).as_str()).map(|b| name[..b].chars().count() as i32).unwrap_or(-1)`)
	require.Contains(t, out, `name.rfind(("a".to_string()).as_str()).map(|b| name[..b].chars().count() as i32).unwrap_or(-1)`)
}

func TestLowerStringSliceNegativeOffsetFromEnd(t *testing.T) {
	file := parseFile(t, `
		function tail(name: string): string {
			return name.slice(-2);
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "__trust_norm = |__trust_v: i64| -> usize")
	require.Contains(t, out, "__trust_norm((-2) as i64)")
	require.Contains(t, out, "__trust_norm(__trust_len).max(__trust_start)")
}

func TestLowerStringSubstrNegativeStartAndLength(t *testing.T) {
	file := parseFile(t, `
		function piece(name: string): string {
			return name.substr(-3, 2);
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "__trust_v: i64 = (-3) as i64")
	require.Contains(t, out, "__trust_count = ((2) as i64).max(0)")
}

// TestLowerStringSubstringSwapsReversedArgs guards spec.md §4.4's explicit
// rule that substring (unlike slice/substr) swaps its arguments when start >
// end rather than clamping to an empty range.
func TestLowerStringSubstringSwapsReversedArgs(t *testing.T) {
	file := parseFile(t, `
		function mid(name: string): string {
			return name.substring(5, 1);
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "__trust_a = ((5) as i64).max(0).min(__trust_len)")
	require.Contains(t, out, "__trust_b = ((1) as i64).max(0).min(__trust_len)")
	require.Contains(t, out, "__trust_start = __trust_a.min(__trust_b) as usize")
	require.Contains(t, out, "__trust_end = __trust_a.max(__trust_b) as usize")
}

// TestLowerStringSubstringClampsNegativeToZero guards substring's distinct
// negative-argument rule: clamp to 0 rather than slice/substr's
// offset-from-end treatment.
func TestLowerStringSubstringClampsNegativeToZero(t *testing.T) {
	file := parseFile(t, `
		function head(name: string): string {
			return name.substring(-4, 2);
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, "__trust_a = ((-4) as i64).max(0).min(__trust_len)")
}

func TestLowerMapMethods(t *testing.T) {
	file := parseFile(t, `
		function use(m: Map<string, int32>): boolean {
			m.set("a", 1);
			return m.has("a");
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, out, ".insert(")
	require.Contains(t, out, ".contains_key(")
}

func TestLowerModuleAliasMethodCall(t *testing.T) {
	file := parseFile(t, `
		function compute(): int32 {
			return math.abs(-1);
		}
	`)
	out := lower.LowerFunc(firstFunc(t, file), []string{"math"})
	require.Contains(t, out, "math::abs(")
}

func TestLowerImplSelfMutability(t *testing.T) {
	file := parseFile(t, `
		implements Counter {
			function bump() {
				this.count = this.count + 1;
			}
			function peek(): int32 {
				return this.count;
			}
		}
	`)
	out, err := lower.LowerImpl(firstImpl(t, file), nil)
	require.NoError(t, err)
	require.Contains(t, out, "pub fn bump(&mut self)")
	require.Contains(t, out, "pub fn peek(&self)")
}

func TestLowerInterfaceDerivesAndBoxesRecursiveField(t *testing.T) {
	file := parseFile(t, `
		struct Node {
			value: int32;
			next: Node;
		}
	`)
	var iface *ast.InterfaceDecl
	for _, d := range file.Decls {
		if n, ok := d.(*ast.InterfaceDecl); ok {
			iface = n
		}
	}
	require.NotNil(t, iface)

	out := lower.LowerInterface(iface, false)
	require.Contains(t, out, "#[derive(Debug, Clone)]")
	require.Contains(t, out, "next: Box<Node>,")

	withJSON := lower.LowerInterface(iface, true)
	require.Contains(t, withJSON, "Serialize, Deserialize")
	require.Contains(t, withJSON, "use serde::{Serialize, Deserialize};")
}

func TestLowerStringEnumGetsAsStrAndDisplay(t *testing.T) {
	file := parseFile(t, `
		enum Color {
			Red = "red",
			Blue = "blue",
		}
	`)
	var e *ast.EnumDecl
	for _, d := range file.Decls {
		if n, ok := d.(*ast.EnumDecl); ok {
			e = n
		}
	}
	require.NotNil(t, e)

	out := lower.LowerEnum(e)
	require.Contains(t, out, "pub fn as_str(&self) -> &'static str {")
	require.Contains(t, out, `Color::Red => "red",`)
	require.Contains(t, out, "impl std::fmt::Display for Color {")
}

func TestLowerNumericEnumPreservesDiscriminants(t *testing.T) {
	file := parseFile(t, `
		enum Status {
			Ok = 0,
			Error = 1,
		}
	`)
	var e *ast.EnumDecl
	for _, d := range file.Decls {
		if n, ok := d.(*ast.EnumDecl); ok {
			e = n
		}
	}
	require.NotNil(t, e)

	out := lower.LowerEnum(e)
	require.Contains(t, out, "Ok = 0,")
	require.Contains(t, out, "Error = 1,")
}

// TestLowerPreservesMultiWordIdentifiersVerbatim guards against renaming
// identifiers at declaration sites without applying the identical rename
// at every reference site (§4.6 lowers names verbatim, e.g. `fn
// name(params)`, struct field `k1: v1`): a struct field, a function
// parameter, a function name, and a method name all keep their original
// SRC casing everywhere they're lowered, so declaration and use agree.
func TestLowerPreservesMultiWordIdentifiersVerbatim(t *testing.T) {
	file := parseFile(t, `
		struct Person {
			firstName: string;
		}
		function makePerson(firstName: string): Person {
			return Person({ firstName: firstName });
		}
	`)

	var iface *ast.InterfaceDecl
	for _, d := range file.Decls {
		if n, ok := d.(*ast.InterfaceDecl); ok {
			iface = n
		}
	}
	require.NotNil(t, iface)
	structOut := lower.LowerInterface(iface, false)
	require.Contains(t, structOut, "pub firstName: String,")

	fnOut := lower.LowerFunc(firstFunc(t, file), nil)
	require.Contains(t, fnOut, "pub fn makePerson(firstName: String) -> Person {")
	require.Contains(t, fnOut, "Person { firstName: firstName }")
}

func TestLowerImplPreservesMultiWordMethodName(t *testing.T) {
	file := parseFile(t, `
		implements Account {
			function getBalance(): int32 {
				return this.balance;
			}
		}
	`)
	out, err := lower.LowerImpl(firstImpl(t, file), nil)
	require.NoError(t, err)
	require.Contains(t, out, "pub fn getBalance(&self) -> i32 {")
}

func TestLowerGlobalConst(t *testing.T) {
	file := parseFile(t, `const GREETING = "hello";`)
	var c *ast.GlobalConstDecl
	for _, d := range file.Decls {
		if n, ok := d.(*ast.GlobalConstDecl); ok {
			c = n
		}
	}
	require.NotNil(t, c)
	out := lower.LowerGlobalConst(c)
	require.Equal(t, `pub const GREETING: &'static str = "hello";`, out)
}

func TestLowerGlobalConstPreservesMultiWordNameVerbatim(t *testing.T) {
	file := parseFile(t, `const maxRetryCount = 3;`)
	var c *ast.GlobalConstDecl
	for _, d := range file.Decls {
		if n, ok := d.(*ast.GlobalConstDecl); ok {
			c = n
		}
	}
	require.NotNil(t, c)
	out := lower.LowerGlobalConst(c)
	require.Equal(t, `pub const maxRetryCount: i32 = 3;`, out)
}
