package typelower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trusty-lang/trustyc/internal/ast"
)

func named(name string, args ...ast.Type) *ast.NamedType {
	return &ast.NamedType{Name: name, Args: args}
}

func TestLowerScalars(t *testing.T) {
	cases := map[string]string{
		"int32":   "i32",
		"number8": "i8",
		"number":  "i32",
		"float":   "f64",
		"string":  "String",
		"boolean": "bool",
	}
	for src, want := range cases {
		require.Equal(t, want, Lower(named(src), ""), src)
	}
}

func TestLowerArrayType(t *testing.T) {
	require.Equal(t, "Vec<i32>", Lower(&ast.ArrayType{Elem: named("int32")}, ""))
}

func TestLowerSharedCells(t *testing.T) {
	require.Equal(t, "Rc<RefCell<i32>>", Lower(named("Pointer", named("int32")), ""))
	require.Equal(t, "Arc<Mutex<String>>", Lower(named("Threaded", named("string")), ""))
}

func TestLowerMapAndSet(t *testing.T) {
	require.Equal(t, "HashMap<String, i32>", Lower(named("Map", named("string"), named("int32")), ""))
	require.Equal(t, "HashSet<String>", Lower(named("Set", named("string")), ""))
}

func TestLowerPassthroughGeneric(t *testing.T) {
	require.Equal(t, "Vec<i32>", Lower(named("Vec", named("int32")), ""))
	require.Equal(t, "Option<String>", Lower(named("Option", named("string")), ""))
	require.Equal(t, "Widget<i32>", Lower(named("Widget", named("int32")), ""))
}

func TestLowerBareIdentifier(t *testing.T) {
	require.Equal(t, "Node", Lower(named("Node"), ""))
}

func TestLowerFieldBoxesRecursiveReference(t *testing.T) {
	require.Equal(t, "Box<Node>", LowerField(named("Node"), "Node"))
	require.Equal(t, "i32", LowerField(named("int32"), "Node"))
}

func TestIsSharedCell(t *testing.T) {
	require.True(t, IsSingleThreadCell(named("Pointer", named("int32"))))
	require.True(t, IsMultiThreadCell(named("Threaded", named("int32"))))
	require.False(t, IsSharedCell(named("int32")))
}

func TestIsBuiltinCastAndTarget(t *testing.T) {
	require.True(t, IsBuiltinCast("string"))
	require.True(t, IsBuiltinCast("int32"))
	require.False(t, IsBuiltinCast("Node"))
	require.Equal(t, "i32", LowerCastTarget("int32"))
	require.Equal(t, "String", LowerCastTarget("string"))
}
