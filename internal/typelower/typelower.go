// Package typelower implements [TYPELOWER] (§4.3): a pure, stateless
// mapping from SRC type syntax to Rust type text. Nothing here consults a
// scope or an import table; the same *ast.Type always lowers to the same
// Rust string.
package typelower

import (
	"fmt"
	"strings"

	"github.com/trusty-lang/trustyc/internal/ast"
)

var scalarTypes = map[string]string{
	"number8":  "i8",
	"number16": "i16",
	"number32": "i32",
	"number64": "i64",
	"int8":     "i8",
	"int16":    "i16",
	"int32":    "i32",
	"int64":    "i64",
	"int":      "i32",
	"number":   "i32",
	"float32":  "f32",
	"float64":  "f64",
	"float":    "f64",
	"string":   "String",
	"boolean":  "bool",
}

// passthroughNames are named-type heads that pass straight through to Rust,
// with each type argument lowered recursively.
var passthroughNames = map[string]bool{
	"Box":    true,
	"Vec":    true,
	"Result": true,
	"Option": true,
}

// Lower maps an SRC type node to its Rust type text. enclosingInterface is
// the name of the interface currently being lowered, if any; a field whose
// bare-name type equals it is boxed to avoid an infinite-size type.
func Lower(t ast.Type, enclosingInterface string) string {
	switch n := t.(type) {
	case nil:
		return "()"
	case *ast.ArrayType:
		return fmt.Sprintf("Vec<%s>", Lower(n.Elem, enclosingInterface))
	case *ast.NamedType:
		return lowerNamed(n, enclosingInterface)
	default:
		return t.String()
	}
}

// LowerField lowers an interface field's type, boxing it when it refers
// back to the interface being defined (§4.3 "recursive struct fields").
func LowerField(t ast.Type, interfaceName string) string {
	lowered := Lower(t, interfaceName)
	if named, ok := t.(*ast.NamedType); ok && len(named.Args) == 0 && named.Name == interfaceName {
		return fmt.Sprintf("Box<%s>", lowered)
	}
	return lowered
}

func lowerNamed(n *ast.NamedType, enclosingInterface string) string {
	if rust, ok := scalarTypes[n.Name]; ok && len(n.Args) == 0 {
		return rust
	}

	switch n.Name {
	case "Pointer":
		return wrapOne("Rc<RefCell<%s>>", n, enclosingInterface)
	case "Threaded":
		return wrapOne("Arc<Mutex<%s>>", n, enclosingInterface)
	case "Map":
		if len(n.Args) == 2 {
			return fmt.Sprintf("HashMap<%s, %s>", Lower(n.Args[0], enclosingInterface), Lower(n.Args[1], enclosingInterface))
		}
		return "HashMap<String, String>"
	case "Set":
		return wrapOne("HashSet<%s>", n, enclosingInterface)
	}

	if len(n.Args) == 0 {
		return n.Name
	}

	// Pass-through: any named type with parameters, including the
	// explicit allow-list (Box/Vec/Result/Option) and any other
	// identifier-headed generic type (§4.3 "Any other named type with
	// parameters").
	_ = passthroughNames
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = Lower(a, enclosingInterface)
	}
	return fmt.Sprintf("%s<%s>", n.Name, strings.Join(args, ", "))
}

func wrapOne(format string, n *ast.NamedType, enclosingInterface string) string {
	if len(n.Args) != 1 {
		return fmt.Sprintf(format, "()")
	}
	return fmt.Sprintf(format, Lower(n.Args[0], enclosingInterface))
}

// IsSingleThreadCell reports whether t is a `Pointer<T>` shared cell.
func IsSingleThreadCell(t ast.Type) bool {
	n, ok := t.(*ast.NamedType)
	return ok && n.Name == "Pointer"
}

// IsMultiThreadCell reports whether t is a `Threaded<T>` shared cell.
func IsMultiThreadCell(t ast.Type) bool {
	n, ok := t.(*ast.NamedType)
	return ok && n.Name == "Threaded"
}

// IsSharedCell reports whether t is either shared-cell flavor.
func IsSharedCell(t ast.Type) bool {
	return IsSingleThreadCell(t) || IsMultiThreadCell(t)
}

// IsBuiltinCast reports whether name is a builtin cast function recognized
// by expression lowering's call dispatch (§4.4 "Call").
func IsBuiltinCast(name string) bool {
	switch name {
	case "string", "boolean", "int", "float",
		"int8", "int16", "int32", "int64",
		"float32", "float64",
		"number", "number8", "number16", "number32", "number64":
		return true
	}
	return false
}

// LowerCastTarget maps a builtin cast function name to its Rust type text,
// reusing the scalar table where applicable.
func LowerCastTarget(name string) string {
	if rust, ok := scalarTypes[name]; ok {
		return rust
	}
	return name
}
