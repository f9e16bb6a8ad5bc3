package assemble

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestAssembleOrdersSections(t *testing.T) {
	out := Assemble(Sections{
		UseStatements: []string{"use std::fmt;"},
		TypeDecls:     []string{"#[derive(Debug, Clone)]\nstruct Point { x: i32 }"},
		ImplBlocks:    []string{"impl Point { fn x(&self) -> i32 { self.x } }"},
		GlobalConsts:  []string{"const MAX: i32 = 10;"},
		Functions:     []string{"fn main() {}"},
	})

	wantOrder := []string{"use std::fmt;", "struct Point", "impl Point", "const MAX", "fn main()"}
	var gotOrder []int
	for _, marker := range wantOrder {
		gotOrder = append(gotOrder, strings.Index(out, marker))
	}
	for i := 1; i < len(gotOrder); i++ {
		require.Greater(t, gotOrder[i], gotOrder[i-1], "section %q must follow %q in assembled output", wantOrder[i], wantOrder[i-1])
	}
}

func TestAssembleDedupsUseStatements(t *testing.T) {
	out := Assemble(Sections{
		UseStatements: []string{"use std::fmt;", "use std::fmt;", "use std::io;"},
		Functions:     []string{"fn f() {}"},
	})

	got := strings.Count(out, "use std::fmt;")
	require.Equal(t, 1, got, "duplicate use line must be removed, got assembled text:\n%s", out)
}

func TestAssembleAutoInjectsSharedCellUses(t *testing.T) {
	out := Assemble(Sections{
		Functions: []string{"fn make() -> Rc<RefCell<i32>> { Rc::new(RefCell::new(0)) }"},
	})

	require.True(t, strings.Contains(out, "use std::rc::Rc;"))
	require.True(t, strings.Contains(out, "use std::cell::RefCell;"))
}

func TestAssembleAutoInjectsThreadedUses(t *testing.T) {
	out := Assemble(Sections{
		Functions: []string{"fn make() -> Arc<Mutex<i32>> { Arc::new(Mutex::new(0)) }"},
	})

	require.True(t, strings.Contains(out, "use std::sync::{Arc, Mutex};"))
}

func TestAssembleAutoInjectsHashContainers(t *testing.T) {
	out := Assemble(Sections{
		Functions: []string{"fn m() -> HashMap<String, i32> { HashMap::new() }"},
	})
	require.True(t, strings.Contains(out, "use std::collections::HashMap;"))

	out2 := Assemble(Sections{
		Functions: []string{"fn s() -> HashSet<i32> { HashSet::new() }"},
	})
	require.True(t, strings.Contains(out2, "use std::collections::HashSet;"))
}

func TestAssembleSkipsAutoInjectWhenAlreadyCovered(t *testing.T) {
	out := Assemble(Sections{
		UseStatements: []string{"use std::collections::HashMap;"},
		Functions:     []string{"fn m() -> HashMap<String, i32> { HashMap::new() }"},
	})

	require.Equal(t, 1, strings.Count(out, "use std::collections::HashMap;"))
}

// TestAssembleStructuralDiff pins the exact assembled shape for a
// multi-section module via a structural (not substring) comparison, the
// way the teacher's AST golden tests compare whole trees instead of
// scanning for markers.
func TestAssembleStructuralDiff(t *testing.T) {
	got := Assemble(Sections{
		UseStatements: []string{"use std::collections::HashMap;"},
		TypeDecls:     []string{"#[derive(Debug, Clone)]\nstruct Point { x: i32 }"},
		Functions:     []string{"fn main() {}"},
	})

	want := "use std::collections::HashMap;\n\n" +
		"#[derive(Debug, Clone)]\nstruct Point { x: i32 }\n\n" +
		"fn main() {}\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("assembled output mismatch (-want +got):\n%s", diff)
	}
}

func TestRequiredCratesDedupsPreservingOrder(t *testing.T) {
	got := RequiredCrates([]string{"rand", "serde"}, []string{"serde", "tokio"}, []string{""})
	require.Equal(t, []string{"rand", "serde", "tokio"}, got)
}
