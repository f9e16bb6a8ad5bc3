// Package lower implements [EXPRLOWER], [STMTLOWER], and [DECLLOWER]
// (§4.4–§4.6): the read-only AST walk that turns a parsed *ast.File into
// Rust text. Dispatch for shared-cell unwrap, module-alias calls, and
// uppercase-receiver struct calls is driven entirely by a per-function
// Scope (§3 data model), never by a type checker.
package lower

import "strings"

// moduleAliasMarker is the distinguished Scope value used to tag an
// identifier bound by a default stdlib/external import as a module
// namespace (§3: "Module-alias markers are never overwritten by ordinary
// bindings of the same name within the same function").
const moduleAliasMarker = "##module-alias##"

// Scope is the per-function symbol table mapping a name to its lowered
// Rust type text (§3). It has no shadowing stack: a name rebound within
// the same function simply overwrites its prior entry, except that a
// module-alias marker is sticky.
type Scope struct {
	vars map[string]string
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{vars: make(map[string]string)}
}

// Clone makes an independent copy, used when entering a nested closure
// or try-block body (§3: "Scope is per-function and cloned when entering
// nested closures or try-blocks").
func (s *Scope) Clone() *Scope {
	cp := make(map[string]string, len(s.vars))
	for k, v := range s.vars {
		cp[k] = v
	}
	return &Scope{vars: cp}
}

// Bind records name's lowered Rust type. A module-alias marker already
// bound to name is never overwritten by an ordinary binding.
func (s *Scope) Bind(name, rustType string) {
	if s.vars[name] == moduleAliasMarker && rustType != moduleAliasMarker {
		return
	}
	s.vars[name] = rustType
}

// BindAlias marks name as a module alias.
func (s *Scope) BindAlias(name string) {
	s.vars[name] = moduleAliasMarker
}

// Lookup returns name's lowered Rust type and whether it is bound.
func (s *Scope) Lookup(name string) (string, bool) {
	t, ok := s.vars[name]
	return t, ok
}

// IsModuleAlias reports whether name is bound as a module alias.
func (s *Scope) IsModuleAlias(name string) bool {
	return s.vars[name] == moduleAliasMarker
}

// IsSingleThreadCell reports whether name's scope type is the Rc<RefCell<..>>
// shape [TYPELOWER] emits for `Pointer<T>`.
func (s *Scope) IsSingleThreadCell(name string) bool {
	t, ok := s.vars[name]
	return ok && strings.HasPrefix(t, "Rc<RefCell<")
}

// IsMultiThreadCell reports whether name's scope type is the Arc<Mutex<..>>
// shape [TYPELOWER] emits for `Threaded<T>`.
func (s *Scope) IsMultiThreadCell(name string) bool {
	t, ok := s.vars[name]
	return ok && strings.HasPrefix(t, "Arc<Mutex<")
}

// IsSharedCell reports whether name is bound to either shared-cell shape.
func (s *Scope) IsSharedCell(name string) bool {
	return s.IsSingleThreadCell(name) || s.IsMultiThreadCell(name)
}

// IsStringLike reports whether name's scope type is `String` or a shared
// cell wrapping one, used by the `.length` dispatch rule (§4.4).
func (s *Scope) IsStringLike(name string) bool {
	t, ok := s.vars[name]
	if !ok {
		return false
	}
	return t == "String" || t == "Rc<RefCell<String>>" || t == "Arc<Mutex<String>>"
}

// IsSet reports whether name's scope type is a HashSet, used to choose
// between `.has()` lowering to `.contains()` for sets vs. maps (§4.4).
func (s *Scope) IsSet(name string) bool {
	t, ok := s.vars[name]
	return ok && strings.Contains(t, "HashSet<")
}
