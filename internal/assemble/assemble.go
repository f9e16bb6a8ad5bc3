// Package assemble implements [ASSEMBLER] (§4.7): combining the lowered
// use statements, type declarations, impl blocks, global consts, and
// functions into one ordered Rust source text, then prepending `use` lines
// for shared-cell and hash-container shapes that the assembled text
// references but no explicit `use` covers yet. RequiredCrates merges the
// crate lists separately; the text scan does not add crates.
package assemble

import "strings"

// Sections holds each category of already-lowered Rust text, in the
// order the caller discovered them. Assemble reorders and joins them.
type Sections struct {
	UseStatements []string
	TypeDecls     []string
	ImplBlocks    []string
	GlobalConsts  []string
	Functions     []string
}

// autoUse pairs a textual marker with the `use` line to prepend when the
// marker appears in the assembled body but no existing use line already
// covers it (§4.7 "the corresponding use lines are prepended").
var autoUse = []struct {
	marker  string
	already string
	use     string
}{
	{"HashMap<", "HashMap", "use std::collections::HashMap;"},
	{"HashSet<", "HashSet", "use std::collections::HashSet;"},
	{"Rc<RefCell<", "RefCell", "use std::rc::Rc;\nuse std::cell::RefCell;"},
	{"Arc<Mutex<", "Mutex", "use std::sync::{Arc, Mutex};"},
}

// Assemble orders sections per §4.7: (1) deduplicated use statements,
// (2) type decls, (3) impl blocks, (4) global consts, (5) functions.
func Assemble(s Sections) string {
	uses := dedupUses(s.UseStatements)
	body := strings.Join(concatNonEmpty(s.TypeDecls, s.ImplBlocks, s.GlobalConsts, s.Functions), "\n\n")

	uses = append(autoInjectedUses(uses, body), uses...)

	var b strings.Builder
	if len(uses) > 0 {
		b.WriteString(strings.Join(uses, "\n"))
		b.WriteString("\n\n")
	}
	b.WriteString(body)
	if body != "" {
		b.WriteString("\n")
	}
	return b.String()
}

func concatNonEmpty(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// dedupUses removes exact-duplicate use-statement blocks while keeping
// first-seen order.
func dedupUses(uses []string) []string {
	seen := make(map[string]bool, len(uses))
	out := make([]string, 0, len(uses))
	for _, u := range uses {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// autoInjectedUses returns the use lines that must be prepended because
// body references a shared-cell or hash-container shape that none of the
// existing uses already covers.
func autoInjectedUses(existingUses []string, body string) []string {
	existingText := strings.Join(existingUses, "\n")
	var injected []string
	for _, rule := range autoUse {
		if !strings.Contains(body, rule.marker) {
			continue
		}
		if strings.Contains(existingText, rule.already) {
			continue
		}
		injected = append(injected, rule.use)
	}
	return injected
}

// RequiredCrates merges and deduplicates crate name lists, keeping
// first-seen order — the closure of every import's RequiredCrates plus
// any stdlib-module crates pulled in transitively.
func RequiredCrates(groups ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range groups {
		for _, c := range g {
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
