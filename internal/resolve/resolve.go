// Package resolve implements [RESOLVER] (§4.2): classifying each
// `import ... from "...";` declaration and producing the `use` lines,
// crate requirements, and module-alias bindings the assembler and
// expression lowering need. `trusty:<name>` modules are resolved against
// a static table of hand-written Rust shims (§9 "Stdlib shims as string
// blobs"), embedded at build time from internal/resolve/stdlib/*.yaml —
// grounded on internal/eval_harness/spec.go's LoadSpec (os.ReadFile +
// yaml.Unmarshal), adapted to embed.FS since this table ships inside the
// binary.
package resolve

import (
	"embed"
	"fmt"
	"strings"

	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed stdlib/*.yaml
var stdlibFS embed.FS

// RequiredCrate is a (name, version) pair destined for Cargo.toml.
type RequiredCrate struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// stdlibModule is the on-disk shape of one trusty:<name> module definition.
type stdlibModule struct {
	Name   string          `yaml:"name"`
	Crates []RequiredCrate `yaml:"crates"`
	Shim   string          `yaml:"shim"`
}

var stdlibTable map[string]stdlibModule

func init() {
	stdlibTable = make(map[string]stdlibModule)
	entries, err := stdlibFS.ReadDir("stdlib")
	if err != nil {
		panic(fmt.Sprintf("resolve: cannot read embedded stdlib table: %v", err))
	}
	for _, e := range entries {
		data, err := stdlibFS.ReadFile("stdlib/" + e.Name())
		if err != nil {
			panic(fmt.Sprintf("resolve: cannot read %s: %v", e.Name(), err))
		}
		var mod stdlibModule
		if err := yaml.Unmarshal(data, &mod); err != nil {
			panic(fmt.Sprintf("resolve: cannot parse %s: %v", e.Name(), err))
		}
		if mod.Name == "" {
			panic(fmt.Sprintf("resolve: %s missing required field: name", e.Name()))
		}
		stdlibTable[mod.Name] = mod
	}
}

// ImportInfo is the resolver's per-import record (§3 data model).
type ImportInfo struct {
	UseStatements  []string
	RequiredCrates []string
	ModuleAliases  []string
}

// Resolve classifies imp and produces its ImportInfo.
func Resolve(imp *ast.ImportDecl) (*ImportInfo, error) {
	switch {
	case strings.HasPrefix(imp.Source, "trusty:"):
		return resolveStdlib(imp)
	case strings.HasPrefix(imp.Source, "./") || strings.HasPrefix(imp.Source, "../"):
		return &ImportInfo{}, nil
	default:
		return resolveExternal(imp)
	}
}

func resolveStdlib(imp *ast.ImportDecl) (*ImportInfo, error) {
	moduleName := strings.TrimPrefix(imp.Source, "trusty:")

	if imp.DefaultAlias != "" && len(imp.Named) > 0 {
		return nil, errors.WrapReport(errors.New(errors.RES001, "resolve",
			"mixed default and named imports are not supported for trusty:* modules", &imp.Span))
	}

	mod, ok := stdlibTable[moduleName]
	if !ok {
		return &ImportInfo{
			UseStatements: []string{fmt.Sprintf("// trusty:%s — module not yet implemented", moduleName)},
		}, nil
	}

	crateNames := make([]string, len(mod.Crates))
	for i, c := range mod.Crates {
		crateNames[i] = c.Name
	}

	if imp.DefaultAlias != "" {
		if moduleName != "math" {
			return nil, errors.WrapReport(errors.New(errors.RES002, "resolve",
				"default import alias is currently supported only for \"trusty:math\"", &imp.Span))
		}
		wrapped := fmt.Sprintf("mod __trusty_%s {\n%s}\nuse __trusty_%s as %s;",
			moduleName, mod.Shim, moduleName, imp.DefaultAlias)
		return &ImportInfo{
			UseStatements:  []string{wrapped},
			RequiredCrates: crateNames,
			ModuleAliases:  []string{imp.DefaultAlias},
		}, nil
	}

	return &ImportInfo{
		UseStatements:  []string{mod.Shim},
		RequiredCrates: crateNames,
	}, nil
}

func resolveExternal(imp *ast.ImportDecl) (*ImportInfo, error) {
	modulePath := strings.ReplaceAll(imp.Source, "/", "::")
	topLevel := modulePath
	if i := strings.Index(modulePath, "::"); i != -1 {
		topLevel = modulePath[:i]
	}
	var crate []string
	if topLevel != "std" && topLevel != "core" && topLevel != "alloc" {
		crate = []string{topLevel}
	}

	if imp.DefaultAlias != "" {
		if len(imp.Named) > 0 {
			return nil, errors.WrapReport(errors.New(errors.RES003, "resolve",
				"mixed default and named imports are not supported for external crates", &imp.Span))
		}
		return &ImportInfo{
			UseStatements:  []string{fmt.Sprintf("use %s as %s;", modulePath, imp.DefaultAlias)},
			RequiredCrates: crate,
			ModuleAliases:  []string{imp.DefaultAlias},
		}, nil
	}

	var useStmt string
	switch len(imp.Named) {
	case 0:
		useStmt = fmt.Sprintf("use %s;", modulePath)
	case 1:
		useStmt = fmt.Sprintf("use %s::%s;", modulePath, imp.Named[0])
	default:
		useStmt = fmt.Sprintf("use %s::{%s};", modulePath, strings.Join(imp.Named, ", "))
	}

	return &ImportInfo{
		UseStatements:  []string{useStmt},
		RequiredCrates: crate,
	}, nil
}

// UsesJSON reports whether any import in imports resolves to the json
// stdlib module, the signal [DECLLOWER] uses to add serde derives
// (§4.6, §8 property 7).
func UsesJSON(imports []*ast.ImportDecl) bool {
	for _, imp := range imports {
		if strings.TrimPrefix(imp.Source, "trusty:") == "json" && strings.HasPrefix(imp.Source, "trusty:") {
			return true
		}
	}
	return false
}
