// Package pipeline wires the compiler's phases — preprocess, parse,
// resolve, lower, assemble — into a single Run call, grounded on the
// teacher's Config/Source/Result triad (internal/pipeline/pipeline.go in
// the original AILANG tree) adapted from a type-checking/evaluation
// pipeline to a source-to-source transpilation one.
package pipeline

import (
	"fmt"
	"time"

	"github.com/trusty-lang/trustyc/internal/assemble"
	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/errors"
	"github.com/trusty-lang/trustyc/internal/lexer"
	"github.com/trusty-lang/trustyc/internal/lower"
	"github.com/trusty-lang/trustyc/internal/parser"
	"github.com/trusty-lang/trustyc/internal/preprocess"
	"github.com/trusty-lang/trustyc/internal/resolve"
)

// Config carries pipeline-wide knobs. Kept deliberately small: there is
// no type checker, REPL, or evaluator in this pipeline, so most of the
// teacher's debug/trace flags have no analogue here.
type Config struct{}

// Source is pipeline input.
type Source struct {
	Code     string
	Filename string
}

// Artifacts holds intermediate representations, exposed for tooling
// (language server, golden-file tests) the way the teacher's Artifacts
// struct exposes Core/Typed/Linked.
type Artifacts struct {
	Preprocessed string
	AST          *ast.File
}

// Result is pipeline output.
type Result struct {
	Rust           string
	RequiredCrates []string
	Artifacts      Artifacts
	PhaseTimings   map[string]int64 // milliseconds, keyed by phase name
}

// Run executes preprocess -> parse -> resolve -> lower -> assemble over
// src and returns the generated Rust module text.
func Run(cfg Config, src Source) (Result, error) {
	result := Result{PhaseTimings: make(map[string]int64)}

	phase := func(name string, start time.Time) {
		result.PhaseTimings[name] = time.Since(start).Milliseconds()
	}

	start := time.Now()
	code := string(lexer.Normalize([]byte(src.Code)))
	preprocessed, err := preprocess.Preprocess(code, src.Filename)
	phase("preprocess", start)
	if err != nil {
		return result, err
	}
	result.Artifacts.Preprocessed = preprocessed

	start = time.Now()
	l := lexer.New(string(lexer.Normalize([]byte(preprocessed))), src.Filename)
	p := parser.New(l, src.Filename)
	file := p.ParseFile()
	phase("parse", start)
	if errs := p.Errors(); len(errs) > 0 {
		return result, errs[0]
	}
	result.Artifacts.AST = file

	start = time.Now()
	crates, err := lowerFile(file, &result)
	phase("lower", start)
	if err != nil {
		return result, err
	}
	result.RequiredCrates = crates

	return result, nil
}

// lowerFile resolves imports, lowers every declaration, and assembles the
// final Rust text directly into result.Rust, returning the closed set of
// required crates.
func lowerFile(file *ast.File, result *Result) ([]string, error) {
	var sections assemble.Sections
	var crateGroups [][]string
	var moduleAliases []string

	for _, imp := range file.Imports {
		info, err := resolve.Resolve(imp)
		if err != nil {
			return nil, err
		}
		sections.UseStatements = append(sections.UseStatements, info.UseStatements...)
		crateGroups = append(crateGroups, info.RequiredCrates)
		moduleAliases = append(moduleAliases, info.ModuleAliases...)
	}

	jsonImported := resolve.UsesJSON(file.Imports)

	for _, decl := range file.Decls {
		if err := lowerDecl(decl, &sections, jsonImported, moduleAliases); err != nil {
			return nil, err
		}
	}

	result.Rust = assemble.Assemble(sections)
	return assemble.RequiredCrates(crateGroups...), nil
}

func lowerDecl(decl ast.Decl, sections *assemble.Sections, jsonImported bool, moduleAliases []string) error {
	switch d := decl.(type) {
	case *ast.InterfaceDecl:
		sections.TypeDecls = append(sections.TypeDecls, lower.LowerInterface(d, jsonImported))
	case *ast.EnumDecl:
		sections.TypeDecls = append(sections.TypeDecls, lower.LowerEnum(d))
	case *ast.FuncDecl:
		sections.Functions = append(sections.Functions, lower.LowerFunc(d, moduleAliases))
	case *ast.ImplDecl:
		implText, err := lower.LowerImpl(d, moduleAliases)
		if err != nil {
			return err
		}
		sections.ImplBlocks = append(sections.ImplBlocks, implText)
	case *ast.GlobalConstDecl:
		sections.GlobalConsts = append(sections.GlobalConsts, lower.LowerGlobalConst(d))
	default:
		return errors.WrapReport(errors.New(errors.LOW003, "lower",
			fmt.Sprintf("unsupported top-level declaration %T", decl), nil))
	}
	return nil
}
