// Package transpile exposes the compiler core's two entry points (§6):
// Compile for just the generated Rust text, and CompileFull when the
// caller (the out-of-scope CLI, or a test) also needs the required-crate
// set. Both wrap the internal/pipeline Run call.
package transpile

import "github.com/trusty-lang/trustyc/internal/pipeline"

// TranspileOutput is compile_full's result shape (§6): generated code
// plus the closed set of external package names it requires.
type TranspileOutput struct {
	RustCode       string
	RequiredCrates []string
}

// Compile processes source to completion and returns the generated Rust
// text, or the first error encountered in any phase (§7: "the first
// error aborts the invocation").
func Compile(source string) (string, error) {
	result, err := pipeline.Run(pipeline.Config{}, pipeline.Source{Code: source, Filename: "<input>"})
	if err != nil {
		return "", err
	}
	return result.Rust, nil
}

// CompileFull processes source to completion and returns the generated
// Rust text together with its required-crate set.
func CompileFull(source string) (TranspileOutput, error) {
	result, err := pipeline.Run(pipeline.Config{}, pipeline.Source{Code: source, Filename: "<input>"})
	if err != nil {
		return TranspileOutput{}, err
	}
	return TranspileOutput{RustCode: result.Rust, RequiredCrates: result.RequiredCrates}, nil
}
