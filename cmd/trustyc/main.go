// Command trustyc is a minimal driver over the transpile core: it reads
// one SRC source file and prints the generated Rust module to stdout.
// Project layout, Cargo.toml generation, and build/run/check/new/format
// subcommands are out of scope (spec.md §1 Non-goals) — this exists only
// to exercise Compile/CompileFull from a terminal, grounded on
// cmd/ailang/main.go's flag-parsing and fatih/color usage.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	transpile "github.com/trusty-lang/trustyc"
	"github.com/trusty-lang/trustyc/internal/errors"
)

var (
	Version = "dev"

	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "print version information")
		cratesFlag  = flag.Bool("crates", false, "also print the required crate set to stderr")
		jsonFlag    = flag.Bool("json", false, "emit errors as structured JSON (trustyc.error/v1)")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("trustyc %s\n", Version)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file.trs>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	path := flag.Arg(0)
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}

	output, err := transpile.CompileFull(string(source))
	if err != nil {
		reportError(err, *jsonFlag)
		os.Exit(1)
	}

	fmt.Print(output.RustCode)
	if *cratesFlag {
		fmt.Fprintf(os.Stderr, "%s %v\n", bold("required crates:"), output.RequiredCrates)
	}
	fmt.Fprintln(os.Stderr, green("ok"))
}

func reportError(err error, asJSON bool) {
	if report, ok := errors.AsReport(err); ok {
		if asJSON {
			if text, jsonErr := report.ToJSON(false); jsonErr == nil {
				fmt.Fprintln(os.Stderr, text)
				return
			}
		}
		fmt.Fprintf(os.Stderr, "%s [%s/%s]: %s\n", red("error"), report.Phase, report.Code, report.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
}
