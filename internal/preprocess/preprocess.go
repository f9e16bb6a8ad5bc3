// Package preprocess implements the lexical rewriter that legalizes
// SRC-only syntax (§4.1) so the front end in internal/parser, standing
// in for a TypeScript parser, can accept it. Every rewrite here is
// context-aware: none of them touch bytes inside a string, template
// literal, line comment, or block comment.
package preprocess

import (
	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/diag"
	"github.com/trusty-lang/trustyc/internal/errors"
)

// Preprocess applies the six ordered rewrites and returns the legalized
// source. file is used only to annotate diagnostics and errors.
func Preprocess(source, file string) (string, error) {
	if err := checkNoBareWhile(source, file); err != nil {
		return "", err
	}

	out := rewriteImplements(source)
	out = rewriteMatch(out)
	out = rewriteValDecl(out)
	out = rewriteWordOperators(out)
	out = rewriteStructKeyword(out)
	out = rewriteWait(out)

	warnDeprecatedNumberIdent(out, file)

	return out, nil
}

func checkNoBareWhile(source, file string) error {
	ctx := scanContext(source)
	for i := 0; i < len(source); i++ {
		if ctx.codeAt(i) && matchWordAt(source, i, "while") {
			line, col := lineCol(source, i)
			pos := ast.Pos{Line: line, Column: col, File: file, Offset: i}
			span := &ast.Span{Start: pos, End: pos}
			return errors.WrapReport(errors.New(errors.PRE001, "preprocess",
				"bare `while` is not supported; use `loop(cond) { ... }`", span))
		}
	}
	return nil
}

func warnDeprecatedNumberIdent(source, file string) {
	ctx := scanContext(source)
	for i := 0; i < len(source); i++ {
		if ctx.codeAt(i) && matchWordAt(source, i, "number") {
			line, col := lineCol(source, i)
			diag.Warnf("%s:%d:%d: identifier `number` is deprecated; prefer an explicit width such as `int32`", file, line, col)
		}
	}
}
