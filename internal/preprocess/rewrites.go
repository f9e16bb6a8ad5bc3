package preprocess

import "strings"

// rewriteValDecl turns `val NAME` into `let NAME` wherever `val` begins a
// statement: right after a `{`, `;`, `}`, or at the very start of the
// source (ignoring whitespace and comments in between), per §4.1 rule 3.
func rewriteValDecl(source string) string {
	ctx := scanContext(source)
	var b []byte
	i := 0
	for i < len(source) {
		if ctx.codeAt(i) && matchWordAt(source, i, "val") && statementStartsAt(source, ctx, i) {
			b = append(b, "let"...)
			i += len("val")
			continue
		}
		b = append(b, source[i])
		i++
	}
	return string(b)
}

// statementStartsAt reports whether position i is preceded only by
// whitespace and non-code bytes (comments, string literals) back to a
// `{`, `;`, `}`, or the start of the source.
func statementStartsAt(source string, ctx *context, i int) bool {
	j := i - 1
	for j >= 0 {
		if !ctx.codeAt(j) {
			j--
			continue
		}
		switch source[j] {
		case ' ', '\t', '\r', '\n':
			j--
			continue
		case '{', ';', '}':
			return true
		default:
			return false
		}
	}
	return true
}

// rewriteWordOperators rewrites the whole-word identifiers `and`/`or` to
// `&&`/`||`, and `loop` followed by `(` to `while`, per §4.1 rule 4.
func rewriteWordOperators(source string) string {
	ctx := scanContext(source)
	var b []byte
	i := 0
	for i < len(source) {
		if ctx.codeAt(i) {
			switch {
			case matchWordAt(source, i, "and"):
				b = append(b, "&&"...)
				i += len("and")
				continue
			case matchWordAt(source, i, "or"):
				b = append(b, "||"...)
				i += len("or")
				continue
			case matchWordAt(source, i, "loop"):
				j := skipSpaces(source, i+len("loop"))
				if j < len(source) && source[j] == '(' {
					b = append(b, "while"...)
					i += len("loop")
					continue
				}
			}
		}
		b = append(b, source[i])
		i++
	}
	return string(b)
}

// rewriteStructKeyword rewrites the substring `struct ` to `interface `,
// per §4.1 rule 5. Earlier rewrites never introduce the literal sequence
// `struct ` elsewhere, so a context-aware substring scan is sufficient.
func rewriteStructKeyword(source string) string {
	const from = "struct "
	const to = "interface "
	ctx := scanContext(source)
	var b []byte
	i := 0
	for i < len(source) {
		if ctx.codeAt(i) && i+len(from) <= len(source) && source[i:i+len(from)] == from {
			b = append(b, to...)
			i += len(from)
			continue
		}
		b = append(b, source[i])
		i++
	}
	return string(b)
}

// rewriteWait rewrites `wait EXPR;` at the start of a line to
// `(EXPR).join().unwrap();`, per §4.1 rule 6.
func rewriteWait(source string) string {
	ctx := scanContext(source)
	var b []byte
	i := 0
	for i < len(source) {
		if ctx.codeAt(i) && matchWordAt(source, i, "wait") && lineStartsAt(source, i) {
			j := skipSpaces(source, i+len("wait"))
			if j < len(source) && j > i+len("wait") {
				exprStart := j
				end := findStatementSemicolon(source, ctx, exprStart)
				if end != -1 {
					expr := strings.TrimSpace(source[exprStart:end])
					b = append(b, "("...)
					b = append(b, expr...)
					b = append(b, ").join().unwrap();"...)
					i = end + 1
					continue
				}
			}
		}
		b = append(b, source[i])
		i++
	}
	return string(b)
}

// lineStartsAt reports whether position i is preceded only by whitespace
// back to a newline or the start of the source.
func lineStartsAt(source string, i int) bool {
	j := i - 1
	for j >= 0 {
		switch source[j] {
		case ' ', '\t', '\r':
			j--
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// findStatementSemicolon finds the first top-level (depth-0, code-context)
// ';' at or after pos.
func findStatementSemicolon(source string, ctx *context, pos int) int {
	depth := 0
	for i := pos; i < len(source); i++ {
		if !ctx.codeAt(i) {
			continue
		}
		switch source[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case ';':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
