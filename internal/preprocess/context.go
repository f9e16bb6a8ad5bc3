package preprocess

// context marks, for every byte offset in a source string, whether that
// byte is ordinary code (true) or lives inside a string/template literal
// or a comment (false). Every rewrite pass in this package builds one of
// these before scanning so braces, parens, and keywords found inside a
// quote or a comment are never mistaken for structure.
type context struct {
	isCode []bool
}

func scanContext(source string) *context {
	c := &context{isCode: make([]bool, len(source))}
	i := 0
	for i < len(source) {
		switch {
		case source[i] == '/' && i+1 < len(source) && source[i+1] == '/':
			start := i
			for i < len(source) && source[i] != '\n' {
				i++
			}
			markNonCode(c.isCode, start, i)
		case source[i] == '/' && i+1 < len(source) && source[i+1] == '*':
			start := i
			i += 2
			for i+1 < len(source) && !(source[i] == '*' && source[i+1] == '/') {
				i++
			}
			i += 2
			if i > len(source) {
				i = len(source)
			}
			markNonCode(c.isCode, start, i)
		case source[i] == '"' || source[i] == '\'' || source[i] == '`':
			quote := source[i]
			start := i
			i++
			for i < len(source) && source[i] != quote {
				if source[i] == '\\' && i+1 < len(source) {
					i += 2
					continue
				}
				i++
			}
			if i < len(source) {
				i++ // consume closing quote
			}
			markNonCode(c.isCode, start, i)
		default:
			c.isCode[i] = true
			i++
		}
	}
	return c
}

func markNonCode(isCode []bool, start, end int) {
	for i := start; i < end && i < len(isCode); i++ {
		isCode[i] = false
	}
}

func (c *context) codeAt(i int) bool {
	if i < 0 || i >= len(c.isCode) {
		return false
	}
	return c.isCode[i]
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// matchWordAt reports whether source[i:] starts with word as a whole
// identifier token: the byte before i, if any, and the byte right after
// the word are not identifier bytes.
func matchWordAt(source string, i int, word string) bool {
	if i+len(word) > len(source) || source[i:i+len(word)] != word {
		return false
	}
	if i > 0 && isIdentByte(source[i-1]) {
		return false
	}
	if end := i + len(word); end < len(source) && isIdentByte(source[end]) {
		return false
	}
	return true
}

func skipSpaces(source string, pos int) int {
	for pos < len(source) {
		switch source[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// findBalanced scans source starting at openPos (which must hold openCh)
// for the matching closeCh, counting depth only over code-context bytes.
// It returns the bounds of the content between the delimiters and the
// offset right after the closing delimiter.
func findBalanced(source string, ctx *context, openPos int, openCh, closeCh byte) (start, end, after int, ok bool) {
	depth := 0
	i := openPos
	for i < len(source) {
		if ctx.codeAt(i) {
			switch source[i] {
			case openCh:
				depth++
			case closeCh:
				depth--
				if depth == 0 {
					return openPos + 1, i, i + 1, true
				}
			}
		}
		i++
	}
	return 0, 0, 0, false
}

// splitTopLevel splits s on sep, ignoring occurrences inside nested
// brackets or inside strings/comments.
func splitTopLevel(s string, sep byte) []string {
	ctx := scanContext(s)
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		if !ctx.codeAt(i) {
			continue
		}
		switch s[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		default:
			if s[i] == sep && depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// findTopLevelArrow returns the index of the first top-level "=>" in s,
// or -1.
func findTopLevelArrow(s string) int {
	ctx := scanContext(s)
	depth := 0
	for i := 0; i < len(s)-1; i++ {
		if !ctx.codeAt(i) {
			continue
		}
		switch s[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		}
		if depth == 0 && s[i] == '=' && s[i+1] == '>' {
			return i
		}
	}
	return -1
}

func lineCol(source string, offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
