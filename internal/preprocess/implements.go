package preprocess

// rewriteImplements turns `implements X { function m(...) {...} ... }`
// into `class X { m(...) {...} ... }`: the `implements` keyword becomes
// `class`, and every `function ` that opens a method head inside the
// block is dropped. Brace depth (counted only over code-context bytes)
// tracks where the block ends.
func rewriteImplements(source string) string {
	ctx := scanContext(source)
	var b []byte
	i := 0
	for i < len(source) {
		if ctx.codeAt(i) && matchWordAt(source, i, "implements") {
			b = append(b, "class"...)
			i += len("implements")
			i = copyImplementsBlock(source, ctx, i, &b)
			continue
		}
		b = append(b, source[i])
		i++
	}
	return string(b)
}

// copyImplementsBlock copies source[i:] up through the matching close
// brace of the implements block into b, stripping leading `function `
// from method heads, and returns the offset just past the block.
func copyImplementsBlock(source string, ctx *context, i int, b *[]byte) int {
	depth := 0
	started := false
	for i < len(source) {
		if ctx.codeAt(i) {
			switch source[i] {
			case '{':
				depth++
				started = true
				*b = append(*b, source[i])
				i++
				continue
			case '}':
				depth--
				*b = append(*b, source[i])
				i++
				if started && depth == 0 {
					return i
				}
				continue
			}
			if started && matchWordAt(source, i, "function") {
				i += len("function")
				i = skipSpaces(source, i)
				continue
			}
		}
		*b = append(*b, source[i])
		i++
	}
	return i
}
