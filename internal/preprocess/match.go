package preprocess

import (
	"fmt"
	"strings"
)

// rewriteMatch turns every `match (E) { P1 => R1, ..., default => Rd }`
// into `({ let __mN = E; if __mN == (P1) { R1 } else if ... else { Rd } })`
// per §4.1 rule 2. Each match gets a fresh __mN so nested matches never
// collide; nesting inside an arm's result is handled by recursing on
// that result text before splicing it into the if-chain.
func rewriteMatch(source string) string {
	counter := 0
	return rewriteMatchRec(source, &counter)
}

func rewriteMatchRec(source string, counter *int) string {
	ctx := scanContext(source)
	var b []byte
	i := 0
	for i < len(source) {
		if ctx.codeAt(i) && matchWordAt(source, i, "match") {
			if rendered, after, ok := tryRewriteMatchAt(source, ctx, i, counter); ok {
				b = append(b, rendered...)
				i = after
				continue
			}
		}
		b = append(b, source[i])
		i++
	}
	return string(b)
}

func tryRewriteMatchAt(source string, ctx *context, i int, counter *int) (string, int, bool) {
	j := skipSpaces(source, i+len("match"))
	if j >= len(source) || source[j] != '(' {
		return "", 0, false
	}
	exprStart, exprEnd, afterExpr, ok := findBalanced(source, ctx, j, '(', ')')
	if !ok {
		return "", 0, false
	}
	k := skipSpaces(source, afterExpr)
	if k >= len(source) || source[k] != '{' {
		return "", 0, false
	}
	bodyStart, bodyEnd, afterBody, ok := findBalanced(source, ctx, k, '{', '}')
	if !ok {
		return "", 0, false
	}
	expr := source[exprStart:exprEnd]
	body := source[bodyStart:bodyEnd]
	return renderMatch(expr, body, counter), afterBody, true
}

func renderMatch(expr, body string, counter *int) string {
	n := *counter
	*counter++
	varName := fmt.Sprintf("__m%d", n)

	type arm struct {
		pattern   string
		result    string
		isDefault bool
	}

	var arms []arm
	for _, raw := range splitTopLevel(body, ',') {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		idx := findTopLevelArrow(raw)
		if idx == -1 {
			continue
		}
		pattern := strings.TrimSpace(raw[:idx])
		result := strings.TrimSpace(raw[idx+2:])
		arms = append(arms, arm{
			pattern:   pattern,
			result:    rewriteMatchRec(result, counter),
			isDefault: pattern == "default",
		})
	}

	var chain strings.Builder
	defaultResult := `panic!("non-exhaustive match")`
	hasDefault := false
	branch := 0
	for _, a := range arms {
		if a.isDefault {
			defaultResult = a.result
			hasDefault = true
			continue
		}
		keyword := "if"
		if branch > 0 {
			keyword = " else if"
		}
		chain.WriteString(fmt.Sprintf("%s %s { %s }", keyword, matchCondition(a.pattern, varName), a.result))
		branch++
	}
	if branch == 0 {
		// No non-default arms: the whole match is just the default (or panic).
		chain.WriteString("if false {}")
	}
	_ = hasDefault
	chain.WriteString(fmt.Sprintf(" else { %s }", defaultResult))

	return fmt.Sprintf("({ let %s = %s; %s })", varName, strings.TrimSpace(expr), chain.String())
}

func matchCondition(pattern, varName string) string {
	trimmed := strings.TrimSpace(pattern)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		return fmt.Sprintf("%s.contains(&%s)", trimmed, varName)
	}
	return fmt.Sprintf("%s == (%s)", varName, trimmed)
}
