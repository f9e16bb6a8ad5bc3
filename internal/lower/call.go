package lower

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/resolve"
	"github.com/trusty-lang/trustyc/internal/typelower"
)

// lowerCallExpr implements the `f(args)` branch of §4.4 "Call".
func lowerCallExpr(n *ast.CallExpr, sc *Scope, ctx *Context) string {
	if member, ok := n.Callee.(*ast.MemberExpr); ok && !member.Computed {
		return lowerMemberCall(member, n.Args, sc, ctx)
	}

	ident, ok := n.Callee.(*ast.Identifier)
	if !ok {
		return fmt.Sprintf("%s(%s)", LowerExpr(n.Callee, sc, ctx), strings.Join(lowerExprList(n.Args, sc, ctx), ", "))
	}

	if isCapitalized(ident.Name) && len(n.Args) == 1 {
		if obj, ok := n.Args[0].(*ast.ObjectLit); ok {
			return lowerStructConstructor(ident.Name, obj, sc, ctx)
		}
	}

	if typelower.IsBuiltinCast(ident.Name) && len(n.Args) == 1 {
		return lowerBuiltinCast(ident.Name, n.Args[0], sc, ctx)
	}

	if ident.Name == "log" && len(n.Args) == 2 {
		args := lowerExprList(n.Args, sc, ctx)
		return fmt.Sprintf("log_base(%s, %s)", args[0], args[1])
	}

	args := lowerExprList(n.Args, sc, ctx)
	return fmt.Sprintf("%s(%s)", ident.Name, strings.Join(args, ", "))
}

func isCapitalized(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}

// lowerStructConstructor lowers `F({ k1: v1, ... })` to `F { k1: v1, ... }`,
// the struct-constructor object-literal lifting rule (§4.4 "Call").
// Shorthand properties (`{ x }`) lower to `x: x`.
func lowerStructConstructor(typeName string, obj *ast.ObjectLit, sc *Scope, ctx *Context) string {
	fields := make([]string, len(obj.Props))
	for i, p := range obj.Props {
		fields[i] = fmt.Sprintf("%s: %s", p.Key, LowerExpr(p.Value, sc, ctx))
	}
	return fmt.Sprintf("%s { %s }", typeName, strings.Join(fields, ", "))
}

// lowerBuiltinCast implements the builtin-cast branch of §4.4 "Call":
// `string`, `boolean`, and every numeric width name.
func lowerBuiltinCast(castName string, arg ast.Expr, sc *Scope, ctx *Context) string {
	value := lowerCastOperand(arg, sc, ctx)
	argIsString := isStringTyped(arg, sc)

	switch castName {
	case "string":
		return fmt.Sprintf("(%s).to_string()", value)
	case "boolean":
		switch {
		case argIsString:
			return fmt.Sprintf("!(%s).is_empty()", value)
		case isBoolTyped(arg, sc):
			return value
		default:
			return fmt.Sprintf("(%s) != 0", value)
		}
	default:
		target := typelower.LowerCastTarget(castName)
		if argIsString {
			return fmt.Sprintf("(%s).parse::<%s>().unwrap_or_default()", value, target)
		}
		return fmt.Sprintf("(%s) as %s", value, target)
	}
}

// lowerCastOperand lowers a cast's argument, unwrapping a shared cell
// first when the argument is a cell-bound identifier (§4.4 "Call").
func lowerCastOperand(arg ast.Expr, sc *Scope, ctx *Context) string {
	if name, ok := identName(arg); ok {
		switch {
		case sc.IsSingleThreadCell(name):
			return name + ".borrow()"
		case sc.IsMultiThreadCell(name):
			return name + ".lock().unwrap()"
		}
	}
	return LowerExpr(arg, sc, ctx)
}

func isStringTyped(e ast.Expr, sc *Scope) bool {
	if _, ok := e.(*ast.StringLit); ok {
		return true
	}
	if _, ok := e.(*ast.TemplateLit); ok {
		return true
	}
	if name, ok := identName(e); ok {
		return sc.IsStringLike(name)
	}
	return false
}

func isBoolTyped(e ast.Expr, sc *Scope) bool {
	if _, ok := e.(*ast.BoolLit); ok {
		return true
	}
	if name, ok := identName(e); ok {
		t, ok := sc.Lookup(name)
		return ok && t == "bool"
	}
	return false
}

// lowerNewExpr implements §4.4 "`new X(...)`": only `new Map()`/`new Set()`
// get dedicated constructors; everything else routes through the same
// logic as a call on the bare constructor name.
func lowerNewExpr(n *ast.NewExpr, sc *Scope, ctx *Context) string {
	switch n.Callee {
	case "Map":
		return "HashMap::new()"
	case "Set":
		return "HashSet::new()"
	}

	if isCapitalized(n.Callee) && len(n.Args) == 1 {
		if obj, ok := n.Args[0].(*ast.ObjectLit); ok {
			return lowerStructConstructor(n.Callee, obj, sc, ctx)
		}
	}

	args := lowerExprList(n.Args, sc, ctx)
	return fmt.Sprintf("%s(%s)", n.Callee, strings.Join(args, ", "))
}

// lowerMemberCall implements the `obj.method(args)` branch of §4.4 "Call".
func lowerMemberCall(member *ast.MemberExpr, argExprs []ast.Expr, sc *Scope, ctx *Context) string {
	receiverName, isIdent := identName(member.Object)
	method := member.Property
	args := lowerExprList(argExprs, sc, ctx)
	joinedArgs := strings.Join(args, ", ")

	// Thread.run(fn)
	if isIdent && receiverName == "Thread" && method == "run" {
		return fmt.Sprintf("std::thread::spawn(%s)", joinedArgs)
	}
	// console.write(x)
	if isIdent && receiverName == "console" && method == "write" {
		return fmt.Sprintf(`println!("{}", %s)`, joinedArgs)
	}
	// Duration.millis(n) and friends
	if isIdent && receiverName == "Duration" && len(args) == 1 {
		if ctor, ok := resolve.DurationConstructor(method, args[0]); ok {
			return ctor
		}
	}

	objText := receiverObjectText(member, sc, ctx)

	// Map/Set methods, keyed first since `has`/`get`/`delete` would
	// otherwise fall through to the generic dispatch below.
	if lowered, ok := lowerMapSetMethod(objText, receiverName, isIdent, method, args, sc); ok {
		return lowered
	}
	// A receiver bound to a Vec takes the array table first, since the
	// string table below also claims `includes` and `indexOf`.
	if t, ok := sc.Lookup(receiverName); isIdent && ok && strings.HasPrefix(t, "Vec<") {
		if lowered, ok := lowerArrayMethod(objText, method, args); ok {
			return lowered
		}
	}
	// String methods.
	if lowered, ok := lowerStringMethod(objText, method, args); ok {
		return lowered
	}
	// Array methods.
	if lowered, ok := lowerArrayMethod(objText, method, args); ok {
		return lowered
	}
	// time stdlib instance methods (asMillis -> as_millis, ...).
	if rustMethod, ok := resolve.TimeInstanceMethod(method); ok && len(args) == 0 {
		return fmt.Sprintf("%s.%s()", objText, rustMethod)
	}

	// Fallback (§4.4): uppercase bare identifier or module alias -> `::`.
	if isIdent && (isCapitalized(receiverName) || sc.IsModuleAlias(receiverName)) {
		return fmt.Sprintf("%s::%s(%s)", objText, method, joinedArgs)
	}
	return fmt.Sprintf("%s.%s(%s)", objText, method, joinedArgs)
}

// receiverObjectText computes the receiver's lowered text, unwrapping a
// shared cell when the receiver is an identifier bound to one — method
// calls on a shared cell require an identifier receiver since the unwrap
// decision is a scope lookup by name (§9 "Shared-cell transparency").
func receiverObjectText(member *ast.MemberExpr, sc *Scope, ctx *Context) string {
	name, isIdent := identName(member.Object)
	if isIdent {
		switch {
		case sc.IsSingleThreadCell(name):
			return name + ".borrow()"
		case sc.IsMultiThreadCell(name):
			return name + ".lock().unwrap()"
		}
	}
	return LowerExpr(member.Object, sc, ctx)
}

func lowerMapSetMethod(obj, receiverName string, isIdent bool, method string, args []string, sc *Scope) (string, bool) {
	switch method {
	case "set":
		if len(args) == 2 {
			return fmt.Sprintf("%s.insert(%s, %s)", obj, args[0], args[1]), true
		}
	case "get":
		if len(args) == 1 {
			return fmt.Sprintf("%s.get(&%s)", obj, args[0]), true
		}
	case "has":
		if len(args) == 1 {
			if isIdent && sc.IsSet(receiverName) {
				return fmt.Sprintf("%s.contains(&%s)", obj, args[0]), true
			}
			return fmt.Sprintf("%s.contains_key(&%s)", obj, args[0]), true
		}
	case "delete":
		if len(args) == 1 {
			return fmt.Sprintf("%s.remove(&%s)", obj, args[0]), true
		}
	case "add":
		if len(args) == 1 {
			return fmt.Sprintf("%s.insert(%s)", obj, args[0]), true
		}
	}
	return "", false
}

func lowerStringMethod(obj, method string, args []string) (string, bool) {
	a := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}
	switch method {
	case "toUpperCase":
		return fmt.Sprintf("%s.to_uppercase()", obj), true
	case "toLowerCase":
		return fmt.Sprintf("%s.to_lowercase()", obj), true
	case "startsWith":
		return fmt.Sprintf("%s.starts_with((%s).as_str())", obj, a(0)), true
	case "endsWith":
		return fmt.Sprintf("%s.ends_with((%s).as_str())", obj, a(0)), true
	case "includes":
		return fmt.Sprintf("%s.contains((%s).as_str())", obj, a(0)), true
	case "trim":
		return fmt.Sprintf("%s.trim().to_string()", obj), true
	case "trimStart":
		return fmt.Sprintf("%s.trim_start().to_string()", obj), true
	case "trimEnd":
		return fmt.Sprintf("%s.trim_end().to_string()", obj), true
	case "repeat":
		return fmt.Sprintf("%s.repeat((%s).max(0) as usize)", obj, a(0)), true
	case "replace":
		return fmt.Sprintf("%s.replacen((%s).as_str(), (%s).as_str(), 1)", obj, a(0), a(1)), true
	case "replaceAll":
		return fmt.Sprintf("%s.replace((%s).as_str(), (%s).as_str())", obj, a(0), a(1)), true
	case "split":
		return fmt.Sprintf("%s.split((%s).as_str()).map(|s| s.to_string()).collect::<Vec<String>>()", obj, a(0)), true
	case "concat":
		return fmt.Sprintf("format!(\"{}{}\", %s, %s)", obj, a(0)), true
	case "charAt":
		return fmt.Sprintf("%s.chars().nth((%s) as usize).map(|c| c.to_string()).unwrap_or_default()", obj, a(0)), true
	case "at":
		return lowerCharAt(obj, a(0)), true
	case "slice":
		return lowerSlice(obj, args), true
	case "substring":
		return lowerSubstring(obj, args), true
	case "substr":
		return lowerSubstr(obj, args), true
	case "indexOf":
		return fmt.Sprintf("%s.find((%s).as_str()).map(|b| %s[..b].chars().count() as i32).unwrap_or(-1)", obj, a(0), obj), true
	case "lastIndexOf":
		return fmt.Sprintf("%s.rfind((%s).as_str()).map(|b| %s[..b].chars().count() as i32).unwrap_or(-1)", obj, a(0), obj), true
	}
	return "", false
}

// lowerSlice implements `.slice(start[, end])`: a negative argument is an
// offset from the end of the character sequence (JS Array/String.slice
// semantics), each bound then clamped into [0, len]. Grounded on the
// same char-collection block pattern as lowerCharAt.
func lowerSlice(obj string, args []string) string {
	start := args[0]
	end := "__trust_len"
	if len(args) == 2 {
		end = fmt.Sprintf("(%s) as i64", args[1])
	}
	return fmt.Sprintf(
		"{ let __trust_chars: Vec<char> = %s.chars().collect(); "+
			"let __trust_len: i64 = __trust_chars.len() as i64; "+
			"let __trust_norm = |__trust_v: i64| -> usize { (if __trust_v < 0 { __trust_len + __trust_v } else { __trust_v }).max(0).min(__trust_len) as usize }; "+
			"let __trust_start = __trust_norm((%s) as i64); "+
			"let __trust_end = __trust_norm(%s).max(__trust_start); "+
			"__trust_chars[__trust_start..__trust_end].iter().collect::<String>() }",
		obj, start, end)
}

// lowerSubstring implements `.substring(start[, end])`: negative arguments
// clamp to 0 (not offset from the end, unlike slice/substr), and if start
// ends up greater than end after clamping the two are swapped rather than
// producing an empty range.
func lowerSubstring(obj string, args []string) string {
	start := args[0]
	end := "__trust_len"
	if len(args) == 2 {
		end = fmt.Sprintf("(%s) as i64", args[1])
	}
	return fmt.Sprintf(
		"{ let __trust_chars: Vec<char> = %s.chars().collect(); "+
			"let __trust_len: i64 = __trust_chars.len() as i64; "+
			"let __trust_a = ((%s) as i64).max(0).min(__trust_len); "+
			"let __trust_b = (%s).max(0).min(__trust_len); "+
			"let __trust_start = __trust_a.min(__trust_b) as usize; "+
			"let __trust_end = __trust_a.max(__trust_b) as usize; "+
			"__trust_chars[__trust_start..__trust_end].iter().collect::<String>() }",
		obj, start, end)
}

// lowerSubstr implements `.substr(start[, length])`: start is an offset from
// the end when negative (like slice), then length (clamped to 0 when
// negative) is counted forward from the normalized start.
func lowerSubstr(obj string, args []string) string {
	start := args[0]
	if len(args) == 1 {
		return fmt.Sprintf(
			"{ let __trust_chars: Vec<char> = %s.chars().collect(); "+
				"let __trust_len: i64 = __trust_chars.len() as i64; "+
				"let __trust_v: i64 = (%s) as i64; "+
				"let __trust_start = (if __trust_v < 0 { __trust_len + __trust_v } else { __trust_v }).max(0).min(__trust_len) as usize; "+
				"__trust_chars[__trust_start..].iter().collect::<String>() }",
			obj, start)
	}
	length := args[1]
	return fmt.Sprintf(
		"{ let __trust_chars: Vec<char> = %s.chars().collect(); "+
			"let __trust_len: i64 = __trust_chars.len() as i64; "+
			"let __trust_v: i64 = (%s) as i64; "+
			"let __trust_start_i = (if __trust_v < 0 { __trust_len + __trust_v } else { __trust_v }).max(0).min(__trust_len); "+
			"let __trust_count = ((%s) as i64).max(0); "+
			"let __trust_end_i = (__trust_start_i + __trust_count).min(__trust_len); "+
			"let __trust_start = __trust_start_i as usize; "+
			"let __trust_end = __trust_end_i as usize; "+
			"__trust_chars[__trust_start..__trust_end].iter().collect::<String>() }",
		obj, start, length)
}

// lowerCharAt implements `.at(i)`, supporting a negative index counted
// from the end the way JS `Array.prototype.at`/`String.prototype.at` do.
func lowerCharAt(obj, indexArg string) string {
	return fmt.Sprintf(
		"{ let __trust_chars: Vec<char> = %s.chars().collect(); let __trust_idx: i64 = (%s) as i64; let __trust_i = if __trust_idx < 0 { (__trust_chars.len() as i64 + __trust_idx) as usize } else { __trust_idx as usize }; __trust_chars.get(__trust_i).map(|c| c.to_string()).unwrap_or_default() }",
		obj, indexArg)
}

func lowerArrayMethod(obj, method string, args []string) (string, bool) {
	joined := strings.Join(args, ", ")
	switch method {
	case "push":
		return fmt.Sprintf("%s.push(%s)", obj, joined), true
	case "pop":
		return fmt.Sprintf("%s.pop()", obj), true
	case "len":
		return fmt.Sprintf("%s.len()", obj), true
	case "map":
		return fmt.Sprintf("%s.iter().map(%s).collect::<Vec<_>>()", obj, joined), true
	case "filter":
		return fmt.Sprintf("%s.iter().filter(%s).cloned().collect::<Vec<_>>()", obj, joined), true
	case "forEach":
		return fmt.Sprintf("%s.iter().for_each(%s)", obj, joined), true
	case "includes":
		return fmt.Sprintf("%s.contains(&%s)", obj, joined), true
	case "join":
		return fmt.Sprintf("%s.join(&%s)", obj, joined), true
	case "reverse":
		return fmt.Sprintf("{ %s.reverse(); %s }", obj, obj), true
	case "indexOf":
		return fmt.Sprintf("%s.iter().position(|v| v == &%s).map(|i| i as i32).unwrap_or(-1)", obj, joined), true
	}
	return "", false
}
