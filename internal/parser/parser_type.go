package parser

import (
	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/lexer"
)

// parseType parses a type expression: a bare name (`int32`), a
// parameterized name (`Pointer<T>`, `Map<K, V>`), or an array suffix
// (`T[]`), per §4.3.
func (p *Parser) parseType() ast.Type {
	if !p.curTokenIs(lexer.IDENT) {
		p.report(p.curPos(), "expected a type name")
		return nil
	}

	start := p.curPos()
	name := p.curToken().Literal
	var t ast.Type = &ast.NamedType{Name: name, Pos: start}

	if p.peekTokenIs(lexer.LT) {
		p.nextToken() // consume name, cur = '<'
		p.nextToken() // move to first arg
		var args []ast.Type
		args = append(args, p.parseType())
		for p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			args = append(args, p.parseType())
		}
		if !p.expectPeek(lexer.GT) {
			return nil
		}
		t = &ast.NamedType{Name: name, Args: args, Pos: start}
	}

	for p.peekTokenIs(lexer.LBRACKET) {
		p.nextToken()
		if !p.expectPeek(lexer.RBRACKET) {
			return nil
		}
		t = &ast.ArrayType{Elem: t, Pos: start}
	}

	return t
}
