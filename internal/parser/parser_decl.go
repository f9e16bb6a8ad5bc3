package parser

import (
	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/lexer"
)

// parseImportDecl parses `import Default, { a, b } from "path";` or any
// subset of that shape (default only, named only, or both).
func (p *Parser) parseImportDecl() *ast.ImportDecl {
	start := p.curPos()
	p.nextToken() // consume 'import'

	imp := &ast.ImportDecl{Pos: start}

	if p.curTokenIs(lexer.IDENT) {
		imp.DefaultAlias = p.curToken().Literal
		p.nextToken()
		if p.curTokenIs(lexer.COMMA) {
			p.nextToken()
		}
	}

	if p.curTokenIs(lexer.LBRACE) {
		p.nextToken()
		for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
			if p.curTokenIs(lexer.IDENT) {
				imp.Named = append(imp.Named, p.curToken().Literal)
			}
			p.nextToken()
			if p.curTokenIs(lexer.COMMA) {
				p.nextToken()
			}
		}
		p.nextToken() // consume '}'
	}

	if !p.curTokenIs(lexer.FROM) {
		p.report(p.curPos(), "expected 'from' in import declaration")
		return nil
	}
	p.nextToken() // consume 'from'

	if !p.curTokenIs(lexer.STRING) {
		p.report(p.curPos(), "expected module path string after 'from'")
		return nil
	}
	imp.Source = p.curToken().Literal

	end := p.curPos()
	imp.Span = ast.Span{Start: start, End: end}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return imp
}

// parseInterfaceDecl parses `interface Name { field: Type; ... }`, the
// preprocessed form of a `struct` declaration (§4.1 rule 5).
func (p *Parser) parseInterfaceDecl() ast.Decl {
	start := p.curPos()
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	decl := &ast.InterfaceDecl{Name: p.curToken().Literal, Pos: start}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	p.nextToken()

	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		fieldPos := p.curPos()
		if !p.curTokenIs(lexer.IDENT) {
			p.nextToken()
			continue
		}
		name := p.curToken().Literal
		if !p.expectPeek(lexer.COLON) {
			return decl
		}
		p.nextToken()
		fieldType := p.parseType()
		decl.Fields = append(decl.Fields, &ast.FieldDecl{Name: name, Type: fieldType, Pos: fieldPos})

		if p.peekTokenIs(lexer.SEMICOLON) || p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
		}
		p.nextToken()
	}

	return decl
}

// parseEnumDecl parses `enum Name { A, B = 2, C = "c" }`.
func (p *Parser) parseEnumDecl() ast.Decl {
	start := p.curPos()
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	decl := &ast.EnumDecl{Name: p.curToken().Literal, Pos: start}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	p.nextToken()

	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		if !p.curTokenIs(lexer.IDENT) {
			p.nextToken()
			continue
		}
		variantPos := p.curPos()
		variant := &ast.EnumVariant{Name: p.curToken().Literal, Pos: variantPos}

		if p.peekTokenIs(lexer.ASSIGN) {
			p.nextToken()
			p.nextToken()
			switch p.curToken().Type {
			case lexer.NUMBER:
				variant.Discriminant = &ast.NumberLit{Raw: p.curToken().Literal, Pos: p.curPos()}
			case lexer.STRING:
				variant.Discriminant = &ast.StringLit{Raw: p.curToken().Literal, Pos: p.curPos()}
			}
		}

		decl.Variants = append(decl.Variants, variant)

		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
		}
		p.nextToken()
	}

	return decl
}

// parseImplDecl parses `class Name { method(params): Type { ... } ... }`,
// the preprocessed form of an `implements` block (§4.1 rule 1).
func (p *Parser) parseImplDecl() ast.Decl {
	start := p.curPos()
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	decl := &ast.ImplDecl{TypeName: p.curToken().Literal, Pos: start}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	p.nextToken()

	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		method := p.parseMethodDecl()
		if method != nil {
			decl.Methods = append(decl.Methods, method)
		}
		p.nextToken()
	}

	return decl
}

func (p *Parser) parseMethodDecl() *ast.MethodDecl {
	start := p.curPos()
	m := &ast.MethodDecl{Pos: start}

	for {
		switch p.curToken().Type {
		case lexer.ASYNC:
			m.Async = true
			p.nextToken()
			continue
		case lexer.IDENT:
			if p.curToken().Literal == "static" {
				m.Static = true
				p.nextToken()
				continue
			}
		}
		break
	}

	if !p.curTokenIs(lexer.IDENT) {
		p.report(p.curPos(), "expected method name")
		return nil
	}
	m.Name = p.curToken().Literal

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	m.Params = p.parseParams()

	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		m.ReturnType = p.parseType()
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	m.Body = p.parseBlockStmt()

	return m
}

// parseFuncDecl parses a top-level (possibly async) function declaration.
func (p *Parser) parseFuncDecl() ast.Decl {
	start := p.curPos()
	fn := &ast.FuncDecl{Pos: start}

	if p.curTokenIs(lexer.ASYNC) {
		fn.Async = true
		p.nextToken()
	}

	if !p.curTokenIs(lexer.FUNCTION) {
		p.report(p.curPos(), "expected 'function'")
		return nil
	}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	fn.Name = p.curToken().Literal

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	fn.Params = p.parseParams()

	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		fn.ReturnType = p.parseType()
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlockStmt()

	return fn
}

// parseParams assumes the current token is '(' and consumes through ')'.
func (p *Parser) parseParams() []*ast.Param {
	var params []*ast.Param
	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	for {
		paramPos := p.curPos()
		if !p.curTokenIs(lexer.IDENT) {
			break
		}
		param := &ast.Param{Name: p.curToken().Literal, Pos: paramPos}
		if p.peekTokenIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			param.Type = p.parseType()
		}
		params = append(params, param)

		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(lexer.RPAREN)
	return params
}

// parseGlobalConstDecl parses `const NAME[: Type] = expr;` at file scope.
func (p *Parser) parseGlobalConstDecl() ast.Decl {
	start := p.curPos()
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	decl := &ast.GlobalConstDecl{Name: p.curToken().Literal, Pos: start}

	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		decl.Type = p.parseType()
	}

	if !p.expectPeek(lexer.ASSIGN) {
		return decl
	}
	p.nextToken()
	decl.Value = p.parseExpression(LOWEST)

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return decl
}
