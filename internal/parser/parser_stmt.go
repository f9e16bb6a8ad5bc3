package parser

import (
	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/lexer"
)

// parseBlockStmt assumes the current token is '{' and consumes through the
// matching '}'.
func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	start := p.curPos()
	block := &ast.BlockStmt{Pos: start}
	p.nextToken()

	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		stmt := p.parseStmt()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		p.nextToken()
	}

	return block
}

// parseStmt parses a single statement. The caller is positioned on the
// statement's first token; on return the parser is positioned on the
// statement's last token (the caller advances past it).
func (p *Parser) parseStmt() ast.Stmt {
	switch p.curToken().Type {
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.TRY:
		return p.parseTryStmt()
	case lexer.THROW:
		return p.parseThrowStmt()
	case lexer.BREAK:
		s := &ast.BreakStmt{Pos: p.curPos()}
		if p.peekTokenIs(lexer.SEMICOLON) {
			p.nextToken()
		}
		return s
	case lexer.CONTINUE:
		s := &ast.ContinueStmt{Pos: p.curPos()}
		if p.peekTokenIs(lexer.SEMICOLON) {
			p.nextToken()
		}
		return s
	case lexer.VAR, lexer.LET, lexer.CONST:
		return p.parseVarDeclStmt()
	case lexer.LBRACE:
		return p.parseBlockStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	pos := p.curPos()
	expr := p.parseExpression(LOWEST)
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return &ast.ExprStmt{Expr: expr, Pos: pos}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	pos := p.curPos()
	stmt := &ast.ReturnStmt{Pos: pos}
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseIfStmt() ast.Stmt {
	pos := p.curPos()
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	test := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	p.nextToken()
	cons := p.parseStmt()

	stmt := &ast.IfStmt{Test: test, Cons: cons, Pos: pos}

	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken()
		p.nextToken()
		stmt.Alt = p.parseStmt()
	}

	return stmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	pos := p.curPos()
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	test := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	p.nextToken()
	body := p.parseStmt()
	return &ast.WhileStmt{Test: test, Body: body, Pos: pos}
}

// parseForStmt handles all three `for` shapes: C-style, for-in, for-of.
func (p *Parser) parseForStmt() ast.Stmt {
	pos := p.curPos()
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()

	if p.curTokenIs(lexer.VAR) || p.curTokenIs(lexer.LET) || p.curTokenIs(lexer.CONST) {
		mark := p.mark()
		p.nextToken()
		if !p.curTokenIs(lexer.IDENT) {
			p.reset(mark)
		} else {
			name := p.curToken().Literal
			var bindingType ast.Type
			if p.peekTokenIs(lexer.COLON) {
				p.nextToken()
				p.nextToken()
				bindingType = p.parseType()
			}
			if p.peekTokenIs(lexer.OF) {
				p.nextToken()
				p.nextToken()
				right := p.parseExpression(LOWEST)
				if !p.expectPeek(lexer.RPAREN) {
					return nil
				}
				p.nextToken()
				body := p.parseStmt()
				return &ast.ForOfStmt{Binding: name, BindingType: bindingType, Right: right, Body: body, Pos: pos}
			}
			if p.peekTokenIs(lexer.IN) {
				p.nextToken()
				p.nextToken()
				right := p.parseExpression(LOWEST)
				if !p.expectPeek(lexer.RPAREN) {
					return nil
				}
				p.nextToken()
				body := p.parseStmt()
				return &ast.ForInStmt{Binding: name, BindingType: bindingType, Right: right, Body: body, Pos: pos}
			}
			p.reset(mark)
		}
	}

	// C-style: for (init; test; update)
	var init ast.Stmt
	if !p.curTokenIs(lexer.SEMICOLON) {
		init = p.parseStmt() // consumes trailing ';' if present via parseVarDeclStmt/parseExprStmt
	}
	if !p.curTokenIs(lexer.SEMICOLON) {
		if !p.expectPeek(lexer.SEMICOLON) {
			return nil
		}
	}
	p.nextToken()

	var test ast.Expr
	if !p.curTokenIs(lexer.SEMICOLON) {
		test = p.parseExpression(LOWEST)
		if !p.expectPeek(lexer.SEMICOLON) {
			return nil
		}
	}
	p.nextToken()

	var update ast.Expr
	if !p.curTokenIs(lexer.RPAREN) {
		update = p.parseExpression(LOWEST)
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
	}
	p.nextToken()

	body := p.parseStmt()
	return &ast.ForStmt{Init: init, Test: test, Update: update, Body: body, Pos: pos}
}

func (p *Parser) parseTryStmt() ast.Stmt {
	pos := p.curPos()
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	stmt := &ast.TryStmt{Block: p.parseBlockStmt(), Pos: pos}

	if p.peekTokenIs(lexer.CATCH) {
		p.nextToken()
		if p.peekTokenIs(lexer.LPAREN) {
			p.nextToken()
			if !p.expectPeek(lexer.IDENT) {
				return stmt
			}
			stmt.CatchParam = p.curToken().Literal
			if !p.expectPeek(lexer.RPAREN) {
				return stmt
			}
		}
		if !p.expectPeek(lexer.LBRACE) {
			return stmt
		}
		stmt.CatchBody = p.parseBlockStmt()
	}

	if p.peekTokenIs(lexer.FINALLY) {
		p.nextToken()
		if !p.expectPeek(lexer.LBRACE) {
			return stmt
		}
		stmt.Finally = p.parseBlockStmt()
	}

	return stmt
}

func (p *Parser) parseThrowStmt() ast.Stmt {
	pos := p.curPos()
	p.nextToken()
	arg := p.parseExpression(LOWEST)
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return &ast.ThrowStmt{Arg: arg, Pos: pos}
}

func (p *Parser) parseVarDeclStmt() ast.Stmt {
	pos := p.curPos()
	kind := p.curToken().Literal
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	stmt := &ast.VarDeclStmt{Kind: kind, Name: p.curToken().Literal, Pos: pos}

	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		stmt.Type = p.parseType()
	}

	if p.peekTokenIs(lexer.ASSIGN) {
		p.nextToken()
		p.nextToken()
		stmt.Init = p.parseExpression(LOWEST)
	}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}
