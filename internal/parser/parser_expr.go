package parser

import (
	"strings"

	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/lexer"
)

func (p *Parser) parseIdentifier() ast.Expr {
	return &ast.Identifier{Name: p.curToken().Literal, Pos: p.curPos()}
}

func (p *Parser) parseThisExpr() ast.Expr {
	return &ast.ThisExpr{Pos: p.curPos()}
}

func (p *Parser) parseNumberLit() ast.Expr {
	return &ast.NumberLit{Raw: p.curToken().Literal, Pos: p.curPos()}
}

func (p *Parser) parseStringLit() ast.Expr {
	return &ast.StringLit{Raw: p.curToken().Literal, Pos: p.curPos()}
}

func (p *Parser) parseBoolLit() ast.Expr {
	return &ast.BoolLit{Value: p.curTokenIs(lexer.TRUE), Pos: p.curPos()}
}

// parseTemplateLit splits the raw template literal of the form
// "text${expr}text${expr}text" into quasis and sub-parsed expressions.
func (p *Parser) parseTemplateLit() ast.Expr {
	pos := p.curPos()
	raw := p.curToken().Literal

	var quasis []string
	var exprs []ast.Expr

	rest := raw
	for {
		idx := strings.Index(rest, "${")
		if idx == -1 {
			quasis = append(quasis, rest)
			break
		}
		quasis = append(quasis, rest[:idx])
		rest = rest[idx+2:]

		depth := 1
		end := -1
		for i, ch := range rest {
			switch ch {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					end = i
				}
			}
			if end != -1 {
				break
			}
		}
		if end == -1 {
			p.report(pos, "unterminated template interpolation")
			break
		}
		exprSrc := rest[:end]
		sub := New(lexer.New(exprSrc, p.file), p.file)
		exprs = append(exprs, sub.parseExpression(LOWEST))
		rest = rest[end+1:]
	}

	return &ast.TemplateLit{Quasis: quasis, Exprs: exprs, Pos: pos}
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	pos := p.curPos()
	op := p.curToken().Literal
	p.nextToken()
	return &ast.UnaryExpr{Op: op, Expr: p.parseExpression(PREFIX), Pos: pos}
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	pos := p.curPos()
	op := p.curToken().Literal
	precedence := p.curPrecedence()
	// `**` is right-associative.
	if op == "**" {
		p.nextToken()
		right := p.parseExpression(precedence - 1)
		return &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
}

func (p *Parser) parseConditionalExpr(test ast.Expr) ast.Expr {
	pos := p.curPos()
	p.nextToken()
	cons := p.parseExpression(TERNARY)
	if !p.expectPeek(lexer.COLON) {
		return nil
	}
	p.nextToken()
	alt := p.parseExpression(TERNARY)
	return &ast.ConditionalExpr{Test: test, Cons: cons, Alt: alt, Pos: pos}
}

func (p *Parser) parseAssignExpr(target ast.Expr) ast.Expr {
	pos := p.curPos()
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return &ast.AssignExpr{Target: target, Value: value, Pos: pos}
}

func (p *Parser) parseMemberExpr(obj ast.Expr) ast.Expr {
	pos := p.curPos()
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	return &ast.MemberExpr{Object: obj, Property: p.curToken().Literal, Pos: pos}
}

func (p *Parser) parseIndexExpr(obj ast.Expr) ast.Expr {
	pos := p.curPos()
	p.nextToken()
	idx := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return &ast.MemberExpr{Object: obj, Computed: true, Index: idx, Pos: pos}
}

func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	pos := p.curPos()
	args := p.parseExprList(lexer.RPAREN)
	return &ast.CallExpr{Callee: callee, Args: args, Pos: pos}
}

func (p *Parser) parseExprList(end lexer.TokenType) []ast.Expr {
	var list []ast.Expr
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseArrayLit() ast.Expr {
	pos := p.curPos()
	elems := p.parseExprList(lexer.RBRACKET)
	return &ast.ArrayLit{Elems: elems, Pos: pos}
}

func (p *Parser) parseObjectLit() ast.Expr {
	pos := p.curPos()
	obj := &ast.ObjectLit{Pos: pos}
	if p.peekTokenIs(lexer.RBRACE) {
		p.nextToken()
		return obj
	}
	p.nextToken()
	for {
		propPos := p.curPos()
		key := p.curToken().Literal
		if p.peekTokenIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			val := p.parseExpression(LOWEST)
			obj.Props = append(obj.Props, &ast.ObjectProp{Key: key, Value: val, Pos: propPos})
		} else {
			obj.Props = append(obj.Props, &ast.ObjectProp{
				Key: key, Value: &ast.Identifier{Name: key, Pos: propPos}, Shorthand: true, Pos: propPos,
			})
		}
		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return obj
}

// parseNewExpr handles `new Callee(args)`.
func (p *Parser) parseNewExpr() ast.Expr {
	pos := p.curPos()
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	callee := p.curToken().Literal
	var args []ast.Expr
	if p.peekTokenIs(lexer.LPAREN) {
		p.nextToken()
		args = p.parseExprList(lexer.RPAREN)
	}
	return &ast.NewExpr{Callee: callee, Args: args, Pos: pos}
}

func (p *Parser) parseAwaitExpr() ast.Expr {
	pos := p.curPos()
	p.nextToken()
	return &ast.AwaitExpr{Expr: p.parseExpression(PREFIX), Pos: pos}
}

// parseArrowWithAsync handles `async (params) => ...` used in expression
// position; async function declarations are handled by parseFuncDecl.
func (p *Parser) parseArrowWithAsync() ast.Expr {
	p.nextToken()
	return p.parseParenOrArrowOrBlockExpr()
}

// parseParenOrArrowOrBlockExpr disambiguates three shapes that all start
// with `(`:
//   - `(expr)` — a grouped expression
//   - `(a, b) => ...` or `() => ...` — an arrow function
//   - `({ stmts...; tail })` — a block expression, the shape the
//     preprocessor's match-rewrite produces (§4.1 rule 2).
func (p *Parser) parseParenOrArrowOrBlockExpr() ast.Expr {
	pos := p.curPos()

	if p.peekTokenIs(lexer.LBRACE) {
		p.nextToken() // consume '('
		block := p.parseBlockAsExpr()
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
		return block
	}

	if p.peekTokenIs(lexer.RPAREN) {
		// `()` — only valid as an arrow function with no params.
		p.nextToken()
		if !p.expectPeek(lexer.ARROW) {
			return nil
		}
		return p.finishArrow(nil, pos)
	}

	// Try to parse as a parameter list followed by `=>`; fall back to a
	// grouped expression if what follows isn't an arrow.
	save := p.mark()
	if params, ok := p.tryParseArrowParams(); ok {
		return p.finishArrow(params, pos)
	}
	p.reset(save)

	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) tryParseArrowParams() ([]string, bool) {
	var params []string
	p.nextToken()
	for !p.curTokenIs(lexer.RPAREN) {
		if !p.curTokenIs(lexer.IDENT) {
			return nil, false
		}
		params = append(params, p.curToken().Literal)
		p.nextToken()
		if p.curTokenIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			for p.curTokenIs(lexer.LT) {
				depth := 1
				p.nextToken()
				for depth > 0 && !p.curTokenIs(lexer.EOF) {
					if p.curTokenIs(lexer.LT) {
						depth++
					} else if p.curTokenIs(lexer.GT) {
						depth--
					}
					p.nextToken()
				}
			}
		}
		if p.curTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
	}
	if !p.curTokenIs(lexer.RPAREN) {
		return nil, false
	}
	if !p.peekTokenIs(lexer.ARROW) {
		return nil, false
	}
	p.nextToken() // now at ARROW
	return params, true
}

func (p *Parser) finishArrow(params []string, pos ast.Pos) ast.Expr {
	p.nextToken() // move past '=>'
	if p.curTokenIs(lexer.LBRACE) {
		body := p.parseBlockStmt()
		return &ast.ArrowExpr{Params: params, BlockBody: body, Pos: pos}
	}
	body := p.parseExpression(LOWEST)
	return &ast.ArrowExpr{Params: params, ExprBody: body, Pos: pos}
}

// parseBlockAsExpr parses `{ stmt*; tail? }` where the last statement, if
// it is `if`, is treated as the block's tail IfExpr. The caller positions
// the parser on the opening '{' before calling this.
func (p *Parser) parseBlockAsExpr() ast.Expr {
	pos := p.curPos()
	block := &ast.BlockExpr{Pos: pos}
	p.nextToken()

	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		if p.curTokenIs(lexer.IF) {
			block.Tail = p.parseIfExpr()
			p.nextToken()
			break
		}
		stmt := p.parseStmt()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		p.nextToken()
	}

	return block
}

// parseIfExpr parses the if/else-if/else chain the match-rewrite emits,
// where each branch body is `{ tailExpr }` (no semicolon).
func (p *Parser) parseIfExpr() ast.Expr {
	pos := p.curPos()
	p.nextToken()
	test := p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	p.nextToken()
	then := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}

	ifExpr := &ast.IfExpr{Test: test, Then: then, Pos: pos}

	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken()
		if p.peekTokenIs(lexer.IF) {
			p.nextToken()
			ifExpr.Else = p.parseIfExpr()
		} else {
			if !p.expectPeek(lexer.LBRACE) {
				return ifExpr
			}
			p.nextToken()
			ifExpr.Else = p.parseExpression(LOWEST)
			if !p.expectPeek(lexer.RBRACE) {
				return ifExpr
			}
		}
	}

	return ifExpr
}
