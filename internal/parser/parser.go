// Package parser implements [SRCPARSE]: a Pratt parser over the token
// stream [SRCLEX] produces, covering exactly the surface spec.md's lowering
// tables reference. It is deliberately thin: it rejects anything it has no
// lowering rule for rather than trying to recover gracefully, matching the
// "no semantic validation" non-goal this front end stands in for.
package parser

import (
	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/lexer"
)

// Parser parses a preprocessed SRC file into an *ast.File. Tokens are
// buffered up front (rather than pulled lazily from the lexer) so that
// disambiguating `(` between a grouped expression, an arrow parameter
// list, and a block expression can save/restore a token index instead of
// rewinding the scanner itself.
type Parser struct {
	tokens []lexer.Token
	pos    int
	file   string
	errors []error

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Precedence levels, lowest to highest.
const (
	LOWEST int = iota
	ASSIGNMENT
	TERNARY
	LogicalOr
	LogicalAnd
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	EXPONENT
	PREFIX
	CALL
	DOTACCESS
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:   ASSIGNMENT,
	lexer.QUESTION: TERNARY,
	lexer.OR:       LogicalOr,
	lexer.AND:      LogicalAnd,
	lexer.EQ:       EQUALS,
	lexer.NEQ:      EQUALS,
	lexer.LT:       LESSGREATER,
	lexer.GT:       LESSGREATER,
	lexer.LTE:      LESSGREATER,
	lexer.GTE:      LESSGREATER,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.STAR:     PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.PERCENT:  PRODUCT,
	lexer.STARSTAR: EXPONENT,
	lexer.LPAREN:   CALL,
	lexer.DOT:      DOTACCESS,
	lexer.LBRACKET: DOTACCESS,
}

// New creates a new Parser over all tokens l produces.
func New(l *lexer.Lexer, file string) *Parser {
	p := &Parser{file: file, errors: []error{}}

	for {
		tok := l.NextToken()
		p.tokens = append(p.tokens, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:    p.parseIdentifier,
		lexer.NUMBER:   p.parseNumberLit,
		lexer.STRING:   p.parseStringLit,
		lexer.TEMPLATE: p.parseTemplateLit,
		lexer.TRUE:     p.parseBoolLit,
		lexer.FALSE:    p.parseBoolLit,
		lexer.THIS:     p.parseThisExpr,
		lexer.NOT:      p.parsePrefixExpr,
		lexer.MINUS:    p.parsePrefixExpr,
		lexer.LPAREN:   p.parseParenOrArrowOrBlockExpr,
		lexer.LBRACKET: p.parseArrayLit,
		lexer.LBRACE:   p.parseObjectLit,
		lexer.NEW:      p.parseNewExpr,
		lexer.AWAIT:    p.parseAwaitExpr,
		lexer.IF:       p.parseIfExpr,
		lexer.ASYNC:    p.parseArrowWithAsync,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:     p.parseInfixExpr,
		lexer.MINUS:    p.parseInfixExpr,
		lexer.STAR:     p.parseInfixExpr,
		lexer.SLASH:    p.parseInfixExpr,
		lexer.PERCENT:  p.parseInfixExpr,
		lexer.STARSTAR: p.parseInfixExpr,
		lexer.EQ:       p.parseInfixExpr,
		lexer.NEQ:      p.parseInfixExpr,
		lexer.LT:       p.parseInfixExpr,
		lexer.GT:       p.parseInfixExpr,
		lexer.LTE:      p.parseInfixExpr,
		lexer.GTE:      p.parseInfixExpr,
		lexer.AND:      p.parseInfixExpr,
		lexer.OR:       p.parseInfixExpr,
		lexer.LPAREN:   p.parseCallExpr,
		lexer.DOT:      p.parseMemberExpr,
		lexer.LBRACKET: p.parseIndexExpr,
		lexer.QUESTION: p.parseConditionalExpr,
		lexer.ASSIGN:   p.parseAssignExpr,
	}

	return p
}

func (p *Parser) curToken() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekToken() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *Parser) mark() int      { return p.pos }
func (p *Parser) reset(mark int) { p.pos = mark }

func (p *Parser) curPos() ast.Pos {
	t := p.curToken()
	return ast.Pos{Line: t.Line, Column: t.Column, File: p.file, Offset: t.Offset}
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool  { return p.curToken().Type == t }
func (p *Parser) peekTokenIs(t lexer.TokenType) bool { return p.peekToken().Type == t }

func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken().Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken().Type]; ok {
		return pr
	}
	return LOWEST
}

// Errors returns accumulated parse errors.
func (p *Parser) Errors() []error { return p.errors }

// ParseFile parses a complete compilation unit.
func (p *Parser) ParseFile() *ast.File {
	file := &ast.File{Pos: p.curPos()}

	for p.curTokenIs(lexer.IMPORT) {
		if imp := p.parseImportDecl(); imp != nil {
			file.Imports = append(file.Imports, imp)
		}
		p.nextToken()
	}

	for !p.curTokenIs(lexer.EOF) {
		if p.curTokenIs(lexer.EXPORT) {
			p.nextToken()
		}
		decl := p.parseDecl()
		if decl != nil {
			file.Decls = append(file.Decls, decl)
		}
		p.nextToken()
	}

	return file
}

func (p *Parser) parseDecl() ast.Decl {
	switch p.curToken().Type {
	case lexer.INTERFACE:
		return p.parseInterfaceDecl()
	case lexer.ENUM:
		return p.parseEnumDecl()
	case lexer.CLASS:
		return p.parseImplDecl()
	case lexer.ASYNC, lexer.FUNCTION:
		return p.parseFuncDecl()
	case lexer.CONST:
		return p.parseGlobalConstDecl()
	default:
		p.report(p.curPos(), "unsupported top-level declaration: "+p.curToken().Type.String())
		return nil
	}
}

func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix, ok := p.prefixParseFns[p.curToken().Type]
	if !ok {
		p.noPrefixParseFnError(p.curToken().Type)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken().Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}
