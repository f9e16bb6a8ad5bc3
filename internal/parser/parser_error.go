package parser

import (
	"fmt"

	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/errors"
	"github.com/trusty-lang/trustyc/internal/lexer"
)

// ParseError is a structured parser error, reportable as an errors.Report.
type ParseError struct {
	Code    string
	Message string
	Pos     ast.Pos
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Code, e.Pos, e.Message)
}

// ToReport converts a ParseError into the shared structured error shape.
func (e *ParseError) ToReport() *errors.Report {
	span := &ast.Span{Start: e.Pos, End: e.Pos}
	return errors.New(e.Code, "parse", e.Message, span)
}

func (p *Parser) report(pos ast.Pos, message string) {
	p.errors = append(p.errors, &ParseError{Code: errors.SYN001, Message: message, Pos: pos})
}

func (p *Parser) peekError(t lexer.TokenType) {
	msg := fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken().Type)
	p.errors = append(p.errors, &ParseError{Code: errors.SYN002, Message: msg, Pos: p.curPos()})
}

func (p *Parser) noPrefixParseFnError(t lexer.TokenType) {
	msg := fmt.Sprintf("unexpected token in expression: %s", t)
	p.errors = append(p.errors, &ParseError{Code: errors.SYN001, Message: msg, Pos: p.curPos()})
}
