package parser

import (
	"github.com/funvibe/seam/internal/ast"
	"github.com/funvibe/seam/internal/diagnostics"
	"github.com/funvibe/seam/internal/pipeline"
	"github.com/funvibe/seam/internal/token"
	"github.com/funvibe/seam/internal/typesystem"
)

type Parser struct {
	tokens []token.Token
	pos    int
	ctx    *pipeline.PipelineContext
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	return &Parser{tokens: tokens, ctx: ctx}
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(t token.TokenType) (token.Token, bool) {
	tok := p.cur()
	if tok.Type != t {
		p.errorf("P001", tok, "expected %q, got %q", string(t), tok.Lexeme)
		return tok, false
	}
	p.advance()
	return tok, true
}

func (p *Parser) errorf(code string, tok token.Token, format string, args ...interface{}) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, tok, format, args...))
}

// ParseProgram parses the whole token stream into declarations. On a
// malformed declaration it records the error and skips forward to the next
// `type` or `assert` keyword.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for p.cur().Type != token.EOF {
		before := len(p.ctx.Errors)
		decl := p.parseDecl()
		if decl != nil && len(p.ctx.Errors) == before {
			program.Decls = append(program.Decls, decl)
			continue
		}
		p.synchronize()
	}
	return program
}

func (p *Parser) parseDecl() ast.Decl {
	tok := p.cur()
	switch tok.Type {
	case token.TYPE:
		return p.parseTypeDecl()
	case token.ASSERT:
		return p.parseAssertDecl()
	default:
		p.errorf("P002", tok, "expected a declaration, got %q", tok.Lexeme)
		return nil
	}
}

func (p *Parser) synchronize() {
	for {
		switch p.cur().Type {
		case token.EOF, token.TYPE, token.ASSERT:
			return
		}
		p.advance()
	}
}

// type Name = <type>
func (p *Parser) parseTypeDecl() ast.Decl {
	kw := p.advance()
	name, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.ASSIGN); !ok {
		return nil
	}
	ty := p.parseType()
	if ty == nil {
		return nil
	}
	return &ast.TypeDecl{Name: name.Lexeme, Type: ty, Line: kw.Line, Column: kw.Column}
}

// assert <type> <: <type>
// assert <type> == <type>
func (p *Parser) parseAssertDecl() ast.Decl {
	kw := p.advance()
	left := p.parseType()
	if left == nil {
		return nil
	}

	var rel ast.Relation
	switch p.cur().Type {
	case token.SUBTYPE:
		rel = ast.RelSubtype
	case token.EQ:
		rel = ast.RelEqual
	default:
		p.errorf("P003", p.cur(), "expected %q or %q after assertion subject, got %q",
			"<:", "==", p.cur().Lexeme)
		return nil
	}
	p.advance()

	right := p.parseType()
	if right == nil {
		return nil
	}
	return &ast.AssertDecl{Rel: rel, Left: left, Right: right, Line: kw.Line, Column: kw.Column}
}

func (p *Parser) parseType() ast.Term {
	tok := p.cur()
	switch tok.Type {
	case token.FN:
		return p.parseFnType()
	case token.FORALL:
		return p.parseBinderType(typesystem.Forall)
	case token.MU:
		return p.parseBinderType(typesystem.Mu)
	case token.STRUCT:
		return p.parseStructType()
	case token.ENUM:
		return p.parseEnumType()
	case token.LPAREN:
		return p.parseTupleType()
	case token.ELLIPSIS:
		return p.parseSpliceType()
	case token.IDENT:
		return p.parseNamedType()
	default:
		p.errorf("P004", tok, "expected a type, got %q", tok.Lexeme)
		return nil
	}
}

// fn(A, B) -> R
func (p *Parser) parseFnType() ast.Term {
	p.advance()
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	params, ok := p.parseTypeList(token.RPAREN)
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.ARROW); !ok {
		return nil
	}
	ret := p.parseType()
	if ret == nil {
		return nil
	}
	return typesystem.Fn(params, ret)
}

// forall T U . <type>  /  mu X . <type>
func (p *Parser) parseBinderType(build func([]string, ast.Term) ast.Term) ast.Term {
	p.advance()
	var params []string
	for p.cur().Type == token.IDENT {
		params = append(params, p.advance().Lexeme)
	}
	if len(params) == 0 {
		p.errorf("P005", p.cur(), "expected at least one binder, got %q", p.cur().Lexeme)
		return nil
	}
	if _, ok := p.expect(token.DOT); !ok {
		return nil
	}
	body := p.parseType()
	if body == nil {
		return nil
	}
	return build(params, body)
}

// struct {a: Int, b: Nat}
func (p *Parser) parseStructType() ast.Term {
	p.advance()
	if _, ok := p.expect(token.LBRACE); !ok {
		return nil
	}
	var names []string
	var components []ast.Term
	for p.cur().Type != token.RBRACE {
		name, ok := p.expect(token.IDENT)
		if !ok {
			return nil
		}
		if _, ok := p.expect(token.COLON); !ok {
			return nil
		}
		ty := p.parseType()
		if ty == nil {
			return nil
		}
		names = append(names, name.Lexeme)
		components = append(components, ty)
		if p.cur().Type != token.COMMA {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RBRACE); !ok {
		return nil
	}
	return typesystem.Struct(names, components)
}

// enum {Nil, Cons(A, List<A>)}
func (p *Parser) parseEnumType() ast.Term {
	p.advance()
	if _, ok := p.expect(token.LBRACE); !ok {
		return nil
	}
	var names []string
	var components [][]ast.Term
	for p.cur().Type != token.RBRACE {
		name, ok := p.expect(token.IDENT)
		if !ok {
			return nil
		}
		var comps []ast.Term
		if p.cur().Type == token.LPAREN {
			p.advance()
			comps, ok = p.parseTypeList(token.RPAREN)
			if !ok {
				return nil
			}
		}
		names = append(names, name.Lexeme)
		components = append(components, comps)
		if p.cur().Type != token.COMMA {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RBRACE); !ok {
		return nil
	}
	return typesystem.Enum(names, components)
}

// (A, B, C) is always a tuple, including () and the 1-tuple (A).
func (p *Parser) parseTupleType() ast.Term {
	p.advance()
	components, ok := p.parseTypeList(token.RPAREN)
	if !ok {
		return nil
	}
	return typesystem.Tuple(components...)
}

// ...[T U . <type>]
func (p *Parser) parseSpliceType() ast.Term {
	p.advance()
	if _, ok := p.expect(token.LBRACKET); !ok {
		return nil
	}
	var drivers []string
	for p.cur().Type == token.IDENT {
		drivers = append(drivers, p.advance().Lexeme)
	}
	if len(drivers) == 0 {
		p.errorf("P006", p.cur(), "expected at least one splice driver, got %q", p.cur().Lexeme)
		return nil
	}
	if _, ok := p.expect(token.DOT); !ok {
		return nil
	}
	body := p.parseType()
	if body == nil {
		return nil
	}
	if _, ok := p.expect(token.RBRACKET); !ok {
		return nil
	}
	return typesystem.DotDotDot(drivers, body)
}

// Int, List, List<Int>
func (p *Parser) parseNamedType() ast.Term {
	name := p.advance()

	if p.cur().Type != token.LT {
		if typesystem.IsBaseName(name.Lexeme) {
			return typesystem.Base(name.Lexeme)
		}
		return typesystem.Var(name.Lexeme)
	}

	if typesystem.IsBaseName(name.Lexeme) {
		p.errorf("P007", name, "base type %q takes no type arguments", name.Lexeme)
		return nil
	}
	p.advance()
	args, ok := p.parseTypeList(token.GT)
	if !ok {
		return nil
	}
	if len(args) == 0 {
		p.errorf("P008", name, "type application of %q needs at least one argument", name.Lexeme)
		return nil
	}
	return typesystem.Apply(typesystem.Var(name.Lexeme), args...)
}

// parseTypeList parses a comma-separated list up to (and past) end.
func (p *Parser) parseTypeList(end token.TokenType) ([]ast.Term, bool) {
	var list []ast.Term
	for p.cur().Type != end {
		ty := p.parseType()
		if ty == nil {
			return nil, false
		}
		list = append(list, ty)
		if p.cur().Type != token.COMMA {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(end); !ok {
		return nil, false
	}
	return list, true
}
