package parser

import (
	"github.com/funvibe/seam/internal/ast"
	"github.com/funvibe/seam/internal/diagnostics"
	"github.com/funvibe/seam/internal/lexer"
	"github.com/funvibe/seam/internal/pipeline"
	"github.com/funvibe/seam/internal/token"
)

// ParseTypeSource parses a standalone type expression, e.g. a prelude entry
// from the project file.
func ParseTypeSource(src string) (ast.Term, []*diagnostics.Error) {
	ctx := &pipeline.PipelineContext{SourceCode: src}
	ctx = (&lexer.LexerProcessor{}).Process(ctx)

	p := New(ctx.TokenStream, ctx)
	ty := p.parseType()
	if ty != nil && p.cur().Type != token.EOF {
		p.errorf("P009", p.cur(), "unexpected %q after type", p.cur().Lexeme)
	}
	if len(ctx.Errors) > 0 {
		return nil, ctx.Errors
	}
	return ty, nil
}
