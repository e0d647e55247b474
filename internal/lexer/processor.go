package lexer

import (
	"github.com/funvibe/seam/internal/pipeline"
	"github.com/funvibe/seam/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)

	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	ctx.TokenStream = tokens
	return ctx
}
