package parser_test

import (
	"testing"

	"github.com/funvibe/seam/internal/lexer"
	"github.com/funvibe/seam/internal/parser"
	"github.com/funvibe/seam/internal/pipeline"
)

func parse(input string) *pipeline.PipelineContext {
	ctx := &pipeline.PipelineContext{SourceCode: input}
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	return (&parser.ParserProcessor{}).Process(ctx)
}

func TestParserErrors(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		wantCode string
	}{
		{"missing_name", "type = Int", "P001"},
		{"stray_token", "List", "P002"},
		{"missing_relation", "assert Int Int", "P003"},
		{"missing_type", "type A =", "P004"},
		{"forall_without_binders", "type A = forall . Int", "P005"},
		{"splice_without_drivers", "type A = (...[. Int])", "P006"},
		{"applied_base_type", "type A = Int<Nat>", "P007"},
		{"empty_application", "type A = List<>", "P008"},
		{"unclosed_tuple", "type A = (Int, Nat", "P001"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := parse(tc.input)
			if len(ctx.Errors) == 0 {
				t.Fatalf("parse(%q) produced no errors", tc.input)
			}
			if got := ctx.Errors[0].Code; got != tc.wantCode {
				t.Errorf("parse(%q) first error %s (%s), want %s",
					tc.input, got, ctx.Errors[0].Message, tc.wantCode)
			}
		})
	}
}

func TestParserRecoversBetweenDeclarations(t *testing.T) {
	ctx := parse("type A = \ntype B = Int\nassert B <: Int")
	if len(ctx.Errors) == 0 {
		t.Fatal("expected an error from the first declaration")
	}
	if got := len(ctx.AstRoot.Decls); got != 2 {
		t.Fatalf("recovered %d declarations, want 2", got)
	}
}
