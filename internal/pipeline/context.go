package pipeline

import (
	"github.com/funvibe/seam/internal/ast"
	"github.com/funvibe/seam/internal/diagnostics"
	"github.com/funvibe/seam/internal/token"
	"github.com/funvibe/seam/internal/typesystem"
)

// Processor is one pipeline stage. Stages append to ctx.Errors instead of
// aborting so later stages can still contribute diagnostics.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries one source file through the stages.
type PipelineContext struct {
	FilePath   string
	SourceCode string

	TokenStream []token.Token
	AstRoot     *ast.Program

	// Env starts as the prelude and accumulates the file's type
	// declarations as the checker walks them.
	Env typesystem.Env

	Results []CheckResult
	Errors  []*diagnostics.Error
}

// CheckResult is the outcome of a single assertion.
type CheckResult struct {
	Decl *ast.AssertDecl
	// Bindings holds the forall instantiations discovered by a subtype
	// assertion, rendered name to type.
	Bindings map[string]string
	Err      error
}

func (r CheckResult) Passed() bool { return r.Err == nil }
