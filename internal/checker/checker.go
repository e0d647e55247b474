// Package checker runs a parsed file against the type-relation engine.
// Declarations are processed in order: each type declaration extends the
// environment the following declarations see, and each assertion is checked
// in a fresh unification session.
package checker

import (
	"fmt"

	"github.com/funvibe/seam/internal/ast"
	"github.com/funvibe/seam/internal/diagnostics"
	"github.com/funvibe/seam/internal/pipeline"
	"github.com/funvibe/seam/internal/prettyprinter"
	"github.com/funvibe/seam/internal/typesystem"
)

type CheckerProcessor struct{}

func (cp *CheckerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		ctx.Errors = append(ctx.Errors, &diagnostics.Error{
			Code:    "T000",
			Message: "checker: no program to check",
			File:    ctx.FilePath,
		})
		return ctx
	}

	env := ctx.Env
	for _, decl := range ctx.AstRoot.Decls {
		switch d := decl.(type) {
		case *ast.TypeDecl:
			// A redeclaration shadows, same as the environment it builds on.
			env = env.Set(d.Name, d.Type)

		case *ast.AssertDecl:
			res := check(d, env)
			ctx.Results = append(ctx.Results, res)
			if res.Err != nil {
				ctx.Errors = append(ctx.Errors, &diagnostics.Error{
					Code:    "T001",
					Message: fmt.Sprintf("assertion failed: %s: %v", prettyprinter.Decl(d), res.Err),
					File:    ctx.FilePath,
					Line:    d.Line,
					Column:  d.Column,
				})
			}
		}
	}
	ctx.Env = env
	return ctx
}

// check runs one assertion. Engine-internal panics surface as the result's
// error instead of taking the process down.
func check(d *ast.AssertDecl, env typesystem.Env) (res pipeline.CheckResult) {
	res.Decl = d
	defer func() {
		if r := recover(); r != nil {
			if internal, ok := r.(*typesystem.InternalError); ok {
				res.Err = internal
				return
			}
			panic(r)
		}
	}()

	switch d.Rel {
	case ast.RelEqual:
		res.Err = typesystem.MustEqual(d.Left, d.Right, env)
	default:
		bindings, err := typesystem.MustSubtype(d.Left, d.Right, env)
		res.Err = err
		if err == nil && !bindings.Empty() {
			res.Bindings = make(map[string]string, bindings.Len())
			bindings.Iterate(func(name string, t ast.Term) bool {
				res.Bindings[name] = prettyprinter.Type(t)
				return true
			})
		}
	}
	return res
}
