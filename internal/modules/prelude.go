// Package modules assembles the environment a checked file starts from:
// the built-in prelude plus whatever the governing project file adds.
package modules

import (
	"fmt"
	"path/filepath"

	"github.com/funvibe/seam/internal/config"
	"github.com/funvibe/seam/internal/diagnostics"
	"github.com/funvibe/seam/internal/parser"
	"github.com/funvibe/seam/internal/typesystem"
)

// DefaultPrelude is what every file can rely on without a project file.
var DefaultPrelude = []config.PreludeEntry{
	{Name: "List", Type: "forall D . mu List . enum {Nil, Cons(D, List<D>)}"},
	{Name: "Option", Type: "forall T . enum {Zero, Some(T)}"},
	{Name: "Result", Type: "forall T E . enum {Ok(T), Fail(E)}"},
	{Name: "Pair", Type: "forall A B . (A, B)"},
}

// PreludeEnv builds the initial type environment: the default prelude
// first, then the project's entries, later entries shadowing earlier ones.
func PreludeEnv(project *config.Project) (typesystem.Env, []*diagnostics.Error) {
	entries := append([]config.PreludeEntry{}, DefaultPrelude...)
	if project != nil {
		entries = append(entries, project.Prelude...)
	}

	env := typesystem.NewEnv()
	var errs []*diagnostics.Error
	for _, entry := range entries {
		ty, perrs := parser.ParseTypeSource(entry.Type)
		if len(perrs) > 0 {
			for _, pe := range perrs {
				pe.File = fmt.Sprintf("prelude:%s", entry.Name)
			}
			errs = append(errs, perrs...)
			continue
		}
		env = env.Set(entry.Name, ty)
	}
	return env, errs
}

// LoadProjectFor locates and loads the project file governing path. A
// missing project file is not an error; the default prelude stands alone.
func LoadProjectFor(path string) (*config.Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	projectFile, ok := config.FindProjectFile(filepath.Dir(abs))
	if !ok {
		return nil, nil
	}
	return config.LoadProject(projectFile)
}
