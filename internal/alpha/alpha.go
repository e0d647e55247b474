// Package alpha provides fresh-name generation and capture-avoiding
// substitution over terms. Binder structure comes from each form's BindSpec
// declarations.
package alpha

import (
	"strings"

	"github.com/google/uuid"

	"github.com/funvibe/seam/internal/ast"
)

// Gensym returns a globally fresh name. The hint survives as a prefix so
// generated names stay readable in diagnostics.
func Gensym(hint string) string {
	return hint + "$" + uuid.NewString()[:8]
}

// Hint recovers the human-readable part of a generated name.
func Hint(name string) string {
	if i := strings.LastIndex(name, "$"); i >= 0 {
		return name[:i]
	}
	return name
}

// FreeVariables collects the names referenced by t that no enclosing binder
// of t introduces.
func FreeVariables(t ast.Term) map[string]bool {
	free := make(map[string]bool)
	collectFree(t, free)
	return free
}

func collectFree(t ast.Term, free map[string]bool) {
	switch t := t.(type) {
	case ast.VariableReference:
		free[t.Name] = true
	case ast.Atom:
		// labels, not references
	case *ast.Node:
		binderReps := make(map[string]bool)
		for _, spec := range t.Form.Binds {
			binderReps[spec.Names] = true
		}
		for name, leaf := range t.Parts.Leaves {
			bound := t.BoundNames(name)
			if len(bound) == 0 {
				collectFree(leaf, free)
				continue
			}
			inner := FreeVariables(leaf)
			for _, b := range bound {
				delete(inner, b)
			}
			for n := range inner {
				free[n] = true
			}
		}
		for name, elems := range t.Parts.Reps {
			if binderReps[name] {
				continue
			}
			for _, e := range elems {
				collectFree(e, free)
			}
		}
	}
}

// Substitute replaces free variable references per subst, renaming binders
// that would capture a free variable of a replacement term.
func Substitute(t ast.Term, subst map[string]ast.Term) ast.Term {
	if len(subst) == 0 {
		return t
	}
	switch t := t.(type) {
	case ast.VariableReference:
		if r, ok := subst[t.Name]; ok {
			return r
		}
		return t
	case ast.Atom:
		return t
	case *ast.Node:
		return substituteNode(t, subst)
	}
	return t
}

func substituteNode(n *ast.Node, subst map[string]ast.Term) ast.Term {
	// Names free in the replacement terms; binders colliding with these
	// must be renamed before the substitution goes under them.
	replacementFree := make(map[string]bool)
	for _, r := range subst {
		for name := range FreeVariables(r) {
			replacementFree[name] = true
		}
	}

	rename := make(map[string]string)
	boundAll := make(map[string]bool)
	for _, spec := range n.Form.Binds {
		for _, b := range n.Parts.Rep(spec.Names) {
			name, ok := ast.BinderName(b)
			if !ok {
				continue
			}
			boundAll[name] = true
			if replacementFree[name] {
				if _, done := rename[name]; !done {
					rename[name] = Gensym(name)
				}
			}
		}
	}

	binderReps := make(map[string]bool)
	scopedLeaves := make(map[string]bool)
	for _, spec := range n.Form.Binds {
		binderReps[spec.Names] = true
		scopedLeaves[spec.In] = true
	}

	// Substitution visible under the binders: bound names are shadowed,
	// renamed binders become references to their fresh names.
	inner := make(map[string]ast.Term)
	for name, r := range subst {
		if !boundAll[name] {
			inner[name] = r
		}
	}
	for old, fresh := range rename {
		inner[old] = ast.VariableReference{Name: fresh}
	}

	parts := ast.Parts{}
	if len(n.Parts.Leaves) > 0 {
		parts.Leaves = make(map[string]ast.Term, len(n.Parts.Leaves))
		for name, leaf := range n.Parts.Leaves {
			if scopedLeaves[name] {
				parts.Leaves[name] = Substitute(leaf, inner)
			} else {
				parts.Leaves[name] = Substitute(leaf, subst)
			}
		}
	}
	if len(n.Parts.Reps) > 0 {
		parts.Reps = make(map[string][]ast.Term, len(n.Parts.Reps))
		for name, elems := range n.Parts.Reps {
			out := make([]ast.Term, len(elems))
			for i, e := range elems {
				switch {
				case binderReps[name]:
					out[i] = renameBinder(e, rename)
				default:
					out[i] = Substitute(e, subst)
				}
			}
			parts.Reps[name] = out
		}
	}
	return &ast.Node{Form: n.Form, Parts: parts}
}

func renameBinder(b ast.Term, rename map[string]string) ast.Term {
	name, ok := ast.BinderName(b)
	if !ok {
		return b
	}
	fresh, renamed := rename[name]
	if !renamed {
		return b
	}
	switch b.(type) {
	case ast.Atom:
		return ast.Atom{Name: fresh}
	default:
		return ast.VariableReference{Name: fresh}
	}
}
