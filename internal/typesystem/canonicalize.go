package typesystem

import (
	"github.com/funvibe/seam/internal/ast"
)

// Canonicalize produces the normal form of a type for equality comparison
// and display: all variable references and placeholders are pushed as far
// as they go. Mu-protected variables are returned unchanged. It introduces
// no new placeholders and never mutates the unification store; the only
// failure is a genuinely unbound placeholder.
func Canonicalize(t ast.Term, env Env, unif *Unification) (ast.Term, error) {
	switch t := t.(type) {
	case ast.VariableReference:
		bound, ok := env.Get(t.Name)
		if !ok {
			return t, nil
		}
		if t.Equal(bound) {
			return t, nil // protected
		}
		return Canonicalize(bound, env, unif)

	case ast.Atom:
		return t, nil

	case *ast.Node:
		switch t.Form {
		case FormUnderdetermined:
			id, _ := UnderdeterminedID(t)
			clo, ok := unif.Lookup(id)
			if !ok {
				return nil, &UnboundNameError{Name: id}
			}
			return Canonicalize(clo.It, clo.Env, unif)

		case FormTypeApply:
			resolved := Resolve(Clo{It: t, Env: env}, unif)
			if !resolved.It.Equal(t) {
				return Canonicalize(resolved.It, resolved.Env, unif)
			}
			return canonicalizeNode(t, env, unif)
		}

		if pair, ok := typeCompare[t.Form]; ok && pair.Positive != nil {
			return pair.Positive(t, env, unif)
		}
		return canonicalizeNode(t, env, unif)
	}
	return t, nil
}

// canonicalizeNode rebuilds a node, canonicalizing each sub-term. Binder
// names are folded into the environment as protected self-references so the
// body keeps referring to them by name. Binder lists and labels are left
// alone: atoms are not walked.
func canonicalizeNode(n *ast.Node, env Env, unif *Unification) (ast.Term, error) {
	binderReps := make(map[string]bool)
	for _, spec := range n.Form.Binds {
		binderReps[spec.Names] = true
	}

	parts := ast.Parts{}
	if len(n.Parts.Leaves) > 0 {
		parts.Leaves = make(map[string]ast.Term, len(n.Parts.Leaves))
		for name, leaf := range n.Parts.Leaves {
			scoped := env
			for _, b := range n.BoundNames(name) {
				scoped = scoped.Set(b, ast.VariableReference{Name: b})
			}
			canon, err := Canonicalize(leaf, scoped, unif)
			if err != nil {
				return nil, err
			}
			parts.Leaves[name] = canon
		}
	}
	if len(n.Parts.Reps) > 0 {
		parts.Reps = make(map[string][]ast.Term, len(n.Parts.Reps))
		for name, elems := range n.Parts.Reps {
			out := make([]ast.Term, len(elems))
			for i, e := range elems {
				if binderReps[name] {
					out[i] = e
					continue
				}
				canon, err := Canonicalize(e, env, unif)
				if err != nil {
					return nil, err
				}
				out[i] = canon
			}
			parts.Reps[name] = out
		}
	}
	return &ast.Node{Form: n.Form, Parts: parts}, nil
}

// MustEqual checks that two types canonicalize to the same normal form
// under one environment. Meant for top-level, single-environment checks.
func MustEqual(lhs, rhs ast.Term, env Env) error {
	unif := NewUnification()
	cl, err := Canonicalize(lhs, env, unif)
	if err != nil {
		return err
	}
	cr, err := Canonicalize(rhs, env, unif)
	if err != nil {
		return err
	}
	if !cl.Equal(cr) {
		return &MismatchError{Got: lhs, Expected: rhs}
	}
	return nil
}
