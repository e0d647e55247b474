package typesystem

import (
	"fmt"

	"github.com/funvibe/seam/internal/alpha"
	"github.com/funvibe/seam/internal/ast"
)

// Resolve follows variable references through the closure's environment and
// placeholders through the unification store until no rewrite applies.
// Variables bound to themselves are mu-protected and stop the chain. Resolve
// never errors and never mutates the store: malformed type_apply operands
// are left in place for the structural walk to reject.
func Resolve(clo Clo, unif *Unification) Clo {
	for {
		next, moved := resolveStep(clo, unif)
		if !moved {
			return clo
		}
		clo = next
	}
}

func resolveStep(clo Clo, unif *Unification) (Clo, bool) {
	switch t := clo.It.(type) {
	case ast.VariableReference:
		bound, ok := clo.Env.Get(t.Name)
		if !ok || t.Equal(bound) {
			return clo, false
		}
		return Clo{It: bound, Env: clo.Env}, true

	case *ast.Node:
		switch t.Form {
		case FormTypeApply:
			return resolveApply(t, clo, unif)
		case FormUnderdetermined:
			id, _ := UnderdeterminedID(t)
			stored, ok := unif.Lookup(id)
			if !ok {
				return clo, false
			}
			return stored, true
		}
	}
	return clo, false
}

// resolveApply expands a type application against a stored forall
// definition. Arguments are resolved up front, never left unresolved, so a
// later substitution cannot capture names out of them.
func resolveApply(t *ast.Node, clo Clo, unif *Unification) (Clo, bool) {
	rator, _ := t.Parts.Leaf(PartRator)
	args := t.Parts.Rep(PartArg)

	resolvedArgs := make([]ast.Term, len(args))
	for i, a := range args {
		resolvedArgs[i] = Resolve(Clo{It: a, Env: clo.Env}, unif).It
	}

	r := Resolve(Clo{It: rator, Env: clo.Env}, unif)

	if vr, ok := r.It.(ast.VariableReference); ok {
		// The operator is a protected variable, e.g. `X<Int>` underneath
		// `mu X. ...`. Rebuild the application around the resolved
		// arguments; stop once that no longer changes anything.
		rebuilt := Apply(vr, resolvedArgs...)
		if rebuilt.Equal(clo.It) {
			return clo, false
		}
		return Clo{It: rebuilt, Env: r.Env}, true
	}

	forallParts, ok := ast.Destructure(r.It, FormForall)
	if !ok {
		// Broken type_apply; let it fail in the structural walk.
		return clo, false
	}

	params := forallParts.Rep(PartParam)
	if len(params) != len(resolvedArgs) {
		panic(&InternalError{Msg: fmt.Sprintf(
			"type_apply arity: %d parameters vs %d arguments", len(params), len(resolvedArgs))})
	}

	subst := make(map[string]ast.Term, len(params))
	for i, p := range params {
		name, ok := ast.BinderName(p)
		if !ok {
			panic(&InternalError{Msg: fmt.Sprintf("forall binder is not a name: %s", p)})
		}
		subst[name] = resolvedArgs[i]
	}

	body, _ := forallParts.Leaf(PartBody)
	return Clo{It: alpha.Substitute(body, subst), Env: r.Env}, true
}
