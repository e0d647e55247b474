package typesystem

import (
	"sort"

	"github.com/funvibe/seam/internal/alpha"
	"github.com/funvibe/seam/internal/ast"
)

// IsSubtype checks that the context type sub may stand in for the expected
// type sup under env. Placeholder determinations made along the way are
// recorded in unif — mutating the shared unification session is part of the
// contract, not an accident — and the returned environment carries the
// name→type bindings discovered during the walk (e.g. instantiations of
// forall parameters).
//
// Determinations are applied in visit order and stay visible to every later
// comparison in the same session. When a type admits several valid
// derivations that would determine a placeholder differently, the first
// valid determination wins; there is no backtracking.
func IsSubtype(sub, sup ast.Term, env Env, unif *Unification) (Env, error) {
	w := &walker{unif: unif}
	return w.subtype(Clo{It: sup, Env: env}, Clo{It: sub, Env: env})
}

// MustSubtype runs a whole subtype check in a fresh unification session and
// returns the discovered bindings with their determinations resolved.
// For tests and top-level, single-environment checks.
func MustSubtype(sub, sup ast.Term, env Env) (Env, error) {
	unif := NewUnification()
	bindings, err := IsSubtype(sub, sup, env, unif)
	if err != nil {
		return NewEnv(), err
	}
	resolved := NewEnv()
	bindings.Iterate(func(name string, t ast.Term) bool {
		if canon, cerr := Canonicalize(t, env, unif); cerr == nil {
			resolved = resolved.Set(name, canon)
		} else {
			// Still partly underdetermined; report the shallow resolution.
			resolved = resolved.Set(name, Resolve(Clo{It: t, Env: env}, unif).It)
		}
		return true
	})
	return resolved, nil
}

type walker struct {
	unif *Unification
}

// subtype walks the expected side, with sub as the context element.
func (w *walker) subtype(sup, sub Clo) (Env, error) {
	switch supT := sup.It.(type) {
	case ast.VariableReference:
		lhs, ok := sup.Env.Get(supT.Name)
		if !ok {
			return NewEnv(), &UnboundNameError{Name: supT.Name}
		}
		if supT.Equal(lhs) {
			// mu-protected: the context has to reference the same name.
			if lhs.Equal(sub.It) {
				return NewEnv(), nil
			}
			return NewEnv(), &MismatchError{Got: sub.It, Expected: lhs}
		}
		return w.subtype(Clo{It: lhs, Env: sup.Env}, sub)

	case ast.Atom:
		if supT.Equal(sub.It) {
			return NewEnv(), nil
		}
		return NewEnv(), &MismatchError{Got: sub.It, Expected: supT}
	}

	rsup, rsub, done := w.preMatch(sup, sub)
	if done {
		return NewEnv(), nil
	}

	// Resolution can surface a protected variable; re-enter the walk so it
	// gets the by-name treatment above.
	if _, isVR := rsup.It.(ast.VariableReference); isVR {
		return w.subtype(rsup, rsub)
	}

	if rsup.It.Equal(rsub.It) {
		return NewEnv(), nil
	}

	supNode, ok := rsup.It.(*ast.Node)
	if !ok {
		return NewEnv(), &MismatchError{Got: rsub.It, Expected: rsup.It}
	}

	switch supNode.Form {
	case FormForall:
		return w.forallRule(supNode, rsup.Env, rsub)
	case FormFn:
		return w.fnRule(supNode, rsup.Env, rsub)
	case FormTuple:
		return w.tupleRule(supNode, rsup.Env, rsub)
	case FormStruct:
		return w.structRule(supNode, rsup.Env, rsub)
	case FormEnum:
		return w.enumRule(supNode, rsup.Env, rsub)
	case FormMu:
		return w.muRule(supNode, rsup.Env, rsub)
	}
	if pair, ok := typeCompare[supNode.Form]; ok && pair.Negative != nil {
		return pair.Negative(rsup, rsub, w.unif)
	}
	return w.literal(supNode, rsup.Env, rsub)
}

// preMatch resolves both sides against the store, short-circuits
// definitionally equal placeholders, and records one-sided determinations.
// The resolve-then-compare-ids-then-bind order is what lets chains of
// placeholders merge without cycles: an id is only ever bound to an
// already-resolved closure, never to another raw placeholder reference.
func (w *walker) preMatch(sup, sub Clo) (rsup, rsub Clo, done bool) {
	rsup = Resolve(sup, w.unif)
	rsub = Resolve(sub, w.unif)

	supID, supOK := UnderdeterminedID(rsup.It)
	subID, subOK := UnderdeterminedID(rsub.It)
	switch {
	case supOK && subOK && supID == subID:
		return Clo{}, Clo{}, true
	case supOK:
		w.unif.determine(supID, rsub)
		return Clo{}, Clo{}, true
	case subOK:
		w.unif.determine(subID, rsup)
		return Clo{}, Clo{}, true
	}
	return rsup, rsub, false
}

// forallRule instantiates each parameter at a fresh placeholder and walks
// the body. A universally quantified context is stripped in the same
// breath, its parameters routed to the same placeholders.
func (w *walker) forallRule(supNode *ast.Node, supEnv Env, sub Clo) (Env, error) {
	params := supNode.Parts.Rep(PartParam)
	body, _ := supNode.Parts.Leaf(PartBody)

	bindings := NewEnv()
	scope := supEnv
	fresh := make([]ast.Term, len(params))
	for i, p := range params {
		name, ok := ast.BinderName(p)
		if !ok {
			return NewEnv(), &UnableToDestructureError{Term: p, Want: "binder"}
		}
		f := FreshUnderdetermined(name)
		fresh[i] = f
		scope = scope.Set(name, f)
		bindings = bindings.Set(name, f)
	}

	if subParts, ok := ast.Destructure(sub.It, FormForall); ok {
		subParams := subParts.Rep(PartParam)
		if len(subParams) != len(params) {
			return NewEnv(), &MismatchError{Got: sub.It, Expected: supNode}
		}
		subst := make(map[string]ast.Term, len(subParams))
		for i, p := range subParams {
			name, ok := ast.BinderName(p)
			if !ok {
				return NewEnv(), &UnableToDestructureError{Term: p, Want: "binder"}
			}
			subst[name] = fresh[i]
		}
		subBody, _ := subParts.Leaf(PartBody)
		sub = Clo{It: alpha.Substitute(subBody, subst), Env: sub.Env}
	}

	res, err := w.subtype(Clo{It: body, Env: scope}, sub)
	if err != nil {
		return NewEnv(), err
	}
	return bindings.SetAll(res), nil
}

// fnRule compares function types: parameters contravariantly (the context
// parameter becomes the expected side), the result covariantly.
func (w *walker) fnRule(supNode *ast.Node, supEnv Env, sub Clo) (Env, error) {
	subNode, ok := sub.It.(*ast.Node)
	if !ok || subNode.Form != FormFn {
		return NewEnv(), &MismatchError{Got: sub.It, Expected: supNode}
	}
	supParams := supNode.Parts.Rep(PartParam)
	subParams := subNode.Parts.Rep(PartParam)
	if len(supParams) != len(subParams) {
		return NewEnv(), &MismatchError{Got: sub.It, Expected: supNode}
	}

	acc := NewEnv()
	supScope, subScope := supEnv, sub.Env
	for i := range supParams {
		res, err := w.subtype(
			Clo{It: subParams[i], Env: subScope},
			Clo{It: supParams[i], Env: supScope},
		)
		if err != nil {
			return NewEnv(), err
		}
		acc = acc.SetAll(res)
		supScope = supScope.SetAll(res)
		subScope = subScope.SetAll(res)
	}

	supRet, _ := supNode.Parts.Leaf(PartRet)
	subRet, _ := subNode.Parts.Leaf(PartRet)
	res, err := w.subtype(Clo{It: supRet, Env: supScope}, Clo{It: subRet, Env: subScope})
	if err != nil {
		return NewEnv(), err
	}
	return acc.SetAll(res), nil
}

func (w *walker) tupleRule(supNode *ast.Node, supEnv Env, sub Clo) (Env, error) {
	subNode, ok := sub.It.(*ast.Node)
	if !ok || subNode.Form != FormTuple {
		return NewEnv(), &MismatchError{Got: sub.It, Expected: supNode}
	}
	supComps := supNode.Parts.Rep(PartComponent)
	subComps := subNode.Parts.Rep(PartComponent)

	switch splices := dddIndices(supComps); len(splices) {
	case 0:
		// plain positional comparison below
	case 1:
		res, spliced, err := w.splice(supComps, splices[0], supEnv, subComps, sub.Env)
		if err != nil {
			return NewEnv(), err
		}
		if spliced {
			return res, nil
		}
		// false alarm: a single repetition, not a splice boundary
	default:
		return NewEnv(), &InternalError{Msg: "multiple splices in one tuple pattern"}
	}

	if len(subComps) != len(supComps) {
		return NewEnv(), &LengthMismatchError{Components: subComps, ExpectedLen: len(supComps)}
	}
	acc := NewEnv()
	scope := supEnv
	for i := range supComps {
		res, err := w.subtype(Clo{It: supComps[i], Env: scope}, Clo{It: subComps[i], Env: sub.Env})
		if err != nil {
			return NewEnv(), err
		}
		acc = acc.SetAll(res)
		scope = scope.SetAll(res)
	}
	return acc, nil
}

// structRule subtypes structs by width and name: every expected component
// must be present in the context under the same name; extra context
// components are fine and order is not significant.
func (w *walker) structRule(supNode *ast.Node, supEnv Env, sub Clo) (Env, error) {
	subNode, ok := sub.It.(*ast.Node)
	if !ok || subNode.Form != FormStruct {
		return NewEnv(), &MismatchError{Got: sub.It, Expected: supNode}
	}
	supNames := supNode.Parts.Rep(PartComponentName)
	supComps := supNode.Parts.Rep(PartComponent)
	subNames := subNode.Parts.Rep(PartComponentName)
	subComps := subNode.Parts.Rep(PartComponent)
	if len(supNames) != len(supComps) || len(subNames) != len(subComps) {
		return NewEnv(), &InternalError{Msg: "struct name/component repetition skew"}
	}

	byName := make(map[string]ast.Term, len(subNames))
	for i, nm := range subNames {
		name, _ := ast.BinderName(nm)
		byName[name] = subComps[i]
	}

	acc := NewEnv()
	scope := supEnv
	for i, nm := range supNames {
		name, _ := ast.BinderName(nm)
		subComp, ok := byName[name]
		if !ok {
			return NewEnv(), &MismatchError{Got: sub.It, Expected: supNode}
		}
		res, err := w.subtype(Clo{It: supComps[i], Env: scope}, Clo{It: subComp, Env: sub.Env})
		if err != nil {
			return NewEnv(), err
		}
		acc = acc.SetAll(res)
		scope = scope.SetAll(res)
	}
	return acc, nil
}

// enumRule matches arms by name, order-insensitively; the arm sets must
// coincide and each arm's component tuples are compared pairwise.
func (w *walker) enumRule(supNode *ast.Node, supEnv Env, sub Clo) (Env, error) {
	subNode, ok := sub.It.(*ast.Node)
	if !ok || subNode.Form != FormEnum {
		return NewEnv(), &MismatchError{Got: sub.It, Expected: supNode}
	}
	supNames := supNode.Parts.Rep(PartName)
	supComps := supNode.Parts.Rep(PartComponent)
	subNames := subNode.Parts.Rep(PartName)
	subComps := subNode.Parts.Rep(PartComponent)
	if len(supNames) != len(supComps) || len(subNames) != len(subComps) {
		return NewEnv(), &InternalError{Msg: "enum name/component repetition skew"}
	}
	if len(supNames) != len(subNames) {
		return NewEnv(), &MismatchError{Got: sub.It, Expected: supNode}
	}

	byName := make(map[string]ast.Term, len(subNames))
	for i, nm := range subNames {
		name, _ := ast.BinderName(nm)
		byName[name] = subComps[i]
	}

	acc := NewEnv()
	scope := supEnv
	for i, nm := range supNames {
		name, _ := ast.BinderName(nm)
		subArm, ok := byName[name]
		if !ok {
			return NewEnv(), &MismatchError{Got: sub.It, Expected: supNode}
		}
		res, err := w.subtype(Clo{It: supComps[i], Env: scope}, Clo{It: subArm, Env: sub.Env})
		if err != nil {
			return NewEnv(), err
		}
		acc = acc.SetAll(res)
		scope = scope.SetAll(res)
	}
	return acc, nil
}

// muRule implements the Amber rule: the expected recursion binder is routed
// to the context binder's name, which is protected, so structurally equal
// bodies with differently named binders compare equal. Recursion
// short-circuits by name equality instead of expansion.
func (w *walker) muRule(supNode *ast.Node, supEnv Env, sub Clo) (Env, error) {
	subNode, ok := sub.It.(*ast.Node)
	if !ok || subNode.Form != FormMu {
		return NewEnv(), &MismatchError{Got: sub.It, Expected: supNode}
	}
	supParams := supNode.Parts.Rep(PartParam)
	subParams := subNode.Parts.Rep(PartParam)
	if len(supParams) != len(subParams) {
		return NewEnv(), &MismatchError{Got: sub.It, Expected: supNode}
	}

	supScope, subScope := supEnv, sub.Env
	for i := range supParams {
		supName, ok1 := ast.BinderName(supParams[i])
		subName, ok2 := ast.BinderName(subParams[i])
		if !ok1 || !ok2 {
			return NewEnv(), &UnableToDestructureError{Term: supParams[i], Want: "binder"}
		}
		prot := ast.VariableReference{Name: subName}
		supScope = supScope.Set(supName, prot)
		supScope = supScope.Set(subName, prot)
		subScope = subScope.Set(subName, prot)
	}

	supBody, _ := supNode.Parts.Leaf(PartBody)
	subBody, _ := subNode.Parts.Leaf(PartBody)
	return w.subtype(Clo{It: supBody, Env: supScope}, Clo{It: subBody, Env: subScope})
}

// literal walks a node quasi-literally: same constructor, leaves compared
// in place, repetitions pairwise. This covers type_apply (with a protected
// operator), base types, splice-against-splice, and extension forms without
// a registered negative rule.
func (w *walker) literal(supNode *ast.Node, supEnv Env, sub Clo) (Env, error) {
	subNode, ok := sub.It.(*ast.Node)
	if !ok || subNode.Form != supNode.Form {
		return NewEnv(), &MismatchError{Got: sub.It, Expected: supNode}
	}

	acc := NewEnv()
	scope := supEnv

	var leafNames []string
	for name := range supNode.Parts.Leaves {
		leafNames = append(leafNames, name)
	}
	sort.Strings(leafNames)
	for _, name := range leafNames {
		supLeaf := supNode.Parts.Leaves[name]
		subLeaf, ok := subNode.Parts.Leaf(name)
		if !ok {
			return NewEnv(), &MismatchError{Got: sub.It, Expected: supNode}
		}
		res, err := w.subtype(Clo{It: supLeaf, Env: scope}, Clo{It: subLeaf, Env: sub.Env})
		if err != nil {
			return NewEnv(), err
		}
		acc = acc.SetAll(res)
		scope = scope.SetAll(res)
	}

	var repNames []string
	for name := range supNode.Parts.Reps {
		repNames = append(repNames, name)
	}
	sort.Strings(repNames)
	for _, name := range repNames {
		supElems := supNode.Parts.Reps[name]
		subElems := subNode.Parts.Rep(name)
		if len(supElems) != len(subElems) {
			return NewEnv(), &MismatchError{Got: sub.It, Expected: supNode}
		}
		for i := range supElems {
			res, err := w.subtype(Clo{It: supElems[i], Env: scope}, Clo{It: subElems[i], Env: sub.Env})
			if err != nil {
				return NewEnv(), err
			}
			acc = acc.SetAll(res)
			scope = scope.SetAll(res)
		}
	}
	return acc, nil
}
