package typesystem

import "github.com/funvibe/seam/internal/ast"

// dddIndices returns the positions of splice patterns among tuple
// components.
func dddIndices(comps []ast.Term) []int {
	var idx []int
	for i, c := range comps {
		if _, ok := ast.Destructure(c, FormDotDotDot); ok {
			idx = append(idx, i)
		}
	}
	return idx
}

// splice matches a tuple pattern with a single splice at index at against
// the context components. The splice absorbs however many context
// components the fixed prefix and suffix leave over; its body is walked
// once per absorbed component, with each driver bound to that component's
// slice of the driver's tuple. An underdetermined driver is forced to be a
// tuple of fresh placeholders of the right length before the body walks.
//
// Returns spliced=false (and no error) when the context region is itself a
// single splice pattern: splice against splice compares literally instead.
func (w *walker) splice(supComps []ast.Term, at int, supEnv Env, subComps []ast.Term, subEnv Env) (acc Env, spliced bool, err error) {
	prefix := supComps[:at]
	suffix := supComps[at+1:]
	fixed := len(prefix) + len(suffix)
	if len(subComps) < fixed {
		return NewEnv(), false, &LengthMismatchError{Components: subComps, ExpectedLen: fixed}
	}
	middle := subComps[len(prefix) : len(subComps)-len(suffix)]

	dddParts, _ := ast.Destructure(supComps[at], FormDotDotDot)
	body, _ := dddParts.Leaf(PartBody)
	drivers := dddParts.Rep(PartDriver)

	if len(middle) == 1 {
		if subParts, ok := ast.Destructure(middle[0], FormDotDotDot); ok {
			subBody, _ := subParts.Leaf(PartBody)
			if _, nested := ast.Destructure(subBody, FormDotDotDot); nested {
				return NewEnv(), false, &InternalError{Msg: "nested splice patterns are not supported"}
			}
			return NewEnv(), false, nil
		}
	}

	n := len(middle)
	copyEnvs := make([]Env, n)
	for i := range copyEnvs {
		copyEnvs[i] = NewEnv()
	}

	// Tuples driving the repetition have to be the right length; drivers
	// that are still underdetermined become tuples of the right length.
	for _, d := range drivers {
		vr, ok := d.(ast.VariableReference)
		if !ok {
			return NewEnv(), false, &UnableToDestructureError{Term: d, Want: "variable"}
		}
		resolved := Resolve(Clo{It: d, Env: supEnv}, w.unif)

		if tupleParts, ok := ast.Destructure(resolved.It, FormTuple); ok {
			comps := tupleParts.Rep(PartComponent)
			if len(comps) != n {
				return NewEnv(), false, &LengthMismatchError{Components: comps, ExpectedLen: n}
			}
			for i := range copyEnvs {
				copyEnvs[i] = copyEnvs[i].Set(vr.Name, comps[i])
			}
			continue
		}
		if id, ok := UnderdeterminedID(resolved.It); ok {
			bits := make([]ast.Term, n)
			for i := range bits {
				bits[i] = FreshUnderdetermined("ddd_bit")
			}
			w.unif.determine(id, Clo{It: Tuple(bits...), Env: supEnv})
			for i := range copyEnvs {
				copyEnvs[i] = copyEnvs[i].Set(vr.Name, bits[i])
			}
			continue
		}
		return NewEnv(), false, &UnableToDestructureError{Term: resolved.It, Want: "tuple"}
	}

	acc = NewEnv()
	scope := supEnv
	walkPair := func(sup, sub ast.Term, extra Env) error {
		res, werr := w.subtype(Clo{It: sup, Env: scope.SetAll(extra)}, Clo{It: sub, Env: subEnv})
		if werr != nil {
			return werr
		}
		acc = acc.SetAll(res)
		scope = scope.SetAll(res)
		return nil
	}

	for i, p := range prefix {
		if err := walkPair(p, subComps[i], NewEnv()); err != nil {
			return NewEnv(), false, err
		}
	}
	for i := range middle {
		if err := walkPair(body, middle[i], copyEnvs[i]); err != nil {
			return NewEnv(), false, err
		}
	}
	for i, s := range suffix {
		if err := walkPair(s, subComps[len(subComps)-len(suffix)+i], NewEnv()); err != nil {
			return NewEnv(), false, err
		}
	}
	return acc, true, nil
}
