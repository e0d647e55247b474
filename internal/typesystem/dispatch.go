package typesystem

import "github.com/funvibe/seam/internal/ast"

// ComparePair holds the positive (canonicalize) and negative (subtype)
// rules for a type form declared outside the built-in set. The built-in
// constructors dispatch through an exhaustive switch; this table exists
// only for genuinely open extension points.
type ComparePair struct {
	Positive func(n *ast.Node, env Env, unif *Unification) (ast.Term, error)
	Negative func(sup Clo, sub Clo, unif *Unification) (Env, error)
}

var typeCompare = map[*ast.Form]ComparePair{}

// RegisterTypeCompare installs comparison rules for an extension form.
// Forms without registered rules are walked literally.
func RegisterTypeCompare(f *ast.Form, rules ComparePair) {
	typeCompare[f] = rules
}
