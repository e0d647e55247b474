package ast

// Form is a constructor identity. Forms are compared by pointer: two nodes
// are the same kind of thing only if they share the same *Form.
type Form struct {
	Name string

	// Binds declares which sub-parts introduce names into which other
	// sub-parts. The substitution layer consults this to stay
	// capture-avoiding.
	Binds []BindSpec
}

// BindSpec says: the names carried by the repeated sub-part Names are bound
// inside the leaf sub-part In. Protected binders (mu) shadow their own name
// with a self-reference rather than an expansion.
type BindSpec struct {
	Names     string
	In        string
	Protected bool
}

// BinderName extracts the name a binder element introduces. Binder lists
// hold Atoms (forall parameters) or VariableReferences (mu parameters).
func BinderName(t Term) (string, bool) {
	switch b := t.(type) {
	case Atom:
		return b.Name, true
	case VariableReference:
		return b.Name, true
	}
	return "", false
}

// BoundNames collects every name a node's binder sub-parts introduce into
// the given leaf sub-part.
func (n *Node) BoundNames(in string) []string {
	var names []string
	for _, spec := range n.Form.Binds {
		if spec.In != in {
			continue
		}
		for _, b := range n.Parts.Rep(spec.Names) {
			if name, ok := BinderName(b); ok {
				names = append(names, name)
			}
		}
	}
	return names
}
