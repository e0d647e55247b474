package ast

import (
	"fmt"
	"sort"
	"strings"
)

// Term is the algebraic term the type engine walks: either a variable
// reference by name, an atom (a bare name used as a label or binder), or a
// tagged node carrying a constructor identity plus named sub-terms.
type Term interface {
	String() string
	Equal(other Term) bool
	term()
}

// VariableReference names a variable bound in some environment. A reference
// bound to itself is "protected": it marks the entry point of a recursive
// type and is compared by name, never expanded.
type VariableReference struct {
	Name string
}

func (v VariableReference) term()          {}
func (v VariableReference) String() string { return v.Name }

func (v VariableReference) Equal(other Term) bool {
	o, ok := other.(VariableReference)
	return ok && o.Name == v.Name
}

// Atom is a bare name: a struct component label, an enum arm name, a binder
// in a forall parameter list. Atoms are never walked, only compared.
type Atom struct {
	Name string
}

func (a Atom) term()          {}
func (a Atom) String() string { return a.Name }

func (a Atom) Equal(other Term) bool {
	o, ok := other.(Atom)
	return ok && o.Name == a.Name
}

// Node is a tagged term: a constructor identity plus its named sub-parts.
type Node struct {
	Form  *Form
	Parts Parts
}

func (n *Node) term() {}

func (n *Node) String() string {
	var names []string
	for name := range n.Parts.Leaves {
		names = append(names, name)
	}
	for name := range n.Parts.Reps {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("{")
	b.WriteString(n.Form.Name)
	for _, name := range names {
		if leaf, ok := n.Parts.Leaves[name]; ok {
			fmt.Fprintf(&b, " %s=%s", name, leaf.String())
			continue
		}
		elems := make([]string, len(n.Parts.Reps[name]))
		for i, t := range n.Parts.Reps[name] {
			elems[i] = t.String()
		}
		fmt.Fprintf(&b, " %s=[%s]", name, strings.Join(elems, " "))
	}
	b.WriteString("}")
	return b.String()
}

func (n *Node) Equal(other Term) bool {
	o, ok := other.(*Node)
	if !ok || o.Form != n.Form {
		return false
	}
	return n.Parts.Equal(o.Parts)
}

// Destructure returns the parts of t if it is a node of form f.
func Destructure(t Term, f *Form) (Parts, bool) {
	n, ok := t.(*Node)
	if !ok || n.Form != f {
		return Parts{}, false
	}
	return n.Parts, true
}

// Parts maps sub-part names to sub-terms. A name is either a leaf (a single
// sub-term) or a repeated group, never both.
type Parts struct {
	Leaves map[string]Term
	Reps   map[string][]Term
}

func (p Parts) Leaf(name string) (Term, bool) {
	t, ok := p.Leaves[name]
	return t, ok
}

func (p Parts) Rep(name string) []Term {
	return p.Reps[name]
}

func (p Parts) Equal(other Parts) bool {
	if len(p.Leaves) != len(other.Leaves) || len(p.Reps) != len(other.Reps) {
		return false
	}
	for name, t := range p.Leaves {
		o, ok := other.Leaves[name]
		if !ok || !t.Equal(o) {
			return false
		}
	}
	for name, ts := range p.Reps {
		os, ok := other.Reps[name]
		if !ok || len(os) != len(ts) {
			return false
		}
		for i, t := range ts {
			if !t.Equal(os[i]) {
				return false
			}
		}
	}
	return true
}

// NewNode builds a node, copying the part maps so callers can reuse literals.
func NewNode(f *Form, parts Parts) *Node {
	copied := Parts{}
	if len(parts.Leaves) > 0 {
		copied.Leaves = make(map[string]Term, len(parts.Leaves))
		for name, t := range parts.Leaves {
			copied.Leaves[name] = t
		}
	}
	if len(parts.Reps) > 0 {
		copied.Reps = make(map[string][]Term, len(parts.Reps))
		for name, ts := range parts.Reps {
			copied.Reps[name] = append([]Term(nil), ts...)
		}
	}
	return &Node{Form: f, Parts: copied}
}
