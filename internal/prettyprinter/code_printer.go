package prettyprinter

import (
	"fmt"
	"strings"

	"github.com/funvibe/seam/internal/ast"
	"github.com/funvibe/seam/internal/typesystem"
)

// --- Code Printer (Output looks like source code) ---

// Type renders a type term in surface syntax. Engine-internal placeholders
// print as ?name so partially determined types stay readable.
func Type(t ast.Term) string {
	switch t := t.(type) {
	case ast.VariableReference:
		return t.Name
	case ast.Atom:
		return t.Name
	case *ast.Node:
		return nodeType(t)
	}
	return fmt.Sprintf("%v", t)
}

func nodeType(n *ast.Node) string {
	switch n.Form {
	case typesystem.FormFn:
		params := typeList(n.Parts.Rep(typesystem.PartParam))
		ret, _ := n.Parts.Leaf(typesystem.PartRet)
		return fmt.Sprintf("fn(%s) -> %s", params, Type(ret))

	case typesystem.FormForall:
		return binderType("forall", n)

	case typesystem.FormMu:
		return binderType("mu", n)

	case typesystem.FormTuple:
		return "(" + typeList(n.Parts.Rep(typesystem.PartComponent)) + ")"

	case typesystem.FormStruct:
		names := n.Parts.Rep(typesystem.PartComponentName)
		comps := n.Parts.Rep(typesystem.PartComponent)
		fields := make([]string, len(names))
		for i := range names {
			fields[i] = fmt.Sprintf("%s: %s", Type(names[i]), Type(comps[i]))
		}
		return "struct {" + strings.Join(fields, ", ") + "}"

	case typesystem.FormEnum:
		names := n.Parts.Rep(typesystem.PartName)
		comps := n.Parts.Rep(typesystem.PartComponent)
		arms := make([]string, len(names))
		for i := range names {
			arm := Type(names[i])
			if tuple, ok := ast.Destructure(comps[i], typesystem.FormTuple); ok {
				if elems := tuple.Rep(typesystem.PartComponent); len(elems) > 0 {
					arm += "(" + typeList(elems) + ")"
				}
			}
			arms[i] = arm
		}
		return "enum {" + strings.Join(arms, ", ") + "}"

	case typesystem.FormTypeApply:
		rator, _ := n.Parts.Leaf(typesystem.PartRator)
		return fmt.Sprintf("%s<%s>", Type(rator), typeList(n.Parts.Rep(typesystem.PartArg)))

	case typesystem.FormDotDotDot:
		drivers := n.Parts.Rep(typesystem.PartDriver)
		names := make([]string, len(drivers))
		for i, d := range drivers {
			names[i] = Type(d)
		}
		body, _ := n.Parts.Leaf(typesystem.PartBody)
		return fmt.Sprintf("...[%s . %s]", strings.Join(names, " "), Type(body))

	case typesystem.FormUnderdetermined:
		id, _ := typesystem.UnderdeterminedID(n)
		return "?" + id
	}

	// Base types and extension forms carry no renderable structure.
	return n.Form.Name
}

func binderType(keyword string, n *ast.Node) string {
	params := n.Parts.Rep(typesystem.PartParam)
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = Type(p)
	}
	body, _ := n.Parts.Leaf(typesystem.PartBody)
	return fmt.Sprintf("%s %s . %s", keyword, strings.Join(names, " "), Type(body))
}

func typeList(ts []ast.Term) string {
	rendered := make([]string, len(ts))
	for i, t := range ts {
		rendered[i] = Type(t)
	}
	return strings.Join(rendered, ", ")
}

// Decl renders a declaration in surface syntax.
func Decl(d ast.Decl) string {
	switch d := d.(type) {
	case *ast.TypeDecl:
		return fmt.Sprintf("type %s = %s", d.Name, Type(d.Type))
	case *ast.AssertDecl:
		return fmt.Sprintf("assert %s %s %s", Type(d.Left), d.Rel, Type(d.Right))
	}
	return fmt.Sprintf("%v", d)
}

// Program renders a whole file, one declaration per line.
func Program(p *ast.Program) string {
	var b strings.Builder
	for _, d := range p.Decls {
		b.WriteString(Decl(d))
		b.WriteString("\n")
	}
	return b.String()
}
