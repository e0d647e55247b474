package ast

// Program is a parsed source file: an ordered list of declarations.
type Program struct {
	File  string
	Decls []Decl
}

type Decl interface {
	decl()
	Pos() (line, column int)
}

// TypeDecl binds a name to a type for the rest of the file.
type TypeDecl struct {
	Name   string
	Type   Term
	Line   int
	Column int
}

func (d *TypeDecl) decl()           {}
func (d *TypeDecl) Pos() (int, int) { return d.Line, d.Column }

// Relation selects which type relation an assertion checks.
type Relation int

const (
	RelSubtype Relation = iota
	RelEqual
)

func (r Relation) String() string {
	if r == RelEqual {
		return "=="
	}
	return "<:"
}

// AssertDecl demands that Left relate to Right: Left <: Right for subtyping,
// Left == Right for canonical equality.
type AssertDecl struct {
	Rel    Relation
	Left   Term
	Right  Term
	Line   int
	Column int
}

func (d *AssertDecl) decl()           {}
func (d *AssertDecl) Pos() (int, int) { return d.Line, d.Column }
