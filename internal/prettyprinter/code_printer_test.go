package prettyprinter

import (
	"testing"

	"github.com/funvibe/seam/internal/ast"
	"github.com/funvibe/seam/internal/typesystem"
)

func TestTypeRendering(t *testing.T) {
	ts := typesystem.Tuple
	tests := []struct {
		name string
		term ast.Term
		want string
	}{
		{"base", typesystem.Base("Int"), "Int"},
		{"variable", typesystem.Var("List"), "List"},
		{"fn", typesystem.Fn([]ast.Term{typesystem.Base("Int")}, typesystem.Base("Nat")), "fn(Int) -> Nat"},
		{"tuple", ts(typesystem.Base("Int"), typesystem.Base("Bool")), "(Int, Bool)"},
		{"empty_tuple", ts(), "()"},
		{"forall", typesystem.Forall([]string{"a", "b"}, ts(typesystem.Var("a"), typesystem.Var("b"))),
			"forall a b . (a, b)"},
		{"mu", typesystem.Mu([]string{"X"}, typesystem.Fn([]ast.Term{typesystem.Base("Float")}, typesystem.Var("X"))),
			"mu X . fn(Float) -> X"},
		{"struct", typesystem.Struct([]string{"x", "y"}, []ast.Term{typesystem.Base("Int"), typesystem.Base("Int")}),
			"struct {x: Int, y: Int}"},
		{"enum", typesystem.Enum([]string{"Nil", "Cons"}, [][]ast.Term{{}, {typesystem.Base("Int"), typesystem.Var("L")}}),
			"enum {Nil, Cons(Int, L)}"},
		{"apply", typesystem.Apply(typesystem.Var("List"), typesystem.Base("Int")), "List<Int>"},
		{"splice", ts(typesystem.DotDotDot([]string{"T"}, typesystem.Var("T"))), "(...[T . T])"},
		{"placeholder", typesystem.Underdetermined("t$1234"), "?t$1234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Type(tt.term); got != tt.want {
				t.Errorf("Type() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeclRendering(t *testing.T) {
	td := &ast.TypeDecl{Name: "I", Type: typesystem.Base("Int")}
	if got := Decl(td); got != "type I = Int" {
		t.Errorf("Decl(type) = %q", got)
	}

	ad := &ast.AssertDecl{
		Rel:   ast.RelSubtype,
		Left:  typesystem.Base("Int"),
		Right: typesystem.Var("A"),
	}
	if got := Decl(ad); got != "assert Int <: A" {
		t.Errorf("Decl(assert) = %q", got)
	}

	prog := &ast.Program{Decls: []ast.Decl{td, ad}}
	want := "type I = Int\nassert Int <: A\n"
	if got := Program(prog); got != want {
		t.Errorf("Program() = %q, want %q", got, want)
	}
}
