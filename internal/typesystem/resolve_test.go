package typesystem

import (
	"testing"

	"github.com/funvibe/seam/internal/ast"
)

func TestResolveLeavesBaseTypesAlone(t *testing.T) {
	unif := NewUnification()
	got := Resolve(Clo{It: intT(), Env: listEnv()}, unif)
	if !got.It.Equal(intT()) {
		t.Errorf("Resolve(Int) = %s, want Int", got.It)
	}
}

func TestResolveFollowsReferenceChains(t *testing.T) {
	env := NewEnv().
		Set("A", Var("B")).
		Set("B", intT())
	got := Resolve(Clo{It: Var("A"), Env: env}, NewUnification())
	if !got.It.Equal(intT()) {
		t.Errorf("Resolve(A) = %s, want Int", got.It)
	}
}

func TestResolveStopsAtProtectedVariables(t *testing.T) {
	env := NewEnv().Set("X", Var("X"))
	got := Resolve(Clo{It: Var("X"), Env: env}, NewUnification())
	if !got.It.Equal(Var("X")) {
		t.Errorf("Resolve(X) = %s, want X unchanged", got.It)
	}

	// An application whose operator is protected only has its arguments
	// resolved; the application itself survives.
	app := Apply(Var("X"), intT())
	got = Resolve(Clo{It: app, Env: env}, NewUnification())
	if !got.It.Equal(app) {
		t.Errorf("Resolve(X<Int>) = %s, want unchanged", got.It)
	}
}

func TestResolveExpandsTypeApplication(t *testing.T) {
	unif := NewUnification()
	ud := Underdetermined("a$99")

	got := Resolve(Clo{It: Apply(Var("List"), ud), Env: listEnv()}, unif)

	parts, ok := ast.Destructure(got.It, FormMu)
	if !ok {
		t.Fatalf("Resolve(List<_>) = %s, want a mu type", got.It)
	}
	body, _ := parts.Leaf(PartBody)
	if _, ok := ast.Destructure(body, FormEnum); !ok {
		t.Errorf("expanded body = %s, want an enum", body)
	}
}

func TestResolveReadsTheStore(t *testing.T) {
	unif := NewUnification()
	ud := FreshUnderdetermined("t")
	id, _ := UnderdeterminedID(ud)
	unif.determine(id, Clo{It: intT(), Env: NewEnv()})

	got := Resolve(Clo{It: ud, Env: NewEnv()}, unif)
	if !got.It.Equal(intT()) {
		t.Errorf("Resolve(placeholder) = %s, want Int", got.It)
	}
}

func TestResolveSubstitutesResolvedArguments(t *testing.T) {
	// The argument is itself a reference; it must be pushed through before
	// it lands in the operator's body.
	env := listEnv().Set("MyInt", intT())
	got := Resolve(Clo{It: Apply(Var("List"), Var("MyInt")), Env: env}, NewUnification())

	want := Resolve(Clo{It: Apply(Var("List"), intT()), Env: env}, NewUnification())
	if !got.It.Equal(want.It) {
		t.Errorf("Resolve(List<MyInt>) = %s, want %s", got.It, want.It)
	}
}

func TestResolveArityViolationPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic on arity violation")
		}
		if _, ok := r.(*InternalError); !ok {
			t.Fatalf("panic value %v, want InternalError", r)
		}
	}()
	env := NewEnv().Set("identity", idFnType())
	Resolve(Clo{It: Apply(Var("identity"), intT(), floatT()), Env: env}, NewUnification())
}
