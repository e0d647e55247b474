package typesystem

import (
	"errors"
	"testing"

	"github.com/funvibe/seam/internal/ast"
)

func intT() ast.Term   { return Base("Int") }
func natT() ast.Term   { return Base("Nat") }
func floatT() ast.Term { return Base("Float") }

// forall t . fn(t) -> t
func idFnType() ast.Term {
	return Forall([]string{"t"}, Fn([]ast.Term{Var("t")}, Var("t")))
}

func intToIntType() ast.Term {
	return Fn([]ast.Term{intT()}, intT())
}

// forall Datum . mu List . enum {Nil, Cons(Datum, List<Datum>)}
func listType() ast.Term {
	return Forall([]string{"Datum"},
		Mu([]string{"List"},
			Enum(
				[]string{"Nil", "Cons"},
				[][]ast.Term{
					{},
					{Var("Datum"), Apply(Var("List"), Var("Datum"))},
				},
			)))
}

// mu <name> . enum {Nil, Cons(<elem>, <name>)}
func monoListType(name string, elem ast.Term) ast.Term {
	return Mu([]string{name},
		Enum(
			[]string{"Nil", "Cons"},
			[][]ast.Term{{}, {elem, Var(name)}},
		))
}

func listEnv() Env {
	return NewEnv().
		Set("IntList", monoListType("IntList", intT())).
		Set("FloatList", monoListType("FloatList", floatT())).
		Set("List", listType())
}

func mustOk(t *testing.T, sub, sup ast.Term, env Env) Env {
	t.Helper()
	bindings, err := MustSubtype(sub, sup, env)
	if err != nil {
		t.Fatalf("MustSubtype(%s, %s) = %v, want ok", sub, sup, err)
	}
	return bindings
}

func mustFail(t *testing.T, sub, sup ast.Term, env Env) error {
	t.Helper()
	_, err := MustSubtype(sub, sup, env)
	if err == nil {
		t.Fatalf("MustSubtype(%s, %s) succeeded, want error", sub, sup)
	}
	return err
}

func TestBasicSubtyping(t *testing.T) {
	env := NewEnv()

	mustOk(t, intT(), intT(), env)

	err := mustFail(t, floatT(), intT(), env)
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("MustSubtype(Float, Int) = %v, want MismatchError", err)
	}

	mustOk(t, intToIntType(), intToIntType(), env)
	mustOk(t, idFnType(), idFnType(), env)

	// The interesting direction: a polymorphic function can stand in for a
	// monomorphic one, never the reverse.
	mustOk(t, intToIntType(), idFnType(), env)
	err = mustFail(t, idFnType(), intToIntType(), env)
	if !errors.As(err, &mismatch) {
		t.Fatalf("MustSubtype(id, Int->Int) = %v, want MismatchError", err)
	}

	parametric := NewEnv().
		Set("some_int", intT()).
		Set("convert_to_nat", Forall([]string{"t"}, Fn([]ast.Term{Var("t")}, natT()))).
		Set("identity", idFnType()).
		Set("int_to_int", intToIntType())

	mustOk(t, Var("int_to_int"), Var("identity"), parametric)
	mustFail(t, Var("identity"), Var("int_to_int"), parametric)

	// A function type with an undetermined result matches anything that
	// pins the result down.
	incomplete := func() ast.Term {
		return Fn([]ast.Term{intT()}, FreshUnderdetermined("return_type"))
	}
	mustOk(t, incomplete(), intToIntType(), env)
	mustOk(t, incomplete(), idFnType(), env)
}

func TestSubtypingResolvesTypeApplications(t *testing.T) {
	env := NewEnv().Set("identity", idFnType())

	idOfInt := Apply(Var("identity"), intT())
	mustOk(t, idOfInt, idOfInt, env)
	mustOk(t, idOfInt, Var("identity"), env)

	tyEnv := listEnv()
	listOfInt := Apply(Var("List"), intT())
	mustOk(t, listOfInt, listOfInt, tyEnv)

	// The operator written out literally instead of by name.
	mustOk(t, listOfInt, Apply(listType(), intT()), tyEnv)

	// An application under the recursion binder stays by-name.
	wrapped := Mu([]string{"List"}, Apply(Var("List"), intT()))
	mustOk(t, wrapped, wrapped, tyEnv)

	// Reparameterization: List itself against forall Datum2 . List<Datum2>.
	mustOk(t, Var("List"),
		Forall([]string{"Datum2"}, Apply(Var("List"), Var("Datum2"))),
		tyEnv)
}

func TestMuSubtyping(t *testing.T) {
	tyEnv := listEnv()

	mustOk(t, Var("IntList"), Var("IntList"), tyEnv)
	mustFail(t, Var("IntList"), Var("FloatList"), tyEnv)

	// Enum arm names are labels, not types to walk.
	basicEnum := Enum([]string{"Aa", "Bb"}, [][]ast.Term{{intT()}, {}})
	mustOk(t, basicEnum, basicEnum, NewEnv())

	// mu X . X is non-contractive; comparison must still terminate.
	basicMu := Mu([]string{"X"}, Var("X"))
	mustOk(t, basicMu, basicMu, NewEnv().Set("X", basicMu))
}

func TestSubtypeDifferentMus(t *testing.T) {
	// The Amber rule: recursion binders with different names compare equal
	// when the bodies agree under the assumption that they match.
	floatLoop := func(name string) ast.Term {
		return Mu([]string{name}, Fn([]ast.Term{floatT()}, Var(name)))
	}
	janeAuthor := floatLoop("CharlotteBronte")
	janePseudonym := floatLoop("CurrerBell")
	wutheringAuthor := Mu([]string{"EmilyBronte"}, Fn([]ast.Term{intT()}, Var("EmilyBronte")))

	env := NewEnv().
		Set("CharlotteBronte", janeAuthor).
		Set("CurrerBell", janePseudonym).
		Set("EmilyBronte", wutheringAuthor)

	mustOk(t, janeAuthor, janeAuthor, env)
	mustOk(t, janeAuthor, janePseudonym, env)
	mustFail(t, janeAuthor, wutheringAuthor, env)
}

func TestStructSubtyping(t *testing.T) {
	mk := func(names []string, comps ...ast.Term) ast.Term {
		return Struct(names, comps)
	}

	tests := []struct {
		name string
		sub  ast.Term
		sup  ast.Term
		ok   bool
	}{
		{
			name: "identical",
			sub:  mk([]string{"a", "b"}, intT(), natT()),
			sup:  mk([]string{"a", "b"}, intT(), natT()),
			ok:   true,
		},
		{
			name: "extra component in the context",
			sub:  mk([]string{"a", "b", "c"}, intT(), natT(), floatT()),
			sup:  mk([]string{"a", "b"}, intT(), natT()),
			ok:   true,
		},
		{
			name: "reordered components",
			sub:  mk([]string{"b", "a"}, natT(), intT()),
			sup:  mk([]string{"a", "b"}, intT(), natT()),
			ok:   true,
		},
		{
			name: "scrambled component types",
			sub:  mk([]string{"b", "a"}, intT(), natT()),
			sup:  mk([]string{"a", "b"}, intT(), natT()),
			ok:   false,
		},
		{
			name: "missing component",
			sub:  mk([]string{"a"}, intT()),
			sup:  mk([]string{"a", "b"}, intT(), natT()),
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MustSubtype(tt.sub, tt.sup, NewEnv())
			if tt.ok && err != nil {
				t.Errorf("MustSubtype(%s, %s) = %v, want ok", tt.sub, tt.sup, err)
			}
			if !tt.ok && err == nil {
				t.Errorf("MustSubtype(%s, %s) succeeded, want error", tt.sub, tt.sup)
			}
		})
	}
}

func TestEnumSubtyping(t *testing.T) {
	shape := Enum([]string{"Circle", "Square"}, [][]ast.Term{{floatT()}, {floatT()}})
	reordered := Enum([]string{"Square", "Circle"}, [][]ast.Term{{floatT()}, {floatT()}})
	wider := Enum([]string{"Circle", "Square", "Dot"}, [][]ast.Term{{floatT()}, {floatT()}, {}})

	mustOk(t, shape, shape, NewEnv())
	mustOk(t, reordered, shape, NewEnv())

	// Arm sets must coincide exactly; width subtyping is for structs only.
	mustFail(t, wider, shape, NewEnv())
	mustFail(t, shape, wider, NewEnv())
}

func TestTupleLengthMismatch(t *testing.T) {
	_, err := MustSubtype(
		Tuple(intT(), floatT(), natT()),
		Tuple(intT(), floatT()),
		NewEnv())
	var lenErr *LengthMismatchError
	if !errors.As(err, &lenErr) {
		t.Fatalf("MustSubtype = %v, want LengthMismatchError", err)
	}
	if lenErr.ExpectedLen != 2 || len(lenErr.Components) != 3 {
		t.Errorf("got %d components expected %d, want 3 vs 2",
			len(lenErr.Components), lenErr.ExpectedLen)
	}
}

func TestFnParameterContravariance(t *testing.T) {
	env := NewEnv()

	// fn(forall t. t->t) -> Int accepts a context whose parameter is the
	// more specific Int->Int, not the other way around.
	wantsPoly := Fn([]ast.Term{idFnType()}, intT())
	givesMono := Fn([]ast.Term{intToIntType()}, intT())

	mustOk(t, wantsPoly, givesMono, env)
	mustFail(t, givesMono, wantsPoly, env)
}

func TestPlaceholderMerging(t *testing.T) {
	// Two distinct placeholders meeting merge into one; a later
	// determination of either reaches both.
	unif := NewUnification()
	a := FreshUnderdetermined("a")
	b := FreshUnderdetermined("b")
	env := NewEnv()

	if _, err := IsSubtype(a, b, env, unif); err != nil {
		t.Fatalf("IsSubtype(a, b) = %v, want ok", err)
	}
	if _, err := IsSubtype(intT(), a, env, unif); err != nil {
		t.Fatalf("IsSubtype(Int, a) = %v, want ok", err)
	}

	for _, ph := range []ast.Term{a, b} {
		got := Resolve(Clo{It: ph, Env: env}, unif)
		if !got.It.Equal(intT()) {
			t.Errorf("Resolve(%s) = %s, want Int", ph, got.It)
		}
	}
}

func TestSamePlaceholderTwice(t *testing.T) {
	// One placeholder in two positions: the first position determines it,
	// the second has to agree.
	unif := NewUnification()
	ph := FreshUnderdetermined("t")
	env := NewEnv()

	pair := Tuple(ph, ph)
	if _, err := IsSubtype(Tuple(intT(), intT()), pair, env, unif); err != nil {
		t.Fatalf("IsSubtype((Int, Int), (t, t)) = %v, want ok", err)
	}

	unif = NewUnification()
	if _, err := IsSubtype(Tuple(intT(), floatT()), pair, env, unif); err == nil {
		t.Fatal("IsSubtype((Int, Float), (t, t)) succeeded, want error")
	}
}

func TestForallInstantiationReported(t *testing.T) {
	bindings := mustOk(t, intToIntType(), idFnType(), NewEnv())

	got, ok := bindings.Get("t")
	if !ok {
		t.Fatal("no binding reported for t")
	}
	if !got.Equal(intT()) {
		t.Errorf("t bound to %s, want Int", got)
	}
}

func TestUnboundVariableReference(t *testing.T) {
	err := mustFail(t, intT(), Var("NoSuchType"), NewEnv())
	var unbound *UnboundNameError
	if !errors.As(err, &unbound) {
		t.Fatalf("MustSubtype = %v, want UnboundNameError", err)
	}
	if unbound.Name != "NoSuchType" {
		t.Errorf("unbound name %q, want NoSuchType", unbound.Name)
	}
}
