// Package typesystem implements the type-relation engine: resolution of
// type-level variable references and unification placeholders, positive
// (canonicalize) and negative (subtype) term walks, and the splicing
// algorithm for variadic tuple patterns.
package typesystem

import (
	"github.com/funvibe/seam/internal/alpha"
	"github.com/funvibe/seam/internal/assoc"
	"github.com/funvibe/seam/internal/ast"
	"github.com/funvibe/seam/internal/config"
)

// Sub-part names of the built-in type forms.
const (
	PartRator         = "type_rator"
	PartArg           = "arg"
	PartParam         = "param"
	PartBody          = "body"
	PartRet           = "ret"
	PartDriver        = "driver"
	PartComponent     = "component"
	PartComponentName = "component_name"
	PartName          = "name"
	PartID            = "id"
)

// Built-in type constructors. Identity is pointer identity.
var (
	FormTypeApply = &ast.Form{Name: "type_apply"}
	FormForall    = &ast.Form{
		Name:  "forall_type",
		Binds: []ast.BindSpec{{Names: PartParam, In: PartBody}},
	}
	FormMu = &ast.Form{
		Name:  "mu_type",
		Binds: []ast.BindSpec{{Names: PartParam, In: PartBody, Protected: true}},
	}
	FormFn        = &ast.Form{Name: "fn"}
	FormTuple     = &ast.Form{Name: "tuple"}
	FormStruct    = &ast.Form{Name: "struct"}
	FormEnum      = &ast.Form{Name: "enum"}
	FormDotDotDot = &ast.Form{Name: "dotdotdot_type"}

	// FormUnderdetermined is the engine's own placeholder form: a single
	// "id" atom naming an entry in the unification store.
	FormUnderdetermined = &ast.Form{Name: "<underdetermined>"}
)

var baseForms = map[string]*ast.Form{}

func init() {
	for _, name := range config.BaseTypeNames {
		baseForms[name] = &ast.Form{Name: name}
	}
}

// IsBaseName reports whether name denotes a built-in nullary type.
func IsBaseName(name string) bool {
	_, ok := baseForms[name]
	return ok
}

// Env binds type-variable names to types. Immutable once published; Set
// returns an extended copy.
type Env = assoc.Assoc[string, ast.Term]

func NewEnv() Env {
	return assoc.New[string, ast.Term]()
}

// Clo pairs a type term with the environment needed to resolve its free
// variable references. Two closures are compared only after each has been
// resolved as far as it can go.
type Clo struct {
	It  ast.Term
	Env Env
}

// Var makes a variable reference.
func Var(name string) ast.Term {
	return ast.VariableReference{Name: name}
}

// Base makes a nullary built-in type like Int. Panics on unknown names;
// the parser guards with IsBaseName.
func Base(name string) ast.Term {
	f, ok := baseForms[name]
	if !ok {
		panic(&InternalError{Msg: "unknown base type " + name})
	}
	return ast.NewNode(f, ast.Parts{})
}

// Fn makes a function type.
func Fn(params []ast.Term, ret ast.Term) ast.Term {
	return ast.NewNode(FormFn, ast.Parts{
		Leaves: map[string]ast.Term{PartRet: ret},
		Reps:   map[string][]ast.Term{PartParam: params},
	})
}

// Forall makes a universally quantified type; params are binder names in
// scope inside body.
func Forall(params []string, body ast.Term) ast.Term {
	binders := make([]ast.Term, len(params))
	for i, p := range params {
		binders[i] = ast.Atom{Name: p}
	}
	return ast.NewNode(FormForall, ast.Parts{
		Leaves: map[string]ast.Term{PartBody: body},
		Reps:   map[string][]ast.Term{PartParam: binders},
	})
}

// Mu makes an equi-recursive type; each param is protected inside body.
func Mu(params []string, body ast.Term) ast.Term {
	binders := make([]ast.Term, len(params))
	for i, p := range params {
		binders[i] = ast.VariableReference{Name: p}
	}
	return ast.NewNode(FormMu, ast.Parts{
		Leaves: map[string]ast.Term{PartBody: body},
		Reps:   map[string][]ast.Term{PartParam: binders},
	})
}

// Tuple makes a tuple type.
func Tuple(components ...ast.Term) ast.Term {
	return ast.NewNode(FormTuple, ast.Parts{
		Reps: map[string][]ast.Term{PartComponent: components},
	})
}

// Struct makes a struct type from parallel name/component lists.
func Struct(names []string, components []ast.Term) ast.Term {
	atoms := make([]ast.Term, len(names))
	for i, n := range names {
		atoms[i] = ast.Atom{Name: n}
	}
	return ast.NewNode(FormStruct, ast.Parts{
		Reps: map[string][]ast.Term{
			PartComponentName: atoms,
			PartComponent:     components,
		},
	})
}

// Enum makes an enum type from parallel arm name/component lists. Each
// arm's components are carried as a tuple.
func Enum(names []string, components [][]ast.Term) ast.Term {
	atoms := make([]ast.Term, len(names))
	tuples := make([]ast.Term, len(components))
	for i, n := range names {
		atoms[i] = ast.Atom{Name: n}
	}
	for i, comps := range components {
		tuples[i] = Tuple(comps...)
	}
	return ast.NewNode(FormEnum, ast.Parts{
		Reps: map[string][]ast.Term{
			PartName:      atoms,
			PartComponent: tuples,
		},
	})
}

// Apply makes a type application of rator to args.
func Apply(rator ast.Term, args ...ast.Term) ast.Term {
	return ast.NewNode(FormTypeApply, ast.Parts{
		Leaves: map[string]ast.Term{PartRator: rator},
		Reps:   map[string][]ast.Term{PartArg: args},
	})
}

// DotDotDot makes a variadic splice pattern: body repeated to match the
// arity of whatever it is compared against, with each driver variable
// taking a per-position value.
func DotDotDot(drivers []string, body ast.Term) ast.Term {
	refs := make([]ast.Term, len(drivers))
	for i, d := range drivers {
		refs[i] = ast.VariableReference{Name: d}
	}
	return ast.NewNode(FormDotDotDot, ast.Parts{
		Leaves: map[string]ast.Term{PartBody: body},
		Reps:   map[string][]ast.Term{PartDriver: refs},
	})
}

// Underdetermined makes a placeholder type naming a unification-store entry.
func Underdetermined(id string) ast.Term {
	return ast.NewNode(FormUnderdetermined, ast.Parts{
		Leaves: map[string]ast.Term{PartID: ast.Atom{Name: id}},
	})
}

// FreshUnderdetermined makes a placeholder with a freshly generated id.
// Every call produces a distinct placeholder.
func FreshUnderdetermined(hint string) ast.Term {
	return Underdetermined(alpha.Gensym(hint))
}

// UnderdeterminedID extracts the placeholder id, if t is one.
func UnderdeterminedID(t ast.Term) (string, bool) {
	parts, ok := ast.Destructure(t, FormUnderdetermined)
	if !ok {
		return "", false
	}
	leaf, ok := parts.Leaf(PartID)
	if !ok {
		return "", false
	}
	atom, ok := leaf.(ast.Atom)
	if !ok {
		return "", false
	}
	return atom.Name, true
}
