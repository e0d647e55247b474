package typesystem

// Unification records the type-variable determinations made during one
// checking session. It is written only by the negative (subtype) walk's
// pre-match step and by the splicer, and read during resolution.
//
// Invariant: the bindings are acyclic. Placeholders are always fresh and a
// determination only ever binds an id to an already-resolved closure, never
// to another still-underdetermined placeholder's raw reference.
//
// A Unification is not safe for concurrent use; independent checks running
// concurrently must each use their own instance.
type Unification struct {
	bindings map[string]Clo
}

func NewUnification() *Unification {
	return &Unification{bindings: make(map[string]Clo)}
}

// Lookup returns the closure a placeholder id was determined to be.
func (u *Unification) Lookup(id string) (Clo, bool) {
	clo, ok := u.bindings[id]
	return clo, ok
}

// Len reports how many placeholders have been determined.
func (u *Unification) Len() int {
	return len(u.bindings)
}

// determine binds a placeholder id. First determination wins: pre-match
// resolves through the store before binding, so a bound id never reaches
// this point again within a well-behaved walk.
func (u *Unification) determine(id string, clo Clo) {
	if _, done := u.bindings[id]; done {
		return
	}
	u.bindings[id] = clo
}
