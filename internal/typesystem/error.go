package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/seam/internal/ast"
)

// MismatchError is a structural subtype or equality failure.
type MismatchError struct {
	Got      ast.Term
	Expected ast.Term
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("type mismatch: got %s, expected %s", e.Got, e.Expected)
}

// UnboundNameError indicates a placeholder or variable with no entry.
type UnboundNameError struct {
	Name string
}

func (e *UnboundNameError) Error() string {
	return fmt.Sprintf("unbound name: %s", e.Name)
}

// LengthMismatchError is a tuple or splice arity mismatch.
type LengthMismatchError struct {
	Components  []ast.Term
	ExpectedLen int
}

func (e *LengthMismatchError) Error() string {
	comps := make([]string, len(e.Components))
	for i, c := range e.Components {
		comps[i] = c.String()
	}
	return fmt.Sprintf("length mismatch: (%s) has %d components, expected %d",
		strings.Join(comps, ", "), len(e.Components), e.ExpectedLen)
}

// UnableToDestructureError indicates a term had the wrong shape for the
// operation attempted (e.g. a splice driver that is not a tuple).
type UnableToDestructureError struct {
	Term ast.Term
	Want string
}

func (e *UnableToDestructureError) Error() string {
	return fmt.Sprintf("unable to destructure %s as %s", e.Term, e.Want)
}

// InternalError marks an internal-invariant violation: a bug in an earlier
// phase rather than a type error in the checked program. These are not
// recoverable type errors and abort the enclosing check.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "internal: " + e.Msg
}
