// pkg/contract/violation.go

package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind identifies which clause of a contract failed.
type Kind int

const (
	// Precondition is raised before the target runs; the caller passed illegal arguments.
	Precondition Kind = iota + 1
	// Postcondition is raised after the target ran; its result broke the guarantee.
	Postcondition
	// Invariant is raised after the target ran; it corrupted state the contract protects.
	Invariant
)

func (k Kind) String() string {
	switch k {
	case Precondition:
		return "pre condition"
	case Postcondition:
		return "post condition"
	case Invariant:
		return "invariant"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against a *Violation of the same kind.
var (
	ErrPrecondition  = errors.New("contract: pre condition violated")
	ErrPostcondition = errors.New("contract: post condition violated")
	ErrInvariant     = errors.New("contract: invariant violated")
)

// Violation is the failure raised when a contract clause evaluates to false.
type Violation struct {
	Kind     Kind
	Function string

	// Args is the argument snapshot for pre and post condition failures.
	Args []any

	// Result is only meaningful when HasResult is set.
	Result    any
	HasResult bool
}

func (v *Violation) Error() string {
	var b strings.Builder
	b.WriteString("code contract: failed to assert the ")
	b.WriteString(v.Kind.String())
	b.WriteString("\n\tfunction: ")
	b.WriteString(v.Function)
	if v.Kind != Invariant {
		b.WriteString("\n\targs: ")
		b.WriteString(Render(v.Args))
	}
	if v.HasResult {
		b.WriteString("\n\tresult: ")
		b.WriteString(Render(v.Result))
	}
	return b.String()
}

// Is matches the sentinel for v's kind.
func (v *Violation) Is(target error) bool {
	switch target {
	case ErrPrecondition:
		return v.Kind == Precondition
	case ErrPostcondition:
		return v.Kind == Postcondition
	case ErrInvariant:
		return v.Kind == Invariant
	}
	return false
}

// AsViolation extracts a *Violation from a value returned by recover().
func AsViolation(recovered any) (*Violation, bool) {
	err, ok := recovered.(error)
	if !ok {
		return nil, false
	}
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// Render formats a diagnostic value as JSON, falling back to %v.
func Render(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}
