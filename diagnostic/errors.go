// Package diagnostic renders the analyzer's fatal error kinds (spec §7) and implements the
// leveled logging described in spec §6.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/lucent-lang/erasure/ir"
)

// Kind enumerates the five fatal error kinds of spec §7. All of them abort the analysis pass;
// there is no local recovery (spec §7: "Errors are surfaced verbatim; there is no local
// recovery").
type Kind int

const (
	// UnknownReference: a name appearing in a case tree is not in the symbol table.
	UnknownReference Kind = iota
	// AmbiguousReference: a name resolves to more than one definition.
	AmbiguousReference
	// UnsupportedConstruct: a projection-case or function-case alternative, an applied
	// projection of an unrecognized head, an unelaborated function body, or an unknown term
	// shape.
	UnsupportedConstruct
	// StrayMachineVariable: a non-whitelisted compiler-internal name appears as a free variable
	// during term analysis.
	StrayMachineVariable
	// InaccessibleButUsed: the accessibility check found overlap between a symbol's
	// statically-inaccessible argument indices and its runtime-used indices.
	InaccessibleButUsed
	// Internal wraps an unexpected panic inside the analyzer itself (not a defect in the
	// analyzed program) so that it still surfaces through the same typed error channel.
	Internal
)

func (k Kind) String() string {
	switch k {
	case UnknownReference:
		return "unknown reference"
	case AmbiguousReference:
		return "ambiguous reference"
	case UnsupportedConstruct:
		return "unsupported construct"
	case StrayMachineVariable:
		return "stray machine-generated variable"
	case InaccessibleButUsed:
		return "inaccessible argument used"
	case Internal:
		return "internal error"
	default:
		return "unknown error kind"
	}
}

// Error is the single error type the analyzer ever returns. Every fatal condition in spec §7
// constructs one of these; callers that want to distinguish kinds can switch on Kind().
type Error struct {
	kind    Kind
	symbol  ir.Name
	message string
}

func (e *Error) Error() string {
	if e.symbol == (ir.Name{}) {
		return fmt.Sprintf("%s: %s", e.kind, e.message)
	}
	return fmt.Sprintf("%s: %s: %s", e.kind, e.symbol, e.message)
}

// Kind returns the fatal error kind e represents.
func (e *Error) Kind() Kind { return e.kind }

// Symbol returns the symbol the error concerns, if any.
func (e *Error) Symbol() ir.Name { return e.symbol }

// Unknown builds the error raised when name is referenced but not present in the symbol table
// (spec §4.2: "If the symbol is unknown the analyzer raises a fatal error naming the missing
// reference.").
func Unknown(name ir.Name) *Error {
	return &Error{kind: UnknownReference, symbol: name, message: "referenced but not declared in the symbol table"}
}

// AmbiguousRef builds the error raised when name resolves to more than one definition.
func AmbiguousRef(name ir.Name) *Error {
	return &Error{kind: AmbiguousReference, symbol: name, message: "resolves to more than one definition"}
}

// Unsupported builds the error raised for a construct spec §7 lists as unsupported: a
// projection-case or function-case alternative, an applied projection of an unrecognized head, an
// unelaborated function body, or an unknown term shape.
func Unsupported(name ir.Name, what string) *Error {
	return &Error{kind: UnsupportedConstruct, symbol: name, message: "unsupported construct: " + what}
}

// StrayVariable builds the error raised when a non-whitelisted machine-generated name appears as
// a free variable during term analysis — a bug in an earlier compiler pass.
func StrayVariable(name ir.Name) *Error {
	return &Error{kind: StrayMachineVariable, symbol: name, message: "machine-generated name escaped into term position; this indicates a bug in an earlier compiler pass"}
}

// Inaccessible builds the error raised when the accessibility check finds that indices is a
// non-empty set of argument positions of name that are both used at runtime and previously proved
// statically inaccessible.
func Inaccessible(name ir.Name, indices []int) *Error {
	strs := make([]string, len(indices))
	for i, idx := range indices {
		strs[i] = fmt.Sprintf("%d", idx)
	}
	return &Error{
		kind:    InaccessibleButUsed,
		symbol:  name,
		message: fmt.Sprintf("runtime use found for argument position(s) [%s], which a prior pass proved statically inaccessible", strings.Join(strs, ", ")),
	}
}

// InternalPanic wraps an unexpected panic value recovered at the top of the analyzer.
func InternalPanic(r any) *Error {
	return &Error{kind: Internal, message: fmt.Sprintf("recovered from panic: %v", r)}
}
