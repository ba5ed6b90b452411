package common

import (
	"fmt"
	"strings"
)

// ErrorKind labels the precondition an input violated.
type ErrorKind int

const (
	KindFieldCountMismatch ErrorKind = iota + 1
	KindNonTriangularFace
	KindUnsupportedArity
	KindIndexOutOfRange
	KindInvalidChannel
	KindInvalidIsoValue
	KindNonFiniteValue
)

func (k ErrorKind) String() string {
	switch k {
	case KindFieldCountMismatch:
		return "field/vertex count mismatch"
	case KindNonTriangularFace:
		return "non-triangular face"
	case KindUnsupportedArity:
		return "unsupported face arity"
	case KindIndexOutOfRange:
		return "vertex index out of range"
	case KindInvalidChannel:
		return "invalid color channel"
	case KindInvalidIsoValue:
		return "invalid iso value"
	case KindNonFiniteValue:
		return "non-finite field value"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// InvalidInputError reports malformed input to one of the mesh algorithms.
// Index is the offending face or vertex, or -1 when the error is not tied to
// one element.
type InvalidInputError struct {
	Kind  ErrorKind
	Index int
	Msg   string
}

var (
	ErrFieldCountMismatch = &InvalidInputError{Kind: KindFieldCountMismatch, Index: -1}
	ErrNonTriangularFace  = &InvalidInputError{Kind: KindNonTriangularFace, Index: -1}
	ErrUnsupportedArity   = &InvalidInputError{Kind: KindUnsupportedArity, Index: -1}
	ErrIndexOutOfRange    = &InvalidInputError{Kind: KindIndexOutOfRange, Index: -1}
	ErrInvalidChannel     = &InvalidInputError{Kind: KindInvalidChannel, Index: -1}
	ErrInvalidIsoValue    = &InvalidInputError{Kind: KindInvalidIsoValue, Index: -1}
	ErrNonFiniteValue     = &InvalidInputError{Kind: KindNonFiniteValue, Index: -1}
)

func NewInvalidInput(kind ErrorKind, index int, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Kind: kind, Index: index, Msg: fmt.Sprintf(format, args...)}
}

func (e *InvalidInputError) Error() string {
	var b strings.Builder
	b.WriteString("invalid input: ")
	b.WriteString(e.Kind.String())
	if e.Index >= 0 {
		fmt.Fprintf(&b, " at %d", e.Index)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

// Is matches any InvalidInputError of the same kind, so the Err* values can
// be used with errors.Is.
func (e *InvalidInputError) Is(target error) bool {
	t, ok := target.(*InvalidInputError)
	return ok && t.Kind == e.Kind
}
