package txparser

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEnd is returned (wrapped) whenever a reader is asked for more
// bytes than remain in its buffer.
var ErrUnexpectedEnd = errors.New("unexpected end of data")

// errAmbiguousInference marks a transfer-inference pass that found zero or
// more than two net mints for the actor. It is the expected outcome for
// non-swap instructions and is never surfaced outside diagnostics.
var errAmbiguousInference = errors.New("transfer inference ambiguous")

// StructuralError reports a malformed or adversarial input: an account index
// pointing outside the account sequence, or an inner-instruction set
// referencing a non-existent outer instruction. It aborts parsing of the
// affected instruction only.
type StructuralError struct {
	OuterIndex int
	Detail     string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error at instruction %d: %s", e.OuterIndex, e.Detail)
}

// DecodeError reports a payload the matched decoder could not make sense of:
// truncated data, a length prefix past the end of the buffer, or a field
// outside its representable range. Local to one decoder invocation.
type DecodeError struct {
	Dex    SwapType
	Detail string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s decode: %s: %v", e.Dex, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s decode: %s", e.Dex, e.Detail)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErrf(dex SwapType, err error, format string, args ...interface{}) error {
	return &DecodeError{Dex: dex, Detail: fmt.Sprintf(format, args...), Err: err}
}

func structuralErrf(outerIndex int, format string, args ...interface{}) error {
	return &StructuralError{OuterIndex: outerIndex, Detail: fmt.Sprintf(format, args...)}
}
