// Package vmerr defines the fatal error kinds the decoder and the virtual
// machine can report. Every error in the system is one of these kinds;
// there is no programmatic exception mechanism visible to user programs,
// so every Error is fatal to the Machine instance that produced it.
package vmerr

import "fmt"

// Kind names one of the fatal conditions the decoder or the virtual
// machine can raise.
type Kind int

const (
	UnknownOpcode Kind = iota
	TruncatedInstruction
	MissingTerminator
	StackUnderflow
	ReservedAccess
	BadMarker
	BadFileHandle
	BadFileMode
	ImportNotFound
	TypeMismatch
	Cancelled
)

var kindNames = [...]string{
	UnknownOpcode:        "UnknownOpcode",
	TruncatedInstruction: "TruncatedInstruction",
	MissingTerminator:    "MissingTerminator",
	StackUnderflow:       "StackUnderflow",
	ReservedAccess:       "ReservedAccess",
	BadMarker:            "BadMarker",
	BadFileHandle:        "BadFileHandle",
	BadFileMode:          "BadFileMode",
	ImportNotFound:       "ImportNotFound",
	TypeMismatch:         "TypeMismatch",
	Cancelled:            "Cancelled",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Error is a fatal, named diagnostic. Decoder errors are reported before
// execution begins; runtime errors are reported by the dispatch loop and
// terminate the Machine.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("[%s] %s", e.Kind, e.Msg) }

// New builds an *Error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err is a vmerr.Error of the given kind, so callers can
// branch with errors.Is(err, vmerr.Of(vmerr.BadMarker)) without a type
// assertion.
func (e *Error) Is(target error) bool {
	o, ok := target.(*Error)
	return ok && o.Kind == e.Kind
}

// Of returns a sentinel *Error of the given kind with no message, suitable
// only as a comparison target for errors.Is.
func Of(kind Kind) *Error { return &Error{Kind: kind} }
