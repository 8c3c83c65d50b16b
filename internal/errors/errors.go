// Package errors classifies application failures by kind and keeps the stack
// of the call that raised them.
package errors

import (
	stderrors "errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Kind tells the outer layers how a failure should be surfaced.
type Kind uint8

const (
	KindInternal Kind = iota
	KindInvalid
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is a classified failure. Op names what was being done; it may be empty.
type Error struct {
	Kind  Kind
	Op    string
	Err   error
	trace *goerrors.Error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return e.Op
	case e.Op == "":
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Stack returns the formatted stack captured when the error was built.
// A cause that already carried a go-errors stack keeps that stack.
func (e *Error) Stack() []byte {
	if e.trace == nil {
		return nil
	}
	return e.trace.Stack()
}

// build is called by the exported constructors only, so skip 2 lands on
// their caller.
func build(kind Kind, op string, err error) *Error {
	var cause interface{} = err
	if err == nil {
		cause = op
	}
	return &Error{Kind: kind, Op: op, Err: err, trace: goerrors.Wrap(cause, 2)}
}

func Internal(op string, err error) *Error { return build(KindInternal, op, err) }

func Unavailable(op string, err error) *Error { return build(KindUnavailable, op, err) }

// Invalidf reports bad caller input with a formatted message.
func Invalidf(format string, args ...any) *Error {
	return build(KindInvalid, "", fmt.Errorf(format, args...))
}

// Recovered turns a value recovered from a panic into an internal error.
// Called from the deferred function, the captured stack includes the
// panicking frames.
func Recovered(op string, r any) *Error {
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", r)
	}
	return build(KindInternal, op, err)
}

// KindOf reports the Kind of the first Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
