package sha256

import (
	"fmt"

	"github.com/storacha/go-sha256/core/ipld"
	"github.com/storacha/go-sha256/core/result/failure"
	fdm "github.com/storacha/go-sha256/core/result/failure/datamodel"
)

const (
	LengthOverflowErrorName = "LengthOverflow"
	InvalidStateErrorName   = "InvalidState"
)

var (
	// ErrLengthOverflow matches any [LengthOverflowError] with errors.Is.
	ErrLengthOverflow error = lengthOverflowError{}
	// ErrInvalidState matches any [InvalidStateError] with errors.Is.
	ErrInvalidState error = invalidStateError{}
)

type LengthOverflowError interface {
	failure.IPLDBuilderFailure
	failure.WithStackTrace
	Length() uint64
}

type lengthOverflowError struct {
	length uint64
	stack  string
}

func (e lengthOverflowError) Name() string {
	return LengthOverflowErrorName
}

func (e lengthOverflowError) Error() string {
	return fmt.Sprintf("message length %d bytes does not fit a 64-bit bit count (max %d bytes)", e.length, uint64(maxLen))
}

func (e lengthOverflowError) Length() uint64 {
	return e.length
}

func (e lengthOverflowError) Stack() string {
	return e.stack
}

func (e lengthOverflowError) Is(target error) bool {
	named, ok := target.(failure.Named)
	return ok && named.Name() == LengthOverflowErrorName
}

func (e lengthOverflowError) ToIPLD() (ipld.Node, error) {
	return toIPLD(e)
}

// NewLengthOverflowError reports a message of length bytes whose bit count
// cannot be represented in the 64-bit length field.
func NewLengthOverflowError(length uint64) LengthOverflowError {
	return lengthOverflowError{length, failure.NamedWithCurrentStackTrace(LengthOverflowErrorName).Stack()}
}

type InvalidStateError interface {
	failure.IPLDBuilderFailure
	failure.WithStackTrace
	Op() string
}

type invalidStateError struct {
	op    string
	stack string
}

func (e invalidStateError) Name() string {
	return InvalidStateErrorName
}

func (e invalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: hasher already finalized", e.op)
}

func (e invalidStateError) Op() string {
	return e.op
}

func (e invalidStateError) Stack() string {
	return e.stack
}

func (e invalidStateError) Is(target error) bool {
	named, ok := target.(failure.Named)
	return ok && named.Name() == InvalidStateErrorName
}

func (e invalidStateError) ToIPLD() (ipld.Node, error) {
	return toIPLD(e)
}

// NewInvalidStateError reports op being called on a finalized hasher.
func NewInvalidStateError(op string) InvalidStateError {
	return invalidStateError{op, failure.NamedWithCurrentStackTrace(InvalidStateErrorName).Stack()}
}

func toIPLD(f interface {
	error
	failure.NamedWithStackTrace
}) (ipld.Node, error) {
	name := f.Name()
	stack := f.Stack()
	mdl := fdm.FailureModel{
		Name:    &name,
		Message: f.Error(),
		Stack:   &stack,
	}
	return mdl.ToIPLD()
}
