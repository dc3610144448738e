package failure

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/ipld/go-ipld-prime/codec/dagjson"
	"github.com/ipld/go-ipld-prime/node/basicnode"
	"github.com/pkg/errors"
	"github.com/storacha/go-sha256/core/ipld"
	"github.com/storacha/go-sha256/core/ipld/codec"
	"github.com/storacha/go-sha256/core/ipld/codec/json"
	"github.com/storacha/go-sha256/core/result/failure/datamodel"
)

// Named is an error that you can read a name from
type Named interface {
	Name() string
}

// WithStackTrace is an error that you can read a stack trace from
type WithStackTrace interface {
	Stack() string
}

// IPLDConvertableError is an error with a custom method to convert to an IPLD Node
type IPLDConvertableError interface {
	error
	ipld.Builder
}

type Failure interface {
	error
	Named
}

type IPLDBuilderFailure interface {
	IPLDConvertableError
	Failure
}

type NamedWithStackTrace interface {
	Named
	WithStackTrace
}

type namedWithStackTrace struct {
	name  string
	stack errors.StackTrace
}

func (n namedWithStackTrace) Name() string {
	return n.name
}

func (n namedWithStackTrace) Stack() string {
	return fmt.Sprintf("%+v", n.stack)
}

// NamedWithCurrentStackTrace captures the stack of the caller of the function
// that calls it, so error constructors do not appear in their own traces.
func NamedWithCurrentStackTrace(name string) NamedWithStackTrace {
	const depth = 32

	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	f := make(errors.StackTrace, n)
	for i := 0; i < n; i++ {
		f[i] = errors.Frame(pcs[i])
	}

	return namedWithStackTrace{name, f}
}

type failure struct {
	model  datamodel.FailureModel
	toIPLD func() (ipld.Node, error)
}

func (f failure) Name() string {
	if f.model.Name == nil {
		return ""
	}
	return *f.model.Name
}

func (f failure) Message() string {
	return f.model.Message
}

func (f failure) Error() string {
	return f.model.Message
}

func (f failure) Stack() string {
	if f.model.Stack == nil {
		return ""
	}
	return *f.model.Stack
}

func (f failure) ToIPLD() (ipld.Node, error) {
	if f.toIPLD != nil {
		return f.toIPLD()
	}
	return f.model.ToIPLD()
}

func FromError(err error) IPLDBuilderFailure {
	model := datamodel.FailureModel{Message: err.Error()}
	if named, ok := err.(Named); ok {
		name := named.Name()
		model.Name = &name
	}
	if withStackTrace, ok := err.(WithStackTrace); ok {
		stack := withStackTrace.Stack()
		model.Stack = &stack
	}
	fail := failure{model: model}
	if builder, ok := err.(ipld.Builder); ok {
		fail.toIPLD = builder.ToIPLD
	}
	return fail
}

var (
	encoder codec.Encoder = json.Codec
	decoder codec.Decoder = json.Codec
)

// Encode renders err as dag-json. Errors that are not already failures are
// converted with [FromError] first.
func Encode(err error) ([]byte, error) {
	f, ok := err.(IPLDBuilderFailure)
	if !ok {
		f = FromError(err)
	}
	if plain, ok := f.(failure); ok && plain.toIPLD == nil {
		b, err := encoder.Encode(&plain.model, datamodel.FailureType())
		if err != nil {
			return nil, fmt.Errorf("encoding failure: %w", err)
		}
		return b, nil
	}
	nd, err := f.ToIPLD()
	if err != nil {
		return nil, fmt.Errorf("building failure node: %w", err)
	}
	var buf bytes.Buffer
	if err := dagjson.Encode(nd, &buf); err != nil {
		return nil, fmt.Errorf("encoding failure: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads a dag-json encoded failure. Unknown fields are ignored.
func Decode(b []byte) (IPLDBuilderFailure, error) {
	var model datamodel.FailureModel
	err := decoder.Decode(b, &model, datamodel.FailureType())
	if err == nil {
		return failure{model: model}, nil
	}

	nb := basicnode.Prototype.Any.NewBuilder()
	if err := dagjson.Decode(nb, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("decoding failure: %w", err)
	}
	return failure{model: datamodel.Bind(nb.Build())}, nil
}
