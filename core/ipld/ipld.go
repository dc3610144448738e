package ipld

import (
	"errors"
	"fmt"

	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/node/bindnode"
	"github.com/ipld/go-ipld-prime/schema"
)

type Link = ipld.Link
type Node = ipld.Node

// Builder is a type that can build an IPLD node representation of itself.
type Builder interface {
	ToIPLD() (Node, error)
}

// WrapWithRecovery binds the Go value ptr to the schema type typ and returns
// its representation node. bindnode panics on a mismatch between the Go type
// and the schema, the panic is returned as an error instead.
func WrapWithRecovery(ptr any, typ schema.Type, opts ...bindnode.Option) (nd Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if asStr, ok := r.(string); ok {
				err = errors.New(asStr)
			} else if asErr, ok := r.(error); ok {
				err = asErr
			} else {
				err = fmt.Errorf("unknown panic wrapping %T", ptr)
			}
		}
	}()
	nd = bindnode.Wrap(ptr, typ, opts...).Representation()
	return
}
