package datamodel

import (
	// to use go:embed
	_ "embed"
	"fmt"

	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/schema"
	shaipld "github.com/storacha/go-sha256/core/ipld"
)

//go:embed failure.ipldsch
var failureSchema []byte

// FailureModel is a generic failure
type FailureModel struct {
	Name    *string
	Message string
	Stack   *string
}

func (f FailureModel) Error() string {
	return f.Message
}

func (f *FailureModel) ToIPLD() (ipld.Node, error) {
	return shaipld.WrapWithRecovery(f, typ)
}

var typ schema.Type

func init() {
	ts, err := ipld.LoadSchemaBytes(failureSchema)
	if err != nil {
		panic(fmt.Errorf("loading failure schema: %w", err))
	}
	typ = ts.TypeByName("Failure")
}

func FailureType() schema.Type {
	return typ
}

func Schema() []byte {
	return failureSchema
}

// Bind binds the IPLD node to a [datamodel.FailureModel]. This works around
// IPLD requiring data to match the schema _exactly_.
//
// Note: the IPLD node is expected to be a map kind, with a "message" key and
// optionally a "name" and "stack" (all values strings).
func Bind(n ipld.Node) FailureModel {
	f := FailureModel{}
	if nn, err := n.LookupByString("name"); err == nil {
		if name, err := nn.AsString(); err == nil {
			f.Name = &name
		}
	}
	if mn, err := n.LookupByString("message"); err == nil {
		if msg, err := mn.AsString(); err == nil {
			f.Message = msg
		}
	}
	if sn, err := n.LookupByString("stack"); err == nil {
		if stack, err := sn.AsString(); err == nil {
			f.Stack = &stack
		}
	}
	return f
}
