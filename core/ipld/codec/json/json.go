package json

import (
	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/codec/dagjson"
	"github.com/ipld/go-ipld-prime/node/bindnode"
	"github.com/ipld/go-ipld-prime/schema"
	"github.com/multiformats/go-multicodec"
	"github.com/storacha/go-sha256/core/ipld/codec"
)

// Code is the dag-json multicodec.
const Code = uint64(multicodec.DagJson)

type jsonCodec struct{}

func (jsonCodec) Code() uint64 {
	return Code
}

func (jsonCodec) Encode(val any, typ schema.Type, opts ...bindnode.Option) ([]byte, error) {
	return Encode(val, typ, opts...)
}

func (jsonCodec) Decode(b []byte, bind any, typ schema.Type, opts ...bindnode.Option) error {
	return Decode(b, bind, typ, opts...)
}

var Codec = jsonCodec{}

var (
	_ codec.Encoder = Codec
	_ codec.Decoder = Codec
)

// Encode binds val to typ and serializes it as dag-json.
func Encode(val any, typ schema.Type, opts ...bindnode.Option) ([]byte, error) {
	return ipld.Marshal(dagjson.Encode, val, typ, opts...)
}

// Decode parses dag-json into bind, which must be a pointer to a Go value
// matching typ.
func Decode(b []byte, bind any, typ schema.Type, opts ...bindnode.Option) error {
	_, err := ipld.Unmarshal(b, dagjson.Decode, bind, typ, opts...)
	return err
}
