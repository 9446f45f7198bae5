// Package rpc defines the DiaryKeeper gRPC contract shared by the server and
// the client: message types, the service descriptor and a JSON codec.
//
// Messages are plain Go structs marshalled as JSON, so the contract lives in
// Go code instead of generated protobuf stubs. Clients select the codec with
// CallOptions().
package rpc

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype under which the JSON codec is registered.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// CallOptions returns the default call options a client connection needs to
// talk to a DiaryKeeper server.
func CallOptions() []grpc.CallOption {
	return []grpc.CallOption{grpc.CallContentSubtype(CodecName)}
}
