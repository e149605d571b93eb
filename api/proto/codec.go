package proto

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is negotiated via the grpc content-subtype (the "+json" in
// "application/grpc+json"); a client selects it with
// grpc.CallContentSubtype(codecName), and the server picks the matching
// registered codec per request without any server-side configuration.
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
