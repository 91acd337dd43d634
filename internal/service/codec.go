package service

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec serializes plain Go structs. Connect's built-in JSON codec only
// accepts protobuf messages; this one replaces it under the same name so
// browsers can keep posting application/json.
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// WithJSON returns the option both handlers and clients need to speak the
// tripwrap JSON wire format.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
