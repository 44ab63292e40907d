package jsoniter

import (
	jsoniter "github.com/json-iterator/go"
)

// JsoniterCodec serializes cached row pages as JSON. Handy when cache
// contents need to be human-readable; note that integers come back as
// float64, as with any JSON decoder.
type JsoniterCodec struct{}

func (JsoniterCodec) Marshal(v any) ([]byte, error) {
	return jsoniter.Marshal(v)
}

func (JsoniterCodec) Unmarshal(data []byte, v any) error {
	return jsoniter.Unmarshal(data, v)
}
