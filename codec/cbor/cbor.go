package cbor

import (
	"github.com/fxamacker/cbor/v2"
)

// CborCodec serializes cached row pages as CBOR. Denser than JSON and,
// unlike gob, happy with map[string]any values.
type CborCodec struct{}

func (CborCodec) Marshal(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

func (CborCodec) Unmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}
