package dbal

import (
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec defines the serialization used for cached row pages.
// Implementations must round-trip []Row values.
type Codec interface {
	// Marshal converts a Go value to a byte slice.
	Marshal(v any) ([]byte, error)

	// Unmarshal converts a byte slice back into the value pointed to by v.
	Unmarshal(data []byte, v any) error
}

// MsgpackCodec implements Codec using MessagePack, the default for cached
// rows. Stateless and safe for concurrent use.
type MsgpackCodec struct{}

// Marshal serializes a Go value to a MessagePack-encoded byte slice.
func (MsgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal deserializes a MessagePack-encoded byte slice into v, which
// must be a pointer.
func (MsgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

// CreateKey derives a deterministic cache key from a SQL text and its
// parameters. Identical query/parameter pairs always map to the same key,
// so cached pages are shared across adapters using the same Storage.
func CreateKey(query string, args ...Value) string {
	size := len(query)
	for _, v := range args {
		switch v.kind {
		case kindString:
			size += len(v.str)
		case kindInt:
			size += len(strconv.FormatInt(v.num, 10))
		case kindBool:
			size += 1
		case kindBinary:
			size += len(v.raw)
		default:
			size += 4
		}
	}

	var b strings.Builder
	b.Grow(size)
	b.WriteString(query)
	for _, v := range args {
		switch v.kind {
		case kindString:
			b.WriteString(v.str)
		case kindInt:
			b.WriteString(strconv.FormatInt(v.num, 10))
		case kindBool:
			if v.flag {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		case kindBinary:
			b.Write(v.raw)
		default:
			b.WriteString("null")
		}
	}
	return b.String()
}
