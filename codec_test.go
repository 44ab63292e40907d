package dbal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMsgpackCodec_RowPageRoundTrip(t *testing.T) {
	codec := MsgpackCodec{}

	original := []Row{
		{"id": int64(1), "name": "a", "note": nil},
		{"id": int64(2), "name": "b"},
	}

	data, err := codec.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal returned empty data")
	}

	var result []Row
	if err := codec.Unmarshal(data, &result); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("row count mismatch: got %d", len(result))
	}
	assert.Equal(t, "a", result[0]["name"])
	assert.Equal(t, "b", result[1]["name"])
	assert.Nil(t, result[0]["note"])
}

func TestMsgpackCodec_UnmarshalMalformed(t *testing.T) {
	codec := MsgpackCodec{}
	var out []Row
	if err := codec.Unmarshal([]byte{0xc1}, &out); err == nil {
		t.Fatal("expected error for malformed data")
	}
}
