package jsoniter

import (
	"testing"
)

func TestJsoniterCodec_RowPageRoundTrip(t *testing.T) {
	codec := JsoniterCodec{}

	original := []map[string]any{
		{"id": int64(1), "name": "a", "note": nil},
		{"id": int64(2), "name": "b"},
	}

	data, err := codec.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var result []map[string]any
	if err := codec.Unmarshal(data, &result); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("row count mismatch: got %d", len(result))
	}
	if result[0]["name"] != "a" || result[1]["name"] != "b" {
		t.Errorf("name column mismatch: %v", result)
	}
	// JSON numbers decode as float64; that is the documented trade-off of
	// this codec.
	if result[0]["id"] != float64(1) {
		t.Errorf("expected float64(1), got %T %v", result[0]["id"], result[0]["id"])
	}
}

func TestJsoniterCodec_UnmarshalMalformed(t *testing.T) {
	codec := JsoniterCodec{}
	var out []map[string]any
	if err := codec.Unmarshal([]byte(`{"broken"`), &out); err == nil {
		t.Fatal("expected error for malformed data")
	}
}
