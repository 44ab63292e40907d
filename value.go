package dbal

type valueKind uint8

const (
	kindNull valueKind = iota
	kindString
	kindInt
	kindBool
	kindBinary
)

// Value is a typed statement parameter. The kind is fixed at construction,
// so a binding can never carry a mismatched type hint. The zero Value is
// SQL NULL.
type Value struct {
	kind valueKind
	str  string
	num  int64
	flag bool
	raw  []byte
}

// String returns a text parameter.
func String(s string) Value { return Value{kind: kindString, str: s} }

// Int returns an integer parameter.
func Int(n int64) Value { return Value{kind: kindInt, num: n} }

// Bool returns a boolean parameter.
func Bool(b bool) Value { return Value{kind: kindBool, flag: b} }

// Null returns a SQL NULL parameter.
func Null() Value { return Value{kind: kindNull} }

// Binary returns a binary-safe parameter. The byte slice is passed to the
// driver as-is; callers must not mutate it until the statement executed.
func Binary(p []byte) Value { return Value{kind: kindBinary, raw: p} }

// arg converts the value into the form database/sql drivers accept.
func (v Value) arg() any {
	switch v.kind {
	case kindString:
		return v.str
	case kindInt:
		return v.num
	case kindBool:
		return v.flag
	case kindBinary:
		return v.raw
	default:
		return nil
	}
}
