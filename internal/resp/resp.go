// Package resp implements a decoder and encoder for the subset of the
// Redis Serialization Protocol this server speaks: simple strings, errors,
// integers, bulk strings, and arrays.
package resp

import "errors"

// Kind identifies which of the five RESP value shapes a Value holds.
type Kind byte

const (
	SimpleString Kind = '+'
	Error        Kind = '-'
	Integer      Kind = ':'
	BulkString   Kind = '$'
	Array        Kind = '*'
)

// Value is a decoded or to-be-encoded RESP value.
//
// Only the field matching Kind is meaningful:
//   - SimpleString, Error: Str
//   - Integer: Int
//   - BulkString: Bulk (nil Bulk with IsNull set encodes/decodes as the null bulk, "$-1\r\n")
//   - Array: Items (nil Items with IsNull set encodes/decodes as the null array, "*-1\r\n")
type Value struct {
	Kind   Kind
	Str    string
	Int    int64
	Bulk   []byte
	Items  []Value
	IsNull bool
}

// Protocol limits, mirrored from the RESP handling this module is based on.
const (
	// MaxArrayLen bounds the number of elements accepted in a single array.
	MaxArrayLen = 1024
	// MaxBulkLen bounds the length of a single bulk string payload.
	MaxBulkLen = 512 * 1024
	// MaxLineLen bounds the length, CRLF included, of every line the
	// decoder reads: length headers (e.g. "$123\r\n") and also the
	// payload lines of simple strings, errors and integers. A longer
	// line is decoded as ErrMalformed, so a simple string or error longer
	// than MaxLineLen-2 bytes does not survive an encode/decode round trip.
	MaxLineLen = 64
	// MaxDepth bounds array nesting depth.
	MaxDepth = 32
)

var (
	// ErrNeedMore indicates the source was exhausted before a full value
	// could be decoded; the caller should refill its buffer and retry.
	ErrNeedMore = errors.New("resp: need more data")
	// ErrMalformed indicates the bytes read so far violate the grammar;
	// the connection producing them must be terminated.
	ErrMalformed = errors.New("resp: malformed input")
	// ErrEOF indicates a clean end of stream before any byte of a value
	// was read.
	ErrEOF = errors.New("resp: eof")
)

// NullBulk returns the null bulk string value ($-1\r\n).
func NullBulk() Value {
	return Value{Kind: BulkString, IsNull: true}
}

// NullArray returns the null array value (*-1\r\n).
func NullArray() Value {
	return Value{Kind: Array, IsNull: true}
}

// SimpleStringValue returns a simple string value.
func SimpleStringValue(s string) Value {
	return Value{Kind: SimpleString, Str: s}
}

// ErrorValue returns an error value.
func ErrorValue(s string) Value {
	return Value{Kind: Error, Str: s}
}

// IntegerValue returns an integer value.
func IntegerValue(n int64) Value {
	return Value{Kind: Integer, Int: n}
}

// BulkValue returns a bulk string value wrapping b. A nil b produces the
// same wire form as NullBulk.
func BulkValue(b []byte) Value {
	if b == nil {
		return NullBulk()
	}
	return Value{Kind: BulkString, Bulk: b}
}

// BulkStringValue returns a bulk string value wrapping s.
func BulkStringValue(s string) Value {
	return Value{Kind: BulkString, Bulk: []byte(s)}
}

// ArrayValue returns an array value wrapping items.
func ArrayValue(items []Value) Value {
	return Value{Kind: Array, Items: items}
}
