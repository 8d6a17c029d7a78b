package resp

import (
	"bufio"
	"bytes"
	"testing"
)

func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := Encode(w, v); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	r := bufio.NewReader(&buf)
	got, err := Decode(r)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return got
}

func TestRoundTripSimpleString(t *testing.T) {
	v := SimpleStringValue("PONG")
	got := roundTrip(t, v)
	if got.Kind != SimpleString || got.Str != "PONG" {
		t.Errorf("got %+v, want simple string PONG", got)
	}
}

func TestRoundTripError(t *testing.T) {
	v := ErrorValue("ERR boom")
	got := roundTrip(t, v)
	if got.Kind != Error || got.Str != "ERR boom" {
		t.Errorf("got %+v, want error ERR boom", got)
	}
}

func TestRoundTripInteger(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 9223372036854775807, -9223372036854775808} {
		v := IntegerValue(n)
		got := roundTrip(t, v)
		if got.Kind != Integer || got.Int != n {
			t.Errorf("roundTrip(%d) = %+v", n, got)
		}
	}
}

func TestRoundTripBulkString(t *testing.T) {
	payloads := [][]byte{
		[]byte("Hello"),
		[]byte(""),
		[]byte("has\r\nCRLF\x00and nul"),
	}
	for _, p := range payloads {
		v := BulkValue(p)
		got := roundTrip(t, v)
		if got.Kind != BulkString || got.IsNull || !bytes.Equal(got.Bulk, p) {
			t.Errorf("roundTrip(%q) = %+v", p, got)
		}
	}
}

func TestRoundTripNullBulk(t *testing.T) {
	got := roundTrip(t, NullBulk())
	if got.Kind != BulkString || !got.IsNull {
		t.Errorf("got %+v, want null bulk", got)
	}
}

func TestRoundTripArray(t *testing.T) {
	v := ArrayValue([]Value{
		BulkStringValue("SET"),
		BulkStringValue("key"),
		BulkStringValue("value"),
	})
	got := roundTrip(t, v)
	if got.Kind != Array || len(got.Items) != 3 {
		t.Fatalf("got %+v", got)
	}
	if string(got.Items[0].Bulk) != "SET" {
		t.Errorf("Items[0] = %+v", got.Items[0])
	}
}

func TestRoundTripNullArray(t *testing.T) {
	got := roundTrip(t, NullArray())
	if got.Kind != Array || !got.IsNull {
		t.Errorf("got %+v, want null array", got)
	}
}

func TestRoundTripNestedArray(t *testing.T) {
	v := ArrayValue([]Value{
		ArrayValue([]Value{IntegerValue(1), IntegerValue(2)}),
		BulkStringValue("leaf"),
	})
	got := roundTrip(t, v)
	if got.Kind != Array || len(got.Items) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got.Items[0].Kind != Array || len(got.Items[0].Items) != 2 {
		t.Errorf("nested array = %+v", got.Items[0])
	}
}

func TestDecodeMalformedBadTag(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte("%foo\r\n")))
	_, err := Decode(r)
	if err != ErrMalformed {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestDecodeMalformedBadLength(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte("$abc\r\n")))
	_, err := Decode(r)
	if err != ErrMalformed {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestDecodeMalformedNegativeLength(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte("$-2\r\nxx\r\n")))
	_, err := Decode(r)
	if err != ErrMalformed {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestDecodeNeedMoreIncompleteBulk(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte("$5\r\nHel")))
	_, err := Decode(r)
	if err != ErrNeedMore {
		t.Errorf("err = %v, want ErrNeedMore", err)
	}
}

func TestDecodeEOFOnEmptyStream(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader(nil))
	_, err := Decode(r)
	if err != ErrEOF {
		t.Errorf("err = %v, want ErrEOF", err)
	}
}

func TestDecodeArrayCommandBytes(t *testing.T) {
	raw := "*1\r\n$4\r\nPING\r\n"
	r := bufio.NewReader(bytes.NewReader([]byte(raw)))
	v, err := Decode(r)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.Kind != Array || len(v.Items) != 1 || string(v.Items[0].Bulk) != "PING" {
		t.Errorf("got %+v", v)
	}
}

func TestEncodePingReply(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := Encode(w, SimpleStringValue("PONG")); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	w.Flush()
	if buf.String() != "+PONG\r\n" {
		t.Errorf("got %q, want %q", buf.String(), "+PONG\r\n")
	}
}
