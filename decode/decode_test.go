package decode

import (
	"errors"
	"io"
	"testing"

	"github.com/gozx0/zx0"
	"github.com/gozx0/zx0/encode"
)

func TestDecodeTruncatedInputIsUnexpectedEOF(t *testing.T) {
	input := []byte("the quick brown fox jumps over the lazy dog")
	terminal, err := zx0.Optimize(input, 0, 32640, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	compressed, err := encode.Encode(terminal, input, 0, false)
	if err != nil {
		t.Fatal(err)
	}

	truncated := compressed[:len(compressed)/2]
	if _, err := Decode(truncated, false); err == nil {
		t.Fatal("expected an error decoding truncated input, got nil")
	} else if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestDecodeEmptyInputIsUnexpectedEOF(t *testing.T) {
	if _, err := Decode(nil, false); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

// TestDecodeShortSingleByteLiteralIsNotMisreadAsEmpty checks that a genuine
// one-byte input, whose encoding happens to start with the same leading bit
// as the all-end-marker stream, still decodes to its one literal byte
// rather than being mistaken for an empty parse.
func TestDecodeShortSingleByteLiteralIsNotMisreadAsEmpty(t *testing.T) {
	input := []byte{0x42}
	terminal, err := zx0.Optimize(input, 0, 32640, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	compressed, err := encode.Encode(terminal, input, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	decompressed, err := Decode(compressed, false)
	if err != nil {
		t.Fatal(err)
	}
	if string(decompressed) != string(input) {
		t.Fatalf("Decode(%v) = %v, want %v", compressed, decompressed, input)
	}
}
