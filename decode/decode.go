// Package decode is the pure inverse of encode: it replays the same
// flag-bit/Elias-gamma grammar the encoder writes and reconstructs the
// original byte stream without re-running any search.
package decode

import (
	"fmt"
	"io"

	"github.com/gozx0/zx0"
)

// endMarker is the offset-MSB value the encoder writes after a 1 flag bit
// as its terminating token; offsets up to 32640 have an MSB of at most 255,
// so none of them reaches it.
const endMarker = 256

// minNonEmptyLen is the fewest bytes Encode can ever produce for a
// non-empty input: the shortest literal-length code (1 bit) plus one
// literal byte (8 bits) plus the trailing end marker (flag bit and its
// 17-bit gamma code), rounded up to whole bytes. A compressed stream
// shorter than this can only be the all-end-marker encoding Encode writes
// for a zero-length input, which omits the leading literal token entirely.
const minNonEmptyLen = 4

// Decode reverses Encode: it reads tokens in the order they were written
// and reconstructs input[skip:] from them. backwards must match the value
// passed to the Encode call that produced compressed.
//
// Decode returns an error wrapping io.ErrUnexpectedEOF if the bit cursor
// runs past the end of compressed before the end marker is read.
func Decode(compressed []byte, backwards bool) ([]byte, error) {
	if len(compressed) < minNonEmptyLen && isEmptyEndMarker(compressed, backwards) {
		return nil, nil
	}

	r := &bitReader{in: compressed}
	var out []byte

	length, err := r.readInterlacedEliasGamma(backwards)
	if err != nil {
		return nil, fmt.Errorf("zx0decode: reading first literal length: %w", err)
	}
	out, err = copyLiteral(out, r, length)
	if err != nil {
		return nil, err
	}

	lastOffset := zx0.InitialOffset
	afterLiteral := true

	for {
		bit, err := r.readBit()
		if err != nil {
			return nil, fmt.Errorf("zx0decode: reading token flag: %w", err)
		}

		if afterLiteral && bit == 0 {
			length, err := r.readInterlacedEliasGamma(backwards)
			if err != nil {
				return nil, fmt.Errorf("zx0decode: reading last-offset length: %w", err)
			}
			out, err = copyMatch(out, lastOffset, length)
			if err != nil {
				return nil, err
			}
			afterLiteral = false
			continue
		}

		if !afterLiteral && bit == 0 {
			length, err := r.readInterlacedEliasGamma(backwards)
			if err != nil {
				return nil, fmt.Errorf("zx0decode: reading literal length: %w", err)
			}
			out, err = copyLiteral(out, r, length)
			if err != nil {
				return nil, err
			}
			afterLiteral = true
			continue
		}

		// bit == 1 in either state: a new-offset match, or the end marker.
		msb, err := r.readInterlacedEliasGamma(backwards)
		if err != nil {
			return nil, fmt.Errorf("zx0decode: reading offset MSB: %w", err)
		}
		if msb == endMarker {
			return out, nil
		}

		raw, err := r.readRawByte()
		if err != nil {
			return nil, fmt.Errorf("zx0decode: reading offset LSB: %w", err)
		}
		base := int(raw &^ 1)
		var m int
		if backwards {
			m = base >> 1
		} else {
			m = 127 - base>>1
		}
		offset := (msb-1)*128 + m + 1

		r.backtrack = true
		r.backtrackByte = raw
		lengthMinus1, err := r.readInterlacedEliasGamma(backwards)
		if err != nil {
			return nil, fmt.Errorf("zx0decode: reading new-offset length: %w", err)
		}

		out, err = copyMatch(out, offset, lengthMinus1+1)
		if err != nil {
			return nil, err
		}
		lastOffset = offset
		afterLiteral = false
	}
}

// isEmptyEndMarker reports whether compressed is exactly the flag bit and
// gamma(endMarker) Encode writes in place of any token when the parse is
// empty. In non-backwards mode the leading bit of that sequence is also the
// leading bit of a length-1 literal run, so callers must only reach here once the length
// check above has already ruled out every non-empty encoding.
func isEmptyEndMarker(compressed []byte, backwards bool) bool {
	r := &bitReader{in: compressed}
	bit, err := r.readBit()
	if err != nil || bit != 1 {
		return false
	}
	value, err := r.readInterlacedEliasGamma(backwards)
	return err == nil && value == endMarker
}

func copyLiteral(out []byte, r *bitReader, length int) ([]byte, error) {
	for i := 0; i < length; i++ {
		b, err := r.readRawByte()
		if err != nil {
			return nil, fmt.Errorf("zx0decode: reading literal byte: %w", err)
		}
		out = append(out, b)
	}
	return out, nil
}

// copyMatch appends length bytes read offset positions behind the current
// end of out, one byte at a time so that overlapping copies (offset <
// length) replicate the way the encoder's matcher intended.
func copyMatch(out []byte, offset, length int) ([]byte, error) {
	if offset > len(out) {
		return nil, fmt.Errorf("zx0decode: match offset %d exceeds decoded length %d: %w", offset, len(out), io.ErrUnexpectedEOF)
	}
	for i := 0; i < length; i++ {
		out = append(out, out[len(out)-offset])
	}
	return out, nil
}
