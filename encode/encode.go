// Package encode serializes the parse chosen by zx0.Optimize into the ZX0
// wire format.
package encode

import (
	"fmt"

	"github.com/gozx0/zx0"
)

// Encode walks terminal's Chain back-pointer to the origin and emits one
// token per block: a literal run, a last-offset match (cheaper — the
// offset is implicit), or a new-offset match, followed by a trailing end
// marker. It does not mutate terminal or any block it chains to; it
// collects them into a slice and walks that instead of reversing the
// chain in place.
//
// backwards flips the bit polarity the format uses for "compress from the
// end of the file" mode. Encode never reorders bytes itself — the caller
// is responsible for reversing the input before calling zx0.Optimize and
// Encode, and reversing the result afterward.
func Encode(terminal *zx0.Block, input []byte, skip int, backwards bool) ([]byte, error) {
	if terminal == nil {
		return nil, fmt.Errorf("zx0encode: terminal block is nil")
	}
	if skip < 0 || skip > len(input) {
		return nil, fmt.Errorf("zx0encode: skip %d out of range [0, %d]", skip, len(input))
	}

	nodes := chainToSlice(terminal)

	w := &bitWriter{out: make([]byte, 0, (terminal.Bits+25)/8)}
	lastOffset := zx0.InitialOffset
	pos := skip

	for i := 1; i < len(nodes); i++ {
		prev, cur := nodes[i-1], nodes[i]
		length := cur.Index - prev.Index

		switch {
		case cur.Offset == 0:
			// Literal run: optional flag bit (omitted for the very first
			// token, which is always a literal run), length, raw bytes.
			if i > 1 {
				w.writeBit(0)
			}
			w.writeInterlacedEliasGamma(length, backwards)
			for ; pos <= cur.Index; pos++ {
				w.writeByte(input[pos])
			}

		case cur.Offset == lastOffset:
			// Last-offset match: flag bit 0, length only.
			w.writeBit(0)
			w.writeInterlacedEliasGamma(length, backwards)
			pos += length

		default:
			// New-offset match: flag bit 1, offset MSB via Elias-gamma,
			// offset LSB as a raw byte, then length-1 via Elias-gamma.
			w.writeBit(1)
			w.writeInterlacedEliasGamma((cur.Offset-1)/128+1, backwards)
			if backwards {
				w.writeByte(byte(((cur.Offset - 1) % 128) << 1))
			} else {
				w.writeByte(byte((255 - (cur.Offset-1)%128) << 1))
			}
			w.backtrack = true
			w.writeInterlacedEliasGamma(length-1, backwards)
			pos += length
			lastOffset = cur.Offset
		}
	}

	// End marker: a 1 flag bit and an offset-MSB value (256) that no offset
	// up to 32640 produces.
	w.writeBit(1)
	w.writeInterlacedEliasGamma(256, backwards)

	return w.out, nil
}

// chainToSlice walks terminal.Chain back to the origin and returns the
// blocks in forward order, origin first.
func chainToSlice(terminal *zx0.Block) []*zx0.Block {
	var reversed []*zx0.Block
	for b := terminal; b != nil; b = b.Chain {
		reversed = append(reversed, b)
	}
	nodes := make([]*zx0.Block, len(reversed))
	for i, b := range reversed {
		nodes[len(reversed)-1-i] = b
	}
	return nodes
}
