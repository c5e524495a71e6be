package zx0

// scanOffsetRange evaluates the literal-run, last-offset-match, and
// new-offset-match transitions for every offset in [lo, hi] at the current
// index, and returns the minimum-Bits block produced in that range (or nil
// if none was).
//
// It mutates only state.lastLiteral[lo:hi+1], state.lastMatch[lo:hi+1], and
// state.matchLength[lo:hi+1] — disjoint slices when called concurrently
// across shards for the same index — plus bl, which is private to the
// caller. It reads state.optimal[0:index] (fully written by prior index
// steps) and input, both read-only this step.
func scanOffsetRange(arena *blockArena, state *searchState, bl *bestLengthTable, input []byte, skip, index, lo, hi int) *Block {
	var best *Block

	for offset := lo; offset <= hi; offset++ {
		if index != skip && index >= offset && input[index] == input[index-offset] {
			// Case A: the match at this offset continues (or starts).

			// A1: repeat-offset literal-to-match. A literal run just ended
			// at this offset; extend it into a match using the same
			// offset, which is cheaper because the offset doesn't need to
			// be re-encoded.
			if lit := state.lastLiteral[offset]; lit != nil {
				length := index - lit.Index
				bits := lit.Bits + 1 + eliasGammaBits(length)
				m := arena.alloc(bits, index, offset, lit)
				state.lastMatch[offset] = m
				if best == nil || best.Bits > bits {
					best = m
				}
			}

			// A2: new-offset match. Track the contiguous run length at
			// this offset and, once it's long enough to matter, pick the
			// cheapest length <= the run via the shared best-length table.
			state.matchLength[offset]++
			if state.matchLength[offset] > 1 {
				length := bl.length(state.optimal, index, state.matchLength[offset])
				bits := state.optimal[index-length].Bits + 8 +
					eliasGammaBits((offset-1)/128+1) + eliasGammaBits(length-1)

				last := state.lastMatch[offset]
				if last == nil || last.Index != index || last.Bits > bits {
					m := arena.alloc(bits, index, offset, state.optimal[index-length])
					state.lastMatch[offset] = m
					if best == nil || best.Bits > bits {
						best = m
					}
				}
			}
		} else {
			// Case B: mismatch (or out of range, or the very first index).
			state.matchLength[offset] = 0
			if last := state.lastMatch[offset]; last != nil {
				length := index - last.Index
				bits := last.Bits + 1 + eliasGammaBits(length) + 8*length
				lit := arena.alloc(bits, index, 0, last)
				state.lastLiteral[offset] = lit
				if best == nil || best.Bits > bits {
					best = lit
				}
			}
		}
	}

	return best
}
