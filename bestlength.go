package zx0

// A bestLengthTable tracks, for each reachable match length L, the length
// <= L that minimizes optimal[index-length].Bits + eliasGammaBits(length-1)
// at the index currently being scanned. It is extended lazily up to the
// largest match length a caller asks for and reset to size 2 at the start
// of each index step.
//
// Each parallel shard owns its own bestLengthTable rather than sharing one
// array across goroutines: the values written for a given length are the
// same no matter which shard computes them (they depend only on
// optimal[index-1..index-L], which every shard treats as read-only), so a
// shared table would be safe by write-idempotence, but a table per shard
// avoids relying on that argument at all.
type bestLengthTable struct {
	values []int
	size   int
}

func newBestLengthTable(capacity int) *bestLengthTable {
	t := &bestLengthTable{values: make([]int, capacity)}
	t.reset()
	return t
}

func (t *bestLengthTable) reset() {
	t.size = 2
	if len(t.values) > 2 {
		t.values[2] = 2
	}
}

// length returns bestLength[target], extending the table up through target
// if it hasn't been computed yet for this index.
func (t *bestLengthTable) length(optimal []*Block, index, target int) int {
	if t.size < target {
		bits := optimal[index-t.values[t.size]].Bits + eliasGammaBits(t.values[t.size]-1)
		for {
			t.size++
			bits2 := optimal[index-t.size].Bits + eliasGammaBits(t.size-1)
			if bits2 <= bits {
				t.values[t.size] = t.size
				bits = bits2
			} else {
				t.values[t.size] = t.values[t.size-1]
			}
			if t.size >= target {
				break
			}
		}
	}
	return t.values[target]
}
