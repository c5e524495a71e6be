package zx0

// searchState holds the per-offset arrays and the per-index optimal-end
// table that the scan mutates as it advances through the input. Per-offset
// slices are partitioned by offset range when threads > 1, so two shards
// never touch the same slice element within one index step.
type searchState struct {
	lastLiteral []*Block // most recent block ending in a literal run, by offset
	lastMatch   []*Block // most recent block ending in a match, by offset
	matchLength []int    // current contiguous run length at each offset
	optimal     []*Block // best block ending at each index
}

func newSearchState(inputLen, offsetCapacity int) *searchState {
	return &searchState{
		lastLiteral: make([]*Block, offsetCapacity+1),
		lastMatch:   make([]*Block, offsetCapacity+1),
		matchLength: make([]int, offsetCapacity+1),
		optimal:     make([]*Block, inputLen),
	}
}
