package zx0

import "sync"

// shardRange is a contiguous slice of the offset space [lo, hi] assigned to
// one worker for one index step.
type shardRange struct {
	lo, hi int
}

// partitionShards splits [1, maxOffset] into ceil(maxOffset/shardSize)
// contiguous ranges, where shardSize = maxOffset/threads + 1. When maxOffset
// is smaller than threads, shardSize is 1 and there are only maxOffset
// one-offset shards, so some workers get no job for that index — no
// special-casing needed.
func partitionShards(maxOffset, threads int) []shardRange {
	if threads < 1 {
		threads = 1
	}
	shardSize := maxOffset/threads + 1

	var shards []shardRange
	for lo := 1; lo <= maxOffset; lo += shardSize {
		hi := lo + shardSize - 1
		if hi > maxOffset {
			hi = maxOffset
		}
		shards = append(shards, shardRange{lo, hi})
	}
	return shards
}

// shardPool runs the per-index scan across a fixed set of worker
// goroutines, reused for the lifetime of one Optimize call so that
// goroutine and channel setup cost is paid once rather than once per
// index. Each worker owns its own blockArena and bestLengthTable,
// matching the "per-task bestLength, never shared" design decision.
type shardPool struct {
	jobs    chan shardJob
	wg      sync.WaitGroup
	workers int
}

type shardJob struct {
	index      int
	rng        shardRange
	resultSlot *[]*Block
	slot       int
	done       *sync.WaitGroup
}

func newShardPool(workers int, arena func() *blockArena, input []byte, skip int, state *searchState) *shardPool {
	p := &shardPool{
		jobs:    make(chan shardJob, workers*2),
		workers: workers,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			workerArena := arena()
			bl := newBestLengthTable(len(state.optimal))
			for job := range p.jobs {
				bl.reset()
				block := scanOffsetRange(workerArena, state, bl, input, skip, job.index, job.rng.lo, job.rng.hi)
				(*job.resultSlot)[job.slot] = block
				job.done.Done()
			}
		}()
	}
	return p
}

// run dispatches one job per shard for this index and blocks until every
// shard has finished, then merges the per-shard optima in ascending-offset
// order: the same order a single-threaded scan would encounter them in,
// which is what makes the strict "<" tie-break (first minimum wins)
// produce identical results regardless of thread count.
func (p *shardPool) run(index int, shards []shardRange) *Block {
	results := make([]*Block, len(shards))
	var done sync.WaitGroup
	done.Add(len(shards))
	for i, rng := range shards {
		p.jobs <- shardJob{index: index, rng: rng, resultSlot: &results, slot: i, done: &done}
	}
	done.Wait()

	var best *Block
	for _, block := range results {
		if block != nil && (best == nil || block.Bits < best.Bits) {
			best = block
		}
	}
	return best
}

func (p *shardPool) close() {
	close(p.jobs)
	p.wg.Wait()
}
