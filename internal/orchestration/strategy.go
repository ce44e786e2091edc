package orchestration

import (
	"github.com/agbru/accbench/internal/accumulate"
	"github.com/agbru/accbench/internal/logging"
)

// Strategy names reported in results and metrics.
const (
	SequentialName = "sequential"
	ParallelName   = "parallel"
)

// Strategy sums a dataset.
type Strategy interface {
	Name() string
	Sum(seq []int, init int) (int, error)
}

// SequentialStrategy is the single-pass reference fold.
type SequentialStrategy struct{}

// Name returns "sequential".
func (SequentialStrategy) Name() string { return SequentialName }

// Sum folds seq left to right starting from init.
func (SequentialStrategy) Sum(seq []int, init int) (int, error) {
	return accumulate.Sequential(accumulate.Slice[int](seq), init), nil
}

// ParallelStrategy sums through accumulate.Accumulate.
type ParallelStrategy struct {
	// Parallelism forces the block count; 0 asks the environment on every call.
	Parallelism int
	// Logger, when set, receives the partition of each call at debug level.
	Logger logging.Logger
}

// Name returns "parallel".
func (s ParallelStrategy) Name() string { return ParallelName }

// Sum runs the parallel reduction.
func (s ParallelStrategy) Sum(seq []int, init int) (int, error) {
	opts := []accumulate.Option{accumulate.WithParallelism(s.Parallelism)}
	if s.Logger != nil {
		opts = append(opts, accumulate.WithObserver(s.observe))
	}
	return accumulate.AccumulateSlice(seq, init, opts...)
}

func (s ParallelStrategy) observe(stage accumulate.Stage, blocks []accumulate.Block) {
	if stage != accumulate.StagePartitioned || len(blocks) == 0 {
		return
	}
	last := blocks[len(blocks)-1]
	s.Logger.Debug("partitioned",
		logging.Int("blocks", len(blocks)),
		logging.Int("block_size", blocks[0].Len()),
		logging.Int("last_block_size", last.Len()),
	)
}
