package accumulate

import (
	"sync"

	"golang.org/x/exp/constraints"

	"github.com/agbru/accbench/internal/parallel"
)

// Addable is the set of element types Accumulate can sum with the built-in
// + operator. The zero value of each type is the additive identity.
type Addable interface {
	constraints.Integer | constraints.Float | constraints.Complex
}

// Sequence is a finite, randomly indexable, read-only view of the input.
// At must be safe for concurrent use for the duration of an Accumulate call.
type Sequence[T any] interface {
	Len() int
	At(i int) T
}

// Slice adapts a plain slice to Sequence.
type Slice[T any] []T

// Len returns the number of elements.
func (s Slice[T]) Len() int { return len(s) }

// At returns the element at index i.
func (s Slice[T]) At(i int) T { return s[i] }

// AccumulateBlock folds the elements of seq in [first, last) into *slot,
// left to right, starting from the value already held by the slot. An empty
// range leaves the slot untouched.
func AccumulateBlock[T Addable](seq Sequence[T], first, last int, slot *T) {
	acc := *slot
	if s, ok := seq.(Slice[T]); ok {
		for _, v := range s[first:last] {
			acc += v
		}
	} else {
		for i := first; i < last; i++ {
			acc += seq.At(i)
		}
	}
	*slot = acc
}

// Sequential is the single-pass reference fold of seq seeded with init.
func Sequential[T Addable](seq Sequence[T], init T) T {
	AccumulateBlock(seq, 0, seq.Len(), &init)
	return init
}

// Accumulate sums seq on top of init using one block per execution unit.
//
// The parallelism degree P comes from AvailableParallelism unless
// WithParallelism forces it. Blocks 0..P-2 are folded on spawned goroutines,
// block P-1 (which absorbs the division remainder) is folded on the calling
// goroutine, then every worker is joined and the P partial results are
// folded in block order starting from init.
//
// If any block panics, Accumulate still waits for every worker, discards
// all partial results and returns a *WorkerPanicError. There is no partial
// success.
//
// Parameters:
//   - seq: The input; it must not be mutated during the call.
//   - init: The seed of the overall fold.
//   - opts: Optional settings (parallelism degree, observer).
//
// Returns:
//   - T: The combined sum.
//   - error: A *WorkerPanicError when a block failed, otherwise nil.
func Accumulate[T Addable](seq Sequence[T], init T, opts ...Option) (T, error) {
	o := newOptions(opts)

	p := o.parallelism
	if p <= 0 {
		p = AvailableParallelism()
	}

	blocks := Partition(seq.Len(), p)
	o.notify(StagePartitioned, blocks)

	results := make([]T, p)

	var (
		wg sync.WaitGroup
		ec parallel.ErrorCollector
	)
	wg.Add(p - 1)
	for _, b := range blocks[:p-1] {
		go func(b Block) {
			defer wg.Done()
			ec.SetError(runBlock(seq, b, &results[b.Index]))
		}(b)
	}

	last := blocks[p-1]
	ec.SetError(runBlock(seq, last, &results[last.Index]))

	wg.Wait()
	o.notify(StageJoined, blocks)

	if err := ec.Err(); err != nil {
		var zero T
		return zero, err
	}

	sum := Sequential(Slice[T](results), init)
	o.notify(StageCombined, blocks)
	return sum, nil
}

// AccumulateSlice is Accumulate over a plain slice.
func AccumulateSlice[T Addable](s []T, init T, opts ...Option) (T, error) {
	return Accumulate[T](Slice[T](s), init, opts...)
}

// MustAccumulate is like Accumulate but panics when a block fails.
func MustAccumulate[T Addable](seq Sequence[T], init T, opts ...Option) T {
	sum, err := Accumulate(seq, init, opts...)
	if err != nil {
		panic(err)
	}
	return sum
}

// runBlock folds one block and reports a panic as a *WorkerPanicError.
func runBlock[T Addable](seq Sequence[T], b Block, slot *T) error {
	err := parallel.Run(func() {
		AccumulateBlock(seq, b.Start, b.End, slot)
	})
	if err != nil {
		return &WorkerPanicError{Block: b, Cause: err}
	}
	return nil
}
