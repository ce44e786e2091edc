package accumulate

import "fmt"

// WorkerPanicError reports a block whose fold panicked. When it is returned
// no partial result of the call is usable.
type WorkerPanicError struct {
	// Block is the range the failed worker owned.
	Block Block
	// Cause is the recovered panic, a *parallel.PanicError.
	Cause error
}

// Error describes the failed block.
func (e *WorkerPanicError) Error() string {
	return fmt.Sprintf("accumulate: block %d [%d, %d) failed: %v",
		e.Block.Index, e.Block.Start, e.Block.End, e.Cause)
}

// Unwrap returns the recovered panic.
func (e *WorkerPanicError) Unwrap() error { return e.Cause }
