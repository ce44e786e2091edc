// Package accumulate implements a generic parallel sum.
//
// Accumulate splits a random-access sequence into one contiguous block per
// available execution unit, folds every block but the last on its own
// goroutine, folds the last block on the calling goroutine, joins the
// workers and finally folds the per-block partial results, in block order,
// on top of the caller's initial value.
//
// The result equals the sequential fold whenever the element type's
// addition is associative and commutative, which holds exactly for
// integers. Floating point sums may differ from the sequential fold in the
// last bits because the summation order differs.
package accumulate
