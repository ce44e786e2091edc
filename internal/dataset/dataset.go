// Package dataset builds the benchmark input.
package dataset

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/accbench/internal/errors"
)

// chunkSize is the number of elements one fill goroutine writes before it
// checks for cancellation again.
const chunkSize = 1 << 20

// Validate checks that n is a usable dataset size.
func Validate(n int) error {
	if n < 0 {
		return apperrors.ValidationError{Field: "n", Message: "must be non-negative"}
	}
	return nil
}

// Generate returns n copies of value. The slice is filled by up to
// GOMAXPROCS goroutines, one chunk at a time, and the fill stops early when
// ctx is done.
//
// Parameters:
//   - ctx: Cancels a fill in progress.
//   - n: The number of elements.
//   - value: The value of every element.
//
// Returns:
//   - []int: The dataset.
//   - error: A validation error, or ctx.Err() when canceled.
func Generate(ctx context.Context, n, value int) ([]int, error) {
	if err := Validate(n); err != nil {
		return nil, err
	}
	data := make([]int, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunk := data[start:end]
			for i := range chunk {
				chunk[i] = value
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
