// Package parallel provides small primitives shared by code that fans work
// out to goroutines: first-error collection and panic capture.
package parallel

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// ErrorCollector records the first non-nil error reported by a set of
// concurrent goroutines. Later errors are dropped. The zero value is ready
// to use.
type ErrorCollector struct {
	once sync.Once
	err  error
}

// SetError records err if it is the first non-nil error seen.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.once.Do(func() {
		c.err = err
	})
}

// Err returns the first recorded error, or nil.
// It must only be called after every writer has been joined.
func (c *ErrorCollector) Err() error {
	return c.err
}

// PanicError is a recovered panic converted to an error value.
type PanicError struct {
	// Value is the value passed to panic.
	Value any
	// Stack is the goroutine stack captured at recovery time.
	Stack []byte
}

// Error returns a message describing the recovered value.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Run calls fn and converts a panic raised by fn into a *PanicError.
// It returns nil when fn returns normally.
func Run(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	fn()
	return nil
}
