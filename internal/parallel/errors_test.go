package parallel

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorCollectorFirstWins(t *testing.T) {
	t.Parallel()
	var ec ErrorCollector
	first := errors.New("first")
	ec.SetError(nil)
	ec.SetError(first)
	ec.SetError(errors.New("second"))

	if !errors.Is(ec.Err(), first) {
		t.Errorf("expected first error, got %v", ec.Err())
	}
}

func TestErrorCollectorZeroValue(t *testing.T) {
	t.Parallel()
	var ec ErrorCollector
	if ec.Err() != nil {
		t.Errorf("zero ErrorCollector should report nil, got %v", ec.Err())
	}
}

func TestRun(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("boom")
	tests := []struct {
		name      string
		fn        func()
		wantErr   bool
		wantIs    error
		wantInMsg string
	}{
		{name: "normal return", fn: func() {}},
		{name: "string panic", fn: func() { panic("bad block") }, wantErr: true, wantInMsg: "bad block"},
		{name: "error panic", fn: func() { panic(sentinel) }, wantErr: true, wantIs: sentinel, wantInMsg: "boom"},
		{
			name: "runtime error",
			fn: func() {
				var s []int
				_ = s[3]
			},
			wantErr:   true,
			wantInMsg: "index out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Run(tt.fn)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var pe *PanicError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *PanicError, got %T (%v)", err, err)
			}
			if len(pe.Stack) == 0 {
				t.Error("expected a captured stack")
			}
			if !strings.Contains(err.Error(), tt.wantInMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantInMsg)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("errors.Is should find %v", tt.wantIs)
			}
		})
	}
}
