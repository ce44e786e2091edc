package accumulate

// Stage identifies a point in the life of one Accumulate call.
type Stage int

const (
	// StagePartitioned fires once the blocks are computed, before any
	// worker starts.
	StagePartitioned Stage = iota
	// StageJoined fires once every worker has returned.
	StageJoined
	// StageCombined fires after the partial results were folded.
	StageCombined
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StagePartitioned:
		return "partitioned"
	case StageJoined:
		return "joined"
	case StageCombined:
		return "combined"
	default:
		return "unknown"
	}
}

// Observer is called synchronously on the calling goroutine at each Stage.
// It must not retain or modify blocks.
type Observer func(stage Stage, blocks []Block)

// Option configures a single Accumulate call.
type Option func(*options)

type options struct {
	parallelism int
	observer    Observer
}

// WithParallelism forces the number of blocks. Values <= 0 restore the
// default of asking the environment.
func WithParallelism(p int) Option {
	return func(o *options) { o.parallelism = p }
}

// WithObserver installs a stage observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) notify(stage Stage, blocks []Block) {
	if o.observer != nil {
		o.observer(stage, blocks)
	}
}
