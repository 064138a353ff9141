package stream

// StreamConfig holds configuration for stream operators.
type StreamConfig struct {
	// BatchSize is the vector capacity used by bulk sources.
	BatchSize int
	// Concurrency caps the number of inner streams MergeMap runs at once.
	// Zero means unbounded.
	Concurrency int
}

// Option is a functional option for configuring stream operators.
type Option func(*StreamConfig)

// DefaultConfig returns the default configuration.
func DefaultConfig() StreamConfig {
	return StreamConfig{
		BatchSize: DefaultVectorSize,
	}
}

// WithBatchSize sets the batch size (vector capacity) for the operator.
func WithBatchSize(size int) Option {
	return func(c *StreamConfig) {
		if size > 0 {
			c.BatchSize = size
		}
	}
}

// WithConcurrency limits how many inner streams a fan-out operator keeps
// running at the same time. Further inner streams wait for a free slot.
func WithConcurrency(n int) Option {
	return func(c *StreamConfig) {
		c.Concurrency = sanitizeConcurrency(n)
	}
}

// ApplyOptions applies the given options to the default configuration.
func ApplyOptions(opts ...Option) StreamConfig {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return config
}
