package stream

// ============================================================================
// SYSTEM CONFIGURATION
// ============================================================================

// DefaultVectorSize defines the default capacity and flush threshold for data batches (vectors).
// A larger size improves throughput by reducing per-call overhead on bulk sources.
// Event-driven sources (Subject, Debounce, FromFunc) always emit single-item vectors.
const DefaultVectorSize = 1024

// ChannelBuffer defines the buffer size for the channel between a generator and its vectorizer.
// It provides backpressure to prevent fast generators from overwhelming slower stages.
const ChannelBuffer = 1024

// eventVectorSize is the vector capacity used by event-driven stages.
const eventVectorSize = 1

// sanitizeConcurrency maps a requested concurrency limit to the value used by
// fan-out operators. Anything <= 0 means unbounded, reported as 0.
func sanitizeConcurrency(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
