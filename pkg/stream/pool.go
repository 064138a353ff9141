package stream

import "sync"

// vecPool manages a pool of Vector objects to minimize memory allocations.
// It wraps sync.Pool to provide type-safe access to Vector[T].
type vecPool[T any] struct {
	// pool is the underlying sync.Pool used for storing vectors.
	pool sync.Pool
	// size is the capacity of freshly allocated vectors and the flush threshold
	// used by batching stages.
	size int
}

// newVecPool creates a new pool whose vectors have the given capacity.
// A non-positive size falls back to DefaultVectorSize.
func newVecPool[T any](size int) *vecPool[T] {
	if size <= 0 {
		size = DefaultVectorSize
	}
	p := &vecPool[T]{size: size}
	p.pool.New = func() any {
		return &Vector[T]{
			Data: make([]T, 0, size),
		}
	}
	return p
}

// Get retrieves a vector from the pool or creates a new one if the pool is empty.
// It sets the vector's pool reference to this pool to enable proper recycling.
func (p *vecPool[T]) Get() *Vector[T] {
	v := p.pool.Get().(*Vector[T])
	v.pool = p // Restore pool reference for recycled vectors
	return v
}

// Put returns a vector to the pool for reuse.
// It clears the elements so pooled vectors do not pin user data, then resets
// the length to 0 while preserving capacity.
func (p *vecPool[T]) Put(vec *Vector[T]) {
	clear(vec.Data)
	vec.Data = vec.Data[:0]
	p.pool.Put(vec)
}

// one wraps a single item into a pooled vector.
func (p *vecPool[T]) one(item T) *Vector[T] {
	v := p.Get()
	v.Data = append(v.Data, item)
	return v
}
