package data

// Allocator hands out storage blocks for queues, nodes and values.
// Alloc returns an opaque block id; every id is released exactly once.
type Allocator interface {
	Alloc(size int) (uint64, error)
	Release(id uint64)
}

type heapAllocator struct{}

func (heapAllocator) Alloc(size int) (uint64, error) { return 0, nil }
func (heapAllocator) Release(id uint64)              {}

type Options struct {
	Allocator Allocator
}

type Option func(o *Options)

// WithAllocator draws every block the queue owns from a.
func WithAllocator(a Allocator) Option {
	return func(o *Options) {
		if a != nil {
			o.Allocator = a
		}
	}
}
