// Package harness tracks storage handed out to queues so tests and the
// console can detect leaks, double releases and simulate allocation failures.
package harness

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ttn-nguyen42/natq/util"
)

var (
	ErrOutOfMemory error = fmt.Errorf("out of memory")
	ErrLeak        error = fmt.Errorf("blocks still allocated")
	ErrBadRelease  error = fmt.Errorf("invalid release")
)

// Tracker is an allocator that remembers every live block.
// It is not safe for concurrent use.
type Tracker struct {
	live        map[uint64]int
	next        uint64
	liveBytes   int
	allocated   int
	released    int
	failures    int
	badReleases int
	failRate    int
	rand        *rand.Rand
}

type Options struct {
	FailRate int
	Seed     int64
}

type Option func(o *Options)

// WithFailRate makes percent of all allocations fail.
func WithFailRate(percent int) Option {
	return func(o *Options) {
		o.FailRate = percent
	}
}

func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

func NewTracker(opts ...Option) *Tracker {
	o := &Options{Seed: time.Now().UnixNano()}
	for _, opt := range opts {
		opt(o)
	}
	t := &Tracker{
		live: make(map[uint64]int),
		next: 1,
		rand: util.NewSeededRand(o.Seed),
	}
	t.SetFailRate(o.FailRate)
	return t
}

// SetFailRate clamps percent to [0, 100].
func (t *Tracker) SetFailRate(percent int) {
	t.failRate = max(0, min(percent, 100))
}

func (t *Tracker) FailRate() int {
	return t.failRate
}

func (t *Tracker) Alloc(size int) (uint64, error) {
	if size < 0 {
		return 0, fmt.Errorf("%w: negative size %d", ErrOutOfMemory, size)
	}
	if t.failRate > 0 && t.rand.Intn(100) < t.failRate {
		t.failures += 1
		return 0, ErrOutOfMemory
	}
	id := t.next
	t.next += 1
	t.live[id] = size
	t.liveBytes += size
	t.allocated += 1
	return id, nil
}

// Release frees a block. Unknown or already released ids are counted as
// violations and otherwise ignored.
func (t *Tracker) Release(id uint64) {
	size, ok := t.live[id]
	if !ok {
		t.badReleases += 1
		return
	}
	delete(t.live, id)
	t.liveBytes -= size
	t.released += 1
}

func (t *Tracker) Allocated() int {
	return t.allocated
}

func (t *Tracker) LiveBlocks() int {
	return len(t.live)
}

func (t *Tracker) LiveBytes() int {
	return t.liveBytes
}

func (t *Tracker) Failures() int {
	return t.failures
}

func (t *Tracker) BadReleases() int {
	return t.badReleases
}

// Check reports leaked blocks and bad releases seen so far.
func (t *Tracker) Check() error {
	if t.badReleases > 0 {
		return fmt.Errorf("%w: %d release(s) of unknown blocks", ErrBadRelease, t.badReleases)
	}
	if len(t.live) > 0 {
		return fmt.Errorf("%w: %d block(s), %d byte(s)", ErrLeak, len(t.live), t.liveBytes)
	}
	return nil
}

func (t *Tracker) Stats() *Stats {
	return &Stats{
		Allocated:   t.allocated,
		Released:    t.released,
		LiveBlocks:  len(t.live),
		LiveBytes:   t.liveBytes,
		Failures:    t.failures,
		BadReleases: t.badReleases,
		FailRate:    t.failRate,
	}
}
