package replay

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cartridge/prioritized/pkg/sumtree"
)

// uniformSource yields draws in [0, 1). *rand.Rand satisfies it; tests
// substitute fixed sequences to make sampling deterministic.
type uniformSource interface {
	Float64() float64
}

// Buffer is a prioritized experience replay buffer: a circular store of
// transitions plus a sum tree over per-slot priority^alpha masses. All
// exported methods are safe for concurrent use; each operation holds
// the buffer's lock for its full duration so tree totals stay
// consistent with the slots they describe.
type Buffer struct {
	mu sync.Mutex

	cfg    Config
	id     string
	logger zerolog.Logger

	store       *transitionStore
	tree        *sumtree.Tree
	maxPriority float64
	rng         uniformSource
}

// Option configures a Buffer at construction.
type Option func(*Buffer)

// WithRand replaces the default time-seeded sampling source with a
// caller-provided one, making sampling reproducible.
func WithRand(r *rand.Rand) Option {
	return func(b *Buffer) { b.rng = r }
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Buffer) { b.logger = logger }
}

// New constructs an empty buffer. The running maximum priority starts
// at 1, so the first stored transitions carry sampling mass 1^alpha.
func New(cfg Config, opts ...Option) (*Buffer, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}

	tree, err := sumtree.New(cfg.Capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	b := &Buffer{
		cfg:         cfg,
		id:          uuid.New().String(),
		logger:      zerolog.Nop(),
		store:       newTransitionStore(cfg.Capacity),
		tree:        tree,
		maxPriority: 1.0,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With().Str("buffer_id", b.id).Logger()

	b.logger.Debug().
		Int("capacity", cfg.Capacity).
		Int("batch_size", cfg.BatchSize).
		Float64("alpha", cfg.Alpha).
		Int("dimension", cfg.Dimension).
		Msg("replay buffer created")

	return b, nil
}

// ID returns the buffer's unique identifier.
func (b *Buffer) ID() string { return b.id }

// Store encodes both states and writes the transition at the cursor,
// overwriting the oldest slot once the buffer is full. New transitions
// enter with the maximum priority observed so far, so each is sampled
// at least once before its priority is refined from learner feedback.
func (b *Buffer) Store(state State, action, reward float64, nextState State, terminal bool) error {
	encoded, err := b.encode(state)
	if err != nil {
		return err
	}
	encodedNext, err := b.encode(nextState)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	slot := b.store.store(Transition{
		State:     encoded,
		Action:    action,
		Reward:    reward,
		NextState: encodedNext,
		Terminal:  terminal,
	})
	return b.tree.Update(slot, math.Pow(b.maxPriority, b.cfg.Alpha))
}

// StoreBatch stores steps in order, stopping at the first failure. It
// returns how many steps were stored.
func (b *Buffer) StoreBatch(steps []Step) (int, error) {
	for i, s := range steps {
		if err := b.Store(s.State, s.Action, s.Reward, s.NextState, s.Terminal); err != nil {
			return i, fmt.Errorf("store batch step %d: %w", i, err)
		}
	}
	return len(steps), nil
}

// encode runs a state through the environment's encoding and copies the
// result, so callers may reuse the encoded slice between stores.
func (b *Buffer) encode(s State) ([]float64, error) {
	v := s.Encode()
	if len(v) != b.cfg.Dimension {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(v), b.cfg.Dimension)
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out, nil
}

// Clear resets the buffer to its freshly constructed state: cursor at
// zero, no populated slots, all priority mass dropped, and the running
// maximum priority back at 1.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.store.reset()
	b.tree.Reset()
	b.maxPriority = 1.0

	b.logger.Debug().Msg("replay buffer cleared")
}

// Len returns the count of populated slots.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.len()
}

// Cap returns the buffer's fixed capacity.
func (b *Buffer) Cap() int { return b.cfg.Capacity }

// Full reports whether the write cursor has wrapped at least once.
func (b *Buffer) Full() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.full
}

// Stats is a point-in-time snapshot of buffer occupancy and priority
// mass.
type Stats struct {
	BufferID      string
	Size          int
	Capacity      int
	Full          bool
	TotalPriority float64
	MaxPriority   float64
}

// Stats returns a snapshot of the buffer's current state.
func (b *Buffer) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Stats{
		BufferID:      b.id,
		Size:          b.store.len(),
		Capacity:      b.store.capacity(),
		Full:          b.store.full,
		TotalPriority: b.tree.Total(),
		MaxPriority:   b.maxPriority,
	}
}
