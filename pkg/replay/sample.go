package replay

import (
	"fmt"
	"math"
)

// Batch is one sampled mini-batch. Field slices are indexed in
// parallel: entry i of every slice describes the same sampled
// transition. State slices are shared with the buffer and must not be
// modified. Weights are importance-sampling corrections normalized so
// the largest weight is exactly 1.
type Batch struct {
	States     [][]float64
	Actions    []float64
	Rewards    []float64
	NextStates [][]float64
	Terminals  []bool
	Indices    []int
	Weights    []float64
}

// SampleProportional draws one slot index per equal-width stratum of
// the populated priority mass. Stratifying the draws reduces variance
// versus independent draws over the full range.
func (b *Buffer) SampleProportional() ([]int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sampleProportional()
}

// sampleProportional is the lock-held core of SampleProportional.
func (b *Buffer) sampleProportional() ([]int, error) {
	populated := b.store.len()
	if populated == 0 {
		return nil, ErrEmptyBuffer
	}

	total := b.tree.RangeSum(0, populated-1)
	segment := total / float64(b.cfg.BatchSize)

	indices := make([]int, b.cfg.BatchSize)
	for i := range indices {
		mass := b.rng.Float64()*segment + float64(i)*segment
		index := b.tree.FindPrefixSum(mass)
		if index >= populated {
			// floating-point overshoot past the populated mass
			index = populated - 1
		}
		indices[i] = index
	}
	return indices, nil
}

// Sample draws a stratified proportional mini-batch and computes
// importance-sampling weights: w_i = (N * p_i)^(-beta) with p_i the
// slot's share of the populated priority mass and N the populated slot
// count, then normalizes by the batch maximum. Beta is typically
// annealed toward 1 over training.
func (b *Buffer) Sample(beta float64) (*Batch, error) {
	if beta < 0 {
		return nil, fmt.Errorf("%w: beta %v is negative", ErrInvalidArgument, beta)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	indices, err := b.sampleProportional()
	if err != nil {
		return nil, err
	}

	populated := b.store.len()
	totalMass := b.tree.RangeSum(0, populated-1)

	batch := &Batch{
		States:     make([][]float64, len(indices)),
		Actions:    make([]float64, len(indices)),
		Rewards:    make([]float64, len(indices)),
		NextStates: make([][]float64, len(indices)),
		Terminals:  make([]bool, len(indices)),
		Indices:    indices,
		Weights:    make([]float64, len(indices)),
	}

	maxWeight := 0.0
	for i, index := range indices {
		tr, err := b.store.get(index)
		if err != nil {
			return nil, err
		}
		batch.States[i] = tr.State
		batch.Actions[i] = tr.Action
		batch.Rewards[i] = tr.Reward
		batch.NextStates[i] = tr.NextState
		batch.Terminals[i] = tr.Terminal

		leaf, err := b.tree.Leaf(index)
		if err != nil {
			return nil, err
		}
		w := math.Pow(float64(populated)*leaf/totalMass, -beta)
		batch.Weights[i] = w
		if w > maxWeight {
			maxWeight = w
		}
	}

	for i := range batch.Weights {
		batch.Weights[i] /= maxWeight
	}

	return batch, nil
}

// UpdatePriorities feeds fresh priorities (typically TD-error
// magnitudes) back into the tree for previously sampled slots. All
// pairs are validated before any leaf is touched, so a malformed call
// leaves the tree unchanged. Each new priority also raises the running
// maximum used for freshly stored transitions.
func (b *Buffer) UpdatePriorities(indices []int, priorities []float64) error {
	if len(indices) != len(priorities) {
		return fmt.Errorf("%w: %d indices, %d priorities", ErrLengthMismatch, len(indices), len(priorities))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	populated := b.store.len()
	for i, index := range indices {
		if index < 0 || index >= populated {
			return fmt.Errorf("%w: index %d, populated %d", ErrIndexOutOfRange, index, populated)
		}
		if priorities[i] < 0 {
			return fmt.Errorf("%w: priority %v at position %d is negative", ErrInvalidArgument, priorities[i], i)
		}
	}

	for i, index := range indices {
		p := priorities[i]
		if p > b.maxPriority {
			b.maxPriority = p
		}
		if err := b.tree.Update(index, math.Pow(p, b.cfg.Alpha)); err != nil {
			return err
		}
	}
	return nil
}
