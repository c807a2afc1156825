package replay

import "fmt"

// transitionStore is the fixed-capacity circular buffer backing a
// Buffer. Slot i pairs with leaf i of the priority tree. Slots are
// logically invalidated only by cursor advancement; nothing is freed
// before the store itself goes away.
type transitionStore struct {
	slots  []Transition
	cursor int
	full   bool
}

func newTransitionStore(capacity int) *transitionStore {
	return &transitionStore{slots: make([]Transition, capacity)}
}

func (s *transitionStore) capacity() int { return len(s.slots) }

// len returns the count of populated slots: the whole buffer once the
// cursor has wrapped, the write cursor before that.
func (s *transitionStore) len() int {
	if s.full {
		return len(s.slots)
	}
	return s.cursor
}

// store writes t at the cursor and returns the slot it occupied. The
// first wrap back to slot 0 flips the store to full.
func (s *transitionStore) store(t Transition) int {
	slot := s.cursor
	s.slots[slot] = t

	s.cursor++
	if s.cursor == len(s.slots) {
		s.cursor = 0
		s.full = true
	}
	return slot
}

// get returns the transition at index. Only populated slots are
// addressable; the returned value shares its state slices with the
// store and must not be modified.
func (s *transitionStore) get(index int) (Transition, error) {
	if index < 0 || index >= s.len() {
		return Transition{}, fmt.Errorf("%w: index %d, populated %d", ErrIndexOutOfRange, index, s.len())
	}
	return s.slots[index], nil
}

func (s *transitionStore) reset() {
	s.cursor = 0
	s.full = false
}
