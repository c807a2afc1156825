package replay

// Transition is one recorded interaction step: the encoded state the
// agent saw, the action it took, the reward it received, the encoded
// state that followed, and whether the episode ended there.
type Transition struct {
	State     []float64
	Action    float64
	Reward    float64
	NextState []float64
	Terminal  bool
}

// State is the encoding boundary to the environment collaborator:
// anything that can render itself as a fixed-length numeric vector.
// The buffer validates the vector's length against its configured
// dimension at store time.
type State interface {
	Encode() []float64
}

// Vector adapts an already-encoded state to the State interface.
type Vector []float64

// Encode returns the vector itself.
func (v Vector) Encode() []float64 { return v }

// Step is one not-yet-encoded transition handed to StoreBatch.
type Step struct {
	State     State
	Action    float64
	Reward    float64
	NextState State
	Terminal  bool
}
