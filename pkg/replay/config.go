package replay

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config fixes a Buffer's shape at construction. All fields are
// immutable for the buffer's lifetime.
type Config struct {
	// BatchSize is the number of transitions returned by each Sample.
	BatchSize int `validate:"gt=0"`

	// Capacity is the total number of transitions retained before the
	// oldest are overwritten.
	Capacity int `validate:"gt=0"`

	// Alpha is the priority exponent: sampling mass for a slot is
	// priority^Alpha, so 0 degrades to uniform sampling.
	Alpha float64 `validate:"gte=0"`

	// Dimension is the length of every encoded state vector.
	Dimension int `validate:"gt=0"`
}

var validate = validator.New()

func (c Config) check() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
