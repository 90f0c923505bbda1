package flowshop

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks invalid construction parameters: matrix shape,
	// negative times, solver settings.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrEmptyInstance is returned for zero jobs or zero machines.
	// errors.Is(err, ErrConfiguration) also holds.
	ErrEmptyInstance = fmt.Errorf("%w: empty instance", ErrConfiguration)

	// ErrInvalidPermutation means a sequence is not a bijection on 0..n-1.
	ErrInvalidPermutation = errors.New("invalid permutation")
)
