package flowshop

import "fmt"

func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("%w: length must be %d (got %d)", ErrInvalidPermutation, n, len(perm))
	}
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: perm[%d]=%d out of range [0,%d)", ErrInvalidPermutation, i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate job id %d", ErrInvalidPermutation, v)
		}
		seen[v] = true
	}
	return nil
}

// IsPermutation reports whether perm is a bijection on 0..n-1.
func IsPermutation(perm []int, n int) bool {
	return ValidatePermutation(perm, n) == nil
}

// Identity returns [0, 1, ..., n-1].
func Identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func Clone(perm []int) []int {
	out := make([]int, len(perm))
	copy(out, perm)
	return out
}
