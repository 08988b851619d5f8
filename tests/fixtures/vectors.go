package fixtures

// GenerateTestVector creates a deterministic test vector of the given
// dimension. Values ramp from the seed so two vectors with different seeds
// are never parallel.
func GenerateTestVector(dimension int, seed float32) []float32 {
	vec := make([]float32, dimension)
	for i := 0; i < dimension; i++ {
		vec[i] = seed + float32(i)*0.001
	}
	return vec
}

// ZeroVector creates a vector of zeros with the specified dimension.
// Useful for testing edge cases with zero-magnitude vectors.
func ZeroVector(dimension int) []float32 {
	return make([]float32, dimension)
}

// UnitVector creates a vector with 1.0 at the given axis and zeros elsewhere.
// Two unit vectors on different axes are exactly orthogonal, which makes
// expected similarity scores easy to reason about in tests.
func UnitVector(dimension, axis int) []float32 {
	vec := make([]float32, dimension)
	vec[axis] = 1.0
	return vec
}
