package pso

import (
	"fmt"
	"math"
)

// A is the amplitude of the cosine term in the Rastrigin function.
const A = 10.0

// Rastrigin evaluates the Rastrigin benchmark function
//
//	f(x) = A*n + sum_i (x_i^2 - A*cos(2*pi*x_i))
//
// at xs.  The global minimum is 0 at the origin, surrounded by a regular
// lattice of local minima.  An empty xs returns ErrDimensionMismatch.
func Rastrigin(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return math.Inf(1), fmt.Errorf("rastrigin of empty vector: %w", ErrDimensionMismatch)
	}
	return rastrigin(xs), nil
}

// Objective is Rastrigin under the name hosts use when rendering fitness
// landscapes.
var Objective = Rastrigin

func rastrigin(xs []float64) float64 {
	tot := A * float64(len(xs))
	for _, x := range xs {
		tot += x*x - A*math.Cos(2*math.Pi*x)
	}
	return tot
}
