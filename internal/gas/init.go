package gas

import (
	"log"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxAttemptsPerParticle bounds the rejection sampler
const MaxAttemptsPerParticle = 100

// SamplePositions draws up to n centres uniformly in [radius, boxSize-radius]
// such that no two discs overlap. When the box is too crowded it gives up
// after n*MaxAttemptsPerParticle draws and returns what it placed.
func SamplePositions(rng *rand.Rand, n int, boxSize, radius float64) []r2.Vec {
	positions := make([]r2.Vec, 0, n)
	maxAttempts := n * MaxAttemptsPerParticle
	minDistSq := 4 * radius * radius
	span := boxSize - 2*radius

	for attempts := 0; len(positions) < n && attempts < maxAttempts; attempts++ {
		p := r2.Vec{
			X: radius + span*rng.Float64(),
			Y: radius + span*rng.Float64(),
		}
		free := true
		for _, q := range positions {
			if r2.Norm2(r2.Sub(p, q)) < minDistSq {
				free = false
				break
			}
		}
		if free {
			positions = append(positions, p)
		}
	}

	if len(positions) < n {
		log.Printf(
			"Warning: could not place all particles without overlap, placed %d of %d.",
			len(positions), n,
		)
	}
	return positions
}

// SampleVelocities draws n velocities whose components are independent
// normals with standard deviation sqrt(kB*T/m), the 2D Maxwell-Boltzmann
// distribution at temperature T.
func SampleVelocities(rng *rand.Rand, n int, temperature, mass, boltzmann float64) []r2.Vec {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: math.Sqrt(boltzmann * temperature / mass),
		Src:   rng,
	}
	vels := make([]r2.Vec, n)
	for i := range vels {
		vels[i] = r2.Vec{X: dist.Rand(), Y: dist.Rand()}
	}
	return vels
}
