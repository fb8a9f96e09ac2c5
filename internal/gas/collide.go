package gas

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
)

// Resolver finds overlapping particle pairs through a Grid and resolves them
// with positional correction followed by an elastic impulse
type Resolver struct {
	rng        *rand.Rand // Picks a normal for coincident centres
	neighbours []int
}

// NewResolver creates a resolver drawing from rng
func NewResolver(rng *rand.Rand) *Resolver {
	return &Resolver{rng: rng}
}

// Resolve checks every pair that shares or borders a cell and returns the
// number of contacts resolved. Cells must be at least one particle diameter
// wide or contacts spanning more than one cell are missed.
func (r *Resolver) Resolve(particles []Particle, g *Grid) int {
	contacts := 0
	for x := 0; x < g.Size; x++ {
		for y := 0; y < g.Size; y++ {
			c := Cell{x, y}
			bucket := g.Cells[c]
			if len(bucket) == 0 {
				continue
			}
			r.neighbours = g.Neighbours(c, r.neighbours[:0])
			for _, i := range bucket {
				for _, j := range r.neighbours {
					if i < j && r.collide(&particles[i], &particles[j]) {
						contacts++
					}
				}
			}
		}
	}
	return contacts
}

// collide resolves a single pair, reporting whether the discs touched
func (r *Resolver) collide(p1, p2 *Particle) bool {
	delta := r2.Sub(p1.Pos, p2.Pos)
	distSq := r2.Norm2(delta)
	minDist := p1.Radius + p2.Radius
	if distSq > minDist*minDist {
		return false
	}

	dist := math.Sqrt(distSq)
	var normal r2.Vec
	if dist == 0 {
		normal = r.randomUnit()
	} else {
		normal = r2.Scale(1/dist, delta)
	}

	// Split the overlap evenly between the two discs
	overlap := 0.5 * (minDist - dist)
	p1.Pos = r2.Add(p1.Pos, r2.Scale(overlap, normal))
	p2.Pos = r2.Sub(p2.Pos, r2.Scale(overlap, normal))

	relVel := r2.Dot(r2.Sub(p1.Vel, p2.Vel), normal)
	if relVel < 0 {
		impulse := 2 * relVel / (1/p1.Mass + 1/p2.Mass)
		p1.Vel = r2.Sub(p1.Vel, r2.Scale(impulse/p1.Mass, normal))
		p2.Vel = r2.Add(p2.Vel, r2.Scale(impulse/p2.Mass, normal))
	}
	return true
}

func (r *Resolver) randomUnit() r2.Vec {
	theta := 2 * math.Pi * r.rng.Float64()
	return r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)}
}
