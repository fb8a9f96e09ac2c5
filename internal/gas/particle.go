package gas

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Particle is a rigid disc with its kinematic state
type Particle struct {
	Pos    r2.Vec // Position
	Vel    r2.Vec // Velocity
	Mass   float64
	Radius float64
}

// Move advances the position by one timestep. No bounds checking.
func (p *Particle) Move(dt float64) {
	p.Pos = r2.Add(p.Pos, r2.Scale(dt, p.Vel))
}

// ResolveWallCollision reflects the particle off the box walls and returns the
// impulse transferred to the walls
func (p *Particle) ResolveWallCollision(boxSize float64) float64 {
	impulse := 0.0
	pos := [2]*float64{&p.Pos.X, &p.Pos.Y}
	vel := [2]*float64{&p.Vel.X, &p.Vel.Y}
	for axis := range pos {
		x, v := pos[axis], vel[axis]
		if *x-p.Radius < 0 {
			*x = p.Radius
		} else if *x+p.Radius > boxSize {
			*x = boxSize - p.Radius
		} else {
			continue
		}
		*v = -*v
		impulse += 2 * p.Mass * math.Abs(*v)
	}
	return impulse
}

// KineticEnergy returns 0.5*m*|v|^2
func (p *Particle) KineticEnergy() float64 {
	return 0.5 * p.Mass * r2.Norm2(p.Vel)
}

// Momentum returns m*v
func (p *Particle) Momentum() r2.Vec {
	return r2.Scale(p.Mass, p.Vel)
}
