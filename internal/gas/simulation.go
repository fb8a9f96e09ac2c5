// Package gas simulates a 2D ideal gas of hard discs in a closed square box.
package gas

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// Default physical constants
const (
	DefaultMass      = 1.0
	DefaultBoltzmann = 1.0
)

// Params configures a Simulation. It is not modified after construction.
type Params struct {
	NumParticles  int
	BoxSize       float64
	Radius        float64
	Temperature   float64
	DT            float64
	TotalSteps    int
	Mass          float64
	Boltzmann     float64
	GridSize      int
	WrapNeighbors bool   // Toroidal broad phase at the box edges
	Seed          uint64 // 0 seeds from the clock
}

// DefaultParams returns the parameters of the stock run
func DefaultParams() Params {
	return Params{
		NumParticles: 50,
		BoxSize:      600,
		Radius:       5,
		Temperature:  1.0,
		DT:           0.5,
		TotalSteps:   2000,
		Mass:         DefaultMass,
		Boltzmann:    DefaultBoltzmann,
		GridSize:     DefaultGridSize,
	}
}

// State is the lifecycle stage of a Simulation
type State int

const (
	Initialized State = iota
	Running
	Finished
)

func (st State) String() string {
	switch st {
	case Initialized:
		return "Initialized"
	case Running:
		return "Running"
	case Finished:
		return "Finished"
	}
	return fmt.Sprintf("State(%d)", int(st))
}

// Reporter receives the time series once a run completes
type Reporter interface {
	Report(times, temperatures, pressures []float64) error
}

// ReporterFunc adapts a function to a Reporter
type ReporterFunc func(times, temperatures, pressures []float64) error

// Report calls f
func (f ReporterFunc) Report(times, temperatures, pressures []float64) error {
	return f(times, temperatures, pressures)
}

// Simulation owns the particles and the statistics of one run
type Simulation struct {
	params     Params
	particles  []Particle
	grid       *Grid
	resolver   *Resolver
	rng        *rand.Rand
	series     Series
	state      State
	step       int
	terminated bool
	last       Sample
}

// NewSimulation creates a simulation with the default mass, Boltzmann
// constant and grid
func NewSimulation(
	numParticles int, boxSize, radius, temperature, dt float64, totalSteps int,
) *Simulation {
	p := DefaultParams()
	p.NumParticles = numParticles
	p.BoxSize = boxSize
	p.Radius = radius
	p.Temperature = temperature
	p.DT = dt
	p.TotalSteps = totalSteps
	return New(p)
}

// New creates a simulation and places its particles. An overcrowded box
// yields fewer particles than requested.
func New(p Params) *Simulation {
	s := newSimulation(p)
	positions := SamplePositions(s.rng, s.params.NumParticles, s.params.BoxSize, s.params.Radius)
	velocities := SampleVelocities(
		s.rng, len(positions), s.params.Temperature, s.params.Mass, s.params.Boltzmann,
	)
	s.particles = make([]Particle, len(positions))
	for i := range s.particles {
		s.particles[i] = Particle{
			Pos:    positions[i],
			Vel:    velocities[i],
			Mass:   s.params.Mass,
			Radius: s.params.Radius,
		}
	}
	return s
}

// FromParticles creates a simulation over a caller-supplied particle set.
// NumParticles in p is ignored.
func FromParticles(p Params, particles []Particle) *Simulation {
	s := newSimulation(p)
	s.particles = append([]Particle(nil), particles...)
	s.params.NumParticles = len(s.particles)
	return s
}

func newSimulation(p Params) *Simulation {
	if p.Mass == 0 {
		p.Mass = DefaultMass
	}
	if p.Boltzmann == 0 {
		p.Boltzmann = DefaultBoltzmann
	}
	if p.GridSize == 0 {
		p.GridSize = DefaultGridSize
	}
	seed := p.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	return &Simulation{
		params:   p,
		grid:     NewGrid(p.GridSize, p.BoxSize, p.WrapNeighbors),
		resolver: NewResolver(rng),
		rng:      rng,
		state:    Initialized,
	}
}

// Step advances the simulation by one timestep and records its statistics.
// It is a no-op once the simulation is done.
func (s *Simulation) Step() Sample {
	if s.Done() {
		s.state = Finished
		return s.last
	}
	s.state = Running

	// Integrate
	for i := range s.particles {
		s.particles[i].Move(s.params.DT)
	}

	// Walls
	wallImpulse := 0.0
	for i := range s.particles {
		wallImpulse += s.particles[i].ResolveWallCollision(s.params.BoxSize)
	}

	// Pairs. Overlap correction may leave a disc past a wall until the next
	// wall pass.
	s.grid.Rebuild(s.particles)
	contacts := s.resolver.Resolve(s.particles, s.grid)

	s.last = Sample{
		Step:        s.step,
		Time:        float64(s.step) * s.params.DT,
		Temperature: Temperature(s.particles, s.params.Boltzmann),
		Pressure:    Pressure(wallImpulse, s.params.DT, s.params.BoxSize),
		Contacts:    contacts,
	}
	s.series.append(s.last)

	s.step++
	if s.step >= s.params.TotalSteps {
		s.state = Finished
	}
	return s.last
}

// RunOptions controls the headless driver
type RunOptions struct {
	FrameRate float64      // Steps per second, 0 runs unthrottled
	OnFrame   func(Sample) // Called after every step
}

// Run steps the simulation to completion and hands the series to r. If ctx
// is cancelled first the simulation finishes early and r is not called.
func (s *Simulation) Run(ctx context.Context, r Reporter) error {
	return s.RunWith(ctx, r, RunOptions{})
}

// RunWith is Run with a frame rate limit and a per-frame hook
func (s *Simulation) RunWith(ctx context.Context, r Reporter, opts RunOptions) error {
	var tick <-chan time.Time
	if opts.FrameRate > 0 {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / opts.FrameRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for !s.Done() {
		if ctx.Err() != nil {
			s.Terminate()
			return nil
		}
		sample := s.Step()
		if opts.OnFrame != nil {
			opts.OnFrame(sample)
		}
		if tick != nil && !s.Done() {
			select {
			case <-ctx.Done():
				s.Terminate()
				return nil
			case <-tick:
			}
		}
	}
	s.state = Finished

	if !s.Completed() || r == nil {
		return nil
	}
	if err := r.Report(s.series.Times, s.series.Temperatures, s.series.Pressures); err != nil {
		return fmt.Errorf("reporting results: %w", err)
	}
	return nil
}

// Terminate ends the run early. Completed reports false afterwards.
func (s *Simulation) Terminate() {
	s.terminated = true
	s.state = Finished
}

// Done reports whether no further steps will be taken
func (s *Simulation) Done() bool {
	return s.state == Finished || s.step >= s.params.TotalSteps
}

// Completed reports whether every step ran without early termination
func (s *Simulation) Completed() bool {
	return !s.terminated && s.step >= s.params.TotalSteps
}

// State returns the lifecycle stage
func (s *Simulation) State() State { return s.state }

// Params returns the configuration
func (s *Simulation) Params() Params { return s.params }

// StepCount returns the number of completed steps
func (s *Simulation) StepCount() int { return s.step }

// Last returns the statistics of the most recent step
func (s *Simulation) Last() Sample { return s.last }

// Len returns the number of particles actually placed
func (s *Simulation) Len() int { return len(s.particles) }

// Particles returns a copy of the particle set
func (s *Simulation) Particles() []Particle {
	return s.AppendParticles(nil)
}

// AppendParticles appends a copy of every particle to buf
func (s *Simulation) AppendParticles(buf []Particle) []Particle {
	return append(buf, s.particles...)
}

// Series returns a copy of the recorded time series
func (s *Simulation) Series() Series { return s.series.Clone() }
