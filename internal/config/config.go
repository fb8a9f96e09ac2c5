// Package config reads idealgas run files.
package config

import (
	"fmt"

	"gopkg.in/gcfg.v1"

	"github.com/olivierh59500/idealgas-go/internal/gas"
)

const ExampleConfigFile = `[Simulation]

#######################
# Required Parameters #
#######################

# Number of particles requested. If the box is too crowded to place them all
# without overlap, the run continues with however many fit.
Particles = 50

# Side length of the square box, in pixels.
BoxSize = 600

# Radius of every particle, in pixels. Must be less than BoxSize / 2.
Radius = 5

# Initial temperature. Velocity components are drawn from a normal
# distribution with standard deviation sqrt(Boltzmann * Temperature / Mass).
Temperature = 1.0

TimeStep = 0.5
TotalSteps = 2000

#######################
# Optional Parameters #
#######################

# Mass = 1.0
# Boltzmann = 1.0

# Number of broad phase cells along each side. BoxSize / GridSize must be at
# least one particle diameter.
# GridSize = 20

# Treat the box as a torus when gathering neighbour cells. Only useful for
# comparing against older runs.
# WrapNeighbors = false

# Random seed. 0 seeds from the clock.
# Seed = 0

[Output]

# Run without a window.
# Headless = false

# Steps per second. 0 runs headless runs as fast as possible.
# FrameRate = 60

# PlotFile = results.png
# TableFile = results.txt
# PyplotFile = results_mpl.png
# Terminal = true`

// SimulationConfig is the [Simulation] section
type SimulationConfig struct {
	// Required
	Particles             int
	BoxSize, Radius       float64
	Temperature, TimeStep float64
	TotalSteps            int

	// Optional
	Mass, Boltzmann float64
	GridSize        int
	WrapNeighbors   bool
	Seed            int64
}

// OutputConfig is the [Output] section
type OutputConfig struct {
	Headless  bool
	FrameRate float64
	PlotFile  string
	TableFile string
	// PyplotFile is rendered through matplotlib
	PyplotFile string
	Terminal   bool
}

// Wrapper holds every section of a run file
type Wrapper struct {
	Simulation SimulationConfig
	Output     OutputConfig
}

// DefaultWrapper returns the stock configuration
func DefaultWrapper() *Wrapper {
	p := gas.DefaultParams()
	return &Wrapper{
		Simulation: SimulationConfig{
			Particles:   p.NumParticles,
			BoxSize:     p.BoxSize,
			Radius:      p.Radius,
			Temperature: p.Temperature,
			TimeStep:    p.DT,
			TotalSteps:  p.TotalSteps,
			Mass:        p.Mass,
			Boltzmann:   p.Boltzmann,
			GridSize:    p.GridSize,
		},
		Output: OutputConfig{
			FrameRate: 60,
			PlotFile:  "results.png",
			Terminal:  true,
		},
	}
}

// ReadFile reads a run file over the defaults and validates it
func ReadFile(fname string) (*Wrapper, error) {
	w := DefaultWrapper()
	if err := gcfg.ReadFileInto(w, fname); err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	if err := w.CheckInit(); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return w, nil
}

// ReadString is ReadFile for in-memory run files
func ReadString(str string) (*Wrapper, error) {
	w := DefaultWrapper()
	if err := gcfg.ReadStringInto(w, str); err != nil {
		return nil, err
	}
	if err := w.CheckInit(); err != nil {
		return nil, err
	}
	return w, nil
}

func (con *SimulationConfig) ValidParticles() bool {
	return con.Particles >= 0
}
func (con *SimulationConfig) ValidBoxSize() bool {
	return con.BoxSize > 0
}
func (con *SimulationConfig) ValidRadius() bool {
	return con.Radius > 0 && con.Radius < con.BoxSize/2
}
func (con *SimulationConfig) ValidTemperature() bool {
	return con.Temperature >= 0
}
func (con *SimulationConfig) ValidTimeStep() bool {
	return con.TimeStep > 0
}
func (con *SimulationConfig) ValidTotalSteps() bool {
	return con.TotalSteps >= 0
}
func (con *SimulationConfig) ValidMass() bool {
	return con.Mass > 0
}
func (con *SimulationConfig) ValidBoltzmann() bool {
	return con.Boltzmann > 0
}

// ValidGridSize checks that a cell is at least one particle diameter wide,
// otherwise the broad phase misses contacts.
func (con *SimulationConfig) ValidGridSize() bool {
	return con.GridSize > 0 && con.BoxSize/float64(con.GridSize) >= 2*con.Radius
}

// MaxGridSize is the largest grid whose cells still fit a particle diameter
func (con *SimulationConfig) MaxGridSize() int {
	return int(con.BoxSize / (2 * con.Radius))
}

func (con *OutputConfig) ValidFrameRate() bool {
	return con.FrameRate >= 0
}

// CheckInit validates every section
func (w *Wrapper) CheckInit() error {
	sim := &w.Simulation
	switch {
	case !sim.ValidParticles():
		return fmt.Errorf("Particles must be non-negative, but is %d.", sim.Particles)
	case !sim.ValidBoxSize():
		return fmt.Errorf("BoxSize must be positive, but is %g.", sim.BoxSize)
	case !sim.ValidRadius():
		return fmt.Errorf(
			"Radius must be in range (0, %g), but is %g.", sim.BoxSize/2, sim.Radius,
		)
	case !sim.ValidTemperature():
		return fmt.Errorf("Temperature must be non-negative, but is %g.", sim.Temperature)
	case !sim.ValidTimeStep():
		return fmt.Errorf("TimeStep must be positive, but is %g.", sim.TimeStep)
	case !sim.ValidTotalSteps():
		return fmt.Errorf("TotalSteps must be non-negative, but is %d.", sim.TotalSteps)
	case !sim.ValidMass():
		return fmt.Errorf("Mass must be positive, but is %g.", sim.Mass)
	case !sim.ValidBoltzmann():
		return fmt.Errorf("Boltzmann must be positive, but is %g.", sim.Boltzmann)
	case !sim.ValidGridSize():
		return fmt.Errorf(
			"GridSize must be in range [1, %d] for Radius %g and BoxSize %g, but is %d.",
			sim.MaxGridSize(), sim.Radius, sim.BoxSize, sim.GridSize,
		)
	case !w.Output.ValidFrameRate():
		return fmt.Errorf("FrameRate must be non-negative, but is %g.", w.Output.FrameRate)
	}
	return nil
}

// Params converts the [Simulation] section into engine parameters
func (con *SimulationConfig) Params() gas.Params {
	return gas.Params{
		NumParticles:  con.Particles,
		BoxSize:       con.BoxSize,
		Radius:        con.Radius,
		Temperature:   con.Temperature,
		DT:            con.TimeStep,
		TotalSteps:    con.TotalSteps,
		Mass:          con.Mass,
		Boltzmann:     con.Boltzmann,
		GridSize:      con.GridSize,
		WrapNeighbors: con.WrapNeighbors,
		Seed:          uint64(con.Seed),
	}
}
