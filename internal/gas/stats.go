package gas

import (
	"gonum.org/v1/gonum/stat"
)

// Sample holds the statistics of a single step
type Sample struct {
	Step        int
	Time        float64
	Temperature float64
	Pressure    float64
	Contacts    int // Particle pairs resolved this step
}

// Series is the per-step time series collected during a run. The three
// slices always have the same length.
type Series struct {
	Times        []float64
	Temperatures []float64
	Pressures    []float64
}

func (s *Series) append(sample Sample) {
	s.Times = append(s.Times, sample.Time)
	s.Temperatures = append(s.Temperatures, sample.Temperature)
	s.Pressures = append(s.Pressures, sample.Pressure)
}

// Len returns the number of recorded steps
func (s Series) Len() int {
	return len(s.Times)
}

// Clone returns a deep copy
func (s Series) Clone() Series {
	return Series{
		Times:        append([]float64(nil), s.Times...),
		Temperatures: append([]float64(nil), s.Temperatures...),
		Pressures:    append([]float64(nil), s.Pressures...),
	}
}

// Summary is the mean and sample standard deviation of both observables
type Summary struct {
	Steps           int
	MeanTemperature float64
	StdTemperature  float64
	MeanPressure    float64
	StdPressure     float64
}

// Summary reduces the series with gonum's stat package
func (s *Series) Summary() Summary {
	sum := Summary{Steps: s.Len()}
	if sum.Steps == 0 {
		return sum
	}
	sum.MeanTemperature, sum.StdTemperature = meanStd(s.Temperatures)
	sum.MeanPressure, sum.StdPressure = meanStd(s.Pressures)
	return sum
}

func meanStd(xs []float64) (mean, std float64) {
	if len(xs) < 2 {
		return stat.Mean(xs, nil), 0
	}
	return stat.MeanStdDev(xs, nil)
}

// Temperature is the kinetic energy per particle in units of kB. An empty
// box has temperature 0.
func Temperature(particles []Particle, boltzmann float64) float64 {
	if len(particles) == 0 {
		return 0
	}
	ke := 0.0
	for i := range particles {
		ke += particles[i].KineticEnergy()
	}
	return ke / (float64(len(particles)) * boltzmann)
}

// Pressure converts the impulse delivered to the walls during one step into
// a force per unit length of the square box perimeter
func Pressure(wallImpulse, dt, boxSize float64) float64 {
	return wallImpulse / (dt * 4 * boxSize)
}
