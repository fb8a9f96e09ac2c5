package gas

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

type recorder struct {
	calls        int
	times        []float64
	temperatures []float64
	pressures    []float64
}

func (r *recorder) Report(times, temperatures, pressures []float64) error {
	r.calls++
	r.times, r.temperatures, r.pressures = times, temperatures, pressures
	return nil
}

func testParams() Params {
	p := DefaultParams()
	p.NumParticles = 60
	p.BoxSize = 200
	p.Radius = 3
	p.Temperature = 4
	p.DT = 0.1
	p.TotalSteps = 200
	p.Seed = 1234
	return p
}

func TestNewSimulation(t *testing.T) {
	sim := NewSimulation(50, 600, 5, 1, 0.5, 2000)
	p := sim.Params()

	assert.Equal(t, Initialized, sim.State())
	assert.Equal(t, 50, sim.Len())
	assert.Equal(t, DefaultMass, p.Mass)
	assert.Equal(t, DefaultBoltzmann, p.Boltzmann)
	assert.Equal(t, DefaultGridSize, p.GridSize)
	for _, q := range sim.Particles() {
		assert.Equal(t, 5.0, q.Radius)
		assert.Equal(t, 1.0, q.Mass)
	}
}

func TestHeadOnScenario(t *testing.T) {
	p := Params{BoxSize: 100, Radius: 5, DT: 0.5, TotalSteps: 1, GridSize: 10, Seed: 1}
	sim := FromParticles(p, []Particle{
		{Pos: r2.Vec{X: 40, Y: 50}, Vel: r2.Vec{X: 10, Y: 0}, Mass: 1, Radius: 5},
		{Pos: r2.Vec{X: 60, Y: 50}, Vel: r2.Vec{X: -10, Y: 0}, Mass: 1, Radius: 5},
	})
	sample := sim.Step()
	ps := sim.Particles()

	assert.Equal(t, 1, sample.Contacts)
	assert.InDelta(t, -10, ps[0].Vel.X, 1e-9)
	assert.InDelta(t, 0, ps[0].Vel.Y, 1e-9)
	assert.InDelta(t, 10, ps[1].Vel.X, 1e-9)
	assert.InDelta(t, 0, ps[1].Vel.Y, 1e-9)
	assert.Equal(t, 0.0, sample.Pressure, "no wall hits")
	assert.InDelta(t, 50, sample.Temperature, 1e-9)
}

func TestSingleParticleWallScenario(t *testing.T) {
	p := Params{BoxSize: 100, Radius: 5, DT: 1, TotalSteps: 1, Seed: 1}
	sim := FromParticles(p, []Particle{
		{Pos: r2.Vec{X: 2, Y: 50}, Vel: r2.Vec{X: -10, Y: 0}, Mass: 1, Radius: 5},
	})
	sample := sim.Step()
	q := sim.Particles()[0]

	assert.Equal(t, r2.Vec{X: 10, Y: 0}, q.Vel)
	assert.Equal(t, 5.0, q.Pos.X)
	assert.Equal(t, 20.0/400.0, sample.Pressure)
	assert.Equal(t, 0.0, sample.Time)
	assert.Equal(t, Finished, sim.State())
	assert.True(t, sim.Completed())
}

func TestZeroParticles(t *testing.T) {
	sim := NewSimulation(0, 100, 5, 1, 0.1, 10)
	require.Equal(t, 0, sim.Len())

	rec := &recorder{}
	require.NoError(t, sim.Run(context.Background(), rec))

	assert.Equal(t, 1, rec.calls)
	require.Len(t, rec.temperatures, 10)
	for i := range rec.temperatures {
		assert.Equal(t, 0.0, rec.temperatures[i])
		assert.Equal(t, 0.0, rec.pressures[i])
	}
}

func TestRunSeries(t *testing.T) {
	sim := New(testParams())
	rec := &recorder{}
	require.NoError(t, sim.Run(context.Background(), rec))

	require.Equal(t, 1, rec.calls)
	require.Len(t, rec.times, 200)
	require.Len(t, rec.temperatures, 200)
	require.Len(t, rec.pressures, 200)
	assert.Equal(t, Finished, sim.State())
	assert.True(t, sim.Completed())
	assert.Equal(t, 200, sim.StepCount())

	for i := range rec.times {
		assert.InDelta(t, float64(i)*0.1, rec.times[i], 1e-12)
		assert.GreaterOrEqual(t, rec.pressures[i], 0.0)
	}
}

func TestRunConservesTemperature(t *testing.T) {
	sim := New(testParams())
	rec := &recorder{}
	require.NoError(t, sim.Run(context.Background(), rec))

	// Wall and pair collisions are both elastic
	t0 := rec.temperatures[0]
	require.Greater(t, t0, 0.0)
	for _, temp := range rec.temperatures {
		assert.InEpsilon(t, t0, temp, 1e-9)
	}
}

func TestRunDeterministic(t *testing.T) {
	a, b := New(testParams()), New(testParams())
	require.NoError(t, a.Run(context.Background(), nil))
	require.NoError(t, b.Run(context.Background(), nil))

	assert.Equal(t, a.Series(), b.Series())
	assert.Equal(t, a.Particles(), b.Particles())
}

func TestRunCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := New(testParams())
	rec := &recorder{}
	require.NoError(t, sim.Run(ctx, rec))

	assert.Equal(t, 0, rec.calls)
	assert.Equal(t, 0, sim.StepCount())
	assert.Equal(t, Finished, sim.State())
	assert.False(t, sim.Completed())
}

func TestRunCancelledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := New(testParams())
	rec := &recorder{}
	frames := 0
	err := sim.RunWith(ctx, rec, RunOptions{OnFrame: func(s Sample) {
		frames++
		if s.Step == 5 {
			cancel()
		}
	}})
	require.NoError(t, err)

	assert.Equal(t, 0, rec.calls, "no report after quit")
	assert.Equal(t, 6, frames)
	assert.Equal(t, 6, sim.StepCount())
	assert.Equal(t, 6, sim.Series().Len())
	assert.False(t, sim.Completed())

	// A finished simulation does not step again
	last := sim.Last()
	assert.Equal(t, last, sim.Step())
	assert.Equal(t, 6, sim.StepCount())
}

func TestRunFrameRate(t *testing.T) {
	p := testParams()
	p.TotalSteps = 6
	sim := New(p)

	start := time.Now()
	require.NoError(t, sim.RunWith(context.Background(), nil, RunOptions{FrameRate: 200}))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.True(t, sim.Completed())
}

func TestRunCancelledAfterLastStep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := testParams()
	p.TotalSteps = 1
	sim := New(p)
	rec := &recorder{}
	err := sim.RunWith(ctx, rec, RunOptions{
		FrameRate: 1,
		OnFrame:   func(Sample) { cancel() },
	})
	require.NoError(t, err)

	assert.True(t, sim.Completed())
	assert.Equal(t, 1, rec.calls, "a full run reports even if quit arrives during the last frame")
	assert.Len(t, rec.times, 1)
}

func TestStepContainsLoneParticle(t *testing.T) {
	p := testParams()
	p.TotalSteps = 500
	p.BoxSize = 50
	p.DT = 0.5
	sim := FromParticles(p, []Particle{{
		Pos: r2.Vec{X: 25, Y: 25}, Vel: r2.Vec{X: 13.7, Y: -9.1}, Mass: 1, Radius: p.Radius,
	}})

	for !sim.Done() {
		sim.Step()
		q := sim.Particles()[0]
		require.GreaterOrEqual(t, q.Pos.X, p.Radius, "step %d", sim.StepCount())
		require.LessOrEqual(t, q.Pos.X, p.BoxSize-p.Radius, "step %d", sim.StepCount())
		require.GreaterOrEqual(t, q.Pos.Y, p.Radius, "step %d", sim.StepCount())
		require.LessOrEqual(t, q.Pos.Y, p.BoxSize-p.Radius, "step %d", sim.StepCount())
	}
}

func TestStepContainsDiluteGas(t *testing.T) {
	p := testParams()
	p.NumParticles = 20
	p.TotalSteps = 300
	sim := New(p)

	// Overlaps stay small in a dilute gas, so centres remain inside the box
	// even when a corrected disc briefly crosses a wall.
	for !sim.Done() {
		sim.Step()
		for _, q := range sim.Particles() {
			require.True(t, q.Pos.X >= 0 && q.Pos.X <= p.BoxSize, "x = %g", q.Pos.X)
			require.True(t, q.Pos.Y >= 0 && q.Pos.Y <= p.BoxSize, "y = %g", q.Pos.Y)
		}
	}
}

func TestRunReporterError(t *testing.T) {
	p := testParams()
	p.TotalSteps = 3
	sim := New(p)
	boom := errors.New("boom")

	err := sim.Run(context.Background(), ReporterFunc(func(_, _, _ []float64) error {
		return boom
	}))
	assert.ErrorIs(t, err, boom)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Initialized", Initialized.String())
	assert.Equal(t, "Running", Running.String())
	assert.Equal(t, "Finished", Finished.String())
	assert.Equal(t, "State(7)", State(7).String())
}

func TestStepStates(t *testing.T) {
	p := testParams()
	p.TotalSteps = 2
	sim := New(p)

	sim.Step()
	assert.Equal(t, Running, sim.State())
	assert.False(t, sim.Done())
	sim.Step()
	assert.Equal(t, Finished, sim.State())
	assert.True(t, sim.Done())
}

func BenchmarkStep(b *testing.B) {
	for _, n := range []int{100, 500, 2000} {
		b.Run(fmt.Sprintf("Particles-%d", n), func(b *testing.B) {
			p := DefaultParams()
			p.NumParticles = n
			p.BoxSize = 1200
			p.Radius = 3
			p.TotalSteps = b.N
			p.Seed = 99
			sim := New(p)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sim.Step()
			}
		})
	}
}
