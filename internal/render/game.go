// Package render shows a running gas simulation in an Ebitengine window.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/idealgas-go/internal/gas"
)

// Window constants
const (
	TPS         = 60 // Frame rate cap
	lineSpacing = 20
)

var (
	background   = color.Black
	particleFill = color.White
	overlayFace  = text.NewGoXFace(basicfont.Face7x13)
)

// Game drives a simulation from the Ebitengine loop. Each tick polls input,
// advances one step, and each frame draws the particles and the stats overlay.
type Game struct {
	sim          *gas.Simulation
	Paused       bool
	DisplayStats bool
	ColorBySpeed bool
	particles    []gas.Particle
}

// NewGame wraps sim
func NewGame(sim *gas.Simulation) *Game {
	return &Game{
		sim:          sim,
		DisplayStats: true,
	}
}

// Run opens a window sized to the box and blocks until the run finishes or
// the window is closed
func Run(sim *gas.Simulation, title string) error {
	size := int(math.Ceil(sim.Params().BoxSize))
	ebiten.SetWindowSize(size, size)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(TPS)

	return ebiten.RunGame(NewGame(sim))
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	if g.handleInput() {
		g.sim.Terminate()
		return ebiten.Termination
	}
	if g.sim.Done() {
		return ebiten.Termination
	}
	if !g.Paused {
		g.sim.Step()
	}
	return nil
}

// handleInput processes keyboard input and reports whether the user quit
func (g *Game) handleInput() bool {
	if ebiten.IsWindowBeingClosed() {
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Paused = !g.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.DisplayStats = !g.DisplayStats
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ColorBySpeed = !g.ColorBySpeed
	}
	return false
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	params := g.sim.Params()
	thermalSpeed := math.Sqrt(2 * params.Boltzmann * g.sim.Last().Temperature / params.Mass)
	g.particles = g.sim.AppendParticles(g.particles[:0])
	for _, p := range g.particles {
		var fill color.Color = particleFill
		if g.ColorBySpeed {
			fill = speedColor(r2.Norm(p.Vel), thermalSpeed)
		}
		x, y := math.Round(p.Pos.X), math.Round(p.Pos.Y)
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(p.Radius), fill, true)
	}

	if g.DisplayStats {
		op := &text.DrawOptions{}
		op.GeoM.Translate(10, 10)
		op.ColorScale.ScaleWithColor(color.White)
		op.LineSpacing = lineSpacing
		text.Draw(screen, Overlay(g.sim.Last(), g.sim.Len(), g.Paused), overlayFace, op)
	}
}

// Layout returns the screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := int(math.Ceil(g.sim.Params().BoxSize))
	return size, size
}

// Overlay formats the stats text drawn in the top left corner
func Overlay(s gas.Sample, particles int, paused bool) string {
	str := fmt.Sprintf(
		"Temperature: %.2f\nPressure: %.2f\nParticles: %d",
		s.Temperature, s.Pressure, particles,
	)
	if paused {
		str += "\nPaused"
	}
	return str
}
