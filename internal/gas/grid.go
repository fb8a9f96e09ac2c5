package gas

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultGridSize is the number of cells along each side of the box
const DefaultGridSize = 20

// Cell is an integer cell coordinate in the grid
type Cell struct {
	X, Y int
}

// Grid buckets particle indices into uniform square cells. It is an index over
// the particle slice and is rebuilt from scratch every step.
type Grid struct {
	Size     int
	BoxSize  float64
	Wrap     bool // Toroidal neighbour lookup at the box edges
	CellSize float64
	Cells    map[Cell][]int
}

// NewGrid creates an empty grid of size x size cells over a square box
func NewGrid(size int, boxSize float64, wrap bool) *Grid {
	if size < 1 {
		size = 1
	}
	return &Grid{
		Size:     size,
		BoxSize:  boxSize,
		Wrap:     wrap,
		CellSize: boxSize / float64(size),
		Cells:    make(map[Cell][]int),
	}
}

// Rebuild reassigns every particle index to exactly one cell
func (g *Grid) Rebuild(particles []Particle) {
	for key := range g.Cells {
		g.Cells[key] = g.Cells[key][:0]
	}
	for i := range particles {
		c := g.CellOf(particles[i].Pos)
		g.Cells[c] = append(g.Cells[c], i)
	}
}

// CellOf returns the cell holding pos. Positions outside the box are brought
// back into range by modulo in wrap mode and by clamping otherwise.
func (g *Grid) CellOf(pos r2.Vec) Cell {
	return Cell{
		X: g.fold(int(math.Floor(pos.X / g.CellSize))),
		Y: g.fold(int(math.Floor(pos.Y / g.CellSize))),
	}
}

// fold maps a raw cell coordinate into [0, Size)
func (g *Grid) fold(k int) int {
	if g.Wrap {
		return ((k % g.Size) + g.Size) % g.Size
	}
	if k < 0 {
		return 0
	} else if k >= g.Size {
		return g.Size - 1
	}
	return k
}

// Bucket returns the particle indices in a cell
func (g *Grid) Bucket(c Cell) []int {
	return g.Cells[c]
}

// neighbourCells lists the distinct cells of the 3x3 block around c
func (g *Grid) neighbourCells(c Cell, buf []Cell) []Cell {
	buf = buf[:0]
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			x, y := c.X+dx, c.Y+dy
			if g.Wrap {
				x = ((x % g.Size) + g.Size) % g.Size
				y = ((y % g.Size) + g.Size) % g.Size
			} else if x < 0 || x >= g.Size || y < 0 || y >= g.Size {
				continue
			}
			n := Cell{x, y}
			dup := false
			for _, seen := range buf {
				if seen == n {
					dup = true
					break
				}
			}
			if !dup {
				buf = append(buf, n)
			}
		}
	}
	return buf
}

// Neighbours appends to buf the union of particle indices in the 3x3 block
// of cells around c, c included
func (g *Grid) Neighbours(c Cell, buf []int) []int {
	var cells [9]Cell
	for _, n := range g.neighbourCells(c, cells[:0]) {
		buf = append(buf, g.Cells[n]...)
	}
	return buf
}

// Count returns the number of indices stored over all cells
func (g *Grid) Count() int {
	n := 0
	for _, bucket := range g.Cells {
		n += len(bucket)
	}
	return n
}
