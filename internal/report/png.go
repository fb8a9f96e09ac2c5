package report

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	temperatureColor = color.RGBA{R: 220, G: 30, B: 30, A: 255}
	pressureColor    = color.RGBA{R: 30, G: 160, B: 30, A: 255}
)

// PNG draws temperature and pressure against time as two stacked panels
type PNG struct {
	Path          string
	Width, Height vg.Length // 8x8 inches when zero
}

// Report writes the figure to p.Path
func (p PNG) Report(times, temperatures, pressures []float64) error {
	if len(times) == 0 {
		return ErrEmptySeries
	}
	tPlot, err := seriesPlot("Temperature Over Time", "Temperature", times, temperatures, temperatureColor)
	if err != nil {
		return fmt.Errorf("temperature plot: %w", err)
	}
	pPlot, err := seriesPlot("Pressure Over Time", "Pressure", times, pressures, pressureColor)
	if err != nil {
		return fmt.Errorf("pressure plot: %w", err)
	}

	w, h := p.Width, p.Height
	if w == 0 {
		w = 8 * vg.Inch
	}
	if h == 0 {
		h = 8 * vg.Inch
	}
	img := vgimg.New(w, h)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 4,
		PadY:      vg.Millimeter * 6,
	}
	plots := [][]*plot.Plot{{tPlot}, {pPlot}}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		plots[j][0].Draw(canvases[j][0])
	}

	return savePNG(img, p.Path)
}

func seriesPlot(title, yLabel string, xs, ys []float64, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(xs))
	for i := range pts {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	p.Add(line)
	return p, nil
}

func savePNG(img *vgimg.Canvas, fname string) error {
	if err := os.MkdirAll(filepath.Dir(fname), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return f.Close()
}
