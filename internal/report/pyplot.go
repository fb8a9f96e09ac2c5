package report

import (
	"path/filepath"
	"strings"

	plt "github.com/phil-mansfield/pyplot"
)

// Pyplot renders the series through matplotlib. Temperature and pressure
// go to separate figures named after Path, e.g. run_temperature.png and
// run_pressure.png for Path run.png. Requires python with matplotlib.
type Pyplot struct {
	Path string
	Show bool // Also open an interactive window
}

// Report builds both figures and runs the generated script
func (p Pyplot) Report(times, temperatures, pressures []float64) error {
	if len(times) == 0 {
		return ErrEmptySeries
	}
	tName, pName := p.FigureNames()

	plt.Reset()

	plt.Figure(plt.FigSize(8, 4))
	plt.Plot(times, temperatures, "r", plt.LW(2))
	plt.Title("Temperature Over Time")
	plt.XLabel("Time", plt.FontSize(14))
	plt.YLabel("Temperature", plt.FontSize(14))
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(tName)

	plt.Figure(plt.FigSize(8, 4))
	plt.Plot(times, pressures, "g", plt.LW(2))
	plt.Title("Pressure Over Time")
	plt.XLabel("Time", plt.FontSize(14))
	plt.YLabel("Pressure", plt.FontSize(14))
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(pName)

	if p.Show {
		plt.Show()
	} else {
		plt.Execute()
	}
	return nil
}

// FigureNames returns the temperature and pressure figure paths
func (p Pyplot) FigureNames() (temperature, pressure string) {
	ext := filepath.Ext(p.Path)
	if ext == "" {
		ext = ".png"
	}
	stem := strings.TrimSuffix(p.Path, filepath.Ext(p.Path))
	return stem + "_temperature" + ext, stem + "_pressure" + ext
}
