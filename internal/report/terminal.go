package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/olivierh59500/idealgas-go/internal/gas"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// Terminal prints a summary table and ASCII charts of both observables
type Terminal struct {
	W             io.Writer
	Width, Height int // Chart size in characters, 60x10 when zero
}

// Report writes the summary to t.W
func (t Terminal) Report(times, temperatures, pressures []float64) error {
	series := gas.Series{Times: times, Temperatures: temperatures, Pressures: pressures}
	sum := series.Summary()

	var b strings.Builder
	b.WriteString(headerStyle.Render("Ideal Gas Simulation") + "\n")
	writeRow(&b, "Steps", fmt.Sprintf("%d", sum.Steps))
	if len(times) > 0 {
		writeRow(&b, "Time", fmt.Sprintf("%.2f", times[len(times)-1]))
	}
	writeRow(&b, "Temperature", fmt.Sprintf("%.4f ± %.4f", sum.MeanTemperature, sum.StdTemperature))
	writeRow(&b, "Pressure", fmt.Sprintf("%.4f ± %.4f", sum.MeanPressure, sum.StdPressure))

	if len(times) > 0 {
		b.WriteString(graphStyle.Render(t.chart(temperatures, "Temperature")) + "\n")
		b.WriteString(graphStyle.Render(t.chart(pressures, "Pressure")) + "\n")
	}

	_, err := io.WriteString(t.W, b.String())
	return err
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
}

func (t Terminal) chart(ys []float64, caption string) string {
	w, h := t.Width, t.Height
	if w <= 0 {
		w = 60
	}
	if h <= 0 {
		h = 10
	}
	lo, hi := chartBounds(ys)
	return asciigraph.Plot(ys,
		asciigraph.Width(w),
		asciigraph.Height(h),
		asciigraph.LowerBound(lo),
		asciigraph.UpperBound(hi),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	)
}

// chartBounds pads flat series so the chart keeps a readable vertical range
func chartBounds(ys []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, y := range ys {
		lo, hi = math.Min(lo, y), math.Max(hi, y)
	}
	minSpan := 1e-3 * math.Max(math.Abs(lo), math.Abs(hi))
	if minSpan == 0 {
		minSpan = 1
	}
	if hi-lo < minSpan {
		mid := 0.5 * (lo + hi)
		lo, hi = mid-minSpan/2, mid+minSpan/2
	}
	return lo, hi
}
