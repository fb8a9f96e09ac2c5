package report

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/phil-mansfield/table"

	"github.com/olivierh59500/idealgas-go/internal/gas"
)

// Table writes the series as whitespace separated columns: time,
// temperature, pressure. ReadSeries reads it back.
type Table struct {
	Path string
}

// Report writes one row per step
func (t Table) Report(times, temperatures, pressures []float64) error {
	f, err := os.Create(t.Path)
	if err != nil {
		return fmt.Errorf("cannot create table: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := range times {
		fmt.Fprintf(w, "%s %s %s\n", ftoa(times[i]), ftoa(temperatures[i]), ftoa(pressures[i]))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("cannot write table: %w", err)
	}
	return f.Close()
}

func ftoa(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// ReadSeries loads a table written by Table
func ReadSeries(fname string) (gas.Series, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2}, nil)
	if err != nil {
		return gas.Series{}, fmt.Errorf("reading %s: %w", fname, err)
	}
	return gas.Series{Times: cols[0], Temperatures: cols[1], Pressures: cols[2]}, nil
}
