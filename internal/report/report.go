// Package report holds the post-run consumers of a simulation's time
// series: image plots, a terminal summary and a plain text table.
package report

import (
	"errors"

	"github.com/olivierh59500/idealgas-go/internal/gas"
)

// ErrEmptySeries is returned by plotters handed a run with no steps
var ErrEmptySeries = errors.New("report: empty series")

// Multi hands the series to every reporter in turn and joins their errors
type Multi []gas.Reporter

// Report calls every reporter, even after a failure
func (m Multi) Report(times, temperatures, pressures []float64) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(times, temperatures, pressures); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
