package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/olivierh59500/idealgas-go/internal/config"
	"github.com/olivierh59500/idealgas-go/internal/gas"
	"github.com/olivierh59500/idealgas-go/internal/render"
	"github.com/olivierh59500/idealgas-go/internal/report"
)

var (
	configFile = flag.String("config", "", "run file, see -example")
	example    = flag.Bool("example", false, "print an example run file and exit")
	replot     = flag.String("replot", "", "plot a table written by a previous run and exit")

	particles   = flag.Int("particles", 0, "number of particles")
	boxSize     = flag.Float64("box", 0, "box side length")
	radius      = flag.Float64("radius", 0, "particle radius")
	temperature = flag.Float64("temperature", 0, "initial temperature")
	dt          = flag.Float64("dt", 0, "timestep")
	steps       = flag.Int("steps", 0, "total steps")
	gridSize    = flag.Int("grid", 0, "broad phase cells per side")
	wrap        = flag.Bool("wrap", false, "toroidal neighbour lookup")
	seed        = flag.Int64("seed", 0, "random seed, 0 seeds from the clock")

	headless  = flag.Bool("headless", false, "run without a window")
	frameRate = flag.Float64("fps", 0, "steps per second, 0 is unthrottled when headless")
	plotFile  = flag.String("png", "", "write temperature and pressure plots to this PNG")
	tableFile = flag.String("table", "", "write the time series to this text table")
	pyplot    = flag.String("pyplot", "", "plot through matplotlib to this file")
	terminal  = flag.Bool("terminal", true, "print a summary and ASCII charts")
)

func main() {
	flag.Parse()

	if *example {
		fmt.Println(config.ExampleConfigFile)
		return
	}

	// Run file, then command line overrides
	w := config.DefaultWrapper()
	if *configFile != "" {
		var err error
		w, err = config.ReadFile(*configFile)
		if err != nil {
			log.Fatal(err.Error())
		}
	}
	applyFlags(w)
	if err := w.CheckInit(); err != nil {
		log.Fatal(err.Error())
	}

	if *replot != "" {
		series, err := report.ReadSeries(*replot)
		if err != nil {
			log.Fatal(err.Error())
		}
		w.Output.TableFile = ""
		finish(reporters(&w.Output), series)
		return
	}

	sim := gas.New(w.Simulation.Params())
	rep := reporters(&w.Output)

	if w.Output.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := sim.RunWith(ctx, rep, gas.RunOptions{FrameRate: w.Output.FrameRate})
		checkReport(err)
		if !sim.Completed() {
			log.Printf("Stopped after %d of %d steps.", sim.StepCount(), w.Simulation.TotalSteps)
		}
		return
	}

	if err := render.Run(sim, "Ideal Gas Simulation"); err != nil {
		log.Fatal(err)
	}
	if sim.Completed() {
		finish(rep, sim.Series())
	}
}

// applyFlags copies every flag given on the command line into w
func applyFlags(w *config.Wrapper) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "particles":
			w.Simulation.Particles = *particles
		case "box":
			w.Simulation.BoxSize = *boxSize
		case "radius":
			w.Simulation.Radius = *radius
		case "temperature":
			w.Simulation.Temperature = *temperature
		case "dt":
			w.Simulation.TimeStep = *dt
		case "steps":
			w.Simulation.TotalSteps = *steps
		case "grid":
			w.Simulation.GridSize = *gridSize
		case "wrap":
			w.Simulation.WrapNeighbors = *wrap
		case "seed":
			w.Simulation.Seed = *seed
		case "headless":
			w.Output.Headless = *headless
		case "fps":
			w.Output.FrameRate = *frameRate
		case "png":
			w.Output.PlotFile = *plotFile
		case "table":
			w.Output.TableFile = *tableFile
		case "pyplot":
			w.Output.PyplotFile = *pyplot
		case "terminal":
			w.Output.Terminal = *terminal
		}
	})
}

// reporters builds the post-run consumers named in the [Output] section
func reporters(out *config.OutputConfig) gas.Reporter {
	var m report.Multi
	if out.TableFile != "" {
		m = append(m, report.Table{Path: out.TableFile})
	}
	if out.PlotFile != "" {
		m = append(m, report.PNG{Path: out.PlotFile})
	}
	if out.PyplotFile != "" {
		m = append(m, report.Pyplot{Path: out.PyplotFile})
	}
	if out.Terminal {
		m = append(m, report.Terminal{W: os.Stdout})
	}
	return m
}

func finish(r gas.Reporter, s gas.Series) {
	checkReport(r.Report(s.Times, s.Temperatures, s.Pressures))
}

func checkReport(err error) {
	switch {
	case err == nil:
	case errors.Is(err, report.ErrEmptySeries):
		log.Printf("Warning: %s", err)
	default:
		log.Fatal(err.Error())
	}
}
