// growthsim runs one batch of logistic growth-curve simulations and writes
// the resulting point table and optional diagnostic plots.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/growthcurve/internal/export"
	"github.com/banshee-data/growthcurve/internal/logistic"
	"github.com/banshee-data/growthcurve/internal/scenario"
	"github.com/banshee-data/growthcurve/internal/simplot"
	"github.com/banshee-data/growthcurve/internal/version"
)

var (
	scenarioPath = flag.String("scenario", "", "Path to a scenario file (.json, .yaml, .yml)")
	n            = flag.Int("n", 0, "Override the number of curves to simulate")
	seed         = flag.Uint64("seed", 0, "Seed the random source (0 leaves the scenario's seed in place)")
	csvOut       = flag.String("csv", "", "Write the point table as CSV to this path (- for stdout)")
	jsonOut      = flag.String("json", "", "Write the point table as JSON to this path")
	plotDir      = flag.String("plot-dir", "", "Write curve-family and min-proportion plots into this directory")
	showVersion  = flag.Bool("version", false, "Print the build version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	sc := &scenario.Scenario{N: 40}
	if *scenarioPath != "" {
		loaded, err := scenario.Load(*scenarioPath)
		if err != nil {
			log.Fatalf("failed to load scenario: %v", err)
		}
		sc = loaded
	}
	if *n > 0 {
		sc.N = *n
	}
	if *seed != 0 {
		s := *seed
		sc.Seed = &s
	}

	batch, err := sc.Resolver().Batch(sc.N, sc.TimeValues(), sc.Specs())
	if err != nil {
		log.Fatalf("simulation failed: %v", err)
	}
	points := batch.Points()
	log.Printf("simulated %d curves (%d points)", len(batch.Curves), len(points))

	wroteOutput := false

	if *csvOut != "" {
		if err := writeCSV(*csvOut, points); err != nil {
			log.Fatalf("failed to write CSV: %v", err)
		}
		wroteOutput = true
	}

	if *jsonOut != "" {
		f, err := os.Create(*jsonOut)
		if err != nil {
			log.Fatalf("failed to create JSON output: %v", err)
		}
		if err := export.WriteJSON(f, points); err != nil {
			f.Close()
			log.Fatalf("failed to write JSON: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("failed to close JSON output: %v", err)
		}
		wroteOutput = true
	}

	if *plotDir != "" {
		if err := os.MkdirAll(*plotDir, 0755); err != nil {
			log.Fatalf("failed to create plot directory: %v", err)
		}
		title := sc.Name
		if title == "" {
			title = fmt.Sprintf("logistic curves (n=%d)", sc.N)
		}
		if err := simplot.CurveFamily(batch, title, filepath.Join(*plotDir, "curves.png")); err != nil {
			log.Fatalf("failed to plot curve family: %v", err)
		}
		if err := simplot.MinHistogram(batch, title+" min proportion", filepath.Join(*plotDir, "min_proportion.png")); err != nil {
			log.Fatalf("failed to plot min proportion histogram: %v", err)
		}
		log.Printf("wrote plots to %s", *plotDir)
		wroteOutput = true
	}

	// default to CSV on stdout so the tool is useful in a pipeline
	if !wroteOutput {
		if err := export.WriteCSV(os.Stdout, points); err != nil {
			log.Fatalf("failed to write CSV: %v", err)
		}
	}
}

func writeCSV(path string, points []logistic.Point) error {
	if path == "-" {
		return export.WriteCSV(os.Stdout, points)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(f, points); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
