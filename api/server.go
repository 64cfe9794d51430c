// Package api exposes the curve simulator over HTTP: a JSON simulation
// endpoint for programmatic consumers and an HTML chart endpoint for quick
// visual inspection of curve families.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"

	"github.com/banshee-data/growthcurve/internal/export"
	"github.com/banshee-data/growthcurve/internal/logistic"
	"github.com/banshee-data/growthcurve/internal/scenario"
	"github.com/banshee-data/growthcurve/internal/simulate"
)

// maxBodySize caps scenario request bodies at 1MB.
const maxBodySize = 1 * 1024 * 1024

type Server struct{}

func NewServer() *Server {
	return &Server{}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/simulate", s.handleSimulate)
	mux.HandleFunc("/curves", s.handleCurves)
	mux.HandleFunc("/", s.homeHandler)
	return mux
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Welcome to the Growth Curve Simulator!"))
}

// handleSimulate runs one batch simulation from a scenario document posted
// as JSON and returns the flat point table. Each run is tagged with a UUID
// so consumers can correlate saved outputs with server logs.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err))
		return
	}

	sc, err := scenario.ParseJSON(body)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	batch, err := sc.Resolver().Batch(sc.N, sc.TimeValues(), sc.Specs())
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	points, err := export.MarshalPoints(batch.Points())
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to marshal points: %v", err))
		return
	}

	runID := uuid.NewString()
	log.Printf("simulate run %s: scenario=%q n=%d points=%d", runID, sc.Name, sc.N, len(batch.Points()))

	resp := struct {
		RunID  string          `json:"run_id"`
		Name   string          `json:"name,omitempty"`
		N      int             `json:"n"`
		Points json.RawMessage `json:"points"`
	}{
		RunID:  runID,
		Name:   sc.Name,
		N:      sc.N,
		Points: points,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Run-ID", runID)
	json.NewEncoder(w).Encode(resp)
}

// handleCurves renders a quick line chart (HTML) of a simulated curve
// family using go-echarts. Query params:
//   - n (optional; default 40) number of curves
//   - seed (optional) for reproducible draws
//   - mid, asymptote, scale (optional) fixed parameter overrides
func (s *Server) handleCurves(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	n := 40
	if q := r.URL.Query().Get("n"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 1 || v > 500 {
			s.writeJSONError(w, http.StatusBadRequest, "n must be an integer in [1, 500]")
			return
		}
		n = v
	}

	resolver := simulate.NewResolver(nil)
	if q := r.URL.Query().Get("seed"); q != "" {
		seed, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "seed must be an unsigned integer")
			return
		}
		resolver = simulate.NewSeededResolver(seed)
	}

	var specs simulate.Specs
	for _, p := range []struct {
		name string
		spec *simulate.ParamSpec
	}{
		{"mid", &specs.Mid},
		{"asymptote", &specs.Asymptote},
		{"scale", &specs.Scale},
	} {
		q := r.URL.Query().Get(p.name)
		if q == "" {
			continue
		}
		v, err := strconv.ParseFloat(q, 64)
		if err != nil {
			s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("%s must be a number", p.name))
			return
		}
		*p.spec = simulate.Fixed(v)
	}

	times := logistic.DefaultTimes()
	batch, err := resolver.Batch(n, times, specs)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	x := make([]string, len(times))
	for i, t := range times {
		x[i] = strconv.FormatFloat(t, 'g', -1, 64)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Logistic Curve Family", Width: "1100px", Height: "650px"}),
		charts.WithTitleOpts(opts.Title{Title: "Logistic Curve Family", Subtitle: fmt.Sprintf("n=%d points=%d", n, len(batch.Points()))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "proportion"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)

	line.SetXAxis(x)
	for _, c := range batch.Curves {
		data := make([]opts.LineData, len(c.Points))
		for i, pt := range c.Points {
			// echarts treats nil as a gap; NaN/Inf would corrupt the JSON payload
			if math.IsNaN(pt.Proportion) || math.IsInf(pt.Proportion, 0) {
				data[i] = opts.LineData{Value: nil}
				continue
			}
			data[i] = opts.LineData{Value: pt.Proportion}
		}
		line.AddSeries(fmt.Sprintf("sim %d", c.Sim), data)
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
