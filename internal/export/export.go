// Package export writes simulated point tables as CSV or JSON. The
// row-and-column shape (one row per time point per curve, columns sim,
// time, proportion, asymptote, scale, mid, min_proportion) is the
// compatibility contract downstream plotting and reporting code depends
// on; do not reorder or rename columns.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/banshee-data/growthcurve/internal/logistic"
)

// Columns is the output column order for all tabular formats.
var Columns = []string{"sim", "time", "proportion", "asymptote", "scale", "mid", "min_proportion"}

// WriteCSV writes the point table with a header row. Non-finite values
// render as their IEEE string forms (NaN, +Inf, -Inf).
func WriteCSV(w io.Writer, pts []logistic.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, p := range pts {
		rec := []string{
			strconv.Itoa(p.Sim),
			formatFloat(p.Time),
			formatFloat(p.Proportion),
			formatFloat(p.Asymptote),
			formatFloat(p.Scale),
			formatFloat(p.Mid),
			formatFloat(p.MinProportion),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// jsonPoint mirrors logistic.Point but tolerates non-finite proportions:
// encoding/json rejects NaN and infinities, so those encode as their IEEE
// string forms instead.
type jsonPoint struct {
	Sim           int     `json:"sim"`
	Time          float64 `json:"time"`
	Proportion    any     `json:"proportion"`
	Asymptote     float64 `json:"asymptote"`
	Scale         float64 `json:"scale"`
	Mid           float64 `json:"mid"`
	MinProportion any     `json:"min_proportion"`
}

// MarshalPoints renders the point table as a JSON array.
func MarshalPoints(pts []logistic.Point) ([]byte, error) {
	out := make([]jsonPoint, len(pts))
	for i, p := range pts {
		out[i] = jsonPoint{
			Sim:           p.Sim,
			Time:          p.Time,
			Proportion:    jsonValue(p.Proportion),
			Asymptote:     p.Asymptote,
			Scale:         p.Scale,
			Mid:           p.Mid,
			MinProportion: jsonValue(p.MinProportion),
		}
	}
	return json.Marshal(out)
}

// WriteJSON writes the point table as a JSON array.
func WriteJSON(w io.Writer, pts []logistic.Point) error {
	b, err := MarshalPoints(pts)
	if err != nil {
		return fmt.Errorf("failed to marshal points: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("failed to write points: %w", err)
	}
	return nil
}

func jsonValue(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return formatFloat(v)
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
