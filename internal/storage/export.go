package storage

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"

	"github.com/san-kum/fieldlab/internal/field"
)

// ExportData is the flat JSON form of one run: metadata plus every grid
// sample and the charge set that produced it.
type ExportData struct {
	ID          string             `json:"id"`
	Experiment  string             `json:"experiment"`
	Stepper     string             `json:"stepper"`
	GridSpacing float64            `json:"grid_spacing"`
	Charges     []field.Charge     `json:"charges"`
	Samples     []field.Sample     `json:"samples"`
	Stats       map[string]float64 `json:"stats"`
}

// ExportJSONStdout writes a run as indented JSON to stdout.
func ExportJSONStdout(meta *RunMetadata, charges []field.Charge, samples []field.Sample) error {
	data := ExportData{
		ID:          meta.ID,
		Experiment:  meta.Experiment,
		Stepper:     meta.Stepper,
		GridSpacing: meta.GridSpacing,
		Charges:     charges,
		Samples:     samples,
		Stats:       meta.Stats,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSVStdout writes a run's grid samples as CSV to stdout.
func ExportCSVStdout(samples []field.Sample) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "ex", "ey", "mag"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.Pos.X, 'f', 6, 64),
			strconv.FormatFloat(s.Pos.Y, 'f', 6, 64),
			strconv.FormatFloat(s.E.X, 'f', 6, 64),
			strconv.FormatFloat(s.E.Y, 'f', 6, 64),
			strconv.FormatFloat(s.Mag, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
