package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldlab/internal/field"
)

// Store persists sampled runs on the filesystem. Each run is a directory
// holding metadata.json, scene.yaml (the charge set) and samples.csv (the
// field grid).
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Experiment  string             `json:"experiment"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Stepper     string             `json:"stepper"`
	GridSpacing float64            `json:"grid_spacing"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Stats       map[string]float64 `json:"stats"`
}

type sceneFile struct {
	Charges []field.Charge `yaml:"charges"`
}

// Save writes one run and returns its generated ID.
func (s *Store) Save(experiment, stepper string, seed int64, b field.Bounds, spacing float64,
	charges []field.Charge, samples []field.Sample, stats map[string]float64) (string, error) {

	runID := fmt.Sprintf("%s_%d", experiment, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Experiment:  experiment,
		Timestamp:   time.Now(),
		Seed:        seed,
		Stepper:     stepper,
		GridSpacing: spacing,
		Width:       b.Width,
		Height:      b.Height,
		Stats:       stats,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	sceneData, err := yaml.Marshal(sceneFile{Charges: charges})
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, "scene.yaml"), sceneData, 0644); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "ex", "ey", "mag"}); err != nil {
		return "", err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatFloat(smp.Pos.X, 'f', 6, 64),
			strconv.FormatFloat(smp.Pos.Y, 'f', 6, 64),
			strconv.FormatFloat(smp.E.X, 'f', 6, 64),
			strconv.FormatFloat(smp.E.Y, 'f', 6, 64),
			strconv.FormatFloat(smp.Mag, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every stored run, skipping unreadable entries.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("run not found: %s", runID)
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadScene reads back the charge set of a run.
func (s *Store) LoadScene(runID string) ([]field.Charge, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "scene.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scene not found for run: %s", runID)
	}
	var sf sceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, err
	}
	return sf.Charges, nil
}

// LoadSamples reads back the sampled field grid of a run.
func (s *Store) LoadSamples(runID string) ([]field.Sample, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, fmt.Errorf("samples not found for run: %s", runID)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return []field.Sample{}, nil
	}

	samples := make([]field.Sample, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 5 {
			continue
		}
		vals := make([]float64, 5)
		ok := true
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		samples = append(samples, field.Sample{
			Pos: field.Vec2{X: vals[0], Y: vals[1]},
			E:   field.Vec2{X: vals[2], Y: vals[3]},
			Mag: vals[4],
		})
	}
	return samples, nil
}
