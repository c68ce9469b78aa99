package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/arena/internal/config"
	"github.com/san-kum/arena/internal/dynamo"
)

const (
	metaFile   = "metadata.json"
	statesFile = "states.csv"
	configFile = "config.yaml"
	fieldsPer  = 4
)

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
	ID           string             `json:"id"`
	Preset       string             `json:"preset"`
	Timestamp    time.Time          `json:"timestamp"`
	Frames       int                `json:"frames"`
	Bodies       int                `json:"bodies"`
	Width        float64            `json:"width"`
	Height       float64            `json:"height"`
	Radius       float64            `json:"radius"`
	ImpulseScale float64            `json:"impulse_scale"`
	Gestures     int                `json:"gestures"`
	Metrics      map[string]float64 `json:"metrics"`
}

// NewMetadata fills the run description from cfg.
func NewMetadata(preset string, cfg *config.Config, frames [][]dynamo.Body, metrics map[string]float64) RunMetadata {
	bodies := 0
	if len(frames) > 0 {
		bodies = len(frames[0])
	}
	return RunMetadata{
		Preset:       preset,
		Frames:       len(frames),
		Bodies:       bodies,
		Width:        cfg.Arena.Width,
		Height:       cfg.Arena.Height,
		Radius:       cfg.Bodies.Radius,
		ImpulseScale: cfg.ImpulseScale,
		Gestures:     len(cfg.Gestures),
		Metrics:      metrics,
	}
}

// Save writes metadata, the config used and every frame of body state.
func (s *Store) Save(meta RunMetadata, cfg *config.Config, frames [][]dynamo.Body) (string, error) {
	meta.Timestamp = time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Preset, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metaFile), meta); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), frames); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStates(path string, frames [][]dynamo.Body) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	n := 0
	if len(frames) > 0 {
		n = len(frames[0])
	}
	header := []string{"frame"}
	for i := 0; i < n; i++ {
		header = append(header,
			fmt.Sprintf("b%d_x", i), fmt.Sprintf("b%d_y", i),
			fmt.Sprintf("b%d_dx", i), fmt.Sprintf("b%d_dy", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, bodies := range frames {
		row := make([]string, 0, 1+fieldsPer*len(bodies))
		row = append(row, strconv.Itoa(i))
		for _, b := range bodies {
			row = append(row, formatFloat(b.Pos.X), formatFloat(b.Pos.Y), formatFloat(b.Vel.X), formatFloat(b.Vel.Y))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns stored runs, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

// LoadFrames reads back every recorded frame. Bodies get the run's radius.
func (s *Store) LoadFrames(runID string) ([][]dynamo.Body, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]dynamo.Body{}, nil
	}

	frames := make([][]dynamo.Body, 0, len(records)-1)
	for i, record := range records[1:] {
		if (len(record)-1)%fieldsPer != 0 {
			return nil, fmt.Errorf("storage: %s row %d: %d fields", runID, i+1, len(record))
		}
		bodies := make([]dynamo.Body, 0, (len(record)-1)/fieldsPer)
		for j := 1; j < len(record); j += fieldsPer {
			var v [fieldsPer]float64
			for k := range v {
				v[k], err = strconv.ParseFloat(record[j+k], 64)
				if err != nil {
					return nil, fmt.Errorf("storage: %s row %d: %w", runID, i+1, err)
				}
			}
			bodies = append(bodies, dynamo.Body{
				Pos:    dynamo.Vec2{X: v[0], Y: v[1]},
				Vel:    dynamo.Vec2{X: v[2], Y: v[3]},
				Radius: meta.Radius,
			})
		}
		frames = append(frames, bodies)
	}

	return frames, nil
}
