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

	"github.com/google/uuid"

	"github.com/san-kum/tmsim/internal/machine"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
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
	ID         string             `json:"id"`
	Machine    string             `json:"machine"`
	Timestamp  time.Time          `json:"timestamp"`
	Input      string             `json:"input"`
	MaxSteps   int                `json:"max_steps"`
	Outcome    string             `json:"outcome"`
	Steps      int                `json:"steps"`
	FinalState string             `json:"final_state"`
	Output     string             `json:"output"`
	Metrics    map[string]float64 `json:"metrics"`
}

// TraceRow is one configuration of a stored trace. Tape holds every
// materialised cell with blanks as spaces.
type TraceRow struct {
	Step  int    `json:"step"`
	State string `json:"state"`
	Head  int    `json:"head"`
	Tape  string `json:"tape"`
}

func NewRunID(name string) string {
	return fmt.Sprintf("%s_%d_%s", name, time.Now().Unix(), uuid.NewString()[:8])
}

// Save writes the run metadata and its full trace under a fresh run id.
func (s *Store) Save(name string, input string, maxSteps int, result *machine.Result) (string, error) {
	runID := NewRunID(name)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Machine:    name,
		Timestamp:  time.Now(),
		Input:      input,
		MaxSteps:   maxSteps,
		Outcome:    result.Outcome.String(),
		Steps:      result.Steps,
		FinalState: result.Final.State.String(),
		Output:     result.Output(),
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, traceFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"step", "state", "head", "tape"}); err != nil {
		return "", err
	}
	for i, c := range result.Trace() {
		row := []string{
			strconv.Itoa(i),
			c.State.String(),
			strconv.Itoa(c.Tape.Head()),
			c.Tape.String(),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every readable run, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadTrace(runID string) ([]TraceRow, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	if len(records) < 2 {
		return []TraceRow{}, nil
	}

	rows := make([]TraceRow, 0, len(records)-1)
	for i, record := range records[1:] {
		step, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("run %s line %d: %w", runID, i+2, err)
		}
		head, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("run %s line %d: %w", runID, i+2, err)
		}
		rows = append(rows, TraceRow{Step: step, State: record[1], Head: head, Tape: record[3]})
	}

	return rows, nil
}
