// Package storage keeps a directory of recorded sessions: one folder per run
// with its metadata and per-frame timings.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
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

// RunMetadata describes one render or bench session.
type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      uint64             `json:"seed"`
	Theme     string             `json:"theme"`
	FPS       int                `json:"fps"`
	Cols      int                `json:"cols"`
	Rows      int                `json:"rows"`
	Outputs   []string           `json:"outputs,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Frame is one dispatched frame: its offset from the start of the run, how
// long it took to draw and the hash of the composed screen.
type Frame struct {
	At       time.Duration
	Duration time.Duration
	Hash     uint64
}

// Save writes meta and frames into a new run directory and returns its id.
// meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, frames []Frame) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Kind, now.UnixNano())
	meta.Timestamp = now
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"frame", "at_ms", "draw_ms", "hash"}); err != nil {
		return "", err
	}
	for i, f := range frames {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(ms(f.At), 'f', 3, 64),
			strconv.FormatFloat(ms(f.Duration), 'f', 3, 64),
			strconv.FormatUint(f.Hash, 16),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// List returns every readable run, oldest first. A missing directory is an
// empty store.
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads the frame table back. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
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
		return []Frame{}, nil
	}

	frames := make([]Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		at, err1 := strconv.ParseFloat(record[1], 64)
		draw, err2 := strconv.ParseFloat(record[2], 64)
		hash, err3 := strconv.ParseUint(record[3], 16, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		frames = append(frames, Frame{
			At:       time.Duration(at * float64(time.Millisecond)),
			Duration: time.Duration(draw * float64(time.Millisecond)),
			Hash:     hash,
		})
	}
	return frames, nil
}
