package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is a run flattened into a single JSON document.
type ExportData struct {
	RunMetadata
	DrawMs []float64 `json:"draw_ms"`
	Hashes []uint64  `json:"hashes"`
}

func (s *Store) exportData(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return nil, err
	}
	data := &ExportData{
		RunMetadata: *meta,
		DrawMs:      make([]float64, len(frames)),
		Hashes:      make([]uint64, len(frames)),
	}
	for i, f := range frames {
		data.DrawMs[i] = ms(f.Duration)
		data.Hashes[i] = f.Hash
	}
	return data, nil
}

// ExportJSON writes the run to path.
func (s *Store) ExportJSON(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.WriteJSON(file, runID)
}

// WriteJSON writes the run as indented JSON to w.
func (s *Store) WriteJSON(w io.Writer, runID string) error {
	data, err := s.exportData(runID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
