package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Trace []TraceRow `json:"trace"`
}

// ExportJSON writes a run and its trace as one indented JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	rows, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Trace: rows})
}
