package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"os"
	"time"
)

// WriteCSV writes a flight log with CSVHeader.
func WriteCSV(w io.Writer, snaps []Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, s := range snaps {
		if err := cw.Write(s.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, snaps []Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, snaps)
}

type ExportData struct {
	Run       *RunMetadata `json:"run"`
	Snapshots []Snapshot   `json:"snapshots"`
}

func WriteJSON(w io.Writer, meta *RunMetadata, snaps []Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: meta, Snapshots: snaps})
}

func ExportJSON(path string, meta *RunMetadata, snaps []Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, snaps)
}

// finite maps values JSON cannot encode to null.
func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// MarshalJSON encodes the touchdown speed and cost of an unstable run as null.
func (m RunMetadata) MarshalJSON() ([]byte, error) {
	type plain RunMetadata
	return json.Marshal(struct {
		plain
		Cost           *float64  `json:"cost,omitempty"`
		TouchdownSpeed *float64  `json:"touchdown_speed"`
		CreatedAt      time.Time `json:"created_at"`
	}{plain(m), finite(m.Cost), finite(m.TouchdownSpeed), m.CreatedAt()})
}

// MarshalJSON encodes the instability sentinel in the vertical velocity as null.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot
	return json.Marshal(struct {
		plain
		VelZ *float64 `json:"vel_z"`
	}{plain(s), finite(s.VelZ)})
}
