// Package storage keeps landing runs in a SQLite database and exports them
// as CSV flight logs or JSON documents.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/san-kum/landsim/internal/config"
	"github.com/san-kum/landsim/internal/dynamo"
	"github.com/san-kum/landsim/internal/landing"
)

const dbName = "runs.db"

var (
	ErrNotFound  = errors.New("storage: run not found")
	ErrAmbiguous = errors.New("storage: run id prefix is ambiguous")
)

type Store struct {
	baseDir string
	db      *sqlx.DB
}

// Open opens or creates the run database under baseDir.
func Open(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(baseDir, dbName)
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{baseDir: baseDir, db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		strategy TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		integrator TEXT NOT NULL,
		dt REAL NOT NULL,
		precision REAL NOT NULL,
		ignition REAL NOT NULL,
		kp REAL NOT NULL,
		ki REAL NOT NULL,
		kd REAL NOT NULL,
		cost REAL NOT NULL,
		iterations INTEGER NOT NULL,
		evaluations INTEGER NOT NULL,
		converged INTEGER NOT NULL,
		status TEXT NOT NULL,
		event TEXT NOT NULL,
		steps INTEGER NOT NULL,
		touchdown_speed REAL NOT NULL,
		fuel_used REAL NOT NULL,
		flight_time REAL NOT NULL,
		metrics_json TEXT NOT NULL,
		config_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		time REAL NOT NULL,
		dry_mass REAL NOT NULL,
		fuel_mass REAL NOT NULL,
		acc_x REAL NOT NULL,
		acc_y REAL NOT NULL,
		acc_z REAL NOT NULL,
		vel_x REAL NOT NULL,
		vel_y REAL NOT NULL,
		vel_z REAL NOT NULL,
		pos_x REAL NOT NULL,
		pos_y REAL NOT NULL,
		pos_z REAL NOT NULL,
		throttle_pct REAL NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

type RunMetadata struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Strategy    string  `db:"strategy" json:"strategy"`
	CreatedUnix int64   `db:"created_at" json:"-"`
	Integrator  string  `db:"integrator" json:"integrator"`
	Dt          float64 `db:"dt" json:"dt"`
	// Precision is eps for hoverslam and the Twiddle tolerance for PID.
	Precision   float64 `db:"precision" json:"precision"`
	Ignition    float64 `db:"ignition" json:"ignition,omitempty"`
	Kp          float64 `db:"kp" json:"kp,omitempty"`
	Ki          float64 `db:"ki" json:"ki,omitempty"`
	Kd          float64 `db:"kd" json:"kd,omitempty"`
	Cost        float64 `db:"cost" json:"cost,omitempty"`
	Iterations  int     `db:"iterations" json:"iterations"`
	Evaluations int     `db:"evaluations" json:"evaluations"`
	Converged   bool    `db:"converged" json:"converged"`

	Status         string  `db:"status" json:"status"`
	Event          string  `db:"event" json:"event"`
	Steps          int     `db:"steps" json:"steps"`
	TouchdownSpeed float64 `db:"touchdown_speed" json:"touchdown_speed"`
	FuelUsed       float64 `db:"fuel_used" json:"fuel_used"`
	FlightTime     float64 `db:"flight_time" json:"flight_time"`

	MetricsJSON string             `db:"metrics_json" json:"-"`
	ConfigJSON  string             `db:"config_json" json:"-"`
	Metrics     map[string]float64 `db:"-" json:"metrics"`
}

func (m *RunMetadata) CreatedAt() time.Time {
	return time.Unix(0, m.CreatedUnix)
}

// Config decodes the configuration the run was flown with.
func (m *RunMetadata) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if err := json.Unmarshal([]byte(m.ConfigJSON), cfg); err != nil {
		return nil, fmt.Errorf("decode config of run %s: %w", m.ID, err)
	}
	return cfg, nil
}

// Save stores a finished landing and its snapshots and returns the new run id.
func (s *Store) Save(name string, cfg *config.Config, report *landing.Report, snaps []dynamo.Rocket) (string, error) {
	if cfg == nil || report == nil || report.Result == nil {
		return "", errors.New("storage: nothing to save")
	}
	res := report.Result

	metricsJSON, err := json.Marshal(finiteMetrics(res.Metrics))
	if err != nil {
		return "", err
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             uuid.NewString(),
		Name:           name,
		Strategy:       report.Strategy,
		CreatedUnix:    time.Now().UnixNano(),
		Integrator:     cfg.Simulation.Integrator,
		Dt:             cfg.Simulation.Dt,
		Precision:      cfg.Simulation.Eps,
		Ignition:       report.Ignition,
		Cost:           report.Cost,
		Iterations:     report.Iterations,
		Evaluations:    report.Evaluations,
		Converged:      report.Converged,
		Status:         res.Status.String(),
		Event:          res.Event.String(),
		Steps:          res.Steps,
		TouchdownSpeed: res.Speed(),
		FuelUsed:       res.FuelUsed(),
		FlightTime:     res.Final.Time,
		MetricsJSON:    string(metricsJSON),
		ConfigJSON:     string(cfgJSON),
	}
	if report.Strategy == landing.StrategyPID {
		meta.Precision = cfg.Simulation.Tolerance
	}
	if len(report.Gains) == 3 {
		meta.Kp, meta.Ki, meta.Kd = report.Gains[0], report.Gains[1], report.Gains[2]
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExec(`INSERT INTO runs
		(id, name, strategy, created_at, integrator, dt, precision, ignition, kp, ki, kd, cost,
		 iterations, evaluations, converged, status, event, steps, touchdown_speed, fuel_used,
		 flight_time, metrics_json, config_json)
		VALUES (:id, :name, :strategy, :created_at, :integrator, :dt, :precision, :ignition, :kp, :ki, :kd, :cost,
		 :iterations, :evaluations, :converged, :status, :event, :steps, :touchdown_speed, :fuel_used,
		 :flight_time, :metrics_json, :config_json)`, &meta); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareNamed(`INSERT INTO snapshots
		(run_id, seq, time, dry_mass, fuel_mass, acc_x, acc_y, acc_z, vel_x, vel_y, vel_z,
		 pos_x, pos_y, pos_z, throttle_pct)
		VALUES (:run_id, :seq, :time, :dry_mass, :fuel_mass, :acc_x, :acc_y, :acc_z, :vel_x, :vel_y, :vel_z,
		 :pos_x, :pos_y, :pos_z, :throttle_pct)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, r := range snaps {
		snap := SnapshotOf(r)
		snap.RunID = meta.ID
		snap.Seq = i
		if _, err := stmt.Exec(&snap); err != nil {
			return "", fmt.Errorf("insert snapshot %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// finiteMetrics drops values JSON cannot carry.
func finiteMetrics(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			out[k] = v
		}
	}
	return out
}

// List returns all runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	var runs []RunMetadata
	if err := s.db.Select(&runs, `SELECT * FROM runs ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	for i := range runs {
		if err := runs[i].decode(); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// Load returns the run whose id equals or starts with runID.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	var runs []RunMetadata
	err := s.db.Select(&runs, `SELECT * FROM runs WHERE id = ? OR id LIKE ? ORDER BY id LIMIT 2`, runID, runID+"%")
	if err != nil {
		return nil, err
	}
	switch {
	case len(runs) == 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	case len(runs) > 1 && runs[0].ID != runID:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, runID)
	}
	meta := runs[0]
	if err := meta.decode(); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (m *RunMetadata) decode() error {
	m.Metrics = map[string]float64{}
	if m.MetricsJSON == "" {
		return nil
	}
	return json.Unmarshal([]byte(m.MetricsJSON), &m.Metrics)
}

// LoadSnapshots returns the recorded states of a run in flight order.
func (s *Store) LoadSnapshots(runID string) ([]Snapshot, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	var snaps []Snapshot
	if err := s.db.Select(&snaps, `SELECT * FROM snapshots WHERE run_id = ? ORDER BY seq`, meta.ID); err != nil {
		return nil, err
	}
	return snaps, nil
}

// Delete removes a run and its snapshots.
func (s *Store) Delete(runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM snapshots WHERE run_id = ?`, meta.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM runs WHERE id = ?`, meta.ID); err != nil {
		return err
	}
	return tx.Commit()
}
