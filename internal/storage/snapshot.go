package storage

import (
	"strconv"

	"github.com/san-kum/landsim/internal/dynamo"
)

// CSVHeader is the column layout of a flight log.
var CSVHeader = []string{
	"time(s)", "dry_mass(kg)", "fuel_mass(kg)",
	"accOx(m/s^2)", "accOy(m/s^2)", "accOz(m/s^2)",
	"velocityOx(m/s)", "velocityOy(m/s)", "velocityOz(m/s)",
	"CoordinateOx(m)", "CoordinateOy(m)", "CoordinateOz(m)",
	"thrust_percent(%)",
}

// Snapshot is one recorded flight state.
type Snapshot struct {
	RunID string `db:"run_id" json:"-"`
	Seq   int    `db:"seq" json:"-"`

	Time     float64 `db:"time" json:"time"`
	DryMass  float64 `db:"dry_mass" json:"dry_mass"`
	FuelMass float64 `db:"fuel_mass" json:"fuel_mass"`

	AccX float64 `db:"acc_x" json:"acc_x"`
	AccY float64 `db:"acc_y" json:"acc_y"`
	AccZ float64 `db:"acc_z" json:"acc_z"`
	VelX float64 `db:"vel_x" json:"vel_x"`
	VelY float64 `db:"vel_y" json:"vel_y"`
	VelZ float64 `db:"vel_z" json:"vel_z"`
	PosX float64 `db:"pos_x" json:"pos_x"`
	PosY float64 `db:"pos_y" json:"pos_y"`
	PosZ float64 `db:"pos_z" json:"pos_z"`

	ThrottlePct float64 `db:"throttle_pct" json:"throttle_pct"`
}

func SnapshotOf(r dynamo.Rocket) Snapshot {
	return Snapshot{
		Time:        r.Time,
		DryMass:     r.DryMass,
		FuelMass:    r.FuelMass,
		AccX:        r.Acceleration.X,
		AccY:        r.Acceleration.Y,
		AccZ:        r.Acceleration.Z,
		VelX:        r.Velocity.X,
		VelY:        r.Velocity.Y,
		VelZ:        r.Velocity.Z,
		PosX:        r.Position.X,
		PosY:        r.Position.Y,
		PosZ:        r.Position.Z,
		ThrottlePct: r.Throttle * 100,
	}
}

func SnapshotsOf(rs []dynamo.Rocket) []Snapshot {
	out := make([]Snapshot, len(rs))
	for i, r := range rs {
		out[i] = SnapshotOf(r)
		out[i].Seq = i
	}
	return out
}

func (s Snapshot) Row() []string {
	vals := []float64{
		s.Time, s.DryMass, s.FuelMass,
		s.AccX, s.AccY, s.AccZ,
		s.VelX, s.VelY, s.VelZ,
		s.PosX, s.PosY, s.PosZ,
		s.ThrottlePct,
	}
	row := make([]string, len(vals))
	for i, v := range vals {
		row[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return row
}
