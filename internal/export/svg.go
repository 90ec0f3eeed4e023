// Package export renders recorded flights as standalone SVG documents.
package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/san-kum/landsim/internal/storage"
)

type Point struct{ X, Y float64 }

// Bounds of a point set, padded by a tenth of the range on every side.
type bounds struct {
	minX, maxX, minY, maxY float64
}

func boundsOf(points []Point) bounds {
	b := bounds{points[0].X, points[0].X, points[0].Y, points[0].Y}
	for _, p := range points {
		b.minX, b.maxX = min(b.minX, p.X), max(b.maxX, p.X)
		b.minY, b.maxY = min(b.minY, p.Y), max(b.maxY, p.Y)
	}
	rx, ry := b.maxX-b.minX, b.maxY-b.minY
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}
	b.minX -= rx * 0.1
	b.maxX += rx * 0.1
	b.minY -= ry * 0.1
	b.maxY += ry * 0.1
	return b
}

// PathSVG draws points as one polyline scaled to width x height, y up.
// Fewer than two finite points give "".
func PathSVG(points []Point, width, height int, stroke string) string {
	pts := make([]Point, 0, len(points))
	for _, p := range points {
		if !math.IsInf(p.Y, 0) && !math.IsNaN(p.Y) {
			pts = append(pts, p)
		}
	}
	if len(pts) < 2 {
		return ""
	}
	b := boundsOf(pts)
	w, h := float64(width), float64(height)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	// ground line where the series crosses zero
	if b.minY < 0 && b.maxY > 0 {
		gy := h - (0-b.minY)/(b.maxY-b.minY)*h
		fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-dasharray="4 4"/>
`, gy, width, gy)
	}

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
	for i, p := range pts {
		x := (p.X - b.minX) / (b.maxX - b.minX) * w
		y := h - (p.Y-b.minY)/(b.maxY-b.minY)*h
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}
	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}

// Series selects the plotted quantity of a flight.
type Series string

const (
	Altitude Series = "altitude"
	Velocity Series = "velocity"
	Throttle Series = "throttle"
	Fuel     Series = "fuel"
)

var seriesValue = map[Series]func(storage.Snapshot) float64{
	Altitude: func(s storage.Snapshot) float64 { return s.PosZ },
	Velocity: func(s storage.Snapshot) float64 { return s.VelZ },
	Throttle: func(s storage.Snapshot) float64 { return s.ThrottlePct },
	Fuel:     func(s storage.Snapshot) float64 { return s.FuelMass },
}

var seriesColor = map[Series]string{
	Altitude: "#00ffff",
	Velocity: "#ff00ff",
	Throttle: "#ff8800",
	Fuel:     "#00ff88",
}

// FlightSVG plots one series of a flight against time.
func FlightSVG(snaps []storage.Snapshot, series Series, width, height int) (string, error) {
	value, ok := seriesValue[series]
	if !ok {
		return "", fmt.Errorf("unknown series %q", series)
	}
	points := make([]Point, len(snaps))
	for i, s := range snaps {
		points[i] = Point{X: s.Time, Y: value(s)}
	}
	svg := PathSVG(points, width, height, seriesColor[series])
	if svg == "" {
		return "", fmt.Errorf("%s: not enough points to plot", series)
	}
	return svg, nil
}

func WriteFlightSVG(w io.Writer, snaps []storage.Snapshot, series Series, width, height int) error {
	svg, err := FlightSVG(snaps, series, width, height)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, svg)
	return err
}

func ExportFlightSVG(path string, snaps []storage.Snapshot, series Series, width, height int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteFlightSVG(file, snaps, series, width, height)
}
