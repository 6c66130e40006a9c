package pathify

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tdewolff/minify/v2"
)

// ErrDegenerate is returned when the extracted path is a horizontal or vertical line.
var ErrDegenerate = errors.New("path found is a horizontal or vertical line")

// ErrBudget is returned when the outline has too many points.
var ErrBudget = errors.New("too many points")

// BudgetError is returned when the reduced outline of an aircraft has more than Max points.
type BudgetError struct {
	Name, File string
	Count, Max int
}

func (err *BudgetError) Error() string {
	return fmt.Sprintf("[%s:%s] too many points: %d points after optimization is above limit of %d, try increasing the thresholds or simplifying the SVG", err.Name, err.File, err.Count, err.Max)
}

func (err *BudgetError) Unwrap() error {
	return ErrBudget
}

// RawPoints reads the SVG of an aircraft and returns the flattened points of its outline in world space, in feet with the origin at the center of the image and the y-axis pointing up. Relative filenames are resolved against dir.
func RawPoints(name string, cfg AircraftConfig, dir string) ([]Point, error) {
	errorf := func(format string, err error) error {
		return fmt.Errorf("[%s:%s] "+format+": %w", name, cfg.File, err)
	}

	f, err := os.Open(resolvePath(dir, cfg.File))
	if err != nil {
		return nil, errorf("failed to read svg", err)
	}
	defer f.Close()

	doc, err := ParseSVG(f)
	if err != nil {
		return nil, errorf("failed to parse svg", err)
	} else if bounds := doc.Path.Bounds(); bounds.Empty() {
		return nil, errorf("bad path", ErrDegenerate)
	} else if !(0.0 < doc.Width) || !(0.0 < doc.Height) {
		return nil, errorf("bad svg size", ErrDegenerate)
	}

	pts, err := doc.Path.Flatten()
	if err != nil {
		return nil, errorf("failed to calculate points on path", err)
	}
	return ToWorld(pts, doc.Width, doc.Height, cfg.Width, cfg.Length), nil
}

// ToWorld maps flattened points (y-axis up) of an image of size W×H to world space of size w×l, centering the image at the origin. Points are mapped in place.
func ToWorld(pts []Point, W, H, w, l float64) []Point {
	fx, fy := w/W, l/H
	for i, pt := range pts {
		pts[i] = Point{(pt.X - W/2.0) * fx, (pt.Y + H/2.0) * fy}
	}
	return pts
}

// Outline is the reduced outline of an aircraft.
type Outline struct {
	Name          string   `json:"-"`
	Points        []Point  `json:"points"`
	AircraftTypes []string `json:"aircraftTypes"`
	Attribution   string   `json:"attribution"`
}

// Pathificate computes the reduced outline of an aircraft using its fidelity policy. It returns a *BudgetError when there are more than maxPoints points left.
func Pathificate(name string, cfg AircraftConfig, dir string, maxPoints int) (*Outline, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, fmt.Errorf("[%s:%s] %w", name, cfg.File, err)
	}

	raw, err := RawPoints(name, cfg, dir)
	if err != nil {
		return nil, err
	}
	pts := Reduce(policy, raw)
	if maxPoints < len(pts) {
		return nil, &BudgetError{
			Name:  name,
			File:  cfg.File,
			Count: len(pts),
			Max:   maxPoints,
		}
	}
	return &Outline{
		Name:          name,
		Points:        pts,
		AircraftTypes: cfg.AircraftTypes(name),
		Attribution:   cfg.Attribution,
	}, nil
}

type jsonNum float64

func (f jsonNum) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return nil, fmt.Errorf("unsupported value: %v", float64(f))
	}
	b := minify.Number([]byte(strconv.FormatFloat(float64(f), 'g', Precision, 64)), Precision)
	if 0 < len(b) && b[0] == '.' {
		b = append([]byte{'0'}, b...)
	} else if 1 < len(b) && b[0] == '-' && b[1] == '.' {
		b = append([]byte{'-', '0'}, b[1:]...)
	}
	return b, nil
}

// MarshalJSON encodes the outline with coordinates trimmed to Precision significant digits.
func (o *Outline) MarshalJSON() ([]byte, error) {
	type point struct {
		X jsonNum `json:"x"`
		Y jsonNum `json:"y"`
	}
	pts := make([]point, len(o.Points))
	for i, pt := range o.Points {
		pts[i] = point{jsonNum(pt.X), jsonNum(pt.Y)}
	}
	types := o.AircraftTypes
	if types == nil {
		types = []string{}
	}
	return json.Marshal(struct {
		Points        []point  `json:"points"`
		AircraftTypes []string `json:"aircraftTypes"`
		Attribution   string   `json:"attribution"`
	}{pts, types, o.Attribution})
}

// WriteFile writes the outline as JSON to <name>.json in dir and returns the filename.
func (o *Outline) WriteFile(dir string) (string, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("[%s] failed to serialize outline: %w", o.Name, err)
	}
	filename := filepath.Join(dir, o.Name+".json")
	if err := os.WriteFile(filename, b, 0o644); err != nil {
		return "", fmt.Errorf("[%s] failed to write outline: %w", o.Name, err)
	}
	return filename, nil
}
