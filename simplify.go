package pathify

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Policy is a fidelity policy that selects the reduction strategy and its thresholds. The set of policies is closed: ADFloor, ThreePointAverage, Visvalingam and DouglasPeucker.
type Policy interface {
	fmt.Stringer

	// reduce reduces a sequence of points without consecutive duplicates.
	reduce([]Point) []Point
}

// Reduce removes consecutive duplicate points and then simplifies the points with the given policy. The first and last points are always kept. The input slice is not modified.
func Reduce(policy Policy, pts []Point) []Point {
	return policy.reduce(Dedup(pts))
}

// Dedup returns the points with consecutive duplicates removed. Points are compared exactly. The input slice is not modified.
func Dedup(pts []Point) []Point {
	if len(pts) == 0 {
		return []Point{}
	}
	q := make([]Point, 0, len(pts))
	q = append(q, pts[0])
	for _, pt := range pts[1:] {
		if pt != q[len(q)-1] {
			q = append(q, pt)
		}
	}
	return q
}

// cornerFilter keeps points that mark a change in direction. Each candidate point is compared against the last kept point and the next input point (not the next kept point). Candidates closer than dFloor to either neighbor are dropped, and otherwise they are kept when the slope angle before and after differ by more than aFloor. Slope angles are in [-π/2,π/2] so that reversals in direction are not seen as a change. When the angle difference is NaN, which happens only for NaN or infinite coordinates, the point is kept.
func cornerFilter(pts []Point, aFloor, dFloor float64) []Point {
	q := make([]Point, 0, len(pts))
	for i, cur := range pts {
		if len(q) == 0 {
			q = append(q, cur)
			continue
		} else if i == len(pts)-1 {
			q = append(q, cur)
			break
		}

		prev, next := q[len(q)-1], pts[i+1]
		if cur.Distance(prev) < dFloor || cur.Distance(next) < dFloor {
			continue
		}

		diff := math.Abs(slopeAngle(cur, next) - slopeAngle(prev, cur))
		if aFloor < diff || math.IsNaN(diff) {
			q = append(q, cur)
		}
	}
	return q
}

// ADFloor drops points that are closer than DFloor to their neighbors, or whose change of slope angle is not larger than AFloor (radians).
type ADFloor struct {
	AFloor float64
	DFloor float64
}

func (p ADFloor) reduce(pts []Point) []Point {
	return cornerFilter(pts, p.AFloor, p.DFloor)
}

func (p ADFloor) String() string {
	return fmt.Sprintf("ad_floor(a_floor=%g, d_floor=%g)", p.AFloor, p.DFloor)
}

// ThreePointAverage drops points whose change of slope angle is not larger than DT (radians). It does not average points, dropped points are removed as with ADFloor but without the distance test.
type ThreePointAverage struct {
	DT float64
}

func (p ThreePointAverage) reduce(pts []Point) []Point {
	return cornerFilter(pts, p.DT, 0.0)
}

func (p ThreePointAverage) String() string {
	return fmt.Sprintf("three_pt_average(dt=%g)", p.DT)
}

// Visvalingam removes points using the Visvalingam-Whyatt algorithm, that is, it repeatedly removes the point that spans the triangle of smallest area with its neighbors until all areas are at least Tolerance.
type Visvalingam struct {
	Tolerance float64
}

func (p Visvalingam) reduce(pts []Point) []Point {
	return NewVisvalingamWhyatt().Simplify(pts, p.Tolerance)
}

func (p Visvalingam) String() string {
	return fmt.Sprintf("visvalingam(tolerance=%g)", p.Tolerance)
}

// DouglasPeucker simplifies the points using the Ramer-Douglas-Peucker algorithm: points closer than Threshold to the simplified line are removed.
type DouglasPeucker struct {
	Threshold float64
}

func (p DouglasPeucker) reduce(pts []Point) []Point {
	if len(pts) < 3 {
		return append([]Point{}, pts...)
	}
	ls := make(orb.LineString, len(pts))
	for i, pt := range pts {
		ls[i] = orb.Point{pt.X, pt.Y}
	}
	ls = simplify.DouglasPeucker(p.Threshold).LineString(ls)

	q := make([]Point, len(ls))
	for i, pt := range ls {
		q[i] = Point{pt[0], pt[1]}
	}
	return q
}

func (p DouglasPeucker) String() string {
	return fmt.Sprintf("douglas_peucker(threshold=%g)", p.Threshold)
}
