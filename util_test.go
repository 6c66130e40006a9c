package pathify

import (
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestSlopeAngle(t *testing.T) {
	tests := []struct {
		p, q  Point
		angle float64
	}{
		{Point{0.0, 0.0}, Point{1.0, 0.0}, 0.0},
		{Point{0.0, 0.0}, Point{-1.0, 0.0}, 0.0},
		{Point{0.0, 0.0}, Point{1.0, 1.0}, math.Pi / 4.0},
		{Point{0.0, 0.0}, Point{-1.0, -1.0}, math.Pi / 4.0},
		{Point{0.0, 0.0}, Point{1.0, -1.0}, -math.Pi / 4.0},
		{Point{0.0, 0.0}, Point{0.0, 1.0}, math.Pi / 2.0},
		{Point{0.0, 0.0}, Point{0.0, -1.0}, -math.Pi / 2.0},
		{Point{2.0, 3.0}, Point{2.0, 3.0}, 0.0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.p, tt.q), func(t *testing.T) {
			test.Float(t, slopeAngle(tt.p, tt.q), tt.angle)
		})
	}

	test.That(t, math.IsNaN(slopeAngle(Point{0.0, 0.0}, Point{math.NaN(), 1.0})))
}

func TestPoint(t *testing.T) {
	p, q := Point{3.0, 4.0}, Point{-1.0, 2.0}
	test.T(t, p.Add(q), Point{2.0, 6.0})
	test.T(t, p.Sub(q), Point{4.0, 2.0})
	test.T(t, p.Mul(0.5), Point{1.5, 2.0})
	test.T(t, p.FlipY(), Point{3.0, -4.0})
	test.Float(t, p.Length(), 5.0)
	test.Float(t, p.Distance(Point{}), 5.0)
	test.Float(t, p.PerpDot(q), 10.0)
	test.That(t, Point{math.NaN(), 0.0}.IsNaN())
	test.That(t, p.Equals(Point{3.0 + 1e-12, 4.0}))
	test.T(t, p.String(), "(3,4)")
}

func TestRect(t *testing.T) {
	r := Rect{1.0, 1.0, 0.0, 0.0}
	test.That(t, r.Empty())
	r = r.AddPoint(Point{3.0, -1.0})
	test.T(t, r, Rect{1.0, -1.0, 2.0, 2.0})
	test.That(t, !r.Empty())
	test.T(t, r.String(), "(1,-1)-(3,1)")
}
