package pathify

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/tdewolff/test"
	"honnef.co/go/curve"
)

func TestQuadraticBezier(t *testing.T) {
	p0, p1, p2 := Point{0.0, 0.0}, Point{5.0, 10.0}, Point{10.0, 0.0}
	tests := []struct {
		t float64
		p Point
	}{
		{0.0, p0},
		{1.0, p2},
		{0.5, Point{5.0, 5.0}},
		{0.25, Point{2.5, 3.75}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.t), func(t *testing.T) {
			p, err := QuadraticBezier(p0, p1, p2, tt.t)
			test.Error(t, err)
			test.T(t, p, tt.p)
		})
	}
}

func TestCubicBezier(t *testing.T) {
	p0, p1, p2, p3 := Point{0.0, 0.0}, Point{0.0, 10.0}, Point{10.0, 10.0}, Point{10.0, 0.0}
	tests := []struct {
		t float64
		p Point
	}{
		{0.0, p0},
		{1.0, p3},
		{0.5, Point{5.0, 7.5}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.t), func(t *testing.T) {
			p, err := CubicBezier(p0, p1, p2, p3, tt.t)
			test.Error(t, err)
			test.T(t, p, tt.p)
		})
	}
}

func TestBezierEndpoints(t *testing.T) {
	// endpoints are exact, also for coordinates that do not survive arithmetic
	p0, p1, p2, p3 := Point{0.1, -3.3}, Point{1e9, 7.7}, Point{-2.2, 1.0 / 3.0}, Point{math.Pi, 0.7}

	q, err := QuadraticBezier(p0, p1, p2, 0.0)
	test.Error(t, err)
	test.T(t, q, p0)
	q, err = QuadraticBezier(p0, p1, p2, 1.0)
	test.Error(t, err)
	test.T(t, q, p2)

	c, err := CubicBezier(p0, p1, p2, p3, 0.0)
	test.Error(t, err)
	test.T(t, c, p0)
	c, err = CubicBezier(p0, p1, p2, p3, 1.0)
	test.Error(t, err)
	test.T(t, c, p3)
}

func TestBezierOutOfRange(t *testing.T) {
	p := Point{1.0, 1.0}
	for _, v := range []float64{-0.1, 1.0000001, math.NaN(), math.Inf(1)} {
		t.Run(fmt.Sprint(v), func(t *testing.T) {
			_, err := QuadraticBezier(p, p, p, v)
			test.That(t, errors.Is(err, ErrOutOfRange), err)

			_, err = CubicBezier(p, p, p, p, v)
			test.That(t, errors.Is(err, ErrOutOfRange), err)

			var perr *ParamError
			test.That(t, errors.As(err, &perr))
			test.String(t, perr.Func, "CubicBezier")
		})
	}
}

func TestBezierReference(t *testing.T) {
	toCurve := func(p Point) curve.Point { return curve.Pt(p.X, p.Y) }
	p0, p1, p2, p3 := Point{-1.5, 2.0}, Point{3.0, 8.25}, Point{7.5, -4.0}, Point{12.0, 1.0}
	quad := curve.QuadBez{P0: toCurve(p0), P1: toCurve(p1), P2: toCurve(p2)}
	cube := curve.CubicBez{P0: toCurve(p0), P1: toCurve(p1), P2: toCurve(p2), P3: toCurve(p3)}

	var got, want []curve.Point
	for i := 0; i <= 16; i++ {
		tt := float64(i) / 16.0
		q, err := QuadraticBezier(p0, p1, p2, tt)
		test.Error(t, err)
		c, err := CubicBezier(p0, p1, p2, p3, tt)
		test.Error(t, err)
		got = append(got, toCurve(q), toCurve(c))
		want = append(want, quad.Eval(tt), cube.Eval(tt))
	}
	if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Error(d)
	}
}

func TestArcMidpoint(t *testing.T) {
	tests := []struct {
		start        Point
		rx, ry, phi  float64
		large, sweep bool
		end          Point
		mid          Point
	}{
		{Point{0.0, 0.0}, 5.0, 5.0, 0.0, false, false, Point{10.0, 0.0}, Point{5.0, 5.0}},
		{Point{0.0, 0.0}, 5.0, 5.0, 0.0, false, true, Point{10.0, 0.0}, Point{5.0, -5.0}},
		{Point{0.0, 0.0}, 1.0, 1.0, 0.0, false, true, Point{10.0, 0.0}, Point{5.0, -5.0}}, // radii scaled up
		{Point{0.0, 0.0}, 0.0, 5.0, 0.0, false, true, Point{10.0, 4.0}, Point{5.0, 2.0}},
		{Point{3.0, 3.0}, 5.0, 5.0, 0.0, false, true, Point{3.0, 3.0}, Point{3.0, 3.0}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.start, tt.end), func(t *testing.T) {
			mid := arcMidpoint(tt.start, tt.rx, tt.ry, tt.phi, tt.large, tt.sweep, tt.end)
			test.That(t, mid.Equals(tt.mid), mid, "!=", tt.mid)
		})
	}
}
