package pathify

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned when a Bézier curve is evaluated outside of t ∈ [0,1].
var ErrOutOfRange = errors.New("parameter out of range")

// ParamError is returned by the Bézier evaluators for an invalid parameter t.
type ParamError struct {
	Func string
	T    float64
}

func (err *ParamError) Error() string {
	return fmt.Sprintf("%s: t=%g not in [0,1]", err.Func, err.T)
}

func (err *ParamError) Unwrap() error {
	return ErrOutOfRange
}

// QuadraticBezier evaluates the quadratic Bézier curve with start P0, control point P1 and end P2 at t ∈ [0,1].
func QuadraticBezier(p0, p1, p2 Point, t float64) (Point, error) {
	if !(0.0 <= t && t <= 1.0) {
		return Point{}, &ParamError{"QuadraticBezier", t}
	}
	mt := 1.0 - t
	return p0.Mul(mt * mt).Add(p1.Mul(2.0 * mt * t)).Add(p2.Mul(t * t)), nil
}

// CubicBezier evaluates the cubic Bézier curve with start P0, control points P1 and P2, and end P3 at t ∈ [0,1].
func CubicBezier(p0, p1, p2, p3 Point, t float64) (Point, error) {
	if !(0.0 <= t && t <= 1.0) {
		return Point{}, &ParamError{"CubicBezier", t}
	}
	mt := 1.0 - t
	return p0.Mul(mt * mt * mt).Add(p1.Mul(3.0 * mt * mt * t)).Add(p2.Mul(3.0 * mt * t * t)).Add(p3.Mul(t * t * t)), nil
}

// ellipsePos returns the position on the ellipse at angle theta (radians). The ellipse has center C, radii rx and ry, and is rotated by phi (radians).
func ellipsePos(rx, ry, phi, cx, cy, theta float64) Point {
	sintheta, costheta := math.Sincos(theta)
	sinphi, cosphi := math.Sincos(phi)
	x := cx + rx*costheta*cosphi - ry*sintheta*sinphi
	y := cy + rx*costheta*sinphi + ry*sintheta*cosphi
	return Point{x, y}
}

// ellipseToCenter converts an arc from endpoint to center parameterization, see https://www.w3.org/TR/SVG/implnote.html#ArcImplementationNotes. It returns the center, the (possibly scaled up) radii, and the start and end angles in radians. Phi is in degrees.
func ellipseToCenter(x1, y1, rx, ry, phi float64, large, sweep bool, x2, y2 float64) (float64, float64, float64, float64, float64, float64) {
	if x1 == x2 && y1 == y2 {
		return x1, y1, rx, ry, 0.0, 0.0
	}

	phi *= math.Pi / 180.0
	sinphi, cosphi := math.Sincos(phi)
	x1p := cosphi*(x1-x2)/2.0 + sinphi*(y1-y2)/2.0
	y1p := -sinphi*(x1-x2)/2.0 + cosphi*(y1-y2)/2.0

	// reduce rouding errors
	radiiCheck := x1p*x1p/rx/rx + y1p*y1p/ry/ry
	if 1.0 < radiiCheck {
		rx *= math.Sqrt(radiiCheck)
		ry *= math.Sqrt(radiiCheck)
	}

	sq := (rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p) / (rx*rx*y1p*y1p + ry*ry*x1p*x1p)
	if sq < 0.0 {
		sq = 0.0
	}
	coef := math.Sqrt(sq)
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := coef * -ry * x1p / rx
	cx := cosphi*cxp - sinphi*cyp + (x1+x2)/2.0
	cy := sinphi*cxp + cosphi*cyp + (y1+y2)/2.0

	// specify U and V vectors; theta = arccos(U*V / sqrt(U*U + V*V))
	ux := (x1p - cxp) / rx
	uy := (y1p - cyp) / ry
	vx := -(x1p + cxp) / rx
	vy := -(y1p + cyp) / ry

	theta := math.Acos(math.Max(-1.0, math.Min(1.0, ux/math.Sqrt(ux*ux+uy*uy))))
	if uy < 0.0 {
		theta = -theta
	}

	delta := math.Acos(math.Max(-1.0, math.Min(1.0, (ux*vx+uy*vy)/math.Sqrt((ux*ux+uy*uy)*(vx*vx+vy*vy)))))
	if ux*vy-uy*vx < 0.0 {
		delta = -delta
	}
	if !sweep && 0.0 < delta {
		delta -= 2.0 * math.Pi
	} else if sweep && delta < 0.0 {
		delta += 2.0 * math.Pi
	}
	return cx, cy, rx, ry, theta, theta + delta
}

// arcMidpoint returns the point halfway along the arc's sweep from start to end.
func arcMidpoint(start Point, rx, ry, phi float64, large, sweep bool, end Point) Point {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if start == end {
		return start
	} else if rx == 0.0 || ry == 0.0 {
		// zero radii are straight lines
		return start.Add(end).Mul(0.5)
	}
	cx, cy, rx, ry, theta0, theta1 := ellipseToCenter(start.X, start.Y, rx, ry, phi, large, sweep, end.X, end.Y)
	return ellipsePos(rx, ry, phi*math.Pi/180.0, cx, cy, (theta0+theta1)/2.0)
}
