package pathify

import (
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

// MustParseSVGPath parses an SVG path data string and panics if it fails.
func MustParseSVGPath(s string) *Path {
	p, err := ParseSVGPath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseSVGPath parses an SVG path data string.
func ParseSVGPath(s string) (*Path, error) {
	path := []byte(s)
	i := 0

	var err error
	num := func() float64 {
		if err != nil {
			return 0.0
		}
		i += skipCommaWhitespace(path[i:])
		f, n := strconv.ParseFloat(path[i:])
		if n == 0 {
			err = fmt.Errorf("bad path: expected number at position %d", i+1)
			return 0.0
		}
		i += n
		return f
	}
	flag := func() bool {
		if err != nil {
			return false
		}
		i += skipCommaWhitespace(path[i:])
		if len(path) <= i || path[i] != '0' && path[i] != '1' {
			err = fmt.Errorf("bad path: expected flag at position %d", i+1)
			return false
		}
		i++
		return path[i-1] == '1'
	}

	p := &Path{}
	var cmd, prevCmd byte
	cpx, cpy := 0.0, 0.0 // control points
	for {
		i += skipCommaWhitespace(path[i:])
		if len(path) <= i {
			break
		}

		if 'A' <= path[i] {
			cmd = path[i]
			i++
		} else if cmd == 0 {
			return nil, fmt.Errorf("bad path: expected command at position %d", i+1)
		} else if cmd == 'Z' || cmd == 'z' {
			return nil, fmt.Errorf("bad path: unexpected number after close at position %d", i+1)
		}

		x, y := p.Pos()
		switch cmd {
		case 'M', 'm':
			a, b := num(), num()
			if cmd == 'm' {
				a += x
				b += y
			}
			p.MoveTo(a, b)
		case 'Z', 'z':
			p.Close()
		case 'L', 'l':
			a, b := num(), num()
			if cmd == 'l' {
				a += x
				b += y
			}
			p.LineTo(a, b)
		case 'H', 'h':
			a := num()
			if cmd == 'h' {
				a += x
			}
			p.LineTo(a, y)
		case 'V', 'v':
			b := num()
			if cmd == 'v' {
				b += y
			}
			p.LineTo(x, b)
		case 'C', 'c':
			a, b, c, d, e, f := num(), num(), num(), num(), num(), num()
			if cmd == 'c' {
				a += x
				b += y
				c += x
				d += y
				e += x
				f += y
			}
			p.CubeTo(a, b, c, d, e, f)
			cpx, cpy = c, d
		case 'S', 's':
			c, d, e, f := num(), num(), num(), num()
			if cmd == 's' {
				c += x
				d += y
				e += x
				f += y
			}
			a, b := x, y
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				a, b = 2*x-cpx, 2*y-cpy
			}
			p.CubeTo(a, b, c, d, e, f)
			cpx, cpy = c, d
		case 'Q', 'q':
			a, b, c, d := num(), num(), num(), num()
			if cmd == 'q' {
				a += x
				b += y
				c += x
				d += y
			}
			p.QuadTo(a, b, c, d)
			cpx, cpy = a, b
		case 'T', 't':
			c, d := num(), num()
			if cmd == 't' {
				c += x
				d += y
			}
			a, b := x, y
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				a, b = 2*x-cpx, 2*y-cpy
			}
			p.QuadTo(a, b, c, d)
			cpx, cpy = a, b
		case 'A', 'a':
			rx, ry, rot := num(), num(), num()
			large, sweep := flag(), flag()
			f, g := num(), num()
			if cmd == 'a' {
				f += x
				g += y
			}
			if math.IsNaN(rx) || math.IsNaN(ry) {
				err = fmt.Errorf("bad path: bad arc radius at position %d", i+1)
			}
			p.ArcTo(rx, ry, rot, large, sweep, f, g)
		default:
			return nil, fmt.Errorf("bad path: unknown command '%c' at position %d", cmd, i)
		}
		if err != nil {
			return nil, err
		}

		prevCmd = cmd
		if cmd == 'M' {
			// subsequent coordinate pairs are implicit LineTos
			cmd = 'L'
		} else if cmd == 'm' {
			cmd = 'l'
		}
	}
	return p, nil
}
