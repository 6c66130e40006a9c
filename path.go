package pathify

import (
	"strconv"
	"strings"
)

// PathCmd is a path command.
type PathCmd int

// Path commands.
const (
	MoveToCmd PathCmd = iota
	LineToCmd
	QuadToCmd
	CubeToCmd
	ArcToCmd
	CloseCmd
)

// cmdLen returns the number of values of the command's coordinates.
func cmdLen(cmd PathCmd) int {
	switch cmd {
	case MoveToCmd, LineToCmd:
		return 2
	case QuadToCmd:
		return 4
	case CubeToCmd:
		return 6
	case ArcToCmd:
		return 7
	}
	return 0
}

func (cmd PathCmd) String() string {
	switch cmd {
	case MoveToCmd:
		return "M"
	case LineToCmd:
		return "L"
	case QuadToCmd:
		return "Q"
	case CubeToCmd:
		return "C"
	case ArcToCmd:
		return "A"
	case CloseCmd:
		return "z"
	}
	return "?"
}

// Path defines a vector path in 2D using a series of commands (MoveTo, LineTo, QuadTo, CubeTo, ArcTo and Close). Arc angles are stored in degrees.
type Path struct {
	cmds []PathCmd
	d    []float64
	x0   float64
	y0   float64
}

// Empty returns true if p is an empty path or consists of only MoveTos and Closes.
func (p *Path) Empty() bool {
	for _, cmd := range p.cmds {
		if cmd != MoveToCmd && cmd != CloseCmd {
			return false
		}
	}
	return true
}

// Len returns the number of commands.
func (p *Path) Len() int {
	return len(p.cmds)
}

// Pos returns the current position of the path, which is the end point of the last command. After a Close it is the start of the subpath.
func (p *Path) Pos() (float64, float64) {
	if 0 < len(p.cmds) && p.cmds[len(p.cmds)-1] == CloseCmd {
		return p.x0, p.y0
	}
	if 1 < len(p.d) {
		return p.d[len(p.d)-2], p.d[len(p.d)-1]
	}
	return 0.0, 0.0
}

// Translate translates the path by (x,y).
func (p *Path) Translate(x, y float64) *Path {
	i := 0
	for _, cmd := range p.cmds {
		switch cmd {
		case MoveToCmd, LineToCmd:
			p.d[i+0] += x
			p.d[i+1] += y
		case QuadToCmd:
			p.d[i+0] += x
			p.d[i+1] += y
			p.d[i+2] += x
			p.d[i+3] += y
		case CubeToCmd:
			p.d[i+0] += x
			p.d[i+1] += y
			p.d[i+2] += x
			p.d[i+3] += y
			p.d[i+4] += x
			p.d[i+5] += y
		case ArcToCmd:
			p.d[i+5] += x
			p.d[i+6] += y
		}
		i += cmdLen(cmd)
	}
	p.x0 += x
	p.y0 += y
	return p
}

// Bounds returns the bounding box of all coordinates of the path, including the control points of Béziers. Arcs contribute their end points only.
func (p *Path) Bounds() Rect {
	first := true
	r := Rect{}
	add := func(pt Point) {
		if first {
			r = Rect{pt.X, pt.Y, 0.0, 0.0}
			first = false
		} else {
			r = r.AddPoint(pt)
		}
	}

	s := p.Scanner()
	for s.Scan() {
		switch s.Cmd() {
		case QuadToCmd:
			add(s.CP1())
		case CubeToCmd:
			add(s.CP1())
			add(s.CP2())
		case CloseCmd:
			continue
		}
		add(s.End())
	}
	return r
}

////////////////////////////////////////////////////////////////

// MoveTo moves the path to (x,y) without connecting the path. It starts a new independent subpath.
func (p *Path) MoveTo(x, y float64) *Path {
	p.cmds = append(p.cmds, MoveToCmd)
	p.d = append(p.d, x, y)
	p.x0, p.y0 = x, y
	return p
}

// LineTo adds a linear path to (x,y).
func (p *Path) LineTo(x, y float64) *Path {
	p.cmds = append(p.cmds, LineToCmd)
	p.d = append(p.d, x, y)
	return p
}

// QuadTo adds a quadratic Bézier path with control point (cpx,cpy) and end point (x,y).
func (p *Path) QuadTo(cpx, cpy, x, y float64) *Path {
	p.cmds = append(p.cmds, QuadToCmd)
	p.d = append(p.d, cpx, cpy, x, y)
	return p
}

// CubeTo adds a cubic Bézier path with control points (cpx1,cpy1) and (cpx2,cpy2) and end point (x,y).
func (p *Path) CubeTo(cpx1, cpy1, cpx2, cpy2, x, y float64) *Path {
	p.cmds = append(p.cmds, CubeToCmd)
	p.d = append(p.d, cpx1, cpy1, cpx2, cpy2, x, y)
	return p
}

// ArcTo adds an arc with radii rx and ry, with rot the counter clockwise rotation with respect to the coordinate system in degrees, large and sweep booleans (see https://developer.mozilla.org/en-US/docs/Web/SVG/Tutorial/Paths#Arcs), and (x,y) the end position of the pen.
func (p *Path) ArcTo(rx, ry, rot float64, large, sweep bool, x, y float64) *Path {
	p.cmds = append(p.cmds, ArcToCmd)
	flarge := 0.0
	if large {
		flarge = 1.0
	}
	fsweep := 0.0
	if sweep {
		fsweep = 1.0
	}
	p.d = append(p.d, rx, ry, rot, flarge, fsweep, x, y)
	return p
}

// Close closes a (sub)path with a LineTo to the start of the path (the most recent MoveTo command).
func (p *Path) Close() *Path {
	p.cmds = append(p.cmds, CloseCmd)
	return p
}

// String returns a string that represents the path similar to the SVG path data format (but not necessarily valid SVG).
func (p *Path) String() string {
	sb := strings.Builder{}
	s := p.Scanner()
	for s.Scan() {
		sb.WriteString(s.Cmd().String())
		switch s.Cmd() {
		case QuadToCmd:
			writeCoords(&sb, s.CP1(), s.End())
		case CubeToCmd:
			writeCoords(&sb, s.CP1(), s.CP2(), s.End())
		case ArcToCmd:
			rx, ry, rot, large, sweep := s.Arc()
			sb.WriteString(ftos(rx) + " " + ftos(ry) + " " + ftos(rot) + " " + btos(large) + " " + btos(sweep) + " ")
			writeCoords(&sb, s.End())
		case CloseCmd:
		default:
			writeCoords(&sb, s.End())
		}
	}
	return sb.String()
}

func writeCoords(sb *strings.Builder, pts ...Point) {
	for i, pt := range pts {
		if i != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(ftos(pt.X) + " " + ftos(pt.Y))
	}
}

func btos(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func ftos(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
