package pathify

// PathScanner scans the path segment by segment.
type PathScanner struct {
	p     *Path
	i     int // command index
	j     int // offset of the command's values in p.d
	start Point
	end   Point
	first Point // start of the current subpath
}

// Scanner returns a path scanner.
func (p *Path) Scanner() *PathScanner {
	return &PathScanner{p: p, i: -1}
}

// Scan scans a new path segment and should be called before the other methods.
func (s *PathScanner) Scan() bool {
	if len(s.p.cmds) <= s.i+1 {
		return false
	}
	if 0 <= s.i {
		s.j += cmdLen(s.p.cmds[s.i])
	}
	s.i++
	s.start = s.end

	cmd := s.p.cmds[s.i]
	if cmd == CloseCmd {
		s.end = s.first
		return true
	}
	n := cmdLen(cmd)
	s.end = Point{s.p.d[s.j+n-2], s.p.d[s.j+n-1]}
	if cmd == MoveToCmd {
		s.first = s.end
	}
	return true
}

// Cmd returns the current path segment command.
func (s *PathScanner) Cmd() PathCmd {
	return s.p.cmds[s.i]
}

// Start returns the current path segment start position.
func (s *PathScanner) Start() Point {
	return s.start
}

// CP1 returns the first control point for quadratic and cubic Béziers.
func (s *PathScanner) CP1() Point {
	if cmd := s.p.cmds[s.i]; cmd != QuadToCmd && cmd != CubeToCmd {
		panic("must be quadratic or cubic Bézier")
	}
	return Point{s.p.d[s.j], s.p.d[s.j+1]}
}

// CP2 returns the second control point for cubic Béziers.
func (s *PathScanner) CP2() Point {
	if s.p.cmds[s.i] != CubeToCmd {
		panic("must be cubic Bézier")
	}
	return Point{s.p.d[s.j+2], s.p.d[s.j+3]}
}

// Arc returns the arguments for arcs (rx,ry,rot,large,sweep), with rot in degrees.
func (s *PathScanner) Arc() (float64, float64, float64, bool, bool) {
	if s.p.cmds[s.i] != ArcToCmd {
		panic("must be arc")
	}
	d := s.p.d[s.j:]
	return d[0], d[1], d[2], d[3] == 1.0, d[4] == 1.0
}

// End returns the current path segment end position. For Close it is the start of the subpath.
func (s *PathScanner) End() Point {
	return s.end
}
