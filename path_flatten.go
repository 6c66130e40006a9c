package pathify

// Flatten converts the path to a flat sequence of points in traversal order. Every line segment adds its start and end point, and every curved segment (quadratic and cubic Béziers, and arcs) adds its start point, the curve evaluated halfway, and its end point. Close adds the current position and the first point of the path, after which the position continues from the start of the subpath. Consecutive duplicates are kept. The y-axis is flipped so that the source's downward y-axis becomes an upward y-axis.
func (p *Path) Flatten() ([]Point, error) {
	var first Point
	hasFirst := false

	pts := make([]Point, 0, 3*p.Len())
	s := p.Scanner()
	for s.Scan() {
		start, end := s.Start(), s.End()
		if !hasFirst {
			first, hasFirst = start, true
			if s.Cmd() == MoveToCmd {
				first = end
			}
		}
		switch s.Cmd() {
		case LineToCmd:
			pts = append(pts, start, end)
		case QuadToCmd:
			mid, err := QuadraticBezier(start, s.CP1(), end, 0.5)
			if err != nil {
				return nil, err
			}
			pts = append(pts, start, mid, end)
		case CubeToCmd:
			mid, err := CubicBezier(start, s.CP1(), s.CP2(), end, 0.5)
			if err != nil {
				return nil, err
			}
			pts = append(pts, start, mid, end)
		case ArcToCmd:
			rx, ry, rot, large, sweep := s.Arc()
			pts = append(pts, start, arcMidpoint(start, rx, ry, rot, large, sweep, end), end)
		case CloseCmd:
			pts = append(pts, start, first)
		}
	}

	for i := range pts {
		pts[i] = pts[i].FlipY()
	}
	return pts, nil
}
