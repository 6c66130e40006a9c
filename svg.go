package pathify

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"github.com/tdewolff/parse/v2/strconv"
	"github.com/tdewolff/parse/v2/xml"
)

// ErrNoPath is returned when an SVG document has no stroked path.
var ErrNoPath = errors.New("no path element could be found, make sure the SVG contains at least one path element with a solid stroke")

// Document is the outline extracted from an SVG document.
type Document struct {
	Width, Height float64 // in px
	Path          *Path
}

// elements whose children are not rendered directly
var svgHiddenTags = map[string]bool{
	"defs":     true,
	"clipPath": true,
	"marker":   true,
	"mask":     true,
	"pattern":  true,
	"symbol":   true,
	"title":    true,
	"desc":     true,
	"metadata": true,
}

type svgParser struct {
	z   *parse.Input
	err error

	doc     *Document
	origin  Point    // top-left of the viewBox
	strokes []string // inherited stroke per open element
	tags    []string
	hidden  int
}

func (svg *svgParser) errorf(format string, a ...interface{}) {
	if svg.err == nil {
		svg.err = parse.NewErrorLexer(svg.z, format, a...)
	}
}

// parseDimension parses a length with an optional absolute unit and returns it in px.
func parseDimension(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	num, n := strconv.ParseFloat([]byte(v))
	if n == 0 {
		return 0.0, false
	}
	switch strings.ToLower(strings.TrimSpace(v[n:])) {
	case "", "px":
		return num, true
	case "pt":
		return num * 96.0 / 72.0, true
	case "pc":
		return num * 16.0, true
	case "mm":
		return num * 96.0 / 25.4, true
	case "cm":
		return num * 96.0 / 2.54, true
	case "in":
		return num * 96.0, true
	}
	return 0.0, false // relative units such as % and em
}

func splitNumbers(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n' || r == '\r' || r == '\t'
	})
}

func (svg *svgParser) parseNumbers(v string) []float64 {
	vals := []float64{}
	for _, item := range splitNumbers(v) {
		f, n := strconv.ParseFloat([]byte(item))
		if n != len(item) {
			svg.errorf("bad number array: %s", v)
			return nil
		}
		vals = append(vals, f)
	}
	return vals
}

// parseStroke returns the value of the stroke property in an inline style attribute.
func parseStroke(style string) (string, bool) {
	stroke, ok := "", false
	p := css.NewParser(parse.NewInputString(style), true)
	for {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			break
		} else if gt == css.DeclarationGrammar && strings.EqualFold(string(data), "stroke") {
			sb := strings.Builder{}
			for _, val := range p.Values() {
				sb.Write(val.Data)
			}
			stroke, ok = strings.TrimSpace(sb.String()), true
		}
	}
	return stroke, ok
}

func (svg *svgParser) stroke(attrs map[string]string) string {
	stroke := ""
	if 0 < len(svg.strokes) {
		stroke = svg.strokes[len(svg.strokes)-1]
	}
	if v, ok := attrs["stroke"]; ok {
		stroke = strings.TrimSpace(v)
	}
	if style, ok := attrs["style"]; ok {
		if v, ok := parseStroke(style); ok {
			stroke = v
		}
	}
	return stroke
}

// setSize sets the document size from the viewBox, or else from width and height. Paths are in viewBox units, so the viewBox takes precedence.
func (svg *svgParser) setSize(attrs map[string]string) {
	if v, ok := attrs["viewBox"]; ok {
		viewbox := svg.parseNumbers(v)
		if len(viewbox) != 4 {
			svg.errorf("bad viewBox")
			return
		}
		svg.origin = Point{viewbox[0], viewbox[1]}
		svg.doc.Width, svg.doc.Height = viewbox[2], viewbox[3]
		return
	}
	svg.doc.Width, _ = parseDimension(attrs["width"])
	svg.doc.Height, _ = parseDimension(attrs["height"])
}

// shape converts a shape element to a path, it returns nil for non-shape elements.
func (svg *svgParser) shape(tag string, attrs map[string]string) *Path {
	switch tag {
	case "path":
		p, err := ParseSVGPath(attrs["d"])
		if err != nil {
			svg.errorf("%v", err)
			return nil
		}
		return p
	case "polyline", "polygon":
		points := svg.parseNumbers(attrs["points"])
		if len(points)%2 != 0 {
			svg.errorf("odd number of coordinates in points")
			return nil
		}
		p := &Path{}
		for i := 0; i+1 < len(points); i += 2 {
			if i == 0 {
				p.MoveTo(points[i], points[i+1])
			} else {
				p.LineTo(points[i], points[i+1])
			}
		}
		if tag == "polygon" && 0 < len(points) {
			p.Close()
		}
		return p
	case "line":
		x1, _ := parseDimension(attrs["x1"])
		y1, _ := parseDimension(attrs["y1"])
		x2, _ := parseDimension(attrs["x2"])
		y2, _ := parseDimension(attrs["y2"])
		return (&Path{}).MoveTo(x1, y1).LineTo(x2, y2)
	case "rect":
		x, _ := parseDimension(attrs["x"])
		y, _ := parseDimension(attrs["y"])
		w, _ := parseDimension(attrs["width"])
		h, _ := parseDimension(attrs["height"])
		return (&Path{}).MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
	}
	return nil
}

// ParseSVG parses an SVG document and returns the first visible path, polyline, polygon, line or rect that has a stroke, together with the document's size. The path is moved so that the viewBox starts at the origin, other transformations are not applied.
func ParseSVG(r io.Reader) (*Document, error) {
	z := parse.NewInput(r)
	defer z.Restore()

	l := xml.NewLexer(z)
	svg := svgParser{
		z: z,
	}
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return nil, l.Err()
			} else if svg.err != nil {
				return nil, svg.err
			} else if svg.doc == nil {
				return nil, fmt.Errorf("expected SVG tag")
			}
			return nil, ErrNoPath
		case xml.StartTagToken:
			attrs := map[string]string{}
			for {
				tt, _ = l.Next()
				if tt != xml.AttributeToken {
					break
				}
				val := l.AttrVal()
				if 2 <= len(val) && (val[0] == '"' || val[0] == '\'') {
					val = val[1 : len(val)-1]
				}
				attrs[string(l.Text())] = string(val)
			}
			void := tt == xml.StartTagCloseVoidToken

			tag := string(data[1:])
			if i := strings.IndexByte(tag, ':'); i != -1 {
				tag = tag[i+1:]
			}

			if svg.doc == nil {
				if tag != "svg" {
					return nil, fmt.Errorf("expected SVG tag")
				}
				svg.doc = &Document{}
				svg.setSize(attrs)
			} else if svg.hidden == 0 {
				switch tag {
				case "image":
					return nil, fmt.Errorf("images will not be supported, please use a single vector path")
				case "text":
					return nil, fmt.Errorf("text will not be supported, please use a single vector path")
				}
				if stroke := svg.stroke(attrs); stroke != "" && stroke != "none" {
					if p := svg.shape(tag, attrs); p != nil && !p.Empty() {
						if svg.err != nil {
							return nil, svg.err
						}
						svg.doc.Path = p.Translate(-svg.origin.X, -svg.origin.Y)
						return svg.doc, nil
					}
				}
			}
			if svg.err != nil {
				return nil, svg.err
			}

			if !void {
				svg.tags = append(svg.tags, tag)
				svg.strokes = append(svg.strokes, svg.stroke(attrs))
				if svgHiddenTags[tag] {
					svg.hidden++
				}
			}
		case xml.EndTagToken:
			if len(svg.tags) == 0 {
				continue
			}
			tag := svg.tags[len(svg.tags)-1]
			if svgHiddenTags[tag] {
				svg.hidden--
			}
			svg.tags = svg.tags[:len(svg.tags)-1]
			svg.strokes = svg.strokes[:len(svg.strokes)-1]
		}
	}
}
