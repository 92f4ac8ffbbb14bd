package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Series is one group of particles drawn in a single colour.
type Series struct {
	Name    string
	Color   string
	Samples []cloth.Sample
}

// Options control the scatter plot. Side plots x against z instead of y.
type Options struct {
	Width, Height int
	Radius        float64
	Side          bool
	Background    string
}

func DefaultOptions() Options {
	return Options{Width: 800, Height: 800, Radius: 1.5, Background: "#0a0a0a"}
}

type bounds struct{ minX, maxX, minY, maxY float64 }

func (o Options) coords(s cloth.Sample) (float64, float64) {
	if o.Side {
		return s.X, s.Z
	}
	return s.X, s.Y
}

func (o Options) fit(series []Series) bounds {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, sr := range series {
		for _, s := range sr.Samples {
			x, y := o.coords(s)
			b.minX, b.maxX = math.Min(b.minX, x), math.Max(b.maxX, x)
			b.minY, b.maxY = math.Min(b.minY, y), math.Max(b.maxY, y)
		}
	}
	if math.IsInf(b.minX, 1) {
		return bounds{0, 1, 0, 1}
	}

	rangeX, rangeY := b.maxX-b.minX, b.maxY-b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.05
	b.maxX += rangeX * 0.05
	b.minY -= rangeY * 0.05
	b.maxY += rangeY * 0.05
	return b
}

// SnapshotSVG writes a scatter plot of particle positions, one circle per
// particle, later series drawn on top.
func SnapshotSVG(w io.Writer, series []Series, o Options) error {
	b := o.fit(series)
	width, height := float64(o.Width), float64(o.Height)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, o.Width, o.Height, o.Width, o.Height, o.Background)

	for _, sr := range series {
		fmt.Fprintf(&sb, "<g fill=%q>\n<title>%s</title>\n", sr.Color, sr.Name)
		for _, s := range sr.Samples {
			x, y := o.coords(s)
			cx := (x - b.minX) / (b.maxX - b.minX) * width
			cy := (y - b.minY) / (b.maxY - b.minY) * height
			if o.Side {
				cy = height - cy
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, o.Radius)
		}
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// SeriesSVG writes a line chart of a metric against frame number.
func SeriesSVG(w io.Writer, values []float64, width, height int, strokeColor string) error {
	if len(values) < 2 {
		return fmt.Errorf("need at least 2 values, got %d", len(values))
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY, maxY = math.Min(minY, v), math.Max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}
	sb.WriteString("\"/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
