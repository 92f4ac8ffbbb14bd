package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/clothsim/internal/cloth"
)

// Projection selects the plane a cloth is drawn in.
type Projection int

const (
	// ProjectTop looks down the z axis; screen rows follow +y like a
	// pixel grid, so mouse positions map straight onto the cloth.
	ProjectTop Projection = iota
	// ProjectSide looks along y with +z up.
	ProjectSide
	// ProjectOrbit applies a Camera before dropping z.
	ProjectOrbit
)

var projectionNames = []string{"top", "side", "orbit"}

func (p Projection) String() string {
	if int(p) < len(projectionNames) {
		return projectionNames[p]
	}
	return "unknown"
}

func (p Projection) Next() Projection { return (p + 1) % Projection(len(projectionNames)) }

func ParseProjection(s string) (Projection, error) {
	for i, name := range projectionNames {
		if name == s {
			return Projection(i), nil
		}
	}
	return 0, fmt.Errorf("unknown projection: %s", s)
}

// Bounds is a rectangle in projected plane coordinates.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Bounds) empty() bool { return !(b.MaxX > b.MinX && b.MaxY > b.MinY) }

// Pad grows the rectangle by frac of its span on every side.
func (b Bounds) Pad(frac float64) Bounds {
	px := (b.MaxX - b.MinX) * frac
	py := (b.MaxY - b.MinY) * frac
	return Bounds{b.MinX - px, b.MinY - py, b.MaxX + px, b.MaxY + py}
}

// View maps world positions onto the sub-pixels of a canvas.
type View struct {
	Projection Projection
	Camera     *Camera
	Center     mgl64.Vec3
	Bounds     Bounds
}

func (v View) plane(p mgl64.Vec3) (float64, float64) {
	switch v.Projection {
	case ProjectSide:
		return p[0], p[2]
	case ProjectOrbit:
		cam := v.Camera
		if cam == nil {
			cam = NewCamera()
		}
		r := cam.Apply(p, v.Center)
		return r[0], r[1]
	default:
		return p[0], p[1]
	}
}

// Fit returns a view of proj whose bounds enclose every sample.
func Fit(proj Projection, cam *Camera, samples []cloth.Sample) View {
	v := View{Projection: proj, Camera: cam}
	if len(samples) == 0 {
		v.Bounds = Bounds{0, 0, 1, 1}
		return v
	}
	for _, s := range samples {
		v.Center = v.Center.Add(mgl64.Vec3{s.X, s.Y, s.Z})
	}
	v.Center = v.Center.Mul(1 / float64(len(samples)))

	b := Bounds{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, s := range samples {
		u, w := v.plane(mgl64.Vec3{s.X, s.Y, s.Z})
		b.MinX, b.MaxX = math.Min(b.MinX, u), math.Max(b.MaxX, u)
		b.MinY, b.MaxY = math.Min(b.MinY, w), math.Max(b.MaxY, w)
	}
	if b.MaxX <= b.MinX {
		b.MinX, b.MaxX = b.MinX-1, b.MaxX+1
	}
	if b.MaxY <= b.MinY {
		b.MinY, b.MaxY = b.MinY-1, b.MaxY+1
	}
	v.Bounds = b.Pad(0.05)
	return v
}

// Pixel projects p onto the canvas. ok is false when p falls outside the
// view or is not finite.
func (v View) Pixel(c *Canvas, p mgl64.Vec3) (x, y int, ok bool) {
	if v.Bounds.empty() {
		return 0, 0, false
	}
	u, w := v.plane(p)
	pw, ph := c.Pixels()
	fx := (u - v.Bounds.MinX) / (v.Bounds.MaxX - v.Bounds.MinX)
	fy := (w - v.Bounds.MinY) / (v.Bounds.MaxY - v.Bounds.MinY)
	if v.Projection != ProjectTop {
		fy = 1 - fy
	}
	if math.IsNaN(fx) || math.IsNaN(fy) || fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		return 0, 0, false
	}
	return int(fx * float64(pw-1)), int(fy * float64(ph-1)), true
}

// World inverts Pixel for the top projection. Other projections lose the
// depth axis and report ok=false.
func (v View) World(c *Canvas, x, y int) (mgl64.Vec2, bool) {
	if v.Projection != ProjectTop || v.Bounds.empty() {
		return mgl64.Vec2{}, false
	}
	pw, ph := c.Pixels()
	fx := float64(x) / float64(pw-1)
	fy := float64(y) / float64(ph-1)
	return mgl64.Vec2{
		v.Bounds.MinX + fx*(v.Bounds.MaxX-v.Bounds.MinX),
		v.Bounds.MinY + fy*(v.Bounds.MaxY-v.Bounds.MinY),
	}, true
}

// DrawSamples sets one dot per sample.
func DrawSamples(c *Canvas, v View, samples []cloth.Sample) {
	for _, s := range samples {
		if x, y, ok := v.Pixel(c, mgl64.Vec3{s.X, s.Y, s.Z}); ok {
			c.Set(x, y)
		}
	}
}

// DrawCloth draws every live constraint as a line segment.
func DrawCloth(c *Canvas, v View, cl *cloth.Cloth) {
	cl.ForEachConstraint(func(k cloth.Constraint) {
		x0, y0, ok0 := v.Pixel(c, cl.Particle(k.P1).Pos)
		x1, y1, ok1 := v.Pixel(c, cl.Particle(k.P2).Pos)
		switch {
		case ok0 && ok1:
			c.DrawLine(x0, y0, x1, y1)
		case ok0:
			c.Set(x0, y0)
		case ok1:
			c.Set(x1, y1)
		}
	})
}

// Layer is a set of samples drawn in one style.
type Layer struct {
	Name    string
	Samples []cloth.Sample
	Style   lipgloss.Style
}

// Plot draws layers onto a w x h canvas.
func Plot(layers []Layer, v View, w, h int) string {
	canvases := make([]*Canvas, len(layers))
	styles := make([]lipgloss.Style, len(layers))
	for i, l := range layers {
		canvases[i] = NewCanvas(w, h)
		DrawSamples(canvases[i], v, l.Samples)
		styles[i] = l.Style
	}
	return compose(canvases, styles)
}

// compose merges same-sized canvases. Dots from every canvas share the
// cell; the last canvas with a dot in a cell decides its colour.
func compose(canvases []*Canvas, styles []lipgloss.Style) string {
	if len(canvases) == 0 {
		return ""
	}
	w, h := canvases[0].Width, canvases[0].Height

	var b strings.Builder
	for row := 0; row < h; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < w; col++ {
			cell := rune(brailleBlank)
			owner := -1
			for i, c := range canvases {
				if c.Filled(col, row) {
					cell |= c.Grid[row][col]
					owner = i
				}
			}
			if owner < 0 {
				b.WriteRune(cell)
				continue
			}
			b.WriteString(styles[owner].Render(string(cell)))
		}
	}
	return b.String()
}
