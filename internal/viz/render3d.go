package viz

import (
	"math"
	"sort"

	"github.com/san-kum/lmpdump/internal/histo"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera projects scene coordinates, roughly within [-1, 1] on every axis,
// onto the canvas.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera returns a camera looking slightly down and across the bars.
func NewCamera() *Camera {
	return &Camera{Distance: 6, Near: 0.1, RotX: 0.45, RotY: -0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Reset restores the default view.
func (c *Camera) Reset() { *c = *NewCamera() }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts scene coordinates to sub-pixel screen coordinates.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	minDim := math.Min(float64(sw), float64(sh))
	pScale := minDim / 2.5
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe         { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe to the canvas, far edges first.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Pixels()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

const (
	barFill    = 0.8
	barsFloor  = -0.6
	barsHeight = 1.2
)

// BarsWireframe lays the histogram out as 3D bars: bins along X, rows
// (time) along Z and counts along Y, scaled so the tallest bar spans the
// full height. Empty bins are drawn as their floor outline.
func BarsWireframe(m *histo.Matrix) *Wireframe {
	w := NewWireframe()
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return w
	}
	max := m.Max()
	cellX, cellZ := 2.0/float64(cols), 2.0/float64(rows)
	halfX, halfZ := cellX*barFill/2, cellZ*barFill/2

	for r := 0; r < rows; r++ {
		cz := -1 + cellZ*(float64(r)+0.5)
		for b := 0; b < cols; b++ {
			cx := -1 + cellX*(float64(b)+0.5)
			top := barsFloor
			if max > 0 {
				top += barsHeight * m.At(r, b) / max
			}
			addBar(w, cx, cz, halfX, halfZ, top)
		}
	}

	// floor axes
	w.AddEdge(Vec3{-1, barsFloor, -1}, Vec3{1, barsFloor, -1})
	w.AddEdge(Vec3{-1, barsFloor, -1}, Vec3{-1, barsFloor, 1})
	w.AddEdge(Vec3{-1, barsFloor, -1}, Vec3{-1, barsFloor + barsHeight, -1})
	return w
}

func addBar(w *Wireframe, cx, cz, hx, hz, top float64) {
	corners := [4][2]float64{{cx - hx, cz - hz}, {cx + hx, cz - hz}, {cx + hx, cz + hz}, {cx - hx, cz + hz}}
	for i, p := range corners {
		q := corners[(i+1)%4]
		w.AddEdge(Vec3{p[0], top, p[1]}, Vec3{q[0], top, q[1]})
		if top > barsFloor {
			w.AddEdge(Vec3{p[0], barsFloor, p[1]}, Vec3{p[0], top, p[1]})
		}
	}
}

// RenderBars draws the histogram into a fresh w x h cell canvas.
func RenderBars(m *histo.Matrix, cam *Camera, w, h int) *Canvas {
	c := NewCanvas(w, h)
	if cam == nil {
		cam = NewCamera()
	}
	Render3D(c, BarsWireframe(m), cam)
	return c
}
