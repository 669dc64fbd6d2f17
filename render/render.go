// Package render draws planning scenes to PNG images.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/brychanrobot/rrt-path/geometry"
	"github.com/brychanrobot/rrt-path/rrtpath"
	"github.com/disintegration/imaging"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/skelterjohn/geom"
)

var (
	BackgroundColor = colorful.Color{R: 1, G: 1, B: 1}
	FieldColor      = colorful.Hsv(120, 0.15, 0.95)
	CornerColor     = colorful.Hsv(0, 0, 0.6)
	ObstacleColor   = colorful.Hsv(210, 1, 0.6)
	PathColor       = colorful.Hsv(100, 1, 1)
	StartColor      = colorful.Hsv(20, 1, 1)
	GoalColor       = colorful.Hsv(60, 1, 1)
)

// Scene is a raster canvas over a rectangle of world coordinates. Rows are
// stored with y growing downward and flipped when the image is exported, so
// world y points up in the output.
type Scene struct {
	area  geom.Rect
	scale float64
	img   *image.RGBA
	gc    *draw2dimg.GraphicContext
}

// NewScene creates a canvas width pixels wide covering area. The height keeps
// the aspect ratio of area.
func NewScene(area geom.Rect, width int) *Scene {
	if width < 1 {
		width = 1
	}
	scale := float64(width) / area.Width()
	height := int(math.Ceil(area.Height() * scale))
	if height < 1 {
		height = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gc := draw2dimg.NewGraphicContext(img)

	s := &Scene{area: area, scale: scale, img: img, gc: gc}
	s.gc.SetFillColor(BackgroundColor)
	draw2dkit.Rectangle(s.gc, 0, 0, float64(width), float64(height))
	s.gc.Fill()

	return s
}

func (s *Scene) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// Pixel converts a world position to canvas coordinates
func (s *Scene) Pixel(p geometry.Position) (float64, float64) {
	return (p.X - s.area.Min.X) * s.scale, (p.Y - s.area.Min.Y) * s.scale
}

func (s *Scene) polygon(vertices []geometry.Position, fill color.Color) {
	if len(vertices) == 0 {
		return
	}
	s.gc.BeginPath()
	x, y := s.Pixel(vertices[0])
	s.gc.MoveTo(x, y)
	for _, v := range vertices[1:] {
		x, y = s.Pixel(v)
		s.gc.LineTo(x, y)
	}
	s.gc.Close()
	s.gc.SetFillColor(fill)
	s.gc.Fill()
}

func (s *Scene) shape(shape geometry.Shape, fill color.Color) {
	switch shape.Kind() {
	case geometry.KindCircle:
		c := shape.(*geometry.Circle)
		x, y := s.Pixel(c.Center)
		s.gc.BeginPath()
		draw2dkit.Circle(s.gc, x, y, c.Radius*s.scale)
		s.gc.SetFillColor(fill)
		s.gc.Fill()
	default:
		if p, ok := shape.(*geometry.Polygon); ok {
			s.polygon(p.Vertices(), fill)
			return
		}
		b := shape.Bounds()
		s.polygon(geometry.RectFromGeom(b), fill)
	}
}

// DrawWorld paints the field, the corner zones and the obstacles
func (s *Scene) DrawWorld(w rrtpath.World) {
	s.shape(w.FieldShape(), FieldColor)
	for _, c := range geometry.Corners {
		if corner := w.CornerShape(c); corner != nil {
			s.shape(corner, CornerColor)
		}
	}
	for _, o := range w.Obstacles() {
		s.shape(o, ObstacleColor)
	}
}

func (s *Scene) line(a, b geometry.Position, c color.Color, width float64) {
	s.gc.BeginPath()
	s.gc.SetStrokeColor(c)
	s.gc.SetLineWidth(width)
	x, y := s.Pixel(a)
	s.gc.MoveTo(x, y)
	x, y = s.Pixel(b)
	s.gc.LineTo(x, y)
	s.gc.Stroke()
}

// costHue colours a node by its distance from the root, in pixels
func (s *Scene) costHue(lineHue, cost float64) colorful.Color {
	hue := int(lineHue+cost*s.scale/12.0) % 360
	return colorful.Hsv(float64(hue), 1, 0.6)
}

// DrawTree draws every edge of the search tree, hue shifting with cost
func (s *Scene) DrawTree(tree *rrtpath.Tree, lineHue float64) {
	if tree == nil {
		return
	}
	tree.Walk(func(parent, child *rrtpath.Node) {
		s.line(parent.Position, child.Position, s.costHue(lineHue, child.CumulativeCost), 1)
	})
}

// DrawPath draws the waypoints as a polyline starting at start
func (s *Scene) DrawPath(start geometry.Position, points []geometry.TargetPoint, c color.Color, thickness float64) {
	if len(points) == 0 {
		return
	}
	s.gc.BeginPath()
	s.gc.SetStrokeColor(c)
	s.gc.SetLineWidth(thickness)
	x, y := s.Pixel(start)
	s.gc.MoveTo(x, y)
	for _, p := range points {
		x, y = s.Pixel(p.Location)
		s.gc.LineTo(x, y)
	}
	s.gc.Stroke()
}

// DrawPoint draws a filled dot of radius pixels
func (s *Scene) DrawPoint(p geometry.Position, radius float64, c color.Color) {
	x, y := s.Pixel(p)
	s.gc.BeginPath()
	draw2dkit.Circle(s.gc, x, y, radius)
	s.gc.SetFillColor(c)
	s.gc.Fill()
}

// Image returns the canvas with world y pointing up
func (s *Scene) Image() *image.NRGBA {
	return imaging.FlipV(s.img)
}

// Save writes the scene, the format follows the file extension
func (s *Scene) Save(filename string) error {
	return imaging.Save(s.Image(), filename)
}
