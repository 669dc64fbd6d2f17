package render

import (
	"image"
	"math"

	"github.com/brychanrobot/rrt-path/geometry"
	"github.com/brychanrobot/rrt-path/world"
	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/mat"
)

type distancer interface {
	Distance(p geometry.Position) float64
}

// cellCenter maps grid cell (row, col) to the world position at its center.
// Row 0 is the bottom of the field.
func cellCenter(field geometry.Boundary, rows, cols, row, col int) geometry.Position {
	b := field.Bounds()
	return geometry.Vec(
		b.Min.X+(float64(col)+0.5)*b.Width()/float64(cols),
		b.Min.Y+(float64(row)+0.5)*b.Height()/float64(rows),
	)
}

// Clearance is the distance from p to the closest blocked area: the field
// edge, a corner zone or an obstacle. Blocked points have clearance 0.
func Clearance(p *world.Physics, point geometry.Position) float64 {
	if p.Blocked(point) {
		return 0
	}

	b := p.FieldShape().Bounds()
	clearance := math.Min(
		math.Min(point.X-b.Min.X, b.Max.X-point.X),
		math.Min(point.Y-b.Min.Y, b.Max.Y-point.Y),
	)
	for _, c := range geometry.Corners {
		if corner, ok := p.CornerShape(c).(distancer); ok {
			clearance = math.Min(clearance, corner.Distance(point))
		}
	}
	for _, o := range p.Obstacles() {
		clearance = math.Min(clearance, o.Distance(point))
	}

	return math.Max(clearance, 0)
}

// ClearanceMap samples Clearance on a rows x cols grid over the field
func ClearanceMap(p *world.Physics, rows, cols int) *mat.Dense {
	costMap := mat.NewDense(rows, cols, nil)
	field := p.FieldShape()

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			costMap.Set(row, col, Clearance(p, cellCenter(field, rows, cols, row, col)))
		}
	}

	return costMap
}

// ClearanceImage scales the map to 0..255, the clearest cell being white
func ClearanceImage(costMap *mat.Dense) *image.NRGBA {
	rows, cols := costMap.Dims()
	img := image.NewGray(image.Rect(0, 0, cols, rows))

	scaled := mat.DenseCopyOf(costMap)
	if peak := mat.Max(scaled); peak > 0 {
		scaled.Scale(255/peak, scaled)
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			img.Pix[row*img.Stride+col] = uint8(math.Round(scaled.At(row, col)))
		}
	}

	return imaging.FlipV(img)
}

func SaveClearance(costMap *mat.Dense, filename string) error {
	return imaging.Save(ClearanceImage(costMap), filename)
}
