package eimage

import(
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/abworrall/demosaic/pkg/emath"
)

// Rotate turns the image by degrees about its origin, growing the
// canvas to the bounding box of the rotated corners. Pixels are
// picked by nearest neighbour; anything not covered by the source
// ends up black.
func Rotate(img *Image, degrees float64) (*Image, error) {
	rot := emath.Identity().Rotate(degrees)

	W, H := float64(img.Width), float64(img.Height)
	minX, minY, maxX, maxY := 0.0, 0.0, 0.0, 0.0
	for _, corner := range [][2]float64{{W, 0}, {0, H}, {W, H}} {
		x, y := rot.Apply(corner[0], corner[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	newW := int(math.Ceil(maxX - minX - 1e-9))
	newH := int(math.Ceil(maxY - minY - 1e-9))
	if newW < 1 || newH < 1 {
		return nil, fmt.Errorf("rotate %s by %.1f: %w", img, degrees, emath.ErrDegenerateInput)
	}

	// Source to destination: rotate, then shift the bounding box onto the origin
	xform := emath.Identity().Translate(-minX, -minY).Rotate(degrees)

	dst := image.NewRGBA64(image.Rect(0, 0, newW, newH))
	src := img.ToRGBA64()
	draw.NearestNeighbor.Transform(dst, f64.Aff3(xform), src, src.Bounds(), draw.Src, nil)

	Log.Debugf("rotate %s by %.1f deg into %dx%d", img, degrees, newW, newH)

	return FromImage(dst)
}
