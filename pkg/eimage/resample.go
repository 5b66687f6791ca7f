package eimage

import(
	"context"
	"fmt"
	"math"

	"github.com/abworrall/demosaic/pkg/emath"
)

// Resample produces a newW x newH version of img, by bicubic
// interpolation of every channel. The scale on each axis is the new
// size over the number of source intervals, so destination pixel
// (sx*m, sy*n) lands exactly on source sample (m,n).
func Resample(ctx context.Context, img *Image, newW, newH, nWorkers int) (*Image, error) {
	if img.Width < 2 || img.Height < 2 {
		return nil, fmt.Errorf("resample from %dx%d: %w", img.Width, img.Height, emath.ErrDegenerateInput)
	}
	if newW < 1 || newH < 1 {
		return nil, fmt.Errorf("resample to %dx%d: %w", newW, newH, emath.ErrDegenerateInput)
	}

	planes := [3]*emath.Matrix{}
	for _, c := range Channels {
		p, err := img.Plane(c, 1.0)
		if err != nil {
			return nil, fmt.Errorf("resample %s plane: %w", c, err)
		}
		planes[c] = p
	}

	out, err := New(newW, newH)
	if err != nil {
		return nil, err
	}

	sx := float64(newW) / float64(img.Width-1)
	sy := float64(newH) / float64(img.Height-1)
	Log.Debugf("resample %s to %dx%d, scale (%.4f,%.4f)", img, newW, newH, sx, sy)

	err = ForEachRow(ctx, newH, nWorkers, func(y int) error {
		fy := float64(y) / sy
		iy := int(math.Floor(fy))
		for x:=0; x<newW; x++ {
			fx := float64(x) / sx
			ix := int(math.Floor(fx))

			var p Pixel
			for _, c := range Channels {
				v, err := emath.Interpolate(planes[c], ix, iy, fx - float64(ix), fy - float64(iy))
				if err != nil {
					return fmt.Errorf("resample (%d,%d) %s: %w", x, y, c, err)
				}
				p[c] = v
			}
			out.Set(x, y, p.Clamped())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
