package ecfa

import(
	"context"
	"fmt"
	"math"

	"github.com/abworrall/demosaic/pkg/eimage"
	"github.com/abworrall/demosaic/pkg/emath"
)

// Scale maps image coords onto plane coords: pixel (x,y) sits at
// (x/X, y/Y) in the plane.
type Scale struct {
	X, Y float64
}

// A Mosaic is an image as seen through a color filter array: one
// sparse plane per channel, holding only the samples the sensor would
// have recorded (times 255), plus the scales needed to map back.
type Mosaic struct {
	Pattern  Pattern
	Width    int
	Height   int
	Planes   [3]*emath.Matrix
	Scales   [3]Scale
	Unfilled int // X-Trans placeholders still zero after backfill
}

func (m *Mosaic)String() string {
	str := fmt.Sprintf("Mosaic[%s, %dx%d", m.Pattern, m.Width, m.Height)
	for _, c := range eimage.Channels {
		str += fmt.Sprintf(", %s %s scale(%.3f,%.3f)", c, m.Planes[c].Stats(), m.Scales[c].X, m.Scales[c].Y)
	}
	return str + "]"
}

// Extract samples img through the pattern's filter.
func Extract(img *eimage.Image, p Pattern) (*Mosaic, error) {
	switch p {
	case Bayer:  return extractBayer(img)
	case XTrans: return extractXTrans(img)
	}
	return nil, fmt.Errorf("extract: unknown pattern %s", p)
}

// sample works out the value of channel c at pixel (x,y). If the
// sensor recorded c there it is read straight from the plane,
// otherwise it is interpolated.
func (m *Mosaic)sample(c, recorded eimage.Channel, x, y int) (float64, error) {
	s := m.Scales[c]
	fx := float64(x) / s.X
	fy := float64(y) / s.Y
	ix := int(math.Floor(fx))
	iy := int(math.Floor(fy))

	if c == recorded {
		return m.Planes[c].Get(ix, iy)
	}
	return emath.Interpolate(m.Planes[c], ix, iy, fx - float64(ix), fy - float64(iy))
}

// Reconstruct rebuilds a full-color image, the same size as the one
// the mosaic came from. The rows are shared out over nWorkers; the
// output does not depend on how many there are.
func (m *Mosaic)Reconstruct(ctx context.Context, nWorkers int) (*eimage.Image, error) {
	out, err := eimage.New(m.Width, m.Height)
	if err != nil {
		return nil, err
	}

	err = eimage.ForEachRow(ctx, m.Height, nWorkers, func(y int) error {
		for x:=0; x<m.Width; x++ {
			recorded := m.Pattern.ChannelAt(x, y)
			var p eimage.Pixel
			for _, c := range eimage.Channels {
				v, err := m.sample(c, recorded, x, y)
				if err != nil {
					return fmt.Errorf("%s at (%d,%d): %w", c, x, y, err)
				}
				p[c] = v / 255
			}
			out.Set(x, y, p.Clamped())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reconstruct %s: %w", m.Pattern, err)
	}

	return out, nil
}

// DumpPlanes writes each plane out as a grayscale PNG, for debugging.
func (m *Mosaic)DumpPlanes(prefix string) error {
	for _, c := range eimage.Channels {
		title := fmt.Sprintf("%s %s %s", m.Pattern, c, m.Planes[c].Stats())
		filename := fmt.Sprintf("%s-%s-%s-plane.png", prefix, m.Pattern, c)
		if err := m.Planes[c].ToImg(title, filename); err != nil {
			return err
		}
	}
	return nil
}

// Result is one demosaicing run: the reconstructed image, and a
// visualization of each of its channels on its own.
type Result struct {
	Pattern  Pattern
	Mosaic   *Mosaic
	Combined *eimage.Image
	Channels [3]*eimage.Image
}

func Demosaic(ctx context.Context, img *eimage.Image, p Pattern, nWorkers int) (Result, error) {
	r := Result{Pattern: p}

	m, err := Extract(img, p)
	if err != nil {
		return r, fmt.Errorf("demosaic %s: %w", p, err)
	}
	r.Mosaic = m
	eimage.Log.Debugf("extracted %s", m)
	if m.Unfilled > 0 {
		eimage.Log.Warnf("%s: %d placeholder samples could not be backfilled", p, m.Unfilled)
	}

	if r.Combined, err = m.Reconstruct(ctx, nWorkers); err != nil {
		return r, fmt.Errorf("demosaic %s: %w", p, err)
	}

	for _, c := range eimage.Channels {
		r.Channels[c] = r.Combined.ChannelOnly(c)
	}

	return r, nil
}

// DemosaicAll runs every pattern over the image, giving six images in
// all: a combined image and three single-channel views per pattern.
func DemosaicAll(ctx context.Context, img *eimage.Image, nWorkers int) ([]Result, error) {
	results := []Result{}
	for _, p := range Patterns {
		r, err := Demosaic(ctx, img, p, nWorkers)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}
