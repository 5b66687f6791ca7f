package ecfa

import(
	"fmt"

	"github.com/abworrall/demosaic/pkg/eimage"
	"github.com/abworrall/demosaic/pkg/emath"
)

// The scale factors used to map image pixels back onto the Bayer
// planes depend on whether each dimension is odd or even. Some of the
// layouts use whole-number scales, some fractional; the choice is made
// once per image.
type bayerParity int

const(
	oddOdd bayerParity = iota
	evenWidthOddHeight
	oddWidthEvenHeight
	evenEven
)

func bayerParityOf(w, h int) bayerParity {
	switch {
	case w%2 == 1 && h%2 == 1: return oddOdd
	case w%2 == 0 && h%2 == 1: return evenWidthOddHeight
	case w%2 == 1 && h%2 == 0: return oddWidthEvenHeight
	}
	return evenEven
}

func (bp bayerParity)String() string {
	return [...]string{"odd/odd", "even/odd", "odd/even", "even/even"}[bp]
}

// scaler remembers the first degenerate denominator it sees.
type scaler struct {
	err error
}

// ratio is num/den as a real number.
func (s *scaler)ratio(num, den int) float64 {
	if den <= 0 {
		s.fail(num, den)
		return 1
	}
	return float64(num) / float64(den)
}

// quotient is the whole part of num/den.
func (s *scaler)quotient(num, den int) float64 {
	if den <= 0 || num/den < 1 {
		s.fail(num, den)
		return 1
	}
	return float64(num / den)
}

func (s *scaler)fail(num, den int) {
	if s.err == nil {
		s.err = fmt.Errorf("scale %d/%d: %w", num, den, emath.ErrDegenerateInput)
	}
}

func bayerScales(w, h int) ([3]Scale, error) {
	s := scaler{}
	scales := [3]Scale{}

	scales[eimage.Red] = Scale{s.ratio(w, w/2-1), s.ratio(h, h/2-1)}

	switch bayerParityOf(w, h) {
	case oddOdd:
		scales[eimage.Green] = Scale{s.ratio(w, w/2-1), s.ratio(h, h-1)}
		scales[eimage.Blue]  = Scale{s.ratio(w, w/2-1), s.ratio(h, h/2-1)}
	case evenWidthOddHeight:
		scales[eimage.Green] = Scale{s.quotient(w, w/2-1), float64(h)}
		scales[eimage.Blue]  = Scale{s.quotient(w, w/2-1), s.quotient(h, h/2-1)}
	case oddWidthEvenHeight:
		scales[eimage.Green] = Scale{s.quotient(w, w/2-2), float64(h)}
		scales[eimage.Blue]  = Scale{s.quotient(w, w/2), s.quotient(h, h/2-1)}
	case evenEven:
		scales[eimage.Green] = Scale{s.quotient(w, w/2-1), s.quotient(h, h-1)}
		scales[eimage.Blue]  = Scale{s.quotient(w, w/2), s.quotient(h, h/2)}
	}

	if s.err != nil {
		return scales, fmt.Errorf("bayer %dx%d: %w", w, h, s.err)
	}
	return scales, nil
}

// extractBayer samples the image through a GRBG Bayer filter. Red ends
// up in a floor(W/2) x ceil(H/2) plane, green in ceil(W/2) x H, blue in
// ceil(W/2) x floor(H/2).
func extractBayer(img *eimage.Image) (*Mosaic, error) {
	w, h := img.Width, img.Height

	scales, err := bayerScales(w, h)
	if err != nil {
		return nil, err
	}

	halfW, wideW := w/2, (w+1)/2
	dims := [3][2]int{
		eimage.Red:   {halfW, (h+1)/2},
		eimage.Green: {wideW, h},
		eimage.Blue:  {wideW, h/2},
	}

	vals := [3][]float64{}
	for _, c := range eimage.Channels {
		vals[c] = make([]float64, 0, dims[c][0]*dims[c][1])
	}

	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			c := Bayer.ChannelAt(x, y)
			vals[c] = append(vals[c], img.Pix(x, y)[c] * 255)
		}

		// With an odd width, the BGBG rows have one green fewer than the
		// GRGR rows; repeat the green sample directly above.
		if y%2 == 1 && w%2 == 1 {
			g := vals[eimage.Green]
			vals[eimage.Green] = append(g, g[len(g)-wideW])
		}
	}

	m := Mosaic{Pattern: Bayer, Width: w, Height: h, Scales: scales}
	for _, c := range eimage.Channels {
		if m.Planes[c], err = emath.NewMatrixFromValues(dims[c][0], dims[c][1], vals[c]); err != nil {
			return nil, fmt.Errorf("bayer %s plane: %w", c, err)
		}
	}

	return &m, nil
}
