package ecfa

import(
	"fmt"

	"github.com/abworrall/demosaic/pkg/eimage"
	"github.com/abworrall/demosaic/pkg/emath"
)

// xtransWidths gives the plane width for each channel; green covers
// two thirds of each row, red and blue a third each.
func xtransWidths(w int) [3]int {
	rb := w/3
	if w%6 >= 4 {
		rb++
	}
	return [3]int{
		eimage.Red:   rb,
		eimage.Green: (2*w + 2) / 3,
		eimage.Blue:  rb,
	}
}

// xtransPlaceholders are the channels that get a 0.0 stand-in sample
// when (x,y) is visited, so that every row of a plane lines up with
// the same image columns. They are filled in later by backfill.
func xtransPlaceholders(x, y int) []eimage.Channel {
	xm, ym := x%6, y%6

	switch XTrans.ChannelAt(x, y) {
	case eimage.Green:
		if xm == 4 && ym != 0 && ym != 3 {
			return []eimage.Channel{eimage.Red, eimage.Blue}
		}
	case eimage.Red:
		if (ym == 0 && xm == 2) || (ym == 3 && xm == 5) {
			return []eimage.Channel{eimage.Green}
		}
	case eimage.Blue:
		if (ym == 3 && xm == 2) || (ym == 0 && xm == 5) {
			return []eimage.Channel{eimage.Green}
		}
	}
	return nil
}

func extractXTrans(img *eimage.Image) (*Mosaic, error) {
	w, h := img.Width, img.Height
	widths := xtransWidths(w)

	if h < 2 || widths[eimage.Red] < 2 {
		return nil, fmt.Errorf("xtrans %dx%d: %w", w, h, emath.ErrDegenerateInput)
	}

	vals := [3][]float64{}
	for _, c := range eimage.Channels {
		vals[c] = make([]float64, 0, widths[c]*h)
	}

	for y:=0; y<h; y++ {
		row := [3][]float64{}
		for x:=0; x<w; x++ {
			c := XTrans.ChannelAt(x, y)
			row[c] = append(row[c], img.Pix(x, y)[c] * 255)
			for _, pc := range xtransPlaceholders(x, y) {
				row[pc] = append(row[pc], 0.0)
			}
		}

		// Pad short rows, truncate long ones
		for _, c := range eimage.Channels {
			for len(row[c]) < widths[c] {
				row[c] = append(row[c], 0.0)
			}
			vals[c] = append(vals[c], row[c][:widths[c]]...)
		}
	}

	s := scaler{}
	m := Mosaic{Pattern: XTrans, Width: w, Height: h}
	for _, c := range eimage.Channels {
		p, err := emath.NewMatrixFromValues(widths[c], h, vals[c])
		if err != nil {
			return nil, fmt.Errorf("xtrans %s plane: %w", c, err)
		}
		n, err := backfill(p)
		if err != nil {
			return nil, fmt.Errorf("xtrans %s backfill: %w", c, err)
		}
		m.Planes[c] = p
		m.Unfilled += n
		m.Scales[c] = Scale{s.ratio(w, widths[c]-1), s.quotient(h, h-1)}
	}
	if s.err != nil {
		return nil, fmt.Errorf("xtrans %dx%d: %w", w, h, s.err)
	}

	return &m, nil
}

// backfill replaces every 0.0 in the plane, in a single row-major pass,
// with the bicubic estimate at the far corner of its cell. Values are
// written back as it goes, so later cells see earlier fills. A genuine
// black sample can't be told apart from a placeholder, and gets the
// same treatment. Returns how many are still zero afterwards.
func backfill(p *emath.Matrix) (int, error) {
	unfilled := 0
	for y:=0; y<p.Cols(); y++ {
		for x:=0; x<p.Rows(); x++ {
			if p.At(x, y) != 0.0 {
				continue
			}
			v, err := emath.Interpolate(p, x, y, 1, 1)
			if err != nil {
				return unfilled, fmt.Errorf("(%d,%d): %w", x, y, err)
			}
			p.Set(x, y, v)
			if v == 0.0 {
				unfilled++
			}
		}
	}
	return unfilled, nil
}
