package eimage

import(
	"fmt"
	"math"

	"github.com/codahale/hdrhistogram"
	"github.com/skypies/util/histogram"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/demosaic/pkg/emath"
)

// DiffStats summarizes how far one image is from another, per channel.
// Errors are absolute differences of channel values in [0,1].
type DiffStats struct {
	Mean   [3]float64
	StdDev [3]float64
	MaxErr [3]float64
	PSNR   float64 // over all channels, in dB; +Inf if identical

	// Percentiles of the per-channel error, in 8bit levels
	P50, P90, P99 int64

	// Histogram of per-channel error, in 8bit levels
	Hist histogram.Histogram
}

func (ds DiffStats)String() string {
	str := fmt.Sprintf("PSNR % 6.2fdB; 8bit err p50=%d p90=%d p99=%d\n", ds.PSNR, ds.P50, ds.P90, ds.P99)
	for _, c := range Channels {
		str += fmt.Sprintf("  %-5s mean=%.5f stddev=%.5f max=%.5f\n", c, ds.Mean[c], ds.StdDev[c], ds.MaxErr[c])
	}
	return str
}

// Compare works out DiffStats between two images of the same size.
func Compare(a, b *Image) (DiffStats, error) {
	ds := DiffStats{
		Hist: histogram.Histogram{NumBuckets:256, ValMin:0, ValMax:256},
	}

	if a.Width != b.Width || a.Height != b.Height {
		return ds, fmt.Errorf("compare %s with %s: %w", a, b, emath.ErrDimensionMismatch)
	}

	errs := [3][]float64{}
	for _, c := range Channels {
		errs[c] = make([]float64, len(a.Pixels))
	}

	h := hdrhistogram.New(1, 256, 3)
	sumSq := 0.0

	for i := range a.Pixels {
		for _, c := range Channels {
			e := math.Abs(a.Pixels[i][c] - b.Pixels[i][c])
			errs[c][i] = e
			sumSq += e * e
			if e > ds.MaxErr[c] {
				ds.MaxErr[c] = e
			}

			level := int64(math.Round(math.Min(e, 1.0) * 255))
			if err := h.RecordValue(level); err != nil {
				return ds, fmt.Errorf("compare, recording %d: %v", level, err)
			}
			ds.Hist.Add(histogram.ScalarVal(level))
		}
	}

	for _, c := range Channels {
		ds.Mean[c], ds.StdDev[c] = stat.MeanStdDev(errs[c], nil)
	}

	mse := sumSq / float64(3 * len(a.Pixels))
	if mse == 0 {
		ds.PSNR = math.Inf(1)
	} else {
		ds.PSNR = 10 * math.Log10(1.0 / mse)
	}

	ds.P50 = h.ValueAtQuantile(50)
	ds.P90 = h.ValueAtQuantile(90)
	ds.P99 = h.ValueAtQuantile(99)

	return ds, nil
}

// DiffGrid returns the per-pixel error (summed over channels) as a
// plane, which can be dumped with ToImg to see where two images differ.
func DiffGrid(a, b *Image) (*emath.Matrix, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return nil, fmt.Errorf("diffgrid %s with %s: %w", a, b, emath.ErrDimensionMismatch)
	}

	vals := make([]float64, len(a.Pixels))
	for i := range a.Pixels {
		for _, c := range Channels {
			vals[i] += math.Abs(a.Pixels[i][c] - b.Pixels[i][c])
		}
	}

	return emath.NewMatrixFromValues(a.Width, a.Height, vals)
}
