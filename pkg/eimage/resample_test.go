package eimage

import(
	"context"
	"errors"
	"testing"

	"github.com/abworrall/demosaic/pkg/emath"
)

func TestResampleHitsSourceSamples(t *testing.T) {
	src := randomImage(t, 5, 5, 3)

	// 8 / (5-1) == 2, so every other destination pixel is a source sample
	dst, err := Resample(context.Background(), src, 8, 8, 3)
	if err != nil {
		t.Fatal(err)
	}
	if dst.Width != 8 || dst.Height != 8 {
		t.Fatalf("got %s, want 8x8", dst)
	}

	for m:=0; m<4; m++ {
		for n:=0; n<4; n++ {
			if got, want := dst.Pix(2*m, 2*n), src.Pix(m, n); got != want {
				t.Errorf("dst(%d,%d): got %s, want src(%d,%d)=%s", 2*m, 2*n, got, m, n, want)
			}
		}
	}
}

func TestResampleKeepsOrigin(t *testing.T) {
	src := randomImage(t, 9, 6, 4)
	ctx := context.Background()

	up, err := Resample(ctx, src, 20, 13, 0)
	if err != nil {
		t.Fatal(err)
	}
	down, err := Resample(ctx, up, 9, 6, 0)
	if err != nil {
		t.Fatal(err)
	}
	if down.Pix(0, 0) != src.Pix(0, 0) {
		t.Errorf("origin moved: got %s, want %s", down.Pix(0, 0), src.Pix(0, 0))
	}
}

func TestResampleConstant(t *testing.T) {
	src := constantImage(t, 6, 4, Pixel{0.25, 0.5, 0.75})
	dst, err := Resample(context.Background(), src, 11, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range dst.Pixels {
		if p != (Pixel{0.25, 0.5, 0.75}) {
			t.Fatalf("pixel %d: got %s", i, p)
		}
	}
}

func TestResampleOutputInRange(t *testing.T) {
	src := randomImage(t, 7, 7, 5)
	dst, err := Resample(context.Background(), src, 23, 17, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range dst.Pixels {
		for _, c := range Channels {
			if p[c] < 0 || p[c] > 1 {
				t.Fatalf("pixel %d %s out of range: %v", i, c, p[c])
			}
		}
	}
}

func TestResampleWorkerCountIrrelevant(t *testing.T) {
	src := randomImage(t, 8, 6, 6)
	ctx := context.Background()
	a, err := Resample(ctx, src, 15, 9, 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Resample(ctx, src, 15, 9, 8)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("pixel %d differs: %s vs %s", i, a.Pixels[i], b.Pixels[i])
		}
	}
}

func TestResampleDegenerate(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name       string
		w, h       int
		newW, newH int
	}{
		{"one column source", 1, 5, 4, 4},
		{"one row source", 5, 1, 4, 4},
		{"zero width target", 5, 5, 0, 4},
		{"zero height target", 5, 5, 4, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := randomImage(t, tc.w, tc.h, 7)
			if _, err := Resample(ctx, src, tc.newW, tc.newH, 1); !errors.Is(err, emath.ErrDegenerateInput) {
				t.Errorf("got %v, want %v", err, emath.ErrDegenerateInput)
			}
		})
	}
}

// Going from N to N-1 samples gives a scale of exactly 1, so every
// destination pixel sits on a source sample.
func TestResampleUnitScale(t *testing.T) {
	src := randomImage(t, 6, 6, 14)
	dst, err := Resample(context.Background(), src, 5, 5, 2)
	if err != nil {
		t.Fatal(err)
	}
	for y:=0; y<5; y++ {
		for x:=0; x<5; x++ {
			if got, want := dst.Pix(x, y), src.Pix(x, y); got != want {
				t.Errorf("(%d,%d): got %s, want %s", x, y, got, want)
			}
		}
	}
}
