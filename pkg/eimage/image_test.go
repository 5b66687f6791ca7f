package eimage

import(
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/mdouchement/hdr"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/abworrall/demosaic/pkg/emath"
)

var _ hdr.Image = &Image{}

// randomImage returns an image whose channel values are all whole
// 8bit levels, so they survive 8bit and 16bit codecs untouched.
func randomImage(t *testing.T, w, h int, seed int64) *Image {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	img, err := New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for i := range img.Pixels {
		img.Pixels[i] = Pixel{
			float64(rng.Intn(256)) / 255,
			float64(rng.Intn(256)) / 255,
			float64(rng.Intn(256)) / 255,
		}
	}
	return img
}

func constantImage(t *testing.T, w, h int, p Pixel) *Image {
	t.Helper()
	img, err := New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for i := range img.Pixels {
		img.Pixels[i] = p
	}
	return img
}

func pixelsEqualWithin(a, b Pixel, tol float64) bool {
	return scalar.EqualWithinAbs(a[0], b[0], tol) &&
		scalar.EqualWithinAbs(a[1], b[1], tol) &&
		scalar.EqualWithinAbs(a[2], b[2], tol)
}

func TestNewImage(t *testing.T) {
	if _, err := New(0, 4); !errors.Is(err, emath.ErrDegenerateInput) {
		t.Errorf("New(0,4): got %v, want %v", err, emath.ErrDegenerateInput)
	}

	img, err := New(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if img.Size() != 6 || img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("got size %d bounds %v", img.Size(), img.Bounds())
	}

	img.Set(2, 1, Pixel{0.1, 0.2, 0.3})
	if img.Pixels[5] != (Pixel{0.1, 0.2, 0.3}) {
		t.Errorf("Set(2,1) is not row-major")
	}
	img.PixRW(0, 1)[Green] = 0.5
	if img.Pix(0, 1)[Green] != 0.5 {
		t.Errorf("PixRW did not write through")
	}
}

func TestPixelClamped(t *testing.T) {
	p := Pixel{-0.2, 0.4, 1.7}.Clamped()
	if p != (Pixel{0, 0.4, 1}) {
		t.Errorf("got %s", p)
	}
	if p.Get(Green) != 0.4 || p.Get(Blue) != 1 {
		t.Errorf("Get: got %v,%v", p.Get(Green), p.Get(Blue))
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 13, 22))
	src.Set(10, 20, color.RGBA{255, 0, 51, 255})
	src.Set(12, 21, color.RGBA{0, 128, 255, 255})

	img, err := FromImage(src)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 3 || img.Height != 2 {
		t.Fatalf("got %s, want 3x2", img)
	}

	tests := []struct{ x, y int; want Pixel }{
		{0, 0, Pixel{1, 0, 0.2}},
		{2, 1, Pixel{0, 128.0/255, 1}},
		{1, 0, Pixel{0, 0, 0}},
	}
	for _, tc := range tests {
		if got := img.Pix(tc.x, tc.y); !pixelsEqualWithin(got, tc.want, 1e-12) {
			t.Errorf("(%d,%d): got %s, want %s", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestToRGBA64RoundTrip(t *testing.T) {
	img := randomImage(t, 7, 5, 1)
	back, err := FromImage(img.ToRGBA64())
	if err != nil {
		t.Fatal(err)
	}
	for i := range img.Pixels {
		if !pixelsEqualWithin(img.Pixels[i], back.Pixels[i], 1e-12) {
			t.Fatalf("pixel %d: got %s, want %s", i, back.Pixels[i], img.Pixels[i])
		}
	}
}

func TestPlane(t *testing.T) {
	img := randomImage(t, 4, 3, 2)
	p, err := img.Plane(Blue, 255)
	if err != nil {
		t.Fatal(err)
	}
	if r, c := p.Dims(); r != 4 || c != 3 {
		t.Fatalf("plane dims %dx%d, want 4x3", r, c)
	}
	for y:=0; y<3; y++ {
		for x:=0; x<4; x++ {
			if got, want := p.At(x, y), img.Pix(x, y)[Blue]*255; got != want {
				t.Errorf("plane(%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestChannelOnly(t *testing.T) {
	img := constantImage(t, 2, 2, Pixel{0.1, 0.2, 0.3})
	for _, c := range Channels {
		only := img.ChannelOnly(c)
		for _, p := range only.Pixels {
			for _, c2 := range Channels {
				want := 0.0
				if c2 == c {
					want = img.Pixels[0][c]
				}
				if p[c2] != want {
					t.Errorf("%s only: %s channel is %v, want %v", c, c2, p[c2], want)
				}
			}
		}
	}
	if img.Pixels[0] != (Pixel{0.1, 0.2, 0.3}) {
		t.Errorf("ChannelOnly modified its source")
	}
}
