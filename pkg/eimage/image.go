package eimage

import(
	"fmt"
	"image"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/demosaic/pkg/emath"
)

// Channel picks one of the three color channels of a Pixel.
type Channel int

const(
	Red Channel = iota
	Green
	Blue
)

var Channels = []Channel{Red, Green, Blue}

func (c Channel)String() string {
	switch c {
	case Red:   return "red"
	case Green: return "green"
	case Blue:  return "blue"
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

// A Pixel is an RGB triple; each channel is nominally in [0,1].
type Pixel emath.Vec3

func (p Pixel)Get(c Channel) float64 { return p[c] }

// Clamped returns the pixel with each channel pinned into [0,1].
func (p Pixel)Clamped() Pixel {
	for _, c := range Channels {
		p[c] = emath.Clamp01(p.Get(c))
	}
	return p
}

func (p Pixel)String() string { return emath.Vec3(p).String() }

// Image is a rectangular raster of Pixels, stored row-major. It
// implements image.Image, and hdr.Image so it can be written out as
// a Radiance file.
type Image struct {
	Width  int
	Height int
	Pixels []Pixel
}

func New(w, h int) (*Image, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("new image %dx%d: %w", w, h, emath.ErrDegenerateInput)
	}
	return &Image{Width: w, Height: h, Pixels: make([]Pixel, w*h)}, nil
}

// Implement image.Image
func (img *Image)ColorModel() color.Model       { return hdrcolor.RGBModel }
func (img *Image)Bounds() image.Rectangle       { return image.Rect(0, 0, img.Width, img.Height) }
func (img *Image)At(x, y int) color.Color       { return img.HDRAt(x, y) }

// Implement hdr.Image
func (img *Image)HDRAt(x, y int) hdrcolor.Color {
	p := img.Pix(x, y)
	return hdrcolor.RGB{R: p[0], G: p[1], B: p[2]}
}
func (img *Image)Size() int                     { return img.Width * img.Height }

// Pixel access
func (img *Image)Pix(x, y int) Pixel            { return img.Pixels[y*img.Width + x] }
func (img *Image)PixRW(x, y int) *Pixel         { return &(img.Pixels[y*img.Width + x]) }
func (img *Image)Set(x, y int, p Pixel)         { img.Pixels[y*img.Width + x] = p }

func (img *Image)String() string {
	return fmt.Sprintf("Image[%dx%d]", img.Width, img.Height)
}

func (img *Image)Copy() *Image {
	out := Image{Width: img.Width, Height: img.Height, Pixels: make([]Pixel, len(img.Pixels))}
	copy(out.Pixels, img.Pixels)
	return &out
}

// FromImage converts any decoded image into an Image, mapping the
// 16bit channel values down to [0,1].
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	img, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	for y:=0; y<b.Dy(); y++ {
		for x:=0; x<b.Dx(); x++ {
			r, g, bl, _ := src.At(b.Min.X + x, b.Min.Y + y).RGBA()
			img.Set(x, y, Pixel{float64(r) / 0xFFFF, float64(g) / 0xFFFF, float64(bl) / 0xFFFF})
		}
	}

	return img, nil
}

// ToRGBA64 renders the image into a 16bit raster, clamping into [0,1].
// This is what gets handed to the LDR encoders.
func (img *Image)ToRGBA64() *image.RGBA64 {
	out := image.NewRGBA64(img.Bounds())
	for y:=0; y<img.Height; y++ {
		for x:=0; x<img.Width; x++ {
			p := img.Pix(x, y).Clamped()
			out.SetRGBA64(x, y, color.RGBA64{
				R: uint16(p[0]*0xFFFF + 0.5),
				G: uint16(p[1]*0xFFFF + 0.5),
				B: uint16(p[2]*0xFFFF + 0.5),
				A: 0xFFFF,
			})
		}
	}
	return out
}

// Plane extracts one channel at full resolution as a plane (a Matrix
// with Width rows and Height cols), with every value multiplied by scale.
func (img *Image)Plane(c Channel, scale float64) (*emath.Matrix, error) {
	vals := make([]float64, len(img.Pixels))
	for i, p := range img.Pixels {
		vals[i] = p.Get(c) * scale
	}
	return emath.NewMatrixFromValues(img.Width, img.Height, vals)
}

// ChannelOnly returns a copy of the image where every channel other
// than c is zeroed, for visualizing one channel in its own color.
func (img *Image)ChannelOnly(c Channel) *Image {
	out := img.Copy()
	for i := range out.Pixels {
		var p Pixel
		p[c] = out.Pixels[i].Get(c)
		out.Pixels[i] = p
	}
	return out
}
