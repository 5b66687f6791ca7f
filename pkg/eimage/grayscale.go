package eimage

import(
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Grayscale replaces each pixel with a neutral gray of the same CIE L*
// lightness.
func Grayscale(img *Image) *Image {
	out := img.Copy()
	for i, p := range out.Pixels {
		p = p.Clamped()
		l, _, _ := colorful.Color{R: p[0], G: p[1], B: p[2]}.Lab()
		gray := colorful.Lab(l, 0, 0).Clamped()
		out.Pixels[i] = Pixel{gray.R, gray.G, gray.B}
	}
	return out
}
