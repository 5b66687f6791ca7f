package eimage

import(
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr/codec/rgbe"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var OutputFormats = []string{"bmp", "png", "tif", "jpg", "hdr"}

func IsOutputFormat(f string) bool {
	for _, known := range OutputFormats {
		if f == known {
			return true
		}
	}
	return false
}

// Write encodes the image according to the filename's extension. LDR
// formats get the clamped 16bit rendering; .hdr gets the floats as-is.
// Nothing is created if the extension isn't one we can write.
func (img *Image)Write(filename string) error {
	var encode func(w io.Writer) error

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".bmp":
		encode = func(w io.Writer) error { return bmp.Encode(w, img.ToRGBA64()) }
	case ".png":
		encode = func(w io.Writer) error { return png.Encode(w, img.ToRGBA64()) }
	case ".jpg", ".jpeg":
		encode = func(w io.Writer) error { return jpeg.Encode(w, img.ToRGBA64(), &jpeg.Options{Quality: 95}) }
	case ".tif", ".tiff":
		encode = func(w io.Writer) error { return tiff.Encode(w, img.ToRGBA64(), &tiff.Options{Compression: tiff.Deflate}) }
	case ".hdr":
		encode = func(w io.Writer) error { return rgbe.Encode(w, img) }
	default:
		return fmt.Errorf("write '%s': unknown output type '%s'", filename, ext)
	}

	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	}
	defer writer.Close()

	if err := encode(writer); err != nil {
		return fmt.Errorf("encoding '%s': %v", filename, err)
	}

	Log.Debugf("wrote %s to %s", img, filename)
	return writer.Close()
}
