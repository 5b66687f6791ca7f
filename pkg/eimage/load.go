package eimage

import(
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Metadata is what we manage to learn about the camera from EXIF. Most
// inputs (e.g. BMPs) don't carry any, and that's fine.
type Metadata struct {
	Filename string
	Make     string
	Model    string
}

func (md Metadata)String() string {
	if md.Make == "" && md.Model == "" {
		return fmt.Sprintf("%s (no camera info)", md.Filename)
	}
	return fmt.Sprintf("%s (%s %s)", md.Filename, md.Make, md.Model)
}

// IsImageFile reports whether Load knows how to decode the file.
func IsImageFile(filename string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(filename))]
	return ok
}

var decoders = map[string]func(io.Reader) (image.Image, error){
	".bmp":  bmp.Decode,
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
}

func Load(filename string) (*Image, Metadata, error) {
	md := Metadata{Filename: filename}

	decode, ok := decoders[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return nil, md, fmt.Errorf("load '%s': unknown image type", filename)
	}

	reader, err := os.Open(filename)
	if err != nil {
		return nil, md, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer reader.Close()

	src, err := decode(reader)
	if err != nil {
		return nil, md, fmt.Errorf("decoding '%s': %v", filename, err)
	}

	img, err := FromImage(src)
	if err != nil {
		return nil, md, fmt.Errorf("load '%s': %w", filename, err)
	}

	if err := md.readExif(filename); err != nil {
		Log.Debugf("no EXIF in %s: %v", filename, err)
	}

	return img, md, nil
}

func (md *Metadata)readExif(filename string) error {
	reader, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open+r exif '%s': %v", filename, err)
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return fmt.Errorf("exif parsing '%s': %v", filename, err)
	}

	if tag, err := ex.Get(exif.Make); err == nil {
		if val, err := tag.StringVal(); err == nil {
			md.Make = strings.TrimSpace(val)
		}
	}
	if tag, err := ex.Get(exif.Model); err == nil {
		if val, err := tag.StringVal(); err == nil {
			md.Model = strings.TrimSpace(val)
		}
	}

	return nil
}
