package eimage

import(
	"os"
	"path/filepath"
	"testing"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	img := randomImage(t, 6, 4, 9)
	dir := t.TempDir()

	for _, ext := range []string{"bmp", "png", "tif"} {
		t.Run(ext, func(t *testing.T) {
			filename := filepath.Join(dir, "img." + ext)
			if err := img.Write(filename); err != nil {
				t.Fatalf("Write: %v", err)
			}

			back, md, err := Load(filename)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if md.Filename != filename || md.Make != "" {
				t.Errorf("unexpected metadata %s", md)
			}
			if back.Width != img.Width || back.Height != img.Height {
				t.Fatalf("got %s, want %s", back, img)
			}
			for i := range img.Pixels {
				if !pixelsEqualWithin(back.Pixels[i], img.Pixels[i], 1e-9) {
					t.Fatalf("pixel %d: got %s, want %s", i, back.Pixels[i], img.Pixels[i])
				}
			}
		})
	}
}

func TestWriteHDR(t *testing.T) {
	img := randomImage(t, 3, 3, 10)
	filename := filepath.Join(t.TempDir(), "img.hdr")
	if err := img.Write(filename); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if fi, err := os.Stat(filename); err != nil || fi.Size() == 0 {
		t.Errorf("no .hdr output: %v", err)
	}
}

func TestUnknownFormats(t *testing.T) {
	img := randomImage(t, 2, 2, 11)
	dir := t.TempDir()

	if err := img.Write(filepath.Join(dir, "img.xyz")); err == nil {
		t.Errorf("writing .xyz should fail")
	}
	if _, err := os.Stat(filepath.Join(dir, "img.xyz")); !os.IsNotExist(err) {
		t.Errorf("failed write left a file behind: %v", err)
	}
	if _, _, err := Load(filepath.Join(dir, "img.xyz")); err == nil {
		t.Errorf("loading .xyz should fail")
	}
	if _, _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Errorf("loading a missing file should fail")
	}

	if !IsImageFile("a/B.JPG") || IsImageFile("config.yaml") {
		t.Errorf("IsImageFile is confused")
	}
	if !IsOutputFormat("hdr") || IsOutputFormat("gif") {
		t.Errorf("IsOutputFormat is confused")
	}
}
