package ejob

import(
	"testing"

	"github.com/abworrall/demosaic/pkg/ecfa"
	"github.com/abworrall/demosaic/pkg/eimage"
)

func TestNewConfigIsValid(t *testing.T) {
	if err := NewConfig().Finalize(); err != nil {
		t.Errorf("default config: %v", err)
	}
}

func TestConfigFromYaml(t *testing.T) {
	c, err := newConfigFromYaml([]byte(`
workers: 3
patterns: [auto]
resizewidth: 40
resizeheight: 30
outputformat: png
`))
	if err != nil {
		t.Fatal(err)
	}
	if c.Workers != 3 || c.ResizeWidth != 40 || c.ResizeHeight != 30 || c.OutputFormat != "png" {
		t.Errorf("got %+v", c)
	}
	if c.OutputDir != "." {
		t.Errorf("unset fields should keep their defaults, outputdir=%q", c.OutputDir)
	}

	// And back again
	c2, err := newConfigFromYaml([]byte(c.AsYaml()))
	if err != nil {
		t.Fatal(err)
	}
	if c2.AsYaml() != c.AsYaml() {
		t.Errorf("yaml round trip changed config:\n%s\n%s", c.AsYaml(), c2.AsYaml())
	}
}

func TestConfigFinalize(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no patterns",     func(c *Config) { c.Patterns = nil }},
		{"unknown pattern", func(c *Config) { c.Patterns = []string{"bayer", "quad"} }},
		{"unknown format",  func(c *Config) { c.OutputFormat = "gif" }},
		{"half a resize",   func(c *Config) { c.ResizeWidth = 10 }},
		{"negative resize", func(c *Config) { c.ResizeWidth, c.ResizeHeight = -1, -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConfig()
			tc.modify(&c)
			if err := c.Finalize(); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestGetPatterns(t *testing.T) {
	c := NewConfig()
	c.Patterns = []string{"auto", "bayer", "fuji"}

	fuji := c.GetPatterns(eimage.Metadata{Make: "FUJIFILM"})
	if len(fuji) != 2 || fuji[0] != ecfa.XTrans || fuji[1] != ecfa.Bayer {
		t.Errorf("fuji: got %v", fuji)
	}

	nikon := c.GetPatterns(eimage.Metadata{Make: "NIKON CORPORATION"})
	if len(nikon) != 2 || nikon[0] != ecfa.Bayer || nikon[1] != ecfa.XTrans {
		t.Errorf("nikon: got %v", nikon)
	}
}

func TestParseResize(t *testing.T) {
	c := NewConfig()
	if err := c.ParseResize("640X480"); err != nil {
		t.Fatal(err)
	}
	if c.ResizeWidth != 640 || c.ResizeHeight != 480 {
		t.Errorf("got %dx%d", c.ResizeWidth, c.ResizeHeight)
	}

	for _, bad := range []string{"640", "0x10", "axb", "-3x4"} {
		if err := c.ParseResize(bad); err == nil {
			t.Errorf("%q should fail", bad)
		}
	}
}
