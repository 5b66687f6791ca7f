package ejob

import(
	"fmt"
	"io/ioutil"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/demosaic/pkg/ecfa"
	"github.com/abworrall/demosaic/pkg/eimage"
)

type Config struct {
	Verbosity     int

	Workers       int       // Goroutines per image; 0 means one per CPU
	Patterns      []string  // Any of "bayer", "xtrans", or "auto" to pick from the EXIF Make

	ResizeWidth   int       // If both are set, also write a resampled copy
	ResizeHeight  int
	RotateDegrees float64   // If non-zero, also write a rotated copy
	Grayscale     bool      // Also write a grayscale copy

	OutputDir     string
	OutputFormat  string    // One of eimage.OutputFormats
	DumpPlanes    bool      // Write out the CFA planes as PNGs
	Compare       bool      // Report how far each reconstruction is from its input
}

func NewConfig() Config {
	return Config{
		Patterns:     []string{"bayer", "xtrans"},
		OutputDir:    ".",
		OutputFormat: "bmp",
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func loadConfig(filename string) (Config, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	return newConfigFromYaml(contents)
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Finalize checks the config makes sense.
func (c Config)Finalize() error {
	if len(c.Patterns) == 0 {
		return fmt.Errorf("config: no patterns")
	}
	for _, p := range c.Patterns {
		if p == "auto" {
			continue
		}
		if _, err := ecfa.ParsePattern(p); err != nil {
			return fmt.Errorf("config: %v", err)
		}
	}

	if !eimage.IsOutputFormat(c.OutputFormat) {
		return fmt.Errorf("config: no output format '%s' (want one of %v)", c.OutputFormat, eimage.OutputFormats)
	}

	if (c.ResizeWidth == 0) != (c.ResizeHeight == 0) || c.ResizeWidth < 0 || c.ResizeHeight < 0 {
		return fmt.Errorf("config: bad resize %dx%d", c.ResizeWidth, c.ResizeHeight)
	}

	return nil
}

// GetPatterns resolves the configured pattern names for one input; "auto"
// picks whichever the camera that made it uses.
func (c Config)GetPatterns(md eimage.Metadata) []ecfa.Pattern {
	seen := map[ecfa.Pattern]bool{}
	pats := []ecfa.Pattern{}

	for _, name := range c.Patterns {
		var p ecfa.Pattern
		if name == "auto" {
			p = ecfa.PatternFromCamera(md.Make)
		} else {
			var err error
			if p, err = ecfa.ParsePattern(name); err != nil {
				continue // Finalize has already complained
			}
		}
		if !seen[p] {
			seen[p] = true
			pats = append(pats, p)
		}
	}

	return pats
}

// ParseResize sets the resize target from a "WxH" string.
func (c *Config)ParseResize(s string) error {
	var w, h int
	if n, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &w, &h); err != nil || n != 2 || w < 1 || h < 1 {
		return fmt.Errorf("bad resize '%s', want e.g. 1024x768", s)
	}
	c.ResizeWidth, c.ResizeHeight = w, h
	return nil
}
