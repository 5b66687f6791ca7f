package ejob

import(
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abworrall/demosaic/pkg/ecfa"
	"github.com/abworrall/demosaic/pkg/eimage"
)

// A Job runs the configured operations over a set of input images,
// writing the results into the output dir.
type Job struct {
	Config

	Inputs  []string       // Image files, in the order found
	Outputs []string       // Files written so far
	Log     *logrus.Logger
}

func NewJob() *Job {
	return &Job{
		Config: NewConfig(),
		Log:    logrus.StandardLogger(),
	}
}

func (j *Job)LoadFilesAndDirs(args ...string) error {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := ioutil.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				if err := j.LoadFilesAndDirs(filepath.Join(arg, content.Name())); err != nil {
					return fmt.Errorf("load %s: %v", arg, err)
				}
			}

		default:
			if err := j.loadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %v", arg, err)
			}
		}
	}

	return nil
}

func (j *Job)loadFile(filename string) error {
	switch {
	case strings.ToLower(filepath.Ext(filename)) == ".yaml":
		cfg, err := loadConfig(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as config YAML failed: %v", filename, err)
		}
		j.Config = cfg
		j.Log.Infof("Loaded base configuration from %s", filename)

	case eimage.IsImageFile(filename):
		j.Inputs = append(j.Inputs, filename)

	default:
		j.Log.Debugf("ignoring %s", filename)
	}

	return nil
}

// Run processes every input in turn. The first failure stops the run.
func (j *Job)Run(ctx context.Context) error {
	if err := j.Config.Finalize(); err != nil {
		return err
	}
	if len(j.Inputs) == 0 {
		return fmt.Errorf("no input images")
	}
	if err := os.MkdirAll(j.OutputDir, 0755); err != nil {
		return fmt.Errorf("mkdir %s: %v", j.OutputDir, err)
	}

	eimage.Log = j.Log

	for _, filename := range j.Inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := j.process(ctx, filename); err != nil {
			return fmt.Errorf("process %s: %w", filename, err)
		}
	}

	j.Log.Infof("done, %d files written to %s", len(j.Outputs), j.OutputDir)
	return nil
}

func (j *Job)process(ctx context.Context, filename string) error {
	img, md, err := eimage.Load(filename)
	if err != nil {
		return err
	}
	j.Log.Infof("loaded %s, %s", md, img)

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	for _, p := range j.GetPatterns(md) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := j.demosaic(ctx, img, base, p); err != nil {
			return err
		}
	}

	if j.ResizeWidth > 0 {
		out, err := eimage.Resample(ctx, img, j.ResizeWidth, j.ResizeHeight, j.Workers)
		if err != nil {
			return err
		}
		if err := j.write(out, base, fmt.Sprintf("%dx%d", j.ResizeWidth, j.ResizeHeight)); err != nil {
			return err
		}
	}

	if j.RotateDegrees != 0 {
		out, err := eimage.Rotate(img, j.RotateDegrees)
		if err != nil {
			return err
		}
		if err := j.write(out, base, "rotated"); err != nil {
			return err
		}
	}

	if j.Grayscale {
		if err := j.write(eimage.Grayscale(img), base, "gray"); err != nil {
			return err
		}
	}

	return nil
}

func (j *Job)demosaic(ctx context.Context, img *eimage.Image, base string, p ecfa.Pattern) error {
	r, err := ecfa.Demosaic(ctx, img, p, j.Workers)
	if err != nil {
		return err
	}

	if err := j.write(r.Combined, base, p.String()); err != nil {
		return err
	}
	for _, c := range eimage.Channels {
		if err := j.write(r.Channels[c], base, p.String() + "-" + c.String()); err != nil {
			return err
		}
	}

	if j.DumpPlanes {
		if err := r.Mosaic.DumpPlanes(filepath.Join(j.OutputDir, base)); err != nil {
			return err
		}
	}

	if j.Compare {
		ds, err := eimage.Compare(img, r.Combined)
		if err != nil {
			return err
		}
		j.Log.Infof("%s %s vs input: %s", base, p, ds)

		if j.Verbosity > 0 {
			grid, err := eimage.DiffGrid(img, r.Combined)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("%s %s: PSNR %.2fdB", base, p, ds.PSNR)
			if err := grid.ToImg(title, filepath.Join(j.OutputDir, fmt.Sprintf("diff-%s-%s.png", base, p))); err != nil {
				return err
			}
		}
	}

	return nil
}

func (j *Job)write(img *eimage.Image, base, suffix string) error {
	filename := filepath.Join(j.OutputDir, fmt.Sprintf("%s-%s.%s", base, suffix, j.OutputFormat))
	if err := img.Write(filename); err != nil {
		return err
	}
	j.Outputs = append(j.Outputs, filename)
	return nil
}
