package main

import(
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"

	"github.com/abworrall/demosaic/pkg/ejob"
)

var(
	fVerbosity int
	fWorkers int
	fPatterns string
	fResize string
	fRotate float64
	fGrayscale bool
	fOutputDir string
	fOutputFormat string
	fDumpPlanes bool
	fCompare bool
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.IntVar(&fWorkers, "workers", 0, "goroutines per image (0 means one per CPU)")
	flag.StringVar(&fPatterns, "patterns", "", "comma separated CFA patterns to simulate: bayer, xtrans, auto")
	flag.StringVar(&fResize, "resize", "", "also write a resampled copy, e.g. 1024x768")
	flag.Float64Var(&fRotate, "rotate", 0, "also write a copy rotated by this many degrees")
	flag.BoolVar(&fGrayscale, "gray", false, "also write a grayscale copy")
	flag.StringVar(&fOutputDir, "outdir", "", "where to write output images")
	flag.StringVar(&fOutputFormat, "format", "", "output image format: bmp, png, tif, jpg, hdr")
	flag.BoolVar(&fDumpPlanes, "dumpplanes", false, "write the CFA planes out as PNGs")
	flag.BoolVar(&fCompare, "compare", false, "report how close each reconstruction is to its input")
	flag.Parse()
}

func main() {
	job := ejob.NewJob()
	job.Log = ejob.NewLogger(fVerbosity)
	job.Log.Infof("cfa-demosaic starting")

	if err := job.LoadFilesAndDirs(flag.Args()...); err != nil {
		job.Log.Fatal(err)
	}

	// Flags override whatever came from a YAML file
	if fVerbosity > 0 {
		job.Config.Verbosity = fVerbosity
	}
	if fWorkers > 0 {
		job.Config.Workers = fWorkers
	}
	if fPatterns != "" {
		job.Config.Patterns = strings.Split(fPatterns, ",")
	}
	if fResize != "" {
		if err := job.Config.ParseResize(fResize); err != nil {
			job.Log.Fatal(err)
		}
	}
	if fRotate != 0 {
		job.Config.RotateDegrees = fRotate
	}
	if fOutputDir != "" {
		job.Config.OutputDir = fOutputDir
	}
	if fOutputFormat != "" {
		job.Config.OutputFormat = fOutputFormat
	}
	job.Config.Grayscale = job.Config.Grayscale || fGrayscale
	job.Config.DumpPlanes = job.Config.DumpPlanes || fDumpPlanes
	job.Config.Compare = job.Config.Compare || fCompare

	if job.Config.Verbosity > 0 {
		job.Log.Debugf("Final configuration:-\n\n%s\n", job.Config.AsYaml())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := job.Run(ctx); err != nil {
		job.Log.Fatal(err)
	}
}
