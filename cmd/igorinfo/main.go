// This tool prints the headers, units and sample range of every wave found
// in the passed binary wave or packed experiment files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/cwbudde/igor"
)

const missingPathMessage = "You must pass the path of at least one .ibw or .pxt file"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

var (
	errMissingPath = errors.New("missing path argument")
	errNoWaves     = errors.New("no file could be decoded")
)

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("igorinfo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	workers := fs.Int("j", 4, "number of files decoded in parallel")
	verbose := fs.Bool("v", false, "log every record at debug level")
	legacy := fs.Bool("legacy", false, "decode generation 1 and 3 headers")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return errMissingPath
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	batch := igor.Batch{
		Workers:                *workers,
		Logger:                 logger,
		AllowLegacyGenerations: *legacy,
	}

	var decoded int

	for _, res := range batch.Decode(context.Background(), fs.Args()) {
		if res.Err != nil {
			logger.Error("skipping file", "path", res.Path, "error", res.Err)
			continue
		}

		decoded++

		fmt.Fprintf(out, "%s: %d wave(s)\n", res.Path, len(res.Waves))

		for i, w := range res.Waves {
			printWave(out, i, w)
		}
	}

	if decoded == 0 {
		return errNoWaves
	}

	return nil
}

func printWave(out io.Writer, index int, w *igor.Wave) {
	dims := w.Dimensions()
	steps := w.ScaleSteps()
	origins := w.ScaleOrigins()

	fmt.Fprintf(out, "  [%d] %s\n", index, w.Name())
	fmt.Fprintf(out, "\tGeneration: %d\n", w.ArchiveHeader.Generation())
	fmt.Fprintf(out, "\tType: %s\n", w.WaveHeader.Kind())
	fmt.Fprintf(out, "\tPoints: %d\n", w.WaveHeader.NumPoints())

	var shape []string

	for d := range dims {
		if dims[d] == 0 {
			continue
		}

		shape = append(shape, fmt.Sprint(dims[d]))
		fmt.Fprintf(out, "\tDim %d: origin %g, step %g\n", d, origins[d], steps[d])
	}

	fmt.Fprintf(out, "\tShape: %s\n", strings.Join(shape, "x"))

	if units := w.DataUnits(); units != "" {
		fmt.Fprintf(out, "\tData units: %s\n", units)
	}

	for i, u := range w.DimensionUnits {
		fmt.Fprintf(out, "\tDimension units [%d]: %s\n", i, u)
	}

	for i, l := range w.DimensionLabels {
		fmt.Fprintf(out, "\tDimension labels [%d]: %d bytes\n", i, len(l))
	}

	if len(w.Samples) > 0 {
		lo, hi := w.SampleBounds()
		fmt.Fprintf(out, "\tRange: %g .. %g\n", lo, hi)
	}

	if w.Note != "" {
		fmt.Fprintf(out, "\tNote: %s\n", strings.ReplaceAll(w.Note, "\n", "\n\t      "))
	}
}
