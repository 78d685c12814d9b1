// This tool renders one wave of a binary wave or packed experiment file as
// an aiff file stored in the same folder as the source.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/cwbudde/igor"
	"github.com/go-audio/aiff"
)

var (
	errMissingPath = errors.New("you must set the -path flag")
	errNoSuchWave  = errors.New("wave index out of range")
	errEmptyWave   = errors.New("wave has no samples")
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errMissingPath) {
			fmt.Println("You must set the -path flag")
			os.Exit(1)
		}

		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("wavetoaiff", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	path := fs.String("path", "", "The path to the .ibw or .pxt file to convert")
	index := fs.Int("index", 0, "The wave to convert, in file order")
	rate := fs.Int("rate", 44100, "The sample rate written to the aiff header")
	bits := fs.Int("bits", 16, "The bit depth of the aiff file (8, 16, 24 or 32)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return errMissingPath
	}

	sourcePath, err := expandHome(*path)
	if err != nil {
		return err
	}

	waves, err := igor.DecodeFile(sourcePath, igor.FileKindAuto)
	if err != nil {
		return err
	}

	if *index < 0 || *index >= len(waves) {
		return fmt.Errorf("%w: %d of %d", errNoSuchWave, *index, len(waves))
	}

	w := waves[*index]
	if len(w.Samples) == 0 {
		return fmt.Errorf("%w: %s", errEmptyWave, w.Name())
	}

	buf, err := w.IntBuffer(*rate, *bits)
	if err != nil {
		return err
	}

	outPath := outputPath(sourcePath, w.Name())

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	encoder := aiff.NewEncoder(outFile, *rate, *bits, buf.Format.NumChannels)
	if err := encoder.Write(buf); err != nil {
		return err
	}

	if err := encoder.Close(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wave %s converted to %s\n", w.Name(), outPath)

	return nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get the user home directory: %w", err)
	}

	return strings.Replace(path, "~", usr.HomeDir, 1), nil
}

// outputPath names the aiff file after the wave, falling back to the source
// file name for unnamed waves.
func outputPath(sourcePath, waveName string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' {
			return '_'
		}

		return r
	}, waveName)

	if name == "" {
		name = strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	}

	return filepath.Join(filepath.Dir(sourcePath), name+".aif")
}
