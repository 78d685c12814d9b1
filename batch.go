package igor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileKind selects the decoder used for a file.
type FileKind int

const (
	// FileKindAuto picks the decoder from the file extension.
	FileKindAuto FileKind = iota
	// FileKindWave is a standalone binary wave (.ibw).
	FileKindWave
	// FileKindArchive is a packed experiment (.pxt, .pxp).
	FileKindArchive
)

// FileKindFromPath guesses the file kind from its extension. Unknown
// extensions are treated as packed experiments.
func FileKindFromPath(path string) FileKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ibw":
		return FileKindWave
	default:
		return FileKindArchive
	}
}

// FileResult is the outcome of decoding one file.
type FileResult struct {
	Path  string
	Waves []*Wave
	Err   error
}

// Batch decodes many files concurrently. The zero value decodes one file at
// a time and picks the decoder from each extension.
type Batch struct {
	// Workers is the number of files decoded in parallel.
	Workers int
	Kind    FileKind
	// Logger is handed to every decoder.
	Logger                 *slog.Logger
	AllowLegacyGenerations bool
}

// DecodeFile opens and decodes a single file.
func DecodeFile(path string, kind FileKind) ([]*Wave, error) {
	return Batch{Kind: kind}.decodeFile(path)
}

// DecodeFiles decodes every path with up to workers files in flight.
func DecodeFiles(ctx context.Context, paths []string, workers int, kind FileKind) []FileResult {
	return Batch{Workers: workers, Kind: kind}.Decode(ctx, paths)
}

// Decode decodes every path. A failing file doesn't stop the others; its
// error is reported in the matching FileResult. Results keep the order of
// paths. Cancelling ctx stops files that haven't started yet; a decode that
// is running completes.
func (b Batch) Decode(ctx context.Context, paths []string) []FileResult {
	results := make([]FileResult, len(paths))
	workers := max(b.Workers, 1)

	jobs := make(chan int)

	var wg sync.WaitGroup

	for n, w := 0, min(workers, len(paths)); n < w; n++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range jobs {
				results[i].Path = paths[i]
				if err := ctx.Err(); err != nil {
					results[i].Err = err
					continue
				}

				results[i].Waves, results[i].Err = b.decodeFile(paths[i])
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}

	close(jobs)
	wg.Wait()

	return results
}

func (b Batch) decodeFile(path string) ([]*Wave, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	kind := b.Kind
	if kind == FileKindAuto {
		kind = FileKindFromPath(path)
	}

	dec := NewDecoder(file)
	dec.AllowLegacyGenerations = b.AllowLegacyGenerations

	if b.Logger != nil {
		dec.Logger = b.Logger.With("path", path)
	}

	if kind == FileKindWave {
		w, err := dec.DecodeWave()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return []*Wave{w}, nil
	}

	waves, err := dec.DecodeArchive()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return waves, nil
}
