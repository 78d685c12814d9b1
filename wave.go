package igor

import (
	"errors"
	"fmt"
	"io"
)

const trailingPadSize = 16

var errDimOutOfRange = errors.New("dimension out of range")

// Wave is one decoded binary wave. Treat it as read-only; use Clone to get a
// copy that can be modified.
type Wave struct {
	ArchiveHeader ArchiveHeader
	WaveHeader    WaveHeader

	Note              string
	ExtendedDataUnits string
	// DimensionUnits lists the extended units of the dimensions that carry
	// one, in file order.
	DimensionUnits []string
	// DimensionLabels lists the dimension labels that are present, in file
	// order.
	DimensionLabels []string

	// Samples is the flat sample data in file order. Multi dimensional waves
	// are stored column-major.
	Samples []float64
}

// DecodeWave decodes a standalone binary wave file.
func DecodeWave(r io.ReadSeeker) (*Wave, error) {
	return NewDecoder(r).DecodeWave()
}

// readWave runs the header, sample and metadata decoders starting at the
// cursor position.
func readWave(c *Cursor, legacy bool) (*Wave, error) {
	ah, err := readArchiveHeader(c, legacy)
	if err != nil {
		return nil, err
	}

	wh, err := ReadWaveHeader(c, ah.Generation())
	if err != nil {
		return nil, err
	}

	samples, err := ReadSamples(c, wh.Kind(), int(wh.NumPoints()))
	if err != nil {
		return nil, err
	}

	if ah.Generation().hasTrailingPad() {
		if err := c.Skip(trailingPadSize); err != nil {
			return nil, fmt.Errorf("failed to skip sample padding: %w", err)
		}
	}

	md, err := ReadMetadata(c, ah)
	if err != nil {
		return nil, err
	}

	return &Wave{
		ArchiveHeader:     ah,
		WaveHeader:        wh,
		Note:              md.Note,
		ExtendedDataUnits: md.ExtendedDataUnits,
		DimensionUnits:    md.DimensionUnits,
		DimensionLabels:   md.DimensionLabels,
		Samples:           samples,
	}, nil
}

// Name returns the wave name without its NUL padding.
func (w *Wave) Name() string {
	if w == nil || w.WaveHeader == nil {
		return ""
	}

	return nullTermStr(w.WaveHeader.RawName())
}

// DataUnits returns the extended data units when present, otherwise the
// short unit field of the wave header.
func (w *Wave) DataUnits() string {
	if w == nil {
		return ""
	}

	if w.ExtendedDataUnits != "" {
		return w.ExtendedDataUnits
	}

	if w.WaveHeader == nil {
		return ""
	}

	return nullTermStr(w.WaveHeader.RawDataUnits())
}

// Dimensions returns the size of each of the four dimensions.
func (w *Wave) Dimensions() [4]int32 {
	if w == nil || w.WaveHeader == nil {
		return [4]int32{}
	}

	return w.WaveHeader.Dimensions()
}

// ScaleSteps returns the per dimension scale step.
func (w *Wave) ScaleSteps() [4]float64 {
	if w == nil || w.WaveHeader == nil {
		return [4]float64{}
	}

	return w.WaveHeader.ScaleSteps()
}

// ScaleOrigins returns the per dimension scale origin.
func (w *Wave) ScaleOrigins() [4]float64 {
	if w == nil || w.WaveHeader == nil {
		return [4]float64{}
	}

	return w.WaveHeader.ScaleOrigins()
}

// AxisValues returns origin + i*step for every index of dimension dim.
func (w *Wave) AxisValues(dim int) ([]float64, error) {
	if dim < 0 || dim >= maxDims {
		return nil, fmt.Errorf("%w: %d", errDimOutOfRange, dim)
	}

	n := w.Dimensions()[dim]
	step := w.ScaleSteps()[dim]
	origin := w.ScaleOrigins()[dim]

	out := make([]float64, max(n, 0))
	for i := range out {
		out[i] = origin + float64(i)*step
	}

	return out, nil
}

// Clone returns a deep copy of the decoded values. Headers are shared.
func (w *Wave) Clone() *Wave {
	if w == nil {
		return nil
	}

	out := *w
	out.DimensionUnits = append([]string(nil), w.DimensionUnits...)
	out.DimensionLabels = append([]string(nil), w.DimensionLabels...)
	out.Samples = append([]float64(nil), w.Samples...)

	return &out
}
