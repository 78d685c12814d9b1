package igor

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

const (
	scalePCMInt8  = 128.0
	scalePCMInt16 = 32768.0
	scalePCMInt24 = 8388608.0
	scalePCMInt32 = 2147483648.0
)

var errUnhandledBitDepth = errors.New("unhandled bit depth")

// FloatBuffer exposes the samples as an interleaved audio buffer. The first
// dimension becomes the frame axis and every column of the higher dimensions
// becomes a channel, so a (rows, cols) wave yields cols channels of rows
// frames. Waves whose point count isn't a multiple of the row count are
// returned as mono.
func (w *Wave) FloatBuffer(sampleRate int) *audio.FloatBuffer {
	data, channels := w.frames()

	return &audio.FloatBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data: data,
	}
}

// IntBuffer returns FloatBuffer scaled to signed PCM of the given bit depth.
// Samples are centred on the midpoint of their range and scaled so the
// extremes reach full scale.
func (w *Wave) IntBuffer(sampleRate, bitDepth int) (*audio.IntBuffer, error) {
	scale, err := pcmScale(bitDepth)
	if err != nil {
		return nil, err
	}

	fb := w.FloatBuffer(sampleRate)
	lo, hi := sampleBounds(fb.Data)
	center := (lo + hi) / 2
	half := (hi - lo) / 2

	out := &audio.IntBuffer{
		Format:         fb.Format,
		SourceBitDepth: bitDepth,
		Data:           make([]int, len(fb.Data)),
	}

	if half == 0 {
		return out, nil
	}

	for i, v := range fb.Data {
		out.Data[i] = floatToPCMInt((v-center)/half, scale)
	}

	return out, nil
}

func (w *Wave) frames() ([]float64, int) {
	if w == nil {
		return nil, 1
	}

	rows := int(w.Dimensions()[0])
	n := len(w.Samples)

	if rows <= 0 || n == 0 || n%rows != 0 || n == rows {
		return append([]float64(nil), w.Samples...), 1
	}

	channels := n / rows
	out := make([]float64, n)

	for ch := 0; ch < channels; ch++ {
		for r := 0; r < rows; r++ {
			out[r*channels+ch] = w.Samples[ch*rows+r]
		}
	}

	return out, channels
}

// SampleBounds returns the smallest and largest sample, ignoring NaNs.
func (w *Wave) SampleBounds() (float64, float64) {
	if w == nil {
		return 0, 0
	}

	return sampleBounds(w.Samples)
}

func sampleBounds(data []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)

	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}

		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	if lo > hi {
		return 0, 0
	}

	return lo, hi
}

func pcmScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 8:
		return scalePCMInt8, nil
	case 16:
		return scalePCMInt16, nil
	case 24:
		return scalePCMInt24, nil
	case 32:
		return scalePCMInt32, nil
	default:
		return 0, fmt.Errorf("%w: %d", errUnhandledBitDepth, bitDepth)
	}
}

func clampFloat64(value, min, max float64) float64 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// floatToPCMInt maps [-1, 1] onto [-scale, scale-1].
func floatToPCMInt(value, scale float64) int {
	value = clampFloat64(value, -1, 1)

	sample := math.Round(value * scale)
	if sample > scale-1 {
		sample = scale - 1
	}

	return int(sample)
}
