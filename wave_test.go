package igor

import (
	"bytes"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/cwbudde/igor/internal/igortest"
)

// surveyFixture mirrors a single photoemission survey spectrum: 455 float32
// points on a binding energy axis running down from 207 eV.
func surveyFixture() igortest.Wave {
	samples := make([]float64, 455)
	for i := range samples {
		samples[i] = float64(1000 - 2*i)
	}

	copy(samples, []float64{1099.11, 1077.02, 1088.60})
	copy(samples[452:], []float64{10.87, 12.28, 11.99})

	return igortest.Wave{
		Generation:        5,
		Name:              "survey_307Sample1-1002",
		Type:              igortest.TypeFloat32,
		Steps:             [4]float64{-0.5},
		Origins:           [4]float64{207},
		Samples:           samples,
		ExtendedDataUnits: "Counts [a.u.]",
		ExtendedDimUnits:  [4]string{"Binding Energy [eV]"},
	}
}

// matrixFixture is a 4x4 generation 5 wave with a note and extended units on
// both dimensions.
func matrixFixture() igortest.Wave {
	samples := make([]float64, 16)
	for i := range samples {
		samples[i] = float64(i)
	}

	return igortest.Wave{
		Generation:        5,
		Name:              "matrix",
		Type:              igortest.TypeFloat64,
		Dims:              [4]int32{4, 4, 0, 0},
		Steps:             [4]float64{1, 1},
		Samples:           samples,
		Note:              "test matrix 4x4",
		ExtendedDataUnits: "data_units",
		ExtendedDimUnits:  [4]string{"row_units", "col_units"},
	}
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestDecodeWaveSurvey(t *testing.T) {
	w, err := DecodeWave(bytes.NewReader(surveyFixture().Bytes()))
	if err != nil {
		t.Fatalf("DecodeWave: %v", err)
	}

	if w.Name() != "survey_307Sample1-1002" {
		t.Fatalf("name=%q", w.Name())
	}

	if w.Dimensions() != [4]int32{455, 0, 0, 0} {
		t.Fatalf("dims=%v", w.Dimensions())
	}

	if w.ScaleOrigins()[0] != 207 || w.ScaleSteps()[0] != -0.5 {
		t.Fatalf("origin=%v step=%v", w.ScaleOrigins()[0], w.ScaleSteps()[0])
	}

	if len(w.Samples) != 455 {
		t.Fatalf("samples=%d, want 455", len(w.Samples))
	}

	for i, want := range []float64{1099.11, 1077.02, 1088.60} {
		if !approxEqual(w.Samples[i], want, 1e-3) {
			t.Fatalf("sample %d=%v, want %v", i, w.Samples[i], want)
		}
	}

	for i, want := range []float64{10.87, 12.28, 11.99} {
		if got := w.Samples[452+i]; !approxEqual(got, want, 1e-3) {
			t.Fatalf("sample %d=%v, want %v", 452+i, got, want)
		}
	}

	if w.DataUnits() != "Counts [a.u.]" {
		t.Fatalf("data units=%q", w.DataUnits())
	}

	if !slices.Equal(w.DimensionUnits, []string{"Binding Energy [eV]"}) {
		t.Fatalf("dimension units=%q", w.DimensionUnits)
	}

	axis, err := w.AxisValues(0)
	if err != nil {
		t.Fatal(err)
	}

	if len(axis) != 455 || axis[0] != 207 || axis[454] != 207-0.5*454 {
		t.Fatalf("axis len=%d first=%v last=%v", len(axis), axis[0], axis[len(axis)-1])
	}
}

func TestDecodeWaveMatrix(t *testing.T) {
	w, err := DecodeWave(bytes.NewReader(matrixFixture().Bytes()))
	if err != nil {
		t.Fatalf("DecodeWave: %v", err)
	}

	if w.Note != "test matrix 4x4" {
		t.Fatalf("note=%q", w.Note)
	}

	if w.ExtendedDataUnits != "data_units" {
		t.Fatalf("extended data units=%q", w.ExtendedDataUnits)
	}

	if !slices.Equal(w.DimensionUnits, []string{"row_units", "col_units"}) {
		t.Fatalf("dimension units=%q", w.DimensionUnits)
	}

	if len(w.DimensionLabels) != 0 {
		t.Fatalf("dimension labels=%q, want none", w.DimensionLabels)
	}

	if w.Samples[5] != 5 || w.Samples[15] != 15 {
		t.Fatalf("samples=%v", w.Samples)
	}
}

func TestDecodeWaveTwoDimensional(t *testing.T) {
	fixture := igortest.Wave{
		Generation: 5,
		Name:       "map",
		Type:       igortest.TypeInt16,
		Dims:       [4]int32{401, 24, 0, 0},
		Steps:      [4]float64{0.1, 1},
		Origins:    [4]float64{-20, 0},
		Samples:    make([]float64, 401*24),
	}

	for i := range fixture.Samples {
		fixture.Samples[i] = float64(i % 1000)
	}

	w, err := DecodeWave(bytes.NewReader(fixture.Bytes()))
	if err != nil {
		t.Fatalf("DecodeWave: %v", err)
	}

	dims := w.Dimensions()
	if dims != [4]int32{401, 24, 0, 0} {
		t.Fatalf("dims=%v", dims)
	}

	if int(dims[0])*int(dims[1]) != len(w.Samples) || len(w.Samples) != int(w.WaveHeader.NumPoints()) {
		t.Fatalf("rows*cols=%d, samples=%d, npnts=%d", dims[0]*dims[1], len(w.Samples), w.WaveHeader.NumPoints())
	}

	if w.Samples[9623] != float64(9623%1000) {
		t.Fatalf("last sample=%v", w.Samples[9623])
	}
}

func TestDecodeWaveGeneration2(t *testing.T) {
	fixture := igortest.Wave{
		Generation: 2,
		Name:       "v2wave",
		Type:       igortest.TypeInt16,
		Steps:      [4]float64{2},
		Origins:    [4]float64{10},
		DataUnits:  "mV",
		Samples:    []float64{-3, 0, 3, 6, 9},
		Note:       "first\rsecond",
	}

	w, err := DecodeWave(bytes.NewReader(fixture.Bytes()))
	if err != nil {
		t.Fatalf("DecodeWave: %v", err)
	}

	if w.ArchiveHeader.Generation() != Generation2 {
		t.Fatalf("generation=%d", w.ArchiveHeader.Generation())
	}

	if w.Dimensions() != [4]int32{5, 0, 0, 0} {
		t.Fatalf("dims=%v", w.Dimensions())
	}

	if w.ScaleSteps() != [4]float64{2, 0, 0, 0} || w.ScaleOrigins() != [4]float64{10, 0, 0, 0} {
		t.Fatalf("steps=%v origins=%v", w.ScaleSteps(), w.ScaleOrigins())
	}

	if w.Note != "first\nsecond" {
		t.Fatalf("note=%q", w.Note)
	}

	if w.DataUnits() != "mV" {
		t.Fatalf("data units=%q", w.DataUnits())
	}

	if !slices.Equal(w.Samples, []float64{-3, 0, 3, 6, 9}) {
		t.Fatalf("samples=%v", w.Samples)
	}
}

// Generation 1 and 3 decoding follows the format documentation; the layouts
// have not been confirmed against files written by Igor.
func TestDecodeWaveLegacyGenerations(t *testing.T) {
	for _, generation := range []int16{1, 3} {
		fixture := igortest.Wave{
			Generation: generation,
			Name:       "old",
			Type:       igortest.TypeFloat32,
			Samples:    []float64{0.5, 1.5},
			Note:       "legacy note",
			Formula:    "x",
		}

		_, err := DecodeWave(bytes.NewReader(fixture.Bytes()))
		if !errors.Is(err, ErrUnsupportedFormatVersion) {
			t.Fatalf("generation %d without opt in: expected ErrUnsupportedFormatVersion, got %v", generation, err)
		}

		dec := NewDecoder(bytes.NewReader(fixture.Bytes()))
		dec.AllowLegacyGenerations = true

		w, err := dec.DecodeWave()
		if err != nil {
			t.Fatalf("generation %d: %v", generation, err)
		}

		if w.Name() != "old" || !slices.Equal(w.Samples, []float64{0.5, 1.5}) {
			t.Fatalf("generation %d: name=%q samples=%v", generation, w.Name(), w.Samples)
		}

		wantNote := "legacy note"
		if generation == 1 {
			wantNote = ""
		}

		if w.Note != wantNote {
			t.Fatalf("generation %d: note=%q, want %q", generation, w.Note, wantNote)
		}
	}
}

func TestDecodeWaveTextFails(t *testing.T) {
	fixture := igortest.Wave{
		Generation: 5,
		Name:       "labels",
		Type:       igortest.TypeText,
		NumPoints:  3,
	}

	_, err := DecodeWave(bytes.NewReader(fixture.Bytes()))
	if !errors.Is(err, ErrUnsupportedSampleKind) {
		t.Fatalf("expected ErrUnsupportedSampleKind, got %v", err)
	}
}

func TestDecodeWaveTruncatedSamples(t *testing.T) {
	data := surveyFixture().Bytes()
	data = data[:igortest.BinHeader5Size+igortest.WaveHeader5Size+100]

	_, err := DecodeWave(bytes.NewReader(data))
	if !errors.Is(err, ErrUnexpectedEndOfData) {
		t.Fatalf("expected ErrUnexpectedEndOfData, got %v", err)
	}
}

func TestWaveAxisValuesOutOfRange(t *testing.T) {
	w, err := DecodeWave(bytes.NewReader(matrixFixture().Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	for _, dim := range []int{-1, 4} {
		if _, err := w.AxisValues(dim); err == nil {
			t.Fatalf("AxisValues(%d) expected error", dim)
		}
	}

	axis, err := w.AxisValues(2)
	if err != nil || len(axis) != 0 {
		t.Fatalf("AxisValues(2)=%v, %v", axis, err)
	}
}

func TestWaveClone(t *testing.T) {
	w, err := DecodeWave(bytes.NewReader(matrixFixture().Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	clone := w.Clone()
	clone.Samples[0] = 99
	clone.DimensionUnits[0] = "changed"

	if w.Samples[0] != 0 || w.DimensionUnits[0] != "row_units" {
		t.Fatal("clone shares slices with the original")
	}

	var nilWave *Wave
	if nilWave.Clone() != nil || nilWave.Name() != "" || nilWave.DataUnits() != "" {
		t.Fatal("nil wave accessors should return zero values")
	}
}
