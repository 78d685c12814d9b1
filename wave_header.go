package igor

import "fmt"

const (
	maxWaveName2 = 20
	maxWaveName5 = 32
	maxUnits     = 4
	maxDims      = 4
)

// WaveHeader describes the shape of one wave. It is implemented by
// WaveHeaderV2 and WaveHeaderV5 only. Both expose the same four dimension
// view: a generation 2 wave reports (npnts, 0, 0, 0).
type WaveHeader interface {
	Kind() SampleKind
	NumPoints() int32
	Dimensions() [4]int32
	ScaleSteps() [4]float64
	ScaleOrigins() [4]float64
	// RawName is the fixed width, NUL padded wave name.
	RawName() string
	// RawDataUnits is the fixed width, NUL padded data unit field.
	RawDataUnits() string
	// RawDimUnits holds the fixed width unit field per dimension.
	RawDimUnits() [4]string
	waveHeader()
}

// WaveHeaderV2 is the WaveHeader2 layout used by generations 1, 2 and 3.
type WaveHeaderV2 struct {
	Type         SampleKind
	Next         uint32
	BName        string
	WhVersion    int16
	SrcFldr      int16
	FileName     uint32
	DataUnits    string
	XUnits       string
	NPnts        int32
	AModified    int16
	HsA          float64 // x step
	HsB          float64 // x origin
	WModified    int16
	SwModified   int16
	FsValid      int16
	TopFullScale float64
	BotFullScale float64
	UseBits      uint8
	KindBits     uint8
	Formula      uint32
	DepID        int32
	CreationDate uint32
	WUnused      string
	ModDate      uint32
	WaveNoteH    uint32
}

// WaveHeaderV5 is the WaveHeader5 layout.
type WaveHeaderV5 struct {
	Next         uint32
	CreationDate uint32
	ModDate      uint32
	NPnts        int32
	Type         SampleKind
	DLock        int16
	WhPad1       string
	WhVersion    int16
	BName        string
	WhPad2       int32
	DFolder      uint32
	NDim         [4]int32
	SfA          [4]float64 // per dimension step
	SfB          [4]float64 // per dimension origin
	DataUnits    string
	DimUnits     [4]string
	FsValid      int16
	WhPad3       int16
	TopFullScale float64
	BotFullScale float64
	DataEUnits   uint32
	DimEUnits    [4]uint32
	DimLabels    [4]uint32
	WaveNoteH    uint32
	WhUnused     [16]int32
	AModified    int16
	WModified    int16
	SwModified   int16
	UseBits      uint8
	KindBits     uint8
	Formula      uint32
	DepID        int32
	WhPad4       int16
	SrcFldr      int16
	FileName     uint32
	SIndices     int32
}

func (h *WaveHeaderV2) Kind() SampleKind         { return h.Type }
func (h *WaveHeaderV2) NumPoints() int32         { return h.NPnts }
func (h *WaveHeaderV2) Dimensions() [4]int32     { return [4]int32{h.NPnts, 0, 0, 0} }
func (h *WaveHeaderV2) ScaleSteps() [4]float64   { return [4]float64{h.HsA, 0, 0, 0} }
func (h *WaveHeaderV2) ScaleOrigins() [4]float64 { return [4]float64{h.HsB, 0, 0, 0} }
func (h *WaveHeaderV2) RawName() string          { return h.BName }
func (h *WaveHeaderV2) RawDataUnits() string     { return h.DataUnits }
func (h *WaveHeaderV2) RawDimUnits() [4]string   { return [4]string{h.XUnits, "", "", ""} }
func (h *WaveHeaderV2) waveHeader()              {}

func (h *WaveHeaderV5) Kind() SampleKind         { return h.Type }
func (h *WaveHeaderV5) NumPoints() int32         { return h.NPnts }
func (h *WaveHeaderV5) Dimensions() [4]int32     { return h.NDim }
func (h *WaveHeaderV5) ScaleSteps() [4]float64   { return h.SfA }
func (h *WaveHeaderV5) ScaleOrigins() [4]float64 { return h.SfB }
func (h *WaveHeaderV5) RawName() string          { return h.BName }
func (h *WaveHeaderV5) RawDataUnits() string     { return h.DataUnits }
func (h *WaveHeaderV5) RawDimUnits() [4]string   { return h.DimUnits }
func (h *WaveHeaderV5) waveHeader()              {}

// ReadWaveHeader decodes the wave header that follows an archive header of
// generation g.
func ReadWaveHeader(c *Cursor, g Generation) (WaveHeader, error) {
	switch g {
	case Generation1, Generation2, Generation3:
		return readWaveHeaderV2(c)
	case Generation5:
		return readWaveHeaderV5(c)
	default:
		return nil, fmt.Errorf("%w: wave header generation %d", ErrUnsupportedFormatVersion, g)
	}
}

func readWaveHeaderV2(c *Cursor) (*WaveHeaderV2, error) {
	f := &fieldReader{c: c}
	h := &WaveHeaderV2{
		Type:         SampleKind(f.i16("type")),
		Next:         f.u32("next"),
		BName:        f.str("bname", maxWaveName2),
		WhVersion:    f.i16("whVersion"),
		SrcFldr:      f.i16("srcFldr"),
		FileName:     f.u32("fileName"),
		DataUnits:    f.str("dataUnits", maxUnits),
		XUnits:       f.str("xUnits", maxUnits),
		NPnts:        f.i32("npnts"),
		AModified:    f.i16("aModified"),
		HsA:          f.f64("hsA"),
		HsB:          f.f64("hsB"),
		WModified:    f.i16("wModified"),
		SwModified:   f.i16("swModified"),
		FsValid:      f.i16("fsValid"),
		TopFullScale: f.f64("topFullScale"),
		BotFullScale: f.f64("botFullScale"),
		UseBits:      f.u8("useBits"),
		KindBits:     f.u8("kindBits"),
		Formula:      f.u32("formula"),
		DepID:        f.i32("depID"),
		CreationDate: f.u32("creationDate"),
		WUnused:      f.str("wUnused", 2),
		ModDate:      f.u32("modDate"),
		WaveNoteH:    f.u32("waveNoteH"),
	}

	if f.err != nil {
		return nil, fmt.Errorf("failed to decode v2 wave header: %w", f.err)
	}

	return h, nil
}

func readWaveHeaderV5(c *Cursor) (*WaveHeaderV5, error) {
	f := &fieldReader{c: c}
	h := &WaveHeaderV5{
		Next:         f.u32("next"),
		CreationDate: f.u32("creationDate"),
		ModDate:      f.u32("modDate"),
		NPnts:        f.i32("npnts"),
		Type:         SampleKind(f.i16("type")),
		DLock:        f.i16("dLock"),
		WhPad1:       f.str("whpad1", 6),
		WhVersion:    f.i16("whVersion"),
		BName:        f.str("bname", maxWaveName5),
		WhPad2:       f.i32("whpad2"),
		DFolder:      f.u32("dFolder"),
		NDim:         f.i32x4("nDim"),
		SfA:          f.f64x4("sfA"),
		SfB:          f.f64x4("sfB"),
		DataUnits:    f.str("dataUnits", maxUnits),
	}

	for i := range h.DimUnits {
		h.DimUnits[i] = f.str(fmt.Sprintf("dimUnits[%d]", i), maxUnits)
	}

	h.FsValid = f.i16("fsValid")
	h.WhPad3 = f.i16("whpad3")
	h.TopFullScale = f.f64("topFullScale")
	h.BotFullScale = f.f64("botFullScale")
	h.DataEUnits = f.u32("dataEUnits")

	for i := range h.DimEUnits {
		h.DimEUnits[i] = f.u32(fmt.Sprintf("dimEUnits[%d]", i))
	}

	for i := range h.DimLabels {
		h.DimLabels[i] = f.u32(fmt.Sprintf("dimLabels[%d]", i))
	}

	h.WaveNoteH = f.u32("waveNoteH")

	for i := range h.WhUnused {
		h.WhUnused[i] = f.i32(fmt.Sprintf("whUnused[%d]", i))
	}

	h.AModified = f.i16("aModified")
	h.WModified = f.i16("wModified")
	h.SwModified = f.i16("swModified")
	h.UseBits = f.u8("useBits")
	h.KindBits = f.u8("kindBits")
	h.Formula = f.u32("formula")
	h.DepID = f.i32("depID")
	h.WhPad4 = f.i16("whpad4")
	h.SrcFldr = f.i16("srcFldr")
	h.FileName = f.u32("fileName")
	h.SIndices = f.i32("sIndices")

	if f.err != nil {
		return nil, fmt.Errorf("failed to decode v5 wave header: %w", f.err)
	}

	return h, nil
}
