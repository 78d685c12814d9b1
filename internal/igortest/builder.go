// Package igortest builds binary wave and packed experiment fixtures in
// memory for tests.
package igortest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Sizes of the fixed layouts.
const (
	BinHeader1Size  = 8
	BinHeader2Size  = 16
	BinHeader3Size  = 20
	BinHeader5Size  = 64
	WaveHeader2Size = 110
	WaveHeader5Size = 320
	PadSize         = 16
	RecordHdrSize   = 8
)

// Numeric type codes.
const (
	TypeText    int16 = 0x00
	TypeFloat32 int16 = 0x02
	TypeFloat64 int16 = 0x04
	TypeInt8    int16 = 0x08
	TypeInt16   int16 = 0x10
	TypeInt32   int16 = 0x20
	TypeUint8   int16 = 0x48
	TypeUint16  int16 = 0x50
	TypeUint32  int16 = 0x60
)

// Record types.
const (
	RecordVariables  uint16 = 1
	RecordHistory    uint16 = 2
	RecordWave       uint16 = 3
	RecordProcedure  uint16 = 5
	RecordPackedFile uint16 = 8
)

// Wave describes a fixture wave. Zero values are filled in: Dims defaults
// to (len(Samples), 0, 0, 0) and NumPoints to len(Samples).
type Wave struct {
	Generation int16
	Name       string
	Type       int16
	NumPoints  int32
	Dims       [4]int32
	Steps      [4]float64
	Origins    [4]float64
	DataUnits  string
	DimUnits   [4]string
	Checksum   int16
	Samples    []float64

	Note              string
	Formula           string
	ExtendedDataUnits string
	ExtendedDimUnits  [4]string
	DimLabels         [4]string
}

// SampleBytes returns the encoded sample data of w.
func (w Wave) SampleBytes() []byte {
	var b bytes.Buffer

	for _, v := range w.Samples {
		switch w.Type {
		case TypeFloat32:
			put(&b, math.Float32bits(float32(v)))
		case TypeFloat64:
			put(&b, math.Float64bits(v))
		case TypeInt8:
			put(&b, int8(v))
		case TypeInt16:
			put(&b, int16(v))
		case TypeInt32:
			put(&b, int32(v))
		case TypeUint8:
			put(&b, uint8(v))
		case TypeUint16:
			put(&b, uint16(v))
		case TypeUint32:
			put(&b, uint32(v))
		}
	}

	return b.Bytes()
}

func (w Wave) numPoints() int32 {
	if w.NumPoints != 0 {
		return w.NumPoints
	}

	return int32(len(w.Samples))
}

func (w Wave) dims() [4]int32 {
	if w.Dims != ([4]int32{}) {
		return w.Dims
	}

	return [4]int32{w.numPoints(), 0, 0, 0}
}

// Bytes encodes w as a standalone binary wave.
func (w Wave) Bytes() []byte {
	switch w.Generation {
	case 5:
		return w.bytesV5()
	default:
		return w.bytesV2()
	}
}

func (w Wave) bytesV2() []byte {
	data := w.SampleBytes()
	wfmSize := int32(WaveHeader2Size + len(data) + PadSize)

	var b bytes.Buffer

	switch w.Generation {
	case 1:
		put(&b, w.Generation)
		put(&b, wfmSize)
		put(&b, w.Checksum)
	case 3:
		put(&b, w.Generation)
		put(&b, wfmSize)
		put(&b, int32(len(w.Note)))
		put(&b, int32(len(w.Formula)))
		put(&b, int32(0))
		put(&b, w.Checksum)
	default:
		put(&b, w.Generation)
		put(&b, wfmSize)
		put(&b, int32(len(w.Note)))
		put(&b, int32(0))
		put(&b, w.Checksum)
	}

	put(&b, w.Type)
	put(&b, uint32(0)) // next
	putString(&b, w.Name, 20)
	put(&b, int16(0)) // whVersion
	put(&b, int16(0)) // srcFldr
	put(&b, uint32(0))
	putString(&b, w.DataUnits, 4)
	putString(&b, w.DimUnits[0], 4)
	put(&b, w.numPoints())
	put(&b, int16(0)) // aModified
	put(&b, w.Steps[0])
	put(&b, w.Origins[0])
	put(&b, int16(0)) // wModified
	put(&b, int16(0)) // swModified
	put(&b, int16(0)) // fsValid
	put(&b, float64(0))
	put(&b, float64(0))
	put(&b, uint8(0)) // useBits
	put(&b, uint8(0)) // kindBits
	put(&b, uint32(0))
	put(&b, int32(0))
	put(&b, uint32(0)) // creationDate
	putString(&b, "", 2)
	put(&b, uint32(0)) // modDate
	put(&b, uint32(0))

	b.Write(data)
	b.Write(make([]byte, PadSize))

	if w.Generation != 1 {
		b.WriteString(w.Note)
	}

	if w.Generation == 3 {
		b.WriteString(w.Formula)
	}

	return b.Bytes()
}

func (w Wave) bytesV5() []byte {
	data := w.SampleBytes()

	var b bytes.Buffer

	put(&b, int16(5))
	put(&b, w.Checksum)
	put(&b, int32(WaveHeader5Size+len(data)))
	put(&b, int32(len(w.Formula)))
	put(&b, int32(len(w.Note)))
	put(&b, int32(len(w.ExtendedDataUnits)))

	for _, s := range w.ExtendedDimUnits {
		put(&b, int32(len(s)))
	}

	for _, s := range w.DimLabels {
		put(&b, int32(len(s)))
	}

	put(&b, int32(0)) // sIndicesSize
	put(&b, int32(0))
	put(&b, int32(0))

	put(&b, uint32(0)) // next
	put(&b, uint32(0)) // creationDate
	put(&b, uint32(0)) // modDate
	put(&b, w.numPoints())
	put(&b, w.Type)
	put(&b, int16(0)) // dLock
	putString(&b, "", 6)
	put(&b, int16(1)) // whVersion
	putString(&b, w.Name, 32)
	put(&b, int32(0))
	put(&b, uint32(0)) // dFolder
	put(&b, w.dims())
	put(&b, w.Steps)
	put(&b, w.Origins)
	putString(&b, w.DataUnits, 4)

	for _, u := range w.DimUnits {
		putString(&b, u, 4)
	}

	put(&b, int16(0)) // fsValid
	put(&b, int16(0))
	put(&b, float64(0))
	put(&b, float64(0))
	put(&b, uint32(0))   // dataEUnits
	put(&b, [4]uint32{}) // dimEUnits
	put(&b, [4]uint32{}) // dimLabels
	put(&b, uint32(0))   // waveNoteH
	put(&b, [16]int32{}) // whUnused
	put(&b, [3]int16{})  // aModified, wModified, swModified
	put(&b, [2]uint8{})  // useBits, kindBits
	put(&b, uint32(0))   // formula
	put(&b, int32(0))    // depID
	put(&b, [2]int16{})  // whpad4, srcFldr
	put(&b, uint32(0))   // fileName
	put(&b, int32(0))    // sIndices

	b.Write(data)
	b.WriteString(w.Formula)
	b.WriteString(w.Note)
	b.WriteString(w.ExtendedDataUnits)

	for _, s := range w.ExtendedDimUnits {
		b.WriteString(s)
	}

	for _, s := range w.DimLabels {
		b.WriteString(s)
	}

	return b.Bytes()
}

// Record encodes a packed record header followed by payload.
func Record(recordType uint16, version int16, payload []byte) []byte {
	return RecordWithSize(recordType, version, int32(len(payload)), payload)
}

// RecordWithSize encodes a packed record whose declared size may differ from
// the payload length.
func RecordWithSize(recordType uint16, version int16, size int32, payload []byte) []byte {
	var b bytes.Buffer

	put(&b, recordType)
	put(&b, version)
	put(&b, size)
	b.Write(payload)

	return b.Bytes()
}

// Concat joins fixture parts into one file image.
func Concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func put(b *bytes.Buffer, v any) {
	// writes to a bytes.Buffer only fail on out of memory
	_ = binary.Write(b, binary.LittleEndian, v)
}

func putString(b *bytes.Buffer, s string, n int) {
	field := make([]byte, n)
	copy(field, s)
	b.Write(field)
}
