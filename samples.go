package igor

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SampleKind is the numeric type code stored in a wave header.
type SampleKind int16

// Numeric type codes. KindComplex and KindUnsigned are flag bits.
const (
	KindText     SampleKind = 0x00
	KindComplex  SampleKind = 0x01
	KindFloat32  SampleKind = 0x02
	KindFloat64  SampleKind = 0x04
	KindInt8     SampleKind = 0x08
	KindInt16    SampleKind = 0x10
	KindInt32    SampleKind = 0x20
	KindUnsigned SampleKind = 0x40
	KindUint8    SampleKind = KindUnsigned | KindInt8
	KindUint16   SampleKind = KindUnsigned | KindInt16
	KindUint32   SampleKind = KindUnsigned | KindInt32
)

// IsComplex reports whether the complex flag is set.
func (k SampleKind) IsComplex() bool {
	return k&KindComplex != 0
}

// Width returns the size in bytes of one element.
func (k SampleKind) Width() (int, error) {
	_, width, err := sampleDecodeFunc(k)

	return width, err
}

func (k SampleKind) String() string {
	if k.IsComplex() {
		return fmt.Sprintf("complex %s", k&^KindComplex)
	}

	switch k {
	case KindText:
		return "text"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	default:
		return fmt.Sprintf("type 0x%02x", uint16(k))
	}
}

// sampleDecodeFunc returns the element decoder and element width for a
// numeric type code. All values are widened to float64.
func sampleDecodeFunc(kind SampleKind) (func([]byte) float64, int, error) {
	switch kind {
	case KindFloat32:
		return func(b []byte) float64 {
			return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
		}, 4, nil
	case KindFloat64:
		return func(b []byte) float64 {
			return math.Float64frombits(binary.LittleEndian.Uint64(b))
		}, 8, nil
	case KindInt8:
		return func(b []byte) float64 {
			return float64(int8(b[0]))
		}, 1, nil
	case KindInt16:
		return func(b []byte) float64 {
			return float64(int16(binary.LittleEndian.Uint16(b)))
		}, 2, nil
	case KindInt32:
		return func(b []byte) float64 {
			return float64(int32(binary.LittleEndian.Uint32(b)))
		}, 4, nil
	case KindUint8:
		return func(b []byte) float64 {
			return float64(b[0])
		}, 1, nil
	case KindUint16:
		return func(b []byte) float64 {
			return float64(binary.LittleEndian.Uint16(b))
		}, 2, nil
	case KindUint32:
		return func(b []byte) float64 {
			return float64(binary.LittleEndian.Uint32(b))
		}, 4, nil
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedSampleKind, kind)
	}
}

// ReadSamples reads count elements of the given kind and returns them as
// float64 values. Exactly count times the element width bytes are consumed.
func ReadSamples(c *Cursor, kind SampleKind, count int) ([]float64, error) {
	decodeF, width, err := sampleDecodeFunc(kind)
	if err != nil {
		return nil, err
	}

	if count < 0 {
		return nil, fmt.Errorf("%w: %d points", ErrInvalidSize, count)
	}

	raw, err := c.ReadBytes(count * width)
	if err != nil {
		return nil, fmt.Errorf("failed to read %d %s samples: %w", count, kind, err)
	}

	out := make([]float64, count)
	for i := range out {
		out[i] = decodeF(raw[i*width : (i+1)*width])
	}

	return out, nil
}
