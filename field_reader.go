package igor

import "fmt"

// fieldReader reads a fixed struct layout field by field and keeps the first
// error, annotated with the name of the field that failed.
type fieldReader struct {
	c   *Cursor
	err error
}

func (f *fieldReader) fail(name string, err error) {
	f.err = fmt.Errorf("failed to read %s: %w", name, err)
}

func (f *fieldReader) u8(name string) uint8 {
	if f.err != nil {
		return 0
	}

	v, err := f.c.ReadU8()
	if err != nil {
		f.fail(name, err)
	}

	return v
}

func (f *fieldReader) i16(name string) int16 {
	if f.err != nil {
		return 0
	}

	v, err := f.c.ReadI16()
	if err != nil {
		f.fail(name, err)
	}

	return v
}

func (f *fieldReader) u32(name string) uint32 {
	if f.err != nil {
		return 0
	}

	v, err := f.c.ReadU32()
	if err != nil {
		f.fail(name, err)
	}

	return v
}

func (f *fieldReader) i32(name string) int32 {
	if f.err != nil {
		return 0
	}

	v, err := f.c.ReadI32()
	if err != nil {
		f.fail(name, err)
	}

	return v
}

func (f *fieldReader) f64(name string) float64 {
	if f.err != nil {
		return 0
	}

	v, err := f.c.ReadF64()
	if err != nil {
		f.fail(name, err)
	}

	return v
}

func (f *fieldReader) str(name string, n int) string {
	if f.err != nil {
		return ""
	}

	v, err := f.c.ReadFixedString(n)
	if err != nil {
		f.fail(name, err)
	}

	return v
}

func (f *fieldReader) i32x4(name string) [4]int32 {
	var out [4]int32
	for i := range out {
		out[i] = f.i32(fmt.Sprintf("%s[%d]", name, i))
	}

	return out
}

func (f *fieldReader) f64x4(name string) [4]float64 {
	var out [4]float64
	for i := range out {
		out[i] = f.f64(fmt.Sprintf("%s[%d]", name, i))
	}

	return out
}
