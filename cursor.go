package igor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var errNegativeOffset = errors.New("negative offset")

// Cursor is a positioned little-endian reader over a seekable source.
// A Cursor is not safe for concurrent use.
type Cursor struct {
	r   io.ReadSeeker
	pos int64
	buf [8]byte
}

// NewCursor creates a cursor starting at the reader's current offset.
func NewCursor(r io.ReadSeeker) *Cursor {
	c := &Cursor{r: r}

	if pos, err := r.Seek(0, io.SeekCurrent); err == nil {
		c.pos = pos
	}

	return c
}

// Position returns the absolute offset of the next read.
func (c *Cursor) Position() int64 {
	return c.pos
}

// Seek moves the cursor to an absolute offset. The offset may point past the
// end of the source; the next read reports the shortfall.
func (c *Cursor) Seek(offset int64) error {
	if offset < 0 {
		return fmt.Errorf("%w: %d", errNegativeOffset, offset)
	}

	if _, err := c.r.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to %d: %w", offset, err)
	}

	c.pos = offset

	return nil
}

// Skip moves the cursor n bytes forward.
func (c *Cursor) Skip(n int64) error {
	return c.Seek(c.pos + n)
}

// Size returns the total length of the source. The cursor position is left
// unchanged.
func (c *Cursor) Size() (int64, error) {
	end, err := c.r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("failed to seek to the end: %w", err)
	}

	if _, err := c.r.Seek(c.pos, io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed to seek back to %d: %w", c.pos, err)
	}

	return end, nil
}

// Read implements io.Reader so stream parsers can share the cursor offset.
func (c *Cursor) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.pos += int64(n)

	return n, err
}

func (c *Cursor) readFull(p []byte) error {
	start := c.pos

	n, err := io.ReadFull(c.r, p)
	c.pos += int64(n)

	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: need %d bytes at offset %d, got %d", ErrUnexpectedEndOfData, len(p), start, n)
		}

		return fmt.Errorf("failed to read %d bytes at offset %d: %w", len(p), start, err)
	}

	return nil
}

// ReadU8 reads an unsigned byte.
func (c *Cursor) ReadU8() (uint8, error) {
	if err := c.readFull(c.buf[:1]); err != nil {
		return 0, err
	}

	return c.buf[0], nil
}

// ReadI8 reads a signed byte.
func (c *Cursor) ReadI8() (int8, error) {
	v, err := c.ReadU8()

	return int8(v), err
}

// ReadU16 reads a little-endian uint16.
func (c *Cursor) ReadU16() (uint16, error) {
	if err := c.readFull(c.buf[:2]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(c.buf[:2]), nil
}

// ReadI16 reads a little-endian int16.
func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()

	return int16(v), err
}

// ReadU32 reads a little-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	if err := c.readFull(c.buf[:4]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(c.buf[:4]), nil
}

// ReadI32 reads a little-endian int32.
func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()

	return int32(v), err
}

// ReadU64 reads a little-endian uint64.
func (c *Cursor) ReadU64() (uint64, error) {
	if err := c.readFull(c.buf[:8]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(c.buf[:8]), nil
}

// ReadI64 reads a little-endian int64.
func (c *Cursor) ReadI64() (int64, error) {
	v, err := c.ReadU64()

	return int64(v), err
}

// ReadF32 reads a little-endian IEEE 754 float32.
func (c *Cursor) ReadF32() (float32, error) {
	v, err := c.ReadU32()

	return math.Float32frombits(v), err
}

// ReadF64 reads a little-endian IEEE 754 float64.
func (c *Cursor) ReadF64() (float64, error) {
	v, err := c.ReadU64()

	return math.Float64frombits(v), err
}

// ReadBytes reads exactly n bytes. The buffer grows with the data actually
// present, so a bogus length fails without a large up-front allocation.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d bytes at offset %d", ErrInvalidSize, n, c.pos)
	}

	start := c.pos

	var buf bytes.Buffer

	read, err := io.Copy(&buf, io.LimitReader(c.r, int64(n)))
	c.pos += read

	if err != nil {
		return nil, fmt.Errorf("failed to read %d bytes at offset %d: %w", n, start, err)
	}

	if read < int64(n) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, got %d", ErrUnexpectedEndOfData, n, start, read)
	}

	return buf.Bytes(), nil
}

// ReadFixedString reads an n byte field as text. NUL padding is kept.
func (c *Cursor) ReadFixedString(n int) (string, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}

	return string(b), nil
}
