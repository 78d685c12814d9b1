package igor

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// recordHeaderSize is the on-disk size of a packed record header:
// type u16, version i16, payload length i32.
const recordHeaderSize = 8

// recordTypeMask clears the top bit of the raw record type, which Igor uses
// as a flag rather than as part of the type value.
const recordTypeMask = 0x7FFF

// RecordType identifies the payload of a packed experiment record.
// Readers must skip record types they don't understand.
type RecordType uint16

// Record types written by Igor.
const (
	RecordUnused RecordType = iota
	RecordVariables
	RecordHistory
	RecordWave
	RecordRecreation
	RecordProcedure
	RecordUnused2
	RecordGetHistory
	RecordPackedFile
	RecordDataFolderStart
	RecordDataFolderEnd
)

func (t RecordType) String() string {
	switch t {
	case RecordUnused:
		return "unused"
	case RecordVariables:
		return "variables"
	case RecordHistory:
		return "history"
	case RecordWave:
		return "wave"
	case RecordRecreation:
		return "recreation"
	case RecordProcedure:
		return "procedure"
	case RecordUnused2:
		return "unused2"
	case RecordGetHistory:
		return "get history"
	case RecordPackedFile:
		return "packed file"
	case RecordDataFolderStart:
		return "data folder start"
	case RecordDataFolderEnd:
		return "data folder end"
	default:
		return fmt.Sprintf("record type %d", uint16(t))
	}
}

// RecordHeader is the header preceding every record of a packed file.
type RecordHeader struct {
	Type    RecordType
	Version int16
	// Size is the declared payload length in bytes.
	Size int32
	// Offset is the absolute position of the record header.
	Offset int64
	// Reserved is set when the top bit of the raw type was set.
	Reserved bool
}

// PayloadOffset returns the absolute position of the first payload byte.
func (h RecordHeader) PayloadOffset() int64 {
	return h.Offset + recordHeaderSize
}

// End returns the absolute position right after the payload.
func (h RecordHeader) End() int64 {
	return h.PayloadOffset() + int64(h.Size)
}

// DecodeArchive decodes every wave record of a packed experiment file, in
// file order. Other records are skipped.
func DecodeArchive(r io.ReadSeeker) ([]*Wave, error) {
	return NewDecoder(r).DecodeArchive()
}

// NextRecord reads the record header at the cursor position. fileSize bounds
// both the header and the declared payload. The returned chunk reads the
// payload through the decoder cursor.
func (d *Decoder) NextRecord(fileSize int64) (RecordHeader, *riff.Chunk, error) {
	offset := d.c.Position()
	if offset+recordHeaderSize > fileSize {
		return RecordHeader{}, nil, fmt.Errorf("%w: record header at offset %d needs %d bytes, %d left",
			ErrTruncatedRecordStream, offset, recordHeaderSize, fileSize-offset)
	}

	id, size, err := d.parser.IDnSize()
	if err != nil {
		return RecordHeader{}, nil, fmt.Errorf("%w: error reading record header at offset %d - %w", ErrTruncatedRecordStream, offset, err)
	}

	if d.c.Position() != offset+recordHeaderSize {
		return RecordHeader{}, nil, fmt.Errorf("%w: short record header at offset %d", ErrTruncatedRecordStream, offset)
	}

	rawType := binary.LittleEndian.Uint16(id[0:2])
	hdr := RecordHeader{
		Type:     RecordType(rawType & recordTypeMask),
		Version:  int16(binary.LittleEndian.Uint16(id[2:4])),
		Size:     int32(size),
		Offset:   offset,
		Reserved: rawType&^recordTypeMask != 0,
	}

	if hdr.Size < 0 {
		return hdr, nil, fmt.Errorf("%w: %s record at offset %d declares %d bytes", ErrInvalidSize, hdr.Type, offset, hdr.Size)
	}

	if hdr.End() > fileSize {
		return hdr, nil, fmt.Errorf("%w: %s record at offset %d declares %d bytes, %d left",
			ErrTruncatedRecordStream, hdr.Type, offset, hdr.Size, fileSize-hdr.PayloadOffset())
	}

	chnk := &riff.Chunk{
		ID:   id,
		Size: int(hdr.Size),
		R:    io.LimitReader(d.c, int64(hdr.Size)),
	}

	return hdr, chnk, nil
}
