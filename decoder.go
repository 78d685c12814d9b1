package igor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-audio/riff"
)

// Decoder decodes binary waves and packed experiment files.
// A Decoder reads through one cursor and is not safe for concurrent use;
// decode separate files with separate decoders.
type Decoder struct {
	c       *Cursor
	parser  *riff.Parser
	records *RecordRegistry

	// Logger receives debug events for every record. Nil disables logging.
	Logger *slog.Logger
	// AllowLegacyGenerations enables the generation 1 and 3 header layouts.
	// They have not been checked against files written by Igor.
	AllowLegacyGenerations bool
	// KeepRawRecords stores the payload of unhandled records in
	// UnknownRecords.
	KeepRawRecords bool

	// Waves holds the decoded waves of the last DecodeArchive call.
	Waves []*Wave
	// Records lists every record header seen, in file order.
	Records []RecordHeader
	// UnknownRecords holds unhandled payloads when KeepRawRecords is set.
	UnknownRecords []RawRecord
	// Texts holds records captured by a text record handler.
	Texts []TextRecord

	recordOrder int
}

// NewDecoder creates a decoder reading from r's current offset.
func NewDecoder(r io.ReadSeeker) *Decoder {
	c := NewCursor(r)

	return &Decoder{
		c:       c,
		parser:  riff.New(c),
		records: newDefaultRecordRegistry(),
	}
}

// RegisterRecordHandler adds a handler for packed records. Handlers are
// consulted in registration order, after the built-in wave handler.
func (d *Decoder) RegisterRecordHandler(h RecordHandler) {
	if d.records == nil {
		d.records = newDefaultRecordRegistry()
	}

	d.records.Register(h)
}

// Position returns the cursor offset.
func (d *Decoder) Position() int64 {
	return d.c.Position()
}

// RawRecords returns a copy of the preserved unhandled records.
func (d *Decoder) RawRecords() []RawRecord {
	if d == nil {
		return nil
	}

	return cloneRawRecords(d.UnknownRecords)
}

// DecodeWave decodes a standalone binary wave starting at the cursor.
func (d *Decoder) DecodeWave() (*Wave, error) {
	w, err := readWave(d.c, d.AllowLegacyGenerations)
	if err != nil {
		return nil, err
	}

	d.debug("decoded wave",
		"name", w.Name(),
		"generation", w.ArchiveHeader.Generation(),
		"kind", w.WaveHeader.Kind(),
		"points", w.WaveHeader.NumPoints())

	return w, nil
}

// DecodeArchive walks the records of a packed experiment file until the end
// of the source and returns the decoded waves in file order. Any failure
// aborts the whole decode.
func (d *Decoder) DecodeArchive() ([]*Wave, error) {
	fileSize, err := d.c.Size()
	if err != nil {
		return nil, err
	}

	if d.records == nil {
		d.records = newDefaultRecordRegistry()
	}

	d.Waves = nil
	d.Records = nil
	d.UnknownRecords = nil
	d.Texts = nil
	d.recordOrder = 0

	for d.c.Position() < fileSize {
		hdr, chnk, err := d.NextRecord(fileSize)
		if err != nil {
			return nil, err
		}

		d.recordOrder = len(d.Records)
		d.Records = append(d.Records, hdr)

		d.debug("packed record",
			"order", d.recordOrder,
			"type", hdr.Type,
			"version", hdr.Version,
			"size", hdr.Size,
			"offset", hdr.Offset)

		handled, err := d.records.Decode(d, hdr, chnk)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s record %d at offset %d: %w", hdr.Type, d.recordOrder, hdr.Offset, err)
		}

		if !handled && d.KeepRawRecords {
			if err := d.captureUnknownRecord(hdr, chnk); err != nil {
				return nil, err
			}
		}

		// whatever the handler consumed, the next record starts right after
		// the declared payload
		if err := d.c.Seek(hdr.End()); err != nil {
			return nil, err
		}
	}

	d.debug("packed file decoded", "records", len(d.Records), "waves", len(d.Waves))

	return d.Waves, nil
}

func (d *Decoder) captureUnknownRecord(hdr RecordHeader, chnk *riff.Chunk) error {
	data, err := io.ReadAll(chnk)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read unknown %s record: %w", hdr.Type, err)
	}

	if len(data) != int(hdr.Size) {
		return fmt.Errorf("%w: %s record has %d of %d bytes", ErrUnexpectedEndOfData, hdr.Type, len(data), hdr.Size)
	}

	d.UnknownRecords = append(d.UnknownRecords, RawRecord{
		Type:    hdr.Type,
		Version: hdr.Version,
		Data:    data,
		Order:   d.recordOrder,
	})

	return nil
}

func (d *Decoder) debug(msg string, args ...any) {
	if d.Logger == nil {
		return
	}

	d.Logger.Debug(msg, args...)
}
