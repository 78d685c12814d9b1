package igor

import (
	"fmt"
	"io"
	"slices"

	"github.com/go-audio/riff"
)

// RecordHandler decodes the payload of packed records it claims.
// The chunk reader is limited to the declared payload length and starts at
// the first payload byte. The decoder re-positions the cursor after Decode
// returns, so a handler may stop reading at any point.
type RecordHandler interface {
	CanHandle(hdr RecordHeader) bool
	Decode(d *Decoder, hdr RecordHeader, ch *riff.Chunk) error
}

// RecordRegistry resolves records to handlers.
type RecordRegistry struct {
	handlers []RecordHandler
}

func newDefaultRecordRegistry() *RecordRegistry {
	return &RecordRegistry{
		handlers: []RecordHandler{
			&waveRecordHandler{},
		},
	}
}

// Register appends a handler to the registry.
func (r *RecordRegistry) Register(handler RecordHandler) {
	if r == nil || handler == nil {
		return
	}

	r.handlers = append(r.handlers, handler)
}

// Decode dispatches a record to the first matching handler.
func (r *RecordRegistry) Decode(dec *Decoder, hdr RecordHeader, ch *riff.Chunk) (bool, error) {
	if r == nil || ch == nil {
		return false, nil
	}

	for _, handler := range r.handlers {
		if handler.CanHandle(hdr) {
			err := handler.Decode(dec, hdr, ch)
			if err != nil {
				return true, fmt.Errorf("record handler decode failed: %w", err)
			}

			return true, nil
		}
	}

	return false, nil
}

type waveRecordHandler struct{}

func (h *waveRecordHandler) CanHandle(hdr RecordHeader) bool {
	return hdr.Type == RecordWave
}

// Decode runs the binary wave decoder directly on the shared cursor, which
// sits at the first payload byte.
func (h *waveRecordHandler) Decode(d *Decoder, _ RecordHeader, _ *riff.Chunk) error {
	w, err := readWave(d.c, d.AllowLegacyGenerations)
	if err != nil {
		return err
	}

	d.Waves = append(d.Waves, w)

	return nil
}

type textRecordHandler struct {
	types []RecordType
}

// NewTextRecordHandler returns a handler that stores plain text records in
// Decoder.Texts. Without arguments it claims history, recreation and
// procedure records.
func NewTextRecordHandler(types ...RecordType) RecordHandler {
	if len(types) == 0 {
		types = []RecordType{RecordHistory, RecordRecreation, RecordProcedure}
	}

	return &textRecordHandler{types: types}
}

func (h *textRecordHandler) CanHandle(hdr RecordHeader) bool {
	return slices.Contains(h.types, hdr.Type)
}

func (h *textRecordHandler) Decode(d *Decoder, hdr RecordHeader, ch *riff.Chunk) error {
	data, err := io.ReadAll(ch)
	if err != nil {
		return fmt.Errorf("failed to read %s text: %w", hdr.Type, err)
	}

	if len(data) != int(hdr.Size) {
		return fmt.Errorf("%w: %s text has %d of %d bytes", ErrUnexpectedEndOfData, hdr.Type, len(data), hdr.Size)
	}

	d.Texts = append(d.Texts, TextRecord{
		Type:  hdr.Type,
		Text:  normalizeNewlines(data),
		Order: d.recordOrder,
	})

	return nil
}
