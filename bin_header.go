package igor

import "fmt"

// Generation is the format revision tag stored in the first two bytes of a
// binary wave.
type Generation int16

// Known header generations.
const (
	Generation1 Generation = 1
	Generation2 Generation = 2
	Generation3 Generation = 3
	Generation5 Generation = 5
)

// hasTrailingPad reports whether 16 pad bytes follow the sample data.
func (g Generation) hasTrailingPad() bool {
	switch g {
	case Generation1, Generation2, Generation3:
		return true
	default:
		return false
	}
}

// ArchiveHeader is the generation specific header at the start of every
// binary wave. It is implemented by ArchiveHeaderV1, ArchiveHeaderV2,
// ArchiveHeaderV3 and ArchiveHeaderV5 only.
type ArchiveHeader interface {
	Generation() Generation
	// PayloadSize is the declared size of the wave header plus sample data.
	PayloadSize() int32
	// StoredChecksum is decoded as stored and never verified.
	StoredChecksum() int16
	// NoteLength is the declared size of the note section, zero if absent.
	NoteLength() int32
	archiveHeader()
}

// ArchiveHeaderV1 is the BinHeader1 layout.
type ArchiveHeaderV1 struct {
	Version  int16
	WfmSize  int32
	Checksum int16
}

// ArchiveHeaderV2 is the BinHeader2 layout.
type ArchiveHeaderV2 struct {
	Version  int16
	WfmSize  int32
	NoteSize int32
	PictSize int32 // reserved
	Checksum int16
}

// ArchiveHeaderV3 is the BinHeader3 layout.
type ArchiveHeaderV3 struct {
	Version     int16
	WfmSize     int32
	NoteSize    int32
	FormulaSize int32
	PictSize    int32 // reserved
	Checksum    int16
}

// ArchiveHeaderV5 is the BinHeader5 layout. Every *Size field is either zero,
// meaning the section is absent, or the exact byte length of that section.
type ArchiveHeaderV5 struct {
	Version        int16
	Checksum       int16
	WfmSize        int32
	FormulaSize    int32
	NoteSize       int32
	DataEUnitsSize int32
	DimEUnitsSize  [4]int32
	DimLabelsSize  [4]int32
	SIndicesSize   int32
	OptionsSize1   int32 // reserved
	OptionsSize2   int32 // reserved
}

func (h *ArchiveHeaderV1) Generation() Generation { return Generation(h.Version) }
func (h *ArchiveHeaderV1) PayloadSize() int32     { return h.WfmSize }
func (h *ArchiveHeaderV1) StoredChecksum() int16  { return h.Checksum }
func (h *ArchiveHeaderV1) NoteLength() int32      { return 0 }
func (h *ArchiveHeaderV1) archiveHeader()         {}

func (h *ArchiveHeaderV2) Generation() Generation { return Generation(h.Version) }
func (h *ArchiveHeaderV2) PayloadSize() int32     { return h.WfmSize }
func (h *ArchiveHeaderV2) StoredChecksum() int16  { return h.Checksum }
func (h *ArchiveHeaderV2) NoteLength() int32      { return h.NoteSize }
func (h *ArchiveHeaderV2) archiveHeader()         {}

func (h *ArchiveHeaderV3) Generation() Generation { return Generation(h.Version) }
func (h *ArchiveHeaderV3) PayloadSize() int32     { return h.WfmSize }
func (h *ArchiveHeaderV3) StoredChecksum() int16  { return h.Checksum }
func (h *ArchiveHeaderV3) NoteLength() int32      { return h.NoteSize }
func (h *ArchiveHeaderV3) archiveHeader()         {}

func (h *ArchiveHeaderV5) Generation() Generation { return Generation(h.Version) }
func (h *ArchiveHeaderV5) PayloadSize() int32     { return h.WfmSize }
func (h *ArchiveHeaderV5) StoredChecksum() int16  { return h.Checksum }
func (h *ArchiveHeaderV5) NoteLength() int32      { return h.NoteSize }
func (h *ArchiveHeaderV5) archiveHeader()         {}

// ReadArchiveHeader decodes the archive header at the cursor position.
// Generations 2 and 5 are decoded, everything else fails with
// ErrUnsupportedFormatVersion.
func ReadArchiveHeader(c *Cursor) (ArchiveHeader, error) {
	return readArchiveHeader(c, false)
}

func readArchiveHeader(c *Cursor, legacy bool) (ArchiveHeader, error) {
	start := c.Position()

	tag, err := c.ReadI16()
	if err != nil {
		return nil, fmt.Errorf("failed to read header generation: %w", err)
	}

	if err := c.Seek(start); err != nil {
		return nil, err
	}

	switch g := Generation(tag); g {
	case Generation2:
		return readArchiveHeaderV2(c)
	case Generation5:
		return readArchiveHeaderV5(c)
	case Generation1, Generation3:
		if !legacy {
			return nil, fmt.Errorf("%w: generation %d is not enabled", ErrUnsupportedFormatVersion, g)
		}

		if g == Generation1 {
			return readArchiveHeaderV1(c)
		}

		return readArchiveHeaderV3(c)
	default:
		return nil, fmt.Errorf("%w: generation %d", ErrUnsupportedFormatVersion, g)
	}
}

func readArchiveHeaderV1(c *Cursor) (*ArchiveHeaderV1, error) {
	f := &fieldReader{c: c}
	h := &ArchiveHeaderV1{
		Version:  f.i16("version"),
		WfmSize:  f.i32("wfmSize"),
		Checksum: f.i16("checksum"),
	}

	if f.err != nil {
		return nil, fmt.Errorf("failed to decode v1 archive header: %w", f.err)
	}

	return h, nil
}

func readArchiveHeaderV2(c *Cursor) (*ArchiveHeaderV2, error) {
	f := &fieldReader{c: c}
	h := &ArchiveHeaderV2{
		Version:  f.i16("version"),
		WfmSize:  f.i32("wfmSize"),
		NoteSize: f.i32("noteSize"),
		PictSize: f.i32("pictSize"),
		Checksum: f.i16("checksum"),
	}

	if f.err != nil {
		return nil, fmt.Errorf("failed to decode v2 archive header: %w", f.err)
	}

	return h, nil
}

func readArchiveHeaderV3(c *Cursor) (*ArchiveHeaderV3, error) {
	f := &fieldReader{c: c}
	h := &ArchiveHeaderV3{
		Version:     f.i16("version"),
		WfmSize:     f.i32("wfmSize"),
		NoteSize:    f.i32("noteSize"),
		FormulaSize: f.i32("formulaSize"),
		PictSize:    f.i32("pictSize"),
		Checksum:    f.i16("checksum"),
	}

	if f.err != nil {
		return nil, fmt.Errorf("failed to decode v3 archive header: %w", f.err)
	}

	return h, nil
}

func readArchiveHeaderV5(c *Cursor) (*ArchiveHeaderV5, error) {
	f := &fieldReader{c: c}
	h := &ArchiveHeaderV5{
		Version:        f.i16("version"),
		Checksum:       f.i16("checksum"),
		WfmSize:        f.i32("wfmSize"),
		FormulaSize:    f.i32("formulaSize"),
		NoteSize:       f.i32("noteSize"),
		DataEUnitsSize: f.i32("dataEUnitsSize"),
		DimEUnitsSize:  f.i32x4("dimEUnitsSize"),
		DimLabelsSize:  f.i32x4("dimLabelsSize"),
		SIndicesSize:   f.i32("sIndicesSize"),
		OptionsSize1:   f.i32("optionsSize1"),
		OptionsSize2:   f.i32("optionsSize2"),
	}

	if f.err != nil {
		return nil, fmt.Errorf("failed to decode v5 archive header: %w", f.err)
	}

	return h, nil
}
