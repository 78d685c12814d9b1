package igor

import "fmt"

// Metadata holds the optional sections that trail the sample data.
// DimensionUnits and DimensionLabels only contain the sections that were
// present, in file order, so index i is not necessarily dimension i.
type Metadata struct {
	Note              string
	ExtendedDataUnits string
	DimensionUnits    []string
	DimensionLabels   []string
}

// ReadMetadata reads the optional sections declared by h, starting at the
// cursor position. Sections a generation doesn't define consume no bytes.
func ReadMetadata(c *Cursor, h ArchiveHeader) (Metadata, error) {
	var md Metadata

	if v5, ok := h.(*ArchiveHeaderV5); ok && v5.FormulaSize != 0 {
		// the dependency formula precedes the note in generation 5 files
		if err := skipSection(c, "dependency formula", v5.FormulaSize); err != nil {
			return md, err
		}
	}

	note, err := readSection(c, "note", h.NoteLength())
	if err != nil {
		return md, err
	}

	md.Note = normalizeNewlines(note)

	v5, ok := h.(*ArchiveHeaderV5)
	if !ok {
		return md, nil
	}

	units, err := readSection(c, "extended data units", v5.DataEUnitsSize)
	if err != nil {
		return md, err
	}

	md.ExtendedDataUnits = string(units)

	md.DimensionUnits, err = readSectionList(c, "extended dimension units", v5.DimEUnitsSize)
	if err != nil {
		return md, err
	}

	md.DimensionLabels, err = readSectionList(c, "dimension labels", v5.DimLabelsSize)
	if err != nil {
		return md, err
	}

	return md, nil
}

func readSection(c *Cursor, name string, size int32) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}

	b, err := c.ReadBytes(int(size))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return b, nil
}

func readSectionList(c *Cursor, name string, sizes [4]int32) ([]string, error) {
	var out []string

	for i, size := range sizes {
		if size == 0 {
			continue
		}

		b, err := readSection(c, fmt.Sprintf("%s[%d]", name, i), size)
		if err != nil {
			return nil, err
		}

		out = append(out, string(b))
	}

	return out, nil
}

func skipSection(c *Cursor, name string, size int32) error {
	if size < 0 {
		return fmt.Errorf("%w: %s size %d", ErrInvalidSize, name, size)
	}

	if err := c.Skip(int64(size)); err != nil {
		return fmt.Errorf("failed to skip %s: %w", name, err)
	}

	return nil
}
