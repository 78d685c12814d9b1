package igor

// RawRecord stores the payload of a packed record that no handler claimed.
type RawRecord struct {
	Type    RecordType
	Version int16
	// Data holds exactly the declared payload length.
	Data []byte
	// Order is the index of the record in the file.
	Order int
}

// Clone returns a copy that doesn't share the payload buffer.
func (r RawRecord) Clone() RawRecord {
	out := r
	out.Data = append([]byte(nil), r.Data...)

	return out
}

// TextRecord is a plain text record (history, recreation or procedure
// text) captured by a handler from NewTextRecordHandler.
type TextRecord struct {
	Type RecordType
	// Text has its carriage returns turned into line feeds.
	Text  string
	Order int
}

func cloneRawRecords(records []RawRecord) []RawRecord {
	if len(records) == 0 {
		return nil
	}

	out := make([]RawRecord, len(records))
	for i := range records {
		out[i] = records[i].Clone()
	}

	return out
}
