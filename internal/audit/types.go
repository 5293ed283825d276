package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one Lighthouse audit as delivered by the measurement API. Score
// is a pointer because null means "not applicable", which is not the same as
// zero. The savings fields in Details keep pointer semantics too: their
// presence marks a savings-worthy check even when the value is zero.
type Record struct {
	Score        *float64 `json:"score"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	DisplayValue string   `json:"displayValue,omitempty"`
	NumericValue float64  `json:"numericValue,omitempty"`
	Details      *Details `json:"details,omitempty"`
}

// Details is the audit sub-record carrying the opportunity marker and the
// estimated savings.
type Details struct {
	Type                string   `json:"type,omitempty"`
	OverallSavingsMs    *float64 `json:"overallSavingsMs,omitempty"`
	OverallSavingsBytes *float64 `json:"overallSavingsBytes,omitempty"`
}

// Entry pairs an audit ID with its record.
type Entry struct {
	ID     string
	Record Record
}

// List holds the audits object in wire order. Ranking ties are resolved by
// input order, and a Go map would shuffle it, so the decoder walks the
// object tokens itself.
type List []Entry

func (l *List) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("audits: expected object, got %v", tok)
	}

	out := make(List, 0, 64)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("audits: expected key, got %v", keyTok)
		}
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("audits: decode %q: %w", key, err)
		}
		out = append(out, Entry{ID: key, Record: rec})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = out
	return nil
}

// Get returns the record for an audit ID.
func (l List) Get(id string) (Record, bool) {
	for _, e := range l {
		if e.ID == id {
			return e.Record, true
		}
	}
	return Record{}, false
}
