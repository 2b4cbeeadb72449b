package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are the formats the backend is known to emit.
// The first is RFC 3339; the rest are naive ISO 8601 datetimes
// (with and without fractional seconds) produced by the server's ORM.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// Timestamp is a time.Time that unmarshals from any of the datetime shapes
// the backend produces. Naive datetimes are interpreted as UTC.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			if strings.IndexByte(layout, 'Z') < 0 {
				parsed = parsed.UTC()
			}
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}
