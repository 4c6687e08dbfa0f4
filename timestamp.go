package flexpay

import (
	"fmt"
	"strconv"
	"time"
)

// timestampFormats are the wire layouts the gateway has been observed to
// emit. RFC 3339 is what we send; the zone-less variants show up on
// responses and are interpreted as UTC.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp is an ISO-8601 string on the wire and a time.Time in memory.
// Round trips preserve second-level precision.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.UTC().Format(time.RFC3339))), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("timestamp must be an ISO-8601 string, got %s", data)
	}
	for _, layout := range timestampFormats {
		parsed, parseErr := time.Parse(layout, raw)
		if parseErr == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as an ISO-8601 timestamp", raw)
}

// Equal compares two timestamps at second precision, which is the precision
// the wire format guarantees.
func (t Timestamp) Equal(other Timestamp) bool {
	return t.UTC().Truncate(time.Second).Equal(other.UTC().Truncate(time.Second))
}
