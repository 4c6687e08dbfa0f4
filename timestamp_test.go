package flexpay

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			name: "rfc3339 with offset",
			raw:  `"2026-03-01T15:04:05+02:00"`,
			want: time.Date(2026, 3, 1, 13, 4, 5, 0, time.UTC),
		},
		{
			name: "zone-less is utc",
			raw:  `"2026-03-01T15:04:05"`,
			want: time.Date(2026, 3, 1, 15, 4, 5, 0, time.UTC),
		},
		{
			name: "date only",
			raw:  `"2026-03-01"`,
			want: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ts))
			assert.True(t, ts.Time.Equal(tt.want), "got %s, want %s", ts.Time, tt.want)
		})
	}
}

func TestTimestampUnmarshalRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"01/03/2026"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12345`), &ts))
}

func TestTimestampRoundTrip(t *testing.T) {
	original := NewTimestamp(time.Date(2026, 3, 1, 15, 4, 5, 0, time.FixedZone("EET", 2*60*60)))

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-01T13:04:05Z"`, string(data))

	var decoded Timestamp
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equal(original))
}

func TestTimestampEqualSecondPrecision(t *testing.T) {
	base := time.Date(2026, 3, 1, 15, 4, 5, 0, time.UTC)
	a := NewTimestamp(base)
	b := NewTimestamp(base.Add(500 * time.Millisecond))
	c := NewTimestamp(base.Add(time.Second))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
