package flexpay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListParamsEncode(t *testing.T) {
	tests := []struct {
		name   string
		params ListParams
		want   string
	}{
		{
			name:   "first page defaults to ascending",
			params: ListParams{Count: 20},
			want:   "?count=20&sortOrder=asc",
		},
		{
			name:   "cursor and explicit order",
			params: ListParams{Count: 5, SinceToken: "PM123", Order: SortDescending},
			want:   "?count=5&sinceToken=PM123&sortOrder=desc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.params.encode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListParamsEncodeRejectsBadInput(t *testing.T) {
	_, err := ListParams{Count: 0}.encode()
	_, ok := IsValidationError(err)
	assert.True(t, ok)

	_, err = ListParams{Count: -1}.encode()
	_, ok = IsValidationError(err)
	assert.True(t, ok)

	_, err = ListParams{Count: 10, Order: SortOrder("sideways")}.encode()
	_, ok = IsValidationError(err)
	assert.True(t, ok)
}
