package flexpay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullableHost struct {
	Name  Nullable[string] `json:"name,omitzero"`
	Count Nullable[int]    `json:"count,omitzero"`
}

func TestNullableMarshal(t *testing.T) {
	tests := []struct {
		name string
		host nullableHost
		want string
	}{
		{
			name: "absent fields are omitted",
			host: nullableHost{},
			want: `{}`,
		},
		{
			name: "set value is emitted",
			host: nullableHost{Name: NullableOf("alice")},
			want: `{"name":"alice"}`,
		},
		{
			name: "explicit null is emitted as null",
			host: nullableHost{Name: NullOf[string]()},
			want: `{"name":null}`,
		},
		{
			name: "zero value is still a value",
			host: nullableHost{Count: NullableOf(0)},
			want: `{"count":0}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.host)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestNullableUnmarshal(t *testing.T) {
	var host nullableHost
	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"count":3}`), &host))

	assert.True(t, host.Name.IsSet())
	assert.True(t, host.Name.IsNull())
	_, ok := host.Name.Value()
	assert.False(t, ok)

	v, ok := host.Count.Value()
	require.True(t, ok)
	assert.Equal(t, 3, v)

	var absent nullableHost
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.Name.IsSet())
	assert.True(t, absent.Name.IsZero())
}

func TestNullableOr(t *testing.T) {
	assert.Equal(t, "fallback", Nullable[string]{}.Or("fallback"))
	assert.Equal(t, "fallback", NullOf[string]().Or("fallback"))
	assert.Equal(t, "value", NullableOf("value").Or("fallback"))
}
