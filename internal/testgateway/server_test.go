package testgateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flexpay "github.com/flexpay/flexpay-go"
)

func newGateway(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(New("auth", "gw").Handler())
	t.Cleanup(server.Close)
	return server
}

func post(t *testing.T, server *httptest.Server, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer auth")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) flexpay.Envelope {
	t.Helper()
	var envelope flexpay.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestAuthRequired(t *testing.T) {
	server := newGateway(t)

	resp, err := http.Get(server.URL + "/transactions?count=10&sortOrder=asc")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, flexpay.ResponseCodeAPIUnauthorized, envelope.ResponseCode)
}

func TestHealthSkipsAuth(t *testing.T) {
	server := newGateway(t)

	resp, err := http.Get(server.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// A charge with a date the gateway cannot parse is rejected with the date
// format code, not a generic decode failure.
func TestMalformedDateFirstAttempt(t *testing.T) {
	server := newGateway(t)

	resp := post(t, server, "/gateways/charge", `{
		"merchantTransactionId": "mtid-bad-date",
		"currencyCode": "USD",
		"amount": 100,
		"paymentMethod": {"creditCardNumber": "4111111111111111"},
		"dateFirstAttempt": "15/01/2026"
	}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, flexpay.ResponseCodeAPIInvalidDateFormat, envelope.ResponseCode)
}

func TestChargeEmptyPaymentToken(t *testing.T) {
	server := newGateway(t)

	resp := post(t, server, "/gateways/charge", `{
		"merchantTransactionId": "mtid-empty-token",
		"currencyCode": "USD",
		"amount": 100,
		"paymentMethod": {"gatewayPaymentMethodId": ""}
	}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, flexpay.ResponseCodeAPIInvalidValueForPaymentToken, envelope.ResponseCode)
}

func TestPaginate(t *testing.T) {
	order := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name       string
		sinceToken string
		count      int
		sortOrder  string
		want       []string
		wantOK     bool
	}{
		{"first page asc", "", 2, "asc", []string{"a", "b"}, true},
		{"cursor continues after token", "b", 2, "asc", []string{"c", "d"}, true},
		{"last partial page", "d", 3, "asc", []string{"e"}, true},
		{"past the end", "e", 2, "asc", []string{}, true},
		{"first page desc", "", 2, "desc", []string{"e", "d"}, true},
		{"cursor desc", "d", 2, "desc", []string{"c", "b"}, true},
		{"unknown token", "zz", 2, "asc", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := paginate(order, tt.sinceToken, tt.count, tt.sortOrder)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
