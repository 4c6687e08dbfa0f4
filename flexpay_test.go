package flexpay

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(ClientOptions{})
	require.Error(t, err)
	_, ok := IsValidationError(err)
	assert.True(t, ok)

	_, err = NewClient(ClientOptions{AuthorizationToken: "   "})
	require.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(ClientOptions{AuthorizationToken: "token"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c, err = NewClient(ClientOptions{AuthorizationToken: "token", BaseURL: "http://localhost:9999/v1/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/v1", c.BaseURL())
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := NewClient(ClientOptions{AuthorizationToken: "test-token", BaseURL: server.URL})
	require.NoError(t, err)
	return c
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"responseCode":"10000","message":"Approved."}`))
	}))

	_, err := c.Void.Void(context.Background(), &VoidRequest{MerchantTransactionID: "mtid-1"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing is listening anymore

	c, err := NewClient(ClientOptions{AuthorizationToken: "token", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.Transactions.Get(context.Background(), "TX1")
	require.Error(t, err)

	transportErr, ok := IsTransportError(err)
	require.True(t, ok)
	assert.Zero(t, transportErr.HTTPStatus)
}

func TestUnparseableBodyIsTransportError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>502 Bad Gateway</html>"))
	}))

	_, err := c.Transactions.Get(context.Background(), "TX1")
	require.Error(t, err)

	transportErr, ok := IsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, transportErr.HTTPStatus)
}

// A parseable body wins over the HTTP status: a decline on a 402 is still a
// typed transaction, not an error.
func TestBodyCodeWinsOverHTTPStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"responseCode":"20051","message":"Insufficient funds.","transactionId":"TX9","transactionStatus":"declined"}`))
	}))

	tx, err := c.Charge.CreditCard(context.Background(), &ChargeCreditCardRequest{
		MerchantTransactionID: "mtid-2",
		CurrencyCode:          "USD",
		Amount:                1000,
		PaymentMethod:         CreditCard{CreditCardNumber: SandboxCreditCards.MasterCard.CreditCardNumber},
	})
	require.NoError(t, err)

	assert.False(t, tx.Approved())
	assert.Equal(t, ResponseCodeInsufficientFunds, tx.ResponseCode)
	assert.Equal(t, http.StatusPaymentRequired, tx.HTTPStatus())
	assert.Equal(t, TransactionStatusDeclined, tx.TransactionStatus)

	respErr, ok := IsResponseError(tx.Err())
	require.True(t, ok)
	assert.Equal(t, ResponseCodeInsufficientFunds, respErr.ResponseCode)
}

func TestEnvelopeErrNilWhenApproved(t *testing.T) {
	e := Envelope{ResponseCode: ResponseCodeApproved}
	assert.NoError(t, e.Err())
	assert.True(t, e.Approved())
}

func TestRedactForLog(t *testing.T) {
	body := []byte(`{"paymentMethod":{"creditCardNumber":"4111111111111111","cvv":"987","expiryMonth":"12"}}`)

	redacted := redactForLog(body)
	assert.NotContains(t, redacted, "4111111111111111")
	assert.NotContains(t, redacted, `"cvv":"987"`)
	assert.Contains(t, redacted, `"creditCardNumber":"411111******1111"`)
	assert.Contains(t, redacted, `"cvv":"***"`)
	assert.Contains(t, redacted, `"expiryMonth":"12"`)
}

func TestDebugLoggingMasksCardData(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"responseCode":"10000","message":"Approved."}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(ClientOptions{
		AuthorizationToken: "token",
		BaseURL:            server.URL,
		DebugOutput:        true,
		Logger:             logger,
	})
	require.NoError(t, err)

	_, err = c.Charge.CreditCard(context.Background(), &ChargeCreditCardRequest{
		MerchantTransactionID: "mtid-debug",
		CurrencyCode:          "USD",
		Amount:                100,
		PaymentMethod: CreditCard{
			CreditCardNumber: SandboxCreditCards.Visa.CreditCardNumber,
			CVV:              "987",
		},
	})
	require.NoError(t, err)

	logged := buf.String()
	assert.NotEmpty(t, logged)
	assert.NotContains(t, logged, SandboxCreditCards.Visa.CreditCardNumber)
	assert.NotContains(t, logged, `\"cvv\":\"987\"`)
}

func TestValidateMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency string
		mtid     string
		wantErr  bool
	}{
		{"valid", 1000, "USD", "mtid", false},
		{"zero amount is valid", 0, "USD", "mtid", false},
		{"negative amount", -1, "USD", "mtid", true},
		{"missing currency", 1000, "", "mtid", true},
		{"missing merchant transaction id", 1000, "USD", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMoney(tt.amount, tt.currency, tt.mtid)
			if tt.wantErr {
				_, ok := IsValidationError(err)
				assert.True(t, ok)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
