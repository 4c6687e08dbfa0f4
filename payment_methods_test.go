package flexpay

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTransport fails every request it sees; tests use it to prove a
// call never left the client.
type countingTransport struct {
	calls int
}

func (t *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	t.calls++
	return nil, http.ErrHandlerTimeout
}

func newOfflineClient(t *testing.T) (*Client, *countingTransport) {
	t.Helper()
	transport := &countingTransport{}
	c, err := NewClient(ClientOptions{
		AuthorizationToken: "token",
		HTTPClient:         &http.Client{Transport: transport},
	})
	require.NoError(t, err)
	return c, transport
}

func TestUpdateRejectsEmptyRequestLocally(t *testing.T) {
	c, transport := newOfflineClient(t)

	_, err := c.PaymentMethods.Update(context.Background(), "PM1", &UpdatePaymentMethodRequest{})
	require.Error(t, err)

	validationErr, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, validationErr.Message, "no editable field")
	assert.Zero(t, transport.calls)

	_, err = c.PaymentMethods.Update(context.Background(), "PM1", nil)
	require.Error(t, err)
	assert.Zero(t, transport.calls)
}

func TestUpdateExplicitNullCountsAsEditable(t *testing.T) {
	req := &UpdatePaymentMethodRequest{Email: NullOf[string]()}
	assert.True(t, req.hasEditableField())

	req = &UpdatePaymentMethodRequest{}
	assert.False(t, req.hasEditableField())

	req = &UpdatePaymentMethodRequest{ExpiryYear: NullableOf("2031")}
	assert.True(t, req.hasEditableField())
}

func TestPaymentMethodOpsRequireID(t *testing.T) {
	c, transport := newOfflineClient(t)
	ctx := context.Background()

	_, err := c.PaymentMethods.Get(ctx, "")
	_, ok := IsValidationError(err)
	assert.True(t, ok)

	_, err = c.PaymentMethods.Redact(ctx, "")
	_, ok = IsValidationError(err)
	assert.True(t, ok)

	_, err = c.PaymentMethods.RecacheCVV(ctx, "", NullableOf("123"))
	_, ok = IsValidationError(err)
	assert.True(t, ok)

	assert.Zero(t, transport.calls)
}

func TestListRejectsBadCountLocally(t *testing.T) {
	c, transport := newOfflineClient(t)

	_, err := c.PaymentMethods.List(context.Background(), ListParams{Count: 0})
	_, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Zero(t, transport.calls)
}
