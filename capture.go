package flexpay

import (
	"context"
	"net/http"
)

// CaptureService settles previously authorized transactions.
type CaptureService struct {
	client *Client
}

// CaptureRequest settles an authorization, addressed by the merchant
// transaction id of the original authorize call. An absent amount captures
// the full authorized amount; a present amount requires a currency code.
type CaptureRequest struct {
	MerchantTransactionID   string           `json:"merchantTransactionId"`
	Amount                  Nullable[int64]  `json:"amount,omitzero"`
	CurrencyCode            Nullable[string] `json:"currencyCode,omitzero"`
	DisableCustomerRecovery Nullable[bool]   `json:"disableCustomerRecovery,omitzero"`
}

// Capture settles an authorization. The outcome transaction carries a
// reference to the authorization it settled.
func (s *CaptureService) Capture(ctx context.Context, req *CaptureRequest) (*Transaction, error) {
	if req.MerchantTransactionID == "" {
		return nil, &ValidationError{Message: "merchant transaction id is required"}
	}
	if amount, ok := req.Amount.Value(); ok {
		if amount < 0 {
			return nil, &ValidationError{Message: "amount must be a non-negative integer in minor units"}
		}
		if currency, ok := req.CurrencyCode.Value(); !ok || currency == "" {
			return nil, &ValidationError{Message: "currency code is required when an amount is present"}
		}
	}
	return do[CaptureRequest, Transaction](ctx, s.client, "capture", http.MethodPost, "/transactions/capture", req)
}
