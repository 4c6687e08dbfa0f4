package flexpay

import (
	"context"
	"net/http"
)

// RefundService returns settled funds.
type RefundService struct {
	client *Client
}

// RefundRequest refunds a settled transaction, addressed by the merchant
// transaction id of the original call. An absent amount refunds in full.
type RefundRequest struct {
	MerchantTransactionID   string           `json:"merchantTransactionId"`
	Amount                  Nullable[int64]  `json:"amount,omitzero"`
	CurrencyCode            Nullable[string] `json:"currencyCode,omitzero"`
	DisableCustomerRecovery Nullable[bool]   `json:"disableCustomerRecovery,omitzero"`
}

// Refund returns funds from a settled transaction.
func (s *RefundService) Refund(ctx context.Context, req *RefundRequest) (*Transaction, error) {
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
	return do[RefundRequest, Transaction](ctx, s.client, "refund", http.MethodPost, "/transactions/refund", req)
}
