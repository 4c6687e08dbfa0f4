package flexpay

import (
	"context"
	"net/http"
)

// VoidService cancels transactions that have not yet settled.
type VoidService struct {
	client *Client
}

// VoidRequest cancels an unsettled transaction, addressed by the merchant
// transaction id of the original call.
type VoidRequest struct {
	MerchantTransactionID   string         `json:"merchantTransactionId"`
	DisableCustomerRecovery Nullable[bool] `json:"disableCustomerRecovery"`
}

// Void cancels an unsettled transaction.
func (s *VoidService) Void(ctx context.Context, req *VoidRequest) (*Transaction, error) {
	if req.MerchantTransactionID == "" {
		return nil, &ValidationError{Message: "merchant transaction id is required"}
	}
	return do[VoidRequest, Transaction](ctx, s.client, "void", http.MethodPost, "/transactions/void", req)
}
