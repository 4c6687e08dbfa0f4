package flexpay

import (
	"context"
	"net/http"
	"net/url"
)

// TransactionsService retrieves transactions recorded by earlier dispatch
// calls. A freshly created transaction may take a few seconds to become
// visible here; callers needing create-then-read must tolerate that window.
type TransactionsService struct {
	client *Client
}

type transactionListResponse struct {
	Envelope
	Transactions []Transaction `json:"transactions"`
}

// Get retrieves a transaction by its gateway-assigned id.
func (s *TransactionsService) Get(ctx context.Context, transactionID string) (*Transaction, error) {
	if transactionID == "" {
		return nil, &ValidationError{Message: "transaction id is required"}
	}
	resp, err := do[struct{}, Transaction](ctx, s.client, "get transaction", http.MethodGet, "/transactions/"+url.PathEscape(transactionID), nil)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetByMerchantTransactionID retrieves a transaction by the caller-chosen
// merchant transaction id, the idempotency key supplied at creation.
func (s *TransactionsService) GetByMerchantTransactionID(ctx context.Context, merchantTransactionID string) (*Transaction, error) {
	if merchantTransactionID == "" {
		return nil, &ValidationError{Message: "merchant transaction id is required"}
	}
	resp, err := do[struct{}, Transaction](ctx, s.client, "get transaction by merchant transaction id", http.MethodGet, "/transactions/merchant/"+url.PathEscape(merchantTransactionID), nil)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp, nil
}

// List pages through transactions in creation order. List items omit the
// merchant transaction id; use Get for the full record.
func (s *TransactionsService) List(ctx context.Context, params ListParams) ([]Transaction, error) {
	query, err := params.encode()
	if err != nil {
		return nil, err
	}
	resp, err := do[struct{}, transactionListResponse](ctx, s.client, "list transactions", http.MethodGet, "/transactions"+query, nil)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}
