package flexpay

import (
	"context"
	"net/http"
	"net/url"
)

// PaymentMethodsService manages stored payment methods.
type PaymentMethodsService struct {
	client *Client
}

// CreateCreditCardPaymentMethodRequest stores a payment method from raw card
// data.
type CreateCreditCardPaymentMethodRequest struct {
	CustomerID string     `json:"customerId"`
	CreditCard CreditCard `json:"creditCard"`
}

// CreateTokenizedPaymentMethodRequest stores a payment method that already
// lives in a downstream gateway's vault.
type CreateTokenizedPaymentMethodRequest struct {
	CustomerID           string               `json:"customerId"`
	GatewayPaymentMethod GatewayPaymentMethod `json:"gatewayPaymentMethod"`
}

// UpdatePaymentMethodRequest carries the restricted editable-field set.
// Absent fields are left untouched; explicit nulls clear the stored value
// where the gateway allows it.
type UpdatePaymentMethodRequest struct {
	ExpiryMonth Nullable[string] `json:"expiryMonth,omitzero"`
	ExpiryYear  Nullable[string] `json:"expiryYear,omitzero"`

	FirstName Nullable[string] `json:"firstName,omitzero"`
	LastName  Nullable[string] `json:"lastName,omitzero"`
	FullName  Nullable[string] `json:"fullName,omitzero"`

	Address1   Nullable[string] `json:"address1,omitzero"`
	Address2   Nullable[string] `json:"address2,omitzero"`
	City       Nullable[string] `json:"city,omitzero"`
	State      Nullable[string] `json:"state,omitzero"`
	PostalCode Nullable[string] `json:"postalCode,omitzero"`
	Country    Nullable[string] `json:"country,omitzero"`

	Email       Nullable[string] `json:"email,omitzero"`
	PhoneNumber Nullable[string] `json:"phoneNumber,omitzero"`
}

func (r *UpdatePaymentMethodRequest) hasEditableField() bool {
	fields := []interface{ IsSet() bool }{
		r.ExpiryMonth, r.ExpiryYear,
		r.FirstName, r.LastName, r.FullName,
		r.Address1, r.Address2, r.City, r.State, r.PostalCode, r.Country,
		r.Email, r.PhoneNumber,
	}
	for _, f := range fields {
		if f.IsSet() {
			return true
		}
	}
	return false
}

// RecacheCVVRequest re-supplies a CVV for a stored card. An explicit null
// clears the cached value.
type RecacheCVVRequest struct {
	CVV Nullable[string] `json:"cvv"`
}

// createPaymentMethodBody is the wire wrapper the create endpoint expects.
type createPaymentMethodBody struct {
	PaymentMethod any `json:"paymentMethod"`
}

type paymentMethodListResponse struct {
	Envelope
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
}

// CreateCreditCard stores raw card data as a new payment method. Any
// well-formed gateway outcome is returned with its response code; check
// Approved before using the payment method.
func (s *PaymentMethodsService) CreateCreditCard(ctx context.Context, req *CreateCreditCardPaymentMethodRequest) (*PaymentMethodResponse, error) {
	body := createPaymentMethodBody{PaymentMethod: req}
	return do[createPaymentMethodBody, PaymentMethodResponse](ctx, s.client, "create credit card payment method", http.MethodPost, "/paymentmethods", &body)
}

// CreateTokenized stores a gateway-vaulted payment method reference.
func (s *PaymentMethodsService) CreateTokenized(ctx context.Context, req *CreateTokenizedPaymentMethodRequest) (*PaymentMethodResponse, error) {
	body := createPaymentMethodBody{PaymentMethod: req}
	return do[createPaymentMethodBody, PaymentMethodResponse](ctx, s.client, "create tokenized payment method", http.MethodPost, "/paymentmethods", &body)
}

// Update changes the editable fields of a stored payment method. A request
// with no editable field present fails locally before any network call.
func (s *PaymentMethodsService) Update(ctx context.Context, paymentMethodID string, req *UpdatePaymentMethodRequest) (*PaymentMethodResponse, error) {
	if paymentMethodID == "" {
		return nil, &ValidationError{Message: "payment method id is required"}
	}
	if req == nil || !req.hasEditableField() {
		return nil, &ValidationError{Message: "update request contains no editable field changes"}
	}
	return do[UpdatePaymentMethodRequest, PaymentMethodResponse](ctx, s.client, "update payment method", http.MethodPut, "/paymentmethods/"+url.PathEscape(paymentMethodID), req)
}

// Get retrieves a stored payment method by its gateway-assigned id. A
// non-approved outcome is returned as a *ResponseError.
func (s *PaymentMethodsService) Get(ctx context.Context, paymentMethodID string) (*PaymentMethod, error) {
	if paymentMethodID == "" {
		return nil, &ValidationError{Message: "payment method id is required"}
	}
	resp, err := do[struct{}, PaymentMethodResponse](ctx, s.client, "get payment method", http.MethodGet, "/paymentmethods/"+url.PathEscape(paymentMethodID), nil)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return &resp.PaymentMethod, nil
}

// List pages through stored payment methods in creation order.
func (s *PaymentMethodsService) List(ctx context.Context, params ListParams) ([]PaymentMethod, error) {
	query, err := params.encode()
	if err != nil {
		return nil, err
	}
	resp, err := do[struct{}, paymentMethodListResponse](ctx, s.client, "list payment methods", http.MethodGet, "/paymentmethods"+query, nil)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.PaymentMethods, nil
}

// Redact clears the sensitive fields of a stored payment method in place.
// The record itself is never deleted.
func (s *PaymentMethodsService) Redact(ctx context.Context, paymentMethodID string) (*PaymentMethodResponse, error) {
	if paymentMethodID == "" {
		return nil, &ValidationError{Message: "payment method id is required"}
	}
	return do[struct{}, PaymentMethodResponse](ctx, s.client, "redact payment method", http.MethodPost, "/paymentmethods/"+url.PathEscape(paymentMethodID)+"/redact", nil)
}

// RecacheCVV re-supplies the CVV for a stored card ahead of a charge.
func (s *PaymentMethodsService) RecacheCVV(ctx context.Context, paymentMethodID string, cvv Nullable[string]) (*PaymentMethodResponse, error) {
	if paymentMethodID == "" {
		return nil, &ValidationError{Message: "payment method id is required"}
	}
	body := RecacheCVVRequest{CVV: cvv}
	return do[RecacheCVVRequest, PaymentMethodResponse](ctx, s.client, "recache cvv", http.MethodPost, "/paymentmethods/"+url.PathEscape(paymentMethodID)+"/recache-cvv", &body)
}
