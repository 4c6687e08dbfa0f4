package flexpay

import (
	"context"
	"net/http"
)

// AuthorizeService places holds without capturing funds. The request shapes
// mirror the charge variants but are independent contracts: authorize has no
// billing-cycle requirement and its optionality diverges from charge.
type AuthorizeService struct {
	client *Client
}

// AuthorizeCreditCardRequest authorizes raw card data.
type AuthorizeCreditCardRequest struct {
	MerchantTransactionID string           `json:"merchantTransactionId"`
	OrderID               string           `json:"orderId"`
	Description           Nullable[string] `json:"description"`
	CustomerID            string           `json:"customerId"`
	CurrencyCode          string           `json:"currencyCode"`
	Amount                int64            `json:"amount"`

	PaymentMethod CreditCard `json:"paymentMethod"`

	GatewayToken string       `json:"gatewayToken"`
	PaymentModel PaymentModel `json:"paymentModel"`
	PaymentPlan  *PaymentPlan `json:"paymentPlan,omitempty"`

	// RetainOnSuccess vaults the card when the authorization is approved.
	RetainOnSuccess bool `json:"retainOnSuccess"`

	CustomerIP       Nullable[string]    `json:"customerIp"`
	ShippingAddress  *Address            `json:"shippingAddress,omitempty"`
	RetryCount       int                 `json:"retryCount"`
	DateFirstAttempt Nullable[Timestamp] `json:"dateFirstAttempt"`

	ReferenceData           Nullable[string]       `json:"referenceData"`
	DisableCustomerRecovery bool                   `json:"disableCustomerRecovery"`
	References              *TransactionReferences `json:"References,omitempty"`

	CustomVariable1 Nullable[string] `json:"customVariable1"`
	CustomVariable2 Nullable[string] `json:"customVariable2"`
	CustomVariable3 Nullable[string] `json:"customVariable3"`
	CustomVariable4 Nullable[string] `json:"customVariable4"`
	CustomVariable5 Nullable[string] `json:"customVariable5"`
}

// AuthorizeTokenizedPaymentMethodRequest authorizes against a stored payment
// method.
type AuthorizeTokenizedPaymentMethodRequest struct {
	MerchantTransactionID string           `json:"merchantTransactionId"`
	OrderID               string           `json:"orderId"`
	Description           Nullable[string] `json:"description"`
	CustomerID            string           `json:"customerId"`
	CurrencyCode          string           `json:"currencyCode"`
	Amount                int64            `json:"amount"`

	PaymentMethodID string `json:"paymentMethodId"`

	GatewayToken string       `json:"gatewayToken"`
	PaymentPlan  *PaymentPlan `json:"paymentPlan,omitempty"`

	CustomerIP       Nullable[string]    `json:"customerIp"`
	ShippingAddress  *Address            `json:"shippingAddress,omitempty"`
	RetryCount       int                 `json:"retryCount"`
	DateFirstAttempt Nullable[Timestamp] `json:"dateFirstAttempt"`

	ReferenceData           Nullable[string]       `json:"referenceData"`
	DisableCustomerRecovery bool                   `json:"disableCustomerRecovery"`
	References              *TransactionReferences `json:"References,omitempty"`

	CustomVariable1 Nullable[string] `json:"customVariable1"`
	CustomVariable2 Nullable[string] `json:"customVariable2"`
	CustomVariable3 Nullable[string] `json:"customVariable3"`
	CustomVariable4 Nullable[string] `json:"customVariable4"`
	CustomVariable5 Nullable[string] `json:"customVariable5"`
}

// AuthorizeGatewayPaymentMethodRequest authorizes a gateway-vaulted payment
// method reference.
type AuthorizeGatewayPaymentMethodRequest struct {
	MerchantTransactionID string           `json:"merchantTransactionId"`
	OrderID               string           `json:"orderId"`
	Description           Nullable[string] `json:"description"`
	CustomerID            string           `json:"customerId"`
	CurrencyCode          string           `json:"currencyCode"`
	Amount                int64            `json:"amount"`

	PaymentMethod GatewayPaymentMethodReference `json:"paymentMethod"`

	GatewayToken string       `json:"gatewayToken"`
	PaymentPlan  *PaymentPlan `json:"paymentPlan,omitempty"`

	CustomerIP       Nullable[string]    `json:"customerIp"`
	ShippingAddress  *Address            `json:"shippingAddress,omitempty"`
	RetryCount       int                 `json:"retryCount"`
	DateFirstAttempt Nullable[Timestamp] `json:"dateFirstAttempt"`

	ReferenceData           Nullable[string]       `json:"referenceData"`
	DisableCustomerRecovery bool                   `json:"disableCustomerRecovery"`
	References              *TransactionReferences `json:"References,omitempty"`

	CustomVariable1 Nullable[string] `json:"customVariable1"`
	CustomVariable2 Nullable[string] `json:"customVariable2"`
	CustomVariable3 Nullable[string] `json:"customVariable3"`
	CustomVariable4 Nullable[string] `json:"customVariable4"`
	CustomVariable5 Nullable[string] `json:"customVariable5"`
}

// CreditCard authorizes raw card data.
func (s *AuthorizeService) CreditCard(ctx context.Context, req *AuthorizeCreditCardRequest) (*Transaction, error) {
	if err := validateMoney(req.Amount, req.CurrencyCode, req.MerchantTransactionID); err != nil {
		return nil, err
	}
	return do[AuthorizeCreditCardRequest, Transaction](ctx, s.client, "authorize credit card", http.MethodPost, "/gateways/authorize", req)
}

// TokenizedPaymentMethod authorizes a stored payment method by id.
func (s *AuthorizeService) TokenizedPaymentMethod(ctx context.Context, req *AuthorizeTokenizedPaymentMethodRequest) (*Transaction, error) {
	if err := validateMoney(req.Amount, req.CurrencyCode, req.MerchantTransactionID); err != nil {
		return nil, err
	}
	if req.PaymentMethodID == "" {
		return nil, &ValidationError{Message: "payment method id is required"}
	}
	return do[AuthorizeTokenizedPaymentMethodRequest, Transaction](ctx, s.client, "authorize tokenized payment method", http.MethodPost, "/gateways/authorize", req)
}

// GatewayPaymentMethod authorizes a gateway-vaulted payment method
// reference.
func (s *AuthorizeService) GatewayPaymentMethod(ctx context.Context, req *AuthorizeGatewayPaymentMethodRequest) (*Transaction, error) {
	if err := validateMoney(req.Amount, req.CurrencyCode, req.MerchantTransactionID); err != nil {
		return nil, err
	}
	if req.PaymentMethod.GatewayPaymentMethodID == "" {
		return nil, &ValidationError{Message: "gateway payment method id is required"}
	}
	return do[AuthorizeGatewayPaymentMethodRequest, Transaction](ctx, s.client, "authorize gateway payment method", http.MethodPost, "/gateways/authorize", req)
}
