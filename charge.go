package flexpay

import (
	"context"
	"net/http"
)

// ChargeService creates charge transactions. Three request shapes exist, one
// per payment method source; they deliberately do not share a base type so
// per-variant optionality can diverge without coupling.
type ChargeService struct {
	client *Client
}

// ChargeCreditCardRequest charges raw card data in one call.
type ChargeCreditCardRequest struct {
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

	// RetainOnSuccess vaults the card as a stored payment method when the
	// charge is approved.
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

// ChargeTokenizedPaymentMethodRequest charges a payment method previously
// stored with the gateway.
type ChargeTokenizedPaymentMethodRequest struct {
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

// ChargeGatewayPaymentMethodRequest charges a method vaulted at the
// downstream gateway, referenced by its gateway-issued token.
type ChargeGatewayPaymentMethodRequest struct {
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

// CreditCard charges raw card data. Declines come back as transactions
// tagged with their response code, not as errors.
func (s *ChargeService) CreditCard(ctx context.Context, req *ChargeCreditCardRequest) (*Transaction, error) {
	if err := validateMoney(req.Amount, req.CurrencyCode, req.MerchantTransactionID); err != nil {
		return nil, err
	}
	return do[ChargeCreditCardRequest, Transaction](ctx, s.client, "charge credit card", http.MethodPost, "/gateways/charge", req)
}

// TokenizedPaymentMethod charges a stored payment method by id.
func (s *ChargeService) TokenizedPaymentMethod(ctx context.Context, req *ChargeTokenizedPaymentMethodRequest) (*Transaction, error) {
	if err := validateMoney(req.Amount, req.CurrencyCode, req.MerchantTransactionID); err != nil {
		return nil, err
	}
	if req.PaymentMethodID == "" {
		return nil, &ValidationError{Message: "payment method id is required"}
	}
	return do[ChargeTokenizedPaymentMethodRequest, Transaction](ctx, s.client, "charge tokenized payment method", http.MethodPost, "/gateways/charge", req)
}

// GatewayPaymentMethod charges a gateway-vaulted payment method reference.
func (s *ChargeService) GatewayPaymentMethod(ctx context.Context, req *ChargeGatewayPaymentMethodRequest) (*Transaction, error) {
	if err := validateMoney(req.Amount, req.CurrencyCode, req.MerchantTransactionID); err != nil {
		return nil, err
	}
	if req.PaymentMethod.GatewayPaymentMethodID == "" {
		return nil, &ValidationError{Message: "gateway payment method id is required"}
	}
	return do[ChargeGatewayPaymentMethodRequest, Transaction](ctx, s.client, "charge gateway payment method", http.MethodPost, "/gateways/charge", req)
}

// validateMoney enforces the outbound invariants shared by every monetary
// operation: a non-negative integer amount in minor units, a currency code
// alongside it, and the caller-unique idempotency key.
func validateMoney(amount int64, currencyCode, merchantTransactionID string) error {
	if amount < 0 {
		return &ValidationError{Message: "amount must be a non-negative integer in minor units"}
	}
	if currencyCode == "" {
		return &ValidationError{Message: "currency code is required when an amount is present"}
	}
	if merchantTransactionID == "" {
		return &ValidationError{Message: "merchant transaction id is required"}
	}
	return nil
}
