package flexpay

// Address travels on most operations. The client transmits every field as
// given; the gateway only ever validates postal code and country, and the
// client assigns no validation semantics of its own.
type Address struct {
	Address1   string           `json:"address1"`
	Address2   Nullable[string] `json:"address2"`
	City       string           `json:"city"`
	State      string           `json:"state"`
	PostalCode string           `json:"postalCode"`
	Country    string           `json:"country"`
}

// Response is the nested `response` sub-object present on every gateway
// reply. It relays verification results from the downstream processor.
type Response struct {
	AVSCode      Nullable[string] `json:"avsCode,omitzero"`
	AVSMessage   Nullable[string] `json:"avsMessage,omitzero"`
	CVVCode      Nullable[string] `json:"cvvCode,omitzero"`
	CVVMessage   Nullable[string] `json:"cvvMessage,omitzero"`
	ErrorCode    Nullable[string] `json:"errorCode,omitzero"`
	ErrorMessage Nullable[string] `json:"errorMessage,omitzero"`
}

// Envelope carries the fields every gateway response body includes. Response
// types embed it; the classifier fills in the HTTP status after decoding.
type Envelope struct {
	Response     Response     `json:"response"`
	ResponseCode ResponseCode `json:"responseCode"`
	Message      string       `json:"message"`

	httpStatus int
}

func (e *Envelope) setHTTPStatus(status int) { e.httpStatus = status }

// HTTPStatus returns the HTTP status the response arrived with. It is
// diagnostic only; classification keys off ResponseCode.
func (e *Envelope) HTTPStatus() int { return e.httpStatus }

// Approved reports whether the gateway approved the operation.
func (e *Envelope) Approved() bool { return e.ResponseCode == ResponseCodeApproved }

// Err materializes the classified outcome as a *ResponseError for callers
// that prefer error flow over branching on the response code. It returns nil
// for approved outcomes.
func (e *Envelope) Err() error {
	if e.Approved() {
		return nil
	}
	return &ResponseError{
		ResponseCode: e.ResponseCode,
		HTTPStatus:   e.httpStatus,
		Message:      e.Message,
	}
}

// CreditCard is raw card data supplied on create-payment-method and on the
// credit-card charge/authorize variants. Expiry values are zero-padded
// strings, the form the gateway expects ("01", "2030").
type CreditCard struct {
	CreditCardNumber string `json:"creditCardNumber"`
	ExpiryMonth      string `json:"expiryMonth"`
	ExpiryYear       string `json:"expiryYear"`
	CVV              string `json:"cvv"`

	FirstName Nullable[string] `json:"firstName"`
	LastName  Nullable[string] `json:"lastName"`
	FullName  Nullable[string] `json:"fullName"`

	Address1   string           `json:"address1"`
	Address2   Nullable[string] `json:"address2"`
	City       string           `json:"city"`
	State      string           `json:"state"`
	PostalCode string           `json:"postalCode"`
	Country    string           `json:"country"`

	Email       Nullable[string] `json:"email"`
	PhoneNumber Nullable[string] `json:"phoneNumber"`

	// Only meaningful on charge/authorize variants; omitted on create.
	MerchantAccountReferenceID Nullable[string] `json:"merchantAccountReferenceId,omitzero"`
}

// GatewayPaymentMethod describes a payment method already vaulted at the
// downstream gateway, referenced by token plus truncated card digits.
type GatewayPaymentMethod struct {
	GatewayPaymentMethodID     string `json:"gatewayPaymentMethodId"`
	MerchantAccountReferenceID string `json:"merchantAccountReferenceId"`
	FirstSixDigits             string `json:"firstSixDigits"`
	LastFourDigits             string `json:"lastFourDigits"`
	ExpiryMonth                string `json:"expiryMonth"`
	ExpiryYear                 string `json:"expiryYear"`

	FirstName Nullable[string] `json:"firstName"`
	LastName  Nullable[string] `json:"lastName"`
	FullName  Nullable[string] `json:"fullName"`

	Address1   string           `json:"address1"`
	Address2   Nullable[string] `json:"address2"`
	City       string           `json:"city"`
	State      string           `json:"state"`
	PostalCode string           `json:"postalCode"`
	Country    string           `json:"country"`

	Email       Nullable[string] `json:"email"`
	PhoneNumber Nullable[string] `json:"phoneNumber"`
}

// GatewayPaymentMethodReference is the slim reference used when charging or
// authorizing directly against a gateway-vaulted method.
type GatewayPaymentMethodReference struct {
	GatewayPaymentMethodID     string `json:"gatewayPaymentMethodId"`
	MerchantAccountReferenceID string `json:"merchantAccountReferenceId"`

	FirstName Nullable[string] `json:"firstName,omitzero"`
	LastName  Nullable[string] `json:"lastName,omitzero"`
	FullName  Nullable[string] `json:"fullName,omitzero"`

	Address1   Nullable[string] `json:"address1,omitzero"`
	Address2   Nullable[string] `json:"address2,omitzero"`
	City       Nullable[string] `json:"city,omitzero"`
	State      Nullable[string] `json:"state,omitzero"`
	PostalCode Nullable[string] `json:"postalCode,omitzero"`
	Country    Nullable[string] `json:"country,omitzero"`
}

// PaymentMethod is a stored payment method as the gateway returns it.
// Exactly one of the card variant (CreditCardNumber et al.) and the gateway
// variant (GatewayPaymentMethodID) is populated per instance.
type PaymentMethod struct {
	PaymentMethodID   string       `json:"paymentMethodId"`
	CustomerID        string       `json:"customerId"`
	PaymentMethodType string       `json:"paymentMethodType"`
	StorageState      StorageState `json:"storageState"`

	// Card variant. The number comes back masked.
	CreditCardNumber string `json:"creditCardNumber"`
	FirstSixDigits   string `json:"firstSixDigits"`
	LastFourDigits   string `json:"lastFourDigits"`
	ExpiryMonth      string `json:"expiryMonth"`
	ExpiryYear       string `json:"expiryYear"`

	// Gateway-reference variant.
	GatewayPaymentMethodID     Nullable[string] `json:"gatewayPaymentMethodId,omitzero"`
	MerchantAccountReferenceID Nullable[string] `json:"merchantAccountReferenceId,omitzero"`

	FirstName Nullable[string] `json:"firstName"`
	LastName  Nullable[string] `json:"lastName"`
	FullName  Nullable[string] `json:"fullName"`

	Address1   string           `json:"address1"`
	Address2   Nullable[string] `json:"address2"`
	City       string           `json:"city"`
	State      string           `json:"state"`
	PostalCode string           `json:"postalCode"`
	Country    string           `json:"country"`

	Email       Nullable[string] `json:"email"`
	PhoneNumber Nullable[string] `json:"phoneNumber"`

	DateCreated Timestamp `json:"dateCreated"`
}

// PaymentPlan qualifies a charge that belongs to a billing plan.
type PaymentPlan struct {
	SKU          Nullable[string] `json:"sku"`
	Category     Nullable[string] `json:"category"`
	BillingPlan  Nullable[string] `json:"billingPlan"`
	BillingCycle Nullable[int]    `json:"billingCycle"`
}

// TransactionReferences links a request to an earlier attempt. The wire
// casing is the gateway's own.
type TransactionReferences struct {
	PreviousTransaction *PreviousTransaction `json:"PreviousTransaction,omitempty"`
}

type PreviousTransaction struct {
	MerchantAccountReferenceID Nullable[string]    `json:"merchantAccountReferenceId"`
	GatewayCode                Nullable[string]    `json:"gatewayCode"`
	GatewayMessage             Nullable[string]    `json:"gatewayMessage"`
	TransactionDate            Nullable[Timestamp] `json:"transactionDate"`
}

// Transaction is the gateway's record of a charge, authorize, capture, void
// or refund attempt. It doubles as the response contract for those
// operations; retrieval endpoints return the same shape.
type Transaction struct {
	Envelope

	TransactionID         string            `json:"transactionId"`
	MerchantTransactionID string            `json:"merchantTransactionId"`
	TransactionDate       Timestamp         `json:"transactionDate"`
	TransactionStatus     TransactionStatus `json:"transactionStatus"`
	TransactionType       TransactionType   `json:"transactionType"`

	CustomerID   string `json:"customerId"`
	OrderID      string `json:"orderId"`
	Description  string `json:"description"`
	CurrencyCode string `json:"currencyCode"`
	Amount       int64  `json:"amount"`

	GatewayToken               string           `json:"gatewayToken"`
	GatewayType                GatewayType      `json:"gatewayType"`
	GatewayTransactionID       Nullable[string] `json:"gatewayTransactionId"`
	MerchantAccountReferenceID Nullable[string] `json:"merchantAccountReferenceId"`
	AssignedGatewayToken       string           `json:"assignedGatewayToken"`

	PaymentMethod *PaymentMethod `json:"paymentMethod,omitempty"`
	PaymentModel  PaymentModel   `json:"paymentModel,omitempty"`

	RetryCount       int                 `json:"retryCount"`
	RetryDate        Nullable[Timestamp] `json:"retryDate"`
	DateFirstAttempt Nullable[Timestamp] `json:"dateFirstAttempt"`

	CustomerIP              Nullable[string]       `json:"customerIp"`
	ShippingAddress         *Address               `json:"shippingAddress,omitempty"`
	BillingAddress          *Address               `json:"billingAddress,omitempty"`
	ReferenceData           Nullable[string]       `json:"referenceData"`
	DisableCustomerRecovery bool                   `json:"disableCustomerRecovery"`
	References              *TransactionReferences `json:"References,omitempty"`

	CustomVariable1 Nullable[string] `json:"customVariable1"`
	CustomVariable2 Nullable[string] `json:"customVariable2"`
	CustomVariable3 Nullable[string] `json:"customVariable3"`
	CustomVariable4 Nullable[string] `json:"customVariable4"`
	CustomVariable5 Nullable[string] `json:"customVariable5"`
}

// PaymentMethodResponse is the outcome of the payment-method write
// operations (create, update, redact, recache CVV).
type PaymentMethodResponse struct {
	Envelope

	TransactionID     string            `json:"transactionId"`
	TransactionDate   Timestamp         `json:"transactionDate"`
	TransactionStatus TransactionStatus `json:"transactionStatus"`
	PaymentMethod     PaymentMethod     `json:"paymentMethod"`
}
