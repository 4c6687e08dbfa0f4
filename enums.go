package flexpay

// ResponseCode is the gateway's fine-grained outcome code. The code on the
// response body, not the HTTP status, decides whether an operation was
// approved. Codes other than ResponseCodeApproved describe the exact failure;
// there is no coarser bucketing.
type ResponseCode string

const (
	ResponseCodeApproved ResponseCode = "10000"

	// Declines returned by the downstream processor.
	ResponseCodeDeclined          ResponseCode = "20000"
	ResponseCodeInsufficientFunds ResponseCode = "20051"
	ResponseCodeExpiredCard       ResponseCode = "20054"
	ResponseCodeHardDecline       ResponseCode = "30000"

	// Gateway-side failures.
	ResponseCodeGatewayUnavailable ResponseCode = "40001"

	// Request validation failures raised by the gateway's API layer.
	ResponseCodeAPIUnauthorized                  ResponseCode = "50001"
	ResponseCodeAPIInvalidCreditCardNumberLength ResponseCode = "50005"
	ResponseCodeAPIInvalidExpiryDate             ResponseCode = "50011"
	ResponseCodeAPIInvalidDateFormat             ResponseCode = "50021"
	ResponseCodeAPITransactionNotFound           ResponseCode = "50054"
	ResponseCodeAPIInvalidPaymentMethod          ResponseCode = "50057"
	ResponseCodeAPIFullNameOrFirstLastRequired   ResponseCode = "50062"
	ResponseCodeAPIPaymentMethodNotFound         ResponseCode = "50063"
	ResponseCodeAPIInvalidValueForPaymentToken   ResponseCode = "50094"
)

// TransactionStatus is the coarse transaction state. ResponseCode is always
// strictly more granular; status is what list views and dashboards key on.
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusApproved TransactionStatus = "approved"
	TransactionStatusDeclined TransactionStatus = "declined"
	TransactionStatusError    TransactionStatus = "error"
)

type TransactionType string

const (
	TransactionTypeCharge    TransactionType = "charge"
	TransactionTypeAuthorize TransactionType = "authorize"
	TransactionTypeCapture   TransactionType = "capture"
	TransactionTypeVoid      TransactionType = "void"
	TransactionTypeRefund    TransactionType = "refund"
)

// GatewayType identifies the kind of downstream processor the gateway token
// routed the call to.
type GatewayType string

const (
	GatewayTypeCreditCard GatewayType = "creditcard"
	GatewayTypeTest       GatewayType = "test"
)

// PaymentModel tells the gateway how the charge relates to a billing
// relationship, which affects downstream retry and recovery handling.
type PaymentModel string

const (
	PaymentModelOneTime      PaymentModel = "one_time"
	PaymentModelSubscription PaymentModel = "subscription"
	PaymentModelMembership   PaymentModel = "membership"
)

// StorageState describes the lifecycle of a stored payment method. Redacted
// methods keep their record but have sensitive fields cleared in place.
type StorageState string

const (
	StorageStateCached   StorageState = "cached"
	StorageStateRetained StorageState = "retained"
	StorageStateRedacted StorageState = "redacted"
)

// SortOrder orders list results by creation order.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)
