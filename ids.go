package flexpay

import "github.com/google/uuid"

// NewMerchantTransactionID returns a merchant transaction id suitable for
// use as the gateway's idempotency key. Replaying the same id is treated by
// the gateway as the original transaction, so every new attempt needs a
// fresh one.
func NewMerchantTransactionID() string {
	return uuid.NewString()
}
