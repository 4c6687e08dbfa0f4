package testgateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	flexpay "github.com/flexpay/flexpay-go"
)

// chargeBody is the superset of the three charge/authorize request variants.
// PaymentMethod stays raw until the variant is known; DateFirstAttempt stays
// raw so a malformed date can be rejected with a classified code instead of
// a decode failure.
type chargeBody struct {
	MerchantTransactionID   string                         `json:"merchantTransactionId"`
	OrderID                 string                         `json:"orderId"`
	Description             flexpay.Nullable[string]       `json:"description"`
	CustomerID              string                         `json:"customerId"`
	CurrencyCode            string                         `json:"currencyCode"`
	Amount                  int64                          `json:"amount"`
	PaymentMethod           json.RawMessage                `json:"paymentMethod"`
	PaymentMethodID         string                         `json:"paymentMethodId"`
	GatewayToken            string                         `json:"gatewayToken"`
	PaymentModel            flexpay.PaymentModel           `json:"paymentModel"`
	RetainOnSuccess         bool                           `json:"retainOnSuccess"`
	CustomerIP              flexpay.Nullable[string]       `json:"customerIp"`
	ShippingAddress         *flexpay.Address               `json:"shippingAddress"`
	RetryCount              int                            `json:"retryCount"`
	DateFirstAttempt        json.RawMessage                `json:"dateFirstAttempt"`
	ReferenceData           flexpay.Nullable[string]       `json:"referenceData"`
	DisableCustomerRecovery bool                           `json:"disableCustomerRecovery"`
	References              *flexpay.TransactionReferences `json:"References"`
	CustomVariable1         flexpay.Nullable[string]       `json:"customVariable1"`
	CustomVariable2         flexpay.Nullable[string]       `json:"customVariable2"`
	CustomVariable3         flexpay.Nullable[string]       `json:"customVariable3"`
	CustomVariable4         flexpay.Nullable[string]       `json:"customVariable4"`
	CustomVariable5         flexpay.Nullable[string]       `json:"customVariable5"`
}

func (s *Server) handleCharge(w http.ResponseWriter, r *http.Request) {
	s.handleTransactionCreate(w, r, flexpay.TransactionTypeCharge)
}

func (s *Server) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	s.handleTransactionCreate(w, r, flexpay.TransactionTypeAuthorize)
}

func (s *Server) handleTransactionCreate(w http.ResponseWriter, r *http.Request, txType flexpay.TransactionType) {
	var body chargeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeOutcome(w, http.StatusBadRequest, flexpay.ResponseCodeAPIInvalidPaymentMethod, "Malformed transaction payload.")
		return
	}

	dateFirstAttempt, err := parseOptionalTimestamp(body.DateFirstAttempt)
	if err != nil {
		writeOutcome(w, http.StatusBadRequest, flexpay.ResponseCodeAPIInvalidDateFormat, "dateFirstAttempt is not a valid ISO-8601 date.")
		return
	}

	// Replays of a merchant transaction id are the original transaction.
	s.mu.Lock()
	if txID, seen := s.txByMerchant[body.MerchantTransactionID]; seen {
		existing := *s.transactions[txID]
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, existing)
		return
	}
	s.mu.Unlock()

	code, message, pm := s.resolvePaymentMethod(&body)

	if code != flexpay.ResponseCodeApproved && isAPIValidationCode(code) {
		writeOutcome(w, http.StatusBadRequest, code, message)
		return
	}

	tx := &flexpay.Transaction{}
	tx.Envelope = flexpay.Envelope{ResponseCode: code, Message: message}
	tx.TransactionID = newID("TX")
	tx.MerchantTransactionID = body.MerchantTransactionID
	tx.TransactionDate = now()
	tx.TransactionType = txType
	tx.CustomerID = body.CustomerID
	tx.OrderID = body.OrderID
	tx.Description = body.Description.Or("")
	tx.CurrencyCode = body.CurrencyCode
	tx.Amount = body.Amount
	tx.GatewayToken = body.GatewayToken
	tx.GatewayType = flexpay.GatewayTypeTest
	tx.AssignedGatewayToken = s.gatewayToken
	tx.PaymentModel = body.PaymentModel
	tx.RetryCount = body.RetryCount
	tx.DateFirstAttempt = dateFirstAttempt
	tx.CustomerIP = body.CustomerIP
	tx.ShippingAddress = body.ShippingAddress
	tx.ReferenceData = body.ReferenceData
	tx.DisableCustomerRecovery = body.DisableCustomerRecovery
	tx.References = body.References
	tx.CustomVariable1 = body.CustomVariable1
	tx.CustomVariable2 = body.CustomVariable2
	tx.CustomVariable3 = body.CustomVariable3
	tx.CustomVariable4 = body.CustomVariable4
	tx.CustomVariable5 = body.CustomVariable5

	if code == flexpay.ResponseCodeApproved {
		tx.TransactionStatus = flexpay.TransactionStatusApproved
		tx.GatewayTransactionID = flexpay.NullableOf(newID("GW"))
		if pm != nil {
			tx.PaymentMethod = pm
		}
	} else {
		tx.TransactionStatus = flexpay.TransactionStatusDeclined
	}

	// Re-check under the same lock as the insert: a concurrent request with
	// the same merchant transaction id may have won the race since the
	// fast-path check above.
	s.mu.Lock()
	if txID, seen := s.txByMerchant[tx.MerchantTransactionID]; seen {
		existing := *s.transactions[txID]
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, existing)
		return
	}
	s.transactions[tx.TransactionID] = tx
	s.txByMerchant[tx.MerchantTransactionID] = tx.TransactionID
	s.txOrder = append(s.txOrder, tx.TransactionID)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, *tx)
}

// resolvePaymentMethod decides which request variant arrived and what the
// downstream processor would answer for it. A returned payment method is
// only attached to approved outcomes.
func (s *Server) resolvePaymentMethod(body *chargeBody) (flexpay.ResponseCode, string, *flexpay.PaymentMethod) {
	if body.PaymentMethodID != "" {
		s.mu.Lock()
		pm, ok := s.paymentMethods[body.PaymentMethodID]
		s.mu.Unlock()
		if !ok {
			return flexpay.ResponseCodeAPIInvalidPaymentMethod, "Unknown payment method id.", nil
		}
		return flexpay.ResponseCodeApproved, "Approved.", pm
	}

	if len(body.PaymentMethod) == 0 {
		return flexpay.ResponseCodeAPIInvalidPaymentMethod, "A payment method is required.", nil
	}

	var card flexpay.CreditCard
	if err := json.Unmarshal(body.PaymentMethod, &card); err == nil && card.CreditCardNumber != "" {
		return cardOutcome(card.CreditCardNumber, body.RetainOnSuccess, s, &card, body.CustomerID)
	}

	var ref flexpay.GatewayPaymentMethodReference
	if err := json.Unmarshal(body.PaymentMethod, &ref); err == nil && ref.GatewayPaymentMethodID != "" {
		return flexpay.ResponseCodeApproved, "Approved.", nil
	}

	return flexpay.ResponseCodeAPIInvalidValueForPaymentToken, "Invalid value for payment token.", nil
}

// cardOutcome applies the sandbox decline table and optionally vaults the
// card on approval.
func cardOutcome(number string, retain bool, s *Server, card *flexpay.CreditCard, customerID string) (flexpay.ResponseCode, string, *flexpay.PaymentMethod) {
	if len(number) < 13 {
		return flexpay.ResponseCodeAPIInvalidCreditCardNumberLength, "Invalid credit card number length.", nil
	}

	switch number {
	case flexpay.SandboxCreditCards.MasterCard.CreditCardNumber:
		return flexpay.ResponseCodeInsufficientFunds, "Insufficient funds.", nil
	case flexpay.SandboxCreditCards.Maestro.CreditCardNumber:
		return flexpay.ResponseCodeExpiredCard, "Expired card.", nil
	}

	if !retain {
		return flexpay.ResponseCodeApproved, "Approved.", nil
	}

	pm := &flexpay.PaymentMethod{
		PaymentMethodID:   newID("PM"),
		CustomerID:        customerID,
		PaymentMethodType: "creditcard",
		StorageState:      flexpay.StorageStateRetained,
		CreditCardNumber:  maskCardNumber(number),
		FirstSixDigits:    number[:6],
		LastFourDigits:    number[len(number)-4:],
		ExpiryMonth:       card.ExpiryMonth,
		ExpiryYear:        card.ExpiryYear,
		FirstName:         card.FirstName,
		LastName:          card.LastName,
		FullName:          card.FullName,
		Address1:          card.Address1,
		Address2:          card.Address2,
		City:              card.City,
		State:             card.State,
		PostalCode:        card.PostalCode,
		Country:           card.Country,
		Email:             card.Email,
		PhoneNumber:       card.PhoneNumber,
		DateCreated:       now(),
	}

	s.mu.Lock()
	s.paymentMethods[pm.PaymentMethodID] = pm
	s.pmOrder = append(s.pmOrder, pm.PaymentMethodID)
	s.pmCVV[pm.PaymentMethodID] = card.CVV
	s.mu.Unlock()

	return flexpay.ResponseCodeApproved, "Approved.", pm
}

type followOnBody struct {
	MerchantTransactionID   string                   `json:"merchantTransactionId"`
	Amount                  flexpay.Nullable[int64]  `json:"amount"`
	CurrencyCode            flexpay.Nullable[string] `json:"currencyCode"`
	DisableCustomerRecovery flexpay.Nullable[bool]   `json:"disableCustomerRecovery"`
}

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	s.handleFollowOn(w, r, flexpay.TransactionTypeCapture)
}

func (s *Server) handleVoid(w http.ResponseWriter, r *http.Request) {
	s.handleFollowOn(w, r, flexpay.TransactionTypeVoid)
}

func (s *Server) handleRefund(w http.ResponseWriter, r *http.Request) {
	s.handleFollowOn(w, r, flexpay.TransactionTypeRefund)
}

// handleFollowOn records a capture, void or refund against the transaction
// the merchant transaction id addresses. The follow-on gets its own
// transaction id; the merchant id lookup keeps pointing at the original.
func (s *Server) handleFollowOn(w http.ResponseWriter, r *http.Request, txType flexpay.TransactionType) {
	var body followOnBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeOutcome(w, http.StatusBadRequest, flexpay.ResponseCodeAPITransactionNotFound, "Malformed request payload.")
		return
	}

	s.mu.Lock()
	txID, ok := s.txByMerchant[body.MerchantTransactionID]
	var original *flexpay.Transaction
	if ok {
		original = s.transactions[txID]
	}
	s.mu.Unlock()

	if !ok {
		writeOutcome(w, http.StatusBadRequest, flexpay.ResponseCodeAPITransactionNotFound, "No transaction matches the merchant transaction id.")
		return
	}

	followOn := &flexpay.Transaction{}
	followOn.Envelope = approvedEnvelope("Approved.")
	followOn.TransactionID = newID("TX")
	followOn.MerchantTransactionID = original.MerchantTransactionID
	followOn.TransactionDate = now()
	followOn.TransactionStatus = flexpay.TransactionStatusApproved
	followOn.TransactionType = txType
	followOn.CustomerID = original.CustomerID
	followOn.OrderID = original.OrderID
	followOn.CurrencyCode = body.CurrencyCode.Or(original.CurrencyCode)
	followOn.Amount = body.Amount.Or(original.Amount)
	followOn.GatewayToken = original.GatewayToken
	followOn.GatewayType = original.GatewayType
	followOn.AssignedGatewayToken = original.AssignedGatewayToken
	followOn.GatewayTransactionID = flexpay.NullableOf(newID("GW"))
	followOn.DisableCustomerRecovery = body.DisableCustomerRecovery.Or(original.DisableCustomerRecovery)
	followOn.References = &flexpay.TransactionReferences{
		PreviousTransaction: &flexpay.PreviousTransaction{
			MerchantAccountReferenceID: original.MerchantAccountReferenceID,
			TransactionDate:            flexpay.NullableOf(original.TransactionDate),
		},
	}

	s.mu.Lock()
	s.transactions[followOn.TransactionID] = followOn
	s.txOrder = append(s.txOrder, followOn.TransactionID)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, *followOn)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tx, ok := s.transactions[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		writeOutcome(w, http.StatusNotFound, flexpay.ResponseCodeAPITransactionNotFound, "Transaction not found.")
		return
	}
	writeJSON(w, http.StatusOK, *tx)
}

func (s *Server) handleGetTransactionByMerchantID(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	txID, ok := s.txByMerchant[r.PathValue("mtid")]
	var tx *flexpay.Transaction
	if ok {
		tx = s.transactions[txID]
	}
	s.mu.Unlock()
	if !ok {
		writeOutcome(w, http.StatusNotFound, flexpay.ResponseCodeAPITransactionNotFound, "Transaction not found.")
		return
	}
	writeJSON(w, http.StatusOK, *tx)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	count, sortOrder, sinceToken, err := listQuery(r)
	if err != nil {
		writeOutcome(w, http.StatusBadRequest, flexpay.ResponseCodeAPITransactionNotFound, err.Error())
		return
	}

	s.mu.Lock()
	ids, ok := paginate(s.txOrder, sinceToken, count, sortOrder)
	page := make([]flexpay.Transaction, 0, len(ids))
	for _, id := range ids {
		item := *s.transactions[id]
		// List views omit the merchant transaction id; only direct
		// retrieval returns it.
		item.MerchantTransactionID = ""
		page = append(page, item)
	}
	s.mu.Unlock()

	if !ok {
		writeOutcome(w, http.StatusBadRequest, flexpay.ResponseCodeAPITransactionNotFound, "Unknown sinceToken.")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		flexpay.Envelope
		Transactions []flexpay.Transaction `json:"transactions"`
	}{
		Envelope:     approvedEnvelope("Success."),
		Transactions: page,
	})
}

func listQuery(r *http.Request) (count int, sortOrder, sinceToken string, err error) {
	q := r.URL.Query()
	count, err = strconv.Atoi(q.Get("count"))
	if err != nil || count <= 0 {
		return 0, "", "", errors.New("count must be a positive integer")
	}
	sortOrder = q.Get("sortOrder")
	if sortOrder == "" {
		sortOrder = string(flexpay.SortAscending)
	}
	sinceToken = q.Get("sinceToken")
	return count, sortOrder, sinceToken, nil
}

// isAPIValidationCode distinguishes API-layer rejections, which come back as
// bare 400 outcomes, from processor declines, which come back as full
// declined transactions.
func isAPIValidationCode(code flexpay.ResponseCode) bool {
	switch code {
	case flexpay.ResponseCodeAPIInvalidCreditCardNumberLength,
		flexpay.ResponseCodeAPIInvalidPaymentMethod,
		flexpay.ResponseCodeAPIInvalidValueForPaymentToken,
		flexpay.ResponseCodeAPIInvalidDateFormat,
		flexpay.ResponseCodeAPIInvalidExpiryDate:
		return true
	}
	return false
}

func parseOptionalTimestamp(raw json.RawMessage) (flexpay.Nullable[flexpay.Timestamp], error) {
	if len(raw) == 0 {
		return flexpay.Nullable[flexpay.Timestamp]{}, nil
	}
	var ts flexpay.Nullable[flexpay.Timestamp]
	if err := json.Unmarshal(raw, &ts); err != nil {
		return flexpay.Nullable[flexpay.Timestamp]{}, err
	}
	return ts, nil
}
