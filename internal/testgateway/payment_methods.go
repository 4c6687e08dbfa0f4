package testgateway

import (
	"encoding/json"
	"net/http"

	flexpay "github.com/flexpay/flexpay-go"
)

// createPaymentMethodBody mirrors the create endpoint's wrapper; exactly one
// of the two variants is expected inside it.
type createPaymentMethodBody struct {
	PaymentMethod struct {
		CustomerID           string                        `json:"customerId"`
		CreditCard           *flexpay.CreditCard           `json:"creditCard"`
		GatewayPaymentMethod *flexpay.GatewayPaymentMethod `json:"gatewayPaymentMethod"`
	} `json:"paymentMethod"`
}

func (s *Server) handleCreatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var body createPaymentMethodBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeOutcome(w, http.StatusBadRequest, flexpay.ResponseCodeAPIInvalidPaymentMethod, "Malformed payment method payload.")
		return
	}

	switch {
	case body.PaymentMethod.CreditCard != nil:
		s.createCreditCardPaymentMethod(w, body.PaymentMethod.CustomerID, body.PaymentMethod.CreditCard)
	case body.PaymentMethod.GatewayPaymentMethod != nil:
		s.createTokenizedPaymentMethod(w, body.PaymentMethod.CustomerID, body.PaymentMethod.GatewayPaymentMethod)
	default:
		writeOutcome(w, http.StatusBadRequest, flexpay.ResponseCodeAPIInvalidPaymentMethod, "A creditCard or gatewayPaymentMethod is required.")
	}
}

func (s *Server) createCreditCardPaymentMethod(w http.ResponseWriter, customerID string, card *flexpay.CreditCard) {
	if len(card.CreditCardNumber) < 13 {
		writeOutcome(w, http.StatusBadRequest, flexpay.ResponseCodeAPIInvalidCreditCardNumberLength, "Invalid credit card number length.")
		return
	}

	pm := &flexpay.PaymentMethod{
		PaymentMethodID:   newID("PM"),
		CustomerID:        customerID,
		PaymentMethodType: "creditcard",
		StorageState:      flexpay.StorageStateRetained,
		CreditCardNumber:  maskCardNumber(card.CreditCardNumber),
		FirstSixDigits:    card.CreditCardNumber[:6],
		LastFourDigits:    card.CreditCardNumber[len(card.CreditCardNumber)-4:],
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

	s.writePaymentMethodOutcome(w, http.StatusOK, pm)
}

func (s *Server) createTokenizedPaymentMethod(w http.ResponseWriter, customerID string, ref *flexpay.GatewayPaymentMethod) {
	fullName, _ := ref.FullName.Value()
	firstName, _ := ref.FirstName.Value()
	lastName, _ := ref.LastName.Value()
	if fullName == "" && (firstName == "" || lastName == "") {
		writeOutcome(w, http.StatusBadRequest, flexpay.ResponseCodeAPIFullNameOrFirstLastRequired, "A full name or a first and last name is required.")
		return
	}

	pm := &flexpay.PaymentMethod{
		PaymentMethodID:            newID("PM"),
		CustomerID:                 customerID,
		PaymentMethodType:          "gateway",
		StorageState:               flexpay.StorageStateRetained,
		FirstSixDigits:             ref.FirstSixDigits,
		LastFourDigits:             ref.LastFourDigits,
		ExpiryMonth:                ref.ExpiryMonth,
		ExpiryYear:                 ref.ExpiryYear,
		GatewayPaymentMethodID:     flexpay.NullableOf(ref.GatewayPaymentMethodID),
		MerchantAccountReferenceID: flexpay.NullableOf(ref.MerchantAccountReferenceID),
		FirstName:                  ref.FirstName,
		LastName:                   ref.LastName,
		FullName:                   ref.FullName,
		Address1:                   ref.Address1,
		Address2:                   ref.Address2,
		City:                       ref.City,
		State:                      ref.State,
		PostalCode:                 ref.PostalCode,
		Country:                    ref.Country,
		Email:                      ref.Email,
		PhoneNumber:                ref.PhoneNumber,
		DateCreated:                now(),
	}

	s.mu.Lock()
	s.paymentMethods[pm.PaymentMethodID] = pm
	s.pmOrder = append(s.pmOrder, pm.PaymentMethodID)
	s.mu.Unlock()

	s.writePaymentMethodOutcome(w, http.StatusOK, pm)
}

func (s *Server) handleGetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	pm, ok := s.paymentMethods[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		writeOutcome(w, http.StatusNotFound, flexpay.ResponseCodeAPIPaymentMethodNotFound, "Payment method not found.")
		return
	}
	s.writePaymentMethodOutcome(w, http.StatusOK, pm)
}

func (s *Server) handleListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	count, sortOrder, sinceToken, err := listQuery(r)
	if err != nil {
		writeOutcome(w, http.StatusBadRequest, flexpay.ResponseCodeAPIInvalidPaymentMethod, err.Error())
		return
	}

	s.mu.Lock()
	ids, ok := paginate(s.pmOrder, sinceToken, count, sortOrder)
	page := make([]flexpay.PaymentMethod, 0, len(ids))
	for _, id := range ids {
		page = append(page, *s.paymentMethods[id])
	}
	s.mu.Unlock()

	if !ok {
		writeOutcome(w, http.StatusBadRequest, flexpay.ResponseCodeAPIPaymentMethodNotFound, "Unknown sinceToken.")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		flexpay.Envelope
		PaymentMethods []flexpay.PaymentMethod `json:"paymentMethods"`
	}{
		Envelope:       approvedEnvelope("Success."),
		PaymentMethods: page,
	})
}

func (s *Server) handleUpdatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req flexpay.UpdatePaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOutcome(w, http.StatusBadRequest, flexpay.ResponseCodeAPIInvalidPaymentMethod, "Malformed update payload.")
		return
	}

	s.mu.Lock()
	pm, ok := s.paymentMethods[r.PathValue("id")]
	if ok {
		applyUpdate(pm, &req)
	}
	s.mu.Unlock()

	if !ok {
		writeOutcome(w, http.StatusNotFound, flexpay.ResponseCodeAPIPaymentMethodNotFound, "Payment method not found.")
		return
	}
	s.writePaymentMethodOutcome(w, http.StatusOK, pm)
}

func applyUpdate(pm *flexpay.PaymentMethod, req *flexpay.UpdatePaymentMethodRequest) {
	if v, ok := req.ExpiryMonth.Value(); ok {
		pm.ExpiryMonth = v
	}
	if v, ok := req.ExpiryYear.Value(); ok {
		pm.ExpiryYear = v
	}
	if req.FirstName.IsSet() {
		pm.FirstName = req.FirstName
	}
	if req.LastName.IsSet() {
		pm.LastName = req.LastName
	}
	if req.FullName.IsSet() {
		pm.FullName = req.FullName
	}
	if v, ok := req.Address1.Value(); ok {
		pm.Address1 = v
	}
	if req.Address2.IsSet() {
		pm.Address2 = req.Address2
	}
	if v, ok := req.City.Value(); ok {
		pm.City = v
	}
	if v, ok := req.State.Value(); ok {
		pm.State = v
	}
	if v, ok := req.PostalCode.Value(); ok {
		pm.PostalCode = v
	}
	if v, ok := req.Country.Value(); ok {
		pm.Country = v
	}
	if req.Email.IsSet() {
		pm.Email = req.Email
	}
	if req.PhoneNumber.IsSet() {
		pm.PhoneNumber = req.PhoneNumber
	}
}

func (s *Server) handleRedactPaymentMethod(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	pm, ok := s.paymentMethods[r.PathValue("id")]
	if ok {
		pm.CreditCardNumber = ""
		pm.FirstSixDigits = ""
		pm.LastFourDigits = ""
		pm.Email = flexpay.NullOf[string]()
		pm.PhoneNumber = flexpay.NullOf[string]()
		pm.StorageState = flexpay.StorageStateRedacted
		delete(s.pmCVV, pm.PaymentMethodID)
	}
	s.mu.Unlock()

	if !ok {
		writeOutcome(w, http.StatusNotFound, flexpay.ResponseCodeAPIPaymentMethodNotFound, "Payment method not found.")
		return
	}
	s.writePaymentMethodOutcome(w, http.StatusOK, pm)
}

func (s *Server) handleRecacheCVV(w http.ResponseWriter, r *http.Request) {
	var req flexpay.RecacheCVVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOutcome(w, http.StatusBadRequest, flexpay.ResponseCodeAPIInvalidPaymentMethod, "Malformed recache payload.")
		return
	}

	s.mu.Lock()
	pm, ok := s.paymentMethods[r.PathValue("id")]
	if ok {
		if cvv, present := req.CVV.Value(); present {
			s.pmCVV[pm.PaymentMethodID] = cvv
		} else {
			delete(s.pmCVV, pm.PaymentMethodID)
		}
	}
	s.mu.Unlock()

	if !ok {
		writeOutcome(w, http.StatusNotFound, flexpay.ResponseCodeAPIPaymentMethodNotFound, "Payment method not found.")
		return
	}
	s.writePaymentMethodOutcome(w, http.StatusOK, pm)
}

func (s *Server) writePaymentMethodOutcome(w http.ResponseWriter, status int, pm *flexpay.PaymentMethod) {
	resp := flexpay.PaymentMethodResponse{
		Envelope:          approvedEnvelope("Success."),
		TransactionID:     newID("TX"),
		TransactionDate:   now(),
		TransactionStatus: flexpay.TransactionStatusApproved,
		PaymentMethod:     *pm,
	}
	writeJSON(w, status, resp)
}

func approvedEnvelope(message string) flexpay.Envelope {
	return flexpay.Envelope{
		ResponseCode: flexpay.ResponseCodeApproved,
		Message:      message,
	}
}

func maskCardNumber(number string) string {
	masked := []byte(number)
	for i := 6; i < len(masked)-4; i++ {
		masked[i] = '*'
	}
	return string(masked)
}
