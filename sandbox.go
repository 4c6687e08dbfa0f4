package flexpay

// SandboxCreditCard is a card number published for the gateway's sandbox
// environment. The table below is inert test configuration; it is never part
// of the runtime contract.
type SandboxCreditCard struct {
	CreditCardNumber string
	CVV              string
	ExpiryMonth      string
	ExpiryYear       string
}

// SandboxCreditCards are the known-good sandbox cards. Visa is the happy
// path; MasterCard simulates insufficient funds and Maestro an expired card.
var SandboxCreditCards = struct {
	Visa            SandboxCreditCard
	MasterCard      SandboxCreditCard
	Maestro         SandboxCreditCard
	AmericanExpress SandboxCreditCard
	Discover        SandboxCreditCard
}{
	Visa:            SandboxCreditCard{"4111111111111111", "123", "12", "2030"},
	MasterCard:      SandboxCreditCard{"5555555555554444", "789", "09", "2030"},
	Maestro:         SandboxCreditCard{"5105105105105100", "321", "03", "2030"},
	AmericanExpress: SandboxCreditCard{"378282246310005", "1234", "06", "2030"},
	Discover:        SandboxCreditCard{"6011111111111117", "456", "10", "2030"},
}
