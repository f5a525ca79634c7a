package domain

// Buyer holds the contact details supplied at checkout.
type Buyer struct {
	Name  string
	Email string
}

// Valid reports whether the buyer details clear the client-side gate.
// Intentionally loose; the server is the authority on validation.
func (b Buyer) Valid() bool {
	return len(b.Name) > 1 && len(b.Email) > 5
}

// Purchase is a confirmed checkout, created server-side. The client keeps
// only its identifier in the local ledger.
type Purchase struct {
	ID            string
	ReservationID string
	Buyer         Buyer
	Status        string
	Total         int64
	TicketCodes   []string
}
