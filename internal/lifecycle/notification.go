package lifecycle

import "time"

// Welcome message sent once per new inscription.
const (
	WelcomeSubject = "Welcome to the club"
	WelcomeBody    = "Hello,\n\n" +
		"Your inscription has been registered. Welcome to the club!\n" +
		"We will contact you soon with the details of the next events.\n\n" +
		"See you soon."
)

// InscriptionCreated is emitted when an inscription row is first created.
// Updates never produce one.
type InscriptionCreated struct {
	InscriptionID string
	MemberID      string
	Recipient     string
	Session       Session
	Subject       string
	Body          string
	OccurredAt    time.Time
}

// NewInscriptionCreated builds the event carrying the fixed welcome message.
func NewInscriptionCreated(inscriptionID, memberID, email string, session Session, at time.Time) InscriptionCreated {
	return InscriptionCreated{
		InscriptionID: inscriptionID,
		MemberID:      memberID,
		Recipient:     email,
		Session:       session,
		Subject:       WelcomeSubject,
		Body:          WelcomeBody,
		OccurredAt:    at,
	}
}
