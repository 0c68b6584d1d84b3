package notify

import (
	"fmt"
	"net/url"

	proposalmodels "licibit/internal/proposal/models"
	tendermodels "licibit/internal/tender/models"
)

// Composer renders notification texts and WhatsApp deep links. Texts are the
// Spanish wire strings the existing clients show verbatim.
type Composer struct {
	whatsAppNumber string
}

func NewComposer(whatsAppNumber string) *Composer {
	return &Composer{whatsAppNumber: whatsAppNumber}
}

// SubmittedMessage is the text sent to the issuer when a supplier quotes.
func (c *Composer) SubmittedMessage(tender *tendermodels.Tender) string {
	return fmt.Sprintf("Has recibido una nueva cotización para tu licitación %q.", tender.Name)
}

// DecidedMessage is the text sent to the supplier after an issuer decision.
func (c *Composer) DecidedMessage(tender *tendermodels.Tender, state proposalmodels.State) string {
	switch state {
	case proposalmodels.StateAccepted:
		return fmt.Sprintf("Tu cotización para la licitación %q fue aceptada.", tender.Name)
	case proposalmodels.StateRejected:
		return fmt.Sprintf("Tu cotización para la licitación %q fue rechazada.", tender.Name)
	default:
		return fmt.Sprintf("Tu cotización para la licitación %q cambió de estado.", tender.Name)
	}
}

// WhatsAppLink builds a wa.me deep link that opens a chat with the platform
// number and the message prefilled. Empty when no number is configured.
func (c *Composer) WhatsAppLink(message string) string {
	if c.whatsAppNumber == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", c.whatsAppNumber, url.QueryEscape(message))
}
