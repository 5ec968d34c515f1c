package presenter

import "github.com/angelmondragon/larek-storefront/pkg/enums"

// State is a node of the checkout state machine.
type State string

const (
	StateBrowsing     State = "browsing"
	StatePreviewing   State = "previewing"
	StateCartOpen     State = "cart-open"
	StateDelivery     State = "delivery"
	StateContacts     State = "contacts"
	StateSubmitting   State = "submitting"
	StateConfirmation State = "confirmation"
)

// step returns the form step the state edits, if any.
func (s State) step() (enums.CheckoutStep, bool) {
	switch s {
	case StateDelivery:
		return enums.CheckoutStepDelivery, true
	case StateContacts:
		return enums.CheckoutStepContacts, true
	}
	return "", false
}
