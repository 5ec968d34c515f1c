package order

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/larek-storefront/pkg/enums"
	"github.com/angelmondragon/larek-storefront/pkg/errors"
	"github.com/angelmondragon/larek-storefront/pkg/events"
)

// Publisher is the slice of the event bus the store needs.
type Publisher interface {
	Publish(name string, payload any) error
}

// Store owns the order draft and the errors of the last step validation.
// Field edits never validate; validation is an explicit call per step.
type Store struct {
	bus      Publisher
	validate *validator.Validate
	draft    Draft
	errors   Errors
}

func NewStore(bus Publisher) *Store {
	return &Store{bus: bus, validate: newValidator(), errors: Errors{}}
}

// SetField assigns value and publishes order:changed with the edit.
func (s *Store) SetField(field enums.OrderField, value string) error {
	switch field {
	case enums.OrderFieldPayment:
		s.draft.Payment = enums.PaymentMethod(value)
	case enums.OrderFieldAddress:
		s.draft.Address = value
	case enums.OrderFieldEmail:
		s.draft.Email = value
	case enums.OrderFieldPhone:
		s.draft.Phone = value
	default:
		return errors.Newf(errors.CodeInternal, "unknown order field %q", field)
	}
	return s.bus.Publish(events.OrderChanged, events.FieldChange{Field: field, Value: value})
}

// ValidateDeliveryStep replaces the errors with those of payment and address.
func (s *Store) ValidateDeliveryStep() bool {
	s.errors = check(s.validate, deliveryInput(s.draft))
	return len(s.errors) == 0
}

// ValidateContactsStep replaces the errors with those of email and phone.
func (s *Store) ValidateContactsStep() bool {
	s.errors = check(s.validate, contactsInput(s.draft))
	return len(s.errors) == 0
}

// ValidateStep dispatches to the validation of step.
func (s *Store) ValidateStep(step enums.CheckoutStep) bool {
	if step == enums.CheckoutStepContacts {
		return s.ValidateContactsStep()
	}
	return s.ValidateDeliveryStep()
}

// Errors returns a copy of the last validation result.
func (s *Store) Errors() Errors {
	out := make(Errors, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// SetItems snapshots the product ids being ordered.
func (s *Store) SetItems(ids []string) {
	s.draft.Items = append([]string(nil), ids...)
}

func (s *Store) SetTotal(total decimal.Decimal) {
	s.draft.Total = total
}

// Clear resets the draft and errors and publishes order:cleared.
func (s *Store) Clear() error {
	s.draft = Draft{}
	s.errors = Errors{}
	return s.bus.Publish(events.OrderCleared, nil)
}

// Draft returns a copy of the current draft for reading.
func (s *Store) Draft() Draft {
	return s.draft.clone()
}

// Submit returns the draft as it should be sent to the backend.
func (s *Store) Submit() Draft {
	return s.draft.clone()
}
