package enums

import "fmt"

// OrderField names an editable field of the order draft.
type OrderField string

const (
	OrderFieldPayment OrderField = "payment"
	OrderFieldAddress OrderField = "address"
	OrderFieldEmail   OrderField = "email"
	OrderFieldPhone   OrderField = "phone"
)

// CheckoutStep is one of the two form steps of checkout.
type CheckoutStep string

const (
	CheckoutStepDelivery CheckoutStep = "delivery"
	CheckoutStepContacts CheckoutStep = "contacts"
)

var orderFieldSteps = map[OrderField]CheckoutStep{
	OrderFieldPayment: CheckoutStepDelivery,
	OrderFieldAddress: CheckoutStepDelivery,
	OrderFieldEmail:   CheckoutStepContacts,
	OrderFieldPhone:   CheckoutStepContacts,
}

// String implements fmt.Stringer.
func (f OrderField) String() string {
	return string(f)
}

// IsValid reports whether the value is a known OrderField.
func (f OrderField) IsValid() bool {
	_, ok := orderFieldSteps[f]
	return ok
}

// Step returns the checkout step whose form owns the field.
func (f OrderField) Step() CheckoutStep {
	return orderFieldSteps[f]
}

// ParseOrderField converts raw input into an OrderField.
func ParseOrderField(value string) (OrderField, error) {
	f := OrderField(value)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid order field %q", value)
	}
	return f, nil
}

// String implements fmt.Stringer.
func (s CheckoutStep) String() string {
	return string(s)
}
