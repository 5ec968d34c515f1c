package order

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/larek-storefront/pkg/enums"
)

// Draft is the order being assembled across the two checkout steps.
type Draft struct {
	Payment enums.PaymentMethod `json:"payment"`
	Address string              `json:"address"`
	Email   string              `json:"email"`
	Phone   string              `json:"phone"`
	Items   []string            `json:"items"`
	Total   decimal.Decimal     `json:"total"`
}

// Value returns the current text of field.
func (d Draft) Value(field enums.OrderField) string {
	switch field {
	case enums.OrderFieldPayment:
		return d.Payment.String()
	case enums.OrderFieldAddress:
		return d.Address
	case enums.OrderFieldEmail:
		return d.Email
	case enums.OrderFieldPhone:
		return d.Phone
	}
	return ""
}

func (d Draft) clone() Draft {
	d.Items = append([]string(nil), d.Items...)
	return d
}

// Errors maps a field to its message. A missing key means the field is valid.
type Errors map[enums.OrderField]string

// For returns the subset of errors that belong to step.
func (e Errors) For(step enums.CheckoutStep) Errors {
	out := Errors{}
	for field, msg := range e {
		if field.Step() == step {
			out[field] = msg
		}
	}
	return out
}

// Messages flattens the errors in field order, for display under a form.
func (e Errors) Messages() []string {
	var out []string
	for _, field := range []enums.OrderField{
		enums.OrderFieldPayment,
		enums.OrderFieldAddress,
		enums.OrderFieldEmail,
		enums.OrderFieldPhone,
	} {
		if msg, ok := e[field]; ok {
			out = append(out, msg)
		}
	}
	return out
}
