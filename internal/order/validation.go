package order

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/larek-storefront/pkg/enums"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^(\+7|8)[\d\s-]{10,}$`)
)

type deliveryFields struct {
	Payment string `field:"payment" validate:"required,oneof=card cash"`
	Address string `field:"address" validate:"required"`
}

type contactsFields struct {
	Email string `field:"email" validate:"required,larek_email"`
	Phone string `field:"phone" validate:"required,larek_phone"`
}

var messages = map[enums.OrderField]map[string]string{
	enums.OrderFieldPayment: {"": "select a payment method"},
	enums.OrderFieldAddress: {"": "enter a delivery address"},
	enums.OrderFieldEmail: {
		"required":    "enter an email",
		"larek_email": "enter a valid email",
	},
	enums.OrderFieldPhone: {
		"required":    "enter a phone number",
		"larek_phone": "enter a valid phone number",
	},
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("field"); name != "" {
			return name
		}
		return f.Name
	})
	mustRegister(v, "larek_email", emailPattern)
	mustRegister(v, "larek_phone", phonePattern)
	return v
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

func deliveryInput(d Draft) deliveryFields {
	return deliveryFields{
		Payment: d.Payment.String(),
		Address: strings.TrimSpace(d.Address),
	}
}

func contactsInput(d Draft) contactsFields {
	return contactsFields{Email: d.Email, Phone: d.Phone}
}

// check runs v over input and turns field failures into display messages.
func check(v *validator.Validate, input any) Errors {
	out := Errors{}
	err := v.Struct(input)
	if err == nil {
		return out
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		panic(err)
	}
	for _, fe := range fieldErrs {
		field := enums.OrderField(fe.Field())
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = messageFor(field, fe.Tag())
	}
	return out
}

func messageFor(field enums.OrderField, tag string) string {
	table := messages[field]
	if msg, ok := table[tag]; ok {
		return msg
	}
	return table[""]
}
