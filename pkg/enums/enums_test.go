package enums

import "testing"

func TestParsePaymentMethod(t *testing.T) {
	for _, raw := range []string{"card", "cash"} {
		got, err := ParsePaymentMethod(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if !got.IsValid() {
			t.Fatalf("%q should be valid", raw)
		}
	}
	if _, err := ParsePaymentMethod("crypto"); err == nil {
		t.Fatal("expected error for unknown payment method")
	}
	if PaymentMethod("").IsValid() {
		t.Fatal("empty payment method must be invalid")
	}
}

func TestCategoryModifier(t *testing.T) {
	tests := map[Category]string{
		CategorySoftSkill:  "soft",
		CategoryHardSkill:  "hard",
		CategoryButton:     "button",
		CategoryAdditional: "additional",
		CategoryOther:      "other",
		Category("новое"):  "other",
	}
	for category, want := range tests {
		if got := category.Modifier(); got != want {
			t.Fatalf("category %q: expected modifier %q, got %q", category, want, got)
		}
	}
	if _, err := ParseCategory("кнопка"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOrderFieldSteps(t *testing.T) {
	if OrderFieldPayment.Step() != CheckoutStepDelivery || OrderFieldAddress.Step() != CheckoutStepDelivery {
		t.Fatal("payment and address belong to the delivery step")
	}
	if OrderFieldEmail.Step() != CheckoutStepContacts || OrderFieldPhone.Step() != CheckoutStepContacts {
		t.Fatal("email and phone belong to the contacts step")
	}
	if _, err := ParseOrderField("items"); err == nil {
		t.Fatal("items is not an editable field")
	}
}
