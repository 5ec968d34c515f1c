package events

import "github.com/angelmondragon/larek-storefront/pkg/enums"

// Store change notifications. Published after the mutation is fully applied.
const (
	CatalogChanged = "catalog:changed"
	PreviewChanged = "preview:changed"
	PreviewCleared = "preview:cleared"
	CartChanged    = "cart:changed"
	OrderChanged   = "order:changed"
	OrderCleared   = "order:cleared"
)

// Intent topics emitted by presentation surfaces.
const (
	CatalogItemSelected = "catalog-item-selected"
	CatalogReload       = "catalog-reload"
	PreviewToggle       = "preview-toggle"
	CartOpen            = "cart-open"
	CartItemRemove      = "cart-item-remove"
	CheckoutStart       = "checkout-start"
	DeliverySubmit      = "delivery-submit"
	ContactsSubmit      = "contacts-submit"
	ModalClose          = "modal-close"
	ModalOpened         = "modal-opened"
	ModalClosed         = "modal-closed"
)

// Field edit intents are published as "<step>.<field>-changed".
var (
	DeliveryFieldChanged = MustPattern(`^delivery\.(payment|address)-changed$`)
	ContactsFieldChanged = MustPattern(`^contacts\.(email|phone)-changed$`)
)

// FieldChangedTopic returns the intent topic a form publishes when field is edited.
func FieldChangedTopic(field enums.OrderField) string {
	return field.Step().String() + "." + field.String() + "-changed"
}

// FieldChange is the payload of field edit intents and of OrderChanged.
type FieldChange struct {
	Field enums.OrderField `json:"field" validate:"required"`
	Value string           `json:"value"`
}

// ItemRef is the payload of intents that point at a single product.
type ItemRef struct {
	ID string `json:"id" validate:"required"`
}
