package views

// ModalKind names the content currently shown in the modal.
type ModalKind string

const (
	ModalPreview  ModalKind = "preview"
	ModalCart     ModalKind = "cart"
	ModalDelivery ModalKind = "delivery"
	ModalContacts ModalKind = "contacts"
	ModalSuccess  ModalKind = "success"
)

// Page is the always visible part of the storefront.
type Page interface {
	RenderCatalog(cards []CatalogCard)
	SetCounter(n int)
	SetLocked(locked bool)
}

// Modal shows one piece of content at a time. Open on a closed modal emits
// modal-opened; Close on an open one emits modal-closed.
type Modal interface {
	Open(kind ModalKind) error
	Close() error
	Current() (ModalKind, bool)
}

type CatalogPreview interface {
	RenderPreview(data PreviewData)
}

type CartPanel interface {
	RenderCart(data CartData)
}

type DeliveryForm interface {
	RenderDelivery(data DeliveryData)
}

type ContactsForm interface {
	RenderContacts(data ContactsData)
}

type SuccessView interface {
	RenderSuccess(data SuccessData)
}

// Surfaces bundles every surface the presenter drives.
type Surfaces struct {
	Page     Page
	Modal    Modal
	Preview  CatalogPreview
	Cart     CartPanel
	Delivery DeliveryForm
	Contacts ContactsForm
	Success  SuccessView
}
