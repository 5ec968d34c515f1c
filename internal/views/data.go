package views

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/larek-storefront/pkg/types"
)

const (
	pricelessLabel = "Priceless"
	emptyCartLabel = "Cart is empty"
	buyLabel       = "Buy"
	removeLabel    = "Remove from cart"

	// RetryMessage is shown on the contacts form after a failed order placement.
	RetryMessage = "order could not be placed, try again"
)

type CatalogCard struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Image      string `json:"image"`
	Category   string `json:"category"`
	Modifier   string `json:"modifier"`
	PriceLabel string `json:"price"`
}

type PreviewData struct {
	CatalogCard
	Description    string `json:"description"`
	InCart         bool   `json:"in_cart"`
	ButtonLabel    string `json:"button_label"`
	ButtonDisabled bool   `json:"button_disabled"`
}

type CartLine struct {
	Index      int    `json:"index"`
	ID         string `json:"id"`
	Title      string `json:"title"`
	PriceLabel string `json:"price"`
}

type CartData struct {
	Lines            []CartLine `json:"lines"`
	Empty            string     `json:"empty,omitempty"`
	TotalLabel       string     `json:"total"`
	CheckoutDisabled bool       `json:"checkout_disabled"`
}

type DeliveryData struct {
	Payment       string `json:"payment"`
	Address       string `json:"address"`
	Errors        string `json:"errors"`
	SubmitEnabled bool   `json:"submit_enabled"`
}

type ContactsData struct {
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Errors        string `json:"errors"`
	SubmitEnabled bool   `json:"submit_enabled"`
	Busy          bool   `json:"busy"`
}

type SuccessData struct {
	Description string `json:"description"`
}

// PriceLabel renders a product price for display.
func PriceLabel(price decimal.NullDecimal) string {
	if !price.Valid {
		return pricelessLabel
	}
	return Synapses(price.Decimal)
}

// Synapses renders an amount in the shop's currency.
func Synapses(amount decimal.Decimal) string {
	return fmt.Sprintf("%s synapses", amount.String())
}

// JoinErrors renders form errors as the single line shown under a form.
func JoinErrors(messages []string) string {
	return strings.Join(messages, "; ")
}

func NewCatalogCard(p types.Product) CatalogCard {
	return CatalogCard{
		ID:         p.ID,
		Title:      p.Title,
		Image:      p.Image,
		Category:   p.Category.String(),
		Modifier:   p.Category.Modifier(),
		PriceLabel: PriceLabel(p.Price),
	}
}

func NewCatalogCards(products []types.Product) []CatalogCard {
	cards := make([]CatalogCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, NewCatalogCard(p))
	}
	return cards
}

// NewPreviewData builds the preview of p. Priceless products get a disabled
// buy button.
func NewPreviewData(p types.Product, inCart bool) PreviewData {
	data := PreviewData{
		CatalogCard: NewCatalogCard(p),
		Description: p.Description,
		InCart:      inCart,
		ButtonLabel: buyLabel,
	}
	if inCart {
		data.ButtonLabel = removeLabel
	}
	if p.Priceless() && !inCart {
		data.ButtonDisabled = true
	}
	return data
}

func NewCartData(items []types.Product, total decimal.Decimal) CartData {
	data := CartData{
		Lines:      make([]CartLine, 0, len(items)),
		TotalLabel: Synapses(total),
	}
	for i, p := range items {
		data.Lines = append(data.Lines, CartLine{
			Index:      i + 1,
			ID:         p.ID,
			Title:      p.Title,
			PriceLabel: PriceLabel(p.Price),
		})
	}
	if len(items) == 0 {
		data.Empty = emptyCartLabel
		data.CheckoutDisabled = true
	}
	return data
}

func NewSuccessData(total decimal.Decimal) SuccessData {
	return SuccessData{Description: "Charged " + Synapses(total)}
}
