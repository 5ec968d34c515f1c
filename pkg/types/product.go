package types

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/larek-storefront/pkg/enums"
)

// Product is a catalog item as delivered by the shop API. An invalid Price marks
// a priceless product: shown in the catalog, never purchasable.
type Product struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Category    enums.Category      `json:"category"`
	Price       decimal.NullDecimal `json:"price"`
}

// Priceless reports whether the product carries no price.
func (p Product) Priceless() bool {
	return !p.Price.Valid
}

// PriceOrZero returns the price, or zero for priceless products.
func (p Product) PriceOrZero() decimal.Decimal {
	if !p.Price.Valid {
		return decimal.Zero
	}
	return p.Price.Decimal
}

// Priced is a convenience for building products with a price.
func Priced(amount int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(amount))
}

// OrderResult is what the shop API returns after accepting an order.
type OrderResult struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}
