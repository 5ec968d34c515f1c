package presenter

import (
	"context"

	"github.com/angelmondragon/larek-storefront/internal/views"
	"github.com/angelmondragon/larek-storefront/pkg/errors"
	"github.com/angelmondragon/larek-storefront/pkg/events"
	"github.com/angelmondragon/larek-storefront/pkg/types"
)

// loadCatalog fetches the product list. A failure leaves the current catalog
// in place; the user can ask again with catalog-reload.
func (p *Presenter) loadCatalog() {
	p.async.Go(p.ctx, func(ctx context.Context) func() {
		products, err := p.backend.FetchCatalog(ctx)
		return func() {
			if err != nil {
				p.logg.Error(p.logCtx(nil), "catalog.fetch_failed", err)
				return
			}
			if err := p.catalog.ReplaceCatalog(products); err != nil {
				p.logg.Error(p.logCtx(nil), "catalog.replace_failed", err)
			}
		}
	})
}

func (p *Presenter) onCatalogChanged(any) error {
	p.surfaces.Page.RenderCatalog(views.NewCatalogCards(p.catalog.Products()))
	p.surfaces.Page.SetCounter(p.cart.Quantity())
	return nil
}

func (p *Presenter) onCatalogReload(any) error {
	p.loadCatalog()
	return nil
}

func (p *Presenter) onItemSelected(payload any) error {
	ref, err := payloadAs[events.ItemRef](events.CatalogItemSelected, payload)
	if err != nil {
		return err
	}
	if p.state != StateBrowsing && p.state != StatePreviewing {
		return stateConflict(events.CatalogItemSelected, p.state)
	}
	product, ok := p.catalog.Product(ref.ID)
	if !ok {
		return errors.Newf(errors.CodeNotFound, "product %s not in catalog", ref.ID)
	}

	p.transition(StatePreviewing)
	if err := p.catalog.SelectPreview(product); err != nil {
		return err
	}
	p.refreshPreview(product.ID)
	return nil
}

// refreshPreview re-reads the previewed product from the backend. The result
// is dropped unless the same product is still on screen.
func (p *Presenter) refreshPreview(id string) {
	p.async.Go(p.ctx, func(ctx context.Context) func() {
		fresh, err := p.backend.FetchProduct(ctx, id)
		return func() {
			logCtx := p.logCtx(map[string]any{"product_id": id})
			if err != nil {
				p.logg.Error(logCtx, "preview.fetch_failed", err)
				return
			}
			if p.state != StatePreviewing || p.catalog.PreviewedID() != id {
				p.logg.Info(logCtx, "preview.stale_result_dropped")
				return
			}
			p.renderPreview(fresh)
		}
	})
}

func (p *Presenter) onPreviewChanged(payload any) error {
	product, err := payloadAs[types.Product](events.PreviewChanged, payload)
	if err != nil {
		return err
	}
	p.renderPreview(product)
	return p.surfaces.Modal.Open(views.ModalPreview)
}

func (p *Presenter) renderPreview(product types.Product) {
	p.surfaces.Preview.RenderPreview(views.NewPreviewData(product, p.cart.Has(product.ID)))
}

// onPreviewToggle puts the previewed product in the cart or takes it out.
// Priceless products cannot be bought; the button is disabled for them.
func (p *Presenter) onPreviewToggle(any) error {
	if p.state != StatePreviewing {
		return stateConflict(events.PreviewToggle, p.state)
	}
	product, ok := p.catalog.Product(p.catalog.PreviewedID())
	if !ok {
		return errors.New(errors.CodeNotFound, "no product previewed")
	}
	if p.cart.Has(product.ID) {
		return p.cart.Remove(product.ID)
	}
	if product.Priceless() {
		p.logg.Debug(p.logCtx(map[string]any{"product_id": product.ID}), "preview.priceless_ignored")
		return nil
	}
	return p.cart.Add(product)
}

func (p *Presenter) onCartChanged(any) error {
	p.renderCart()
	p.surfaces.Page.SetCounter(p.cart.Quantity())
	if p.state == StatePreviewing {
		if product, ok := p.catalog.Product(p.catalog.PreviewedID()); ok {
			p.renderPreview(product)
		}
	}
	return nil
}

func (p *Presenter) renderCart() {
	p.surfaces.Cart.RenderCart(views.NewCartData(p.cart.Items(), p.cart.Total()))
}

func (p *Presenter) onCartOpen(any) error {
	if p.state != StateBrowsing && p.state != StatePreviewing {
		return stateConflict(events.CartOpen, p.state)
	}
	if err := p.catalog.ClearPreview(); err != nil {
		return err
	}
	p.transition(StateCartOpen)
	p.renderCart()
	return p.surfaces.Modal.Open(views.ModalCart)
}

func (p *Presenter) onCartItemRemove(payload any) error {
	ref, err := payloadAs[events.ItemRef](events.CartItemRemove, payload)
	if err != nil {
		return err
	}
	if p.state != StateCartOpen {
		return stateConflict(events.CartItemRemove, p.state)
	}
	return p.cart.Remove(ref.ID)
}

func (p *Presenter) onModalOpened(any) error {
	p.surfaces.Page.SetLocked(true)
	return nil
}

// onModalClosed returns to browsing whatever the modal was showing. An order
// still in flight completes in the background.
func (p *Presenter) onModalClosed(any) error {
	p.surfaces.Page.SetLocked(false)
	p.transition(StateBrowsing)
	return p.catalog.ClearPreview()
}

func (p *Presenter) onModalClose(any) error {
	return p.surfaces.Modal.Close()
}
