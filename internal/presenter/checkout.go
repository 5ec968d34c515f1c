package presenter

import (
	"context"

	"github.com/angelmondragon/larek-storefront/internal/views"
	"github.com/angelmondragon/larek-storefront/pkg/enums"
	"github.com/angelmondragon/larek-storefront/pkg/errors"
	"github.com/angelmondragon/larek-storefront/pkg/events"
	"github.com/angelmondragon/larek-storefront/pkg/types"
)

// onCheckoutStart opens a new checkout instance with an empty draft.
func (p *Presenter) onCheckoutStart(any) error {
	if p.state != StateCartOpen {
		return stateConflict(events.CheckoutStart, p.state)
	}
	if p.cart.Quantity() == 0 {
		return errors.New(errors.CodeStateConflict, "cart is empty")
	}
	// the cart still holds the lines of an order the shop has not answered for
	if p.placing {
		return errors.New(errors.CodeStateConflict, "previous order is still being placed")
	}

	p.checkout++
	if err := p.order.Clear(); err != nil {
		return err
	}
	p.transition(StateDelivery)
	p.surfaces.Delivery.RenderDelivery(views.DeliveryData{})
	return p.surfaces.Modal.Open(views.ModalDelivery)
}

func (p *Presenter) onDeliveryFieldChanged(payload any) error {
	return p.editField(enums.CheckoutStepDelivery, payload)
}

func (p *Presenter) onContactsFieldChanged(payload any) error {
	return p.editField(enums.CheckoutStepContacts, payload)
}

// editField stores an edit made on step's form. Edits arriving for a form that
// is not on screen are dropped.
func (p *Presenter) editField(step enums.CheckoutStep, payload any) error {
	change, err := payloadAs[events.FieldChange](step.String()+" field edit", payload)
	if err != nil {
		return err
	}
	if change.Field.Step() != step {
		return errors.Newf(errors.CodeValidation, "field %q is not part of the %s step", change.Field, step).
			WithDetails(map[string]string{"field": change.Field.String()})
	}
	if current, ok := p.state.step(); !ok || current != step {
		p.logg.Debug(p.logCtx(map[string]any{"field": change.Field.String()}), "order.edit_ignored")
		return nil
	}
	return p.order.SetField(change.Field, change.Value)
}

// onOrderChanged validates the step on screen and re-renders its form. Errors
// of the other step are never shown.
func (p *Presenter) onOrderChanged(any) error {
	step, ok := p.state.step()
	if !ok {
		return nil
	}
	valid := p.order.ValidateStep(step)
	p.renderStep(step, valid, views.JoinErrors(p.order.Errors().For(step).Messages()))
	return nil
}

func (p *Presenter) renderStep(step enums.CheckoutStep, valid bool, errText string) {
	draft := p.order.Draft()
	switch step {
	case enums.CheckoutStepDelivery:
		p.surfaces.Delivery.RenderDelivery(views.DeliveryData{
			Payment:       draft.Payment.String(),
			Address:       draft.Address,
			Errors:        errText,
			SubmitEnabled: valid,
		})
	case enums.CheckoutStepContacts:
		p.surfaces.Contacts.RenderContacts(views.ContactsData{
			Email:         draft.Email,
			Phone:         draft.Phone,
			Errors:        errText,
			SubmitEnabled: valid,
		})
	}
}

func (p *Presenter) onDeliverySubmit(any) error {
	if p.state != StateDelivery {
		return stateConflict(events.DeliverySubmit, p.state)
	}
	if !p.order.ValidateDeliveryStep() {
		p.renderStep(enums.CheckoutStepDelivery, false, views.JoinErrors(p.order.Errors().Messages()))
		return nil
	}

	p.transition(StateContacts)
	// errors stay hidden until the user edits a contacts field
	p.renderStep(enums.CheckoutStepContacts, p.order.ValidateContactsStep(), "")
	return p.surfaces.Modal.Open(views.ModalContacts)
}

func (p *Presenter) onContactsSubmit(any) error {
	switch p.state {
	case StateSubmitting:
		p.logg.Debug(p.logCtx(nil), "order.double_submit_ignored")
		return nil
	case StateContacts:
	default:
		return stateConflict(events.ContactsSubmit, p.state)
	}
	if !p.order.ValidateContactsStep() {
		p.renderStep(enums.CheckoutStepContacts, false, views.JoinErrors(p.order.Errors().Messages()))
		return nil
	}

	p.order.SetItems(p.cart.IDs())
	p.order.SetTotal(p.cart.Total())
	draft := p.order.Submit()

	p.transition(StateSubmitting)
	p.surfaces.Contacts.RenderContacts(views.ContactsData{
		Email: draft.Email,
		Phone: draft.Phone,
		Busy:  true,
	})

	seq := p.checkout
	p.placing = true
	p.async.Go(p.ctx, func(ctx context.Context) func() {
		result, err := p.backend.PlaceOrder(ctx, draft)
		return func() {
			p.orderPlaced(seq, draft.Items, result, err)
		}
	})
	return nil
}

// orderPlaced applies the outcome of a PlaceOrder call. The modal may have
// been closed while the call was in flight; such results still take the
// ordered lines out of the cart but do not touch the screen.
func (p *Presenter) orderPlaced(seq uint64, items []string, result types.OrderResult, err error) {
	p.placing = false
	current := seq == p.checkout && p.state == StateSubmitting
	logCtx := p.logCtx(map[string]any{"checkout": seq})

	if err != nil {
		p.logg.Error(logCtx, "order.place_failed", err)
		if !current {
			return
		}
		p.transition(StateContacts)
		p.renderStep(enums.CheckoutStepContacts, p.order.ValidateContactsStep(), views.RetryMessage)
		return
	}

	p.logg.Info(p.logg.WithField(logCtx, "order_id", result.ID), "order.placed")
	if !current {
		// lines added after the submit are not part of this order
		for _, id := range items {
			if err := p.cart.Remove(id); err != nil {
				p.logg.Error(logCtx, "cart.remove_failed", err)
			}
		}
		if seq == p.checkout {
			if err := p.order.Clear(); err != nil {
				p.logg.Error(logCtx, "order.clear_failed", err)
			}
		}
		p.logg.Info(logCtx, "order.stale_confirmation_dropped")
		return
	}
	if err := p.cart.Clear(); err != nil {
		p.logg.Error(logCtx, "cart.clear_failed", err)
	}
	if err := p.order.Clear(); err != nil {
		p.logg.Error(logCtx, "order.clear_failed", err)
	}
	p.transition(StateConfirmation)
	p.surfaces.Success.RenderSuccess(views.NewSuccessData(result.Total))
	if err := p.surfaces.Modal.Open(views.ModalSuccess); err != nil {
		p.logg.Error(logCtx, "modal.open_failed", err)
	}
}
