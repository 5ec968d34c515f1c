package validators

import (
	"net/http"

	"github.com/angelmondragon/larek-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/larek-storefront/pkg/errors"
	"github.com/angelmondragon/larek-storefront/pkg/events"
)

type itemRequest struct {
	ID string `json:"id" validate:"required,max=64"`
}

// Field edits carry only the value; the field is named by the topic.
type fieldRequest struct {
	Value *string `json:"value" validate:"required,max=512"`
}

type intentDecoder func(r *http.Request) (any, error)

var intentDecoders = map[string]intentDecoder{
	events.CatalogItemSelected: decodeItemRef,
	events.CartItemRemove:      decodeItemRef,
	events.CatalogReload:       noPayload,
	events.PreviewToggle:       noPayload,
	events.CartOpen:            noPayload,
	events.CheckoutStart:       noPayload,
	events.DeliverySubmit:      noPayload,
	events.ContactsSubmit:      noPayload,
	events.ModalClose:          noPayload,
}

var fieldTopics = func() map[string]enums.OrderField {
	out := map[string]enums.OrderField{}
	for _, f := range []enums.OrderField{
		enums.OrderFieldPayment,
		enums.OrderFieldAddress,
		enums.OrderFieldEmail,
		enums.OrderFieldPhone,
	} {
		out[events.FieldChangedTopic(f)] = f
	}
	return out
}()

// DecodeIntent returns the bus payload for a user intent posted over HTTP.
// Topics the screen raises on its own, like modal-opened, are not accepted.
func DecodeIntent(topic string, r *http.Request) (any, error) {
	if field, ok := fieldTopics[topic]; ok {
		var req fieldRequest
		if err := DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return events.FieldChange{Field: field, Value: *req.Value}, nil
	}
	decode, ok := intentDecoders[topic]
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "unknown intent %q", topic)
	}
	return decode(r)
}

func decodeItemRef(r *http.Request) (any, error) {
	var req itemRequest
	if err := DecodeJSONBody(r, &req); err != nil {
		return nil, err
	}
	return events.ItemRef{ID: req.ID}, nil
}

func noPayload(*http.Request) (any, error) {
	return nil, nil
}
