package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/larek-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/larek-storefront/pkg/errors"
	"github.com/angelmondragon/larek-storefront/pkg/events"
)

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeIntentItemRef(t *testing.T) {
	payload, err := DecodeIntent(events.CatalogItemSelected, post(`{"id":"854cef69"}`))
	require.NoError(t, err)
	assert.Equal(t, events.ItemRef{ID: "854cef69"}, payload)

	_, err = DecodeIntent(events.CartItemRemove, post(`{}`))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeIntentFieldChangeTakesFieldFromTopic(t *testing.T) {
	payload, err := DecodeIntent("contacts.email-changed", post(`{"value":"a@b.co"}`))
	require.NoError(t, err)
	assert.Equal(t, events.FieldChange{Field: enums.OrderFieldEmail, Value: "a@b.co"}, payload)

	payload, err = DecodeIntent("delivery.address-changed", post(`{"value":""}`))
	require.NoError(t, err, "an empty value is a legitimate edit")
	assert.Equal(t, events.FieldChange{Field: enums.OrderFieldAddress}, payload)

	_, err = DecodeIntent("delivery.payment-changed", post(`{"field":"email","value":"card"}`))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "unknown fields are rejected")
}

func TestDecodeIntentWithoutPayload(t *testing.T) {
	payload, err := DecodeIntent(events.CheckoutStart, post(""))
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestDecodeIntentRejectsUnknownAndInternalTopics(t *testing.T) {
	for _, topic := range []string{"nope", events.ModalOpened, events.CartChanged, "contacts.address-changed"} {
		_, err := DecodeIntent(topic, post(""))
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), topic)
	}
}

func TestDecodeJSONBodyMissingBody(t *testing.T) {
	var req itemRequest
	err := DecodeJSONBody(post(""), &req)
	require.Error(t, err)
	assert.Equal(t, "request body is required", pkgerrors.As(err).Message())
}
