package presenter

import (
	"github.com/angelmondragon/larek-storefront/pkg/errors"
)

// payloadAs narrows a bus payload. A mismatch is a wiring defect.
func payloadAs[T any](topic string, payload any) (T, error) {
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}
	var zero T
	return zero, errors.Newf(errors.CodeInternal, "%s: unexpected payload %T", topic, payload)
}

func stateConflict(topic string, state State) error {
	return errors.Newf(errors.CodeStateConflict, "%s not allowed while %s", topic, state).
		WithDetails(map[string]any{"state": string(state)})
}
