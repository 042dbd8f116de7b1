package entity

import "errors"

var (
	// ErrMalformedPayload: inbound event missing record.coincidencia_id.
	ErrMalformedPayload = errors.New("malformed event payload")

	// ErrMatchNotFound: no vista_coincidencias_potenciales row for the id,
	// or the lookup itself failed. Fatal for the invocation.
	ErrMatchNotFound = errors.New("match not found")

	// ErrTokenNotFound: the lost-report owner has no registered push token,
	// or the lookup itself failed. Fatal for the invocation.
	ErrTokenNotFound = errors.New("user push token not found")

	// ErrDeliveryFailure: the push gateway rejected the message or could not
	// be reached. Swallowed by default, see service.propagateDeliveryErrors.
	ErrDeliveryFailure = errors.New("push delivery failed")
)
