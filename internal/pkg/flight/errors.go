package flight

import (
	"fmt"
	"net/http"

	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/exception"
)

var ErrMalformedOffer = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "provider returned an offer that cannot be normalized",
}

// MalformedOfferError identifies the first offer of a response that lacks a
// field normalization depends on.
type MalformedOfferError struct {
	Index   int
	OfferID string
	Reason  string
}

func (e *MalformedOfferError) Error() string {
	return fmt.Sprintf("%s: offer %d (id %q): %s", ErrMalformedOffer.Message, e.Index, e.OfferID, e.Reason)
}

func (e *MalformedOfferError) Unwrap() error {
	return ErrMalformedOffer
}

func (e *MalformedOfferError) ErrorDetail() string {
	return fmt.Sprintf("offer %d: %s", e.Index, e.Reason)
}
