package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/exception"
)

var ErrInvalidBody = exception.ApplicationError{
	StatusCode: http.StatusBadRequest,
	Message:    "invalid request body",
}

// MakeHandlerFunc serves e over HTTP, encoding failures with ErrorResponse.
func MakeHandlerFunc(
	e endpoint.Endpoint,
	dec kithttp.DecodeRequestFunc,
	enc kithttp.EncodeResponseFunc,
) http.HandlerFunc {
	return kithttp.NewServer(
		e,
		dec,
		enc,
		kithttp.ServerErrorEncoder(ErrorResponse),
	).ServeHTTP
}

// DecodeRequest binds the JSON body into a new T. Bind errors that already
// carry an ApplicationError keep it; anything else is ErrInvalidBody.
func DecodeRequest[T any, PT interface {
	*T
	render.Binder
}](_ context.Context, r *http.Request) (interface{}, error) {
	req := PT(new(T))

	if err := render.Bind(r, req); err != nil {
		var appErr exception.ApplicationError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, ErrInvalidBody.WithCause(fmt.Errorf("decode request: %w", err))
	}

	return req, nil
}

// NoRequest is the decoder for endpoints without a body.
func NoRequest(_ context.Context, _ *http.Request) (interface{}, error) {
	return nil, nil
}
