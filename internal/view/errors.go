package view

import (
	"errors"

	"rag-iishka-client/internal/client"
	"rag-iishka-client/internal/gateway"
	"rag-iishka-client/internal/service"
)

// ErrorMessage turns an operation error into text for the user. Backend
// messages are shown verbatim; fallback is used when the backend gave none.
func (c *Catalog) ErrorMessage(err error, fallback Key) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, gateway.ErrSessionExpired):
		return c.T(MsgSessionExpired)
	case errors.Is(err, service.ErrResultNotFound):
		return c.T(fallback)
	case errors.Is(err, gateway.ErrNetwork):
		return c.T(MsgConnectionFailed)
	case errors.Is(err, client.ErrNoFile):
		return c.T(MsgSelectFile)
	case errors.Is(err, client.ErrInvalidInput):
		return c.T(MsgInvalidInput)
	}

	if apiErr, ok := client.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return c.T(fallback)
}
