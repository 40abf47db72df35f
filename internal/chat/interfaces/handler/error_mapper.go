package handler

import (
	"Realm/internal/chat/domain"
	"errors"
	nethttp "net/http"
)

func toHTTPStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidParam),
		errors.Is(err, domain.ErrInvalidRoom):
		return nethttp.StatusBadRequest
	case errors.Is(err, domain.ErrNotInAlliance):
		return nethttp.StatusForbidden
	case errors.Is(err, domain.ErrPlayerNotFound):
		return nethttp.StatusNotFound
	default:
		return nethttp.StatusInternalServerError
	}
}
