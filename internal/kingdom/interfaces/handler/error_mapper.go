package handler

import (
	"Realm/internal/kingdom/domain"
	"errors"
	nethttp "net/http"
)

func toHTTPStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidParam):
		return nethttp.StatusBadRequest
	case errors.Is(err, domain.ErrAccessDenied):
		return nethttp.StatusUnauthorized
	case errors.Is(err, domain.ErrKingdomNotFound):
		return nethttp.StatusNotFound
	default:
		return nethttp.StatusInternalServerError
	}
}
