package handler

import (
	"Realm/internal/player/domain"
	"errors"
	nethttp "net/http"
)

func toHTTPStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidParam):
		return nethttp.StatusBadRequest
	case errors.Is(err, domain.ErrPlayerNotOwned):
		return nethttp.StatusUnauthorized
	case errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrCityNotFound):
		return nethttp.StatusNotFound
	default:
		return nethttp.StatusInternalServerError
	}
}
