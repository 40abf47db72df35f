package handler

import (
	"Realm/internal/city/domain"
	"errors"
	nethttp "net/http"
)

func toHTTPStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidParam), errors.Is(err, domain.ErrRuleRejected):
		return nethttp.StatusBadRequest
	case errors.Is(err, domain.ErrCityNotOwned):
		return nethttp.StatusUnauthorized
	case errors.Is(err, domain.ErrCityNotFound),
		errors.Is(err, domain.ErrBuildingNotFound),
		errors.Is(err, domain.ErrResearchNotFound):
		return nethttp.StatusNotFound
	default:
		return nethttp.StatusInternalServerError
	}
}
