package handler

import (
	"Realm/internal/account/app"
	"errors"
	nethttp "net/http"
)

func toHTTPStatus(err error) int {
	switch {
	case errors.Is(err, app.ErrInvalidParam), errors.Is(err, app.ErrUserExist):
		return nethttp.StatusBadRequest
	case errors.Is(err, app.ErrInvalidCredentials), errors.Is(err, app.ErrUnauthorized):
		return nethttp.StatusUnauthorized
	default:
		return nethttp.StatusInternalServerError
	}
}
