package domain

import "Realm/modules/kit/errx"

type Code = errx.Code

const (
	CodePlayerNotFound    Code = "PLAYER_NOT_FOUND"
	CodePlayerNotOwned    Code = "PLAYER_NOT_OWNED"
	CodeCityNotFound      Code = "PLAYER_CITY_NOT_FOUND"
	CodeInvalidParam      Code = "PLAYER_INVALID_PARAM"
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

var (
	ErrPlayerNotFound = errx.NewBiz(CodePlayerNotFound, "Player not found")
	ErrPlayerNotOwned = errx.NewBiz(CodePlayerNotOwned, "Unauthorized")
	ErrCityNotFound   = errx.NewBiz(CodeCityNotFound, "City not found or does not belong to player")
	ErrInvalidParam   = errx.NewBiz(CodeInvalidParam, "Missing required fields")

	ErrSystemUnavailable = errx.ErrUnavailable
)
