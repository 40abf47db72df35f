package app

import (
	"Realm/internal/player/domain"
	"Realm/modules/kit/errx"
)

var (
	ErrMissingFields = domain.ErrInvalidParam
	ErrNameTooLong   = domain.ErrInvalidParam.WithMsg("Name must be at most 32 characters")
	ErrInvalidPlayer = domain.ErrInvalidParam.WithMsg("Invalid player ID")
	ErrInvalidCity   = domain.ErrInvalidParam.WithMsg("Invalid lastCity parameter")
	// ErrNoTile 随机落点多次冲突。
	ErrNoTile = errx.NewSys(errx.CodeInternal, "no free tile for capital")
)
