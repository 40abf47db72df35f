package domain

import "Realm/modules/kit/errx"

type Code = errx.Code

const (
	CodeInvalidParam      Code = "CHAT_INVALID_PARAM"
	CodeInvalidRoom       Code = "CHAT_INVALID_ROOM"
	CodePlayerNotFound    Code = "CHAT_PLAYER_NOT_FOUND"
	CodeNotInAlliance     Code = "CHAT_NOT_IN_ALLIANCE"
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

var (
	ErrInvalidParam   = errx.NewBiz(CodeInvalidParam, "Missing required fields")
	ErrInvalidRoom    = errx.NewBiz(CodeInvalidRoom, "Invalid room type")
	ErrPlayerNotFound = errx.NewBiz(CodePlayerNotFound, "Player not found")
	ErrNotInAlliance  = errx.NewBiz(CodeNotInAlliance, "Player is not in an alliance")

	ErrSystemUnavailable = errx.ErrUnavailable
)
