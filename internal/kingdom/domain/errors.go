package domain

import "Realm/modules/kit/errx"

type Code = errx.Code

const (
	CodeKingdomNotFound   Code = "KINGDOM_NOT_FOUND"
	CodeAccessDenied      Code = "KINGDOM_ACCESS_DENIED"
	CodeInvalidParam      Code = "KINGDOM_INVALID_PARAM"
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

var (
	ErrKingdomNotFound   = errx.NewBiz(CodeKingdomNotFound, "Kingdom not found")
	ErrAccessDenied      = errx.NewBiz(CodeAccessDenied, "Access denied")
	ErrInvalidParam      = errx.NewBiz(CodeInvalidParam, "Invalid kingdom ID")
	ErrSystemUnavailable = errx.ErrUnavailable
)
