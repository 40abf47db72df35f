package app

import "Realm/modules/kit/errx"

// Code 表示应用层错误码（通常更贴近“业务语义/对外协议”）。
type Code = errx.Code

const (
	CodeInvalidParam       Code = "AUTH_INVALID_PARAM"
	CodeUserExist          Code = "AUTH_USER_EXIST"
	CodeInvalidCredentials Code = "AUTH_INVALID_CREDENTIAL"
	CodeUnauthorized       Code = "AUTH_UNAUTHORIZED"
	// CodeInternalServer 复用 kit 的统一系统码（跨服务一致，便于告警/排障）。
	CodeInternalServer Code = errx.CodeInternal
	CodeUnavailable    Code = errx.CodeUnavailable
)

type Error = errx.Error

// 常用错误定义（哨兵错误）：禁止直接修改其 data/cause（通过 WithData/WithCause 派生新对象）。
var (
	ErrInvalidParam       = errx.NewBiz(CodeInvalidParam, "Email and password are required")
	ErrUserExist          = errx.NewBiz(CodeUserExist, "User already exists")
	ErrInvalidCredentials = errx.NewBiz(CodeInvalidCredentials, "Invalid credentials")
	ErrUnauthorized       = errx.NewBiz(CodeUnauthorized, "Unauthorized")
	ErrInternalServer     = errx.ErrInternal
	ErrUnavailable        = errx.ErrUnavailable
)
