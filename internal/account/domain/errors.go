package domain

import "Realm/modules/kit/errx"

// Code 表示领域错误码。
//
// 约定：
// - 领域层只关心“是什么错”（code）以及“业务上下文”（data）
// - cause 仅用于溯源/日志，不参与对外语义
type Code = errx.Code

const (
	CodeUserNotFound Code = "ACCOUNT_USER_NOT_FOUND"
	// CodeUserExists 邮箱唯一索引冲突。
	CodeUserExists Code = "ACCOUNT_USER_EXISTS"
	// CodeSystemUnavailable 复用 kit 的统一系统码（跨服务一致，便于告警/排障）。
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

type Error = errx.Error

var (
	ErrUserNotFound      = errx.NewBiz(CodeUserNotFound, "")
	ErrUserExists        = errx.NewBiz(CodeUserExists, "")
	ErrSystemUnavailable = errx.ErrUnavailable
)
