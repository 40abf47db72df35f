package transport

import nethttp "net/http"

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 业务码与 HTTP 状态码对齐：0 成功，4xx 客户端问题（WARN），5xx 服务端问题（ERROR）。
const (
	OK             = 0
	InvalidParam   = 400
	SessionInvalid = 401
	Forbidden      = 403
	NotFound       = 404
	RateLimited    = 429
	SystemError    = 500
)

// BizCodeFromStatus 在 handler 未显式设置业务码时，按 HTTP 状态兜底。
func BizCodeFromStatus(status int) BizCode {
	switch {
	case status < nethttp.StatusBadRequest:
		return BizCode(OK)
	case status == nethttp.StatusNotModified:
		return BizCode(OK)
	default:
		return BizCode(status)
	}
}
