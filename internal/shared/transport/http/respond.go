package http

import (
	"Realm/internal/shared/transport"
	"Realm/modules/kit/errx"
	"Realm/modules/kit/logx"
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"
)

const InternalErrorMsg = "Internal server error"

// JSON 写成功响应并记录业务码 OK。
func JSON(c *gin.Context, status int, data any) {
	transport.SetBizCode(c.Request.Context(), transport.BizCode(transport.OK))
	c.JSON(status, data)
}

// Fail 写错误响应，body 固定为 {"error": msg}。
func Fail(c *gin.Context, status int, msg string) {
	transport.SetBizCode(c.Request.Context(), transport.BizCodeFromStatus(status))
	if msg == "" {
		msg = nethttp.StatusText(status)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// BadRequest 参数校验失败的快捷方法。
func BadRequest(c *gin.Context, msg string) {
	Fail(c, nethttp.StatusBadRequest, msg)
}

// Error 在接口层统一上报一次错误并写响应：
// 业务拒绝按 INFO 记录并把错误文案透出；系统错误按 ERROR 记录，对外只给通用文案。
func Error(c *gin.Context, log logx.Logger, action string, status int, err error) {
	ctx := c.Request.Context()
	if errx.IsBiz(err) && status < nethttp.StatusInternalServerError {
		var reason string
		var e *errx.Error
		if errors.As(err, &e) {
			reason = string(e.Code())
		}
		transport.SetErrorReason(ctx, reason)
		logx.ReportBizWithLoggerContext(ctx, log, logx.NewBizLog(action, reason, errx.MsgOf(err)))
		Fail(c, status, errx.MsgOf(err))
		return
	}
	if status < nethttp.StatusInternalServerError {
		status = nethttp.StatusInternalServerError
	}
	logx.ReportSysErrorWithLoggerContext(ctx, log, logx.NewSysLog(action, err))
	Fail(c, status, InternalErrorMsg)
}
