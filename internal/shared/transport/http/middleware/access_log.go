package middleware

import (
	"Realm/internal/shared/transport"
	"Realm/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

// AccessLog 统一写访问日志：优先使用 handler 设置的业务码，否则按 HTTP 状态兜底。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		action := c.Request.Method + " " + route

		ctx := transport.NewContextWithParent(c.Request.Context(), action)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !transport.BizCodeSet(ctx) {
			transport.SetBizCode(ctx, transport.BizCodeFromStatus(c.Writer.Status()))
		}
		if len(c.Errors) > 0 {
			transport.SetErrorReason(ctx, c.Errors.Last().Error())
		}
		transport.WriteAccessLog(ctx, log)
	}
}
