package middleware

import (
	"Realm/internal/shared/security"
	"Realm/internal/shared/transport"
	nethttp "net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ctxKeyUID   = "uid"
	ctxKeyEmail = "email"
)

// TokenFromRequest 优先读会话 cookie，其次读 Authorization: Bearer。
func TokenFromRequest(r *nethttp.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// RequireAuth 校验会话，成功后把 uid 放入 gin.Context。
func RequireAuth(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c.Request, cookieName)
		if token == "" {
			abortUnauthorized(c)
			return
		}
		_, claims, err := security.ParseToken(token)
		if err != nil {
			transport.SetErrorReason(c.Request.Context(), "SESSION_INVALID")
			abortUnauthorized(c)
			return
		}
		c.Set(ctxKeyUID, claims.Uid)
		c.Set(ctxKeyEmail, claims.Email)
		transport.SetUID(c.Request.Context(), claims.Uid)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	transport.SetBizCode(c.Request.Context(), transport.BizCode(transport.SessionInvalid))
	c.AbortWithStatusJSON(nethttp.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}

// UID 读取 RequireAuth 写入的用户 id。
func UID(c *gin.Context) (int, bool) {
	v, ok := c.Get(ctxKeyUID)
	if !ok {
		return 0, false
	}
	uid, ok := v.(int)
	return uid, ok && uid > 0
}

func Email(c *gin.Context) string {
	return c.GetString(ctxKeyEmail)
}
