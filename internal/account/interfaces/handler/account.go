package handler

import (
	"Realm/internal/account/app"
	"Realm/internal/account/dto"
	transporthttp "Realm/internal/shared/transport/http"
	"Realm/internal/shared/transport/http/middleware"
	"Realm/modules/kit/logx"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type CookieOptions struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type Account struct {
	userService *app.UserService
	log         logx.Logger
	cookie      CookieOptions
}

func NewAccount(userService *app.UserService, log logx.Logger, cookie CookieOptions) *Account {
	return &Account{
		userService: userService,
		log:         log,
		cookie:      cookie,
	}
}

func (a *Account) RegisterRoutes(g *gin.RouterGroup) {
	auth := g.Group("/auth")
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)
	auth.POST("/logout", a.Logout)
	auth.GET("/session", middleware.RequireAuth(a.cookie.Name), a.Session)
}

func (a *Account) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.BadRequest(c, app.ErrInvalidParam.Msg())
		return
	}
	user, err := a.userService.Register(c.Request.Context(), req)
	if err != nil {
		transporthttp.Error(c, a.log, "account.register", toHTTPStatus(err), err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

func (a *Account) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, nethttp.StatusUnauthorized, app.ErrInvalidCredentials.Msg())
		return
	}
	resp, err := a.userService.Login(c.Request.Context(), req)
	if err != nil {
		transporthttp.Error(c, a.log, "account.login", toHTTPStatus(err), err)
		return
	}
	a.setCookie(c, resp.Token, int(a.cookie.TTL/time.Second))
	transporthttp.JSON(c, nethttp.StatusOK, gin.H{"user": resp.User})
}

func (a *Account) Logout(c *gin.Context) {
	a.setCookie(c, "", -1)
	transporthttp.JSON(c, nethttp.StatusOK, gin.H{"success": true})
}

func (a *Account) Session(c *gin.Context) {
	uid, _ := middleware.UID(c)
	user, err := a.userService.Session(c.Request.Context(), uid)
	if err != nil {
		transporthttp.Error(c, a.log, "account.session", toHTTPStatus(err), err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, gin.H{"user": user})
}

func (a *Account) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(nethttp.SameSiteLaxMode)
	c.SetCookie(a.cookie.Name, value, maxAge, "/", "", a.cookie.Secure, true)
}
