package handler

import (
	"Realm/internal/player/app"
	"Realm/internal/player/dto"
	transporthttp "Realm/internal/shared/transport/http"
	"Realm/internal/shared/transport/http/middleware"
	"Realm/modules/kit/logx"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Player struct {
	svc *app.PlayerService
	log logx.Logger
}

func NewPlayer(svc *app.PlayerService, log logx.Logger) *Player {
	return &Player{svc: svc, log: log}
}

func (h *Player) RegisterRoutes(g *gin.RouterGroup, auth gin.HandlerFunc) {
	p := g.Group("/player", auth)
	p.GET("", h.Current)
	p.POST("/create", h.Create)
	p.GET("/:id/cities", h.Cities)
	p.PATCH("/:id/cities", h.SetLastCity)
	p.GET("/:id/alliance", h.Alliance)
}

func (h *Player) Current(c *gin.Context) {
	uid, ok := h.uid(c)
	if !ok {
		return
	}
	p, err := h.svc.Current(c.Request.Context(), uid)
	if err != nil {
		h.fail(c, "player.current", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, p)
}

func (h *Player) Create(c *gin.Context) {
	uid, ok := h.uid(c)
	if !ok {
		return
	}
	var req dto.CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.BadRequest(c, app.ErrMissingFields.Msg())
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), uid, req)
	if err != nil {
		h.fail(c, "player.create", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusCreated, resp)
}

func (h *Player) Cities(c *gin.Context) {
	uid, playerID, ok := h.target(c)
	if !ok {
		return
	}
	out, err := h.svc.Cities(c.Request.Context(), uid, playerID)
	if err != nil {
		h.fail(c, "player.cities", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, out)
}

func (h *Player) SetLastCity(c *gin.Context) {
	uid, playerID, ok := h.target(c)
	if !ok {
		return
	}
	var req dto.SetLastCityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.BadRequest(c, app.ErrInvalidCity.Msg())
		return
	}
	resp, err := h.svc.SetLastCity(c.Request.Context(), uid, playerID, req)
	if err != nil {
		h.fail(c, "player.set_last_city", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, resp)
}

func (h *Player) Alliance(c *gin.Context) {
	uid, playerID, ok := h.target(c)
	if !ok {
		return
	}
	resp, err := h.svc.Alliance(c.Request.Context(), uid, playerID)
	if err != nil {
		h.fail(c, "player.alliance", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, resp)
}

func (h *Player) uid(c *gin.Context) (int, bool) {
	uid, ok := middleware.UID(c)
	if !ok {
		transporthttp.Fail(c, nethttp.StatusUnauthorized, "Unauthorized")
		return 0, false
	}
	return uid, true
}

func (h *Player) target(c *gin.Context) (int, int, bool) {
	uid, ok := h.uid(c)
	if !ok {
		return 0, 0, false
	}
	playerID, err := strconv.Atoi(c.Param("id"))
	if err != nil || playerID <= 0 {
		transporthttp.BadRequest(c, app.ErrInvalidPlayer.Msg())
		return 0, 0, false
	}
	return uid, playerID, true
}

func (h *Player) fail(c *gin.Context, action string, err error) {
	transporthttp.Error(c, h.log, action, toHTTPStatus(err), err)
}
