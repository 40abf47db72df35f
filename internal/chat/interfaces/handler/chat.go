package handler

import (
	"Realm/internal/chat/app"
	"Realm/internal/chat/domain"
	"Realm/internal/chat/dto"
	transporthttp "Realm/internal/shared/transport/http"
	"Realm/internal/shared/transport/http/middleware"
	"Realm/modules/kit/logx"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Chat struct {
	svc *app.Service
	log logx.Logger
}

func NewChat(svc *app.Service, log logx.Logger) *Chat {
	return &Chat{svc: svc, log: log}
}

func (h *Chat) RegisterRoutes(g *gin.RouterGroup, auth gin.HandlerFunc) {
	chat := g.Group("/chat", auth)
	chat.GET("/:room/messages", h.History)
	chat.POST("/send", h.Send)
}

func (h *Chat) History(c *gin.Context) {
	uid, ok := middleware.UID(c)
	if !ok {
		transporthttp.Fail(c, nethttp.StatusUnauthorized, "Unauthorized")
		return
	}
	playerID := 0
	if raw := c.Query("playerId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			transporthttp.BadRequest(c, "Invalid player ID")
			return
		}
		playerID = id
	}

	resp, err := h.svc.History(c.Request.Context(), uid, playerID, c.Param("room"))
	if err != nil {
		transporthttp.Error(c, h.log, "chat.history", toHTTPStatus(err), err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, resp)
}

func (h *Chat) Send(c *gin.Context) {
	uid, ok := middleware.UID(c)
	if !ok {
		transporthttp.Fail(c, nethttp.StatusUnauthorized, "Unauthorized")
		return
	}
	var req dto.SendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.BadRequest(c, domain.ErrInvalidParam.Msg())
		return
	}
	msg, err := h.svc.Send(c.Request.Context(), uid, req)
	if err != nil {
		transporthttp.Error(c, h.log, "chat.send", toHTTPStatus(err), err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusCreated, dto.SendResp{Success: true, Message: msg})
}
