package handler

import (
	"Realm/internal/kingdom/app"
	"Realm/internal/kingdom/domain"
	transporthttp "Realm/internal/shared/transport/http"
	"Realm/internal/shared/transport/http/middleware"
	"Realm/modules/kit/logx"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Kingdom struct {
	svc *app.Service
	log logx.Logger
}

func NewKingdom(svc *app.Service, log logx.Logger) *Kingdom {
	return &Kingdom{svc: svc, log: log}
}

func (h *Kingdom) RegisterRoutes(g *gin.RouterGroup, auth gin.HandlerFunc) {
	g.GET("/kingdom/:id/tiles", auth, h.Tiles)
}

func (h *Kingdom) Tiles(c *gin.Context) {
	kingdomID, err := strconv.Atoi(c.Param("id"))
	if err != nil || kingdomID <= 0 {
		transporthttp.BadRequest(c, domain.ErrInvalidParam.Msg())
		return
	}
	uid, _ := middleware.UID(c)

	resp, err := h.svc.Tiles(c.Request.Context(), app.TilesReq{
		UID:          uid,
		KingdomID:    kingdomID,
		CenterX:      queryInt(c, "centerX", 0),
		CenterY:      queryInt(c, "centerY", 0),
		ViewportSize: queryInt(c, "viewportSize", domain.DefaultViewport),
	})
	if err != nil {
		transporthttp.Error(c, h.log, "kingdom.tiles", toHTTPStatus(err), err)
		return
	}

	if resp.ETag != "" {
		c.Header("ETag", resp.ETag)
		if c.GetHeader("If-None-Match") == resp.ETag {
			c.Status(nethttp.StatusNotModified)
			return
		}
	}
	transporthttp.JSON(c, nethttp.StatusOK, resp)
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
