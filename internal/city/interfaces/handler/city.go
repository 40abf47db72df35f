package handler

import (
	"Realm/internal/city/app"
	"Realm/internal/city/domain"
	"Realm/internal/city/dto"
	transporthttp "Realm/internal/shared/transport/http"
	"Realm/internal/shared/transport/http/middleware"
	"Realm/modules/kit/logx"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type City struct {
	svc *app.Service
	log logx.Logger
}

func NewCity(svc *app.Service, log logx.Logger) *City {
	return &City{svc: svc, log: log}
}

func (h *City) RegisterRoutes(g *gin.RouterGroup, auth gin.HandlerFunc) {
	g.GET("/buildings", auth, h.CatalogBuildings)
	g.GET("/research", auth, h.CatalogResearch)

	city := g.Group("/city/:id", auth)
	city.GET("/data", h.Data)
	city.GET("/buildings", h.Buildings)
	city.GET("/poll", h.Poll)
	city.POST("/build", h.Build)
	city.POST("/buildings/:buildingId/upgrade", h.Upgrade)
	city.POST("/buildings/:buildingId/demolish", h.Demolish)
	city.POST("/buildings/:buildingId/complete", h.CompleteBuilding)
	city.POST("/research/start", h.StartResearch)
	city.POST("/research/:researchId/complete", h.CompleteResearch)
}

func (h *City) CatalogBuildings(c *gin.Context) {
	out, err := h.svc.CatalogBuildings(c.Request.Context())
	if err != nil {
		h.fail(c, "catalog.buildings", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, out)
}

func (h *City) CatalogResearch(c *gin.Context) {
	out, err := h.svc.CatalogResearch(c.Request.Context())
	if err != nil {
		h.fail(c, "catalog.research", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, out)
}

func (h *City) Data(c *gin.Context) {
	uid, cityID, ok := h.target(c)
	if !ok {
		return
	}
	resp, err := h.svc.Data(c.Request.Context(), uid, cityID)
	if err != nil {
		h.fail(c, "city.data", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, resp)
}

func (h *City) Buildings(c *gin.Context) {
	uid, cityID, ok := h.target(c)
	if !ok {
		return
	}
	out, err := h.svc.Buildings(c.Request.Context(), uid, cityID)
	if err != nil {
		h.fail(c, "city.buildings", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, out)
}

func (h *City) Poll(c *gin.Context) {
	uid, cityID, ok := h.target(c)
	if !ok {
		return
	}
	resp, err := h.svc.Poll(c.Request.Context(), uid, cityID)
	if err != nil {
		h.fail(c, "city.poll", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, resp)
}

func (h *City) Build(c *gin.Context) {
	uid, cityID, ok := h.target(c)
	if !ok {
		return
	}
	var req dto.BuildReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.BadRequest(c, "Missing buildingSlug")
		return
	}
	resp, err := h.svc.Build(c.Request.Context(), uid, cityID, req)
	if err != nil {
		h.fail(c, "city.build", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, resp)
}

func (h *City) Upgrade(c *gin.Context) {
	uid, cityID, ok := h.target(c)
	if !ok {
		return
	}
	resp, err := h.svc.Upgrade(c.Request.Context(), uid, cityID, paramInt(c, "buildingId"))
	if err != nil {
		h.fail(c, "city.upgrade", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, resp)
}

func (h *City) Demolish(c *gin.Context) {
	uid, cityID, ok := h.target(c)
	if !ok {
		return
	}
	resp, err := h.svc.Demolish(c.Request.Context(), uid, cityID, paramInt(c, "buildingId"))
	if err != nil {
		h.fail(c, "city.demolish", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, resp)
}

func (h *City) CompleteBuilding(c *gin.Context) {
	uid, cityID, ok := h.target(c)
	if !ok {
		return
	}
	resp, err := h.svc.CompleteBuilding(c.Request.Context(), uid, cityID, paramInt(c, "buildingId"))
	if err != nil {
		h.fail(c, "city.complete_building", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, resp)
}

func (h *City) StartResearch(c *gin.Context) {
	uid, cityID, ok := h.target(c)
	if !ok {
		return
	}
	var req dto.StartResearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.BadRequest(c, "Research ID is required")
		return
	}
	resp, err := h.svc.StartResearch(c.Request.Context(), uid, cityID, req)
	if err != nil {
		h.fail(c, "city.start_research", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, resp)
}

func (h *City) CompleteResearch(c *gin.Context) {
	uid, cityID, ok := h.target(c)
	if !ok {
		return
	}
	resp, err := h.svc.CompleteResearch(c.Request.Context(), uid, cityID, paramInt(c, "researchId"))
	if err != nil {
		h.fail(c, "city.complete_research", err)
		return
	}
	transporthttp.JSON(c, nethttp.StatusOK, resp)
}

// target 解析会话 uid 与路径上的城市 id。
func (h *City) target(c *gin.Context) (int, int, bool) {
	uid, ok := middleware.UID(c)
	if !ok {
		transporthttp.Fail(c, nethttp.StatusUnauthorized, "Unauthorized")
		return 0, 0, false
	}
	cityID := paramInt(c, "id")
	if cityID <= 0 {
		transporthttp.BadRequest(c, domain.InvalidParam("Invalid city ID").Msg())
		return 0, 0, false
	}
	return uid, cityID, true
}

func (h *City) fail(c *gin.Context, action string, err error) {
	transporthttp.Error(c, h.log, action, toHTTPStatus(err), err)
}

// paramInt 非法值返回 0，由服务层按各自文案拒绝。
func paramInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Param(key))
	if err != nil {
		return 0
	}
	return v
}
