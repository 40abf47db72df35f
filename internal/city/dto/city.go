package dto

import (
	"Realm/internal/city/domain"
	kdomain "Realm/internal/kingdom/domain"
	kdto "Realm/internal/kingdom/dto"
	"time"
)

type BuildReq struct {
	BuildingSlug string  `json:"buildingSlug"`
	PlotID       *string `json:"plotId"`
}

type StartResearchReq struct {
	ResearchID int `json:"researchId"`
}

type BuildResp struct {
	Success               bool             `json:"success"`
	BuildingID            int              `json:"buildingId"`
	ConstructionStartedAt time.Time        `json:"constructionStartedAt"`
	ConstructionEndsAt    time.Time        `json:"constructionEndsAt"`
	UpdatedResources      domain.Resources `json:"updatedResources"`
}

type UpgradeResp struct {
	Success            bool             `json:"success"`
	NewLevel           int              `json:"newLevel"`
	ConstructionEndsAt time.Time        `json:"constructionEndsAt"`
	UpdatedResources   domain.Resources `json:"updatedResources"`
}

type DemolishResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CompleteBuildingResp struct {
	Success  bool                   `json:"success"`
	Building *domain.PlayerBuilding `json:"building"`
}

type StartResearchResp struct {
	Success          bool                   `json:"success"`
	Research         *domain.PlayerResearch `json:"research"`
	ResearchEndsAt   time.Time              `json:"researchEndsAt"`
	UpdatedResources domain.Resources       `json:"updatedResources"`
}

type CompleteResearchResp struct {
	Success  bool                   `json:"success"`
	Research *domain.PlayerResearch `json:"research"`
}

type DataResp struct {
	City        *domain.City            `json:"city"`
	Buildings   []domain.PlayerBuilding `json:"buildings"`
	Research    []domain.PlayerResearch `json:"research"`
	LastUpdated time.Time               `json:"lastUpdated"`
}

type Generation struct {
	Amounts      domain.Resources `json:"amounts"`
	Offline      domain.Resources `json:"offline"`
	OfflinePolls int64            `json:"offlinePolls"`
	Timestamp    time.Time        `json:"timestamp"`
}

type ReadyTimers struct {
	Buildings []int `json:"buildings"`
	Research  []int `json:"research"`
}

type Timers struct {
	Constructing []domain.PlayerBuilding `json:"constructing"`
	Research     []domain.PlayerResearch `json:"research"`
	Ready        ReadyTimers             `json:"ready"`
}

type ResourceBuilding struct {
	ID         int                 `json:"id"`
	Name       string              `json:"name"`
	Slug       string              `json:"slug"`
	Level      int                 `json:"level"`
	Resource   domain.ResourceKind `json:"resource"`
	Production int64               `json:"production"`
}

type ResearchBonuses struct {
	Farming     int `json:"farming"`
	Woodworking int `json:"woodworking"`
	Mining      int `json:"mining"`
}

type CityStats struct {
	TotalBuildings    int `json:"totalBuildings"`
	ResourceBuildings int `json:"resourceBuildings"`
	Constructing      int `json:"constructing"`
	ActiveResearch    int `json:"activeResearch"`
	ResearchCount     int `json:"researchCount"`
}

type KingdomMap struct {
	Tiles    []kdto.TileView  `json:"tiles"`
	Viewport kdomain.Viewport `json:"viewport"`
}

// PollResp 一次轮询返回的城市快照。
type PollResp struct {
	City              *domain.City            `json:"city"`
	Buildings         []domain.PlayerBuilding `json:"buildings"`
	Research          []domain.PlayerResearch `json:"research"`
	Generation        Generation              `json:"generation"`
	Timers            Timers                  `json:"timers"`
	ResourceBuildings []ResourceBuilding      `json:"resourceBuildings"`
	ResearchBonuses   ResearchBonuses         `json:"researchBonuses"`
	CityStats         CityStats               `json:"cityStats"`
	KingdomMap        *KingdomMap             `json:"kingdomMap"`
}
