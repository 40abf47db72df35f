package dto

import (
	cdomain "Realm/internal/city/domain"
	kdomain "Realm/internal/kingdom/domain"
	"Realm/internal/player/domain"
)

type CreateReq struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Avatar string `json:"avatar"`
}

type CreateResp struct {
	Success bool             `json:"success"`
	Player  *domain.Player   `json:"player"`
	City    *cdomain.City    `json:"city"`
	Kingdom *kdomain.Kingdom `json:"kingdom"`
}

type SetLastCityReq struct {
	LastCity int `json:"lastCity"`
}

type SetLastCityResp struct {
	Success  bool `json:"success"`
	LastCity int  `json:"lastCity"`
}

// CityView 城市列表项，附带所在地块。
type CityView struct {
	cdomain.City
	MapTile *kdomain.MapTile `json:"mapTile"`
}

type AllianceResp struct {
	HasAlliance  bool   `json:"hasAlliance"`
	AllianceName string `json:"allianceName"`
	AllianceID   *int   `json:"allianceId"`
}
