package dto

import "Realm/internal/kingdom/domain"

type TileCity struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	PlayerID   int    `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type TileView struct {
	ID        int           `json:"id"`
	KingdomID int           `json:"kingdomId"`
	X         int           `json:"x"`
	Y         int           `json:"y"`
	Type      string        `json:"type"`
	Level     int           `json:"level"`
	Resources domain.Yields `json:"resources"`
	City      *TileCity     `json:"city"`
}

type TilesResp struct {
	Tiles      []TileView      `json:"tiles"`
	Viewport   domain.Viewport `json:"viewport"`
	TotalTiles int             `json:"totalTiles"`
	// ETag 视口内容摘要，由接口层写入响应头。
	ETag string `json:"-"`
}
