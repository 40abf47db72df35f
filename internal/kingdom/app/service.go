package app

import (
	"Realm/internal/kingdom/domain"
	"Realm/internal/kingdom/dto"
	"context"
	"encoding/hex"
	"encoding/json"

	"lukechampine.com/blake3"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type TilesReq struct {
	UID          int
	KingdomID    int
	CenterX      int
	CenterY      int
	ViewportSize int
}

// Tiles 地图视口查询，只有王国内的玩家可以看。
func (s *Service) Tiles(ctx context.Context, req TilesReq) (*dto.TilesResp, error) {
	if req.KingdomID <= 0 {
		return nil, domain.ErrInvalidParam
	}
	ok, err := s.repo.HasPlayer(ctx, req.UID, req.KingdomID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAccessDenied.WithData("uid", req.UID).WithData("kingdom_id", req.KingdomID)
	}
	return s.Viewport(ctx, req.KingdomID, req.CenterX, req.CenterY, req.ViewportSize)
}

// Viewport 不做归属校验，供城市轮询内部使用。
func (s *Service) Viewport(ctx context.Context, kingdomID, centerX, centerY, size int) (*dto.TilesResp, error) {
	k, err := s.repo.Get(ctx, kingdomID)
	if err != nil {
		return nil, err
	}

	vp := domain.NewViewport(centerX, centerY, size, k.GridSize())
	tiles, err := s.repo.Tiles(ctx, kingdomID, vp)
	if err != nil {
		return nil, err
	}
	if tiles == nil {
		tiles = []dto.TileView{}
	}
	resp := &dto.TilesResp{Tiles: tiles, Viewport: vp, TotalTiles: len(tiles)}
	resp.ETag = etag(vp.Key(kingdomID), tiles)
	return resp, nil
}

// etag 视口键 + 地块内容的 blake3 摘要。
func etag(key string, tiles []dto.TileView) string {
	raw, err := json.Marshal(tiles)
	if err != nil {
		return ""
	}
	sum := blake3.Sum256(append([]byte(key), raw...))
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
