package app

import (
	"Realm/internal/kingdom/domain"
	"Realm/internal/kingdom/dto"
	"context"
)

type Repository interface {
	Get(ctx context.Context, id int) (*domain.Kingdom, error)
	// HasPlayer 用户在该王国是否有角色。
	HasPlayer(ctx context.Context, uid, kingdomID int) (bool, error)
	// Tiles 视口内地块，按 y、x 升序，附带城市与城主名。
	Tiles(ctx context.Context, kingdomID int, vp domain.Viewport) ([]dto.TileView, error)
}
