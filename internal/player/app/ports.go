package app

import (
	cdomain "Realm/internal/city/domain"
	kdomain "Realm/internal/kingdom/domain"
	"Realm/internal/player/domain"
	"Realm/internal/player/dto"
	"context"
)

type Repository interface {
	// ByUser 账号下的全部玩家，按 id 升序。
	ByUser(ctx context.Context, uid int) ([]domain.Player, error)
	LastPlayedKingdom(ctx context.Context, uid int) (*int, error)
	Get(ctx context.Context, id int) (*domain.Player, error)
	Cities(ctx context.Context, playerID int) ([]dto.CityView, error)
	// Alliance 未加入联盟时返回 nil, nil。
	Alliance(ctx context.Context, playerID int) (*domain.Alliance, error)
	SetLastCity(ctx context.Context, playerID, cityID int) error

	Tx(ctx context.Context, fn func(tx TxRepository) error) error
}

// TxRepository 建角流程在一个事务里跨 kingdoms / players / map_tiles / cities / users 写入。
type TxRepository interface {
	// OpenKingdom 人数未满且该账号尚未入驻的第一个王国，没有时返回 nil, nil。
	OpenKingdom(ctx context.Context, uid int) (*kdomain.Kingdom, error)
	CreateKingdom(ctx context.Context, k *kdomain.Kingdom) error
	CreatePlayer(ctx context.Context, p *domain.Player) error
	// FreeTile 没有城市占用的指定地形，没有时返回 nil, nil。
	FreeTile(ctx context.Context, kingdomID int, tileType string) (*kdomain.MapTile, error)
	// CreateTile 坐标已被占用时返回 false。
	CreateTile(ctx context.Context, t *kdomain.MapTile) (bool, error)
	CreateCity(ctx context.Context, c *cdomain.City) error
	SetLastCity(ctx context.Context, playerID, cityID int) error
	SetLastPlayedKingdom(ctx context.Context, uid, kingdomID int) error
}
