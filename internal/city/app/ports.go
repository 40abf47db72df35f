package app

import (
	"Realm/internal/city/domain"
	kdto "Realm/internal/kingdom/dto"
	"context"
	"time"
)

// Repository 城市上下文的持久化端口。
type Repository interface {
	// LoadCity 返回城市及其归属与坐标。
	LoadCity(ctx context.Context, cityID int) (*domain.City, *domain.Location, error)
	Buildings(ctx context.Context, cityID int) ([]domain.PlayerBuilding, error)
	Research(ctx context.Context, cityID int) ([]domain.PlayerResearch, error)
	BuildingBySlug(ctx context.Context, slug string) (*domain.Building, error)
	ResearchByID(ctx context.Context, id int) (*domain.Research, error)
	CatalogBuildings(ctx context.Context) ([]domain.Building, error)
	CatalogResearch(ctx context.Context) ([]domain.Research, error)

	// ApplyGeneration 以 last 为乐观锁把 gained 累加到城市资源上，
	// 并把 last_resource_generation 推进到 now；返回 false 表示被并发请求抢先。
	ApplyGeneration(ctx context.Context, cityID int, last *time.Time, gained domain.Resources, now time.Time) (bool, error)

	// Tx 在一个事务里执行 fn，fn 内必须使用传入的 tx。
	Tx(ctx context.Context, fn func(tx TxRepository) error) error
}

// TxRepository 事务内可用的写操作。
type TxRepository interface {
	// Debit 余额不足时返回 ErrRuleRejected，不产生任何写入。
	Debit(ctx context.Context, cityID int, cost domain.Resources) error
	CreateBuilding(ctx context.Context, b *domain.PlayerBuilding) error
	SaveBuilding(ctx context.Context, b *domain.PlayerBuilding) error
	DeleteBuilding(ctx context.Context, id int) error
	SaveResearch(ctx context.Context, r *domain.PlayerResearch) error
}

// KingdomMap 城市轮询附带的地图视口。
type KingdomMap interface {
	Viewport(ctx context.Context, kingdomID, centerX, centerY, size int) (*kdto.TilesResp, error)
}

// Executor 同一城市的命令串行执行。
type Executor interface {
	Do(ctx context.Context, cityID int, fn func(ctx context.Context) (any, error)) (any, error)
}
