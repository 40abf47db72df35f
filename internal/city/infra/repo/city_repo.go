package repo

import (
	"Realm/internal/city/app"
	"Realm/internal/city/domain"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CityRepo struct {
	db *gorm.DB
}

func NewCityRepo(db *gorm.DB) *CityRepo {
	return &CityRepo{db: db}
}

type locationRow struct {
	OwnerUserID int
	KingdomID   int
	X           int
	Y           int
}

func (r *CityRepo) LoadCity(ctx context.Context, cityID int) (*domain.City, *domain.Location, error) {
	var city domain.City
	err := r.db.WithContext(ctx).First(&city, cityID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrCityNotFound.WithData("city_id", cityID)
		}
		return nil, nil, domain.ErrSystemUnavailable.WithData("city_id", cityID).WithCause(err)
	}

	// 归属和坐标分别在 players / map_tiles 表
	var row locationRow
	err = r.db.WithContext(ctx).
		Table("cities AS c").
		Select("p.user_id AS owner_user_id, t.kingdom_id AS kingdom_id, t.x AS x, t.y AS y").
		Joins("JOIN players AS p ON p.id = c.player_id").
		Joins("LEFT JOIN map_tiles AS t ON t.id = c.map_tile_id").
		Where("c.id = ?", cityID).
		Scan(&row).Error
	if err != nil {
		return nil, nil, domain.ErrSystemUnavailable.WithData("city_id", cityID).WithCause(err)
	}
	loc := domain.Location(row)
	return &city, &loc, nil
}

func (r *CityRepo) Buildings(ctx context.Context, cityID int) ([]domain.PlayerBuilding, error) {
	var out []domain.PlayerBuilding
	err := r.db.WithContext(ctx).
		Preload("Building").
		Where("city_id = ?", cityID).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("city_id", cityID).WithCause(err)
	}
	return out, nil
}

func (r *CityRepo) Research(ctx context.Context, cityID int) ([]domain.PlayerResearch, error) {
	var out []domain.PlayerResearch
	err := r.db.WithContext(ctx).
		Preload("Research").
		Where("city_id = ?", cityID).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("city_id", cityID).WithCause(err)
	}
	return out, nil
}

func (r *CityRepo) BuildingBySlug(ctx context.Context, slug string) (*domain.Building, error) {
	var b domain.Building
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&b).Error
	if err == nil {
		return &b, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrBuildingNotFound.WithData("slug", slug)
	}
	return nil, domain.ErrSystemUnavailable.WithData("slug", slug).WithCause(err)
}

func (r *CityRepo) ResearchByID(ctx context.Context, id int) (*domain.Research, error) {
	var res domain.Research
	err := r.db.WithContext(ctx).First(&res, id).Error
	if err == nil {
		return &res, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrResearchNotFound.WithData("research_id", id)
	}
	return nil, domain.ErrSystemUnavailable.WithData("research_id", id).WithCause(err)
}

func (r *CityRepo) CatalogBuildings(ctx context.Context) ([]domain.Building, error) {
	var out []domain.Building
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	return out, nil
}

func (r *CityRepo) CatalogResearch(ctx context.Context) ([]domain.Research, error) {
	var out []domain.Research
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	return out, nil
}

// ApplyGeneration 增量写入，WHERE 带上读到的 last_resource_generation 做乐观锁。
func (r *CityRepo) ApplyGeneration(ctx context.Context, cityID int, last *time.Time, gained domain.Resources, now time.Time) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.City{}).Where("id = ?", cityID)
	if last == nil {
		q = q.Where("last_resource_generation IS NULL")
	} else {
		q = q.Where("last_resource_generation = ?", *last)
	}
	res := q.Updates(map[string]any{
		"food":                     gorm.Expr("food + ?", gained.Food),
		"wood":                     gorm.Expr("wood + ?", gained.Wood),
		"stone":                    gorm.Expr("stone + ?", gained.Stone),
		"ore":                      gorm.Expr("ore + ?", gained.Ore),
		"gold":                     gorm.Expr("gold + ?", gained.Gold),
		"last_resource_generation": now,
	})
	if res.Error != nil {
		return false, domain.ErrSystemUnavailable.WithData("city_id", cityID).WithCause(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *CityRepo) Tx(ctx context.Context, fn func(tx app.TxRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepo{db: tx})
	})
}

type txRepo struct {
	db *gorm.DB
}

// Debit 余额条件写在 WHERE 上，不足时一行都不会更新。
func (r *txRepo) Debit(ctx context.Context, cityID int, cost domain.Resources) error {
	if cost.IsZero() {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&domain.City{}).
		Where("id = ? AND food >= ? AND wood >= ? AND stone >= ? AND ore >= ? AND gold >= ?",
			cityID, cost.Food, cost.Wood, cost.Stone, cost.Ore, cost.Gold).
		Updates(map[string]any{
			"food":  gorm.Expr("food - ?", cost.Food),
			"wood":  gorm.Expr("wood - ?", cost.Wood),
			"stone": gorm.Expr("stone - ?", cost.Stone),
			"ore":   gorm.Expr("ore - ?", cost.Ore),
			"gold":  gorm.Expr("gold - ?", cost.Gold),
		})
	if res.Error != nil {
		return domain.ErrSystemUnavailable.WithData("city_id", cityID).WithCause(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Reject("Insufficient resources").WithData("city_id", cityID)
	}
	return nil
}

func (r *txRepo) CreateBuilding(ctx context.Context, b *domain.PlayerBuilding) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Reject("Plot already has a building").WithCause(err)
	}
	return domain.ErrSystemUnavailable.WithData("city_id", b.CityID).WithCause(err)
}

func (r *txRepo) SaveBuilding(ctx context.Context, b *domain.PlayerBuilding) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error; err != nil {
		return domain.ErrSystemUnavailable.WithData("building_id", b.ID).WithCause(err)
	}
	return nil
}

func (r *txRepo) DeleteBuilding(ctx context.Context, id int) error {
	if err := r.db.WithContext(ctx).Delete(&domain.PlayerBuilding{}, id).Error; err != nil {
		return domain.ErrSystemUnavailable.WithData("building_id", id).WithCause(err)
	}
	return nil
}

func (r *txRepo) SaveResearch(ctx context.Context, pr *domain.PlayerResearch) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(pr).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Reject("Research already started").WithCause(err)
	}
	return domain.ErrSystemUnavailable.WithData("research_id", pr.ResearchID).WithCause(err)
}

// UpsertCatalog 按 slug 覆盖写入配置表，种子脚本使用。
func (r *CityRepo) UpsertCatalog(ctx context.Context, buildings []domain.Building, research []domain.Research) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(buildings) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				UpdateAll: true,
			}).Create(&buildings).Error
			if err != nil {
				return domain.ErrSystemUnavailable.WithCause(err)
			}
		}
		if len(research) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				UpdateAll: true,
			}).Create(&research).Error
			if err != nil {
				return domain.ErrSystemUnavailable.WithCause(err)
			}
		}
		return nil
	})
}
