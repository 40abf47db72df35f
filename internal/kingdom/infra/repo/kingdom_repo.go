package repo

import (
	"Realm/internal/kingdom/domain"
	"Realm/internal/kingdom/dto"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KingdomRepo struct {
	db *gorm.DB
}

func NewKingdomRepo(db *gorm.DB) *KingdomRepo {
	return &KingdomRepo{db: db}
}

func (r *KingdomRepo) Get(ctx context.Context, id int) (*domain.Kingdom, error) {
	var k domain.Kingdom
	err := r.db.WithContext(ctx).First(&k, id).Error
	if err == nil {
		return &k, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrKingdomNotFound.WithData("kingdom_id", id)
	}
	return nil, domain.ErrSystemUnavailable.WithData("kingdom_id", id).WithCause(err)
}

func (r *KingdomRepo) HasPlayer(ctx context.Context, uid, kingdomID int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("players").
		Where("user_id = ? AND kingdom_id = ?", uid, kingdomID).
		Count(&n).Error
	if err != nil {
		return false, domain.ErrSystemUnavailable.WithData("kingdom_id", kingdomID).WithCause(err)
	}
	return n > 0, nil
}

type tileRow struct {
	domain.MapTile
	CityID     *int
	CityName   *string
	CityAge    *int
	PlayerID   *int
	PlayerName *string
}

func (r *KingdomRepo) Tiles(ctx context.Context, kingdomID int, vp domain.Viewport) ([]dto.TileView, error) {
	var rows []tileRow
	err := r.db.WithContext(ctx).Table("map_tiles").
		Select("map_tiles.*, cities.id AS city_id, cities.name AS city_name, cities.age AS city_age, players.id AS player_id, players.name AS player_name").
		Joins("LEFT JOIN cities ON cities.map_tile_id = map_tiles.id").
		Joins("LEFT JOIN players ON players.id = cities.player_id").
		Where("map_tiles.kingdom_id = ? AND map_tiles.x BETWEEN ? AND ? AND map_tiles.y BETWEEN ? AND ?",
			kingdomID, vp.StartX, vp.EndX, vp.StartY, vp.EndY).
		Order("map_tiles.y ASC, map_tiles.x ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("kingdom_id", kingdomID).WithCause(err)
	}

	out := make([]dto.TileView, 0, len(rows))
	for _, row := range rows {
		v := dto.TileView{
			ID:        row.ID,
			KingdomID: row.KingdomID,
			X:         row.X,
			Y:         row.Y,
			Type:      row.Type,
			Level:     row.Level,
			Resources: row.Yields,
		}
		if row.CityID != nil {
			c := &dto.TileCity{ID: *row.CityID}
			if row.CityName != nil {
				c.Name = *row.CityName
			}
			if row.CityAge != nil {
				c.Age = *row.CityAge
			}
			if row.PlayerID != nil {
				c.PlayerID = *row.PlayerID
			}
			if row.PlayerName != nil {
				c.PlayerName = *row.PlayerName
			}
			v.City = c
		}
		out = append(out, v)
	}
	return out, nil
}

// CreateKingdom 种子工具使用。
func (r *KingdomRepo) CreateKingdom(ctx context.Context, k *domain.Kingdom) error {
	if err := r.db.WithContext(ctx).Create(k).Error; err != nil {
		return domain.ErrSystemUnavailable.WithData("name", k.Name).WithCause(err)
	}
	return nil
}

func (r *KingdomRepo) FindByName(ctx context.Context, name string) (*domain.Kingdom, error) {
	var k domain.Kingdom
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&k).Error
	if err == nil {
		return &k, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrKingdomNotFound.WithData("name", name)
	}
	return nil, domain.ErrSystemUnavailable.WithData("name", name).WithCause(err)
}

// InsertTiles 分批写入，重复坐标跳过。
func (r *KingdomRepo) InsertTiles(ctx context.Context, tiles []domain.MapTile, batch int) error {
	if len(tiles) == 0 {
		return nil
	}
	if batch <= 0 {
		batch = 1000
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(tiles, batch).Error
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("tiles", len(tiles)).WithCause(err)
	}
	return nil
}

func (r *KingdomRepo) CountTiles(ctx context.Context, kingdomID int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.MapTile{}).Where("kingdom_id = ?", kingdomID).Count(&n).Error
	if err != nil {
		return 0, domain.ErrSystemUnavailable.WithData("kingdom_id", kingdomID).WithCause(err)
	}
	return n, nil
}
