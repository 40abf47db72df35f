package repo

import (
	cdomain "Realm/internal/city/domain"
	kdomain "Realm/internal/kingdom/domain"
	"Realm/internal/player/app"
	"Realm/internal/player/domain"
	"Realm/internal/player/dto"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlayerRepo struct {
	db *gorm.DB
}

func NewPlayerRepo(db *gorm.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

func (r *PlayerRepo) WithTx(tx *gorm.DB) *PlayerRepo {
	return &PlayerRepo{db: tx}
}

func (r *PlayerRepo) Tx(ctx context.Context, fn func(tx app.TxRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

func (r *PlayerRepo) ByUser(ctx context.Context, uid int) ([]domain.Player, error) {
	var out []domain.Player
	if err := r.db.WithContext(ctx).Where("user_id = ?", uid).Order("id").Find(&out).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("uid", uid).WithCause(err)
	}
	return out, nil
}

func (r *PlayerRepo) LastPlayedKingdom(ctx context.Context, uid int) (*int, error) {
	var row struct {
		LastPlayedKingdomID *int
	}
	err := r.db.WithContext(ctx).Table("users").
		Select("last_played_kingdom_id").
		Where("id = ?", uid).
		Scan(&row).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("uid", uid).WithCause(err)
	}
	return row.LastPlayedKingdomID, nil
}

func (r *PlayerRepo) Get(ctx context.Context, id int) (*domain.Player, error) {
	var p domain.Player
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err == nil {
		return &p, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPlayerNotFound.WithData("player_id", id)
	}
	return nil, domain.ErrSystemUnavailable.WithData("player_id", id).WithCause(err)
}

func (r *PlayerRepo) Cities(ctx context.Context, playerID int) ([]dto.CityView, error) {
	var cities []cdomain.City
	if err := r.db.WithContext(ctx).Where("player_id = ?", playerID).Order("id").Find(&cities).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("player_id", playerID).WithCause(err)
	}
	if len(cities) == 0 {
		return nil, nil
	}

	tileIDs := make([]int, 0, len(cities))
	for _, c := range cities {
		tileIDs = append(tileIDs, c.MapTileID)
	}
	var tiles []kdomain.MapTile
	if err := r.db.WithContext(ctx).Where("id IN ?", tileIDs).Find(&tiles).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("player_id", playerID).WithCause(err)
	}
	byID := make(map[int]*kdomain.MapTile, len(tiles))
	for i := range tiles {
		byID[tiles[i].ID] = &tiles[i]
	}

	out := make([]dto.CityView, 0, len(cities))
	for _, c := range cities {
		out = append(out, dto.CityView{City: c, MapTile: byID[c.MapTileID]})
	}
	return out, nil
}

func (r *PlayerRepo) Alliance(ctx context.Context, playerID int) (*domain.Alliance, error) {
	var a domain.Alliance
	err := r.db.WithContext(ctx).
		Joins("JOIN alliance_members ON alliance_members.alliance_id = alliances.id").
		Where("alliance_members.player_id = ?", playerID).
		First(&a).Error
	if err == nil {
		return &a, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, domain.ErrSystemUnavailable.WithData("player_id", playerID).WithCause(err)
}

func (r *PlayerRepo) SetLastCity(ctx context.Context, playerID, cityID int) error {
	err := r.db.WithContext(ctx).Model(&domain.Player{}).
		Where("id = ?", playerID).
		Update("last_city_id", cityID).Error
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("player_id", playerID).WithCause(err)
	}
	return nil
}

func (r *PlayerRepo) OpenKingdom(ctx context.Context, uid int) (*kdomain.Kingdom, error) {
	var k kdomain.Kingdom
	joined := r.db.Table("players").Select("kingdom_id").Where("user_id = ?", uid)
	err := r.db.WithContext(ctx).
		Where("(SELECT COUNT(*) FROM players WHERE players.kingdom_id = kingdoms.id) < kingdoms.max_players").
		Where("id NOT IN (?)", joined).
		Order("id").
		First(&k).Error
	if err == nil {
		return &k, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, domain.ErrSystemUnavailable.WithData("uid", uid).WithCause(err)
}

func (r *PlayerRepo) CreateKingdom(ctx context.Context, k *kdomain.Kingdom) error {
	if err := r.db.WithContext(ctx).Create(k).Error; err != nil {
		return domain.ErrSystemUnavailable.WithData("kingdom", k.Name).WithCause(err)
	}
	return nil
}

func (r *PlayerRepo) CreatePlayer(ctx context.Context, p *domain.Player) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return domain.ErrSystemUnavailable.WithData("uid", p.UserID).WithCause(err)
	}
	return nil
}

// FreeTile 加行锁，避免两个建角事务选中同一块地。
func (r *PlayerRepo) FreeTile(ctx context.Context, kingdomID int, tileType string) (*kdomain.MapTile, error) {
	var t kdomain.MapTile
	q := r.db.WithContext(ctx).
		Where("kingdom_id = ? AND type = ?", kingdomID, tileType).
		Where("NOT EXISTS (SELECT 1 FROM cities WHERE cities.map_tile_id = map_tiles.id)").
		Order("id")
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := q.First(&t).Error
	if err == nil {
		return &t, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, domain.ErrSystemUnavailable.WithData("kingdom_id", kingdomID).WithCause(err)
}

func (r *PlayerRepo) CreateTile(ctx context.Context, t *kdomain.MapTile) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(t)
	if res.Error != nil {
		return false, domain.ErrSystemUnavailable.WithData("kingdom_id", t.KingdomID).WithCause(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *PlayerRepo) CreateCity(ctx context.Context, c *cdomain.City) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return domain.ErrSystemUnavailable.WithData("player_id", c.PlayerID).WithCause(err)
	}
	return nil
}

func (r *PlayerRepo) SetLastPlayedKingdom(ctx context.Context, uid, kingdomID int) error {
	err := r.db.WithContext(ctx).Table("users").
		Where("id = ?", uid).
		Update("last_played_kingdom_id", kingdomID).Error
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("uid", uid).WithCause(err)
	}
	return nil
}
