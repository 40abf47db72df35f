package app

import (
	cdomain "Realm/internal/city/domain"
	kdomain "Realm/internal/kingdom/domain"
	"Realm/internal/player/domain"
	"Realm/internal/player/dto"
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"
)

const tilePlacementAttempts = 16

// 临时补建的平原地块产出与初始资源一致。
var fallbackYields = kdomain.Yields{Food: 100, Wood: 100, Stone: 50, Gold: 50}

type PlayerService struct {
	repo Repository
	now  func() time.Time
	intn func(n int) int
}

func NewPlayerService(repo Repository) *PlayerService {
	return &PlayerService{
		repo: repo,
		now:  time.Now,
		intn: rand.IntN,
	}
}

// Current 优先返回上次进入的王国里的玩家，否则返回第一个。
func (s *PlayerService) Current(ctx context.Context, uid int) (*domain.Player, error) {
	players, err := s.repo.ByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, domain.ErrPlayerNotFound.WithData("uid", uid)
	}
	last, err := s.repo.LastPlayedKingdom(ctx, uid)
	if err != nil {
		return nil, err
	}
	if last != nil {
		for i := range players {
			if players[i].KingdomID == *last {
				return &players[i], nil
			}
		}
	}
	return &players[0], nil
}

// Create 建角：选王国、建玩家、找平原、建主城，全部在一个事务里。
func (s *PlayerService) Create(ctx context.Context, uid int, req dto.CreateReq) (*dto.CreateResp, error) {
	name := strings.TrimSpace(req.Name)
	gender := strings.TrimSpace(req.Gender)
	avatar := strings.TrimSpace(req.Avatar)
	if name == "" || gender == "" || avatar == "" {
		return nil, ErrMissingFields
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLen {
		return nil, ErrNameTooLong
	}

	resp := &dto.CreateResp{Success: true}
	err := s.repo.Tx(ctx, func(tx TxRepository) error {
		k, err := tx.OpenKingdom(ctx, uid)
		if err != nil {
			return err
		}
		if k == nil {
			k = &kdomain.Kingdom{
				Name:       fmt.Sprintf("Kingdom %d", s.now().UnixMilli()),
				Size:       kdomain.DefaultSize,
				MaxPlayers: kdomain.DefaultMaxPlayers,
			}
			if err := tx.CreateKingdom(ctx, k); err != nil {
				return err
			}
		}

		p := &domain.Player{UserID: uid, KingdomID: k.ID, Name: name, Gender: gender, Avatar: avatar}
		if err := tx.CreatePlayer(ctx, p); err != nil {
			return err
		}

		tile, err := s.capitalTile(ctx, tx, k)
		if err != nil {
			return err
		}
		city := &cdomain.City{
			Name:       name + "'s Capital",
			PlayerID:   p.ID,
			MapTileID:  tile.ID,
			Population: 100,
			Age:        1,
			Resources:  cdomain.StartingResources,
		}
		if err := tx.CreateCity(ctx, city); err != nil {
			return err
		}
		if err := tx.SetLastCity(ctx, p.ID, city.ID); err != nil {
			return err
		}
		if err := tx.SetLastPlayedKingdom(ctx, uid, k.ID); err != nil {
			return err
		}
		p.LastCityID = &city.ID

		resp.Player, resp.City, resp.Kingdom = p, city, k
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// capitalTile 优先用空闲平原，没有就在网格内随机补一块。
func (s *PlayerService) capitalTile(ctx context.Context, tx TxRepository, k *kdomain.Kingdom) (*kdomain.MapTile, error) {
	tile, err := tx.FreeTile(ctx, k.ID, kdomain.TilePlains)
	if err != nil || tile != nil {
		return tile, err
	}
	grid := k.GridSize()
	for i := 0; i < tilePlacementAttempts; i++ {
		t := &kdomain.MapTile{
			KingdomID: k.ID,
			X:         s.intn(grid),
			Y:         s.intn(grid),
			Type:      kdomain.TilePlains,
			Level:     kdomain.MinTileLevel,
			Yields:    fallbackYields,
		}
		ok, err := tx.CreateTile(ctx, t)
		if err != nil {
			return nil, err
		}
		if ok {
			return t, nil
		}
	}
	return nil, ErrNoTile.WithData("kingdom_id", k.ID)
}

// owned 玩家不存在 404，不属于当前账号 401。
func (s *PlayerService) owned(ctx context.Context, uid, playerID int) (*domain.Player, error) {
	if playerID <= 0 {
		return nil, ErrInvalidPlayer
	}
	p, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(uid) {
		return nil, domain.ErrPlayerNotOwned.WithData("uid", uid).WithData("player_id", playerID)
	}
	return p, nil
}

func (s *PlayerService) Cities(ctx context.Context, uid, playerID int) ([]dto.CityView, error) {
	if _, err := s.owned(ctx, uid, playerID); err != nil {
		return nil, err
	}
	cities, err := s.repo.Cities(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if cities == nil {
		cities = []dto.CityView{}
	}
	return cities, nil
}

func (s *PlayerService) SetLastCity(ctx context.Context, uid, playerID int, req dto.SetLastCityReq) (*dto.SetLastCityResp, error) {
	if req.LastCity <= 0 {
		return nil, ErrInvalidCity
	}
	if _, err := s.owned(ctx, uid, playerID); err != nil {
		return nil, err
	}
	cities, err := s.repo.Cities(ctx, playerID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, c := range cities {
		if c.ID == req.LastCity {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrCityNotFound.WithData("player_id", playerID).WithData("city_id", req.LastCity)
	}
	if err := s.repo.SetLastCity(ctx, playerID, req.LastCity); err != nil {
		return nil, err
	}
	return &dto.SetLastCityResp{Success: true, LastCity: req.LastCity}, nil
}

func (s *PlayerService) Alliance(ctx context.Context, uid, playerID int) (*dto.AllianceResp, error) {
	if _, err := s.owned(ctx, uid, playerID); err != nil {
		return nil, err
	}
	a, err := s.repo.Alliance(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return &dto.AllianceResp{}, nil
	}
	id := a.ID
	return &dto.AllianceResp{HasAlliance: true, AllianceName: a.Name, AllianceID: &id}, nil
}
