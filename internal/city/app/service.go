package app

import (
	"Realm/internal/city/domain"
	"Realm/internal/city/dto"
	kdomain "Realm/internal/kingdom/domain"
	"context"
	"fmt"
	"strings"
	"time"
)

type Service struct {
	repo Repository
	kmap KingdomMap
	exec Executor
	now  func() time.Time
}

func NewService(repo Repository, kmap KingdomMap, exec Executor) *Service {
	return &Service{
		repo: repo,
		kmap: kmap,
		exec: exec,
		now:  time.Now,
	}
}

// WithClock 替换时钟，测试使用。
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// clock 统一成 UTC 毫秒精度，乐观锁比较的是落库后的值。
func (s *Service) clock() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// run 把 fn 投递到城市 actor 上执行。
func run[T any](ctx context.Context, s *Service, cityID int, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if cityID <= 0 {
		return zero, domain.InvalidParam("Invalid city ID")
	}
	v, err := s.exec.Do(ctx, cityID, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	out, _ := v.(T)
	return out, nil
}

// owned 加载城市并校验归属。
func (s *Service) owned(ctx context.Context, uid, cityID int) (*domain.City, *domain.Location, error) {
	city, loc, err := s.repo.LoadCity(ctx, cityID)
	if err != nil {
		return nil, nil, err
	}
	if loc == nil || loc.OwnerUserID != uid {
		return nil, nil, domain.ErrCityNotOwned.WithData("uid", uid).WithData("city_id", cityID)
	}
	return city, loc, nil
}

func (s *Service) state(ctx context.Context, cityID int) ([]domain.PlayerBuilding, []domain.PlayerResearch, error) {
	buildings, err := s.repo.Buildings(ctx, cityID)
	if err != nil {
		return nil, nil, err
	}
	research, err := s.repo.Research(ctx, cityID)
	if err != nil {
		return nil, nil, err
	}
	return buildings, research, nil
}

// Poll 结算一次产出并返回城市快照。
func (s *Service) Poll(ctx context.Context, uid, cityID int) (*dto.PollResp, error) {
	return run(ctx, s, cityID, func(ctx context.Context) (*dto.PollResp, error) {
		city, loc, err := s.owned(ctx, uid, cityID)
		if err != nil {
			return nil, err
		}
		buildings, research, err := s.state(ctx, cityID)
		if err != nil {
			return nil, err
		}

		now := s.clock()
		tick := domain.Tick(domain.TickInput{
			Now:         now,
			Last:        city.LastResourceGeneration,
			Producers:   domain.Producers(buildings),
			ResearchPct: domain.ResearchPercents(research),
		})
		applied, err := s.repo.ApplyGeneration(ctx, city.ID, city.LastResourceGeneration, tick.Total, now)
		if err != nil {
			return nil, err
		}

		gen := dto.Generation{Timestamp: now}
		if applied {
			city.Resources = city.Resources.Add(tick.Total)
			city.LastResourceGeneration = &now
			gen.Amounts = tick.Total
			gen.Offline = tick.Offline
			gen.OfflinePolls = tick.OfflinePolls
		} else {
			// 别的请求已经结算过这一段，直接返回最新值
			city, _, err = s.repo.LoadCity(ctx, cityID)
			if err != nil {
				return nil, err
			}
		}

		resp := snapshot(city, buildings, research, now)
		resp.Generation = gen
		if resp.KingdomMap, err = s.kingdomMap(ctx, loc); err != nil {
			return nil, err
		}
		return resp, nil
	})
}

func (s *Service) kingdomMap(ctx context.Context, loc *domain.Location) (*dto.KingdomMap, error) {
	if s.kmap == nil || loc == nil || loc.KingdomID <= 0 {
		return nil, nil
	}
	vp, err := s.kmap.Viewport(ctx, loc.KingdomID, loc.X, loc.Y, kdomain.PollViewport)
	if err != nil {
		return nil, err
	}
	return &dto.KingdomMap{Tiles: vp.Tiles, Viewport: vp.Viewport}, nil
}

func snapshot(city *domain.City, buildings []domain.PlayerBuilding, research []domain.PlayerResearch, now time.Time) *dto.PollResp {
	pct := domain.ResearchPercents(research)
	resp := &dto.PollResp{
		City:              city,
		Buildings:         nonNil(buildings),
		Research:          nonNil(research),
		ResourceBuildings: []dto.ResourceBuilding{},
		Timers: dto.Timers{
			Constructing: []domain.PlayerBuilding{},
			Research:     []domain.PlayerResearch{},
			Ready:        dto.ReadyTimers{Buildings: []int{}, Research: []int{}},
		},
		ResearchBonuses: dto.ResearchBonuses{
			Farming:     pct[domain.ResearchFarming],
			Woodworking: pct[domain.ResearchWoodworking],
			Mining:      pct[domain.ResearchMining],
		},
	}

	for _, b := range buildings {
		if b.IsConstructing {
			resp.Timers.Constructing = append(resp.Timers.Constructing, b)
			if b.ReadyAt(now) {
				resp.Timers.Ready.Buildings = append(resp.Timers.Ready.Buildings, b.ID)
			}
			continue
		}
		if b.Building == nil {
			continue
		}
		kind, researchSlug, ok := domain.ProducerOf(b.Building.Slug)
		if !ok {
			continue
		}
		bonus := 0
		if researchSlug != "" {
			bonus = pct[researchSlug]
		}
		resp.ResourceBuildings = append(resp.ResourceBuildings, dto.ResourceBuilding{
			ID:         b.ID,
			Name:       b.Building.Name,
			Slug:       b.Building.Slug,
			Level:      b.Level,
			Resource:   kind,
			Production: domain.BuildingProduction(b.Building.BaseValue, b.Building.BonusValue, b.Level, bonus),
		})
	}
	for _, r := range research {
		if !r.IsResearching {
			continue
		}
		resp.Timers.Research = append(resp.Timers.Research, r)
		if r.ReadyAt(now) {
			resp.Timers.Ready.Research = append(resp.Timers.Ready.Research, r.ResearchID)
		}
	}

	resp.CityStats = dto.CityStats{
		TotalBuildings:    len(buildings),
		ResourceBuildings: len(resp.ResourceBuildings),
		Constructing:      len(resp.Timers.Constructing),
		ActiveResearch:    len(resp.Timers.Research),
		ResearchCount:     len(research),
	}
	return resp
}

// Data 不结算产出，只读当前状态。
func (s *Service) Data(ctx context.Context, uid, cityID int) (*dto.DataResp, error) {
	return run(ctx, s, cityID, func(ctx context.Context) (*dto.DataResp, error) {
		city, _, err := s.owned(ctx, uid, cityID)
		if err != nil {
			return nil, err
		}
		buildings, research, err := s.state(ctx, cityID)
		if err != nil {
			return nil, err
		}
		return &dto.DataResp{
			City:        city,
			Buildings:   nonNil(buildings),
			Research:    nonNil(research),
			LastUpdated: s.clock(),
		}, nil
	})
}

func (s *Service) Buildings(ctx context.Context, uid, cityID int) ([]domain.PlayerBuilding, error) {
	return run(ctx, s, cityID, func(ctx context.Context) ([]domain.PlayerBuilding, error) {
		if _, _, err := s.owned(ctx, uid, cityID); err != nil {
			return nil, err
		}
		buildings, err := s.repo.Buildings(ctx, cityID)
		if err != nil {
			return nil, err
		}
		return nonNil(buildings), nil
	})
}

func (s *Service) CatalogBuildings(ctx context.Context) ([]domain.Building, error) {
	out, err := s.repo.CatalogBuildings(ctx)
	return nonNil(out), err
}

func (s *Service) CatalogResearch(ctx context.Context) ([]domain.Research, error) {
	out, err := s.repo.CatalogResearch(ctx)
	return nonNil(out), err
}

// Build 在地块上开工一座新建筑，扣费与建档在同一事务。
func (s *Service) Build(ctx context.Context, uid, cityID int, req dto.BuildReq) (*dto.BuildResp, error) {
	slug := strings.TrimSpace(req.BuildingSlug)
	if slug == "" {
		return nil, domain.InvalidParam("Missing buildingSlug")
	}
	plot := normalizePlot(req.PlotID)
	if !domain.NeedsPlot(slug) {
		plot = nil
	} else if plot == nil {
		return nil, domain.InvalidParam("Missing plotId")
	}

	return run(ctx, s, cityID, func(ctx context.Context) (*dto.BuildResp, error) {
		city, _, err := s.owned(ctx, uid, cityID)
		if err != nil {
			return nil, err
		}
		def, err := s.repo.BuildingBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		buildings, research, err := s.state(ctx, cityID)
		if err != nil {
			return nil, err
		}
		bNames, rNames, err := s.catalogNames(ctx)
		if err != nil {
			return nil, err
		}

		now := s.clock()
		if err := domain.CheckBuild(domain.BuildCheck{
			Now:           now,
			City:          *city,
			Def:           *def,
			PlotID:        plot,
			Buildings:     buildings,
			Research:      research,
			BuildingNames: bNames,
			ResearchNames: rNames,
		}); err != nil {
			return nil, err
		}

		ends := now.Add(constructionTime(def.ConstructionTime, research))
		pb := &domain.PlayerBuilding{
			PlayerID:              city.PlayerID,
			BuildingID:            def.ID,
			CityID:                city.ID,
			PlotID:                plot,
			Level:                 1,
			IsConstructing:        true,
			ConstructionStartedAt: &now,
			ConstructionEndsAt:    &ends,
		}
		cost := def.Costs.Resources()
		err = s.repo.Tx(ctx, func(tx TxRepository) error {
			if err := tx.Debit(ctx, city.ID, cost); err != nil {
				return err
			}
			return tx.CreateBuilding(ctx, pb)
		})
		if err != nil {
			return nil, err
		}
		return &dto.BuildResp{
			Success:               true,
			BuildingID:            pb.ID,
			ConstructionStartedAt: now,
			ConstructionEndsAt:    ends,
			UpdatedResources:      city.Resources.Sub(cost),
		}, nil
	})
}

// Upgrade 等级 +1 并重新进入施工。
func (s *Service) Upgrade(ctx context.Context, uid, cityID, buildingID int) (*dto.UpgradeResp, error) {
	if buildingID <= 0 {
		return nil, domain.InvalidParam("Invalid city or building ID")
	}
	return run(ctx, s, cityID, func(ctx context.Context) (*dto.UpgradeResp, error) {
		city, _, err := s.owned(ctx, uid, cityID)
		if err != nil {
			return nil, err
		}
		buildings, research, err := s.state(ctx, cityID)
		if err != nil {
			return nil, err
		}
		target, err := findBuilding(buildings, buildingID)
		if err != nil {
			return nil, err
		}

		now := s.clock()
		if err := domain.CheckUpgrade(domain.UpgradeCheck{
			Now:       now,
			City:      *city,
			Target:    *target,
			Buildings: buildings,
		}); err != nil {
			return nil, err
		}

		ends := now.Add(constructionTime(target.Building.ConstructionTime, research))
		target.Level++
		target.IsConstructing = true
		target.ConstructionStartedAt = &now
		target.ConstructionEndsAt = &ends

		cost := target.Building.Costs.Resources()
		err = s.repo.Tx(ctx, func(tx TxRepository) error {
			if err := tx.Debit(ctx, city.ID, cost); err != nil {
				return err
			}
			return tx.SaveBuilding(ctx, target)
		})
		if err != nil {
			return nil, err
		}
		return &dto.UpgradeResp{
			Success:            true,
			NewLevel:           target.Level,
			ConstructionEndsAt: ends,
			UpdatedResources:   city.Resources.Sub(cost),
		}, nil
	})
}

// Demolish 拆除不退还资源。
func (s *Service) Demolish(ctx context.Context, uid, cityID, buildingID int) (*dto.DemolishResp, error) {
	if buildingID <= 0 {
		return nil, domain.InvalidParam("Invalid city or building ID")
	}
	return run(ctx, s, cityID, func(ctx context.Context) (*dto.DemolishResp, error) {
		if _, _, err := s.owned(ctx, uid, cityID); err != nil {
			return nil, err
		}
		buildings, err := s.repo.Buildings(ctx, cityID)
		if err != nil {
			return nil, err
		}
		target, err := findBuilding(buildings, buildingID)
		if err != nil {
			return nil, err
		}
		if err := domain.CheckDemolish(*target); err != nil {
			return nil, err
		}
		err = s.repo.Tx(ctx, func(tx TxRepository) error {
			return tx.DeleteBuilding(ctx, target.ID)
		})
		if err != nil {
			return nil, err
		}
		return &dto.DemolishResp{
			Success: true,
			Message: fmt.Sprintf("%s has been demolished", target.Name()),
		}, nil
	})
}

// CompleteBuilding 施工到期后由客户端显式确认完工。
func (s *Service) CompleteBuilding(ctx context.Context, uid, cityID, buildingID int) (*dto.CompleteBuildingResp, error) {
	if buildingID <= 0 {
		return nil, domain.InvalidParam("Invalid city or building ID")
	}
	return run(ctx, s, cityID, func(ctx context.Context) (*dto.CompleteBuildingResp, error) {
		if _, _, err := s.owned(ctx, uid, cityID); err != nil {
			return nil, err
		}
		buildings, err := s.repo.Buildings(ctx, cityID)
		if err != nil {
			return nil, err
		}
		target, err := findBuilding(buildings, buildingID)
		if err != nil {
			return nil, err
		}
		if !target.IsConstructing {
			return nil, domain.Reject("Building is not under construction")
		}
		if !target.ReadyAt(s.clock()) {
			return nil, domain.Reject("Construction not yet complete")
		}

		target.IsConstructing = false
		target.ConstructionStartedAt = nil
		target.ConstructionEndsAt = nil
		err = s.repo.Tx(ctx, func(tx TxRepository) error {
			return tx.SaveBuilding(ctx, target)
		})
		if err != nil {
			return nil, err
		}
		return &dto.CompleteBuildingResp{Success: true, Building: target}, nil
	})
}

// StartResearch 研究开始时等级就已经 +1。
func (s *Service) StartResearch(ctx context.Context, uid, cityID int, req dto.StartResearchReq) (*dto.StartResearchResp, error) {
	if req.ResearchID <= 0 {
		return nil, domain.InvalidParam("Research ID is required")
	}
	return run(ctx, s, cityID, func(ctx context.Context) (*dto.StartResearchResp, error) {
		city, _, err := s.owned(ctx, uid, cityID)
		if err != nil {
			return nil, err
		}
		def, err := s.repo.ResearchByID(ctx, req.ResearchID)
		if err != nil {
			return nil, err
		}
		buildings, research, err := s.state(ctx, cityID)
		if err != nil {
			return nil, err
		}

		var existing *domain.PlayerResearch
		for i := range research {
			if research[i].ResearchID == def.ID {
				existing = &research[i]
				break
			}
		}

		now := s.clock()
		if err := domain.CheckResearch(domain.ResearchCheck{
			Now:       now,
			City:      *city,
			Def:       *def,
			Existing:  existing,
			Buildings: buildings,
			Research:  research,
		}); err != nil {
			return nil, err
		}

		pr := existing
		if pr == nil {
			pr = &domain.PlayerResearch{
				PlayerID:   city.PlayerID,
				ResearchID: def.ID,
				CityID:     city.ID,
			}
		}
		ends := now.Add(def.Duration())
		pr.Level++
		pr.IsResearching = true
		pr.ResearchStartedAt = &now
		pr.ResearchEndsAt = &ends

		cost := def.Costs.Resources()
		err = s.repo.Tx(ctx, func(tx TxRepository) error {
			if err := tx.Debit(ctx, city.ID, cost); err != nil {
				return err
			}
			return tx.SaveResearch(ctx, pr)
		})
		if err != nil {
			return nil, err
		}
		pr.Research = def
		return &dto.StartResearchResp{
			Success:          true,
			Research:         pr,
			ResearchEndsAt:   ends,
			UpdatedResources: city.Resources.Sub(cost),
		}, nil
	})
}

// CompleteResearch researchID 为科技配置 id。
func (s *Service) CompleteResearch(ctx context.Context, uid, cityID, researchID int) (*dto.CompleteResearchResp, error) {
	if researchID <= 0 {
		return nil, domain.InvalidParam("Invalid research ID")
	}
	return run(ctx, s, cityID, func(ctx context.Context) (*dto.CompleteResearchResp, error) {
		if _, _, err := s.owned(ctx, uid, cityID); err != nil {
			return nil, err
		}
		research, err := s.repo.Research(ctx, cityID)
		if err != nil {
			return nil, err
		}
		var target *domain.PlayerResearch
		for i := range research {
			if research[i].ResearchID == researchID && research[i].IsResearching {
				target = &research[i]
				break
			}
		}
		if target == nil {
			return nil, domain.ErrResearchNotFound.WithMsg("Research not found or not in progress").
				WithData("city_id", cityID).WithData("research_id", researchID)
		}
		if !target.ReadyAt(s.clock()) {
			return nil, domain.Reject("Research is not yet complete")
		}

		target.IsResearching = false
		target.ResearchStartedAt = nil
		target.ResearchEndsAt = nil
		err = s.repo.Tx(ctx, func(tx TxRepository) error {
			return tx.SaveResearch(ctx, target)
		})
		if err != nil {
			return nil, err
		}
		return &dto.CompleteResearchResp{Success: true, Research: target}, nil
	})
}

func (s *Service) catalogNames(ctx context.Context) (map[string]string, map[string]string, error) {
	bs, err := s.repo.CatalogBuildings(ctx)
	if err != nil {
		return nil, nil, err
	}
	rs, err := s.repo.CatalogResearch(ctx)
	if err != nil {
		return nil, nil, err
	}
	bNames := make(map[string]string, len(bs))
	for _, b := range bs {
		bNames[b.Slug] = b.Name
	}
	rNames := make(map[string]string, len(rs))
	for _, r := range rs {
		rNames[r.Slug] = r.Name
	}
	return bNames, rNames, nil
}

// constructionTime 建造学按当前等级折扣，最多减半。
func constructionTime(baseSeconds int, research []domain.PlayerResearch) time.Duration {
	pct := domain.ResearchPercents(research)[domain.ResearchArchitecture]
	return domain.AdjustedConstructionTime(baseSeconds, pct)
}

func findBuilding(bs []domain.PlayerBuilding, id int) (*domain.PlayerBuilding, error) {
	for i := range bs {
		if bs[i].ID == id {
			return &bs[i], nil
		}
	}
	return nil, domain.ErrBuildingNotFound.WithData("building_id", id)
}

func normalizePlot(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
