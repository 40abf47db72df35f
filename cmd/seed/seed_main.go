package main

import (
	accountapp "Realm/internal/account/app"
	accountdto "Realm/internal/account/dto"
	accountrepo "Realm/internal/account/infra/repo"
	cityapp "Realm/internal/city/app"
	cityrepo "Realm/internal/city/infra/repo"
	"Realm/internal/kingdom/app/mapgen"
	kdomain "Realm/internal/kingdom/domain"
	kingdomrepo "Realm/internal/kingdom/infra/repo"
	"Realm/internal/schema"
	"Realm/internal/shared/gameconfig"
	"Realm/internal/shared/infrastructure/db"
	"Realm/internal/shared/logs"
	"Realm/internal/shared/security"
	"Realm/internal/shared/serverconfig"
	"context"
	"errors"
	"flag"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfgPath := flag.String("config", "", "配置文件路径，默认向上查找 configs/conf.yml")
	flag.Parse()

	if err := serverconfig.Load(*cfgPath); err != nil {
		panic(err)
	}
	conf := serverconfig.Conf
	if err := logs.Init("seed", conf.Log); err != nil {
		panic(err)
	}

	gormDB, err := db.Open(conf.DB)
	if err != nil {
		logs.Fatal("open db failed", zap.Error(err))
	}
	if err := schema.Migrate(gormDB); err != nil {
		logs.Fatal("migrate failed", zap.Error(err))
	}

	catalog, err := gameconfig.Load(conf.Logic.CatalogDir)
	if err != nil {
		logs.Fatal("load catalog failed", zap.Error(err))
	}

	ctx := context.Background()
	if err := seedCatalog(ctx, gormDB, catalog); err != nil {
		logs.Fatal("seed catalog failed", zap.Error(err))
	}
	if err := seedKingdom(ctx, gormDB, catalog, conf.Seed); err != nil {
		logs.Fatal("seed kingdom failed", zap.Error(err))
	}
	if err := seedAdmin(ctx, gormDB); err != nil {
		logs.Fatal("seed admin failed", zap.Error(err))
	}
	logs.Info("seed done")
}

func seedCatalog(ctx context.Context, gormDB *gorm.DB, catalog *gameconfig.Catalog) error {
	buildings, research := cityapp.CatalogFromConfig(catalog)
	if err := cityrepo.NewCityRepo(gormDB).UpsertCatalog(ctx, buildings, research); err != nil {
		return err
	}
	logs.Info("catalog upserted", zap.Int("buildings", len(buildings)), zap.Int("research", len(research)))
	return nil
}

// seedKingdom 王国已存在且地块数量完整时跳过。
func seedKingdom(ctx context.Context, gormDB *gorm.DB, catalog *gameconfig.Catalog, cfg serverconfig.SeedConfig) error {
	repo := kingdomrepo.NewKingdomRepo(gormDB)
	k, err := repo.FindByName(ctx, cfg.KingdomName)
	switch {
	case errors.Is(err, kdomain.ErrKingdomNotFound):
		k = &kdomain.Kingdom{Name: cfg.KingdomName, Size: cfg.MapSize, MaxPlayers: cfg.MaxPlayers}
		if err := repo.CreateKingdom(ctx, k); err != nil {
			return err
		}
		logs.Info("kingdom created", zap.Int("kingdom_id", k.ID), zap.String("name", k.Name))
	case err != nil:
		return err
	}

	size := k.GridSize()
	want := int64(size) * int64(size)
	have, err := repo.CountTiles(ctx, k.ID)
	if err != nil {
		return err
	}
	if have >= want {
		logs.Info("map already generated", zap.Int("kingdom_id", k.ID), zap.Int64("tiles", have))
		return nil
	}

	seed := cfg.NoiseSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	start := time.Now()
	err = mapgen.Generate(mapgen.Config{
		KingdomID:    k.ID,
		Size:         size,
		Seed:         seed,
		Types:        catalog.TileTypesByFrequency(),
		RowsPerBatch: max(1, cfg.BatchSize/size),
	}, func(tiles []kdomain.MapTile) error {
		return repo.InsertTiles(ctx, tiles, cfg.BatchSize)
	})
	if err != nil {
		return err
	}
	logs.Info("map generated",
		zap.Int("kingdom_id", k.ID),
		zap.Int("size", size),
		zap.Int64("seed", seed),
		zap.Duration("cost", time.Since(start)),
	)
	return nil
}

// seedAdmin 仅当 ADMIN_EMAIL / ADMIN_PASSWORD 都设置时创建。
func seedAdmin(ctx context.Context, gormDB *gorm.DB) error {
	if serverconfig.Admin.Email == "" || serverconfig.Admin.Password == "" {
		return nil
	}
	svc := accountapp.NewUserService(accountrepo.NewUserRepo(gormDB), security.HashPassword, security.CheckPassword, security.AwardFor, time.Hour)
	_, err := svc.Register(ctx, accountdto.RegisterReq{Email: serverconfig.Admin.Email, Password: serverconfig.Admin.Password})
	if errors.Is(err, accountapp.ErrUserExist) {
		logs.Info("admin already exists", zap.String("email", serverconfig.Admin.Email))
		return nil
	}
	if err != nil {
		return err
	}
	logs.Info("admin created", zap.String("email", serverconfig.Admin.Email))
	return nil
}
