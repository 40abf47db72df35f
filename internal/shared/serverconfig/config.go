package serverconfig

import (
	"Realm/internal/shared/config"
	"os"

	"github.com/caarlos0/env/v11"
)

var Conf Config

// secrets 只允许从环境变量覆盖，避免把密钥写进仓库里的 conf.yml。
type secrets struct {
	JWTSecret     string `env:"JWT_SECRET"`
	DBPassword    string `env:"DB_PASSWORD"`
	MongoURI      string `env:"MONGODB_URI"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Admin 是种子工具创建管理员账号所需的凭据（仅来自环境变量）。
var Admin struct {
	Email    string
	Password string
}

func Load(cfgName string) error {
	if _, err := config.Load(cfgName, &Conf, applyDefaults); err != nil {
		return err
	}
	applyDefaults()
	return applyEnv()
}

func applyEnv() error {
	var s secrets
	if err := env.Parse(&s); err != nil {
		return err
	}
	if s.DBPassword != "" {
		Conf.DB.Password = s.DBPassword
	}
	if s.MongoURI != "" {
		Conf.MongoDB.URI = s.MongoURI
	}
	if s.JWTSecret != "" {
		Conf.Session.JWTSecret = s.JWTSecret
	}
	// 环境变量优先；若未设置则回填配置中的 jwt_secret，兼容本地开发场景。
	if os.Getenv("JWT_SECRET") == "" && Conf.Session.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", Conf.Session.JWTSecret)
	}
	Admin.Email = s.AdminEmail
	Admin.Password = s.AdminPassword
	return nil
}

func applyDefaults() {
	if Conf.DB.Driver == "" {
		Conf.DB.Driver = "mysql"
	}
	if Conf.ChatServer.Store == "" {
		Conf.ChatServer.Store = "mysql"
	}
	if Conf.ChatServer.SocketHistory <= 0 {
		Conf.ChatServer.SocketHistory = 20
	}
	if Conf.ChatServer.RestHistory <= 0 {
		Conf.ChatServer.RestHistory = 50
	}
	if Conf.ChatServer.MaxContentSize <= 0 {
		Conf.ChatServer.MaxContentSize = 500
	}
	if Conf.Game.PollViewport <= 0 {
		Conf.Game.PollViewport = 20
	}
	if Conf.Game.DefaultViewport <= 0 {
		Conf.Game.DefaultViewport = 50
	}
	if Conf.Game.MaxViewport <= 0 {
		Conf.Game.MaxViewport = 100
	}
	if Conf.RateLimit.RPS <= 0 {
		Conf.RateLimit.RPS = 10
	}
	if Conf.RateLimit.Burst <= 0 {
		Conf.RateLimit.Burst = 20
	}
	if Conf.Session.CookieName == "" {
		Conf.Session.CookieName = "realm_session"
	}
	if Conf.Session.TTLHours <= 0 {
		Conf.Session.TTLHours = 24 * 7
	}
	if Conf.Seed.KingdomName == "" {
		Conf.Seed.KingdomName = "Camelot"
	}
	if Conf.Seed.MapSize <= 0 {
		Conf.Seed.MapSize = 750
	}
	if Conf.Seed.MaxPlayers <= 0 {
		Conf.Seed.MaxPlayers = 50
	}
	if Conf.Seed.BatchSize <= 0 {
		Conf.Seed.BatchSize = 1000
	}
}
