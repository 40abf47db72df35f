package interfaces

import (
	cityactor "Realm/internal/city/actor"
	"Realm/internal/city/app"
	"Realm/internal/city/infra/repo"
	"Realm/internal/city/interfaces/handler"
	"Realm/internal/shared/transport/http/middleware"
	"Realm/modules/kit/logx"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Options struct {
	CookieName string
	// ActorIdle 城市 actor 空闲多久后回收。
	ActorIdle  time.Duration
	AskTimeout time.Duration
}

type Module struct {
	runtime *cityactor.Runtime
	city    *handler.City
	opts    Options
}

func New(db *gorm.DB, kmap app.KingdomMap, log logx.Logger, opts Options) *Module {
	rt := cityactor.NewRuntime(opts.ActorIdle, opts.AskTimeout)
	svc := app.NewService(repo.NewCityRepo(db), kmap, rt)
	return &Module{
		runtime: rt,
		city:    handler.NewCity(svc, log),
		opts:    opts,
	}
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.city.RegisterRoutes(g, middleware.RequireAuth(m.opts.CookieName))
}

// Close 停掉城市 actor 系统。
func (m *Module) Close() {
	m.runtime.Shutdown()
}
