package interfaces

import (
	"Realm/internal/kingdom/app"
	"Realm/internal/kingdom/infra/repo"
	"Realm/internal/kingdom/interfaces/handler"
	"Realm/internal/shared/transport/http/middleware"
	"Realm/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	svc        *app.Service
	kingdom    *handler.Kingdom
	cookieName string
}

func New(db *gorm.DB, log logx.Logger, cookieName string) *Module {
	svc := app.NewService(repo.NewKingdomRepo(db))
	return &Module{
		svc:        svc,
		kingdom:    handler.NewKingdom(svc, log),
		cookieName: cookieName,
	}
}

// Service 供城市轮询取视口。
func (m *Module) Service() *app.Service {
	return m.svc
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.kingdom.RegisterRoutes(g, middleware.RequireAuth(m.cookieName))
}
