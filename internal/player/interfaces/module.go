package interfaces

import (
	"Realm/internal/player/app"
	"Realm/internal/player/infra/repo"
	"Realm/internal/player/interfaces/handler"
	"Realm/internal/shared/transport/http/middleware"
	"Realm/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	player     *handler.Player
	cookieName string
}

func New(db *gorm.DB, log logx.Logger, cookieName string) *Module {
	svc := app.NewPlayerService(repo.NewPlayerRepo(db))
	return &Module{
		player:     handler.NewPlayer(svc, log),
		cookieName: cookieName,
	}
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.player.RegisterRoutes(g, middleware.RequireAuth(m.cookieName))
}
