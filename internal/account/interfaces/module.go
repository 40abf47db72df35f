package interfaces

import (
	"Realm/internal/account/app"
	"Realm/internal/account/infra/repo"
	"Realm/internal/account/interfaces/handler"
	"Realm/internal/shared/security"
	"Realm/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	account *handler.Account
}

func New(db *gorm.DB, log logx.Logger, cookie handler.CookieOptions) *Module {
	svc := app.NewUserService(repo.NewUserRepo(db), security.HashPassword, security.CheckPassword, security.AwardFor, cookie.TTL)
	return &Module{account: handler.NewAccount(svc, log, cookie)}
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.account.RegisterRoutes(g)
}
