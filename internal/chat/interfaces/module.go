package interfaces

import (
	"Realm/internal/chat/app"
	"Realm/internal/chat/infra/mongostore"
	"Realm/internal/chat/infra/repo"
	"Realm/internal/chat/interfaces/handler"
	"Realm/internal/shared/security"
	"Realm/internal/shared/transport/http/middleware"
	"Realm/internal/shared/transport/ws"
	"Realm/internal/shared/utils"
	"Realm/modules/kit/logx"
	"context"
	"errors"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const StoreMongo = "mongo"

var errNoSession = errors.New("no session token")

type Options struct {
	CookieName string
	// Store mysql（默认）/ mongo
	Store string
	app.Options
}

type Module struct {
	chat *handler.Chat
	ws   *handler.WsHandler
	opts Options
}

// New mongo 为 nil 或未选用时消息落 mysql。
func New(db *gorm.DB, mdb *mongo.Database, log logx.Logger, opts Options) (*Module, error) {
	chatRepo := repo.NewChatRepo(db)
	var store app.MessageStore = chatRepo
	if opts.Store == StoreMongo && mdb != nil {
		ids, err := utils.DefaultSnowflake()
		if err != nil {
			return nil, err
		}
		ms := mongostore.NewMessageStore(mdb, ids)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ms.EnsureIndexes(ctx); err != nil {
			log.Warn("chat mongo index create failed", zap.Error(err))
		}
		store = ms
	}

	svc := app.NewService(chatRepo, store, app.NewHub(), opts.Options)
	return &Module{
		chat: handler.NewChat(svc, log),
		ws:   handler.NewWsHandler(svc, log),
		opts: opts,
	}, nil
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.chat.RegisterRoutes(g, middleware.RequireAuth(m.opts.CookieName))
}

func (m *Module) WsRegister(r *ws.Router) {
	m.ws.RegisterRoutes(r)
}

// Authenticate socket 升级前校验会话 cookie。
func (m *Module) Authenticate(r *nethttp.Request) (int, error) {
	token := middleware.TokenFromRequest(r, m.opts.CookieName)
	if token == "" {
		return 0, errNoSession
	}
	_, claims, err := security.ParseToken(token)
	if err != nil {
		return 0, err
	}
	return claims.Uid, nil
}
