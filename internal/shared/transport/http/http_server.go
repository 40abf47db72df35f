package http

import (
	"Realm/internal/shared/transport/http/middleware"
	"Realm/modules/kit/logx"
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Registrar 由各业务模块实现，向 /api 分组注册路由。
type Registrar interface {
	HttpRegister(g *gin.RouterGroup)
}

type Server struct {
	engine *gin.Engine
	group  *gin.RouterGroup
	srv    *nethttp.Server
}

type options struct {
	allowOrigins []string
	limiter      *middleware.RateLimiter
}

type Option func(*options)

func WithAllowOrigins(origins []string) Option {
	return func(o *options) { o.allowOrigins = origins }
}

func WithRateLimiter(l *middleware.RateLimiter) Option {
	return func(o *options) { o.limiter = l }
}

func NewHttpServer(addr string, engine *gin.Engine, logger logx.Logger, opts ...Option) *Server {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if engine == nil {
		engine = gin.New()
		engine.Use(gin.Recovery())
	}
	engine.Use(middleware.Cors(o.allowOrigins...))
	engine.Use(middleware.AccessLog(logger))
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	if o.limiter != nil {
		api.Use(middleware.RateLimit(o.limiter))
	}

	return &Server{
		engine: engine,
		group:  api,
		srv: &nethttp.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Register 把各模块的路由挂到 /api 下。
func (s *Server) Register(modules ...Registrar) {
	for _, m := range modules {
		m.HttpRegister(s.group)
	}
}

// Start 启动 HTTP 服务（阻塞）。关闭时会返回 net/http.ErrServerClosed。
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) Group() *gin.RouterGroup {
	return s.group
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Handler() nethttp.Handler {
	return s.engine
}
