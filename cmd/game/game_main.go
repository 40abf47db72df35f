package main

import (
	accountif "Realm/internal/account/interfaces"
	accounthandler "Realm/internal/account/interfaces/handler"
	chatapp "Realm/internal/chat/app"
	chatif "Realm/internal/chat/interfaces"
	cityif "Realm/internal/city/interfaces"
	kingdomif "Realm/internal/kingdom/interfaces"
	playerif "Realm/internal/player/interfaces"
	"Realm/internal/schema"
	"Realm/internal/shared/infrastructure/db"
	mongoinfra "Realm/internal/shared/infrastructure/mongo"
	"Realm/internal/shared/logs"
	"Realm/internal/shared/serverconfig"
	"Realm/internal/shared/session"
	transportgrpc "Realm/internal/shared/transport/grpc"
	transporthttp "Realm/internal/shared/transport/http"
	"Realm/internal/shared/transport/http/middleware"
	"Realm/internal/shared/transport/ws"
	"Realm/modules/kit/logx"
	"context"
	"errors"
	"flag"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "", "配置文件路径，默认向上查找 configs/conf.yml")
	migrate := flag.Bool("migrate", false, "启动前自动建表")
	probe := flag.Bool("probe", false, "探测本机 grpc 健康检查后退出，供容器 healthcheck 使用")
	flag.Parse()

	if err := serverconfig.Load(*cfgPath); err != nil {
		panic(err)
	}
	conf := serverconfig.Conf
	if *probe {
		os.Exit(runProbe(conf.GRPCServer))
	}
	if err := logs.Init("game", conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("http", conf.HTTPServer), zap.Any("game", conf.Game), zap.Any("chat", conf.ChatServer))

	gormDB, err := db.Open(conf.DB)
	if err != nil {
		logs.Fatal("open db failed", zap.Error(err))
	}
	if *migrate {
		if err := schema.Migrate(gormDB); err != nil {
			logs.Fatal("migrate failed", zap.Error(err))
		}
	}

	var mongoClient *mongo.Client
	var mongoDB *mongo.Database
	if conf.ChatServer.Store == chatif.StoreMongo {
		mongoClient, mongoDB, err = mongoinfra.Open(conf.MongoDB, logs.Logger())
		if err != nil {
			// 聊天归档不可用时退回 mysql，不影响主流程
			logs.Warn("open mongodb failed, chat falls back to mysql", zap.Error(err))
		}
	}
	defer func() {
		_ = mongoinfra.Close(mongoClient)
	}()

	baseLogger := logx.NewZapLogger(logs.Logger())
	cookieName := conf.Session.CookieName

	account := accountif.New(gormDB, baseLogger, accounthandler.CookieOptions{
		Name:   cookieName,
		Secure: conf.Session.Secure,
		TTL:    time.Duration(conf.Session.TTLHours) * time.Hour,
	})
	kingdom := kingdomif.New(gormDB, baseLogger, cookieName)
	city := cityif.New(gormDB, kingdom.Service(), baseLogger, cityif.Options{
		CookieName: cookieName,
		ActorIdle:  conf.Game.ActorIdle(),
		AskTimeout: conf.Game.ActorAskTimeout(),
	})
	defer city.Close()
	player := playerif.New(gormDB, baseLogger, cookieName)
	chat, err := chatif.New(gormDB, mongoDB, baseLogger, chatif.Options{
		CookieName: cookieName,
		Store:      conf.ChatServer.Store,
		Options: chatapp.Options{
			SocketHistory: conf.ChatServer.SocketHistory,
			RestHistory:   conf.ChatServer.RestHistory,
			MaxContentLen: conf.ChatServer.MaxContentSize,
		},
	})
	if err != nil {
		logs.Fatal("init chat failed", zap.Error(err))
	}

	var opts []transporthttp.Option
	opts = append(opts, transporthttp.WithAllowOrigins(conf.HTTPServer.AllowOrigins))
	sweepDone := make(chan struct{})
	defer close(sweepDone)
	if conf.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(conf.RateLimit.RPS, conf.RateLimit.Burst)
		go limiter.RunSweeper(sweepDone, time.Minute)
		opts = append(opts, transporthttp.WithRateLimiter(limiter))
	}

	host := conf.HTTPServer.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, conf.HTTPServer.Port)
	httpServer := transporthttp.NewHttpServer(addr, nil, baseLogger, opts...)
	httpServer.Register(account, player, city, kingdom, chat)

	// 同一账号只保留一条聊天连接
	sessMgr := session.NewSessMgr()
	wsRouter := ws.NewRouter(baseLogger)
	wsRouter.Register(chat)
	wsServer := ws.NewServer(wsRouter, baseLogger, conf.ChatServer.NeedSecret, chat.Authenticate)
	wsServer.OnConnect(func(conn ws.WSConn) {
		if uid, ok := ws.UIDOf(conn); ok {
			sessMgr.Bind(uid, conn.ID(), conn)
		}
	})
	httpServer.Engine().GET("/ws/chat", gin.WrapH(wsServer))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		logs.Info("game http server started", zap.String("addr", addr))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("game http serve failed: %w", err)
		}
	}()

	var grpcServer *transportgrpc.Server
	if conf.GRPCServer.Enabled {
		listenAddr := grpcAddr(conf.GRPCServer, "0.0.0.0")
		grpcServer = transportgrpc.NewServer(listenAddr, "realm.game")
		go func() {
			logs.Info("game grpc health server started", zap.String("addr", listenAddr))
			if err := grpcServer.Start(); err != nil {
				errCh <- fmt.Errorf("game grpc serve failed: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if grpcServer != nil {
		grpcServer.SetServing("realm.game", false)
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logs.Warn("http shutdown", zap.Error(err))
	}
	if grpcServer != nil {
		grpcServer.Stop(shutdownCtx)
	}
	logs.Info("game server stopped", zap.Int("chat_online", sessMgr.Online()))
}

func grpcAddr(cfg serverconfig.GRPCServerConfig, fallback string) string {
	host := cfg.Host
	if host == "" || host == "0.0.0.0" {
		host = fallback
	}
	return fmt.Sprintf("%s:%d", host, cfg.Port)
}

func runProbe(cfg serverconfig.GRPCServerConfig) int {
	if !cfg.Enabled {
		fmt.Fprintln(os.Stderr, "grpc server disabled")
		return 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	ok, err := transportgrpc.CheckHealth(ctx, grpcAddr(cfg, "127.0.0.1"), "realm.game")
	if err != nil || !ok {
		fmt.Fprintln(os.Stderr, "not serving:", err)
		return 1
	}
	return 0
}
