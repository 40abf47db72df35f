package grpc

import (
	"context"
	"net"
	"time"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server 是运维侧的 gRPC 入口：目前只暴露标准健康检查，供编排系统探活。
type Server struct {
	srv    *gogrpc.Server
	health *health.Server
	addr   string
}

func NewServer(addr string, services ...string) *Server {
	srv := gogrpc.NewServer(
		gogrpc.ChainUnaryInterceptor(UnaryServerTraceInterceptor()),
		gogrpc.ChainStreamInterceptor(StreamServerTraceInterceptor()),
	)
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	for _, name := range services {
		hs.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	healthpb.RegisterHealthServer(srv, hs)
	return &Server{srv: srv, health: hs, addr: addr}
}

// Start 监听并阻塞服务，直到 Stop。
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	return s.srv.Serve(lis)
}

// SetServing 切换某个服务的健康状态（下线前先置 NOT_SERVING）。
func (s *Server) SetServing(service string, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(service, status)
}

// Stop 优雅停止，超时后强制关闭。
func (s *Server) Stop(ctx context.Context) {
	s.health.Shutdown()
	stopCh := make(chan struct{})
	go func() {
		s.srv.GracefulStop()
		close(stopCh)
	}()
	timeout := 10 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		timeout = time.Until(dl)
	}
	select {
	case <-stopCh:
	case <-time.After(timeout):
		s.srv.Stop()
	}
}
