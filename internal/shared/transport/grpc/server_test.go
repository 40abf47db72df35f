package grpc

import (
	"Realm/modules/kit/tracex"
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc/metadata"
)

func TestServer_健康检查可用(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen err=%v", err)
	}
	s := NewServer(lis.Addr().String(), "realm.game")
	go func() { _ = s.Serve(lis) }()
	defer s.Stop(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	ok, err := CheckHealth(ctx, lis.Addr().String(), "realm.game")
	if err != nil {
		t.Fatalf("check err=%v", err)
	}
	if !ok {
		t.Fatalf("期望 SERVING")
	}

	s.SetServing("realm.game", false)
	ok, err = CheckHealth(ctx, lis.Addr().String(), "realm.game")
	if err != nil || ok {
		t.Fatalf("期望 NOT_SERVING, ok=%v err=%v", ok, err)
	}
}

func TestExtractTraceFromIncoming(t *testing.T) {
	md := metadata.Pairs(traceIDHeader, "trace-1", spanIDHeader, "span-1")
	ctx := extractTraceFromIncoming(metadata.NewIncomingContext(context.Background(), md))
	if tid, _ := tracex.TraceIDFrom(ctx); tid != "trace-1" {
		t.Fatalf("期望 trace-1, got=%q", tid)
	}
	if sid, _ := tracex.SpanIDFrom(ctx); sid != "span-1" {
		t.Fatalf("期望 span-1, got=%q", sid)
	}
}
