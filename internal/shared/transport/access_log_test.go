package transport

import (
	"Realm/modules/kit/tracex"
	"context"
	"testing"
)

func TestNewContextWithParent_保留上游trace(t *testing.T) {
	parent := tracex.WithTraceID(context.Background(), "upstream")
	ctx := NewContextWithParent(parent, "GET /api/city/:id/poll")
	if tid, _ := tracex.TraceIDFrom(ctx); tid != "upstream" {
		t.Fatalf("期望保留上游 trace_id, got=%q", tid)
	}
	if al := FromContext(ctx); al == nil || al.BizCode != BizCode(SystemError) {
		t.Fatalf("期望默认业务码为 SystemError, got=%v", al)
	}
	if BizCodeSet(ctx) {
		t.Fatalf("期望未显式设置业务码")
	}
	SetBizCode(ctx, BizCode(NotFound))
	if !BizCodeSet(ctx) || FromContext(ctx).BizCode != BizCode(NotFound) {
		t.Fatalf("期望业务码被设置为 NotFound")
	}
}

func TestBizCodeFromStatus(t *testing.T) {
	if BizCodeFromStatus(201) != BizCode(OK) || BizCodeFromStatus(304) != BizCode(OK) {
		t.Fatalf("期望 2xx/304 映射为 OK")
	}
	if BizCodeFromStatus(429) != BizCode(RateLimited) {
		t.Fatalf("期望 429 原样映射")
	}
}
