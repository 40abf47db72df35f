package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_Sweep清理不活跃ip(t *testing.T) {
	l := NewRateLimiter(10, 20)
	now := time.Unix(1000, 0)
	l.now = func() time.Time { return now }

	l.Allow("1.1.1.1")
	now = now.Add(11 * time.Minute)
	l.Allow("2.2.2.2")

	if removed := l.Sweep(); removed != 1 {
		t.Fatalf("期望清理 1 个, got=%d", removed)
	}
	if _, ok := l.visitors["2.2.2.2"]; !ok {
		t.Fatalf("期望活跃 ip 保留")
	}
}
