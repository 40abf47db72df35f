package security

import (
	"testing"
	"time"
)

func TestAwardFor_缺少JWT_SECRET应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := AwardFor(1, "", time.Hour); err == nil {
		t.Fatalf("期望 JWT_SECRET 为空时签发失败")
	}
}

func TestAwardParse_正常签发并解析(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := AwardFor(42, "a@b.c", time.Hour)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	if token == "" {
		t.Fatalf("期望 token 非空")
	}

	_, claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken err=%v", err)
	}
	if claims == nil || claims.Uid != 42 || claims.Email != "a@b.c" {
		t.Fatalf("期望 claims.Uid==42, got=%v", claims)
	}
}

func TestParseToken_换密钥后失效(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := AwardFor(7, "", time.Hour)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	t.Setenv("JWT_SECRET", "secret-b")
	if _, _, err := ParseToken(token); err == nil {
		t.Fatalf("期望签名不匹配时解析失败")
	}
}

func TestAwardFor_非正ttl回退默认有效期(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := AwardFor(7, "", -time.Minute)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	// ttl<=0 回退默认有效期，不应过期
	if _, _, err := ParseToken(token); err != nil {
		t.Fatalf("期望回退默认有效期, err=%v", err)
	}
}
