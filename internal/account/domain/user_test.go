package domain

import "testing"

func TestNormalizeEmail_去空格并转小写(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Fatalf("期望 alice@example.com, got=%q", got)
	}
}

func TestCheckPassword_空密码直接失败(t *testing.T) {
	called := false
	u := User{Password: "hash"}
	ok := u.CheckPassword("", func(hash, pwd string) bool {
		called = true
		return true
	})
	if ok || called {
		t.Fatalf("期望空密码不进入校验, ok=%v called=%v", ok, called)
	}
	if !u.CheckPassword("pwd", func(hash, pwd string) bool { return hash == "hash" && pwd == "pwd" }) {
		t.Fatalf("期望校验函数结果透传")
	}
}
