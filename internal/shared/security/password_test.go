package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_可校验(t *testing.T) {
	hash, err := HashPasswordCost("hunter2", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !CheckPassword(hash, "hunter2") {
		t.Fatalf("期望正确密码校验通过")
	}
	if CheckPassword(hash, "hunter3") {
		t.Fatalf("期望错误密码校验失败")
	}
	if CheckPassword(hash, "") {
		t.Fatalf("期望空密码校验失败")
	}
}

func TestHashPassword_空密码报错(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatalf("期望空密码返回错误")
	}
}
