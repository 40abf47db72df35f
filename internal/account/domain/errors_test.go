package domain

import (
	"errors"
	"fmt"
	"testing"

	"Realm/modules/kit/errx"
)

func TestErrUserExists_按错误码匹配(t *testing.T) {
	cause := errors.New("Error 1062: Duplicate entry 'a@b.com' for key 'users.email'")
	err := ErrUserExists.WithData("email", "a@b.com").WithCause(cause)

	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("期望 errors.Is(err, ErrUserExists) == true, err=%v", err)
	}
	if !errors.Is(fmt.Errorf("wrap: %w", err), ErrUserExists) {
		t.Fatalf("期望包装后仍可匹配, err=%v", err)
	}
	if errors.Is(err, ErrUserNotFound) {
		t.Fatalf("期望不同错误码互不匹配")
	}
	if err.Code() != CodeUserExists {
		t.Fatalf("期望 code=%s, got=%s", CodeUserExists, err.Code())
	}
	if !errx.IsBiz(err) || err.Stack() != nil {
		t.Fatalf("期望唯一冲突是业务错误且不捕获栈")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链不丢，err=%v", err)
	}
}

func TestErrSystemUnavailable_系统错误带栈(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := ErrSystemUnavailable.WithData("email", "a@b.com").WithCause(cause)

	if err.Code() != CodeSystemUnavailable || CodeSystemUnavailable != errx.CodeUnavailable {
		t.Fatalf("期望复用 kit 的统一系统码, got=%s", err.Code())
	}
	if errx.IsBiz(err) {
		t.Fatalf("期望系统错误不是业务错误")
	}
	if len(err.Stack()) == 0 {
		t.Fatalf("期望系统错误在转换处捕获栈")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链不丢，err=%v", err)
	}
}

func TestErrUserNotFound_WithData不污染哨兵(t *testing.T) {
	err := ErrUserNotFound.WithData("uid", 1)

	if ErrUserNotFound.Data() != nil {
		t.Fatalf("期望哨兵错误 data 为空, got=%v", ErrUserNotFound.Data())
	}
	if got := err.Data()["uid"]; got != 1 {
		t.Fatalf("期望 err.Data()[\"uid\"] == 1, got=%v", got)
	}
}
