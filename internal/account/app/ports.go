package app

import (
	"Realm/internal/account/domain"
	"context"
	"time"
)

type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

// PwdHasher / PwdChecker 由 security 包的 bcrypt 实现注入，测试可替换。
type PwdHasher func(pwd string) (string, error)

type PwdChecker func(hash, pwd string) bool

type TokenIssuer func(uid int, email string, ttl time.Duration) (string, error)
