package app

import (
	"Realm/internal/account/domain"
	"Realm/internal/account/dto"
	"context"
	"errors"
	"strings"
	"time"
)

type UserService struct {
	userRepo   UserRepo
	hash       PwdHasher
	check      PwdChecker
	issue      TokenIssuer
	sessionTTL time.Duration
}

func NewUserService(userRepo UserRepo, hash PwdHasher, check PwdChecker, issue TokenIssuer, sessionTTL time.Duration) *UserService {
	return &UserService{
		userRepo:   userRepo,
		hash:       hash,
		check:      check,
		issue:      issue,
		sessionTTL: sessionTTL,
	}
}

func (s *UserService) Register(ctx context.Context, req dto.RegisterReq) (*dto.UserView, error) {
	email := domain.NormalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, ErrInvalidParam
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrUserExist.WithData("email", email)
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, ErrUnavailable.WithCause(err)
	}

	hashed, err := s.hash(req.Password)
	if err != nil {
		return nil, ErrInternalServer.WithData("email", email).WithCause(err)
	}

	u := &domain.User{Email: email, Password: hashed}
	if err := s.userRepo.Create(ctx, u); err != nil {
		// 并发注册撞唯一索引
		if errors.Is(err, domain.ErrUserExists) {
			return nil, ErrUserExist.WithData("email", email)
		}
		return nil, ErrUnavailable.WithCause(err)
	}
	v := toView(u)
	return &v, nil
}

// Login 校验凭证并签发会话 token。
func (s *UserService) Login(ctx context.Context, req dto.LoginReq) (*dto.LoginResp, error) {
	email := domain.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// 区分"用户不存在"（业务错误）和"数据库挂了"（技术错误）
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrInvalidCredentials.WithData("reason", "user not found")
		}
		return nil, ErrUnavailable.WithCause(err)
	}
	if !user.CheckPassword(req.Password, s.check) {
		return nil, ErrInvalidCredentials.WithData("reason", "password mismatch")
	}

	token, err := s.issue(user.ID, user.Email, s.sessionTTL)
	if err != nil {
		return nil, ErrInternalServer.WithData("uid", user.ID).WithCause(err)
	}
	return &dto.LoginResp{User: toView(user), Token: token}, nil
}

// Session 返回当前会话对应的用户；用户已被删除视为会话失效。
func (s *UserService) Session(ctx context.Context, uid int) (*dto.UserView, error) {
	if uid <= 0 {
		return nil, ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrUnauthorized.WithData("uid", uid)
		}
		return nil, ErrUnavailable.WithCause(err)
	}
	v := toView(user)
	return &v, nil
}

func toView(u *domain.User) dto.UserView {
	return dto.UserView{ID: u.ID, Email: u.Email, LastPlayedKingdomID: u.LastPlayedKingdomID}
}
