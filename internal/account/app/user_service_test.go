package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"Realm/internal/account/domain"
	"Realm/internal/account/dto"
	"Realm/internal/shared/security"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	getErr  error

	created   []*domain.User
	createErr error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{byEmail: map[string]*domain.User{}}
	for _, u := range users {
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	u.ID = len(r.byEmail) + 1
	r.byEmail[u.Email] = u
	r.created = append(r.created, u)
	return nil
}

func plainHash(pwd string) (string, error) { return "h:" + pwd, nil }
func plainCheck(hash, pwd string) bool     { return hash == "h:"+pwd }

func newService(repo UserRepo) *UserService {
	return NewUserService(repo, plainHash, plainCheck, security.AwardFor, time.Hour)
}

func TestRegister_缺少邮箱或密码(t *testing.T) {
	s := newService(newFakeUserRepo())
	_, err := s.Register(context.Background(), dto.RegisterReq{Email: " ", Password: "x"})
	if !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("期望 ErrInvalidParam, got=%v", err)
	}
	_, err = s.Register(context.Background(), dto.RegisterReq{Email: "a@b.c"})
	if !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("期望 ErrInvalidParam, got=%v", err)
	}
}

func TestRegister_邮箱已存在(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: 1, Email: "a@b.c", Password: "h:x"})
	s := newService(repo)

	_, err := s.Register(context.Background(), dto.RegisterReq{Email: "A@B.c", Password: "x"})
	if !errors.Is(err, ErrUserExist) {
		t.Fatalf("期望 ErrUserExist, got=%v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("期望不写库, created=%d", len(repo.created))
	}
}

func TestRegister_成功保存哈希并返回视图(t *testing.T) {
	repo := newFakeUserRepo()
	s := newService(repo)

	v, err := s.Register(context.Background(), dto.RegisterReq{Email: "New@Example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if v.Email != "new@example.com" || v.ID == 0 {
		t.Fatalf("返回视图不符: %+v", v)
	}
	if repo.created[0].Password != "h:secret" {
		t.Fatalf("期望保存哈希而不是明文, got=%q", repo.created[0].Password)
	}
}

func TestRegister_并发撞唯一索引仍返回已存在(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = domain.ErrUserExists
	s := newService(repo)

	_, err := s.Register(context.Background(), dto.RegisterReq{Email: "a@b.c", Password: "x"})
	if !errors.Is(err, ErrUserExist) {
		t.Fatalf("期望 ErrUserExist, got=%v", err)
	}
}

func TestRegister_仓储故障返回系统错误(t *testing.T) {
	repo := newFakeUserRepo()
	repo.getErr = domain.ErrSystemUnavailable.WithCause(errors.New("conn refused"))
	s := newService(repo)

	_, err := s.Register(context.Background(), dto.RegisterReq{Email: "a@b.c", Password: "x"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("期望 ErrUnavailable, got=%v", err)
	}
}

func TestLogin_用户不存在与密码错误同样返回凭证无效(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")
	s := newService(newFakeUserRepo(&domain.User{ID: 3, Email: "a@b.c", Password: "h:right"}))

	if _, err := s.Login(context.Background(), dto.LoginReq{Email: "x@b.c", Password: "right"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("期望 ErrInvalidCredentials, got=%v", err)
	}
	if _, err := s.Login(context.Background(), dto.LoginReq{Email: "a@b.c", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("期望 ErrInvalidCredentials, got=%v", err)
	}
}

func TestLogin_Award失败应返回系统错误(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	s := newService(newFakeUserRepo(&domain.User{ID: 3, Email: "a@b.c", Password: "h:pwd"}))

	_, err := s.Login(context.Background(), dto.LoginReq{Email: "a@b.c", Password: "pwd"})
	if !errors.Is(err, ErrInternalServer) {
		t.Fatalf("期望返回系统错误 ErrInternalServer, got=%v", err)
	}
	if !errors.Is(err, security.ErrJWTSecretMissing) {
		t.Fatalf("期望保留 JWT_SECRET 缺失的 cause 链, got=%v", err)
	}
}

func TestLogin_成功签发可解析的token(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")
	s := newService(newFakeUserRepo(&domain.User{ID: 42, Email: "a@b.c", Password: "h:pwd"}))

	resp, err := s.Login(context.Background(), dto.LoginReq{Email: "a@b.c", Password: "pwd"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	_, claims, err := security.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("期望 token 可解析, err=%v", err)
	}
	if claims.Uid != 42 || claims.Email != "a@b.c" || resp.User.ID != 42 {
		t.Fatalf("token 内容不符: claims=%+v user=%+v", claims, resp.User)
	}
}

func TestSession_用户被删视为未授权(t *testing.T) {
	s := newService(newFakeUserRepo())
	if _, err := s.Session(context.Background(), 5); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("期望 ErrUnauthorized, got=%v", err)
	}
	if _, err := s.Session(context.Background(), 0); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("期望 ErrUnauthorized, got=%v", err)
	}
}
