package handler

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Realm/internal/account/app"
	"Realm/internal/account/domain"
	"Realm/internal/shared/security"
	"Realm/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type memUserRepo struct {
	users []*domain.User
	err   error // 非空时模拟数据库故障
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Create(ctx context.Context, u *domain.User) error {
	u.ID = len(r.users) + 1
	r.users = append(r.users, u)
	return nil
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestEngineWith(t, &memUserRepo{})
}

func newTestEngineWith(t *testing.T, repo *memUserRepo) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	cookie := CookieOptions{Name: "realm_session", TTL: time.Hour}
	svc := app.NewUserService(repo,
		func(pwd string) (string, error) { return security.HashPasswordCost(pwd, 4) },
		security.CheckPassword, security.AwardFor, cookie.TTL)

	r := gin.New()
	NewAccount(svc, logx.NewZapLogger(nil), cookie).RegisterRoutes(r.Group("/api"))
	return r
}

func do(r *gin.Engine, method, path, body string, cookies ...*nethttp.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是 JSON: %s", w.Body.String())
	}
	return body.Error
}

func TestRegister_缺字段返回400(t *testing.T) {
	r := newTestEngine(t)
	w := do(r, nethttp.MethodPost, "/api/auth/register", `{"email":"a@b.c"}`)
	if w.Code != nethttp.StatusBadRequest {
		t.Fatalf("期望 400, got=%d", w.Code)
	}
	if got := errorOf(t, w); got != "Email and password are required" {
		t.Fatalf("错误文案不符: %q", got)
	}
}

func TestRegisterLoginSession_完整流程(t *testing.T) {
	r := newTestEngine(t)

	w := do(r, nethttp.MethodPost, "/api/auth/register", `{"email":"a@b.c","password":"pw"}`)
	if w.Code != nethttp.StatusCreated {
		t.Fatalf("期望 201, got=%d body=%s", w.Code, w.Body.String())
	}

	w = do(r, nethttp.MethodPost, "/api/auth/register", `{"email":"a@b.c","password":"pw"}`)
	if w.Code != nethttp.StatusBadRequest || errorOf(t, w) != "User already exists" {
		t.Fatalf("期望重复注册 400, got=%d body=%s", w.Code, w.Body.String())
	}

	w = do(r, nethttp.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"bad"}`)
	if w.Code != nethttp.StatusUnauthorized || errorOf(t, w) != "Invalid credentials" {
		t.Fatalf("期望密码错误 401, got=%d body=%s", w.Code, w.Body.String())
	}

	w = do(r, nethttp.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"pw"}`)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("期望登录成功, got=%d body=%s", w.Code, w.Body.String())
	}
	var session *nethttp.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "realm_session" {
			session = c
		}
	}
	if session == nil || session.Value == "" || !session.HttpOnly {
		t.Fatalf("期望下发 HttpOnly 会话 cookie, got=%+v", session)
	}

	w = do(r, nethttp.MethodGet, "/api/auth/session", "", session)
	if w.Code != nethttp.StatusOK || !strings.Contains(w.Body.String(), `"email":"a@b.c"`) {
		t.Fatalf("期望会话有效, got=%d body=%s", w.Code, w.Body.String())
	}
}

func TestSession_无cookie返回401(t *testing.T) {
	r := newTestEngine(t)
	w := do(r, nethttp.MethodGet, "/api/auth/session", "")
	if w.Code != nethttp.StatusUnauthorized {
		t.Fatalf("期望 401, got=%d", w.Code)
	}
}

func TestLogout_清除cookie(t *testing.T) {
	r := newTestEngine(t)
	w := do(r, nethttp.MethodPost, "/api/auth/logout", "")
	if w.Code != nethttp.StatusOK {
		t.Fatalf("期望 200, got=%d", w.Code)
	}
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "realm_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("期望 cookie 被清除")
	}
}

func TestLogin_数据库故障返回500通用文案(t *testing.T) {
	r := newTestEngineWith(t, &memUserRepo{err: errors.New("dial tcp 127.0.0.1:3306: connection refused")})
	w := do(r, nethttp.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"secret"}`)
	if w.Code != nethttp.StatusInternalServerError {
		t.Fatalf("期望 500, got=%d %s", w.Code, w.Body.String())
	}
	if got := errorOf(t, w); got != "Internal server error" {
		t.Fatalf("期望通用文案, got=%q", got)
	}
}
