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

	"Realm/internal/player/app"
	"Realm/internal/player/domain"
	"Realm/internal/player/dto"
	"Realm/internal/shared/security"
	"Realm/internal/shared/transport/http/middleware"
	"Realm/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type stubRepo struct {
	players []domain.Player
	getErr  error
}

func (r *stubRepo) ByUser(ctx context.Context, uid int) ([]domain.Player, error) {
	var out []domain.Player
	for _, p := range r.players {
		if p.UserID == uid {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubRepo) LastPlayedKingdom(ctx context.Context, uid int) (*int, error) {
	return nil, nil
}

func (r *stubRepo) Get(ctx context.Context, id int) (*domain.Player, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	for i := range r.players {
		if r.players[i].ID == id {
			p := r.players[i]
			return &p, nil
		}
	}
	return nil, domain.ErrPlayerNotFound
}

func (r *stubRepo) Cities(ctx context.Context, playerID int) ([]dto.CityView, error) {
	return nil, nil
}

func (r *stubRepo) Alliance(ctx context.Context, playerID int) (*domain.Alliance, error) {
	return nil, nil
}

func (r *stubRepo) SetLastCity(ctx context.Context, playerID, cityID int) error {
	return nil
}

func (r *stubRepo) Tx(ctx context.Context, fn func(tx app.TxRepository) error) error {
	return errors.New("unexpected write")
}

func newEngine(t *testing.T, repo *stubRepo) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewPlayer(app.NewPlayerService(repo), logx.NewZapLogger(nil)).
		RegisterRoutes(r.Group("/api"), middleware.RequireAuth("realm_session"))
	return r
}

func call(t *testing.T, r *gin.Engine, method, path, body string, uid int) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if uid > 0 {
		token, err := security.AwardFor(uid, "u@example.com", time.Hour)
		if err != nil {
			t.Fatalf("签发 token 失败: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMsg(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是 JSON: %s", w.Body.String())
	}
	return body.Error
}

func TestPlayer_未登录返回401(t *testing.T) {
	r := newEngine(t, &stubRepo{})
	w := call(t, r, nethttp.MethodGet, "/api/player", "", 0)
	if w.Code != nethttp.StatusUnauthorized {
		t.Fatalf("期望 401, got=%d", w.Code)
	}
}

func TestPlayer_当前玩家(t *testing.T) {
	r := newEngine(t, &stubRepo{players: []domain.Player{{ID: 3, UserID: 11, Name: "Arthur"}}})
	w := call(t, r, nethttp.MethodGet, "/api/player", "", 11)
	if w.Code != nethttp.StatusOK || !strings.Contains(w.Body.String(), `"name":"Arthur"`) {
		t.Fatalf("期望返回玩家, got=%d %s", w.Code, w.Body.String())
	}

	w = call(t, r, nethttp.MethodGet, "/api/player", "", 12)
	if w.Code != nethttp.StatusNotFound || errorMsg(t, w) != "Player not found" {
		t.Fatalf("期望 404 Player not found, got=%d %s", w.Code, w.Body.String())
	}
}

func TestPlayer_建角缺少字段返回400(t *testing.T) {
	r := newEngine(t, &stubRepo{})
	w := call(t, r, nethttp.MethodPost, "/api/player/create", `{"name":"Arthur"}`, 11)
	if w.Code != nethttp.StatusBadRequest || errorMsg(t, w) != "Missing required fields" {
		t.Fatalf("期望 400, got=%d %s", w.Code, w.Body.String())
	}
}

func TestPlayer_非法玩家ID返回400(t *testing.T) {
	r := newEngine(t, &stubRepo{})
	w := call(t, r, nethttp.MethodGet, "/api/player/x/cities", "", 11)
	if w.Code != nethttp.StatusBadRequest || errorMsg(t, w) != "Invalid player ID" {
		t.Fatalf("期望 400 Invalid player ID, got=%d %s", w.Code, w.Body.String())
	}
}

func TestPlayer_他人玩家返回401(t *testing.T) {
	r := newEngine(t, &stubRepo{players: []domain.Player{{ID: 3, UserID: 11}}})
	w := call(t, r, nethttp.MethodGet, "/api/player/3/alliance", "", 12)
	if w.Code != nethttp.StatusUnauthorized {
		t.Fatalf("期望 401, got=%d %s", w.Code, w.Body.String())
	}
}

func TestPlayer_城市列表为空数组(t *testing.T) {
	r := newEngine(t, &stubRepo{players: []domain.Player{{ID: 3, UserID: 11}}})
	w := call(t, r, nethttp.MethodGet, "/api/player/3/cities", "", 11)
	if w.Code != nethttp.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("期望 200 [], got=%d %s", w.Code, w.Body.String())
	}
}

func TestPlayer_设置最近城市不属于玩家返回404(t *testing.T) {
	r := newEngine(t, &stubRepo{players: []domain.Player{{ID: 3, UserID: 11}}})
	w := call(t, r, nethttp.MethodPatch, "/api/player/3/cities", `{"lastCity":9}`, 11)
	if w.Code != nethttp.StatusNotFound || errorMsg(t, w) != "City not found or does not belong to player" {
		t.Fatalf("期望 404, got=%d %s", w.Code, w.Body.String())
	}
}

func TestPlayer_系统错误返回500(t *testing.T) {
	repo := &stubRepo{getErr: domain.ErrSystemUnavailable.WithCause(errors.New("db down"))}
	r := newEngine(t, repo)
	w := call(t, r, nethttp.MethodGet, "/api/player/3/alliance", "", 11)
	if w.Code != nethttp.StatusInternalServerError || errorMsg(t, w) != "Internal server error" {
		t.Fatalf("期望 500 通用文案, got=%d %s", w.Code, w.Body.String())
	}
}
