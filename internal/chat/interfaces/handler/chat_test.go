package handler

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"Realm/internal/chat/app"
	"Realm/internal/chat/domain"
	"Realm/internal/shared/security"
	"Realm/internal/shared/transport"
	"Realm/internal/shared/transport/http/middleware"
	"Realm/internal/shared/transport/ws"
	"Realm/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type memRepo struct {
	mu        sync.Mutex
	msgs      []domain.ChatMessage
	appendErr error
}

func (r *memRepo) Speaker(ctx context.Context, uid, playerID int) (*domain.Speaker, error) {
	if uid != 11 || (playerID > 0 && playerID != 1) {
		return nil, domain.ErrPlayerNotFound
	}
	return &domain.Speaker{PlayerID: 1, UserID: 11, Name: "Arthur", KingdomID: 1}, nil
}

func (r *memRepo) Room(ctx context.Context, scope domain.Scope) (*domain.ChatRoom, error) {
	room := scope.NewRoom()
	room.ID = 1
	return room, nil
}

func (r *memRepo) Append(ctx context.Context, m *domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	m.ID = int64(len(r.msgs) + 1)
	r.msgs = append(r.msgs, *m)
	return nil
}

func (r *memRepo) Recent(ctx context.Context, roomID, limit int) ([]domain.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ChatMessage(nil), r.msgs...), nil
}

type fakeConn struct {
	mu     sync.Mutex
	props  map[string]any
	pushed []string
	done   chan struct{}
}

func newFakeConn(uid int) *fakeConn {
	c := &fakeConn{props: map[string]any{}, done: make(chan struct{})}
	if uid > 0 {
		c.props[ws.ConnKeyUID] = uid
	}
	return c
}

func (c *fakeConn) ID() string                  { return "conn-1" }
func (c *fakeConn) SetProperty(k string, v any) { c.mu.Lock(); c.props[k] = v; c.mu.Unlock() }
func (c *fakeConn) GetProperty(k string) any    { c.mu.Lock(); defer c.mu.Unlock(); return c.props[k] }
func (c *fakeConn) RemoveProperty(k string)     { c.mu.Lock(); delete(c.props, k); c.mu.Unlock() }
func (c *fakeConn) Addr() string                { return "127.0.0.1:1" }
func (c *fakeConn) Close()                      {}
func (c *fakeConn) Done() <-chan struct{}       { return c.done }
func (c *fakeConn) Push(name string, _ any) {
	c.mu.Lock()
	c.pushed = append(c.pushed, name)
	c.mu.Unlock()
}

func (c *fakeConn) got(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.pushed {
		if p == name {
			return true
		}
	}
	return false
}

func newSvc() *app.Service {
	return newSvcWith(&memRepo{})
}

func newSvcWith(repo *memRepo) *app.Service {
	return app.NewService(repo, repo, app.NewHub(), app.Options{})
}

func newEngine(t *testing.T, svc *app.Service) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewChat(svc, logx.NewZapLogger(nil)).RegisterRoutes(r.Group("/api"), middleware.RequireAuth("realm_session"))
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

func TestChat_发送返回201(t *testing.T) {
	r := newEngine(t, newSvc())
	w := call(t, r, nethttp.MethodPost, "/api/chat/send", `{"room":"global","content":" hi ","playerId":1}`, 11)
	if w.Code != nethttp.StatusCreated || !strings.Contains(w.Body.String(), `"content":"hi"`) {
		t.Fatalf("期望 201, got=%d %s", w.Code, w.Body.String())
	}

	w = call(t, r, nethttp.MethodGet, "/api/chat/global/messages?playerId=1", "", 11)
	if w.Code != nethttp.StatusOK || !strings.Contains(w.Body.String(), `"playerName":"Arthur"`) {
		t.Fatalf("期望历史包含消息, got=%d %s", w.Code, w.Body.String())
	}
}

func TestChat_非法房间返回400(t *testing.T) {
	r := newEngine(t, newSvc())
	w := call(t, r, nethttp.MethodGet, "/api/chat/trade/messages", "", 11)
	if w.Code != nethttp.StatusBadRequest || !strings.Contains(w.Body.String(), "Invalid room type") {
		t.Fatalf("期望 400, got=%d %s", w.Code, w.Body.String())
	}
}

func TestChat_他人玩家返回404(t *testing.T) {
	r := newEngine(t, newSvc())
	w := call(t, r, nethttp.MethodPost, "/api/chat/send", `{"room":"global","content":"hi","playerId":2}`, 11)
	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("期望 404, got=%d %s", w.Code, w.Body.String())
	}
}

func TestChat_存储故障返回500通用文案(t *testing.T) {
	repo := &memRepo{appendErr: domain.ErrSystemUnavailable.WithCause(errors.New("connection reset"))}
	r := newEngine(t, newSvcWith(repo))
	w := call(t, r, nethttp.MethodPost, "/api/chat/send", `{"room":"global","content":"hi","playerId":1}`, 11)
	if w.Code != nethttp.StatusInternalServerError || !strings.Contains(w.Body.String(), "Internal server error") {
		t.Fatalf("期望 500 通用文案, got=%d %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "connection reset") {
		t.Fatalf("期望不透出底层错误: %s", w.Body.String())
	}
}

func TestChat_未登录返回401(t *testing.T) {
	r := newEngine(t, newSvc())
	w := call(t, r, nethttp.MethodGet, "/api/chat/global/messages", "", 0)
	if w.Code != nethttp.StatusUnauthorized {
		t.Fatalf("期望 401, got=%d", w.Code)
	}
}

func dispatch(r *ws.Router, conn ws.WSConn, name string, msg map[string]any) *ws.WsMsgResp {
	resp := &ws.WsMsgResp{Body: &ws.RespBody{Seq: 1, Name: name}}
	r.Dispatch(&ws.WsMsgReq{Body: &ws.ReqBody{Seq: 1, Name: name, Msg: msg}, Conn: conn}, resp)
	return resp
}

func TestWs_加入房间推送历史并接收广播(t *testing.T) {
	svc := newSvc()
	router := ws.NewRouter(logx.NewZapLogger(nil))
	NewWsHandler(svc, logx.NewZapLogger(nil)).RegisterRoutes(router)

	conn := newFakeConn(11)
	resp := dispatch(router, conn, "chat.join-room", map[string]any{"room": "global", "playerId": float64(1)})
	if resp.Body.Code != transport.OK || !conn.got(app.EventHistory) {
		t.Fatalf("期望加入成功并推送历史, code=%d", resp.Body.Code)
	}

	resp = dispatch(router, conn, "chat.send-message", map[string]any{"room": "global", "content": "hello", "playerId": float64(1)})
	if resp.Body.Code != transport.OK || !conn.got(app.EventNewMessage) {
		t.Fatalf("期望发送成功并收到广播, code=%d", resp.Body.Code)
	}
}

func TestWs_接受不带组前缀的事件名(t *testing.T) {
	router := ws.NewRouter(logx.NewZapLogger(nil))
	NewWsHandler(newSvc(), logx.NewZapLogger(nil)).RegisterRoutes(router)

	conn := newFakeConn(11)
	if resp := dispatch(router, conn, "join-room", map[string]any{"room": "global", "playerId": float64(1)}); resp.Body.Code != transport.OK {
		t.Fatalf("期望 join-room 成功, code=%d", resp.Body.Code)
	}
	if resp := dispatch(router, conn, "send-message", map[string]any{"room": "global", "content": "hi", "playerId": float64(1)}); resp.Body.Code != transport.OK || !conn.got(app.EventNewMessage) {
		t.Fatalf("期望 send-message 成功并收到广播, code=%d", resp.Body.Code)
	}
	if resp := dispatch(router, conn, "leave-room", map[string]any{"room": "global"}); resp.Body.Code != transport.OK {
		t.Fatalf("期望 leave-room 成功, code=%d", resp.Body.Code)
	}
}

func TestWs_发送失败推送错误事件(t *testing.T) {
	svc := newSvc()
	router := ws.NewRouter(logx.NewZapLogger(nil))
	NewWsHandler(svc, logx.NewZapLogger(nil)).RegisterRoutes(router)

	conn := newFakeConn(11)
	resp := dispatch(router, conn, "chat.send-message", map[string]any{"room": "global", "content": "   ", "playerId": float64(1)})
	if resp.Body.Code != transport.InvalidParam || !conn.got(app.EventError) {
		t.Fatalf("期望参数错误并推送 message-error, code=%d", resp.Body.Code)
	}
}

func TestWs_未登录连接被拒(t *testing.T) {
	router := ws.NewRouter(logx.NewZapLogger(nil))
	NewWsHandler(newSvc(), logx.NewZapLogger(nil)).RegisterRoutes(router)

	resp := dispatch(router, newFakeConn(0), "chat.join-room", map[string]any{"room": "global"})
	if resp.Body.Code != transport.SessionInvalid {
		t.Fatalf("期望 401, got=%d", resp.Body.Code)
	}
}
