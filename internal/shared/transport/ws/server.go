package ws

import (
	"Realm/modules/kit/logx"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Authenticator 在升级前校验请求，返回登录用户 id。
type Authenticator func(r *http.Request) (int, error)

type Server struct {
	router     *Router
	log        logx.Logger
	needSecret bool
	auth       Authenticator
	onConnect  []func(conn WSConn)
	upgrader   websocket.Upgrader
}

func NewServer(r *Router, l logx.Logger, needSecret bool, auth Authenticator) *Server {
	return &Server{
		router:     r,
		log:        l,
		needSecret: needSecret,
		auth:       auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// 跨域由 CORS 配置把关，socket 允许所有来源
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// OnConnect 注册连接建立后的回调（例如会话绑定）。
func (s *Server) OnConnect(fn func(conn WSConn)) {
	s.onConnect = append(s.onConnect, fn)
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	uid := 0
	if s.auth != nil {
		id, err := s.auth(req)
		if err != nil {
			http.Error(resp, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		uid = id
	}

	wsConn, err := s.upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	wsServer := NewWsServer(wsConn, s.needSecret, s.log)
	if uid > 0 {
		wsServer.SetProperty(ConnKeyUID, uid)
	}
	s.log.Info("websocket upgrade success", zap.String("conn_id", wsServer.ID()), zap.Int("uid", uid))

	wsServer.Router(s.router)
	for _, fn := range s.onConnect {
		fn(wsServer)
	}
	wsServer.Run()
	wsServer.handshake()
}
