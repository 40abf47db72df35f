package ws

import (
	"Realm/modules/kit/logx"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-think/openssl"
	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"Realm/internal/shared/security"
	"Realm/internal/shared/utils"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 * 1024
	outChanSize    = 1000
)

type WsServer struct {
	id         string
	conn       *websocket.Conn
	router     *Router
	outChan    chan *WsMsgResp
	property   map[string]any
	needSecret bool
	// writeMu 保证同一时刻只有一个 goroutine 写 conn（gorilla 的约束）
	writeMu sync.Mutex
	sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
	log       logx.Logger
}

func NewWsServer(wsConn *websocket.Conn, needSecret bool, l logx.Logger) *WsServer {
	return &WsServer{
		id:         uuid.NewString(),
		conn:       wsConn,
		outChan:    make(chan *WsMsgResp, outChanSize),
		property:   make(map[string]any),
		needSecret: needSecret,
		done:       make(chan struct{}),
		log:        l,
	}
}

func (s *WsServer) ID() string {
	return s.id
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) SetProperty(key string, value any) {
	s.Lock()
	defer s.Unlock()
	s.property[key] = value
}

func (s *WsServer) GetProperty(key string) any {
	s.RLock()
	defer s.RUnlock()
	return s.property[key]
}

func (s *WsServer) RemoveProperty(key string) {
	s.Lock()
	defer s.Unlock()
	delete(s.property, key)
}

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

// Push 投递一条服务端主动推送；连接已关闭或发送队列已满时丢弃。
func (s *WsServer) Push(name string, data any) {
	s.enqueue(&WsMsgResp{
		Body: &RespBody{
			Seq:  0,
			Name: name,
			Msg:  data,
		},
	})
}

func (s *WsServer) enqueue(resp *WsMsgResp) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.outChan <- resp:
	case <-s.done:
	default:
		s.log.Warn("ws_server out chan full, drop msg", zap.String("conn_id", s.id), zap.String("name", resp.Body.Name))
	}
}

func (s *WsServer) Run() {
	go s.readMsgLoop()
	go s.writeMsgLoop()
}

func (s *WsServer) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			e := fmt.Sprintf("%v", err)
			s.log.Error("ws readMsgLoop error", zap.String("err", e))
		}
		s.Close()
	}()
	s.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Error("ws_server read msg", zap.Error(err))
			}
			return
		}

		plain, ok := s.decode(data)
		if !ok {
			continue
		}

		reqBody := ReqBody{}
		if err = json.Unmarshal(plain, &reqBody); err != nil {
			s.log.Error("ws_server readMsgLoop unmarshal json error", zap.Error(err))
			continue
		}

		req := WsMsgReq{Body: &reqBody, Conn: s}
		// req 和 resp 的 Seq 必须一致
		resp := WsMsgResp{Body: &RespBody{Seq: req.Body.Seq, Name: reqBody.Name, Msg: reqBody.Msg}}
		if reqBody.Name == HeartbeatMsg {
			h := &Heartbeat{}
			_ = mapstructure.Decode(reqBody.Msg, h)
			h.STime = time.Now().UnixMilli()
			resp.Body.Msg = h
		} else {
			s.log.Debug("ws_server read msg", zap.String("conn_id", s.id), zap.Any("data", reqBody))
			s.router.Dispatch(&req, &resp)
		}

		s.enqueue(&resp)
	}
}

// decode 加密模式下：解压 → 取密钥 → AES 解密；明文模式原样返回。
func (s *WsServer) decode(data []byte) ([]byte, bool) {
	if !s.needSecret {
		return data, true
	}
	secretData, err := security.UnZip(data)
	if err != nil {
		s.log.Error("ws_server readMsgLoop unzip", zap.Error(err))
		return nil, false
	}

	secretKey, _ := s.GetProperty(SecretKey).(string)
	if secretKey == "" {
		s.log.Error("ws_server readMsgLoop not found secretKey", zap.String("conn_id", s.id))
		return nil, false
	}

	decryptedData, err := security.AesCBCDecrypt(secretData, []byte(secretKey), []byte(secretKey), openssl.ZEROS_PADDING)
	if err != nil {
		s.log.Error("ws_server readMsgLoop decrypt error", zap.Error(err))
		// 出错后，重新握手
		s.handshake()
		return nil, false
	}
	return decryptedData, true
}

func (s *WsServer) writeMsgLoop() {
	for {
		select {
		case msg, ok := <-s.outChan:
			if !ok {
				return
			}
			if msg.Body.Name != HeartbeatMsg {
				s.log.Debug("ws_server write msg", zap.String("conn_id", s.id), zap.String("name", msg.Body.Name))
			}
			if err := s.write(msg); err != nil {
				s.log.Error("ws_server write error", zap.Error(err))
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
		close(s.done)
	})
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}

func (s *WsServer) write(msg *WsMsgResp) error {
	marshal, err := json.Marshal(msg.Body)
	if err != nil {
		s.log.Error("ws_server write marshal json error", zap.Error(err))
		return nil
	}
	if !s.needSecret {
		return s.writeFrame(websocket.TextMessage, marshal)
	}

	key, _ := s.GetProperty(SecretKey).(string)
	if key == "" {
		s.log.Error("ws_server write not found secretKey", zap.String("conn_id", s.id))
		return nil
	}
	encryptedData, err := security.AesCBCEncrypt(marshal, []byte(key), []byte(key), openssl.ZEROS_PADDING)
	if err != nil {
		s.log.Error("ws_server write encrypt error", zap.Error(err))
		return nil
	}
	zip, err := security.Zip(encryptedData)
	if err != nil {
		s.log.Error("ws_server write zip error", zap.Error(err))
		return nil
	}
	// 压缩后的密文是二进制字节流，必须走 BinaryMessage，不能走 TextMessage
	return s.writeFrame(websocket.BinaryMessage, zip)
}

func (s *WsServer) writeFrame(messageType int, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(messageType, data)
}

// handshake 下发本连接的 AES 密钥（握手帧只压缩不加密）。
func (s *WsServer) handshake() {
	if !s.needSecret {
		return
	}
	secretKey, _ := s.GetProperty(SecretKey).(string)
	if secretKey == "" {
		secretKey = utils.RandSeq(16)
		s.SetProperty(SecretKey, secretKey)
	}

	body := &RespBody{Name: HandshakeMsg, Msg: &Handshake{Key: secretKey}}
	data, err := json.Marshal(body)
	if err != nil {
		s.log.Error("ws_server handshake marshal json error", zap.Error(err))
		return
	}
	zipData, err := security.Zip(data)
	if err != nil {
		s.log.Error("ws_server handshake zip error", zap.Error(err))
		return
	}
	if err := s.writeFrame(websocket.BinaryMessage, zipData); err != nil {
		s.log.Error("ws_server handshake write error", zap.Error(err))
	}
}
