package handler

import (
	"Realm/internal/chat/app"
	"Realm/internal/chat/domain"
	"Realm/internal/chat/dto"
	"Realm/internal/shared/transport"
	transporthttp "Realm/internal/shared/transport/http"
	"Realm/internal/shared/transport/ws"
	"Realm/modules/kit/errx"
	"Realm/modules/kit/logx"
	"context"
	"errors"
	"time"
)

const wsCallTimeout = 5 * time.Second

type WsHandler struct {
	svc *app.Service
	log logx.Logger
}

func NewWsHandler(svc *app.Service, log logx.Logger) *WsHandler {
	return &WsHandler{svc: svc, log: log}
}

// RegisterRoutes 同时接受 chat.join-room 与裸事件名 join-room。
func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	g := r.Group("chat")
	for name, fn := range map[string]ws.HandlerFunc{
		"join-room":    h.JoinRoom,
		"leave-room":   h.LeaveRoom,
		"send-message": h.SendMessage,
	} {
		g.Handle(name, fn)
		r.Alias(name, "chat."+name)
	}
}

func (h *WsHandler) JoinRoom(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.auth(wsReq, wsResp)
	if !ok {
		return
	}
	var req dto.JoinReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, domain.ErrInvalidParam.Msg())
		return
	}

	ctx, cancel := context.WithTimeout(ctx, wsCallTimeout)
	defer cancel()
	history, err := h.svc.Join(ctx, uid, req, wsReq.Conn)
	if err != nil {
		h.error(ctx, wsResp, "chat.join-room", err)
		return
	}
	wsReq.Conn.Push(app.EventHistory, history)
	h.ok(wsResp, map[string]string{"room": req.Room})
}

func (h *WsHandler) LeaveRoom(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if _, ok := h.auth(wsReq, wsResp); !ok {
		return
	}
	var req dto.LeaveReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, domain.ErrInvalidParam.Msg())
		return
	}
	h.svc.Leave(req, wsReq.Conn)
	h.ok(wsResp, map[string]string{"room": req.Room})
}

// SendMessage 失败时除了应答，还额外推一条 message-error。
func (h *WsHandler) SendMessage(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.auth(wsReq, wsResp)
	if !ok {
		return
	}
	var req dto.SendReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, domain.ErrInvalidParam.Msg())
		wsReq.Conn.Push(app.EventError, dto.ErrorEvent{Error: domain.ErrInvalidParam.Msg()})
		return
	}

	ctx, cancel := context.WithTimeout(ctx, wsCallTimeout)
	defer cancel()
	msg, err := h.svc.Send(ctx, uid, req)
	if err != nil {
		h.error(ctx, wsResp, "chat.send-message", err)
		wsReq.Conn.Push(app.EventError, dto.ErrorEvent{Error: "Failed to send message"})
		return
	}
	h.ok(wsResp, msg)
}

func (h *WsHandler) auth(wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) (int, bool) {
	if wsReq == nil || wsReq.Conn == nil {
		h.fail(wsResp, transport.InvalidParam, "Invalid request")
		return 0, false
	}
	uid, ok := ws.UIDOf(wsReq.Conn)
	if !ok {
		h.fail(wsResp, transport.SessionInvalid, "Unauthorized")
		return 0, false
	}
	return uid, true
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	resp.Body.Msg = dto.ErrorEvent{Error: msg}
}

// error 业务码与 HTTP 状态对齐，系统错误只给通用文案。
func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, action string, err error) {
	status := toHTTPStatus(err)
	var e *errx.Error
	if errors.As(err, &e) {
		transport.SetErrorReason(ctx, string(e.Code()))
	}
	if errx.IsBiz(err) && status < transport.SystemError {
		logx.ReportBizWithLoggerContext(ctx, h.log, logx.NewBizLog(action, errReason(e), errx.MsgOf(err)))
		h.fail(resp, status, errx.MsgOf(err))
		return
	}
	logx.ReportSysErrorWithLoggerContext(ctx, h.log, logx.NewSysLog(action, err))
	if status < transport.SystemError {
		status = transport.SystemError
	}
	h.fail(resp, status, transporthttp.InternalErrorMsg)
}

func errReason(e *errx.Error) string {
	if e == nil {
		return ""
	}
	return string(e.Code())
}
