package app

import (
	"Realm/internal/chat/domain"
	"Realm/internal/chat/dto"
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultSocketHistory = 20
	DefaultRestHistory   = 50
)

var ErrContentLength = domain.ErrInvalidParam.WithMsg("Message must be between 1 and 500 characters")

type Options struct {
	SocketHistory int
	RestHistory   int
	MaxContentLen int
}

type Service struct {
	repo  Repository
	store MessageStore
	hub   *Hub
	opts  Options
	now   func() time.Time
}

func NewService(repo Repository, store MessageStore, hub *Hub, opts Options) *Service {
	if opts.SocketHistory <= 0 {
		opts.SocketHistory = DefaultSocketHistory
	}
	if opts.RestHistory <= 0 {
		opts.RestHistory = DefaultRestHistory
	}
	if opts.MaxContentLen <= 0 || opts.MaxContentLen > domain.MaxContentLen {
		opts.MaxContentLen = domain.MaxContentLen
	}
	return &Service{repo: repo, store: store, hub: hub, opts: opts, now: time.Now}
}

// resolve 校验房间名与发言人，返回对应房间（不存在则创建）。
func (s *Service) resolve(ctx context.Context, uid, playerID int, room string) (*domain.Speaker, *domain.ChatRoom, error) {
	if room != domain.RoomGlobal && room != domain.RoomAlliance {
		return nil, nil, domain.ErrInvalidRoom.WithData("room", room)
	}
	sp, err := s.repo.Speaker(ctx, uid, playerID)
	if err != nil {
		return nil, nil, err
	}
	scope := domain.Scope{Room: room, KingdomID: sp.KingdomID}
	if room == domain.RoomAlliance {
		if sp.AllianceID == nil {
			return nil, nil, domain.ErrNotInAlliance.WithData("player_id", sp.PlayerID)
		}
		scope.AllianceID = *sp.AllianceID
	}
	r, err := s.repo.Room(ctx, scope)
	if err != nil {
		return nil, nil, err
	}
	return sp, r, nil
}

// History REST 拉取，最近 RestHistory 条，时间升序。
func (s *Service) History(ctx context.Context, uid, playerID int, room string) (*dto.HistoryResp, error) {
	_, r, err := s.resolve(ctx, uid, playerID, room)
	if err != nil {
		return nil, err
	}
	msgs, err := s.store.Recent(ctx, r.ID, s.opts.RestHistory)
	if err != nil {
		return nil, err
	}
	return &dto.HistoryResp{Messages: dto.FromMessages(msgs)}, nil
}

// Send 先落库再广播。
func (s *Service) Send(ctx context.Context, uid int, req dto.SendReq) (*dto.Message, error) {
	content := strings.TrimSpace(req.Content)
	if req.Room == "" || req.Content == "" {
		return nil, domain.ErrInvalidParam
	}
	if n := utf8.RuneCountInString(content); n == 0 || n > s.opts.MaxContentLen {
		return nil, ErrContentLength
	}
	sp, r, err := s.resolve(ctx, uid, req.PlayerID, req.Room)
	if err != nil {
		return nil, err
	}

	m := &domain.ChatMessage{
		RoomID:      r.ID,
		PlayerID:    sp.PlayerID,
		PlayerName:  sp.Name,
		Content:     content,
		MessageType: domain.MessageText,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.store.Append(ctx, m); err != nil {
		return nil, err
	}
	view := dto.FromMessage(*m)
	s.hub.Publish(r.Name, EventNewMessage, view)
	return &view, nil
}

// Join 订阅房间并返回最近 SocketHistory 条。
func (s *Service) Join(ctx context.Context, uid int, req dto.JoinReq, sub Subscriber) ([]dto.Message, error) {
	_, r, err := s.resolve(ctx, uid, req.PlayerID, req.Room)
	if err != nil {
		return nil, err
	}
	msgs, err := s.store.Recent(ctx, r.ID, s.opts.SocketHistory)
	if err != nil {
		return nil, err
	}
	s.hub.Join(r.Name, req.Room, sub)
	return dto.FromMessages(msgs), nil
}

func (s *Service) Leave(req dto.LeaveReq, sub Subscriber) {
	s.hub.Leave(req.Room, sub)
}
