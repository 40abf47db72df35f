package app

import (
	"Realm/internal/chat/domain"
	"context"
)

type Repository interface {
	// Speaker playerID <= 0 时取账号下第一个玩家。
	Speaker(ctx context.Context, uid, playerID int) (*domain.Speaker, error)
	// Room 不存在时创建。
	Room(ctx context.Context, scope domain.Scope) (*domain.ChatRoom, error)
}

// MessageStore 消息落库，mysql 与 mongo 两种实现。
type MessageStore interface {
	Append(ctx context.Context, m *domain.ChatMessage) error
	// Recent 最近 limit 条，按时间升序返回。
	Recent(ctx context.Context, roomID, limit int) ([]domain.ChatMessage, error)
}

// Subscriber 房间订阅者，socket 连接实现它。
type Subscriber interface {
	ID() string
	Push(name string, data any)
	Done() <-chan struct{}
}
