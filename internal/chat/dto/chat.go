package dto

import (
	"Realm/internal/chat/domain"
	"time"
)

type SendReq struct {
	Room     string `json:"room" mapstructure:"room"`
	Content  string `json:"content" mapstructure:"content"`
	PlayerID int    `json:"playerId" mapstructure:"playerId"`
}

type JoinReq struct {
	Room     string `json:"room" mapstructure:"room"`
	PlayerID int    `json:"playerId" mapstructure:"playerId"`
}

type LeaveReq struct {
	Room string `json:"room" mapstructure:"room"`
}

type Message struct {
	ID          int64     `json:"id"`
	PlayerID    int       `json:"playerId"`
	PlayerName  string    `json:"playerName"`
	Content     string    `json:"content"`
	MessageType string    `json:"messageType"`
	CreatedAt   time.Time `json:"createdAt"`
}

type HistoryResp struct {
	Messages []Message `json:"messages"`
}

type SendResp struct {
	Success bool     `json:"success"`
	Message *Message `json:"message"`
}

type ErrorEvent struct {
	Error string `json:"error"`
}

func FromMessage(m domain.ChatMessage) Message {
	return Message{
		ID:          m.ID,
		PlayerID:    m.PlayerID,
		PlayerName:  m.PlayerName,
		Content:     m.Content,
		MessageType: m.MessageType,
		CreatedAt:   m.CreatedAt,
	}
}

func FromMessages(in []domain.ChatMessage) []Message {
	out := make([]Message, 0, len(in))
	for _, m := range in {
		out = append(out, FromMessage(m))
	}
	return out
}
