package domain

import (
	"fmt"
	"time"
)

const (
	RoomGlobal   = "global"
	RoomAlliance = "alliance"

	TypeGlobal   = "GLOBAL"
	TypeAlliance = "ALLIANCE"

	MessageText = "TEXT"

	MaxContentLen = 500
)

// ChatRoom 全服频道按王国划分，联盟频道按联盟划分。
type ChatRoom struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"column:name;type:varchar(64);uniqueIndex;not null" json:"name"`
	Type       string    `gorm:"column:type;type:varchar(16);not null" json:"type"`
	KingdomID  *int      `gorm:"column:kingdom_id;index" json:"kingdomId"`
	AllianceID *int      `gorm:"column:alliance_id;index" json:"allianceId"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (ChatRoom) TableName() string { return "chat_rooms" }

// ChatMessage 发言人名字随消息落库，历史查询不再联表。
type ChatMessage struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RoomID      int       `gorm:"column:room_id;index:idx_room_created,priority:1;not null" json:"roomId"`
	PlayerID    int       `gorm:"column:player_id;index;not null" json:"playerId"`
	PlayerName  string    `gorm:"column:player_name;type:varchar(32);not null" json:"playerName"`
	Content     string    `gorm:"column:content;type:varchar(2000);not null" json:"content"`
	MessageType string    `gorm:"column:message_type;type:varchar(16);not null;default:TEXT" json:"messageType"`
	CreatedAt   time.Time `gorm:"column:created_at;index:idx_room_created,priority:2" json:"createdAt"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

// Speaker 发言所需的玩家信息。
type Speaker struct {
	PlayerID   int
	UserID     int
	Name       string
	KingdomID  int
	AllianceID *int
}

// Scope 客户端房间名加上玩家所属范围，确定唯一的房间。
type Scope struct {
	Room       string
	KingdomID  int
	AllianceID int
}

// Key 房间的唯一名，也是广播的频道名。
func (s Scope) Key() string {
	if s.Room == RoomAlliance {
		return fmt.Sprintf("%s:%d", RoomAlliance, s.AllianceID)
	}
	return fmt.Sprintf("%s:%d", RoomGlobal, s.KingdomID)
}

// NewRoom 按范围生成待创建的房间。
func (s Scope) NewRoom() *ChatRoom {
	r := &ChatRoom{Name: s.Key()}
	if s.Room == RoomAlliance {
		id := s.AllianceID
		r.Type, r.AllianceID = TypeAlliance, &id
		return r
	}
	id := s.KingdomID
	r.Type, r.KingdomID = TypeGlobal, &id
	return r
}
