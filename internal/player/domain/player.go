package domain

import "time"

const MaxNameLen = 32

type Player struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     int       `gorm:"column:user_id;index;not null" json:"userId"`
	KingdomID  int       `gorm:"column:kingdom_id;index;not null" json:"kingdomId"`
	Name       string    `gorm:"column:name;type:varchar(32);not null" json:"name"`
	Gender     string    `gorm:"column:gender;type:varchar(16)" json:"gender"`
	Avatar     string    `gorm:"column:avatar;type:varchar(255)" json:"avatar"`
	LastCityID *int      `gorm:"column:last_city_id" json:"lastCity"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Player) TableName() string { return "players" }

// OwnedBy 玩家角色只归属一个账号。
func (p Player) OwnedBy(uid int) bool {
	return uid > 0 && p.UserID == uid
}

type Alliance struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	KingdomID int       `gorm:"column:kingdom_id;index;not null" json:"kingdomId"`
	Name      string    `gorm:"column:name;type:varchar(64);uniqueIndex;not null" json:"name"`
	LeaderID  int       `gorm:"column:leader_id;not null" json:"leaderId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Alliance) TableName() string { return "alliances" }

const (
	RoleLeader = "LEADER"
	RoleMember = "MEMBER"
)

// AllianceMember 一个玩家同时只能在一个联盟。
type AllianceMember struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AllianceID int       `gorm:"column:alliance_id;index;not null" json:"allianceId"`
	PlayerID   int       `gorm:"column:player_id;uniqueIndex;not null" json:"playerId"`
	Role       string    `gorm:"column:role;type:varchar(16);not null;default:MEMBER" json:"role"`
	JoinedAt   time.Time `gorm:"column:joined_at;autoCreateTime" json:"joinedAt"`
}

func (AllianceMember) TableName() string { return "alliance_members" }
