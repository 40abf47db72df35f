package domain

import (
	"strings"
	"time"
)

type User struct {
	ID                  int       `gorm:"column:id;primaryKey;autoIncrement;comment:用户ID" json:"id"`
	Email               string    `gorm:"column:email;type:varchar(191);uniqueIndex;not null;comment:登录邮箱" json:"email"`
	Password            string    `gorm:"column:password;type:varchar(255);not null;comment:bcrypt 哈希" json:"-"`
	LastPlayedKingdomID *int      `gorm:"column:last_played_kingdom_id;comment:最近进入的王国" json:"lastPlayedKingdomId"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// NormalizeEmail 邮箱大小写不敏感，统一小写后存储与查询。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u User) CheckPassword(pwd string, check func(hash, pwd string) bool) bool {
	if pwd == "" || u.Password == "" {
		return false
	}
	return check(u.Password, pwd)
}
