package schema

import (
	accountdomain "Realm/internal/account/domain"
	chatdomain "Realm/internal/chat/domain"
	citydomain "Realm/internal/city/domain"
	kingdomdomain "Realm/internal/kingdom/domain"
	playerdomain "Realm/internal/player/domain"

	"gorm.io/gorm"
)

// Models 建表顺序按外键依赖排列。
func Models() []any {
	return []any{
		&accountdomain.User{},
		&kingdomdomain.Kingdom{},
		&kingdomdomain.MapTile{},
		&playerdomain.Player{},
		&playerdomain.Alliance{},
		&playerdomain.AllianceMember{},
		&citydomain.City{},
		&citydomain.Building{},
		&citydomain.Research{},
		&citydomain.PlayerBuilding{},
		&citydomain.PlayerResearch{},
		&chatdomain.ChatRoom{},
		&chatdomain.ChatMessage{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
