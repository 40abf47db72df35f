package domain

import "time"

const (
	DefaultSize       = 750
	DefaultMaxPlayers = 50
)

type Kingdom struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"column:name;type:varchar(64);uniqueIndex;not null" json:"name"`
	Size       int       `gorm:"column:size;not null;default:750" json:"size"`
	MaxPlayers int       `gorm:"column:max_players;not null;default:50" json:"maxPlayers"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Kingdom) TableName() string { return "kingdoms" }

// GridSize 未配置 size 的旧数据按 750 处理。
func (k Kingdom) GridSize() int {
	if k.Size <= 0 {
		return DefaultSize
	}
	return k.Size
}

const (
	TilePlains    = "PLAINS"
	TileForests   = "FORESTS"
	TileHills     = "HILLS"
	TileMountains = "MOUNTAINS"
	TileFood      = "FOOD"
	TileBarb      = "BARB"
	TileRuins     = "RUINS"

	MinTileLevel = 1
	MaxTileLevel = 20
)

// Yields 地块资源产量。
type Yields struct {
	Food  int `gorm:"column:food;not null;default:0" json:"food"`
	Wood  int `gorm:"column:wood;not null;default:0" json:"wood"`
	Stone int `gorm:"column:stone;not null;default:0" json:"stone"`
	Gold  int `gorm:"column:gold;not null;default:0" json:"gold"`
}

type MapTile struct {
	ID        int    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	KingdomID int    `gorm:"column:kingdom_id;not null;uniqueIndex:uk_kingdom_xy,priority:1;index:idx_kingdom_type,priority:1" json:"kingdomId"`
	X         int    `gorm:"column:x;not null;uniqueIndex:uk_kingdom_xy,priority:3" json:"x"`
	Y         int    `gorm:"column:y;not null;uniqueIndex:uk_kingdom_xy,priority:2" json:"y"`
	Type      string `gorm:"column:type;type:varchar(16);not null;index:idx_kingdom_type,priority:2" json:"type"`
	Level     int    `gorm:"column:level;not null;default:1" json:"level"`
	Yields    Yields `gorm:"embedded;embeddedPrefix:yield_" json:"resources"`
}

func (MapTile) TableName() string { return "map_tiles" }
