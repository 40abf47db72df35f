package domain

import "time"

const (
	FieldTypeCity  = 0
	FieldTypeField = 1

	DefaultResearchSeconds = 300
)

// StartingResources 新建主城的初始资源。
var StartingResources = Resources{Food: 100, Wood: 100, Stone: 50, Ore: 0, Gold: 50}

type City struct {
	ID                     int        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name                   string     `gorm:"column:name;type:varchar(64);not null" json:"name"`
	PlayerID               int        `gorm:"column:player_id;index;not null" json:"playerId"`
	MapTileID              int        `gorm:"column:map_tile_id;uniqueIndex;not null" json:"mapTileId"`
	Population             int        `gorm:"column:population;not null;default:100" json:"population"`
	Age                    int        `gorm:"column:age;not null;default:1" json:"age"`
	Resources              Resources  `gorm:"embedded" json:"resources"`
	LastResourceGeneration *time.Time `gorm:"column:last_resource_generation" json:"lastResourceGeneration"`
	CreatedAt              time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt              time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (City) TableName() string { return "cities" }

type Requirements struct {
	Age       int            `json:"age,omitempty"`
	Buildings map[string]int `json:"buildings,omitempty"`
	Research  map[string]int `json:"research,omitempty"`
}

// Building 建筑配置表，种子数据，运行期只读。
type Building struct {
	ID               int          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Slug             string       `gorm:"column:slug;type:varchar(64);uniqueIndex;not null" json:"slug"`
	Name             string       `gorm:"column:name;type:varchar(64);not null" json:"name"`
	Description      string       `gorm:"column:description;type:text" json:"description"`
	FieldType        int          `gorm:"column:field_type;not null;default:0" json:"fieldType"`
	Costs            Costs        `gorm:"column:costs;serializer:json" json:"costs"`
	Requirements     Requirements `gorm:"column:requirements;serializer:json" json:"requirements"`
	ConstructionTime int          `gorm:"column:construction_time;not null;default:0" json:"constructionTime"`
	Power            int          `gorm:"column:power;not null;default:0" json:"power"`
	BaseValue        int          `gorm:"column:base_value;not null;default:0" json:"baseValue"`
	BonusValue       int          `gorm:"column:bonus_value;not null;default:0" json:"bonusValue"`
}

func (Building) TableName() string { return "buildings" }

type Research struct {
	ID           int          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Slug         string       `gorm:"column:slug;type:varchar(64);uniqueIndex;not null" json:"slug"`
	Name         string       `gorm:"column:name;type:varchar(64);not null" json:"name"`
	Description  string       `gorm:"column:description;type:text" json:"description"`
	Costs        Costs        `gorm:"column:costs;serializer:json" json:"costs"`
	Requirements Requirements `gorm:"column:requirements;serializer:json" json:"requirements"`
	ResearchTime int          `gorm:"column:research_time;not null;default:300" json:"researchTime"`
	Power        int          `gorm:"column:power;not null;default:0" json:"power"`
	BaseValue    int          `gorm:"column:base_value;not null;default:0" json:"baseValue"`
	BonusValue   int          `gorm:"column:bonus_value;not null;default:0" json:"bonusValue"`
}

func (Research) TableName() string { return "research" }

// Duration 研究时长，未配置时 300 秒。
func (r Research) Duration() time.Duration {
	secs := r.ResearchTime
	if secs <= 0 {
		secs = DefaultResearchSeconds
	}
	return time.Duration(secs) * time.Second
}

// PlayerBuilding 城市里的建筑实例；(city_id, plot_id) 唯一，城墙 plot_id 为空。
type PlayerBuilding struct {
	ID                    int        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PlayerID              int        `gorm:"column:player_id;index;not null" json:"playerId"`
	BuildingID            int        `gorm:"column:building_id;not null" json:"buildingId"`
	CityID                int        `gorm:"column:city_id;not null;uniqueIndex:uk_city_plot,priority:1" json:"cityId"`
	PlotID                *string    `gorm:"column:plot_id;type:varchar(32);uniqueIndex:uk_city_plot,priority:2" json:"plotId"`
	Level                 int        `gorm:"column:level;not null;default:1" json:"level"`
	IsConstructing        bool       `gorm:"column:is_constructing;not null;default:false;index" json:"isConstructing"`
	ConstructionStartedAt *time.Time `gorm:"column:construction_started_at" json:"constructionStartedAt"`
	ConstructionEndsAt    *time.Time `gorm:"column:construction_ends_at" json:"constructionEndsAt"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
}

func (PlayerBuilding) TableName() string { return "player_buildings" }

// ReadyAt 施工已到期，等待显式完工。
func (b PlayerBuilding) ReadyAt(now time.Time) bool {
	return b.IsConstructing && (b.ConstructionEndsAt == nil || !b.ConstructionEndsAt.After(now))
}

func (b PlayerBuilding) Slug() string {
	if b.Building == nil {
		return ""
	}
	return b.Building.Slug
}

func (b PlayerBuilding) Name() string {
	if b.Building == nil {
		return "Another building"
	}
	return b.Building.Name
}

type PlayerResearch struct {
	ID                int        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PlayerID          int        `gorm:"column:player_id;index;not null" json:"playerId"`
	ResearchID        int        `gorm:"column:research_id;not null;uniqueIndex:uk_city_research,priority:2" json:"researchId"`
	CityID            int        `gorm:"column:city_id;not null;uniqueIndex:uk_city_research,priority:1" json:"cityId"`
	Level             int        `gorm:"column:level;not null;default:0" json:"level"`
	IsResearching     bool       `gorm:"column:is_researching;not null;default:false" json:"isResearching"`
	ResearchStartedAt *time.Time `gorm:"column:research_started_at" json:"researchStartedAt"`
	ResearchEndsAt    *time.Time `gorm:"column:research_ends_at" json:"researchEndsAt"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Research *Research `gorm:"foreignKey:ResearchID" json:"research,omitempty"`
}

func (PlayerResearch) TableName() string { return "player_research" }

func (r PlayerResearch) ActiveAt(now time.Time) bool {
	return r.IsResearching && r.ResearchEndsAt != nil && r.ResearchEndsAt.After(now)
}

func (r PlayerResearch) ReadyAt(now time.Time) bool {
	return r.IsResearching && (r.ResearchEndsAt == nil || !r.ResearchEndsAt.After(now))
}

func (r PlayerResearch) Slug() string {
	if r.Research == nil {
		return ""
	}
	return r.Research.Slug
}

// Location 城市所在地块与归属，用于鉴权与地图视口。
type Location struct {
	OwnerUserID int
	KingdomID   int
	X           int
	Y           int
}

// ResearchLevels slug → 等级，只统计已有等级（含研究中的当前等级）。
func ResearchLevels(rs []PlayerResearch) map[string]int {
	out := make(map[string]int, len(rs))
	for _, r := range rs {
		if s := r.Slug(); s != "" {
			out[s] = ClampLevel(r.Level)
		}
	}
	return out
}

// ResearchPercents slug → 加成百分比。
func ResearchPercents(rs []PlayerResearch) map[string]int {
	out := make(map[string]int, len(rs))
	for _, r := range rs {
		if r.Research == nil {
			continue
		}
		out[r.Research.Slug] = ResearchBonusPercent(r.Research.BaseValue, r.Research.BonusValue, r.Level)
	}
	return out
}

// Producers 过滤出已完工的资源建筑。
func Producers(bs []PlayerBuilding) []Producer {
	var out []Producer
	for _, b := range bs {
		if b.IsConstructing || b.Building == nil {
			continue
		}
		if _, _, ok := ProducerOf(b.Building.Slug); !ok {
			continue
		}
		out = append(out, Producer{
			Slug:       b.Building.Slug,
			Level:      b.Level,
			BaseValue:  b.Building.BaseValue,
			BonusValue: b.Building.BonusValue,
		})
	}
	return out
}
