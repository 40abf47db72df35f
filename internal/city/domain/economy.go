package domain

import "time"

const (
	// PollInterval 客户端轮询间隔，离线补偿按此折算次数。
	PollInterval = 2 * time.Second

	MaxLevel = 25

	ResearchFarming      = "farming"
	ResearchWoodworking  = "woodworking"
	ResearchMining       = "mining"
	ResearchArchitecture = "architecture"
)

// BaseGeneration 每次轮询无条件产出。
var BaseGeneration = Uniform(1)

type producer struct {
	kind     ResourceKind
	research string // 空串表示不吃科技加成
}

// 资源建筑 slug → 产出资源与加成科技。market 不吃科技加成。
var producers = map[string]producer{
	"farm":       {kind: Food, research: ResearchFarming},
	"lumbermill": {kind: Wood, research: ResearchWoodworking},
	"quarry":     {kind: Stone, research: ResearchMining},
	"mine":       {kind: Ore, research: ResearchMining},
	"market":     {kind: Gold},
}

// ProducerOf 返回资源建筑的产出资源类型与加成科技 slug。
func ProducerOf(slug string) (kind ResourceKind, research string, ok bool) {
	p, ok := producers[slug]
	return p.kind, p.research, ok
}

// ClampLevel 把等级限制在 [0, MaxLevel]。
func ClampLevel(level int) int {
	switch {
	case level < 0:
		return 0
	case level > MaxLevel:
		return MaxLevel
	}
	return level
}

// ResearchBonusPercent = base + (level-1)*bonus，等级 0 无加成。
func ResearchBonusPercent(base, bonus, level int) int {
	level = ClampLevel(level)
	if level == 0 {
		return 0
	}
	return base + (level-1)*bonus
}

// BuildingProduction floor((base + bonus*(level-1)) * (100+pct) / 100)，全程整数运算。
func BuildingProduction(base, bonus, level, researchPct int) int64 {
	if level < 1 {
		return 0
	}
	raw := int64(base) + int64(bonus)*int64(level-1)
	return raw * int64(100+researchPct) / 100
}

// Producer 一个已完工的资源建筑。
type Producer struct {
	Slug       string
	Level      int
	BaseValue  int
	BonusValue int
}

type TickInput struct {
	Now       time.Time
	Last      *time.Time // nil 表示首次生成
	Producers []Producer
	// ResearchPct 科技 slug → 加成百分比。
	ResearchPct map[string]int
}

type TickResult struct {
	Current      Resources
	Offline      Resources
	OfflinePolls int64
	// Total = Current + Offline
	Total Resources
}

// PerPoll 一次轮询的产出：基础产出加所有资源建筑。
func PerPoll(producers []Producer, researchPct map[string]int) Resources {
	gen := BaseGeneration
	for _, p := range producers {
		kind, research, ok := ProducerOf(p.Slug)
		if !ok {
			continue
		}
		pct := 0
		if research != "" {
			pct = researchPct[research]
		}
		gen.AddTo(kind, BuildingProduction(p.BaseValue, p.BonusValue, p.Level, pct))
	}
	return gen
}

// ElapsedSeconds 整秒，时钟回拨按 0 处理。
func ElapsedSeconds(now time.Time, last *time.Time) int64 {
	if last == nil {
		return 0
	}
	secs := int64(now.Sub(*last) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// Tick 计算一次轮询的产出。
// 距上次生成超过 2 秒时按 floor(秒/2) 次补发离线产出，并且仍然叠加本次产出。
func Tick(in TickInput) TickResult {
	current := PerPoll(in.Producers, in.ResearchPct)

	var polls int64
	if secs := ElapsedSeconds(in.Now, in.Last); secs > int64(PollInterval/time.Second) {
		polls = secs / int64(PollInterval/time.Second)
	}
	offline := current.Scale(polls)

	return TickResult{
		Current:      current,
		Offline:      offline,
		OfflinePolls: polls,
		Total:        current.Add(offline),
	}
}

// AdjustedConstructionTime = max(base*(1-pct/100), base*0.5)，毫秒精度。
func AdjustedConstructionTime(baseSeconds, architecturePct int) time.Duration {
	if baseSeconds <= 0 {
		return 0
	}
	baseMs := int64(baseSeconds) * 1000
	reduced := baseMs * int64(100-architecturePct) / 100
	floor := baseMs / 2
	if reduced < floor {
		reduced = floor
	}
	return time.Duration(reduced) * time.Millisecond
}
