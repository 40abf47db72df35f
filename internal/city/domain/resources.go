package domain

import "fmt"

type ResourceKind string

const (
	Food  ResourceKind = "food"
	Wood  ResourceKind = "wood"
	Stone ResourceKind = "stone"
	Ore   ResourceKind = "ore"
	Gold  ResourceKind = "gold"
)

// ResourceKinds 固定顺序，余额校验按此顺序报告第一个不足项。
var ResourceKinds = [...]ResourceKind{Food, Wood, Stone, Ore, Gold}

// Resources 城市资源袋，落库为 cities 表上的五列。
type Resources struct {
	Food  int64 `gorm:"column:food;not null;default:0" json:"food"`
	Wood  int64 `gorm:"column:wood;not null;default:0" json:"wood"`
	Stone int64 `gorm:"column:stone;not null;default:0" json:"stone"`
	Ore   int64 `gorm:"column:ore;not null;default:0" json:"ore"`
	Gold  int64 `gorm:"column:gold;not null;default:0" json:"gold"`
}

// Uniform 每种资源都是 n。
func Uniform(n int64) Resources {
	return Resources{Food: n, Wood: n, Stone: n, Ore: n, Gold: n}
}

func (r Resources) Get(k ResourceKind) int64 {
	switch k {
	case Food:
		return r.Food
	case Wood:
		return r.Wood
	case Stone:
		return r.Stone
	case Ore:
		return r.Ore
	case Gold:
		return r.Gold
	}
	return 0
}

func (r *Resources) AddTo(k ResourceKind, n int64) {
	switch k {
	case Food:
		r.Food += n
	case Wood:
		r.Wood += n
	case Stone:
		r.Stone += n
	case Ore:
		r.Ore += n
	case Gold:
		r.Gold += n
	}
}

func (r Resources) Add(o Resources) Resources {
	return Resources{
		Food:  r.Food + o.Food,
		Wood:  r.Wood + o.Wood,
		Stone: r.Stone + o.Stone,
		Ore:   r.Ore + o.Ore,
		Gold:  r.Gold + o.Gold,
	}
}

func (r Resources) Sub(o Resources) Resources {
	return Resources{
		Food:  r.Food - o.Food,
		Wood:  r.Wood - o.Wood,
		Stone: r.Stone - o.Stone,
		Ore:   r.Ore - o.Ore,
		Gold:  r.Gold - o.Gold,
	}
}

func (r Resources) Scale(n int64) Resources {
	return Resources{
		Food:  r.Food * n,
		Wood:  r.Wood * n,
		Stone: r.Stone * n,
		Ore:   r.Ore * n,
		Gold:  r.Gold * n,
	}
}

// Covers 余额是否覆盖 cost 的每一项。
func (r Resources) Covers(cost Resources) bool {
	_, ok := r.Shortfall(cost)
	return ok
}

// Shortfall 返回第一个不足的资源；ok=true 表示全部足够。
func (r Resources) Shortfall(cost Resources) (Shortage, bool) {
	for _, k := range ResourceKinds {
		if need, have := cost.Get(k), r.Get(k); have < need {
			return Shortage{Kind: k, Required: need, Available: have}, false
		}
	}
	return Shortage{}, true
}

func (r Resources) IsZero() bool {
	return r == Resources{}
}

type Shortage struct {
	Kind      ResourceKind
	Required  int64
	Available int64
}

func (s Shortage) String() string {
	return fmt.Sprintf("Insufficient %s. Required: %d, Available: %d", s.Kind, s.Required, s.Available)
}

// Costs 是配置表里的消耗向量，JSON 使用单字母键。
type Costs struct {
	Food  int64 `json:"f,omitempty"`
	Wood  int64 `json:"w,omitempty"`
	Stone int64 `json:"s,omitempty"`
	Ore   int64 `json:"o,omitempty"`
	Gold  int64 `json:"g,omitempty"`
}

func (c Costs) Resources() Resources {
	return Resources{Food: c.Food, Wood: c.Wood, Stone: c.Stone, Ore: c.Ore, Gold: c.Gold}
}
