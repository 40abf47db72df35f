package gameconfig

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
)

const (
	DefaultCatalogDir = "configs/catalog"

	buildingsFile = "buildings.json"
	researchFile  = "research.json"
	tilesFile     = "tiles.json"
)

// 资源字段使用短名，与 JSON 配置表保持一致。
type Costs struct {
	Food  int64 `json:"f,omitempty"`
	Wood  int64 `json:"w,omitempty"`
	Stone int64 `json:"s,omitempty"`
	Ore   int64 `json:"o,omitempty"`
	Gold  int64 `json:"g,omitempty"`
}

type Requirements struct {
	Age       int            `json:"age,omitempty"`
	Buildings map[string]int `json:"buildings,omitempty"`
	Research  map[string]int `json:"research,omitempty"`
}

type BuildingDef struct {
	Slug             string       `json:"slug"`
	Name             string       `json:"name"`
	FieldType        int          `json:"fieldType"` // 0 城内 1 资源田
	Description      string       `json:"description"`
	Costs            Costs        `json:"costs"`
	Requirements     Requirements `json:"requirements"`
	ConstructionTime int          `json:"constructionTime"` // 秒
	Power            int          `json:"power"`
	BaseValue        int          `json:"baseValue"`
	BonusValue       int          `json:"bonusValue"`
}

type ResearchDef struct {
	Slug         string       `json:"slug"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Costs        Costs        `json:"costs"`
	Requirements Requirements `json:"requirements"`
	ResearchTime int          `json:"researchTime"` // 秒
	Power        int          `json:"power"`
	BaseValue    int          `json:"baseValue"`
	BonusValue   int          `json:"bonusValue"`
}

type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type TileTypeDef struct {
	Type      string           `json:"type"`
	Frequency float64          `json:"frequency"`
	Resources map[string]Range `json:"resources"`
}

type Catalog struct {
	Buildings []BuildingDef
	Research  []ResearchDef
	TileTypes []TileTypeDef

	buildings map[string]*BuildingDef
	research  map[string]*ResearchDef
}

// Load 从目录读取三张配置表并做引用校验。
// dir 为相对路径且当前目录下不存在时，向上查找。
func Load(dir string) (*Catalog, error) {
	if dir == "" {
		dir = DefaultCatalogDir
	}
	baseDir, err := resolveDir(dir)
	if err != nil {
		return nil, err
	}

	c := &Catalog{}
	if err := readJSON(filepath.Join(baseDir, buildingsFile), &c.Buildings); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(baseDir, researchFile), &c.Research); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(baseDir, tilesFile), &c.TileTypes); err != nil {
		return nil, err
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func readJSON(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load catalog failed: read %q: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("load catalog failed: unmarshal %q: %w", path, err)
	}
	return nil
}

func resolveDir(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	cur, err := os.Getwd()
	if err != nil {
		return "", err
	}
	start := cur
	for {
		candidate := filepath.Join(cur, dir)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", fmt.Errorf("catalog dir %q not found from %s", dir, start)
		}
		cur = parent
	}
}

func (c *Catalog) index() error {
	c.buildings = make(map[string]*BuildingDef, len(c.Buildings))
	for i := range c.Buildings {
		b := &c.Buildings[i]
		if b.Slug == "" {
			return fmt.Errorf("load catalog failed: building #%d has empty slug", i)
		}
		if _, exists := c.buildings[b.Slug]; exists {
			return fmt.Errorf("load catalog failed: duplicate building slug=%q", b.Slug)
		}
		c.buildings[b.Slug] = b
	}
	c.research = make(map[string]*ResearchDef, len(c.Research))
	for i := range c.Research {
		r := &c.Research[i]
		if r.Slug == "" {
			return fmt.Errorf("load catalog failed: research #%d has empty slug", i)
		}
		if _, exists := c.research[r.Slug]; exists {
			return fmt.Errorf("load catalog failed: duplicate research slug=%q", r.Slug)
		}
		c.research[r.Slug] = r
	}
	return nil
}

// Validate 检查前置条件引用的 slug 都存在，地形频率之和为 1。
func (c *Catalog) Validate() error {
	check := func(owner string, req Requirements) error {
		for slug := range req.Buildings {
			if _, ok := c.buildings[slug]; !ok {
				return fmt.Errorf("catalog: %s requires unknown building %q", owner, slug)
			}
		}
		for slug := range req.Research {
			if _, ok := c.research[slug]; !ok {
				return fmt.Errorf("catalog: %s requires unknown research %q", owner, slug)
			}
		}
		return nil
	}
	for _, b := range c.Buildings {
		if err := check("building "+b.Slug, b.Requirements); err != nil {
			return err
		}
	}
	for _, r := range c.Research {
		if err := check("research "+r.Slug, r.Requirements); err != nil {
			return err
		}
	}

	if len(c.TileTypes) == 0 {
		return fmt.Errorf("catalog: no tile types")
	}
	var sum float64
	for _, t := range c.TileTypes {
		if t.Frequency < 0 {
			return fmt.Errorf("catalog: tile %s has negative frequency", t.Type)
		}
		for name, r := range t.Resources {
			if r.Min > r.Max {
				return fmt.Errorf("catalog: tile %s resource %s min > max", t.Type, name)
			}
		}
		sum += t.Frequency
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("catalog: tile frequencies sum to %.4f, want 1", sum)
	}
	return nil
}

func (c *Catalog) Building(slug string) (*BuildingDef, bool) {
	if c == nil || c.buildings == nil {
		return nil, false
	}
	b, ok := c.buildings[slug]
	return b, ok
}

func (c *Catalog) ResearchBySlug(slug string) (*ResearchDef, bool) {
	if c == nil || c.research == nil {
		return nil, false
	}
	r, ok := c.research[slug]
	return r, ok
}

// TileTypesByFrequency 按频率降序返回，地图生成按累计分布挑选地形。
func (c *Catalog) TileTypesByFrequency() []TileTypeDef {
	out := append([]TileTypeDef(nil), c.TileTypes...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Frequency > out[j].Frequency })
	return out
}
