package domain

import (
	"sort"
	"time"
)

// 每城只允许一座的建筑。
var singletons = map[string]bool{
	"towncenter": true,
	"smith":      true,
	"academy":    true,
	"market":     true,
	"arena":      true,
	"wall":       true,
	"tower":      true,
	"storage":    true,
}

const (
	SlugWall       = "wall"
	SlugTownCenter = "towncenter"
	SlugAcademy    = "academy"
)

func IsSingleton(slug string) bool {
	return singletons[slug]
}

// NeedsPlot 城墙不占地块。
func NeedsPlot(slug string) bool {
	return slug != SlugWall
}

// ActiveConstruction 返回城内 isConstructing 的建筑；到期但未完工的同样占着施工队列。
func ActiveConstruction(bs []PlayerBuilding) (*PlayerBuilding, bool) {
	for i := range bs {
		if bs[i].IsConstructing {
			return &bs[i], true
		}
	}
	return nil, false
}

// ActiveResearch 返回城内正在研究且未到期的科技。
func ActiveResearch(rs []PlayerResearch, now time.Time) (*PlayerResearch, bool) {
	for i := range rs {
		if rs[i].ActiveAt(now) {
			return &rs[i], true
		}
	}
	return nil, false
}

// BuildingLevels slug → 城内该建筑的最高等级（施工中的也算）。
func BuildingLevels(bs []PlayerBuilding) map[string]int {
	out := make(map[string]int, len(bs))
	for _, b := range bs {
		if s := b.Slug(); s != "" && b.Level > out[s] {
			out[s] = b.Level
		}
	}
	return out
}

type BuildCheck struct {
	Now       time.Time
	City      City
	Def       Building
	PlotID    *string
	Buildings []PlayerBuilding
	Research  []PlayerResearch
	// Names slug → 展示名，用于拼前置条件文案。
	BuildingNames map[string]string
	ResearchNames map[string]string
}

// CheckBuild 按顺序校验：施工锁 → 地块占用 → 唯一建筑 → 前置条件 → 资源。
// 第一个失败项决定拒绝原因。
func CheckBuild(in BuildCheck) error {
	if active, ok := ActiveConstruction(in.Buildings); ok {
		return Reject("Cannot start construction: %s is already under construction", active.Name())
	}
	if NeedsPlot(in.Def.Slug) && in.PlotID != nil {
		for _, b := range in.Buildings {
			if b.PlotID != nil && *b.PlotID == *in.PlotID {
				return Reject("Plot already has a building")
			}
		}
	}
	if IsSingleton(in.Def.Slug) {
		for _, b := range in.Buildings {
			if b.BuildingID == in.Def.ID || b.Slug() == in.Def.Slug {
				return Reject("Cannot build %s: Only one allowed per city", in.Def.Name)
			}
		}
	}
	if err := checkRequirements(in.Def.Requirements, in.City.Age, BuildingLevels(in.Buildings),
		ResearchLevels(in.Research), in.BuildingNames, in.ResearchNames); err != nil {
		return err
	}
	if short, ok := in.City.Resources.Shortfall(in.Def.Costs.Resources()); !ok {
		return Reject("%s", short.String())
	}
	return nil
}

func checkRequirements(req Requirements, age int, buildings, research map[string]int, bNames, rNames map[string]string) error {
	if req.Age > 0 && age < req.Age {
		return Reject("Requires age %d", req.Age)
	}
	for _, slug := range sortedKeys(req.Buildings) {
		need := req.Buildings[slug]
		if buildings[slug] < need {
			return Reject("Requires %s level %d", nameOr(bNames, slug), need)
		}
	}
	for _, slug := range sortedKeys(req.Research) {
		need := req.Research[slug]
		if research[slug] < need {
			return Reject("Requires %s research level %d", nameOr(rNames, slug), need)
		}
	}
	return nil
}

type UpgradeCheck struct {
	Now       time.Time
	City      City
	Target    PlayerBuilding
	Buildings []PlayerBuilding
}

// CheckUpgrade 升级同样占用城内唯一的施工队列。
func CheckUpgrade(in UpgradeCheck) error {
	if in.Target.IsConstructing {
		return Reject("Cannot upgrade building while under construction")
	}
	if active, ok := ActiveConstruction(in.Buildings); ok {
		return Reject("Cannot start construction: %s is already under construction", active.Name())
	}
	if in.Target.Level >= MaxLevel {
		return Reject("Building already at maximum level (%d)", MaxLevel)
	}
	if in.Target.Building == nil {
		return ErrBuildingNotFound
	}
	if short, ok := in.City.Resources.Shortfall(in.Target.Building.Costs.Resources()); !ok {
		return Reject("%s", short.String())
	}
	return nil
}

func CheckDemolish(target PlayerBuilding) error {
	if target.IsConstructing {
		return Reject("Cannot demolish building while under construction")
	}
	if target.Slug() == SlugTownCenter && target.Level <= 1 {
		return Reject("Cannot demolish the Town Center")
	}
	return nil
}

type ResearchCheck struct {
	Now       time.Time
	City      City
	Def       Research
	Existing  *PlayerResearch
	Buildings []PlayerBuilding
	Research  []PlayerResearch
}

// CheckResearch 研究锁 → 等级上限 → 学院 → 前置条件 → 资源。
func CheckResearch(in ResearchCheck) error {
	if active, ok := ActiveResearch(in.Research, in.Now); ok {
		name := "Another research"
		if active.Research != nil {
			name = active.Research.Name
		}
		return Reject("Cannot start research: %s is already being researched", name)
	}
	if in.Existing != nil && in.Existing.Level >= MaxLevel {
		return Reject("Research already at maximum level (%d)", MaxLevel)
	}
	levels := BuildingLevels(in.Buildings)
	if levels[SlugAcademy] == 0 {
		return Reject("Academy building required to start research")
	}

	req := in.Def.Requirements
	if req.Age > 0 && in.City.Age < req.Age {
		return Reject("Research requires city age %d", req.Age)
	}
	for _, slug := range sortedKeys(req.Buildings) {
		if need := req.Buildings[slug]; levels[slug] < need {
			return Reject("Research requires %s level %d", slug, need)
		}
	}
	researched := ResearchLevels(in.Research)
	for _, slug := range sortedKeys(req.Research) {
		if need := req.Research[slug]; researched[slug] < need {
			return Reject("Research requires %s level %d", slug, need)
		}
	}
	if !in.City.Resources.Covers(in.Def.Costs.Resources()) {
		return Reject("Insufficient resources to start research")
	}
	return nil
}

func nameOr(names map[string]string, slug string) string {
	if n, ok := names[slug]; ok && n != "" {
		return n
	}
	return slug
}

// 前置条件按 slug 排序检查，保证拒绝文案稳定。
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
