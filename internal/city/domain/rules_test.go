package domain

import (
	"errors"
	"testing"
	"time"

	"Realm/modules/kit/errx"
)

func ptr[T any](v T) *T { return &v }

var (
	defFarm    = Building{ID: 1, Slug: "farm", Name: "Farm", FieldType: FieldTypeField, Costs: Costs{Food: 200, Wood: 200}, BaseValue: 100, BonusValue: 5}
	defAcademy = Building{ID: 2, Slug: "academy", Name: "Academy", Costs: Costs{Food: 1500}}
	defWall    = Building{ID: 3, Slug: "wall", Name: "Wall", Costs: Costs{Wood: 500}}
	defShrine  = Building{ID: 4, Slug: "shrine", Name: "Shrine", Requirements: Requirements{Age: 2, Research: map[string]int{"mysticism": 2}}}
	defSmelter = Building{ID: 5, Slug: "smelter", Name: "Smelter", Requirements: Requirements{Buildings: map[string]int{"smith": 2}}}
	defSmith   = Building{ID: 6, Slug: "smith", Name: "Blacksmith"}
)

func rich() City {
	return City{ID: 1, Age: 1, Resources: Uniform(100000)}
}

func rejectMsg(t *testing.T, err error) string {
	t.Helper()
	if !errors.Is(err, ErrRuleRejected) {
		t.Fatalf("期望前置校验拒绝, got=%v", err)
	}
	return errx.MsgOf(err)
}

func TestCheckBuild_施工锁提示阻塞建筑名(t *testing.T) {
	now := time.Now()
	busy := PlayerBuilding{ID: 9, BuildingID: 1, Building: &defFarm, PlotID: ptr("f1"), IsConstructing: true, ConstructionEndsAt: ptr(now.Add(time.Minute))}

	err := CheckBuild(BuildCheck{Now: now, City: rich(), Def: defAcademy, PlotID: ptr("c1"), Buildings: []PlayerBuilding{busy}})
	if got := rejectMsg(t, err); got != "Cannot start construction: Farm is already under construction" {
		t.Fatalf("文案不符: %q", got)
	}
}

func TestCheckBuild_已到期未完工仍占施工锁(t *testing.T) {
	now := time.Now()
	done := PlayerBuilding{ID: 9, BuildingID: 1, Building: &defFarm, PlotID: ptr("f1"), IsConstructing: true, ConstructionEndsAt: ptr(now.Add(-time.Second))}

	err := CheckBuild(BuildCheck{Now: now, City: rich(), Def: defAcademy, PlotID: ptr("c1"), Buildings: []PlayerBuilding{done}})
	if got := rejectMsg(t, err); got != "Cannot start construction: Farm is already under construction" {
		t.Fatalf("期望到期未完工的建筑仍阻塞施工, got=%q", got)
	}
}

func TestCheckBuild_地块已占用(t *testing.T) {
	existing := PlayerBuilding{ID: 1, BuildingID: 1, Building: &defFarm, PlotID: ptr("f1")}
	err := CheckBuild(BuildCheck{Now: time.Now(), City: rich(), Def: defFarm, PlotID: ptr("f1"), Buildings: []PlayerBuilding{existing}})
	if got := rejectMsg(t, err); got != "Plot already has a building" {
		t.Fatalf("文案不符: %q", got)
	}
}

func TestCheckBuild_唯一建筑与城墙不占地块(t *testing.T) {
	wall := PlayerBuilding{ID: 1, BuildingID: defWall.ID, Building: &defWall}
	err := CheckBuild(BuildCheck{Now: time.Now(), City: rich(), Def: defWall, Buildings: []PlayerBuilding{wall}})
	if got := rejectMsg(t, err); got != "Cannot build Wall: Only one allowed per city" {
		t.Fatalf("文案不符: %q", got)
	}

	if err := CheckBuild(BuildCheck{Now: time.Now(), City: rich(), Def: defWall}); err != nil {
		t.Fatalf("期望首座城墙通过, got=%v", err)
	}

	farm := PlayerBuilding{ID: 2, BuildingID: 1, Building: &defFarm, PlotID: ptr("f1")}
	if err := CheckBuild(BuildCheck{Now: time.Now(), City: rich(), Def: defFarm, PlotID: ptr("f2"), Buildings: []PlayerBuilding{farm}}); err != nil {
		t.Fatalf("期望农场可以多座, got=%v", err)
	}
}

func TestCheckBuild_前置条件文案(t *testing.T) {
	err := CheckBuild(BuildCheck{Now: time.Now(), City: rich(), Def: defShrine, PlotID: ptr("c1")})
	if got := rejectMsg(t, err); got != "Requires age 2" {
		t.Fatalf("文案不符: %q", got)
	}

	city := rich()
	city.Age = 2
	err = CheckBuild(BuildCheck{Now: time.Now(), City: city, Def: defShrine, PlotID: ptr("c1"),
		ResearchNames: map[string]string{"mysticism": "Mysticism"}})
	if got := rejectMsg(t, err); got != "Requires Mysticism research level 2" {
		t.Fatalf("文案不符: %q", got)
	}

	smith := PlayerBuilding{ID: 1, BuildingID: defSmith.ID, Building: &defSmith, PlotID: ptr("c2"), Level: 1}
	err = CheckBuild(BuildCheck{Now: time.Now(), City: rich(), Def: defSmelter, PlotID: ptr("c1"), Buildings: []PlayerBuilding{smith},
		BuildingNames: map[string]string{"smith": "Blacksmith"}})
	if got := rejectMsg(t, err); got != "Requires Blacksmith level 2" {
		t.Fatalf("文案不符: %q", got)
	}
}

func TestCheckBuild_资源不足(t *testing.T) {
	city := City{Age: 1, Resources: Resources{Food: 300, Wood: 100}}
	err := CheckBuild(BuildCheck{Now: time.Now(), City: city, Def: defFarm, PlotID: ptr("f1")})
	if got := rejectMsg(t, err); got != "Insufficient wood. Required: 200, Available: 100" {
		t.Fatalf("文案不符: %q", got)
	}
}

func TestCheckUpgrade_满级与施工中(t *testing.T) {
	now := time.Now()
	target := PlayerBuilding{ID: 1, Building: &defFarm, Level: MaxLevel}
	if got := rejectMsg(t, CheckUpgrade(UpgradeCheck{Now: now, City: rich(), Target: target})); got != "Building already at maximum level (25)" {
		t.Fatalf("文案不符: %q", got)
	}

	target.Level = 3
	target.IsConstructing = true
	if got := rejectMsg(t, CheckUpgrade(UpgradeCheck{Now: now, City: rich(), Target: target})); got != "Cannot upgrade building while under construction" {
		t.Fatalf("文案不符: %q", got)
	}

	target.IsConstructing = false
	if err := CheckUpgrade(UpgradeCheck{Now: now, City: rich(), Target: target, Buildings: []PlayerBuilding{target}}); err != nil {
		t.Fatalf("期望通过, got=%v", err)
	}
}

func TestCheckDemolish_一级主城不可拆(t *testing.T) {
	tc := Building{Slug: SlugTownCenter, Name: "Towncenter"}
	if got := rejectMsg(t, CheckDemolish(PlayerBuilding{Building: &tc, Level: 1})); got != "Cannot demolish the Town Center" {
		t.Fatalf("文案不符: %q", got)
	}
	if err := CheckDemolish(PlayerBuilding{Building: &tc, Level: 2}); err != nil {
		t.Fatalf("期望二级主城可拆, got=%v", err)
	}
}

func TestCheckResearch_校验顺序(t *testing.T) {
	now := time.Now()
	mining := Research{ID: 3, Slug: "mining", Name: "Mining", Costs: Costs{Food: 500, Wood: 1000}}
	metallurgy := Research{ID: 6, Slug: "metallurgy", Name: "Metallurgy",
		Requirements: Requirements{Buildings: map[string]int{"smith": 1}, Research: map[string]int{"mining": 1}}}
	academy := PlayerBuilding{ID: 1, Building: &defAcademy, Level: 1}
	smith := PlayerBuilding{ID: 2, Building: &defSmith, Level: 1}

	busy := PlayerResearch{ResearchID: 3, Research: &mining, Level: 1, IsResearching: true, ResearchEndsAt: ptr(now.Add(time.Minute))}
	err := CheckResearch(ResearchCheck{Now: now, City: rich(), Def: metallurgy, Research: []PlayerResearch{busy}})
	if got := rejectMsg(t, err); got != "Cannot start research: Mining is already being researched" {
		t.Fatalf("文案不符: %q", got)
	}

	maxed := PlayerResearch{ResearchID: 3, Research: &mining, Level: MaxLevel}
	err = CheckResearch(ResearchCheck{Now: now, City: rich(), Def: mining, Existing: &maxed, Research: []PlayerResearch{maxed}})
	if got := rejectMsg(t, err); got != "Research already at maximum level (25)" {
		t.Fatalf("文案不符: %q", got)
	}

	err = CheckResearch(ResearchCheck{Now: now, City: rich(), Def: mining})
	if got := rejectMsg(t, err); got != "Academy building required to start research" {
		t.Fatalf("文案不符: %q", got)
	}

	err = CheckResearch(ResearchCheck{Now: now, City: rich(), Def: metallurgy, Buildings: []PlayerBuilding{academy, smith}})
	if got := rejectMsg(t, err); got != "Research requires mining level 1" {
		t.Fatalf("文案不符: %q", got)
	}

	poor := City{Age: 1, Resources: Resources{Food: 500}}
	err = CheckResearch(ResearchCheck{Now: now, City: poor, Def: mining, Buildings: []PlayerBuilding{academy}})
	if got := rejectMsg(t, err); got != "Insufficient resources to start research" {
		t.Fatalf("文案不符: %q", got)
	}

	done := PlayerResearch{ResearchID: 3, Research: &mining, Level: 1}
	if err := CheckResearch(ResearchCheck{Now: now, City: rich(), Def: metallurgy, Buildings: []PlayerBuilding{academy, smith}, Research: []PlayerResearch{done}}); err != nil {
		t.Fatalf("期望通过, got=%v", err)
	}
}
