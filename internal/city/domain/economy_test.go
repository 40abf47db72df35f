package domain

import (
	"testing"
	"time"
)

func TestTick_无建筑两秒只有基础产出(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 2, 0, time.UTC)
	last := now.Add(-2 * time.Second)

	got := Tick(TickInput{Now: now, Last: &last})
	if got.Total != Uniform(1) {
		t.Fatalf("期望每种资源 +1, got=%+v", got.Total)
	}
	if got.OfflinePolls != 0 {
		t.Fatalf("期望 2 秒不触发离线补偿, got=%d", got.OfflinePolls)
	}
}

func TestTick_一级农场无科技食物加101(t *testing.T) {
	now := time.Now()
	last := now.Add(-2 * time.Second)
	farm := Producer{Slug: "farm", Level: 1, BaseValue: 100, BonusValue: 5}

	got := Tick(TickInput{Now: now, Last: &last, Producers: []Producer{farm}})
	if got.Total.Food != 101 {
		t.Fatalf("期望食物 +101, got=%d", got.Total.Food)
	}
	if got.Total.Wood != 1 || got.Total.Gold != 1 {
		t.Fatalf("期望其他资源只有基础产出, got=%+v", got.Total)
	}
}

func TestTick_首次生成没有离线补偿(t *testing.T) {
	got := Tick(TickInput{Now: time.Now()})
	if got.OfflinePolls != 0 || !got.Offline.IsZero() {
		t.Fatalf("期望首次生成无离线补偿, got=%+v", got)
	}
	if got.Total != Uniform(1) {
		t.Fatalf("期望只有本次产出, got=%+v", got.Total)
	}
}

func TestTick_离线补偿叠加本次产出(t *testing.T) {
	now := time.Now()
	last := now.Add(-11 * time.Second)
	farm := Producer{Slug: "farm", Level: 2, BaseValue: 100, BonusValue: 5}

	got := Tick(TickInput{Now: now, Last: &last, Producers: []Producer{farm}})
	if got.OfflinePolls != 5 {
		t.Fatalf("期望 floor(11/2)=5 次离线补偿, got=%d", got.OfflinePolls)
	}
	// 本次 1+105，离线 5 倍
	if got.Current.Food != 106 || got.Offline.Food != 530 || got.Total.Food != 636 {
		t.Fatalf("食物产出不符: %+v", got)
	}
	if got.Total.Ore != 6 {
		t.Fatalf("期望矿石 1+5, got=%d", got.Total.Ore)
	}
}

func TestTick_时钟回拨按零处理(t *testing.T) {
	now := time.Now()
	last := now.Add(time.Hour)
	got := Tick(TickInput{Now: now, Last: &last})
	if got.OfflinePolls != 0 || got.Total != Uniform(1) {
		t.Fatalf("期望回拨时只有本次产出, got=%+v", got)
	}
}

func TestTick_非负耗时单调不减且结果确定(t *testing.T) {
	now := time.Now()
	producers := []Producer{
		{Slug: "farm", Level: 3, BaseValue: 100, BonusValue: 5},
		{Slug: "mine", Level: 25, BaseValue: 100, BonusValue: 5},
		{Slug: "market", Level: 4, BaseValue: 40, BonusValue: 5},
	}
	pct := map[string]int{ResearchFarming: 15, ResearchMining: 30}
	for secs := 0; secs < 120; secs++ {
		last := now.Add(-time.Duration(secs) * time.Second)
		a := Tick(TickInput{Now: now, Last: &last, Producers: producers, ResearchPct: pct})
		b := Tick(TickInput{Now: now, Last: &last, Producers: producers, ResearchPct: pct})
		if a != b {
			t.Fatalf("期望相同输入结果一致, secs=%d", secs)
		}
		for _, k := range ResourceKinds {
			if a.Total.Get(k) < 0 {
				t.Fatalf("期望产出非负, secs=%d kind=%s", secs, k)
			}
		}
	}
}

func TestBuildingProduction_边界等级(t *testing.T) {
	cases := []struct {
		base, bonus, level, pct int
		want                    int64
	}{
		{100, 5, 1, 0, 100},
		{100, 5, 25, 0, 220},
		{100, 5, 1, 10, 110},
		// 10+24*5=130% 加成
		{100, 5, 25, 130, 506},
		// 整数运算：100*115/100 精确为 115
		{100, 5, 1, 15, 115},
		{40, 5, 2, 0, 45},
		{100, 5, 0, 0, 0},
	}
	for _, c := range cases {
		if got := BuildingProduction(c.base, c.bonus, c.level, c.pct); got != c.want {
			t.Fatalf("BuildingProduction(%d,%d,%d,%d) 期望=%d got=%d", c.base, c.bonus, c.level, c.pct, c.want, got)
		}
	}
}

func TestResearchBonusPercent_等级零无加成且上限25(t *testing.T) {
	if got := ResearchBonusPercent(10, 5, 0); got != 0 {
		t.Fatalf("期望 0, got=%d", got)
	}
	if got := ResearchBonusPercent(10, 5, 1); got != 10 {
		t.Fatalf("期望 10, got=%d", got)
	}
	if got := ResearchBonusPercent(10, 5, 25); got != 130 {
		t.Fatalf("期望 130, got=%d", got)
	}
	if got := ResearchBonusPercent(10, 5, 40); got != 130 {
		t.Fatalf("期望超过上限按 25 级算, got=%d", got)
	}
}

func TestPerPoll_市场不吃科技加成(t *testing.T) {
	gen := PerPoll([]Producer{{Slug: "market", Level: 1, BaseValue: 40, BonusValue: 5}},
		map[string]int{ResearchFarming: 100, ResearchMining: 100, ResearchWoodworking: 100})
	if gen.Gold != 41 {
		t.Fatalf("期望金币 1+40, got=%d", gen.Gold)
	}
}

func TestPerPoll_采石场与矿场共用采矿加成(t *testing.T) {
	gen := PerPoll([]Producer{
		{Slug: "quarry", Level: 1, BaseValue: 100, BonusValue: 5},
		{Slug: "mine", Level: 1, BaseValue: 100, BonusValue: 5},
		{Slug: "barracks", Level: 9, BaseValue: 1, BonusValue: 10},
	}, map[string]int{ResearchMining: 10})
	if gen.Stone != 111 || gen.Ore != 111 {
		t.Fatalf("期望石头/矿石各 1+110, got=%+v", gen)
	}
}

func TestAdjustedConstructionTime_折扣最多一半(t *testing.T) {
	if got := AdjustedConstructionTime(100, 0); got != 100*time.Second {
		t.Fatalf("期望无折扣 100s, got=%v", got)
	}
	if got := AdjustedConstructionTime(100, 20); got != 80*time.Second {
		t.Fatalf("期望 80s, got=%v", got)
	}
	if got := AdjustedConstructionTime(100, 70); got != 50*time.Second {
		t.Fatalf("期望下限 50s, got=%v", got)
	}
	if got := AdjustedConstructionTime(45, 0); got != 45*time.Second {
		t.Fatalf("期望 45s, got=%v", got)
	}
}

func TestResources_Shortfall按固定顺序报告(t *testing.T) {
	have := Resources{Food: 10, Wood: 0, Stone: 0}
	short, ok := have.Shortfall(Resources{Food: 20, Wood: 5})
	if ok {
		t.Fatalf("期望不足")
	}
	if short.String() != "Insufficient food. Required: 20, Available: 10" {
		t.Fatalf("文案不符: %q", short.String())
	}
	if !have.Covers(Resources{Food: 10}) {
		t.Fatalf("期望恰好相等视为足够")
	}
}
