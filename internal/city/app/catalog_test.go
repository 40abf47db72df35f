package app

import (
	"testing"

	"Realm/internal/shared/gameconfig"
)

func TestCatalogFromConfig_字段原样转换(t *testing.T) {
	c := &gameconfig.Catalog{
		Buildings: []gameconfig.BuildingDef{{
			Slug: "farm", Name: "Farm", FieldType: 1,
			Costs:            gameconfig.Costs{Food: 10, Wood: 20},
			Requirements:     gameconfig.Requirements{Buildings: map[string]int{"towncenter": 1}},
			ConstructionTime: 60, BaseValue: 100, BonusValue: 5,
		}},
		Research: []gameconfig.ResearchDef{{
			Slug: "farming", Name: "Farming", ResearchTime: 120,
			Costs: gameconfig.Costs{Gold: 30},
		}},
	}
	buildings, research := CatalogFromConfig(c)
	if len(buildings) != 1 || len(research) != 1 {
		t.Fatalf("期望各 1 条, got=%d/%d", len(buildings), len(research))
	}
	b := buildings[0]
	if b.Slug != "farm" || b.Costs.Wood != 20 || b.Requirements.Buildings["towncenter"] != 1 || b.BaseValue != 100 {
		t.Fatalf("建筑转换不符: %+v", b)
	}
	if research[0].Costs.Gold != 30 || research[0].ResearchTime != 120 {
		t.Fatalf("研究转换不符: %+v", research[0])
	}
}
