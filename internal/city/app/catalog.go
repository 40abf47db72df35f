package app

import (
	"Realm/internal/city/domain"
	"Realm/internal/shared/gameconfig"
)

// CatalogFromConfig 把 JSON 配置表转成入库的建筑 / 研究行。
func CatalogFromConfig(c *gameconfig.Catalog) ([]domain.Building, []domain.Research) {
	buildings := make([]domain.Building, 0, len(c.Buildings))
	for _, b := range c.Buildings {
		buildings = append(buildings, domain.Building{
			Slug:             b.Slug,
			Name:             b.Name,
			Description:      b.Description,
			FieldType:        b.FieldType,
			Costs:            domain.Costs(b.Costs),
			Requirements:     domain.Requirements(b.Requirements),
			ConstructionTime: b.ConstructionTime,
			Power:            b.Power,
			BaseValue:        b.BaseValue,
			BonusValue:       b.BonusValue,
		})
	}
	research := make([]domain.Research, 0, len(c.Research))
	for _, r := range c.Research {
		research = append(research, domain.Research{
			Slug:         r.Slug,
			Name:         r.Name,
			Description:  r.Description,
			Costs:        domain.Costs(r.Costs),
			Requirements: domain.Requirements(r.Requirements),
			ResearchTime: r.ResearchTime,
			Power:        r.Power,
			BaseValue:    r.BaseValue,
			BonusValue:   r.BonusValue,
		})
	}
	return buildings, research
}
