package mapgen

import (
	"Realm/internal/kingdom/domain"
	"Realm/internal/shared/gameconfig"
	"fmt"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// 按海拔从低到高排布的地形；不在此列表中的地形（蛮族、遗迹）随机散布。
var elevationOrder = []string{
	domain.TileFood,
	domain.TilePlains,
	domain.TileForests,
	domain.TileHills,
	domain.TileMountains,
}

type Config struct {
	KingdomID int
	Size      int
	Seed      int64
	Types     []gameconfig.TileTypeDef
	// RowsPerBatch 每次回调交付的行数。
	RowsPerBatch int
}

// Generate 生成 Size×Size 地图，按行分批交给 emit。
// 每种地形的数量为 floor(total*frequency)，余数补给平原；同一 seed 结果确定。
func Generate(cfg Config, emit func([]domain.MapTile) error) error {
	if cfg.Size <= 0 {
		return fmt.Errorf("mapgen: invalid size %d", cfg.Size)
	}
	if len(cfg.Types) == 0 {
		return fmt.Errorf("mapgen: no tile types")
	}
	if cfg.RowsPerBatch <= 0 {
		cfg.RowsPerBatch = 1
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	grid, err := layout(cfg, rng)
	if err != nil {
		return err
	}

	defs := make(map[string]gameconfig.TileTypeDef, len(cfg.Types))
	for _, t := range cfg.Types {
		defs[t.Type] = t
	}

	n := cfg.Size
	batch := make([]domain.MapTile, 0, n*cfg.RowsPerBatch)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			typ := grid[y*n+x]
			batch = append(batch, domain.MapTile{
				KingdomID: cfg.KingdomID,
				X:         x,
				Y:         y,
				Type:      typ,
				Level:     domain.MinTileLevel + rng.Intn(domain.MaxTileLevel-domain.MinTileLevel+1),
				Yields:    yields(defs[typ], rng),
			})
		}
		if (y+1)%cfg.RowsPerBatch == 0 || y == n-1 {
			if err := emit(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	return nil
}

// Counts 每种地形的目标数量。
func Counts(total int, types []gameconfig.TileTypeDef) map[string]int {
	counts := make(map[string]int, len(types))
	sum := 0
	for _, t := range types {
		c := int(float64(total) * t.Frequency)
		counts[t.Type] = c
		sum += c
	}
	if sum < total {
		counts[domain.TilePlains] += total - sum
	}
	return counts
}

func layout(cfg Config, rng *rand.Rand) ([]string, error) {
	n := cfg.Size
	total := n * n
	counts := Counts(total, cfg.Types)
	grid := make([]string, total)

	// 散布型地形随机落点
	free := rng.Perm(total)
	cursor := 0
	inOrder := make(map[string]bool, len(elevationOrder))
	for _, t := range elevationOrder {
		inOrder[t] = true
	}
	scattered := make([]string, 0, len(cfg.Types))
	for _, t := range cfg.Types {
		if !inOrder[t.Type] {
			scattered = append(scattered, t.Type)
		}
	}
	sort.Strings(scattered)
	for _, t := range scattered {
		for i := 0; i < counts[t] && cursor < total; i++ {
			grid[free[cursor]] = t
			cursor++
		}
	}

	// 其余地块按海拔噪声排序后依次切分
	elev := opensimplex.NewNormalized(cfg.Seed)
	type cell struct {
		idx int
		h   float64
	}
	cells := make([]cell, 0, total-cursor)
	for idx := 0; idx < total; idx++ {
		if grid[idx] != "" {
			continue
		}
		x, y := float64(idx%n), float64(idx/n)
		cells = append(cells, cell{idx: idx, h: octaveNoise(elev, x, y, 4, 0.02, 0.5)})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].h == cells[j].h {
			return cells[i].idx < cells[j].idx
		}
		return cells[i].h < cells[j].h
	})

	pos := 0
	for _, t := range elevationOrder {
		for i := 0; i < counts[t] && pos < len(cells); i++ {
			grid[cells[pos].idx] = t
			pos++
		}
	}
	for ; pos < len(cells); pos++ {
		grid[cells[pos].idx] = domain.TilePlains
	}
	return grid, nil
}

func yields(def gameconfig.TileTypeDef, rng *rand.Rand) domain.Yields {
	pick := func(name string) int {
		r, ok := def.Resources[name]
		if !ok || r.Max < r.Min {
			return 0
		}
		return r.Min + rng.Intn(r.Max-r.Min+1)
	}
	return domain.Yields{
		Food:  pick("food"),
		Wood:  pick("wood"),
		Stone: pick("stone"),
		Gold:  pick("gold"),
	}
}

// octaveNoise 多层频率叠加的分形噪声。
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
