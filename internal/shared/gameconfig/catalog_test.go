package gameconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_仓库内配置表(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("期望加载成功，实际 err=%v", err)
	}
	if len(c.Buildings) != 18 {
		t.Fatalf("期望 18 个建筑，实际=%d", len(c.Buildings))
	}
	if len(c.Research) != 14 {
		t.Fatalf("期望 14 项科技，实际=%d", len(c.Research))
	}
	if len(c.TileTypes) != 7 {
		t.Fatalf("期望 7 种地形，实际=%d", len(c.TileTypes))
	}

	farm, ok := c.Building("farm")
	if !ok || farm.FieldType != 1 || farm.BaseValue != 100 || farm.BonusValue != 5 {
		t.Fatalf("farm 配置不符: %+v", farm)
	}
	if _, ok := c.Building("lumbermill"); !ok {
		t.Fatalf("期望存在 lumbermill")
	}
	metallurgy, ok := c.ResearchBySlug("metallurgy")
	if !ok || metallurgy.Requirements.Research["mining"] != 1 || metallurgy.Requirements.Buildings["smith"] != 1 {
		t.Fatalf("metallurgy 前置条件不符: %+v", metallurgy)
	}

	tiles := c.TileTypesByFrequency()
	if tiles[0].Type != "PLAINS" || tiles[len(tiles)-1].Type != "RUINS" {
		t.Fatalf("期望按频率降序，实际首=%s 尾=%s", tiles[0].Type, tiles[len(tiles)-1].Type)
	}
}

func writeCatalog(t *testing.T, buildings, research, tiles string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		buildingsFile: buildings,
		researchFile:  research,
		tilesFile:     tiles,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("写入失败: %v", err)
		}
	}
	return dir
}

const oneTile = `[{"type":"PLAINS","frequency":1,"resources":{"food":{"min":1,"max":2}}}]`

func TestLoad_重复Slug报错(t *testing.T) {
	dir := writeCatalog(t, `[{"slug":"farm"},{"slug":"farm"}]`, `[]`, oneTile)
	if _, err := Load(dir); err == nil {
		t.Fatalf("期望重复 slug 报错")
	}
}

func TestLoad_未知前置建筑报错(t *testing.T) {
	dir := writeCatalog(t, `[]`, `[{"slug":"x","requirements":{"buildings":{"nope":1}}}]`, oneTile)
	if _, err := Load(dir); err == nil {
		t.Fatalf("期望未知前置建筑报错")
	}
}

func TestLoad_地形频率之和不为一报错(t *testing.T) {
	dir := writeCatalog(t, `[]`, `[]`, `[{"type":"PLAINS","frequency":0.5}]`)
	if _, err := Load(dir); err == nil {
		t.Fatalf("期望频率校验失败")
	}
}

func TestLoad_目录不存在(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("期望目录不存在时报错")
	}
}
