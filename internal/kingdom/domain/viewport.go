package domain

import "fmt"

const (
	DefaultViewport = 50
	MaxViewport     = 100
	PollViewport    = 20
)

type Viewport struct {
	StartX  int `json:"startX"`
	EndX    int `json:"endX"`
	StartY  int `json:"startY"`
	EndY    int `json:"endY"`
	CenterX int `json:"centerX"`
	CenterY int `json:"centerY"`
	Size    int `json:"size"`
}

// NewViewport 以 (cx, cy) 为中心取 size×size 窗口（闭区间 [start, start+size-1]），
// 边界夹到 [0, grid-1]。size <= 0 取默认值，超过 MaxViewport 截断。
func NewViewport(cx, cy, size, grid int) Viewport {
	switch {
	case size <= 0:
		size = DefaultViewport
	case size > MaxViewport:
		size = MaxViewport
	}
	if grid <= 0 {
		grid = DefaultSize
	}
	sx, sy := cx-size/2, cy-size/2
	return Viewport{
		StartX:  clamp(sx, 0, grid-1),
		EndX:    clamp(sx+size-1, 0, grid-1),
		StartY:  clamp(sy, 0, grid-1),
		EndY:    clamp(sy+size-1, 0, grid-1),
		CenterX: cx,
		CenterY: cy,
		Size:    size,
	}
}

func (v Viewport) Contains(x, y int) bool {
	return x >= v.StartX && x <= v.EndX && y >= v.StartY && y <= v.EndY
}

// Key 视口缓存键。
func (v Viewport) Key(kingdomID int) string {
	return fmt.Sprintf("k%d:%d-%d:%d-%d", kingdomID, v.StartX, v.EndX, v.StartY, v.EndY)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
