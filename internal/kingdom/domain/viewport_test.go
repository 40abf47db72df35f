package domain

import "testing"

func TestNewViewport_边界夹紧(t *testing.T) {
	v := NewViewport(0, 0, 50, 750)
	if v.StartX != 0 || v.EndX != 24 || v.StartY != 0 || v.EndY != 24 {
		t.Fatalf("左上角视口不符: %+v", v)
	}
	v = NewViewport(749, 749, 50, 750)
	if v.StartX != 724 || v.EndX != 749 || v.EndY != 749 {
		t.Fatalf("右下角视口不符: %+v", v)
	}
}

func TestNewViewport_尺寸默认与上限(t *testing.T) {
	if v := NewViewport(100, 100, 0, 750); v.Size != DefaultViewport {
		t.Fatalf("期望默认 %d, got=%d", DefaultViewport, v.Size)
	}
	v := NewViewport(300, 300, 5000, 750)
	if v.Size != MaxViewport || v.EndX-v.StartX+1 != MaxViewport || v.EndY-v.StartY+1 != MaxViewport {
		t.Fatalf("期望截断到 %d×%d, got=%+v", MaxViewport, MaxViewport, v)
	}
	if v := NewViewport(10, 10, 2, 750); v.StartX != 9 || v.EndX != 10 {
		t.Fatalf("期望偶数尺寸恰好 2 格, got=%+v", v)
	}
	if v := NewViewport(10, 10, 1, 750); v.StartX != 10 || v.EndX != 10 {
		t.Fatalf("期望 1×1 视口只含中心, got=%+v", v)
	}
}

func TestViewport_Contains与Key(t *testing.T) {
	v := NewViewport(10, 10, 20, 750)
	if !v.Contains(0, 19) || v.Contains(20, 10) {
		t.Fatalf("Contains 不符: %+v", v)
	}
	if v.Key(3) != "k3:0-19:0-19" {
		t.Fatalf("Key 不符: %s", v.Key(3))
	}
}
