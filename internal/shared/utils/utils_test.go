package utils

import "testing"

func TestRandSeq_长度与字符集(t *testing.T) {
	s := RandSeq(16)
	if len(s) != 16 {
		t.Fatalf("期望长度 16, got=%d", len(s))
	}
	for _, c := range s {
		ok := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !ok {
			t.Fatalf("期望仅字母数字, got=%q", s)
		}
	}
	if RandSeq(0) != "" {
		t.Fatalf("期望 n<=0 返回空串")
	}
}

func TestSnowflake_单调递增(t *testing.T) {
	sf, err := NewSnowflake(3)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	prev := sf.NextID()
	for i := 0; i < 5000; i++ {
		next := sf.NextID()
		if next <= prev {
			t.Fatalf("期望 id 单调递增, prev=%d next=%d", prev, next)
		}
		prev = next
	}
	if _, err := NewSnowflake(1 << 11); err == nil {
		t.Fatalf("期望 node id 越界报错")
	}
}
