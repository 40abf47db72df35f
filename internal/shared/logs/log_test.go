package logs

import (
	"Realm/internal/shared/serverconfig"
	"Realm/modules/kit/tracex"
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInit_写文件并支持调整级别(t *testing.T) {
	dir := t.TempDir()
	err := Init("test", serverconfig.LogConfig{
		FileDir: filepath.Join(dir, "app.log"),
		MaxSize: 1,
		Level:   "warn",
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if Logger().Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("期望 warn 级别下 info 不输出")
	}
	SetLevel("debug")
	if !Logger().Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("期望热更新到 debug 后 debug 可输出")
	}
}

func TestTraceFields_从ctx提取trace(t *testing.T) {
	ctx := tracex.WithSpanID(tracex.WithTraceID(context.Background(), "t-1"), "city")
	fields := traceFields(ctx)
	if len(fields) != 2 {
		t.Fatalf("期望 2 个字段, got=%d", len(fields))
	}
	if fields[0].String != "t-1" || fields[1].String != "city" {
		t.Fatalf("期望 trace_id/span_id, got=%v", fields)
	}
}
