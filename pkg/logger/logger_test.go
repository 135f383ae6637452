package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"allumni-network/config"
)

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(&config.LogConfig{Level: "debug", Format: format}, "test")
		if err != nil {
			t.Fatalf("格式 %s 初始化失败: %v", format, err)
		}
		if !l.Core().Enabled(-1) {
			t.Errorf("格式 %s 期望启用 debug 级别", format)
		}
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "verbose", Format: "json"}, "test"); err == nil {
		t.Error("无效日志级别应返回错误")
	}
	if _, err := NewLogger(&config.LogConfig{Level: "info", Format: "xml"}, "test"); err == nil {
		t.Error("无效日志格式应返回错误")
	}
}

func TestComponent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := Component(zap.New(core).With(zap.String(ServiceKey, "allumni")), "store")

	l.Info("就绪")

	fields := logs.All()[0].ContextMap()
	if fields[ComponentKey] != "store" || fields[ServiceKey] != "allumni" {
		t.Errorf("字段不符: %v", fields)
	}
}

func TestPrintfLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewPrintfLogger(zap.New(core), "gorm", zapcore.WarnLevel)

	p.Printf("慢查询 %dms\n", 350)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("期望 1 条日志，实际 %d", len(entries))
	}
	if entries[0].Message != "慢查询 350ms" || entries[0].Level != zapcore.WarnLevel {
		t.Errorf("日志内容不符: %q %s", entries[0].Message, entries[0].Level)
	}
	if entries[0].ContextMap()[ComponentKey] != "gorm" {
		t.Errorf("缺少 component 字段: %v", entries[0].ContextMap())
	}
	if !p.Verbose() {
		t.Error("debug 级别下 Verbose 应为 true")
	}

	quiet := NewPrintfLogger(zap.New(core).WithOptions(zap.IncreaseLevel(zapcore.InfoLevel)), "migrate", zapcore.InfoLevel)
	if quiet.Verbose() {
		t.Error("info 级别下 Verbose 应为 false")
	}
}
