package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// PrintfLogger 将 Printf 风格的第三方日志（GORM、golang-migrate）接入 Zap
type PrintfLogger struct {
	logger *zap.Logger
	level  zapcore.Level
}

// NewPrintfLogger 以固定级别输出，component 区分日志来源
func NewPrintfLogger(l *zap.Logger, component string, level zapcore.Level) *PrintfLogger {
	return &PrintfLogger{
		logger: Component(l.WithOptions(zap.AddCallerSkip(1)), component),
		level:  level,
	}
}

// Printf 实现 gorm logger.Writer 与 migrate.Logger
func (p *PrintfLogger) Printf(format string, args ...interface{}) {
	if ce := p.logger.Check(p.level, strings.TrimSpace(fmt.Sprintf(format, args...))); ce != nil {
		ce.Write()
	}
}

// Verbose 实现 migrate.Logger：仅 debug 级别时输出逐条迁移日志
func (p *PrintfLogger) Verbose() bool {
	return p.logger.Core().Enabled(zapcore.DebugLevel)
}
