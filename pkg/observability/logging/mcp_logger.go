package logging

import (
	"context"
	"fmt"
	"maps"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap/zapcore"
)

const (
	LevelDebug     = zapcore.DebugLevel
	LevelInfo      = zapcore.InfoLevel
	LevelWarning   = zapcore.WarnLevel
	LevelError     = zapcore.ErrorLevel
	LevelCritical  = zapcore.DPanicLevel
	LevelAlert     = zapcore.PanicLevel
	LevelEmergency = zapcore.FatalLevel
)

var zapToMCP = map[zapcore.Level]mcp.LoggingLevel{
	LevelDebug:     "debug",
	LevelInfo:      "info",
	LevelWarning:   "warning",
	LevelError:     "error",
	LevelCritical:  "critical",
	LevelAlert:     "alert",
	LevelEmergency: "emergency",
}

// mcpLogger is a zapcore.Core that forwards every entry to the connected MCP
// client as a notifications/message.
type mcpLogger struct {
	ss     *mcp.ServerSession
	ctx    context.Context
	fields map[string]any
}

func NewMcpCore(ss *mcp.ServerSession) (zapcore.Core, error) {
	return NewMcpCoreWithContext(context.Background(), ss)
}

func NewMcpCoreWithContext(ctx context.Context, ss *mcp.ServerSession) (zapcore.Core, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if ss == nil {
		return nil, fmt.Errorf("ServerSession cannot be nil")
	}
	return &mcpLogger{
		ss:     ss,
		ctx:    ctx,
		fields: map[string]any{},
	}, nil
}

func (m *mcpLogger) Enabled(zapcore.Level) bool {
	return true // the server session decides whether to send the log or not
}

func (m *mcpLogger) With(fields []zapcore.Field) zapcore.Core {
	return &mcpLogger{
		ss:     m.ss,
		ctx:    m.ctx,
		fields: encodeFields(m.fields, fields),
	}
}

func (m *mcpLogger) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return ce.AddCore(ent, m)
}

func (m *mcpLogger) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	logData := encodeFields(m.fields, fields)
	logData["ts"] = ent.Time
	logData["msg"] = ent.Message
	if ent.Caller.Defined {
		logData["caller"] = ent.Caller.String()
	}

	return m.ss.Log(m.ctx, &mcp.LoggingMessageParams{
		Data:   logData,
		Level:  zapToMCP[ent.Level],
		Logger: ent.LoggerName,
	})
}

func (m *mcpLogger) Sync() error {
	return nil
}

// encodeFields returns a fresh map holding base plus fields, leaving base untouched.
func encodeFields(base map[string]any, fields []zapcore.Field) map[string]any {
	enc := zapcore.NewMapObjectEncoder()
	maps.Copy(enc.Fields, base)
	for _, f := range fields {
		f.AddTo(enc)
	}
	return enc.Fields
}
