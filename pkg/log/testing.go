package log

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
)

// TestLogger is a Logger implementation that captures records in a buffer
// as JSON lines, for assertions in tests.
type TestLogger struct {
	mu     sync.Mutex
	buf    *bytes.Buffer
	level  Level
	fields []any
}

// NewTestLogger creates a TestLogger emitting at the given minimum level,
// returning the logger and the buffer it writes to.
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &TestLogger{buf: buf, level: level}, buf
}

func (t *TestLogger) Debug(msg string, fields ...any) { t.writeLog(LevelDebug, msg, fields...) }
func (t *TestLogger) Info(msg string, fields ...any)  { t.writeLog(LevelInfo, msg, fields...) }
func (t *TestLogger) Warn(msg string, fields ...any)  { t.writeLog(LevelWarn, msg, fields...) }
func (t *TestLogger) Error(msg string, fields ...any) { t.writeLog(LevelError, msg, fields...) }

func (t *TestLogger) With(fields ...any) Logger {
	combined := make([]any, 0, len(t.fields)+len(fields))
	combined = append(combined, t.fields...)
	combined = append(combined, fields...)
	return &TestLogger{buf: t.buf, level: t.level, fields: combined}
}

func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return level >= t.level
}

func (t *TestLogger) writeLog(level Level, msg string, fields ...any) {
	if level < t.level {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	entry := map[string]interface{}{
		"level":   level.String(),
		"message": msg,
	}
	all := append(append([]any{}, t.fields...), fields...)
	for i := 0; i+1 < len(all); i += 2 {
		key, ok := all[i].(string)
		if !ok {
			continue
		}
		entry[key] = all[i+1]
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	t.buf.Write(line)
	t.buf.WriteByte('\n')
}

// Entries decodes the captured records.
func (t *TestLogger) Entries() ([]map[string]interface{}, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var entries []map[string]interface{}
	for _, line := range bytes.Split(t.buf.Bytes(), []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage reports whether any captured record has the given message.
func (t *TestLogger) ContainsMessage(message string) bool {
	entries, err := t.Entries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry["message"] == message {
			return true
		}
	}
	return false
}
