package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		log   func(l Logger)
		level string
	}{
		{"info", func(l Logger) { l.Info(ctx, "msg") }, "INFO"},
		{"warn", func(l Logger) { l.Warn(ctx, "msg") }, "WARN"},
		{"error", func(l Logger) { l.Error(ctx, "msg") }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewJSON(&buf))

			rec := lastRecord(t, &buf)
			assert.Equal(t, tt.level, rec["level"])
			assert.Equal(t, "msg", rec["msg"])
		})
	}
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSON(&buf).With("module", "store")

	l.Info(context.Background(), "loaded", "count", 2)

	rec := lastRecord(t, &buf)
	assert.Equal(t, "store", rec["module"])
	assert.Equal(t, float64(2), rec["count"])
}
