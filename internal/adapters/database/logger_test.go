package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func captureLogger(t *testing.T, level gormlogger.LogLevel) (gormlogger.Interface, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	return NewLogger(slog.New(handler), level), &buf
}

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}

		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}

	return out
}

func query() (string, int64) {
	return `SELECT * FROM "quote_images" WHERE id = '0b7c2c1e-7f55-4a5b-8d0e-9b7f0e5f8a11' LIMIT 1`, 1
}

func TestLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		begin   time.Time
		err     error
		wantMsg string
		wantLvl string
	}{
		{"failure", gormlogger.Warn, time.Now(), errors.New("relation does not exist"), "query failed", "ERROR"},
		{"slow", gormlogger.Warn, time.Now().Add(-time.Second), nil, "slow query", "WARN"},
		{"every query in info mode", gormlogger.Info, time.Now(), nil, "query", "DEBUG"},
		{"record not found is quiet", gormlogger.Warn, time.Now(), gormlogger.ErrRecordNotFound, "", ""},
		{"fast query in warn mode", gormlogger.Warn, time.Now(), nil, "", ""},
		{"silent", gormlogger.Silent, time.Now(), errors.New("boom"), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := captureLogger(t, tt.level)

			logger.Trace(context.Background(), tt.begin, query, tt.err)

			recs := records(t, buf)
			if tt.wantMsg == "" {
				assert.Empty(t, recs)
				return
			}

			require.Len(t, recs, 1)
			assert.Equal(t, tt.wantMsg, recs[0]["msg"])
			assert.Equal(t, tt.wantLvl, recs[0]["level"])
			assert.Equal(t, "gorm", recs[0]["component"])
			assert.Contains(t, recs[0]["sql"], "quote_images")
		})
	}
}

func TestLogger_LogMode(t *testing.T) {
	logger, buf := captureLogger(t, gormlogger.Error)

	logger.Warn(context.Background(), "dropped %s", "warning")
	logger.LogMode(gormlogger.Warn).Warn(context.Background(), "kept %s", "warning")
	logger.Error(context.Background(), "kept %d", 1)

	recs := records(t, buf)
	require.Len(t, recs, 2)
	assert.Equal(t, "kept warning", recs[0]["msg"])
	assert.Equal(t, "kept 1", recs[1]["msg"])
}
