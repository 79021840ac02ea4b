package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	l := slog.New(h)
	return NewSlogLogger(l), &buf
}

func TestJSONLogger_LevelsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, slog.LevelInfo)
	ctx := context.Background()

	log.Debug(ctx, "dropped", "a", 1)
	log.Info(ctx, "class created", "name", "理科")
	log.Warn(ctx, "slow probe", "attempts", 3)
	log.Error(ctx, "store down", "error", "dial tcp")

	var got []map[string]any
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var line map[string]any
		require.NoError(t, dec.Decode(&line))
		got = append(got, line)
	}

	require.Len(t, got, 3, "debug is below the configured level")
	assert.Equal(t, "INFO", got[0]["level"])
	assert.Equal(t, "理科", got[0]["name"])
	assert.Equal(t, "WARN", got[1]["level"])
	assert.EqualValues(t, 3, got[1]["attempts"])
	assert.Equal(t, "ERROR", got[2]["level"])
	assert.Equal(t, "store down", got[2]["msg"])
}

func TestSlogLogger_With_AddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log2 := log.With("class_id", "c-123", "module", "rest")
	log2.Info(ctx, "hello", "status", 404)

	out := buf.String()
	wantSubs := []string{
		"level=INFO",
		"msg=hello",
		"class_id=c-123",
		"module=rest",
		"status=404",
	}
	for _, s := range wantSubs {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestBadgerAdapter_ForwardsAndTrims(t *testing.T) {
	log, buf := newTestLogger(t)
	a := BadgerAdapter{L: log.With("module", "badger")}

	a.Infof("replaying %d entries\n", 3)
	a.Warningf("slow %s", "compaction")
	a.Errorf("boom")
	a.Debugf("noise")

	out := buf.String()
	for _, s := range []string{
		`msg="replaying 3 entries"`,
		`msg="slow compaction"`,
		"level=ERROR msg=boom",
		"level=DEBUG msg=noise",
		"module=badger",
	} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestNop_DoesNothing(t *testing.T) {
	var l Logger = Nop{}
	l = l.With("k", "v")
	l.Info(context.Background(), "ignored")
}
