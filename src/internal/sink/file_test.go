package sink

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tscollect/src/internal/config"
	"tscollect/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func testRecord(ts string) core.CollectionRecord {
	return core.CollectionRecord{
		Timestamp:        ts,
		Source:           core.SourceTag,
		CollectorVersion: core.CollectorVersion,
		Status:           json.RawMessage(`{"Self":{"Online":true}}`),
		Events:           []core.Event{},
	}
}

func TestFileSink_Append(t *testing.T) {
	t.Run("OneLinePerRecord", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFileSink(config.OutputConfig{Directory: dir, Filename: "tailscale.log"}, newTestLogger())

		require.NoError(t, s.Append(testRecord("2024-06-01T00:00:00.000000Z")))
		require.NoError(t, s.Append(testRecord("2024-06-01T00:05:00.000000Z")))

		data, err := os.ReadFile(s.Path())
		require.NoError(t, err)

		lines := bytes.Split(bytes.TrimSuffix(data, []byte{'\n'}), []byte{'\n'})
		require.Len(t, lines, 2)
		for _, line := range lines {
			var doc map[string]any
			assert.NoError(t, json.Unmarshal(line, &doc),
				"each line must be independently parseable")
		}
	})

	t.Run("AppendNeverRewrites", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFileSink(config.OutputConfig{Directory: dir, Filename: "tailscale.log"}, newTestLogger())

		require.NoError(t, s.Append(testRecord("2024-06-01T00:00:00.000000Z")))
		before, err := os.ReadFile(s.Path())
		require.NoError(t, err)

		require.NoError(t, s.Append(testRecord("2024-06-01T00:05:00.000000Z")))
		after, err := os.ReadFile(s.Path())
		require.NoError(t, err)

		assert.True(t, bytes.HasPrefix(after, before),
			"existing bytes must be an exact prefix after the second append")
		assert.Greater(t, len(after), len(before))
	})

	t.Run("CompactOutput", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFileSink(config.OutputConfig{Directory: dir, Filename: "tailscale.log"}, newTestLogger())

		record := testRecord("2024-06-01T00:00:00.000000Z")
		record.Status = json.RawMessage("{\n  \"Self\": {\"Online\": true}\n}")
		require.NoError(t, s.Append(record))

		data, err := os.ReadFile(s.Path())
		require.NoError(t, err)
		assert.Equal(t, 1, bytes.Count(data, []byte{'\n'}),
			"record must serialize to a single line regardless of source formatting")
	})

	t.Run("CreatesDirectoryRecursively", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b", "c")
		s := NewFileSink(config.OutputConfig{Directory: dir, Filename: "tailscale.log"}, newTestLogger())

		require.NoError(t, s.Append(testRecord("2024-06-01T00:00:00.000000Z")))
		_, err := os.Stat(s.Path())
		assert.NoError(t, err)
	})

	t.Run("PermissionDenied", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("running as root, permission checks do not apply")
		}

		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0o555))
		t.Cleanup(func() { os.Chmod(dir, 0o755) })

		s := NewFileSink(config.OutputConfig{Directory: dir, Filename: "tailscale.log"}, newTestLogger())
		err := s.Append(testRecord("2024-06-01T00:00:00.000000Z"))
		assert.ErrorIs(t, err, core.ErrPermissionDenied)
	})
}

func TestFileSink_GetStats(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSink(config.OutputConfig{Directory: dir, Filename: "tailscale.log"}, newTestLogger())

	stats := s.GetStats()
	assert.Equal(t, uint64(0), stats["total_appended"])

	require.NoError(t, s.Append(testRecord("2024-06-01T00:00:00.000000Z")))
	require.NoError(t, s.Append(testRecord("2024-06-01T00:05:00.000000Z")))

	stats = s.GetStats()
	assert.Equal(t, "file", stats["type"])
	assert.Equal(t, s.Path(), stats["path"])
	assert.Equal(t, uint64(2), stats["total_appended"])

	lastAppend, ok := stats["last_append"].(time.Time)
	require.True(t, ok)
	assert.False(t, lastAppend.IsZero())
}

func TestFileSink_Path(t *testing.T) {
	s := NewFileSink(config.OutputConfig{Directory: "/var/log/tailscale-custom", Filename: "tailscale.log"}, newTestLogger())
	assert.Equal(t, "/var/log/tailscale-custom/tailscale.log", s.Path())
}
