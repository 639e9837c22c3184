package collector

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"tscollect/src/internal/config"
	"tscollect/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// testConfig wires fake status and journal executables into a config
// writing under dir
func testConfig(t *testing.T, dir, statusBody, journalBody string) *config.Config {
	t.Helper()
	return &config.Config{
		Output: config.OutputConfig{
			Directory: filepath.Join(dir, "out", "nested"),
			Filename:  "tailscale.log",
		},
		Status: config.StatusConfig{
			Command:        writeScript(t, dir, "tailscale", statusBody),
			TimeoutSeconds: 10,
		},
		Journal: config.JournalConfig{
			Command:        writeScript(t, dir, "journalctl", journalBody),
			Unit:           "tailscaled",
			Lines:          50,
			TimeoutSeconds: 10,
		},
	}
}

func runOnce(t *testing.T, cfg *config.Config) (*Result, error) {
	t.Helper()
	col, err := New(cfg, newTestLogger())
	require.NoError(t, err)
	return col.Run(context.Background())
}

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var doc map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &doc),
			"every output line must parse as JSON")
		lines = append(lines, doc)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestCollector_Run(t *testing.T) {
	t.Run("EndToEnd", func(t *testing.T) {
		dir := t.TempDir()
		cfg := testConfig(t, dir,
			`echo '{"Self":{"Online":true}}'`,
			`echo '{"MESSAGE":"a"}'
echo '{"MESSAGE":"b"}'`)

		res, err := runOnce(t, cfg)
		require.NoError(t, err)
		require.NoError(t, res.JournalErr)
		assert.Equal(t, 2, res.EventCount)

		lines := readLines(t, res.Path)
		require.Len(t, lines, 1)

		record := lines[0]
		assert.Equal(t, "tailscale", record["source"])
		assert.Equal(t, "1.0", record["collector_version"])

		status, ok := record["status"].(map[string]any)
		require.True(t, ok)
		self, ok := status["Self"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, true, self["Online"])

		events, ok := record["events"].([]any)
		require.True(t, ok)
		require.Len(t, events, 2)
		for i, want := range []string{"a", "b"} {
			event, ok := events[i].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, want, event["message"])
			assert.Equal(t, "6", event["priority"])
			assert.Equal(t, "tailscaled", event["unit"])
			assert.Equal(t, "unknown", event["hostname"])
			assert.Equal(t, record["timestamp"], event["timestamp"],
				"missing entry timestamp falls back to the collection timestamp")
		}
	})

	t.Run("StatusFailureWritesNothing", func(t *testing.T) {
		cases := []struct {
			name string
			body string
		}{
			{"NonzeroExit", `exit 1`},
			{"MalformedOutput", `echo 'not json'`},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				dir := t.TempDir()
				cfg := testConfig(t, dir, tc.body, `echo '{"MESSAGE":"a"}'`)

				res, err := runOnce(t, cfg)
				assert.Error(t, err)
				assert.Nil(t, res)

				_, statErr := os.Stat(filepath.Join(cfg.Output.Directory, cfg.Output.Filename))
				assert.True(t, os.IsNotExist(statErr), "no file may be written without a snapshot")
			})
		}

		t.Run("ToolAbsent", func(t *testing.T) {
			dir := t.TempDir()
			cfg := testConfig(t, dir, `true`, `echo '{"MESSAGE":"a"}'`)
			cfg.Status.Command = filepath.Join(dir, "no-such-tool")

			res, err := runOnce(t, cfg)
			assert.ErrorIs(t, err, core.ErrToolAbsent)
			assert.Nil(t, res)

			_, statErr := os.Stat(filepath.Join(cfg.Output.Directory, cfg.Output.Filename))
			assert.True(t, os.IsNotExist(statErr))
		})
	})

	t.Run("JournalFailureStillPersists", func(t *testing.T) {
		dir := t.TempDir()
		cfg := testConfig(t, dir, `echo '{"Self":{"Online":true}}'`, `exit 1`)

		res, err := runOnce(t, cfg)
		require.NoError(t, err)
		assert.ErrorIs(t, res.JournalErr, core.ErrToolFailed)
		assert.Equal(t, 0, res.EventCount)

		lines := readLines(t, res.Path)
		require.Len(t, lines, 1)
		events, ok := lines[0]["events"].([]any)
		require.True(t, ok, "events must be an array, not null")
		assert.Empty(t, events)
	})

	t.Run("MalformedJournalLinesSkipped", func(t *testing.T) {
		dir := t.TempDir()
		cfg := testConfig(t, dir,
			`echo '{}'`,
			`echo '{"MESSAGE":"a"}'
echo 'garbage'
echo '{"MESSAGE":"b"}'
echo '{"MESSAGE":"c"}'`)

		res, err := runOnce(t, cfg)
		require.NoError(t, err)
		assert.Equal(t, 3, res.EventCount)

		lines := readLines(t, res.Path)
		events := lines[0]["events"].([]any)
		require.Len(t, events, 3)
		messages := make([]string, 0, 3)
		for _, e := range events {
			messages = append(messages, e.(map[string]any)["message"].(string))
		}
		assert.Equal(t, []string{"a", "b", "c"}, messages)
	})

	t.Run("SequentialRunsAppend", func(t *testing.T) {
		dir := t.TempDir()
		cfg := testConfig(t, dir, `echo '{}'`, `echo '{"MESSAGE":"a"}'`)

		res1, err := runOnce(t, cfg)
		require.NoError(t, err)
		res2, err := runOnce(t, cfg)
		require.NoError(t, err)
		assert.Equal(t, res1.Path, res2.Path)

		lines := readLines(t, res2.Path)
		assert.Len(t, lines, 2)
	})

	t.Run("ExcludeFilterDropsEvents", func(t *testing.T) {
		dir := t.TempDir()
		cfg := testConfig(t, dir,
			`echo '{}'`,
			`echo '{"MESSAGE":"keepalive tick"}'
echo '{"MESSAGE":"peer connected"}'`)
		cfg.Filters = []config.FilterConfig{{
			Type:     config.FilterTypeExclude,
			Patterns: []string{"keepalive"},
		}}

		res, err := runOnce(t, cfg)
		require.NoError(t, err)
		assert.Equal(t, 1, res.EventCount)

		lines := readLines(t, res.Path)
		events := lines[0]["events"].([]any)
		require.Len(t, events, 1)
		assert.Equal(t, "peer connected", events[0].(map[string]any)["message"])
	})
}
