package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/alertdeck/internal/config"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("HOME", tmp)
	config.Load()
	return tmp
}

func enableLogging(t *testing.T) {
	t.Helper()
	t.Setenv("ALERTDECK_LOGGING_ENABLED", "true")
	config.Load()
}

func lastLine(t *testing.T) string {
	t.Helper()
	logDir := filepath.Join(config.Get("state_dir", ""), "logs")
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	data, err := os.ReadFile(filepath.Join(logDir, entries[0].Name()))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	return lines[len(lines)-1]
}

func TestConfigFromGlobal(t *testing.T) {
	setupTest(t)
	t.Setenv("ALERTDECK_LOGGING_ENABLED", "true")
	t.Setenv("ALERTDECK_LOGGING_LEVEL", "debug")
	t.Setenv("ALERTDECK_LOGGING_MAX_FILES", "5")
	config.Load()

	cfg := FromGlobalConfig()
	require.True(t, cfg.Enabled)
	require.Equal(t, "debug", cfg.Level)
	require.Equal(t, 5, cfg.MaxFiles)
	require.Equal(t, filepath.Base(os.Args[0]), cfg.Command)
	require.Equal(t, os.Getpid(), cfg.PID)
}

func TestLogLevelMapping(t *testing.T) {
	setupTest(t)

	t.Setenv("ALERTDECK_DEBUG", "true")
	t.Setenv("ALERTDECK_LOGGING_LEVEL", "info")
	config.Load()
	require.Equal(t, "debug", FromGlobalConfig().Level)

	// debug wins over quiet
	t.Setenv("ALERTDECK_QUIET", "true")
	config.Load()
	require.Equal(t, "debug", FromGlobalConfig().Level)

	t.Setenv("ALERTDECK_DEBUG", "")
	config.Load()
	require.Equal(t, "error", FromGlobalConfig().Level)

	t.Setenv("ALERTDECK_QUIET", "")
	t.Setenv("ALERTDECK_LOGGING_LEVEL", "warn")
	config.Load()
	require.Equal(t, "warn", FromGlobalConfig().Level)
}

func TestLogDir(t *testing.T) {
	tmp := setupTest(t)

	stateDir := config.Get("state_dir", "")
	require.True(t, strings.HasPrefix(stateDir, tmp), "state_dir %s not in temp dir %s", stateDir, tmp)

	logDir, err := LogDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(stateDir, "logs"), logDir)
	info, err := os.Stat(logDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestLogDirFallback(t *testing.T) {
	setupTest(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))
	t.Setenv("ALERTDECK_STATE_DIR", filepath.Join(blocker, "state"))
	config.Load()

	logDir, err := LogDir()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(logDir, os.TempDir()))
	require.True(t, strings.HasSuffix(logDir, filepath.Join("alertdeck", "logs")))
}

func TestInitDisabled(t *testing.T) {
	logger, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	require.IsType(t, noopLogger{}, logger)
	logger.Debug("test")
	logger.Info("test")
	logger.With("k", "v").Warn("test")
	logger.Error("test")
	require.NoError(t, logger.Shutdown())
}

func TestInitEnabledCreatesFile(t *testing.T) {
	setupTest(t)
	enableLogging(t)

	cfg := FromGlobalConfig()
	cfg.Command = "alert watch"
	logger, err := Init(cfg)
	require.NoError(t, err)
	defer logger.Shutdown()

	logDir := filepath.Join(config.Get("state_dir", ""), "logs")
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	fname := entries[0].Name()
	require.True(t, strings.HasPrefix(fname, "alertdeck_"))
	require.Contains(t, fname, fmt.Sprintf("_PID%d_", os.Getpid()))
	require.True(t, strings.HasSuffix(fname, "_alert_watch.log"))
	info, err := os.Stat(filepath.Join(logDir, fname))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoggingWritesJSON(t *testing.T) {
	setupTest(t)
	enableLogging(t)

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	logger.Info("popup admitted", "id", "n-1", "risk", 9.5)
	require.NoError(t, logger.Shutdown())

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lastLine(t)), &entry))
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "popup admitted", entry["msg"])
	require.Equal(t, float64(os.Getpid()), entry["pid"])
	require.IsType(t, "", entry["command"])
	require.Equal(t, "n-1", entry["id"])
	require.Equal(t, 9.5, entry["risk"])
}

func TestRedaction(t *testing.T) {
	setupTest(t)
	enableLogging(t)

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	logger.Info("secrets", "password", "supersecret", "api_token", "xyz", "normal", "ok")
	require.NoError(t, logger.Shutdown())

	line := lastLine(t)
	require.Contains(t, line, `"password":"[REDACTED]"`)
	require.Contains(t, line, `"api_token":"[REDACTED]"`)
	require.Contains(t, line, `"normal":"ok"`)
}

func TestRedactionEdgeCases(t *testing.T) {
	r := newRedactor()

	tests := []struct {
		in   []any
		want []any
	}{
		{in: []any{"PaSsWoRd", "x"}, want: []any{"PaSsWoRd", "[REDACTED]"}},
		{in: []any{"api-token", "x"}, want: []any{"api-token", "[REDACTED]"}},
		{in: []any{"api.token", "x"}, want: []any{"api.token", "[REDACTED]"}},
		{in: []any{"apitoken", "x"}, want: []any{"apitoken", "x"}},
		{in: []any{"secretary", "x"}, want: []any{"secretary", "x"}},
		{in: []any{"password", "x", "extra"}, want: []any{"password", "[REDACTED]", "extra"}},
		{in: []any{"name", "john", "token", "abc", "age", 30}, want: []any{"name", "john", "token", "[REDACTED]", "age", 30}},
		{in: []any{}, want: []any{}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, r.redact(tt.in))
	}

	in := []any{"password", "keep"}
	r.redact(in)
	require.Equal(t, "keep", in[1], "input must not be modified")
}

func TestRedactionScrubsConfiguredTokens(t *testing.T) {
	setupTest(t)
	t.Setenv("ALERTDECK_HTTP_TOKENS", "tok-123, tok-456")
	enableLogging(t)

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	logger.Warn("request rejected", "header", "Bearer tok-456", "path", "/api/alerts")
	require.NoError(t, logger.Shutdown())

	line := lastLine(t)
	require.Contains(t, line, `"header":"Bearer [REDACTED]"`)
	require.Contains(t, line, `"path":"/api/alerts"`)
	require.NotContains(t, line, "tok-456")
}

func TestRedactorIgnoresBlankSecrets(t *testing.T) {
	r := newRedactor("", "  ")
	require.Empty(t, r.secrets)
	require.Equal(t, []any{"msg", "fine"}, r.redact([]any{"msg", "fine"}))
}

func writeOldLogs(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("alertdeck_20250101_12000%d_PID999_test.log", i))
		require.NoError(t, os.WriteFile(path, nil, 0600))
		old := time.Now().Add(-time.Duration(i+1) * time.Hour)
		require.NoError(t, os.Chtimes(path, old, old))
	}
}

func TestRotation(t *testing.T) {
	setupTest(t)
	t.Setenv("ALERTDECK_LOGGING_MAX_FILES", "2")
	enableLogging(t)

	logDir, err := LogDir()
	require.NoError(t, err)
	writeOldLogs(t, logDir, 3)
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "unrelated.log"), nil, 0600))

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	require.NoError(t, logger.Shutdown())

	_, err = os.Stat(filepath.Join(logDir, "alertdeck_20250101_120002_PID999_test.log"))
	require.True(t, os.IsNotExist(err), "oldest file should be rotated away")
	require.FileExists(t, filepath.Join(logDir, "alertdeck_20250101_120000_PID999_test.log"))
	require.FileExists(t, filepath.Join(logDir, "unrelated.log"))
}

func TestRotationKeepsFilesUnderLimit(t *testing.T) {
	setupTest(t)
	t.Setenv("ALERTDECK_LOGGING_MAX_FILES", "0")
	enableLogging(t)

	cfg := FromGlobalConfig()
	require.Equal(t, 10, cfg.MaxFiles, "validator replaces 0 with the default")

	logDir, err := LogDir()
	require.NoError(t, err)
	writeOldLogs(t, logDir, 5)

	logger, err := Init(cfg)
	require.NoError(t, err)
	require.NoError(t, logger.Shutdown())

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 6)
}

func TestGlobalLogger(t *testing.T) {
	setupTest(t)
	enableLogging(t)

	l, err := InitGlobal()
	require.NoError(t, err)
	require.Same(t, l, GetGlobal())
	require.NotEmpty(t, CurrentLogFile())

	GetGlobal().Warn("global warning", "count", 1)
	require.NoError(t, ShutdownGlobal())
	require.Empty(t, CurrentLogFile())
	require.IsType(t, noopLogger{}, GetGlobal())
	require.Contains(t, lastLine(t), "global warning")
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug")

	child := logger.With("component", "toast", "auth_key", "hidden")
	child.Debug("timer fired", "id", "abc")
	logger.Info("root")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `"component":"toast"`)
	require.Contains(t, lines[0], `"auth_key":"[REDACTED]"`)
	require.Contains(t, lines[0], `"id":"abc"`)
	require.NotContains(t, lines[1], "component")
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")
	logger.Info("dropped")
	logger.Warn("kept")
	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), "kept")
}

func TestLevelParsing(t *testing.T) {
	require.Equal(t, clog.DebugLevel, parseLevel("debug"))
	require.Equal(t, clog.InfoLevel, parseLevel("info"))
	require.Equal(t, clog.WarnLevel, parseLevel("warn"))
	require.Equal(t, clog.WarnLevel, parseLevel("warning"))
	require.Equal(t, clog.ErrorLevel, parseLevel("error"))
	require.Equal(t, clog.InfoLevel, parseLevel("unknown"))
}
