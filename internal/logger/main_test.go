package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scharfcsh/amsid/internal/logger"
)

func TestInit(t *testing.T) {
	testCases := []struct {
		name         string
		cfg          logger.Log
		wantOutput   bool
		wantJSON     bool
		wantAppField bool
	}{
		{
			name: "no output enabled",
			cfg: logger.Log{
				LogLevel:    "",
				ServiceName: "amsid",
				AppName:     "amsid",
			},
		},
		{
			name: "console info",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "amsid",
				AppName:     "amsid",
				Console:     logger.Console{Enabled: true},
			},
			wantOutput: true,
		},
		{
			name: "console writer",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "amsid",
				AppName:     "amsid",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			wantOutput: true,
		},
		{
			name: "console json",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "amsid",
				AppName:     "amsid-test",
				Console:     logger.Console{Enabled: true},
			},
			wantOutput:   true,
			wantJSON:     true,
			wantAppField: true,
		},
		{
			name: "console json trace with stack",
			cfg: logger.Log{
				LogLevel:     "trace",
				ServiceName:  "amsid",
				AppName:      "amsid-test",
				ReportCaller: true,
				Console:      logger.Console{Enabled: true},
			},
			wantOutput:   true,
			wantJSON:     true,
			wantAppField: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureOutput(t, tc.cfg)

			if tc.wantOutput {
				assert.NotEmpty(t, out)
			}

			if !tc.wantJSON {
				return
			}

			for _, line := range strings.Split(out, "\n") {
				if line == "" {
					continue
				}

				var entry struct {
					Level   string `json:"level"`
					App     string `json:"app"`
					Message string `json:"message"`
				}

				require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)

				if tc.wantAppField {
					assert.Equal(t, tc.cfg.AppName, entry.App)
				}
			}
		})
	}
}

func TestInitErrors(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     logger.Log
		wantErr error
	}{
		{
			name:    "missing service name",
			cfg:     logger.Log{LogLevel: "info", AppName: "amsid"},
			wantErr: logger.ErrServiceNameIsEmpty,
		},
		{
			name:    "missing app name",
			cfg:     logger.Log{LogLevel: "info", ServiceName: "amsid"},
			wantErr: logger.ErrAppNameIsEmpty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, logger.Init(tc.cfg), tc.wantErr)
		})
	}

	require.Error(t, logger.Init(logger.Log{LogLevel: "loud", AppName: "amsid", ServiceName: "amsid"}))
}

func TestInitRollingFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")

	err := logger.Init(logger.Log{
		LogLevel:    "trace",
		AppName:     "amsid",
		ServiceName: "amsid",
		File: logger.LogFile{
			Enabled:  true,
			Path:     dir,
			ErrorLog: "error.log",
			InfoLog:  "info.log",
			TraceLog: "trace.log",
			WarnLog:  "warn.log",
		},
	})
	require.NoError(t, err)

	log.Info().Msg("info line")
	log.Warn().Msg("warn line")
	log.Error().Msg("error line")
	log.Trace().Msg("trace line")

	for name, want := range map[string]string{
		"info.log":  "info line",
		"warn.log":  "warn line",
		"error.log": "error line",
		"trace.log": "trace line",
	} {
		content, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Contains(t, string(content), want)
	}
}

func TestLevelWriter(t *testing.T) {
	var info, warn, errs, trace bytes.Buffer

	lw := &logger.LevelWriter{InfoWriter: &info, WarnWriter: &warn, ErrorWriter: &errs, TraceWriter: &trace}

	for _, l := range []zerolog.Level{
		zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel,
		zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.TraceLevel, zerolog.Disabled,
	} {
		_, err := lw.WriteLevel(l, []byte(l.String()+";"))
		require.NoError(t, err)
	}

	assert.Equal(t, "debug;info;", info.String())
	assert.Equal(t, "warn;", warn.String())
	assert.Equal(t, "error;fatal;", errs.String())
	assert.Equal(t, "trace;", trace.String())
}

func alwaysErrFunc() error {
	return errors.New("a test error") //nolint:goerr113
}

func captureOutput(t *testing.T, cfg logger.Log) string {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	os.Stderr = w

	require.NoError(t, logger.Init(cfg))

	log.Info().Msg("this info message should be seen...")
	log.Error().Err(alwaysErrFunc()).Msg("this err message should be seen...")
	log.Trace().Err(alwaysErrFunc()).Msg("this trace message should be seen...")

	outC := make(chan string)
	// copy in a separate goroutine so printing can't block
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr

	return <-outC
}
