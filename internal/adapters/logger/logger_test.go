package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solres/internal/adapters/logger"
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing plain text into a buffer.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Pretty(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("resolved 3 packages") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("skipping malformed remapping") },
			goldenName: "warn_basic",
		},
		{
			name: "error chain",
			log: func(l *logger.Logger) {
				l.Error(zerr.Wrap(zerr.Wrap(errors.New("connection refused"), "registry request failed"), "failed to resolve imports"))
			},
			goldenName: "error_chain",
		},
		{
			name:       "plain error",
			log:        func(l *logger.Logger) { l.Error(errors.New("boom")) },
			goldenName: "error_plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(zerr.Wrap(errors.New("disk full"), "failed to save resolution index"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "failed to save resolution index", rec["msg"])
	assert.Contains(t, rec["error"], "disk full")
}

func TestLogger_Quiet(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetQuiet(true)

	lg.Info("hidden")
	lg.Warn("shown")

	assert.Equal(t, "! shown\n", buf.String())
}

func TestCollectMessages(t *testing.T) {
	err := zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer")
	assert.Equal(t, []string{"outer layer", "middle layer", "root cause"}, logger.CollectMessages(err))
	assert.Equal(t, []string{"plain"}, logger.CollectMessages(errors.New("plain")))

	tagged := domain.Tagged(domain.ErrPackageNotFound, "package", "@scope/pkg")
	assert.Equal(t, []string{"package not found in registry"}, logger.CollectMessages(tagged))
}

func TestFormatErrorChain_Multiline(t *testing.T) {
	got := logger.FormatErrorChain([]string{"top\nmore", "cause\ndetail"})
	assert.Equal(t, "Error: top\n       more\n\n  Caused by:\n    → cause\n      detail", got)
}
