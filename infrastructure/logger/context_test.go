package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verge88/api-npa3/infrastructure/logger"
)

func TestFromContext_ReturnsStoredLogger(t *testing.T) {
	t.Parallel()

	l := newTestLogger(t, logger.FormatJSON)
	ctx := logger.WithContext(context.Background(), l)

	assert.Same(t, l, logger.FromContext(ctx))
}

func TestFromContext_FallbackIsSingleton(t *testing.T) {
	t.Parallel()

	a := logger.FromContext(context.Background())
	b := logger.FromContext(context.Background())

	require.NotNil(t, a)
	assert.Same(t, a, b)

	// Must not panic; debug and info are filtered at warn level.
	a.Debug("debug message")
	a.Warn("warn message", logger.String("key", "value"))
}

func TestWith_ReturnsDistinctLogger(t *testing.T) {
	t.Parallel()

	base := newTestLogger(t, logger.FormatConsole)
	enriched := base.With(logger.String("service", "npa-api"))

	assert.NotSame(t, base, enriched)
	enriched.Info("enriched logger is usable")
}

func TestNew_ConsoleAndJSONFormats(t *testing.T) {
	t.Parallel()

	for _, format := range []string{logger.FormatJSON, logger.FormatConsole, ""} {
		l, err := logger.New(logger.Config{Level: "debug", Format: format, OutputPaths: []string{"stderr"}})
		require.NoError(t, err, "format %q", format)
		require.NotNil(t, l)
	}
}

func TestNop_WithReturnsSelf(t *testing.T) {
	t.Parallel()

	nop := logger.NewNop()
	assert.Same(t, nop, nop.With(logger.Int("n", 1)))
	assert.NoError(t, nop.Sync())
}

func newTestLogger(t *testing.T, format string) logger.Logger {
	t.Helper()

	l, err := logger.New(logger.Config{Level: "warn", Format: format, OutputPaths: []string{"stderr"}})
	require.NoError(t, err)

	return l
}
