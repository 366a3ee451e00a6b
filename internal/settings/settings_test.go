package settings

import (
	"context"
	"testing"

	"proxy-rotator/internal/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSettings(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := logger.SetLoggerInCtx(context.Background(), logger.NewWithZap(zap.New(core)))

	t.Run("ToggleTwiceRestores", func(t *testing.T) {
		for _, start := range []bool{false, true} {
			s := New(start)
			require.Equal(t, !start, s.Toggle(ctx))
			require.Equal(t, start, s.Toggle(ctx))
			require.Equal(t, start, s.Enabled())
		}
	})

	t.Run("SetLogs", func(t *testing.T) {
		before := logs.Len()
		s := New(false)
		s.Set(ctx, true)
		require.True(t, s.Enabled())
		require.Equal(t, before+1, logs.Len())
		require.Equal(t, "proxy fetching enabled", logs.All()[logs.Len()-1].Message)

		s.Set(ctx, false)
		require.Equal(t, "proxy fetching disabled", logs.All()[logs.Len()-1].Message)
	})

	t.Run("Panel", func(t *testing.T) {
		s := New(true)
		p := s.Panel()
		require.Equal(t, PanelLabel, p.Label)
		require.True(t, p.Enabled)
	})
}
