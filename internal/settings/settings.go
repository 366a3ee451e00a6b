package settings

import (
	"context"
	"sync/atomic"

	"proxy-rotator/internal/logger"
	"proxy-rotator/internal/models"

	"go.uber.org/zap"
)

const PanelLabel = "Enable Proxy Fetching"

// Settings holds the proxy-fetching toggle. Nothing in the fetch path reads
// it; it is exposed for the UI host only.
type Settings struct {
	enabled atomic.Bool
}

func New(enabled bool) *Settings {
	s := &Settings{}
	s.enabled.Store(enabled)
	return s
}

func (s *Settings) Enabled() bool {
	return s.enabled.Load()
}

func (s *Settings) Set(ctx context.Context, enabled bool) {
	s.enabled.Store(enabled)
	logChange(ctx, enabled)
}

func (s *Settings) Toggle(ctx context.Context) bool {
	for {
		old := s.enabled.Load()
		if s.enabled.CompareAndSwap(old, !old) {
			logChange(ctx, !old)
			return !old
		}
	}
}

func (s *Settings) Panel() models.SettingsPanel {
	return models.SettingsPanel{
		Label:   PanelLabel,
		Enabled: s.Enabled(),
	}
}

func logChange(ctx context.Context, enabled bool) {
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	logger.GetLoggerFromCtx(ctx).Info(ctx, "proxy fetching "+state, zap.Bool("enabled", enabled))
}
