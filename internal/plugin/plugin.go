package plugin

import (
	"context"

	"proxy-rotator/internal/errdefs"
	"proxy-rotator/internal/interfaces"
	"proxy-rotator/internal/logger"
	"proxy-rotator/internal/models"
	"proxy-rotator/internal/settings"

	"go.uber.org/zap"
)

// Plugin is what a lifecycle host drives. None of its methods return errors:
// failures are logged here and surface as absent results.
type Plugin struct {
	svc      interfaces.IRotatorService
	settings *settings.Settings
	journal  interfaces.IFetchJournal
	geo      interfaces.ICountryLookup
	log      *logger.Logger
}

type Option func(*Plugin)

func WithJournal(j interfaces.IFetchJournal) Option {
	return func(p *Plugin) { p.journal = j }
}

func WithCountryLookup(geo interfaces.ICountryLookup) Option {
	return func(p *Plugin) { p.geo = geo }
}

func New(svc interfaces.IRotatorService, st *settings.Settings, log *logger.Logger, opts ...Option) *Plugin {
	p := &Plugin{
		svc:      svc,
		settings: st,
		log:      log.Named("rotator"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Plugin) ctx(ctx context.Context) context.Context {
	return logger.SetLoggerInCtx(ctx, p.log)
}

func (p *Plugin) Load(ctx context.Context) {
	p.log.Info(ctx, "plugin loaded")
}

// Start performs exactly one refresh; nothing is scheduled afterwards.
func (p *Plugin) Start(ctx context.Context) {
	p.log.Info(ctx, "plugin started")
	p.Refresh(ctx)
}

func (p *Plugin) Stop(ctx context.Context) {
	p.log.Info(ctx, "plugin stopped")
}

func (p *Plugin) Refresh(ctx context.Context) {
	n, err := p.svc.Refresh(ctx)
	if err != nil {
		p.log.Error(ctx, "failed to fetch proxy list", zap.Error(err))
		return
	}
	p.log.Info(ctx, "fetched proxies", zap.Int("count", n))
}

func (p *Plugin) Next(ctx context.Context) (string, bool) {
	addr, err := p.svc.Next(ctx)
	if err != nil {
		p.log.Warn(ctx, "proxy list is empty", zap.Error(err))
		return "", false
	}
	return addr, true
}

func (p *Plugin) FetchThrough(ctx context.Context, target string) (string, bool) {
	res, err := p.svc.FetchThrough(ctx, target)
	switch {
	case err == nil:
	case errdefs.Is(err, errdefs.ErrNoProxy):
		p.log.Error(ctx, "no proxy available for the request", zap.String("target", target))
		return "", false
	case res == nil:
		p.log.Error(ctx, "request rejected", zap.String("target", target), zap.Error(err))
		return "", false
	default:
		p.log.Error(ctx, "failed to fetch data through proxy",
			zap.String("proxy", "http://"+res.Proxy),
			zap.String("target", target),
			zap.Error(err),
		)
		p.record(ctx, res, err)
		return "", false
	}

	p.log.Info(ctx, "fetched data through proxy",
		zap.String("proxy", "http://"+res.Proxy),
		zap.String("target", target),
		zap.Int("status", res.StatusCode),
		zap.Duration("latency", res.Latency),
	)
	p.record(ctx, res, nil)
	return res.Body, true
}

func (p *Plugin) record(ctx context.Context, res *models.FetchResult, fetchErr error) {
	if p.journal == nil {
		return
	}

	rec := &models.FetchRecord{
		Proxy:      res.Proxy,
		Target:     res.Target,
		OK:         fetchErr == nil,
		StatusCode: res.StatusCode,
		Bytes:      len(res.Body),
		LatencyMS:  res.Latency.Milliseconds(),
	}
	if fetchErr != nil {
		rec.Error = fetchErr.Error()
	}
	if p.geo != nil {
		if iso, err := p.geo.Country(res.Proxy); err == nil {
			rec.Country = iso
		}
	}

	if err := p.journal.Record(ctx, rec); err != nil {
		p.log.Warn(ctx, "failed to journal fetch", zap.Error(err))
	}
}

func (p *Plugin) Proxies() []string {
	return p.svc.Proxies()
}

func (p *Plugin) Settings() models.SettingsPanel {
	return p.settings.Panel()
}

// SetEnabled flips the advisory toggle; the fetch path does not read it.
func (p *Plugin) SetEnabled(ctx context.Context, enabled bool) models.SettingsPanel {
	p.settings.Set(p.ctx(ctx), enabled)
	return p.settings.Panel()
}

func (p *Plugin) ToggleEnabled(ctx context.Context) models.SettingsPanel {
	p.settings.Toggle(p.ctx(ctx))
	return p.settings.Panel()
}

// Journal returns the recent fetch records, newest first.
func (p *Plugin) Journal(ctx context.Context, limit int) ([]models.FetchRecord, error) {
	if p.journal == nil {
		return nil, errdefs.ErrJournalDisabled
	}
	if limit <= 0 {
		return nil, errdefs.Wrap(errdefs.ErrInvalidInput, "limit must be positive")
	}
	return p.journal.ListRecent(ctx, limit)
}
