package service

import (
	"context"
	"net/url"
	"time"

	"proxy-rotator/config"
	"proxy-rotator/internal/errdefs"
	"proxy-rotator/internal/interfaces"
	"proxy-rotator/internal/models"
)

// RotatorService is the core of the rotator. It reports every failure as an
// error and leaves logging to its callers.
type RotatorService struct {
	cfg      *config.Config
	provider interfaces.IListProvider
	balancer interfaces.IBalancer
	fetcher  interfaces.IFetcher
}

func NewRotatorService(
	cfg *config.Config,
	provider interfaces.IListProvider,
	balancer interfaces.IBalancer,
	fetcher interfaces.IFetcher,
) *RotatorService {
	return &RotatorService{
		cfg:      cfg,
		provider: provider,
		balancer: balancer,
		fetcher:  fetcher,
	}
}

// Refresh replaces the proxy list with the provider's current one. On error
// the previous list and cursor are left as they were.
func (rs *RotatorService) Refresh(ctx context.Context) (int, error) {
	proxies, err := rs.provider.Fetch(ctx)
	if err != nil {
		if !errdefs.Is(err, errdefs.ErrListFetch) {
			err = errdefs.Wrap(errdefs.ErrListFetch, err.Error())
		}
		return 0, err
	}
	rs.balancer.ResetProxies(proxies)
	return len(proxies), nil
}

func (rs *RotatorService) Next(ctx context.Context) (string, error) {
	return rs.balancer.NextProxy()
}

// FetchThrough sends target through the next proxy. When the proxied request
// fails the returned result still names the proxy that was used.
func (rs *RotatorService) FetchThrough(ctx context.Context, target string) (*models.FetchResult, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	proxy, err := rs.balancer.NextProxy()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := rs.fetcher.Fetch(ctx, proxy, target)
	if err != nil {
		if !errdefs.Is(err, errdefs.ErrProxyRequest) && !errdefs.Is(err, errdefs.ErrInvalidInput) {
			err = errdefs.Wrap(errdefs.ErrProxyRequest, err.Error())
		}
		// the partial result tells the caller which proxy failed
		return &models.FetchResult{
			Proxy:   proxy,
			Target:  target,
			Latency: time.Since(start),
		}, err
	}
	return res, nil
}

func (rs *RotatorService) Proxies() []string {
	return rs.balancer.Proxies()
}

func (rs *RotatorService) Len() int {
	return rs.balancer.Len()
}

func validateTarget(target string) error {
	if target == "" {
		return errdefs.Wrap(errdefs.ErrInvalidInput, "target url required")
	}
	u, err := url.Parse(target)
	if err != nil {
		return errdefs.Wrapf(errdefs.ErrInvalidInput, "target url: %v", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errdefs.Wrapf(errdefs.ErrInvalidInput, "target url must be absolute http(s): %q", target)
	}
	return nil
}
