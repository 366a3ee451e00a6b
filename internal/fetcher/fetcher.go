package fetcher

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"proxy-rotator/config"
	"proxy-rotator/internal/errdefs"
	"proxy-rotator/internal/models"
)

type ProxyFetcher struct {
	timeout             time.Duration
	dialTimeout         time.Duration
	tlsHandshakeTimeout time.Duration
}

func NewProxyFetcher(cfg *config.Config) *ProxyFetcher {
	return &ProxyFetcher{
		timeout:             cfg.Fetch.Timeout,
		dialTimeout:         cfg.Fetch.DialTimeout,
		tlsHandshakeTimeout: cfg.Fetch.TLSHandshakeTimeout,
	}
}

// ProxyURL turns a host:port list entry into the proxy endpoint used for a request.
func ProxyURL(addr string) (*url.URL, error) {
	u, err := url.Parse("http://" + addr)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, errdefs.Wrapf(errdefs.ErrInvalidInput, "empty proxy host in %q", addr)
	}
	return u, nil
}

func (f *ProxyFetcher) client(proxyURL *url.URL) *http.Client {
	// A fresh transport per call: nothing is kept open between requests.
	transport := &http.Transport{
		Proxy: http.ProxyURL(proxyURL),
		DialContext: (&net.Dialer{
			Timeout: f.dialTimeout,
		}).DialContext,
		TLSHandshakeTimeout: f.tlsHandshakeTimeout,
		DisableKeepAlives:   true,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   f.timeout,
	}
}

func (f *ProxyFetcher) Fetch(ctx context.Context, proxyAddr, target string) (*models.FetchResult, error) {
	proxyURL, err := ProxyURL(proxyAddr)
	if err != nil {
		return nil, errdefs.Wrapf(errdefs.ErrProxyRequest, "bad proxy %q: %v", proxyAddr, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errdefs.Wrapf(errdefs.ErrInvalidInput, "bad target %q: %v", target, err)
	}

	start := time.Now()
	resp, err := f.client(proxyURL).Do(req)
	if err != nil {
		return nil, errdefs.Wrapf(errdefs.ErrProxyRequest, "via %s: %v", proxyURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errdefs.Wrapf(errdefs.ErrProxyRequest, "read body via %s: %v", proxyURL, err)
	}

	return &models.FetchResult{
		Proxy:      proxyAddr,
		Target:     target,
		StatusCode: resp.StatusCode,
		Body:       string(body),
		Latency:    time.Since(start),
	}, nil
}
