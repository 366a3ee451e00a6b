package provider

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"strings"

	"proxy-rotator/config"
	"proxy-rotator/internal/errdefs"
)

// HTTPListProvider downloads a plain-text list with one host:port per line.
type HTTPListProvider struct {
	url       string
	userAgent string
	client    *http.Client
}

func NewHTTPListProvider(cfg *config.Config) *HTTPListProvider {
	return &HTTPListProvider{
		url:       cfg.Provider.URL,
		userAgent: cfg.Provider.UserAgent,
		client:    &http.Client{Timeout: cfg.Provider.Timeout},
	}
}

func (p *HTTPListProvider) Name() string {
	return p.url
}

func (p *HTTPListProvider) Fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, errdefs.Wrapf(errdefs.ErrListFetch, "build request: %v", err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errdefs.Wrapf(errdefs.ErrListFetch, "get %s: %v", p.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errdefs.Wrapf(errdefs.ErrListFetch, "unexpected status: %d", resp.StatusCode)
	}

	proxies, err := ParseList(resp.Body)
	if err != nil {
		return nil, errdefs.Wrapf(errdefs.ErrListFetch, "read body: %v", err)
	}
	return proxies, nil
}

// ParseList splits r on newlines and drops blank lines. Entries keep their
// order and are trimmed, so CRLF bodies parse the same as LF ones.
func ParseList(r io.Reader) ([]string, error) {
	proxies := []string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		proxies = append(proxies, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return proxies, nil
}
