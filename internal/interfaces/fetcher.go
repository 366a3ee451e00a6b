package interfaces

import (
	"context"

	"proxy-rotator/internal/models"
)

type IFetcher interface {
	// Fetch issues one GET for target routed through the HTTP proxy at proxyAddr (host:port).
	Fetch(ctx context.Context, proxyAddr, target string) (*models.FetchResult, error)
}
