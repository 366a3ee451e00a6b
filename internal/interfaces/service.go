package interfaces

import (
	"context"

	"proxy-rotator/internal/models"
)

type IRotatorService interface {
	Refresh(ctx context.Context) (int, error)
	Next(ctx context.Context) (string, error)
	FetchThrough(ctx context.Context, target string) (*models.FetchResult, error)
	Proxies() []string
	Len() int
}
