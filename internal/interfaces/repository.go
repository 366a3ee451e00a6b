package interfaces

import (
	"context"

	"proxy-rotator/internal/models"
)

// IFetchJournal stores the outcome of proxied fetches. It never holds the proxy list.
type IFetchJournal interface {
	Record(ctx context.Context, rec *models.FetchRecord) error
	ListRecent(ctx context.Context, limit int) ([]models.FetchRecord, error)
	Close() error
}
