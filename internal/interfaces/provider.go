package interfaces

import "context"

// IListProvider returns the current proxy list in provider order.
type IListProvider interface {
	Name() string
	Fetch(ctx context.Context) ([]string, error)
}
