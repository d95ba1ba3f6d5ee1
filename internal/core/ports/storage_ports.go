package ports

import (
	"context"
	"io"
)

// MediaStorage persists uploaded media blobs and returns a URL the API can
// serve them from. The backing store is a collaborator; only this boundary
// is part of the core.
type MediaStorage interface {
	Save(ctx context.Context, kind, name string, content io.Reader) (url string, err error)
	Remove(ctx context.Context, url string) error
}
