package interfaces

import (
	"context"
	"io"
)

// AssetStorage abstracts the external store holding uploaded cover images.
// The news core only receives already-stored asset paths; Store is used by
// host applications at the upload boundary, Release is invoked by the core
// when a cover image is replaced or its article deleted.
type AssetStorage interface {
	Store(ctx context.Context, name string, contents io.Reader) (string, error)
	Release(ctx context.Context, path string) error
}
