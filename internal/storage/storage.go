package storage

import "context"

// Store is the blob side of the system: selfie bytes go in, a public
// URL comes back out. Uploads with overwrite allowed replace the
// object at the same path.
type Store interface {
	Upload(ctx context.Context, path string, data []byte, overwrite bool) error
	PublicURL(path string) string
}
