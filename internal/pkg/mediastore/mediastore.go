// Package mediastore delegates thumbnail and lecture video storage to a
// media host. Assets are addressed by public id and exposed through a
// secure URL, mirroring the cloud asset host the frontend expects.
package mediastore

import (
	"context"
	"mime/multipart"
)

// ResourceType tells the media host how to treat the uploaded bytes
type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceVideo ResourceType = "video"
)

// Asset identifies a stored media object
type Asset struct {
	PublicID  string
	SecureURL string
}

// Store is the media host abstraction used by the course service
type Store interface {
	// Upload stores a file under the given folder and returns its asset reference
	Upload(ctx context.Context, file *multipart.FileHeader, folder string, resource ResourceType) (*Asset, error)

	// Destroy removes an asset by its public id. Destroying a missing
	// asset is not an error.
	Destroy(ctx context.Context, publicID string) error
}
