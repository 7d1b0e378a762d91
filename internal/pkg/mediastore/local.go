package mediastore

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/edusphere/backend/internal/pkg/logger"
)

// LocalStore keeps assets on the local filesystem and serves them
// through the application's static /uploads route. Public ids are
// relative paths without extension, the stored file keeps the original
// extension.
type LocalStore struct {
	basePath string
	baseURL  string
}

// NewLocalStore creates a LocalStore rooted at basePath. baseURL is
// prepended to stored paths to build secure URLs.
func NewLocalStore(basePath, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create media storage directory")
		return nil, fmt.Errorf("failed to create media storage directory %s: %w", basePath, err)
	}

	return &LocalStore{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload stores the uploaded file and returns its asset reference
func (s *LocalStore) Upload(ctx context.Context, fileHeader *multipart.FileHeader, folder string, resource ResourceType) (*Asset, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file to upload")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dirPath := filepath.Join(s.basePath, filepath.FromSlash(folder))
	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dirPath).Msg("Failed to create asset folder")
		return nil, fmt.Errorf("failed to create asset folder: %w", err)
	}

	publicID := path(folder, uuid.New().String())
	ext := filepath.Ext(fileHeader.Filename)
	dstPath := filepath.Join(s.basePath, filepath.FromSlash(publicID)+ext)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		// Partial file must not survive a failed upload
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	asset := &Asset{
		PublicID:  publicID,
		SecureURL: s.baseURL + "/" + publicID + ext,
	}

	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("publicId", asset.PublicID).
		Str("resource", string(resource)).
		Msg("Asset uploaded")
	return asset, nil
}

// Destroy removes the stored file for the given public id
func (s *LocalStore) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// The stored file keeps its original extension, the public id does not
	matches, err := filepath.Glob(filepath.Join(s.basePath, filepath.FromSlash(publicID)) + ".*")
	if err != nil {
		return fmt.Errorf("failed to resolve asset %s: %w", publicID, err)
	}

	// Uploads with no extension are stored under the bare public id
	matches = append(matches, filepath.Join(s.basePath, filepath.FromSlash(publicID)))

	for _, match := range matches {
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			logger.Error().Err(err).Str("path", match).Msg("Failed to delete asset file")
			return fmt.Errorf("failed to delete asset %s: %w", publicID, err)
		}
	}

	logger.Info().Str("publicId", publicID).Msg("Asset destroyed")
	return nil
}

func path(folder, name string) string {
	if folder == "" {
		return name
	}
	return strings.TrimRight(folder, "/") + "/" + name
}
