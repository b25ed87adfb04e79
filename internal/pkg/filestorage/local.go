package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/certivo/backend/internal/pkg/logger"
)

// LocalStorage stores blobs on the local filesystem.
type LocalStorage struct {
	basePath string // root directory where files are stored
	baseURL  string // base URL under which the root directory is served
}

var _ FileStorage = (*LocalStorage)(nil)

// NewLocalStorage creates a new LocalStorage instance. basePath is the
// required directory path on the server; baseURL is prepended to relative
// paths when building public URLs.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// SaveUpload saves an uploaded file to a subdirectory under a generated
// unique name and returns the relative path.
func (ls *LocalStorage) SaveUpload(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil // no file uploaded
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	relPath := uuid.New().String() + ext
	if subPath != "" {
		relPath = strings.TrimRight(subPath, "/") + "/" + relPath
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	if err := ls.SaveBytes(relPath, data); err != nil {
		return "", err
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", relPath).Msg("File saved")
	return relPath, nil
}

// SaveBytes writes a blob at exactly relPath, overwriting any prior content.
func (ls *LocalStorage) SaveBytes(relPath string, data []byte) error {
	dstPath := ls.FullPath(relPath)

	if err := os.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create blob directory")
		return fmt.Errorf("failed to create blob directory: %w", err)
	}

	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write blob")
		return fmt.Errorf("failed to write blob %s: %w", relPath, err)
	}
	return nil
}

// Open opens a stored blob for reading.
func (ls *LocalStorage) Open(relPath string) (io.ReadCloser, error) {
	f, err := os.Open(ls.FullPath(relPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open blob %s: %w", relPath, err)
	}
	return f, nil
}

// Exists reports whether a blob is present at the given relative path.
func (ls *LocalStorage) Exists(relPath string) bool {
	info, err := os.Stat(ls.FullPath(relPath))
	return err == nil && !info.IsDir()
}

// Delete removes a blob from the storage filesystem. Returns nil if the blob
// does not exist (idempotent operation).
func (ls *LocalStorage) Delete(relPath string) error {
	if relPath == "" {
		return nil // nothing to delete
	}

	physicalPath := ls.FullPath(relPath)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("Blob to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete blob")
		return fmt.Errorf("failed to delete blob %s: %w", relPath, err)
	}

	logger.Info().Str("path", physicalPath).Msg("Blob deleted")
	return nil
}

// BasePath returns the root directory of the store.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// FullPath returns the absolute filesystem path for a relative blob path.
func (ls *LocalStorage) FullPath(relPath string) string {
	return filepath.Join(ls.basePath, filepath.FromSlash(relPath))
}

// PublicURL returns the externally reachable URL for a relative blob path.
func (ls *LocalStorage) PublicURL(relPath string) string {
	if ls.baseURL == "" {
		return relPath
	}
	return ls.baseURL + "/" + relPath
}
