package filestorage

import (
	"io"
	"mime/multipart"
)

// FileStorage defines the interface for content store operations. Paths are
// relative to the store root (e.g. "qr_codes/student_1.png").
type FileStorage interface {
	// SaveUpload stores an uploaded file under the given subdirectory with a
	// collision-free name and returns the relative path.
	SaveUpload(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// SaveBytes writes a blob at exactly the given relative path, overwriting
	// any previous content.
	SaveBytes(relPath string, data []byte) error

	// Open opens a stored blob for reading.
	Open(relPath string) (io.ReadCloser, error)

	// Exists reports whether a blob is present at the given relative path.
	Exists(relPath string) bool

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(relPath string) error

	// FullPath returns the absolute filesystem path for a relative path.
	FullPath(relPath string) string

	// PublicURL returns the externally reachable URL for a relative path.
	PublicURL(relPath string) string
}
