package services

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certivo/backend/internal/app/models"
	"github.com/certivo/backend/internal/app/repositories"
	"github.com/certivo/backend/internal/pkg/apperrors"
	"github.com/certivo/backend/internal/pkg/qrimg"
)

// memStore is an in-memory FileStorage backed by a temp directory for
// FullPath lookups.
type memStore struct {
	dir     string
	baseURL string
	blobs   map[string][]byte
}

func newMemStore(t *testing.T) *memStore {
	t.Helper()
	return &memStore{
		dir:     t.TempDir(),
		baseURL: "http://files.test/uploads",
		blobs:   map[string][]byte{},
	}
}

func (m *memStore) SaveUpload(*multipart.FileHeader, string) (string, error) { return "", nil }

func (m *memStore) SaveBytes(relPath string, data []byte) error {
	m.blobs[relPath] = data
	return nil
}

func (m *memStore) Open(relPath string) (io.ReadCloser, error) {
	data, ok := m.blobs[relPath]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStore) Exists(relPath string) bool {
	_, ok := m.blobs[relPath]
	return ok
}

func (m *memStore) Delete(relPath string) error {
	delete(m.blobs, relPath)
	return nil
}

func (m *memStore) FullPath(relPath string) string {
	return filepath.Join(m.dir, filepath.FromSlash(relPath))
}

func (m *memStore) PublicURL(relPath string) string {
	return m.baseURL + "/" + relPath
}

// fixedStyles serves one customization row, or repository not-found when nil.
type fixedStyles struct {
	row *models.CodeCustomization
}

func (f *fixedStyles) First(context.Context) (*models.CodeCustomization, error) {
	if f.row == nil {
		return nil, repositories.ErrNotFound
	}
	return f.row, nil
}

func TestGenerateWritesDeterministicArtifact(t *testing.T) {
	store := newMemStore(t)
	svc := NewQRCodeService(&fixedStyles{}, store, "https://certs.example.com")

	link, err := svc.Generate(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "http://files.test/uploads/qr_codes/student_7.png", link)
	assert.Equal(t, "qr_codes/student_7.png", svc.ObjectPath(7))
	assert.Equal(t, "https://certs.example.com/certificate/student-qr-info/7/", svc.VerificationURL(7))

	data, ok := store.blobs["qr_codes/student_7.png"]
	require.True(t, ok)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, qrimg.Size, img.Bounds().Dx())
}

func TestGenerateOverwritesPriorArtifact(t *testing.T) {
	store := newMemStore(t)
	store.blobs["qr_codes/student_7.png"] = []byte("stale")
	svc := NewQRCodeService(&fixedStyles{}, store, "https://certs.example.com")

	_, err := svc.Generate(context.Background(), 7)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("stale"), store.blobs["qr_codes/student_7.png"])
}

func TestGenerateAppliesCustomColors(t *testing.T) {
	store := newMemStore(t)
	styles := &fixedStyles{row: &models.CodeCustomization{
		ForegroundColor: "#102030",
		BackgroundColor: "#FFFFFF",
	}}
	svc := NewQRCodeService(styles, store, "https://certs.example.com")

	_, err := svc.Generate(context.Background(), 1)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(store.blobs["qr_codes/student_1.png"]))
	require.NoError(t, err)

	// The quiet zone corner carries the background; a finder pattern module
	// near the corner carries the foreground.
	_, _, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), b)
}

func TestGenerateRejectsInvalidStoredColor(t *testing.T) {
	store := newMemStore(t)
	styles := &fixedStyles{row: &models.CodeCustomization{ForegroundColor: "nonsense"}}
	svc := NewQRCodeService(styles, store, "https://certs.example.com")

	_, err := svc.Generate(context.Background(), 1)
	assert.Error(t, err)
	assert.Empty(t, store.blobs)
}

func TestGenerateFailsHardOnMissingLogo(t *testing.T) {
	store := newMemStore(t)
	logo := "qr_logos/missing.png"
	styles := &fixedStyles{row: &models.CodeCustomization{
		ForegroundColor: "#000000",
		BackgroundColor: "#FFFFFF",
		LogoURL:         &logo,
	}}
	svc := NewQRCodeService(styles, store, "https://certs.example.com")

	_, err := svc.Generate(context.Background(), 1)
	assert.True(t, errors.Is(err, apperrors.ErrAssetUnavailable))
	assert.Empty(t, store.blobs)
}
