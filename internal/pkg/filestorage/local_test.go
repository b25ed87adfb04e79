package filestorage

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	return storage
}

func TestSaveBytesAndOpen(t *testing.T) {
	storage := newTestStorage(t)

	require.NoError(t, storage.SaveBytes("qr_codes/student_1.png", []byte("first")))
	assert.True(t, storage.Exists("qr_codes/student_1.png"))

	// Overwrite semantics: a second write replaces the blob.
	require.NoError(t, storage.SaveBytes("qr_codes/student_1.png", []byte("second")))

	blob, err := storage.Open("qr_codes/student_1.png")
	require.NoError(t, err)
	defer blob.Close()

	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestDeleteIsIdempotent(t *testing.T) {
	storage := newTestStorage(t)

	require.NoError(t, storage.SaveBytes("signatures/a.png", []byte("x")))
	require.NoError(t, storage.Delete("signatures/a.png"))
	assert.False(t, storage.Exists("signatures/a.png"))

	// Deleting a missing blob is not an error.
	assert.NoError(t, storage.Delete("signatures/a.png"))
}

func TestFullPathAndPublicURL(t *testing.T) {
	storage := newTestStorage(t)

	assert.Equal(t, filepath.Join(storage.BasePath(), "qr_codes/student_7.png"),
		storage.FullPath("qr_codes/student_7.png"))
	assert.Equal(t, "http://localhost:8080/uploads/qr_codes/student_7.png",
		storage.PublicURL("qr_codes/student_7.png"))
}
