package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certivo/backend/internal/app/models"
)

// staticGen satisfies CodeGenerator with fixed outputs.
type staticGen struct{}

func (staticGen) Generate(_ context.Context, studentID int64) (string, error) {
	return fmt.Sprintf("http://files.test/uploads/qr_codes/student_%d.png", studentID), nil
}

func (staticGen) ObjectPath(studentID int64) string {
	return fmt.Sprintf("qr_codes/student_%d.png", studentID)
}

type staticLister struct {
	students []*models.Student
}

func (l *staticLister) ListAll(context.Context) ([]*models.Student, error) {
	return l.students, nil
}

func exportStudent(id int64, matricule string, withLink bool) *models.Student {
	st := &models.Student{
		ID:        id,
		FullName:  "Student " + matricule,
		Matricule: matricule,
		Number:    "CERT" + matricule,
		IssuerID:  1,
		IssuedAt:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		Issuer:    &models.Issuer{ID: 1, Name: "University of Example"},
	}
	if withLink {
		link := fmt.Sprintf("http://files.test/uploads/qr_codes/student_%d.png", id)
		st.QRCodeLink = &link
	}
	return st
}

func TestBuildArchiveContainsSummaryAndImages(t *testing.T) {
	store := newMemStore(t)
	store.blobs["qr_codes/student_1.png"] = []byte("png-1")
	store.blobs["qr_codes/student_2.png"] = []byte("png-2")

	lister := &staticLister{students: []*models.Student{
		exportStudent(1, "111", true),
		exportStudent(2, "222", true),
	}}
	svc := NewExportService(lister, store, staticGen{})

	var buf bytes.Buffer
	require.NoError(t, svc.BuildArchive(context.Background(), &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)

	records := readSummary(t, zr)
	require.Len(t, records, 3) // header + 2 rows
	assert.Equal(t, exportColumns, records[0])
	assert.Equal(t, "111", records[1][1])
	assert.Equal(t, "University of Example", records[1][9])
	assert.Equal(t, "http://files.test/uploads/qr_codes/student_1.png", records[1][11])

	assert.Equal(t, []byte("png-2"), readEntry(t, zr, "qr_codes/student_2.png"))
}

func TestBuildArchiveOmitsMissingBlobs(t *testing.T) {
	store := newMemStore(t)
	store.blobs["qr_codes/student_1.png"] = []byte("png-1")

	lister := &staticLister{students: []*models.Student{
		exportStudent(1, "111", true),
		exportStudent(2, "222", true),  // link but no blob
		exportStudent(3, "333", false), // no link at all
	}}
	svc := NewExportService(lister, store, staticGen{})

	var buf bytes.Buffer
	require.NoError(t, svc.BuildArchive(context.Background(), &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := []string{}
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{SummaryEntryName, "qr_codes/student_1.png"}, names)

	// Every record still appears in the summary.
	records := readSummary(t, zr)
	assert.Len(t, records, 4)
}

func TestBuildArchiveWithNoStudents(t *testing.T) {
	svc := NewExportService(&staticLister{}, newMemStore(t), staticGen{})

	var buf bytes.Buffer
	require.NoError(t, svc.BuildArchive(context.Background(), &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, SummaryEntryName, zr.File[0].Name)
}

func readSummary(t *testing.T, zr *zip.Reader) [][]string {
	t.Helper()

	records, err := csv.NewReader(bytes.NewReader(readEntry(t, zr, SummaryEntryName))).ReadAll()
	require.NoError(t, err)
	return records
}

func readEntry(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return data
	}
	t.Fatalf("entry %s not found in archive", name)
	return nil
}
