package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certivo/backend/internal/app/models"
	"github.com/certivo/backend/internal/pkg/apperrors"
)

// fakeSink records imports in memory so row policy can be tested without a
// database.
type fakeSink struct {
	existing map[string]bool
	failWith map[string]error // keyed by matricule
	imported []*models.Student
	issuers  []string
}

func (f *fakeSink) MatriculeExists(_ context.Context, matricule string) (bool, error) {
	return f.existing[matricule], nil
}

func (f *fakeSink) ImportRow(_ context.Context, st *models.Student, issuerName string) error {
	if err := f.failWith[st.Matricule]; err != nil {
		return err
	}
	f.imported = append(f.imported, st)
	f.issuers = append(f.issuers, issuerName)
	return nil
}

func TestProcessRowsAcceptsValidRows(t *testing.T) {
	rows, err := parseRows("full_name,matricule,program,mention,session,sex,birth_date,birth_place,number,issuer_name\n" +
		"John Doe,12345,Computer Science,Très Bien,2024,M,05/03/2001,Paris,CERT001,University of Example\n" +
		"Jane Roe,67890,Mathematics,Bien,2024,F,2000-11-30,Lyon,CERT002,University of Example\n")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	sink := &fakeSink{existing: map[string]bool{}}
	succeeded, skipped, errs := processRows(context.Background(), rows, sink)

	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 0, skipped)
	assert.Empty(t, errs)

	require.Len(t, sink.imported, 2)
	first := sink.imported[0]
	assert.Equal(t, "John Doe", first.FullName)
	assert.Equal(t, "12345", first.Matricule)
	require.NotNil(t, first.BirthDate)
	assert.Equal(t, "2001-03-05", first.BirthDate.Format("2006-01-02"))
	assert.Equal(t, []string{"University of Example", "University of Example"}, sink.issuers)
}

func TestProcessRowsSkipsExistingMatricules(t *testing.T) {
	rows, err := parseRows("full_name,matricule,issuer_name\n" +
		"John Doe,12345,U\n" +
		"Jane Roe,67890,U\n")
	require.NoError(t, err)

	sink := &fakeSink{existing: map[string]bool{"12345": true, "67890": true}}
	succeeded, skipped, errs := processRows(context.Background(), rows, sink)

	assert.Equal(t, 0, succeeded)
	assert.Equal(t, 2, skipped)
	assert.Empty(t, errs)
	assert.Empty(t, sink.imported)
}

func TestProcessRowsSkipsExistingMatriculeBeforeIssuerCheck(t *testing.T) {
	// Re-importing a file whose matricules are all on record must yield
	// only skips, even when an issuer cell is blank.
	rows, err := parseRows("full_name,matricule,issuer_name\n" +
		"John Doe,12345,\n" +
		"Jane Roe,67890,U\n")
	require.NoError(t, err)

	sink := &fakeSink{existing: map[string]bool{"12345": true, "67890": true}}
	succeeded, skipped, errs := processRows(context.Background(), rows, sink)

	assert.Equal(t, 0, succeeded)
	assert.Equal(t, 2, skipped)
	assert.Empty(t, errs)
	assert.Empty(t, sink.imported)
}

func TestProcessRowsReportsMissingFields(t *testing.T) {
	rows, err := parseRows("full_name,matricule,issuer_name\n" +
		"John Doe,,U\n" +
		"Jane Roe,67890,\n")
	require.NoError(t, err)

	sink := &fakeSink{existing: map[string]bool{}}
	succeeded, skipped, errs := processRows(context.Background(), rows, sink)

	assert.Equal(t, 0, succeeded)
	assert.Equal(t, 0, skipped)
	require.Len(t, errs, 2)
	assert.Equal(t, "row 1: missing matricule", errs[0])
	assert.Equal(t, "row 2: missing issuer name", errs[1])
}

func TestProcessRowsRejectsBadDateWithoutRecord(t *testing.T) {
	rows, err := parseRows("full_name,matricule,birth_date,issuer_name\n" +
		"John Doe,12345,05-03-2001,U\n")
	require.NoError(t, err)

	sink := &fakeSink{existing: map[string]bool{}}
	succeeded, skipped, errs := processRows(context.Background(), rows, sink)

	assert.Equal(t, 0, succeeded)
	assert.Equal(t, 0, skipped)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "row 1:")
	assert.Contains(t, errs[0], "05-03-2001")
	assert.Empty(t, sink.imported)
}

func TestProcessRowsRecordsInsertConflicts(t *testing.T) {
	rows, err := parseRows("full_name,matricule,number,issuer_name\n" +
		"John Doe,11111,CERT001,U\n" +
		"Jane Roe,22222,CERT001,U\n")
	require.NoError(t, err)

	sink := &fakeSink{
		existing: map[string]bool{},
		failWith: map[string]error{"22222": apperrors.ErrNumberAlreadyExists},
	}
	succeeded, skipped, errs := processRows(context.Background(), rows, sink)

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 0, skipped)
	require.Len(t, errs, 1)
	assert.Equal(t, "row 2: "+apperrors.ErrNumberAlreadyExists.Error(), errs[0])
}

func TestNormalizeBirthDate(t *testing.T) {
	got, err := normalizeBirthDate("05/03/2001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2001, 3, 5, 0, 0, 0, 0, time.UTC), *got)

	got, err = normalizeBirthDate("2001-03-05")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2001, 3, 5, 0, 0, 0, 0, time.UTC), *got)

	got, err = normalizeBirthDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = normalizeBirthDate("05-03-2001")
	assert.Error(t, err)
}

func TestParseRowsIgnoresColumnOrderAndRaggedRows(t *testing.T) {
	rows, err := parseRows("issuer_name,matricule,full_name\n" +
		"U,123,John Doe\n" +
		"U,456\n")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "John Doe", rows[0].fullName)
	assert.Equal(t, "123", rows[0].matricule)
	assert.Equal(t, "U", rows[0].issuerName)

	// The short row yields empty fields for missing columns.
	assert.Equal(t, "", rows[1].fullName)
	assert.Equal(t, "456", rows[1].matricule)
}

func TestSampleCSV(t *testing.T) {
	svc := NewImportService(nil, nil, nil, 5*1024*1024)

	sample := string(svc.SampleCSV())
	assert.Contains(t, sample, "full_name,matricule,program,mention,session,sex,birth_date,birth_place,number,issuer_name")
	assert.Contains(t, sample, "John Doe,12345,Computer Science,Très Bien,2024,M,2000-01-01,Paris,CERT001,University of Example")

	rows, err := parseRows(sample)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "12345", rows[0].matricule)
}

func TestImportCSVRejectsWrongExtension(t *testing.T) {
	svc := NewImportService(nil, nil, nil, 5*1024*1024)

	_, err := svc.ImportCSV(context.Background(), uploadedFile(t, "students.xlsx", []byte("a,b\n")))
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedFileType))
}

func TestImportCSVRejectsOversizedFile(t *testing.T) {
	svc := NewImportService(nil, nil, nil, 16)

	_, err := svc.ImportCSV(context.Background(), uploadedFile(t, "students.csv", bytes.Repeat([]byte("a"), 64)))
	assert.True(t, errors.Is(err, apperrors.ErrFileTooLarge))
}

func uploadedFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}
