package services

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/certivo/backend/internal/app/models"
	"github.com/certivo/backend/internal/pkg/filestorage"
	"github.com/certivo/backend/internal/pkg/logger"
)

// exportColumns is the header of the summary table inside the archive.
var exportColumns = []string{
	"Full Name", "Matricule", "Program", "Mention", "Session",
	"Sex", "Birth Date", "Birth Place", "Number", "Issuer",
	"Issue Date", "QR Code Link",
}

// SummaryEntryName is the archive entry holding the summary table.
const SummaryEntryName = "student_data.csv"

// studentLister is the read surface the export aggregates over.
type studentLister interface {
	ListAll(ctx context.Context) ([]*models.Student, error)
}

// ExportService packages all student records and their code images into a
// single downloadable archive.
type ExportService struct {
	students  studentLister
	storage   filestorage.FileStorage
	generator CodeGenerator
}

// NewExportService creates a new ExportService
func NewExportService(students studentLister, storage filestorage.FileStorage, generator CodeGenerator) *ExportService {
	return &ExportService{
		students:  students,
		storage:   storage,
		generator: generator,
	}
}

// BuildArchive writes a zip archive to w: one summary CSV row per student
// plus the code image of every student whose blob is still present. A record
// whose blob is missing is silently omitted from the image entries; it never
// fails the export.
func (s *ExportService) BuildArchive(ctx context.Context, w io.Writer) error {
	students, err := s.students.ListAll(ctx)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)

	if err := s.writeSummary(zw, students); err != nil {
		return err
	}

	for _, st := range students {
		if st.QRCodeLink == nil || *st.QRCodeLink == "" {
			continue
		}
		objectPath := s.generator.ObjectPath(st.ID)
		if !s.storage.Exists(objectPath) {
			logger.Warn().Int64("studentID", st.ID).Str("path", objectPath).
				Msg("Code image missing from content store, omitting from export")
			continue
		}
		if err := s.copyBlob(zw, objectPath); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

func (s *ExportService) writeSummary(zw *zip.Writer, students []*models.Student) error {
	entry, err := zw.Create(SummaryEntryName)
	if err != nil {
		return fmt.Errorf("failed to create summary entry: %w", err)
	}

	cw := csv.NewWriter(entry)
	if err := cw.Write(exportColumns); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	for _, st := range students {
		if err := cw.Write(summaryRecord(st)); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func summaryRecord(st *models.Student) []string {
	birthDate := ""
	if st.BirthDate != nil {
		birthDate = st.BirthDate.Format("2006-01-02")
	}
	issuerName := ""
	if st.Issuer != nil {
		issuerName = st.Issuer.Name
	}
	codeLink := ""
	if st.QRCodeLink != nil {
		codeLink = *st.QRCodeLink
	}
	return []string{
		st.FullName, st.Matricule, st.Program, st.Mention, st.Session,
		st.Sex, birthDate, st.BirthPlace, st.Number, issuerName,
		st.IssuedAt.Format("2006-01-02"), codeLink,
	}
}

func (s *ExportService) copyBlob(zw *zip.Writer, objectPath string) error {
	blob, err := s.storage.Open(objectPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", objectPath, err)
	}
	defer blob.Close()

	entry, err := zw.Create(objectPath)
	if err != nil {
		return fmt.Errorf("failed to create archive entry %s: %w", objectPath, err)
	}
	if _, err := io.Copy(entry, blob); err != nil {
		return fmt.Errorf("failed to copy %s into archive: %w", objectPath, err)
	}
	return nil
}
