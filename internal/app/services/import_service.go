package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/certivo/backend/internal/app/models"
	"github.com/certivo/backend/internal/app/models/dto"
	"github.com/certivo/backend/internal/app/repositories"
	"github.com/certivo/backend/internal/db"
	"github.com/certivo/backend/internal/pkg/apperrors"
	"github.com/certivo/backend/internal/pkg/logger"
	"github.com/certivo/backend/internal/pkg/textenc"
)

// sampleRow is the single example row served with the sample CSV.
var sampleRow = []string{
	"John Doe", "12345", "Computer Science", "Très Bien", "2024",
	"M", "2000-01-01", "Paris", "CERT001", "University of Example",
}

// csvColumns is the expected header of an import file. Unknown columns are
// ignored; missing columns yield empty fields.
var csvColumns = []string{
	"full_name", "matricule", "program", "mention", "session",
	"sex", "birth_date", "birth_place", "number", "issuer_name",
}

// ImportService consumes uploaded CSV files and reconciles their rows
// against the student records.
type ImportService struct {
	database  *db.PostgresDB
	repos     *repositories.Repositories
	generator CodeGenerator
	maxSize   int64
}

// NewImportService creates a new ImportService
func NewImportService(database *db.PostgresDB, repos *repositories.Repositories, generator CodeGenerator, maxSize int64) *ImportService {
	return &ImportService{
		database:  database,
		repos:     repos,
		generator: generator,
		maxSize:   maxSize,
	}
}

// ImportCSV runs one bulk import over an uploaded file. The whole batch is
// one transaction; each row is additionally guarded by a savepoint so a
// failed row never poisons the rows already accepted. The returned report
// carries the aggregate counts and one message per failed row.
func (s *ImportService) ImportCSV(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.ImportReport, error) {
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		return nil, apperrors.NewCustomError(apperrors.ErrUnsupportedFileType, "only .csv files are accepted")
	}
	if fileHeader.Size > s.maxSize {
		return nil, apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the %d byte limit", s.maxSize))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(raw)) > s.maxSize {
		return nil, apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the %d byte limit", s.maxSize))
	}

	text, encName, err := textenc.Decode(raw)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrUndecodableFile, err.Error())
	}

	rows, err := parseRows(text)
	if err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("malformed CSV: %v", err))
	}

	logger.Info().
		Str("file", fileHeader.Filename).
		Str("encoding", encName).
		Int("rows", len(rows)).
		Msg("Starting bulk import")

	report := &dto.ImportReport{
		FileName:  fileHeader.Filename,
		Encoding:  encName,
		TotalRows: len(rows),
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sink := &txSink{tx: tx, repos: s.repos, generator: s.generator}
		succeeded, skipped, rowErrs := processRows(ctx, rows, sink)

		batch := &models.UploadBatch{
			FileName:  fileHeader.Filename,
			TotalRows: len(rows),
			Succeeded: succeeded,
			Skipped:   skipped,
			Failed:    len(rowErrs),
			ErrorLog:  strings.Join(rowErrs, "\n"),
		}
		if err := s.repos.Batches.WithTx(tx).Create(ctx, batch); err != nil {
			return err
		}

		report.BatchID = batch.ID
		report.Succeeded = succeeded
		report.Skipped = skipped
		report.Failed = len(rowErrs)
		report.Errors = rowErrs
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("batchID", report.BatchID).
		Int("succeeded", report.Succeeded).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("Bulk import finished")

	return report, nil
}

// SampleCSV builds the downloadable template file: the expected header plus
// one example row.
func (s *ImportService) SampleCSV() []byte {
	var buf strings.Builder
	w := csv.NewWriter(&buf)
	_ = w.Write(csvColumns)
	_ = w.Write(sampleRow)
	w.Flush()
	return []byte(buf.String())
}

// ListBatches returns the history of import runs, newest first.
func (s *ImportService) ListBatches(ctx context.Context) ([]*models.UploadBatch, error) {
	return s.repos.Batches.List(ctx)
}

// importRow is one parsed data row, fields trimmed, index 1-based.
type importRow struct {
	index      int
	fullName   string
	matricule  string
	program    string
	mention    string
	session    string
	sex        string
	birthDate  string
	birthPlace string
	number     string
	issuerName string
}

// parseRows reads the decoded text as CSV. The header row declares named
// columns; their order does not matter and rows may be ragged.
func parseRows(text string) ([]importRow, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	colIndex := map[string]int{}
	for i, name := range records[0] {
		colIndex[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(record []string, name string) string {
		i, ok := colIndex[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]importRow, 0, len(records)-1)
	for n, record := range records[1:] {
		rows = append(rows, importRow{
			index:      n + 1,
			fullName:   field(record, "full_name"),
			matricule:  field(record, "matricule"),
			program:    field(record, "program"),
			mention:    field(record, "mention"),
			session:    field(record, "session"),
			sex:        field(record, "sex"),
			birthDate:  field(record, "birth_date"),
			birthPlace: field(record, "birth_place"),
			number:     field(record, "number"),
			issuerName: field(record, "issuer_name"),
		})
	}
	return rows, nil
}

// rowOutcome is the explicit per-row result kind of a bulk import.
type rowOutcome int

const (
	outcomeSuccess rowOutcome = iota
	outcomeSkip
	outcomeFailure
)

type rowResult struct {
	outcome rowOutcome
	reason  string
}

func failRow(reason string) rowResult {
	return rowResult{outcome: outcomeFailure, reason: reason}
}

// The validation pipeline is split around the duplicate check: matricule
// presence must hold before the store is asked, while the remaining checks
// only apply to rows that were not skipped as already-imported duplicates.
// A non-empty return is the rejection reason.
var (
	preSkipValidators = []func(importRow) string{
		func(r importRow) string {
			if r.matricule == "" {
				return "missing matricule"
			}
			return ""
		},
	}

	postSkipValidators = []func(importRow) string{
		func(r importRow) string {
			if r.issuerName == "" {
				return "missing issuer name"
			}
			return ""
		},
	}
)

var birthDateLayouts = []string{"02/01/2006", "2006-01-02"}

// normalizeBirthDate accepts DD/MM/YYYY or YYYY-MM-DD. An empty value means
// no date; anything else is a rejection.
func normalizeBirthDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date format %q", s)
}

// importSink is the persistence surface a bulk import writes through,
// narrow enough to fake in tests.
type importSink interface {
	// MatriculeExists reports whether a student with the matricule is
	// already on record.
	MatriculeExists(ctx context.Context, matricule string) (bool, error)

	// ImportRow resolves the issuer by name (creating it when absent),
	// inserts the student and attaches a generated code link. All or
	// nothing per row.
	ImportRow(ctx context.Context, st *models.Student, issuerName string) error
}

// processRows applies the per-row policy in file order and accumulates the
// batch report: successes, intentional skips and one message per failure.
func processRows(ctx context.Context, rows []importRow, sink importSink) (succeeded, skipped int, errs []string) {
	for _, r := range rows {
		res := processRow(ctx, r, sink)
		switch res.outcome {
		case outcomeSuccess:
			succeeded++
		case outcomeSkip:
			skipped++
		case outcomeFailure:
			errs = append(errs, fmt.Sprintf("row %d: %s", r.index, res.reason))
		}
	}
	return succeeded, skipped, errs
}

func processRow(ctx context.Context, r importRow, sink importSink) rowResult {
	for _, validate := range preSkipValidators {
		if reason := validate(r); reason != "" {
			return failRow(reason)
		}
	}

	exists, err := sink.MatriculeExists(ctx, r.matricule)
	if err != nil {
		return failRow(err.Error())
	}
	if exists {
		// Intentional skip, not a failure.
		return rowResult{outcome: outcomeSkip}
	}

	for _, validate := range postSkipValidators {
		if reason := validate(r); reason != "" {
			return failRow(reason)
		}
	}

	birthDate, err := normalizeBirthDate(r.birthDate)
	if err != nil {
		return failRow(err.Error())
	}

	st := &models.Student{
		FullName:   r.fullName,
		BirthDate:  birthDate,
		BirthPlace: r.birthPlace,
		Sex:        r.sex,
		Matricule:  r.matricule,
		Mention:    r.mention,
		Session:    r.session,
		Program:    r.program,
		Number:     r.number,
	}
	if err := sink.ImportRow(ctx, st, r.issuerName); err != nil {
		return failRow(err.Error())
	}
	return rowResult{outcome: outcomeSuccess}
}

// txSink is the importSink bound to the batch transaction. Each ImportRow
// runs inside its own savepoint so a rejected insert leaves the outer
// transaction usable for the rows that follow.
type txSink struct {
	tx        pgx.Tx
	repos     *repositories.Repositories
	generator CodeGenerator
}

func (k *txSink) MatriculeExists(ctx context.Context, matricule string) (bool, error) {
	return k.repos.Students.WithTx(k.tx).ExistsByMatricule(ctx, matricule)
}

func (k *txSink) ImportRow(ctx context.Context, st *models.Student, issuerName string) error {
	sp, err := k.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to open savepoint: %w", err)
	}

	students := k.repos.Students.WithTx(sp)
	issuers := k.repos.Issuers.WithTx(sp)

	issuer, err := issuers.FindOrCreateByName(ctx, issuerName)
	if err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	st.IssuerID = issuer.ID

	if err := students.Create(ctx, st); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}

	link, err := k.generator.Generate(ctx, st.ID)
	if err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	if err := students.SetCodeLink(ctx, st.ID, link); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}

	return sp.Commit(ctx)
}
