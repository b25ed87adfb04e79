package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/certivo/backend/internal/app/models"
	"github.com/certivo/backend/internal/pkg/apperrors"
	"github.com/certivo/backend/internal/pkg/dberrors"
	"github.com/certivo/backend/internal/pkg/logger"
)

// Unique constraint names from migrations/001_init.sql. Violations are
// mapped to typed errors so callers can treat them as expected outcomes.
const (
	constraintMatricule = "students_matricule_key"
	constraintNumber    = "students_number_key"
	constraintIdentity  = "students_identity_key"
	constraintCodeLink  = "students_qr_code_link_key"
)

var studentColumns = []string{
	"id", "full_name", "birth_date", "birth_place", "sex", "matricule",
	"mention", "session", "program", "number", "issuer_id", "template_id",
	"issued_at", "qr_code_link",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *StudentRepository) WithTx(tx pgx.Tx) *StudentRepository {
	return &StudentRepository{db: tx, sb: r.sb}
}

// mapUniqueViolation translates a unique violation into the matching typed
// error, or returns nil if err is not a unique violation.
func mapUniqueViolation(err error) error {
	if !dberrors.IsUniqueViolation(err) {
		return nil
	}
	switch dberrors.ConstraintName(err) {
	case constraintMatricule:
		return apperrors.ErrMatriculeAlreadyExists
	case constraintNumber:
		return apperrors.ErrNumberAlreadyExists
	case constraintIdentity:
		return apperrors.ErrStudentIdentityExists
	case constraintCodeLink:
		return apperrors.NewConflictError("verification code link already in use")
	default:
		return apperrors.ErrConflict
	}
}

// Create inserts a new student and fills in its id and issue timestamp.
func (r *StudentRepository) Create(ctx context.Context, st *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("full_name", "birth_date", "birth_place", "sex", "matricule",
			"mention", "session", "program", "number", "issuer_id", "template_id").
		Values(st.FullName, st.BirthDate, st.BirthPlace, st.Sex, st.Matricule,
			st.Mention, st.Session, st.Program, st.Number, st.IssuerID, st.TemplateID).
		Suffix("RETURNING id, issued_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&st.ID, &st.IssuedAt)
	if err != nil {
		if typed := mapUniqueViolation(err); typed != nil {
			return typed
		}
		logger.Error().Err(err).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID with its issuer populated.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(prefixed("s", studentColumns)...).
		Columns("i.id", "i.name", "i.uuid", "i.signature_url").
		From("students s").
		Join("issuers i ON i.id = s.issuer_id").
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	st, err := scanStudentWithIssuer(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return st, nil
}

// List retrieves one page of students, most recently added first.
func (r *StudentRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(prefixed("s", studentColumns)...).
		Columns("i.id", "i.name", "i.uuid", "i.signature_url").
		From("students s").
		Join("issuers i ON i.id = s.issuer_id").
		OrderBy("s.id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	return r.queryStudents(ctx, sql, args)
}

// ListAll retrieves every student with its issuer populated, ordered by id.
// Used by export and bulk regeneration.
func (r *StudentRepository) ListAll(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(prefixed("s", studentColumns)...).
		Columns("i.id", "i.name", "i.uuid", "i.signature_url").
		From("students s").
		Join("issuers i ON i.id = s.issuer_id").
		OrderBy("s.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list all students SQL")
		return nil, fmt.Errorf("failed to build list all students query: %w", err)
	}

	return r.queryStudents(ctx, sql, args)
}

// ListByIssuer retrieves every student owned by one issuer.
func (r *StudentRepository) ListByIssuer(ctx context.Context, issuerID int64) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(prefixed("s", studentColumns)...).
		Columns("i.id", "i.name", "i.uuid", "i.signature_url").
		From("students s").
		Join("issuers i ON i.id = s.issuer_id").
		Where(squirrel.Eq{"s.issuer_id": issuerID}).
		OrderBy("s.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students by issuer SQL")
		return nil, fmt.Errorf("failed to build list students by issuer query: %w", err)
	}

	return r.queryStudents(ctx, sql, args)
}

// Count returns the total number of student records.
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("students").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// ExistsByMatricule reports whether a student with the given matricule exists.
func (r *StudentRepository) ExistsByMatricule(ctx context.Context, matricule string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"matricule": matricule}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build matricule existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("matricule", matricule).Msg("Error checking matricule existence")
		return false, fmt.Errorf("error checking matricule existence: %w", err)
	}
	return exists, nil
}

// Update rewrites the editable fields of a student. The issue timestamp is
// immutable and never part of the update set.
func (r *StudentRepository) Update(ctx context.Context, st *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"full_name":   st.FullName,
			"birth_date":  st.BirthDate,
			"birth_place": st.BirthPlace,
			"sex":         st.Sex,
			"matricule":   st.Matricule,
			"mention":     st.Mention,
			"session":     st.Session,
			"program":     st.Program,
			"number":      st.Number,
			"issuer_id":   st.IssuerID,
			"template_id": st.TemplateID,
		}).
		Where(squirrel.Eq{"id": st.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if typed := mapUniqueViolation(err); typed != nil {
			return typed
		}
		logger.Error().Err(err).Int64("studentID", st.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SetCodeLink persists the generated verification code link on a student.
func (r *StudentRepository) SetCodeLink(ctx context.Context, id int64, link string) error {
	sql, args, err := r.sb.Update("students").
		Set("qr_code_link", link).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set code link query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if typed := mapUniqueViolation(err); typed != nil {
			return typed
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error setting code link")
		return fmt.Errorf("error setting code link: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student by ID.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) queryStudents(ctx context.Context, sql string, args []interface{}) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		st, err := scanStudentWithIssuer(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, st)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

func scanStudentWithIssuer(row pgx.Row) (*models.Student, error) {
	st := &models.Student{Issuer: &models.Issuer{}}
	err := row.Scan(
		&st.ID, &st.FullName, &st.BirthDate, &st.BirthPlace, &st.Sex,
		&st.Matricule, &st.Mention, &st.Session, &st.Program, &st.Number,
		&st.IssuerID, &st.TemplateID, &st.IssuedAt, &st.QRCodeLink,
		&st.Issuer.ID, &st.Issuer.Name, &st.Issuer.UUID, &st.Issuer.SignatureURL,
	)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}
