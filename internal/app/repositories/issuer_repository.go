package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/certivo/backend/internal/app/models"
	"github.com/certivo/backend/internal/pkg/apperrors"
	"github.com/certivo/backend/internal/pkg/logger"
)

// IssuerRepository handles issuer database operations
type IssuerRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewIssuerRepository creates a new IssuerRepository
func NewIssuerRepository(db DBTX) *IssuerRepository {
	return &IssuerRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *IssuerRepository) WithTx(tx pgx.Tx) *IssuerRepository {
	return &IssuerRepository{db: tx, sb: r.sb}
}

// Create inserts a new issuer and fills in its id and opaque token.
func (r *IssuerRepository) Create(ctx context.Context, is *models.Issuer) error {
	sql, args, err := r.sb.Insert("issuers").
		Columns("name", "signature_url").
		Values(is.Name, is.SignatureURL).
		Suffix("RETURNING id, uuid").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create issuer SQL")
		return fmt.Errorf("failed to build create issuer query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&is.ID, &is.UUID); err != nil {
		logger.Error().Err(err).Msg("Error executing create issuer query")
		return fmt.Errorf("error creating issuer: %w", err)
	}
	return nil
}

// GetByID retrieves an issuer by ID
func (r *IssuerRepository) GetByID(ctx context.Context, id int64) (*models.Issuer, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUUID retrieves an issuer by its opaque external token.
func (r *IssuerRepository) GetByUUID(ctx context.Context, token uuid.UUID) (*models.Issuer, error) {
	return r.getOne(ctx, squirrel.Eq{"uuid": token})
}

func (r *IssuerRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.Issuer, error) {
	sql, args, err := r.sb.Select("id", "name", "uuid", "signature_url").
		From("issuers").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get issuer query: %w", err)
	}

	is := &models.Issuer{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&is.ID, &is.Name, &is.UUID, &is.SignatureURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIssuerNotFound
		}
		logger.Error().Err(err).Msg("Error scanning issuer row")
		return nil, fmt.Errorf("error getting issuer: %w", err)
	}
	return is, nil
}

// List retrieves all issuers ordered by name.
func (r *IssuerRepository) List(ctx context.Context) ([]*models.Issuer, error) {
	sql, args, err := r.sb.Select("id", "name", "uuid", "signature_url").
		From("issuers").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list issuers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list issuers query")
		return nil, fmt.Errorf("error querying issuers: %w", err)
	}
	defer rows.Close()

	issuers := []*models.Issuer{}
	for rows.Next() {
		is := &models.Issuer{}
		if err := rows.Scan(&is.ID, &is.Name, &is.UUID, &is.SignatureURL); err != nil {
			logger.Error().Err(err).Msg("Error scanning issuer row during list")
			return nil, fmt.Errorf("error scanning issuer row: %w", err)
		}
		issuers = append(issuers, is)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating issuer rows: %w", err)
	}
	return issuers, nil
}

// FindOrCreateByName resolves an issuer by display name: the first match by
// id wins; when absent a new issuer is created with no further side effects.
func (r *IssuerRepository) FindOrCreateByName(ctx context.Context, name string) (*models.Issuer, error) {
	sql, args, err := r.sb.Select("id", "name", "uuid", "signature_url").
		From("issuers").
		Where(squirrel.Eq{"name": name}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find issuer query: %w", err)
	}

	is := &models.Issuer{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&is.ID, &is.Name, &is.UUID, &is.SignatureURL)
	if err == nil {
		return is, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("name", name).Msg("Error finding issuer by name")
		return nil, fmt.Errorf("error finding issuer by name: %w", err)
	}

	is = &models.Issuer{Name: name}
	if err := r.Create(ctx, is); err != nil {
		return nil, err
	}
	return is, nil
}

// Update rewrites an issuer's mutable fields. The opaque token is immutable.
func (r *IssuerRepository) Update(ctx context.Context, is *models.Issuer) error {
	sql, args, err := r.sb.Update("issuers").
		SetMap(map[string]interface{}{
			"name":          is.Name,
			"signature_url": is.SignatureURL,
		}).
		Where(squirrel.Eq{"id": is.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update issuer query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("issuerID", is.ID).Msg("Error executing update issuer query")
		return fmt.Errorf("error updating issuer: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrIssuerNotFound
	}
	return nil
}

// Delete removes an issuer by ID. Owned students are removed by the
// ON DELETE CASCADE constraint.
func (r *IssuerRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("issuers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete issuer query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("issuerID", id).Msg("Error executing delete issuer query")
		return fmt.Errorf("error deleting issuer: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrIssuerNotFound
	}
	return nil
}
