package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/certivo/backend/internal/app/models"
	"github.com/certivo/backend/internal/pkg/logger"
)

// UploadBatchRepository records the outcome of each bulk import run.
type UploadBatchRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewUploadBatchRepository creates a new UploadBatchRepository
func NewUploadBatchRepository(db DBTX) *UploadBatchRepository {
	return &UploadBatchRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *UploadBatchRepository) WithTx(tx pgx.Tx) *UploadBatchRepository {
	return &UploadBatchRepository{db: tx, sb: r.sb}
}

// Create inserts an import batch record and fills in its id and timestamp.
func (r *UploadBatchRepository) Create(ctx context.Context, b *models.UploadBatch) error {
	sql, args, err := r.sb.Insert("upload_batches").
		Columns("file_name", "total_rows", "succeeded", "skipped", "failed", "error_log").
		Values(b.FileName, b.TotalRows, b.Succeeded, b.Skipped, b.Failed, b.ErrorLog).
		Suffix("RETURNING id, uploaded_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create upload batch query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&b.ID, &b.UploadedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create upload batch query")
		return fmt.Errorf("error creating upload batch: %w", err)
	}
	return nil
}

// List retrieves import batches, newest first.
func (r *UploadBatchRepository) List(ctx context.Context) ([]*models.UploadBatch, error) {
	sql, args, err := r.sb.Select("id", "file_name", "uploaded_at", "total_rows", "succeeded", "skipped", "failed", "error_log").
		From("upload_batches").
		OrderBy("uploaded_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list upload batches query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list upload batches query")
		return nil, fmt.Errorf("error querying upload batches: %w", err)
	}
	defer rows.Close()

	batches := []*models.UploadBatch{}
	for rows.Next() {
		b := &models.UploadBatch{}
		if err := rows.Scan(&b.ID, &b.FileName, &b.UploadedAt, &b.TotalRows,
			&b.Succeeded, &b.Skipped, &b.Failed, &b.ErrorLog); err != nil {
			return nil, fmt.Errorf("error scanning upload batch row: %w", err)
		}
		batches = append(batches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating upload batch rows: %w", err)
	}
	return batches, nil
}
