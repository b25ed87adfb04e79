package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/certivo/backend/internal/app/models"
	"github.com/certivo/backend/internal/pkg/logger"
)

// CustomizationRepository handles the QR code styling row. The table is
// effectively a singleton: the first row by id is the one in effect.
type CustomizationRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewCustomizationRepository creates a new CustomizationRepository
func NewCustomizationRepository(db DBTX) *CustomizationRepository {
	return &CustomizationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// First returns the styling row in effect, or ErrNotFound when none exists.
func (r *CustomizationRepository) First(ctx context.Context) (*models.CodeCustomization, error) {
	sql, args, err := r.sb.Select("id", "foreground_color", "background_color", "logo_url").
		From("code_customizations").
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get customization query: %w", err)
	}

	cu := &models.CodeCustomization{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&cu.ID, &cu.ForegroundColor, &cu.BackgroundColor, &cu.LogoURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning customization row")
		return nil, fmt.Errorf("error getting customization: %w", err)
	}
	return cu, nil
}

// Upsert updates the styling row in effect, creating it on first use.
func (r *CustomizationRepository) Upsert(ctx context.Context, cu *models.CodeCustomization) error {
	existing, err := r.First(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		return r.insert(ctx, cu)
	}

	cu.ID = existing.ID
	sql, args, err := r.sb.Update("code_customizations").
		SetMap(map[string]interface{}{
			"foreground_color": cu.ForegroundColor,
			"background_color": cu.BackgroundColor,
			"logo_url":         cu.LogoURL,
		}).
		Where(squirrel.Eq{"id": cu.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update customization query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing update customization query")
		return fmt.Errorf("error updating customization: %w", err)
	}
	return nil
}

func (r *CustomizationRepository) insert(ctx context.Context, cu *models.CodeCustomization) error {
	sql, args, err := r.sb.Insert("code_customizations").
		Columns("foreground_color", "background_color", "logo_url").
		Values(cu.ForegroundColor, cu.BackgroundColor, cu.LogoURL).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create customization query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&cu.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create customization query")
		return fmt.Errorf("error creating customization: %w", err)
	}
	return nil
}
