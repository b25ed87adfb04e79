package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/certivo/backend/internal/app/models"
	"github.com/certivo/backend/internal/pkg/apperrors"
	"github.com/certivo/backend/internal/pkg/logger"
)

// TemplateRepository handles certificate template database operations
type TemplateRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db DBTX) *TemplateRepository {
	return &TemplateRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new template and fills in its id.
func (r *TemplateRepository) Create(ctx context.Context, t *models.CertificateTemplate) error {
	sql, args, err := r.sb.Insert("certificate_templates").
		Columns("name", "background_url", "font", "title_font_size", "body_font_size", "text_color", "qr_position").
		Values(t.Name, t.BackgroundURL, t.Font, t.TitleFontSize, t.BodyFontSize, t.TextColor, t.QRPosition).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create template query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&t.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create template query")
		return fmt.Errorf("error creating template: %w", err)
	}
	return nil
}

// GetByID retrieves a template by ID
func (r *TemplateRepository) GetByID(ctx context.Context, id int64) (*models.CertificateTemplate, error) {
	sql, args, err := r.sb.Select("id", "name", "background_url", "font", "title_font_size", "body_font_size", "text_color", "qr_position").
		From("certificate_templates").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get template query: %w", err)
	}

	t := &models.CertificateTemplate{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&t.ID, &t.Name, &t.BackgroundURL,
		&t.Font, &t.TitleFontSize, &t.BodyFontSize, &t.TextColor, &t.QRPosition)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTemplateNotFound
		}
		logger.Error().Err(err).Int64("templateID", id).Msg("Error scanning template row")
		return nil, fmt.Errorf("error getting template by ID: %w", err)
	}
	return t, nil
}

// List retrieves all templates ordered by name.
func (r *TemplateRepository) List(ctx context.Context) ([]*models.CertificateTemplate, error) {
	sql, args, err := r.sb.Select("id", "name", "background_url", "font", "title_font_size", "body_font_size", "text_color", "qr_position").
		From("certificate_templates").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list templates query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list templates query")
		return nil, fmt.Errorf("error querying templates: %w", err)
	}
	defer rows.Close()

	templates := []*models.CertificateTemplate{}
	for rows.Next() {
		t := &models.CertificateTemplate{}
		if err := rows.Scan(&t.ID, &t.Name, &t.BackgroundURL, &t.Font,
			&t.TitleFontSize, &t.BodyFontSize, &t.TextColor, &t.QRPosition); err != nil {
			return nil, fmt.Errorf("error scanning template row: %w", err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}
	return templates, nil
}

// Update rewrites a template's fields.
func (r *TemplateRepository) Update(ctx context.Context, t *models.CertificateTemplate) error {
	sql, args, err := r.sb.Update("certificate_templates").
		SetMap(map[string]interface{}{
			"name":            t.Name,
			"background_url":  t.BackgroundURL,
			"font":            t.Font,
			"title_font_size": t.TitleFontSize,
			"body_font_size":  t.BodyFontSize,
			"text_color":      t.TextColor,
			"qr_position":     t.QRPosition,
		}).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update template query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("templateID", t.ID).Msg("Error executing update template query")
		return fmt.Errorf("error updating template: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTemplateNotFound
	}
	return nil
}

// Delete removes a template by ID. Student references are nullified by the
// ON DELETE SET NULL constraint, never cascaded.
func (r *TemplateRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("certificate_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete template query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("templateID", id).Msg("Error executing delete template query")
		return fmt.Errorf("error deleting template: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTemplateNotFound
	}
	return nil
}
