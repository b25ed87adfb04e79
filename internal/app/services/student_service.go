package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/certivo/backend/internal/app/models"
	"github.com/certivo/backend/internal/app/models/dto"
	"github.com/certivo/backend/internal/app/repositories"
	"github.com/certivo/backend/internal/db"
	"github.com/certivo/backend/internal/pkg/apperrors"
	"github.com/certivo/backend/internal/pkg/filestorage"
	"github.com/certivo/backend/internal/pkg/helpers"
	"github.com/certivo/backend/internal/pkg/logger"
)

// StudentService implements business logic for student records.
type StudentService struct {
	database  *db.PostgresDB
	repos     *repositories.Repositories
	storage   filestorage.FileStorage
	generator CodeGenerator
}

// NewStudentService creates a new StudentService
func NewStudentService(database *db.PostgresDB, repos *repositories.Repositories, storage filestorage.FileStorage, generator CodeGenerator) *StudentService {
	return &StudentService{
		database:  database,
		repos:     repos,
		storage:   storage,
		generator: generator,
	}
}

// Create inserts a student from the manual form and attaches a generated
// code link, both inside one transaction.
func (s *StudentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	st, err := s.studentFromForm(ctx, req.FullName, req.Matricule, req.Program, req.Mention,
		req.Session, req.Sex, req.BirthDate, req.BirthPlace, req.Number, req.IssuerID, req.TemplateID)
	if err != nil {
		return nil, err
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.repos.Students.WithTx(tx)
		if err := students.Create(ctx, st); err != nil {
			return err
		}
		link, err := s.generator.Generate(ctx, st.ID)
		if err != nil {
			return err
		}
		return students.SetCodeLink(ctx, st.ID, link)
	})
	if err != nil {
		return nil, err
	}

	return s.repos.Students.GetByID(ctx, st.ID)
}

// GetByID retrieves a student with its issuer populated.
func (s *StudentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.repos.Students.GetByID(ctx, id)
}

// List retrieves one page of students, newest first, plus the total count.
func (s *StudentService) List(ctx context.Context, page, size int) ([]*models.Student, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	students, err := s.repos.Students.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.Students.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

// Update rewrites a student's editable fields. The issue timestamp is never
// touched. A student without a code link gets one generated here, so records
// predating code generation heal on their next edit.
func (s *StudentService) Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	existing, err := s.repos.Students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	st, err := s.studentFromForm(ctx, req.FullName, req.Matricule, req.Program, req.Mention,
		req.Session, req.Sex, req.BirthDate, req.BirthPlace, req.Number, req.IssuerID, req.TemplateID)
	if err != nil {
		return nil, err
	}
	st.ID = existing.ID

	if err := s.repos.Students.Update(ctx, st); err != nil {
		return nil, err
	}

	if existing.QRCodeLink == nil || *existing.QRCodeLink == "" {
		link, err := s.generator.Generate(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		if err := s.repos.Students.SetCodeLink(ctx, st.ID, link); err != nil {
			return nil, err
		}
	}

	return s.repos.Students.GetByID(ctx, st.ID)
}

// Delete removes a student record and its code image from the content store.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repos.Students.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(s.generator.ObjectPath(id)); err != nil {
		logger.Warn().Err(err).Int64("studentID", id).Msg("Failed to remove code image")
	}
	return nil
}

// RegenerateAll rebuilds the code image of every student in one pass,
// overwriting existing artifacts. Per-item failures are tolerated; the
// remaining records are still processed.
func (s *StudentService) RegenerateAll(ctx context.Context) (*dto.RegenerateResponse, error) {
	students, err := s.repos.Students.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.RegenerateResponse{}
	for _, st := range students {
		link, err := s.generator.Generate(ctx, st.ID)
		if err != nil {
			logger.Warn().Err(err).Int64("studentID", st.ID).Msg("Code regeneration failed")
			resp.Failed++
			continue
		}
		if err := s.repos.Students.SetCodeLink(ctx, st.ID, link); err != nil {
			logger.Warn().Err(err).Int64("studentID", st.ID).Msg("Failed to persist regenerated code link")
			resp.Failed++
			continue
		}
		resp.Processed++
	}

	logger.Info().Int("processed", resp.Processed).Int("failed", resp.Failed).
		Msg("Bulk code regeneration finished")
	return resp, nil
}

// studentFromForm validates form references and maps the fields onto a model.
func (s *StudentService) studentFromForm(ctx context.Context, fullName, matricule, program, mention,
	session, sex, birthDate, birthPlace, number string, issuerID int64, templateID *int64) (*models.Student, error) {

	if _, err := s.repos.Issuers.GetByID(ctx, issuerID); err != nil {
		return nil, err
	}
	if templateID != nil {
		if _, err := s.repos.Templates.GetByID(ctx, *templateID); err != nil {
			return nil, err
		}
	}

	parsedDate, err := normalizeBirthDate(birthDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid birth date: %v", err))
	}

	return &models.Student{
		FullName:   fullName,
		BirthDate:  parsedDate,
		BirthPlace: birthPlace,
		Sex:        sex,
		Matricule:  matricule,
		Mention:    mention,
		Session:    session,
		Program:    program,
		Number:     number,
		IssuerID:   issuerID,
		TemplateID: templateID,
	}, nil
}
