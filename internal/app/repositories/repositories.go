package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is the shared not-found error returned by repositories.
var ErrNotFound = errors.New("record not found")

// DBTX is the querying surface shared by *pgxpool.Pool and pgx.Tx, so a
// repository can be bound either to the pool or to a (nested) transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	Students       *StudentRepository
	Issuers        *IssuerRepository
	Templates      *TemplateRepository
	Customizations *CustomizationRepository
	Batches        *UploadBatchRepository
}

// NewRepositories initializes all repositories bound to the pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Students:       NewStudentRepository(db),
		Issuers:        NewIssuerRepository(db),
		Templates:      NewTemplateRepository(db),
		Customizations: NewCustomizationRepository(db),
		Batches:        NewUploadBatchRepository(db),
	}
}
