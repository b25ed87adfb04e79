package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func uniqueViolation(constraint string) error {
	return fmt.Errorf("error creating student: %w", &pgconn.PgError{
		Code:           "23505",
		ConstraintName: constraint,
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(uniqueViolation("students_matricule_key")))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsDuplicateConstraintError(t *testing.T) {
	err := uniqueViolation("students_number_key")
	assert.True(t, IsDuplicateConstraintError(err, "students_number_key"))
	assert.False(t, IsDuplicateConstraintError(err, "students_matricule_key"))
}

func TestConstraintName(t *testing.T) {
	assert.Equal(t, "students_identity_key", ConstraintName(uniqueViolation("students_identity_key")))
	assert.Equal(t, "", ConstraintName(errors.New("plain error")))
}
