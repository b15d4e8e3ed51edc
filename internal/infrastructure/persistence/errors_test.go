package persistence

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/resto/backend/internal/domain/shared"
)

func TestTranslateDBError(t *testing.T) {
	syntaxErr := &pq.Error{Code: "42601"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{"duplicated key becomes already exists", gorm.ErrDuplicatedKey, shared.ErrAlreadyExists},
		{"foreign key violation becomes integrity violation", gorm.ErrForeignKeyViolated, shared.ErrIntegrityViolation},
		{"check constraint violation becomes integrity violation", gorm.ErrCheckConstraintViolated, shared.ErrIntegrityViolation},
		{"pq unique violation becomes already exists", &pq.Error{Code: "23505"}, shared.ErrAlreadyExists},
		{"pq foreign key violation becomes integrity violation", &pq.Error{Code: "23503"}, shared.ErrIntegrityViolation},
		{"pq check violation becomes integrity violation", &pq.Error{Code: "23514"}, shared.ErrIntegrityViolation},
		{"wrapped pq error is still recognized", fmt.Errorf("insert failed: %w", &pq.Error{Code: "23505"}), shared.ErrAlreadyExists},
		{"pq syntax error passes through", syntaxErr, syntaxErr},
		{"unrelated error passes through", assert.AnError, assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateDBError(tt.err))
		})
	}
}
