package persistence

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/resto/backend/internal/domain/shared"
)

// translateDBError maps database constraint violations onto domain errors so
// handlers can answer with a conflict instead of a generic failure. Unique
// violations become shared.ErrAlreadyExists; foreign key and check violations
// become shared.ErrIntegrityViolation. Anything else passes through unchanged.
//
// The gorm sentinels cover the pgx driver (TranslateError is on); the pq
// branch covers connections opened through database/sql with lib/pq.
func translateDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return shared.ErrIntegrityViolation
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" {
			return shared.ErrAlreadyExists
		}
		if pqErr.Code.Class() == "23" {
			return shared.ErrIntegrityViolation
		}
	}

	return err
}
