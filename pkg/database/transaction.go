package database

import (
	"Recipe-Share-Backend/domain"
	"context"
	"errors"
	"fmt"
	"gorm.io/gorm"
)

// WithTransaction runs work inside one transaction. It commits when work
// returns nil and rolls back on error or panic. Errors that do not already
// carry a domain kind are wrapped with domain.ErrStorage.
func WithTransaction(ctx context.Context, db *gorm.DB, work func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(work)
	if err == nil {
		return nil
	}
	return Wrap(err)
}

// Wrap tags err as a storage failure unless it already carries a domain kind.
func Wrap(err error) error {
	if err == nil || domain.IsClientError(err) || errors.Is(err, domain.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStorage, err)
}

// IsDuplicate reports whether err is a unique-constraint violation. It relies
// on the connection being opened with TranslateError.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
