package catalog

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
)

var (
	// ErrEntryNotFound is returned when no entry exists for a slug.
	ErrEntryNotFound = errors.New("catalog: entry not found")

	ErrDriverUnsupported = errors.New("catalog: unsupported driver")
	ErrDatabaseRequired  = errors.New("catalog: database is required")
)

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return goerrors.Wrap(ErrEntryNotFound, goerrors.CategoryNotFound, fmt.Sprintf("catalog entry %q not found", key)).
			WithTextCode("CATALOG_ENTRY_NOT_FOUND")
	}
	return fmt.Errorf("catalog repository error: %w", err)
}
