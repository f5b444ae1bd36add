// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	// Record errors
	ErrInvalidKind = errors.New("invalid message kind")

	// Run errors
	ErrNoRecords     = errors.New("no records to deduplicate")
	ErrCountMismatch = errors.New("inconsistent message counts after deduplication")
)
