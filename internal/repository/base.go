// Package repository provides data access layer implementations for the application.
package repository

import (
	"chirp/internal/models"
)

// wrapStoreErr converts a driver error into the engine's
// STORE_UNAVAILABLE taxonomy. Not-found conditions are translated at
// the call sites that can name the missing resource.
func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	return models.NewStoreUnavailableError(err)
}
