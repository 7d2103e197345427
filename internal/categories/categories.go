// Package categories provides access to the external category directory.
// The pipeline only needs to list a user's categories; everything else
// about category management belongs to the surrounding application.
package categories

import (
	"context"

	"tmerle/ledgerstage/internal/models"
)

// Directory is the category lookup contract used at promotion time.
type Directory interface {
	// ListCategories returns the user's categories in their stable,
	// user-defined order. An empty slice means the user has none.
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)
}

// MockDirectory is a Directory implementation for tests.
type MockDirectory struct {
	Categories map[string][]models.Category
	Err        error
}

// ListCategories returns the mock categories for the user.
func (m *MockDirectory) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories[userID], nil
}
