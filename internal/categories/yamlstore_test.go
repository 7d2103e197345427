package categories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCategoriesYAML = `users:
  alice:
    - id: cat-groceries
      name: Groceries
    - id: cat-rent
      name: Rent
  bob:
    - id: cat-travel
      name: Travel
`

func writeCategoriesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestYAMLStoreListCategories(t *testing.T) {
	store := NewYAMLStore(writeCategoriesFile(t, sampleCategoriesYAML))

	cats, err := store.ListCategories(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	// Order in the file is the user's stable order.
	assert.Equal(t, "cat-groceries", cats[0].ID)
	assert.Equal(t, "Groceries", cats[0].Name)
	assert.Equal(t, "cat-rent", cats[1].ID)

	cats, err = store.ListCategories(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Travel", cats[0].Name)
}

func TestYAMLStoreUnknownUser(t *testing.T) {
	store := NewYAMLStore(writeCategoriesFile(t, sampleCategoriesYAML))

	cats, err := store.ListCategories(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestYAMLStoreMissingFile(t *testing.T) {
	store := NewYAMLStore(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	cats, err := store.ListCategories(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, cats)
}

func TestYAMLStoreMalformedFile(t *testing.T) {
	store := NewYAMLStore(writeCategoriesFile(t, "users: [not a map"))

	_, err := store.ListCategories(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing categories file")
}

func TestFindConfigFileAbsolutePath(t *testing.T) {
	path := writeCategoriesFile(t, sampleCategoriesYAML)
	store := NewYAMLStore(path)

	found, err := store.FindConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	_, err = store.FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
