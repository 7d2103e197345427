package categories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tmerle/ledgerstage/internal/logging"
	"tmerle/ledgerstage/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// YAMLStore is a file-backed Directory. The file maps user ids to ordered
// category lists:
//
//	users:
//	  alice:
//	    - id: cat-groceries
//	      name: Groceries
//	    - id: cat-rent
//	      name: Rent
type YAMLStore struct {
	CategoriesFile string
}

type categoriesFile struct {
	Users map[string][]models.Category `yaml:"users"`
}

// NewYAMLStore creates a Directory reading from the given YAML file.
func NewYAMLStore(categoriesFile string) *YAMLStore {
	return &YAMLStore{CategoriesFile: categoriesFile}
}

// FindConfigFile looks for the categories file in standard locations.
func (s *YAMLStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,                            // Current directory
		filepath.Join("config", filename),   // ./config/ directory
		filepath.Join("database", filename), // ./database/ directory
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// Last resort: user's home directory under .config/ledgerstage/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "ledgerstage", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// ListCategories returns the user's categories from the YAML file. A
// missing file yields an empty list, not an error, matching how a user
// with no categories looks.
func (s *YAMLStore) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("Categories file not found", logging.Field{Key: logging.FieldFile, Value: filename})
			return nil, nil
		}
		return nil, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var parsed categoriesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}

	cats := parsed.Users[userID]
	log.Debug("Loaded categories",
		logging.Field{Key: logging.FieldUser, Value: userID},
		logging.Field{Key: logging.FieldCount, Value: len(cats)})
	return cats, nil
}
