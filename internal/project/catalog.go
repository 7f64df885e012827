package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/roomfit/roomfit/internal/model"
)

// DefaultCatalogPath returns the default file path for the furniture
// catalog, located at ~/.roomfit/catalog.json.
func DefaultCatalogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".roomfit", "catalog.json"), nil
}

// SaveCatalog writes the catalog to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveCatalog(path string, cat model.Catalog) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCatalog reads the catalog from the specified JSON file.
// If the file does not exist, it returns the default catalog and saves it.
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cat := model.DefaultCatalog()
			if saveErr := SaveCatalog(path, cat); saveErr != nil {
				return cat, saveErr
			}
			return cat, nil
		}
		return model.Catalog{}, err
	}
	var cat model.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return model.Catalog{}, err
	}
	return cat, nil
}

// LoadOrCreateCatalog loads the catalog from the default path, creating it
// with default entries when absent.
func LoadOrCreateCatalog() (model.Catalog, string, error) {
	path, err := DefaultCatalogPath()
	if err != nil {
		return model.DefaultCatalog(), "", err
	}
	cat, err := LoadCatalog(path)
	return cat, path, err
}

// MergeCatalog merges imported entries into an existing catalog.
// Entries whose ID already exists are skipped.
func MergeCatalog(existing model.Catalog, imported []model.FurnitureSpec) model.Catalog {
	ids := make(map[string]bool, len(existing.Entries))
	for _, e := range existing.Entries {
		ids[e.ID] = true
	}
	for _, e := range imported {
		if !ids[e.ID] {
			existing.Entries = append(existing.Entries, e)
			ids[e.ID] = true
		}
	}
	return existing
}
