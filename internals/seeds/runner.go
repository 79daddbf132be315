package seeds

import (
	"path/filepath"

	"gorm.io/gorm"

	"trainingcenter_backend/internals/seeds/catalog"
	"trainingcenter_backend/internals/seeds/users"
)

// RunAllSeeds loads the JSON fixtures found in dir.
func RunAllSeeds(db *gorm.DB, dir string) error {
	if err := catalog.SeedCatalogFromJSON(db, filepath.Join(dir, "catalog", "data_catalog.json")); err != nil {
		return err
	}
	return users.SeedUsersFromJSON(db, filepath.Join(dir, "users", "data_users.json"))
}
