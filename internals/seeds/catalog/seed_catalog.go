package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	courseModel "trainingcenter_backend/internals/features/catalog/courses/model"
	institutionModel "trainingcenter_backend/internals/features/catalog/institutions/model"
	helper "trainingcenter_backend/internals/helpers"
)

type CatalogSeed struct {
	Institutions []struct {
		Name    string  `json:"institution_name"`
		Address *string `json:"institution_address"`
		Phone   *string `json:"institution_phone"`
	} `json:"institutions"`
	Courses []struct {
		Name          string          `json:"course_name"`
		Price         decimal.Decimal `json:"course_price"`
		DurationLabel *string         `json:"course_duration_label"`
	} `json:"courses"`
}

// SeedCatalogFromJSON inserts institutions and courses that do not exist by name yet.
func SeedCatalogFromJSON(db *gorm.DB, filePath string) error {
	log.Println("[SEED] reading catalog:", filePath)
	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var in CatalogSeed
	if err := json.Unmarshal(file, &in); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	for _, s := range in.Institutions {
		m := institutionModel.Institution{
			InstitutionName:    s.Name,
			InstitutionAddress: s.Address,
			InstitutionPhone:   s.Phone,
		}
		res := db.Where("institution_name = ? AND institution_deleted_at IS NULL", s.Name).FirstOrCreate(&m)
		if res.Error != nil {
			log.Printf("[SEED] institution %q failed: %v", s.Name, res.Error)
		} else if res.RowsAffected > 0 {
			log.Printf("[SEED] institution %q inserted", s.Name)
		}
	}

	for _, s := range in.Courses {
		m := courseModel.Course{
			CourseName:          s.Name,
			CourseSlug:          helper.Slugify(s.Name, 150),
			CoursePrice:         s.Price.Round(2),
			CourseDurationLabel: s.DurationLabel,
		}
		res := db.Where("course_slug = ?", m.CourseSlug).FirstOrCreate(&m)
		if res.Error != nil {
			log.Printf("[SEED] course %q failed: %v", s.Name, res.Error)
		} else if res.RowsAffected > 0 {
			log.Printf("[SEED] course %q inserted", s.Name)
		}
	}
	return nil
}
