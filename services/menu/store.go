package menu

import (
	"MenuGacha/models"
	"MenuGacha/models/postgres"
	"MenuGacha/services/gacha"
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsertOutcome tells whether Add created a row or found the name taken
type InsertOutcome int

const (
	Inserted InsertOutcome = iota
	Skipped
)

func (o InsertOutcome) String() string {
	if o == Skipped {
		return "skipped"
	}
	return "inserted"
}

// ImportReport summarizes one bulk import
type ImportReport struct {
	Source       string   `json:"source"`
	Inserted     int      `json:"inserted"`
	SkippedNames []string `json:"skipped_names"`
}

// Store is the menu_items record store
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Name() string {
	return "db"
}

// Records returns every stored item as catalog records
func (s *Store) Records(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.GetAll(ctx)
	if err != nil {
		return nil, gacha.NewDataLoadError(s.Name(), err)
	}

	records := make([]models.MenuItem, len(rows))
	for i, row := range rows {
		records[i] = row.ToModel()
	}
	return records, nil
}

// GetAll returns every stored item ordered by id
func (s *Store) GetAll(ctx context.Context) ([]postgres.MenuItem, error) {
	var rows []postgres.MenuItem
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error fetching menu items: %w", err)
	}
	return rows, nil
}

// Add inserts item unless its name already exists. On Skipped the existing
// row is returned untouched.
func (s *Store) Add(ctx context.Context, item models.MenuItemCreation) (InsertOutcome, *postgres.MenuItem, error) {
	return addItem(s.db.WithContext(ctx), item)
}

func addItem(tx *gorm.DB, item models.MenuItemCreation) (InsertOutcome, *postgres.MenuItem, error) {
	row := postgres.MenuItem{
		Name:        item.Name,
		Price:       item.Price,
		Category:    item.Category,
		Description: item.Description,
	}

	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return Inserted, nil, fmt.Errorf("error inserting menu item %q: %w", item.Name, result.Error)
	}
	if result.RowsAffected > 0 {
		return Inserted, &row, nil
	}

	var existing postgres.MenuItem
	if err := tx.Where("name = ?", item.Name).First(&existing).Error; err != nil {
		return Skipped, nil, fmt.Errorf("error fetching existing menu item %q: %w", item.Name, err)
	}
	return Skipped, &existing, nil
}

// Import adds every record in one transaction and leaves a MenuImport trace.
// Records sharing a name are collapsed first, the last one wins.
func (s *Store) Import(ctx context.Context, source string, records []models.MenuItem) (*ImportReport, error) {
	catalog, err := gacha.NewCatalog(records, nil)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Source: source, SkippedNames: []string{}}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range catalog.Items() {
			outcome, _, err := addItem(tx, models.MenuItemCreation{
				Name:        record.Name,
				Price:       record.Price,
				Category:    record.Category,
				Description: record.Description,
			})
			if err != nil {
				return err
			}
			if outcome == Skipped {
				report.SkippedNames = append(report.SkippedNames, record.Name)
				continue
			}
			report.Inserted++
		}

		skipped, err := json.Marshal(report.SkippedNames)
		if err != nil {
			return fmt.Errorf("error marshaling skipped names: %w", err)
		}
		trace := postgres.MenuImport{
			Source:       source,
			Inserted:     report.Inserted,
			SkippedNames: datatypes.JSON(skipped),
		}
		if err := tx.Create(&trace).Error; err != nil {
			return fmt.Errorf("error saving import trace: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"source": source, "inserted": report.Inserted, "skipped": len(report.SkippedNames)}).
		Info("[IMPORT] menu import finished")
	return report, nil
}

// Imports lists the import traces, newest first
func (s *Store) Imports(ctx context.Context) ([]postgres.MenuImport, error) {
	var traces []postgres.MenuImport
	if err := s.db.WithContext(ctx).Order("id desc").Find(&traces).Error; err != nil {
		return nil, fmt.Errorf("error fetching menu imports: %w", err)
	}
	return traces, nil
}

// SeedIfEmpty imports src when the store has no items yet. It returns a nil
// report when the store was already populated.
func (s *Store) SeedIfEmpty(ctx context.Context, src Source) (*ImportReport, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&postgres.MenuItem{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("error counting menu items: %w", err)
	}
	if count > 0 {
		return nil, nil
	}

	records, err := src.Records(ctx)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, src.Name(), records)
}
