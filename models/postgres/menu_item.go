package postgres

import (
	"MenuGacha/models"
	"time"
)

/*
 * 'MenuItem' is the persisted form of a catalog entry. The name is unique,
 * inserting an existing name is skipped by the store.
 */
type MenuItem struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Price       int       `gorm:"not null" json:"price"`
	Category    string    `gorm:"size:100;not null;index" json:"category"`
	Description string    `gorm:"size:1000" json:"description"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// ToModel converts the row to the domain value used by the selector
func (m MenuItem) ToModel() models.MenuItem {
	return models.MenuItem{
		ID:          int(m.ID),
		Name:        m.Name,
		Price:       m.Price,
		Category:    m.Category,
		Description: m.Description,
	}
}
