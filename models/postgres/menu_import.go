package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'MenuImport' keeps a trace of every bulk import into menu_items:
 * how many rows were inserted and which names were skipped as duplicates.
 */
type MenuImport struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Source       string         `gorm:"size:255;not null" json:"source"`
	Inserted     int            `gorm:"default:0" json:"inserted"`
	SkippedNames datatypes.JSON `gorm:"default:'[]'" json:"skipped_names"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}
