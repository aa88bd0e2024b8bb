package redis

import "MenuGacha/models"

// CatalogSnapshot is the cached form of a loaded catalog
type CatalogSnapshot struct {
	Items      []models.MenuItem `json:"items"`
	Categories []string          `json:"categories"`
	LoadedAt   int64             `json:"loaded_at"` // Unix nanoseconds, doubles as version
}
