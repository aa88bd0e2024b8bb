package menu

import (
	"MenuGacha/models"
	"context"
)

// Source yields the raw menu records a catalog is built from
type Source interface {
	Name() string
	Records(ctx context.Context) ([]models.MenuItem, error)
}
