package controllers

import (
	gacha_constants "MenuGacha/constants/gacha"
	"MenuGacha/services/gacha"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// CatalogProvider hands out the loaded catalog
type CatalogProvider interface {
	Catalog(ctx context.Context) (*gacha.Catalog, error)
	CategoryOrder() []string
	Invalidate(ctx context.Context) error
}

// activeCategories reads the session selection. A visitor without one starts
// with every category of the catalog active.
func activeCategories(c *gin.Context, catalog *gacha.Catalog) gacha.CategorySet {
	session := sessions.Default(c)
	raw, ok := session.Get(gacha_constants.ACTIVE_CATEGORIES_KEY).(string)
	if !ok {
		return gacha.NewCategorySet(catalog.Categories()...)
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return gacha.NewCategorySet(catalog.Categories()...)
	}
	return gacha.NewCategorySet(list...)
}

func saveActiveCategories(c *gin.Context, active gacha.CategorySet, order []string) error {
	raw, err := json.Marshal(active.Sorted(order))
	if err != nil {
		return fmt.Errorf("error encoding categories: %w", err)
	}

	session := sessions.Default(c)
	session.Set(gacha_constants.ACTIVE_CATEGORIES_KEY, string(raw))
	return session.Save()
}
