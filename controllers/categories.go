package controllers

import (
	"MenuGacha/services/gacha"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// @Summary List menu categories
// @Description Returns every category of the catalog in display order and the ones active for this session
// @Tags categories
// @Produce json
// @Success 200 {object} object{categories=[]string,active=[]string}
// @Failure 503 {object} object{error=string}
// @Router /categories [get]
func GetCategories(provider CatalogProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog, ok := loadCatalog(c, provider)
		if !ok {
			return
		}

		active := activeCategories(c, catalog)
		c.JSON(http.StatusOK, gin.H{
			"categories": catalog.Categories(),
			"active":     active.Sorted(provider.CategoryOrder()),
		})
	}
}

// @Summary Toggle a category
// @Description Switches one category on or off for the current session
// @Tags categories
// @Produce json
// @Param category path string true "Category name"
// @Success 200 {object} object{category=string,enabled=bool,active=[]string}
// @Failure 404 {object} object{error=string}
// @Failure 503 {object} object{error=string}
// @Router /categories/{category}/toggle [post]
func ToggleCategory(provider CatalogProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog, ok := loadCatalog(c, provider)
		if !ok {
			return
		}

		category := c.Param("category")
		if !catalog.HasCategory(category) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown category"})
			return
		}

		active := gacha.Toggle(activeCategories(c, catalog), category)
		if err := saveActiveCategories(c, active, provider.CategoryOrder()); err != nil {
			c.Error(fmt.Errorf("[SESSION] saving categories: %w", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"category": category,
			"enabled":  active.Contains(category),
			"active":   active.Sorted(provider.CategoryOrder()),
		})
	}
}

// @Summary Reset categories
// @Description Turns every category back on for the current session
// @Tags categories
// @Produce json
// @Success 200 {object} object{active=[]string}
// @Failure 503 {object} object{error=string}
// @Router /categories/reset [post]
func ResetCategories(provider CatalogProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog, ok := loadCatalog(c, provider)
		if !ok {
			return
		}

		active := gacha.NewCategorySet(catalog.Categories()...)
		if err := saveActiveCategories(c, active, provider.CategoryOrder()); err != nil {
			c.Error(fmt.Errorf("[SESSION] saving categories: %w", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"active": active.Sorted(provider.CategoryOrder())})
	}
}

// loadCatalog writes the error response itself when the catalog is unavailable
func loadCatalog(c *gin.Context, provider CatalogProvider) (*gacha.Catalog, bool) {
	catalog, err := provider.Catalog(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("[CATALOG] menu data unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Menu data unavailable"})
		return nil, false
	}
	return catalog, true
}
