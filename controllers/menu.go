package controllers

import (
	"MenuGacha/services/gacha"
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Menu table
// @Description Returns the menu items of the categories active for this session
// @Tags menu
// @Produce json
// @Success 200 {object} object{active=[]string,items=[]models.MenuItem}
// @Failure 503 {object} object{error=string}
// @Router /menu [get]
func GetMenu(provider CatalogProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog, ok := loadCatalog(c, provider)
		if !ok {
			return
		}

		active := activeCategories(c, catalog)
		c.JSON(http.StatusOK, gin.H{
			"active": active.Sorted(provider.CategoryOrder()),
			"items":  gacha.Filter(catalog.Items(), active),
		})
	}
}
