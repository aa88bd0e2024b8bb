package controllers

import (
	gacha_constants "MenuGacha/constants/gacha"
	"MenuGacha/models"
	"MenuGacha/services/gacha"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Draw a menu
// @Description Picks a random combination of items from the active categories that fits the budget
// @Tags gacha
// @Accept json
// @Produce json
// @Param request body models.DrawRequest true "Budget in yen"
// @Success 200 {object} object{message=string,result=gacha.DrawResult}
// @Failure 400 {object} object{error=string}
// @Failure 429 {object} object{error=string}
// @Failure 503 {object} object{error=string}
// @Router /gacha [post]
func Draw(provider CatalogProvider, service *gacha.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.DrawRequest
		if err := c.ShouldBind(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid budget"})
			return
		}
		if *request.Budget > service.MaxBudget() {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Budget can't exceed %d", service.MaxBudget())})
			return
		}

		catalog, ok := loadCatalog(c, provider)
		if !ok {
			return
		}

		result := service.Draw(catalog, *request.Budget, activeCategories(c, catalog))
		c.JSON(http.StatusOK, gin.H{
			"message": result.Message(),
			"result":  result,
		})
	}
}

// @Summary Gacha settings
// @Description Returns the budget bounds the draw endpoint accepts
// @Tags gacha
// @Produce json
// @Success 200 {object} object{min_budget=int,max_budget=int,default_budget=int,step=int}
// @Router /gacha [get]
func GachaSettings(service *gacha.Service, defaultBudget int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"min_budget":     service.MinBudget(),
			"max_budget":     service.MaxBudget(),
			"default_budget": defaultBudget,
			"step":           gacha_constants.BUDGET_STEP,
		})
	}
}
