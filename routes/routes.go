package routes

import (
	"MenuGacha/controllers"
	"MenuGacha/middleware"
	"MenuGacha/services/gacha"
	"MenuGacha/services/menu"
	utils "MenuGacha/utils"
	"time"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies groups what the handlers are built from
type Dependencies struct {
	Provider      controllers.CatalogProvider
	Service       *gacha.Service
	DefaultBudget int
	DrawLimiter   *middleware.ClientRateLimiter

	// Store is nil when the menu is read straight from a file, the admin
	// routes are not mounted then
	Store     *menu.Store
	MenuFile  menu.Source
	AdminHash string
	JWTSecret []byte
	TokenTTL  time.Duration
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	// utils global
	router.Use(utils.Logger(), utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/categories", controllers.GetCategories(deps.Provider))

	api.POST("/categories/:category/toggle", controllers.ToggleCategory(deps.Provider))

	api.POST("/categories/reset", controllers.ResetCategories(deps.Provider))

	api.GET("/menu", controllers.GetMenu(deps.Provider))

	api.GET("/gacha", controllers.GachaSettings(deps.Service, deps.DefaultBudget))

	api.POST("/gacha", deps.DrawLimiter.Middleware(), controllers.Draw(deps.Provider, deps.Service))

	if deps.Store == nil {
		return
	}

	api.POST("/admin/login", controllers.AdminLogin(deps.AdminHash, deps.JWTSecret, deps.TokenTTL))

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(deps.JWTSecret))
	{
		admin.POST("/menu", controllers.AddMenuItem(deps.Store, deps.Provider))

		admin.POST("/menu/import", controllers.ImportMenu(deps.Store, deps.MenuFile, deps.Provider))

		admin.GET("/menu/imports", controllers.ListImports(deps.Store))
	}
}
