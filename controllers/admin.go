package controllers

import (
	"MenuGacha/middleware"
	"MenuGacha/models"
	"MenuGacha/services/gacha"
	"MenuGacha/services/menu"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// @Summary Admin login
// @Description Checks the admin password and returns a bearer token for the /admin routes
// @Tags admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param password formData string true "Admin password"
// @Success 200 {object} object{token=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /admin/login [post]
func AdminLogin(passwordHash string, secret []byte, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		password := c.PostForm("password")

		if strings.TrimSpace(password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}
		if passwordHash == "" || len(secret) == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin access is disabled"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password!"})
			return
		}

		token, err := middleware.IssueAdminToken(secret, ttl)
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// @Summary Add a menu item
// @Description Inserts one item into the menu store, an item whose name already exists is skipped
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param item body models.MenuItemCreation true "Menu item"
// @Success 201 {object} object{outcome=string,item=postgres.MenuItem}
// @Success 200 {object} object{outcome=string,item=postgres.MenuItem}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /admin/menu [post]
func AddMenuItem(store *menu.Store, provider CatalogProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.MenuItemCreation
		if err := c.ShouldBind(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item"})
			return
		}

		outcome, row, err := store.Add(c.Request.Context(), item)
		if err != nil {
			c.Error(fmt.Errorf("[ADMIN] adding menu item: %w", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add menu item"})
			return
		}

		if outcome == menu.Skipped {
			c.JSON(http.StatusOK, gin.H{"outcome": outcome.String(), "item": row})
			return
		}

		invalidate(c, provider)
		c.JSON(http.StatusCreated, gin.H{"outcome": outcome.String(), "item": row})
	}
}

// @Summary Import the menu file
// @Description Loads the configured menu file and adds every item to the store, existing names are skipped
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} menu.ImportReport
// @Failure 401 {object} object{error=string}
// @Failure 422 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /admin/menu/import [post]
func ImportMenu(store *menu.Store, file menu.Source, provider CatalogProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := file.Records(c.Request.Context())
		if err != nil {
			log.WithError(err).Error("[IMPORT] reading menu file")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		report, err := store.Import(c.Request.Context(), file.Name(), records)
		if err != nil {
			var loadErr *gacha.DataLoadError
			if errors.As(err, &loadErr) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			c.Error(fmt.Errorf("[IMPORT] writing menu items: %w", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import menu"})
			return
		}

		if report.Inserted > 0 {
			invalidate(c, provider)
		}
		c.JSON(http.StatusOK, report)
	}
}

// @Summary List menu imports
// @Description Returns the import history, newest first
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} postgres.MenuImport
// @Failure 401 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /admin/menu/imports [get]
func ListImports(store *menu.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		imports, err := store.Imports(c.Request.Context())
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch imports"})
			return
		}
		c.JSON(http.StatusOK, imports)
	}
}

func invalidate(c *gin.Context, provider CatalogProvider) {
	if err := provider.Invalidate(c.Request.Context()); err != nil {
		log.WithError(err).Warn("[CATALOG] could not drop cached catalog")
	}
}
