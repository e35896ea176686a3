package controllers

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"closetbuddyapi/models"
)

type PreferencesController struct {
}

func (controller *PreferencesController) PreferencesRoutes(g *echo.Group) {
	g.GET("", controller.GetPreferences)
	g.PUT("", controller.UpsertPreferences)
}

func (controller *PreferencesController) GetPreferences(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var preferences models.UserPreferences
	r := db.Where("owner_id = ?", user.ID).Limit(1).Find(&preferences)
	if r.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch preferences"})
	}
	if r.RowsAffected == 0 {
		// empty defaults, no row is created until the user saves
		return c.JSON(http.StatusOK, models.UserPreferences{
			FavoriteColors:   []string{},
			StylePreferences: []string{},
			BrandPreferences: []string{},
		})
	}
	return c.JSON(http.StatusOK, preferences)
}

func (controller *PreferencesController) UpsertPreferences(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var req models.UserPreferencesIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var preferences models.UserPreferences
	r := db.Where("owner_id = ?", user.ID).Limit(1).Find(&preferences)
	if r.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch preferences"})
	}
	if r.RowsAffected == 0 {
		preferences = models.UserPreferences{OwnerID: user.ID}
	}

	preferences.FavoriteColors = req.FavoriteColors
	preferences.StylePreferences = req.StylePreferences
	preferences.BrandPreferences = req.BrandPreferences
	preferences.SizePreferences = req.SizePreferences
	preferences.BudgetMin = req.BudgetMin
	preferences.BudgetMax = req.BudgetMax

	if err := db.Save(&preferences).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save preferences"})
	}
	return c.JSON(http.StatusOK, preferences)
}
