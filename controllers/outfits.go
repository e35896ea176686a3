package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"closetbuddyapi/engine"
	"closetbuddyapi/models"
	"closetbuddyapi/services"
	"closetbuddyapi/tasks"
)

type OutfitController struct {
	Outfits  *services.OutfitService
	URLCache services.URLCacheServiceProvider
}

func (controller *OutfitController) OutfitRoutes(g *echo.Group) {
	g.POST("/suggest", controller.Suggest)
	g.GET("/quick", controller.QuickSuggest)
	g.GET("/style-profile", controller.GetStyleProfile)
	g.GET("/insights", controller.GetInsights)
	g.POST("/analyze", controller.RequestStyleAnalysis)
	g.POST("/favorites", controller.SaveFavorite)
	g.GET("/favorites", controller.ListFavorites)
}

func wardrobeError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrEmptyWardrobe) || errors.Is(err, services.ErrNotEnoughItems) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"message": err.Error()})
	}
	sentry.CaptureException(err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to generate suggestions, please try again"})
}

func (controller *OutfitController) Suggest(c echo.Context) error {
	var req models.SuggestionFiltersIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	filters := engine.Filters{
		PreferredColors: req.PreferredColors,
		ExcludeItems:    req.ExcludeItemIDs,
		MaxItems:        req.MaxSuggestions,
		UseAI:           req.UseAI,
	}
	if req.Occasion != nil {
		filters.Occasion = *req.Occasion
	}
	if req.Season != nil {
		filters.Season = *req.Season
	}
	if req.Mood != nil {
		filters.Mood = *req.Mood
	}

	suggestions, err := controller.Outfits.GenerateSuggestions(c.Request().Context(), db, user.ID, filters)
	if err != nil {
		return wardrobeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

func (controller *OutfitController) QuickSuggest(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	suggestions, err := controller.Outfits.QuickSuggestions(c.Request().Context(), db, user.ID)
	if err != nil {
		return wardrobeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
		"season":      services.CurrentSeason(),
	})
}

// GetStyleProfile returns the latest stored snapshot if the analysis task
// produced one, otherwise computes the profile on the fly.
func (controller *OutfitController) GetStyleProfile(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var snapshot models.StyleProfileSnapshot
	r := db.Where("owner_id = ?", user.ID).Order("id desc").Limit(1).Find(&snapshot)
	if r.Error == nil && r.RowsAffected > 0 {
		return c.JSON(http.StatusOK, snapshot)
	}

	profile, err := controller.Outfits.StyleProfile(c.Request().Context(), db, user.ID)
	if err != nil {
		return wardrobeError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (controller *OutfitController) GetInsights(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	insights, err := controller.Outfits.GetStyleInsights(c.Request().Context(), db, user.ID)
	if err != nil {
		return wardrobeError(c, err)
	}
	return c.JSON(http.StatusOK, insights)
}

func (controller *OutfitController) RequestStyleAnalysis(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	asynqClient, ok := c.Get("__asynqclient").(*asynq.Client)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Service is not available, please try again a bit later"})
	}

	task, err := tasks.NewStyleAnalysisTask(user.ID)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not start analysis, please try again"})
	}
	info, err := asynqClient.Enqueue(task, asynq.MaxRetry(3), asynq.Queue("analyze"))
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not start analysis, please try again"})
	}
	fmt.Println("[Queue] Style analysis task submitted, User ID: ", user.ID, " Task ID: ", info.ID)

	return c.JSON(http.StatusAccepted, map[string]string{"message": "Style analysis started, we will notify you when it is ready"})
}

func (controller *OutfitController) SaveFavorite(c echo.Context) error {
	var req models.FavoriteOutfitIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	// only own items may be snapshotted
	var owned int64
	if err := db.Model(&models.ClothingItem{}).Where("owner_id = ? AND id IN ?", user.ID, req.ItemIDs).Count(&owned).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save outfit"})
	}
	if owned != int64(len(req.ItemIDs)) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Some items do not belong to your wardrobe"})
	}

	itemIds := make([]string, 0, len(req.ItemIDs))
	for _, id := range req.ItemIDs {
		itemIds = append(itemIds, UIntToStr(id))
	}
	favorite := models.FavoriteOutfit{
		OwnerID:   user.ID,
		Name:      req.Name,
		ItemIDs:   itemIds,
		Occasion:  req.Occasion,
		Score:     req.Score,
		Reasoning: req.Reasoning,
	}
	if err := db.Create(&favorite).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save outfit"})
	}
	return c.JSON(http.StatusCreated, favorite)
}

func (controller *OutfitController) ListFavorites(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var favorites []models.FavoriteOutfit
	if err := db.Where("owner_id = ?", user.ID).Order("id desc").Find(&favorites).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch favorite outfits"})
	}
	if favorites == nil {
		favorites = []models.FavoriteOutfit{}
	}
	return c.JSON(http.StatusOK, favorites)
}
