package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"closetbuddyapi/models"
)

type ProfileController struct {
}

func (controller *ProfileController) ProfileRoutes(g *echo.Group) {
	g.GET("/me", controller.Me)
	g.POST("/push", controller.RegisterPushToken)
	g.PUT("/settings", controller.UpdateSettings)
	g.DELETE("/delete", controller.DeleteAccount)
}

func (controller *ProfileController) Me(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var wardrobeSize int64
	if err := db.Model(&models.ClothingItem{}).Where("owner_id = ?", user.ID).Count(&wardrobeSize).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Something happened",
		})
	}

	return c.JSON(http.StatusOK, models.UserMeInfoOut{
		Id:                   UIntToStr(user.ID),
		Name:                 user.Name,
		Email:                user.Email,
		AvatarURL:            user.AvatarURL,
		ReceiveNotifications: user.ReceiveNotifications,
		TelegramUsername:     user.TelegramUsername,
		WardrobeSize:         wardrobeSize,
	})
}

func (controller *ProfileController) RegisterPushToken(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	req := new(models.UserPushIn)
	if err := c.Bind(req); err != nil {
		return err
	}
	if req.Token == "" || !models.ValidatePlatformRaw(req.Platform) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please provide token and platform"})
	}

	var existing models.UserPushToken
	r := db.Where("user_account_id = ? AND token = ?", user.ID, req.Token).Limit(1).Find(&existing)
	if r.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save push token"})
	}
	if r.RowsAffected > 0 {
		existing.Active = true
		existing.Platform = models.ScanPlatform(req.Platform)
		db.Save(&existing)
		return c.JSON(http.StatusOK, map[string]string{"message": "Push token refreshed"})
	}

	pushToken := models.UserPushToken{
		UserAccountID: user.ID,
		Platform:      models.ScanPlatform(req.Platform),
		Token:         req.Token,
		Active:        true,
	}
	if err := db.Create(&pushToken).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save push token"})
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Push token registered"})
}

func (controller *ProfileController) UpdateSettings(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	req := new(models.UserSettingsIn)
	if err := c.Bind(req); err != nil {
		return err
	}

	user.ReceiveNotifications = req.ReceiveNotifications
	if req.TelegramUsername != nil {
		user.TelegramUsername = req.TelegramUsername
	}
	if err := db.Save(&user).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update settings"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"receive_notifications": user.ReceiveNotifications,
		"telegram_username":     user.TelegramUsername,
	})
}

// DeleteAccount marks the account for deletion, actual cleanup runs later
// so accidental taps can be undone by support.
func (controller *ProfileController) DeleteAccount(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	now := time.Now().UTC()
	user.ConfirmedDeleteDate = &now
	if err := db.Save(&user).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to schedule account deletion"})
	}
	fmt.Printf("User %v scheduled for deletion at %v\n", user.ID, now)
	return c.JSON(http.StatusOK, map[string]string{"message": "Your account is scheduled for deletion"})
}
