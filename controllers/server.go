package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	firebase "firebase.google.com/go/v4"
	"github.com/go-playground/validator"
	"github.com/hibiken/asynq"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"closetbuddyapi/models"
	"closetbuddyapi/services"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		// Optionally, you could return the error to give each route more control over the status code
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func SetupServer(
	db *gorm.DB,
	googleService services.GoogleServiceProvider,
	awsService services.AWSServiceProvider,
	firebaseApp *firebase.App,
	asynqClient *asynq.Client,
	asynqInspector *asynq.Inspector,
	urlCache services.URLCacheServiceProvider,
	outfitService *services.OutfitService,
) *echo.Echo {

	fmt.Println(firebaseApp, "Firebase app")
	err := awsService.InitPresignClient(context.Background())
	if err != nil {
		log.Fatal("Failed to initialize AWS provider: S3")
	}

	e := echo.New()
	v := validator.New()
	v.RegisterValidation("platform", models.ValidatePlatform)
	v.RegisterValidation("category", models.ValidateCategory)
	v.RegisterValidation("occasion", models.ValidateOccasion)
	v.RegisterValidation("season", models.ValidateSeason)
	v.RegisterValidation("mood", models.ValidateMood)
	e.Validator = &CustomValidator{validator: v}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("__db", db)
			c.Set("__asynqclient", asynqClient)
			c.Set("__asynqinspector", asynqInspector)
			return next(c)
		}
	})

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	authGroup := e.Group("auth")

	controller := AuthController{Google: googleService, FirebaseApp: firebaseApp}
	controller.AuthRoutes(authGroup)

	closetGroup := e.Group("closet", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))))
	closetGroup.Use(UserMiddleware)

	itemController := ItemController{AWSService: awsService, URLCache: urlCache}
	itemGroup := closetGroup.Group("/items")
	itemController.ItemRoutes(itemGroup)

	preferencesController := PreferencesController{}
	preferencesGroup := closetGroup.Group("/preferences")
	preferencesController.PreferencesRoutes(preferencesGroup)

	outfitController := OutfitController{Outfits: outfitService, URLCache: urlCache}
	outfitGroup := closetGroup.Group("/outfits")
	outfitController.OutfitRoutes(outfitGroup)

	profileController := ProfileController{}
	profileGroup := closetGroup.Group("/profile")
	profileController.ProfileRoutes(profileGroup)

	return e
}
