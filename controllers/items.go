package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"closetbuddyapi/engine"
	"closetbuddyapi/models"
	"closetbuddyapi/services"
)

type ItemResponse struct {
	ID               uint     `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Colors           []string `json:"colors"`
	Occasions        []string `json:"occasions"`
	Seasons          []string `json:"seasons"`
	MoodTags         []string `json:"mood_tags"`
	Subcategory      *string  `json:"subcategory"`
	Brand            *string  `json:"brand"`
	Size             *string  `json:"size"`
	Material         *string  `json:"material"`
	CareInstructions *string  `json:"care_instructions"`
	Notes            *string  `json:"notes"`
	WearCount        int      `json:"wear_count"`
	Favorite         bool     `json:"favorite"`
	LastWornAt       *string  `json:"last_worn_at"`
	Uri              *string  `json:"uri,omitempty"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

type ItemCreatedResponse struct {
	Item          ItemResponse `json:"item"`
	FileUploadUrl string       `json:"file_upload_url,omitempty"`
}

type ItemListResponse struct {
	Tops        []ItemResponse `json:"tops"`
	Bottoms     []ItemResponse `json:"bottoms"`
	Dresses     []ItemResponse `json:"dresses"`
	Outerwear   []ItemResponse `json:"outerwear"`
	Shoes       []ItemResponse `json:"shoes"`
	Accessories []ItemResponse `json:"accessories"`
}

type ItemController struct {
	AWSService services.AWSServiceProvider
	URLCache   services.URLCacheServiceProvider
}

func (controller *ItemController) ItemRoutes(g *echo.Group) {
	g.POST("/create", controller.CreateItem)
	g.GET("/list", controller.ListItems)
	g.GET("/:itemId", controller.GetItem)
	g.PUT("/:itemId", controller.UpdateItem)
	g.DELETE("/:itemId", controller.DeleteItem)
	g.POST("/:itemId/wear", controller.MarkWorn)
	g.POST("/:itemId/favorite", controller.ToggleFavorite)
	g.POST("/:itemId/image-from-url", controller.ImportImage)
}

func itemToResponse(item models.ClothingItem, uri *string) ItemResponse {
	var lastWorn *string
	if item.LastWornAt != nil {
		lastWorn = StrPointer(item.LastWornAt.Format("2006-01-02T15:04:05Z"))
	}
	return ItemResponse{
		ID:               item.ID,
		Name:             item.Name,
		Category:         string(item.Category),
		Colors:           item.Colors,
		Occasions:        item.Occasions,
		Seasons:          item.Seasons,
		MoodTags:         item.MoodTags,
		Subcategory:      item.Subcategory,
		Brand:            item.Brand,
		Size:             item.Size,
		Material:         item.Material,
		CareInstructions: item.CareInstructions,
		Notes:            item.Notes,
		WearCount:        item.WearCount,
		Favorite:         item.Favorite,
		LastWornAt:       lastWorn,
		Uri:              uri,
		CreatedAt:        item.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:        item.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (controller *ItemController) CreateItem(c echo.Context) error {
	var req models.ClothingItemIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	item := models.ClothingItem{
		Name:             req.Name,
		Category:         models.Category(req.Category),
		OwnerID:          user.ID,
		Colors:           req.Colors,
		Occasions:        req.Occasions,
		Seasons:          req.Seasons,
		MoodTags:         req.MoodTags,
		Subcategory:      req.Subcategory,
		Brand:            req.Brand,
		Size:             req.Size,
		Material:         req.Material,
		CareInstructions: req.CareInstructions,
		Notes:            req.Notes,
		ImageStatus:      "draft",
	}

	var uploadUrl string
	if req.WithImage {
		var bucketName = services.GetEnv("R2_BUCKET_NAME", "")
		objectKey := fmt.Sprintf("wardrobe/%v/%v", user.ID, time.Now().UnixNano())
		if req.ImageFileName != nil {
			if !services.IsAllowedImageName(*req.ImageFileName) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unsupported image format"})
			}
			objectKey += strings.ToLower(filepath.Ext(*req.ImageFileName))
		}
		url, presignErr := controller.AWSService.PresignLink(context.Background(), bucketName, objectKey)
		if presignErr != nil {
			log.Printf("Unable to presign upload for %s!, %s", item.Name, presignErr)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"message": "Error while creating item with attachment",
			})
		}
		item.ImageURL = &objectKey
		uploadUrl = url
	} else {
		item.ImageStatus = ""
	}

	if err := db.Create(&item).Error; err != nil {
		sentry.CaptureException(err)
		return err
	}

	return c.JSON(http.StatusCreated, ItemCreatedResponse{
		Item:          itemToResponse(item, nil),
		FileUploadUrl: uploadUrl,
	})
}

// populatePresignedItemImages enriches raw wardrobe items with presigned
// read URLs concurrently, with a direct R2 failsafe when the cache system
// itself fails.
func (controller *ItemController) populatePresignedItemImages(ctx context.Context, items []models.ClothingItem) []ItemResponse {
	if len(items) == 0 {
		return []ItemResponse{}
	}

	var wg sync.WaitGroup
	processedResponses := make([]ItemResponse, len(items))
	bucketName := services.GetEnv("R2_BUCKET_NAME", "")

	for i, wardrobeItem := range items {
		wg.Add(1)
		go func(index int, item models.ClothingItem) {
			defer wg.Done()

			var imageUrl string
			if item.ImageURL != nil && *item.ImageURL != "" {
				objectKey := *item.ImageURL

				url, err := controller.URLCache.GetReadURL(ctx, objectKey)
				if err == nil {
					imageUrl = url
				} else {
					log.Printf("CACHE WARNING: Cache system failed for key '%s': %v. Triggering manual R2 fallback.", objectKey, err)

					sentry.WithScope(func(scope *sentry.Scope) {
						scope.SetTag("failure_type", "cache_system")
						scope.SetExtra("objectKey", objectKey)
						sentry.CaptureException(err)
					})

					fallbackUrl, fallbackErr := controller.AWSService.GetPresignedR2FileReadURL(ctx, bucketName, objectKey)
					if fallbackErr != nil {
						log.Printf("CRITICAL: Manual R2 fallback also failed for key '%s': %v", objectKey, fallbackErr)
						sentry.CaptureException(fallbackErr)
						// imageUrl remains empty, but we don't fail the entire request.
					} else {
						imageUrl = fallbackUrl
					}
				}
			}
			var uri *string
			if imageUrl != "" {
				uri = &imageUrl
			}
			processedResponses[index] = itemToResponse(item, uri)
		}(i, wardrobeItem)
	}

	wg.Wait()
	return processedResponses
}

func (controller *ItemController) ListItems(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var items []models.ClothingItem
	if err := db.Where("owner_id = ?", user.ID).Order("id asc").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe items"})
	}

	processedResponses := controller.populatePresignedItemImages(c.Request().Context(), items)

	response := ItemListResponse{
		Tops:        []ItemResponse{},
		Bottoms:     []ItemResponse{},
		Dresses:     []ItemResponse{},
		Outerwear:   []ItemResponse{},
		Shoes:       []ItemResponse{},
		Accessories: []ItemResponse{},
	}

	for _, resp := range processedResponses {
		switch engine.Bucket(models.Category(resp.Category)) {
		case "tops":
			response.Tops = append(response.Tops, resp)
		case "bottoms":
			response.Bottoms = append(response.Bottoms, resp)
		case "dresses":
			response.Dresses = append(response.Dresses, resp)
		case "outerwear":
			response.Outerwear = append(response.Outerwear, resp)
		case "shoes":
			response.Shoes = append(response.Shoes, resp)
		default:
			response.Accessories = append(response.Accessories, resp)
		}
	}

	return c.JSON(http.StatusOK, response)
}

func (controller *ItemController) fetchOwnedItem(c echo.Context) (*models.ClothingItem, *gorm.DB, error) {
	var itemId uint
	if err := echo.PathParamsBinder(c).Uint("itemId", &itemId).BindError(); err != nil {
		return nil, nil, c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid item id"})
	}
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return nil, nil, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return nil, nil, c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var item models.ClothingItem
	r := db.Where("id = ? AND owner_id = ?", itemId, user.ID).Limit(1).Find(&item)
	if r.Error != nil {
		return nil, nil, c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch item"})
	}
	if r.RowsAffected == 0 {
		return nil, nil, c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
	}
	return &item, db, nil
}

func (controller *ItemController) GetItem(c echo.Context) error {
	item, _, err := controller.fetchOwnedItem(c)
	if item == nil {
		return err
	}

	var uri *string
	if item.ImageURL != nil && *item.ImageURL != "" {
		url, cacheErr := controller.URLCache.GetReadURL(c.Request().Context(), *item.ImageURL)
		if cacheErr == nil && url != "" {
			uri = &url
		}
	}
	return c.JSON(http.StatusOK, itemToResponse(*item, uri))
}

func (controller *ItemController) UpdateItem(c echo.Context) error {
	item, db, err := controller.fetchOwnedItem(c)
	if item == nil {
		return err
	}

	var req models.ClothingItemUpdateIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = models.Category(*req.Category)
	}
	if req.Colors != nil {
		item.Colors = *req.Colors
	}
	if req.Occasions != nil {
		item.Occasions = *req.Occasions
	}
	if req.Seasons != nil {
		item.Seasons = *req.Seasons
	}
	if req.MoodTags != nil {
		item.MoodTags = *req.MoodTags
	}
	if req.Subcategory != nil {
		item.Subcategory = req.Subcategory
	}
	if req.Brand != nil {
		item.Brand = req.Brand
	}
	if req.Size != nil {
		item.Size = req.Size
	}
	if req.Material != nil {
		item.Material = req.Material
	}
	if req.CareInstructions != nil {
		item.CareInstructions = req.CareInstructions
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}
	if req.Favorite != nil {
		item.Favorite = *req.Favorite
	}

	if err := db.Save(item).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update item"})
	}
	return c.JSON(http.StatusOK, itemToResponse(*item, nil))
}

func (controller *ItemController) DeleteItem(c echo.Context) error {
	item, db, err := controller.fetchOwnedItem(c)
	if item == nil {
		return err
	}

	if err := db.Delete(item).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete item"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Item deleted"})
}

func (controller *ItemController) MarkWorn(c echo.Context) error {
	item, db, err := controller.fetchOwnedItem(c)
	if item == nil {
		return err
	}

	now := time.Now().UTC()
	item.WearCount++
	item.LastWornAt = &now
	if err := db.Save(item).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update item"})
	}
	return c.JSON(http.StatusOK, itemToResponse(*item, nil))
}

// ImportImage pulls an image from an external URL and stores it behind the
// item, replacing whatever key was there before.
func (controller *ItemController) ImportImage(c echo.Context) error {
	item, db, err := controller.fetchOwnedItem(c)
	if item == nil {
		return err
	}

	var req models.ItemImageImportIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	content, err := services.ReadFileFromUrl(req.Url)
	if err != nil {
		log.Printf("Unable to download image for item %v: %s", item.ID, err)
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "Could not download image"})
	}

	ctx := c.Request().Context()
	bucketName := services.GetEnv("R2_BUCKET_NAME", "")
	objectKey := fmt.Sprintf("wardrobe/%v/%v", item.OwnerID, time.Now().UnixNano())
	uploadUrl, err := controller.AWSService.PresignLink(ctx, bucketName, objectKey)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to store image"})
	}
	_, status, err := controller.AWSService.UploadToPresignedURL(ctx, bucketName, uploadUrl, content)
	if err != nil || status > 299 {
		sentry.CaptureException(fmt.Errorf("image upload for item %v failed with status %d: %v", item.ID, status, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to store image"})
	}

	item.ImageURL = &objectKey
	item.ImageStatus = "uploaded"
	if err := db.Save(item).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update item"})
	}
	return c.JSON(http.StatusOK, itemToResponse(*item, nil))
}

func (controller *ItemController) ToggleFavorite(c echo.Context) error {
	item, db, err := controller.fetchOwnedItem(c)
	if item == nil {
		return err
	}

	item.Favorite = !item.Favorite
	if err := db.Save(item).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update item"})
	}
	return c.JSON(http.StatusOK, itemToResponse(*item, nil))
}
