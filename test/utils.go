package test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"closetbuddyapi/engine"
	"closetbuddyapi/models"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {

	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateUserToken(userPk string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userPk,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatalf("Error when signing user token for %s. Error %s ", userPk, err)
	}
	return t
}

func NewJSONAuthRequest(method string, target string, userPk string, param interface{}) *http.Request {
	log.Println(JsonString(param))
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func NewJSONAuthRequestRaw(method string, target string, userPk string, json string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(json))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func FakeUser(db *gorm.DB) *models.UserAccount {
	user := &models.UserAccount{
		Name:                 "OurName",
		Email:                "email@example.com",
		GoogleID:             "12232",
		Platform:             models.PlatformIOS,
		LastIp:               "123.122.122.122",
		Status:               "FINISHED_AUTH",
		AvatarURL:            "pictureurl",
		ReceiveNotifications: true,
	}
	db.Create(&user)

	tokenDb := models.UserPushToken{
		UserAccountID: user.ID,
		Platform:      "android",
		Token:         "cX-UZ3zwQEiPt-2GJkG2gA:APA91bGqRflaGrJrnynhRwZ442HdgUjVcO7mWMFnx6IwAdJ9RRKopvSP4QU7hbvTmk1XAp8XGvtHZLvo5JmOPTVKBbGqqvhfbZWKlXA9csEjx1hgpNvrWepU-rqG1sxS8_WCF5cGZchf",
		Active:        true,
	}
	db.Save(&tokenDb)
	return user
}

func FakeUserV2(db *gorm.DB, userName string, email string) *models.UserAccount {
	if email == "" {
		email = "email@example.com"
	}
	user := &models.UserAccount{
		Name:      userName,
		Email:     email,
		GoogleID:  "12232",
		Platform:  models.PlatformIOS,
		LastIp:    "123.122.122.122",
		Status:    "FINISHED_AUTH",
		AvatarURL: "pictureurl",
	}
	db.Create(&user)
	return user
}

// FakeWardrobeItem seeds a clothing item with sensible defaults, overrides
// go through the returned pointer before tests query endpoints. Seasons
// stay untagged, untagged items survive every season filter.
func FakeWardrobeItem(db *gorm.DB, ownerID uint, name string, category models.Category, colors []string) *models.ClothingItem {
	item := &models.ClothingItem{
		Name:      name,
		Category:  category,
		OwnerID:   ownerID,
		Colors:    colors,
		Occasions: []string{"casual"},
		MoodTags:  []string{"comfortable"},
	}
	db.Create(&item)
	return item
}

func Contains(items []string, lookFor string) bool {

	for i := 0; i < len(items); i++ {

		if items[i] == lookFor {
			return true
		}
	}
	return false
}

func NewRefString(data string) *string {
	return &data
}

func InternalRequestJSON(e *echo.Echo, method string, url string, param interface{}) []byte {
	req := NewJSONRequest(method, url, param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)
	if rec.Code > 300 {

		log.Println(rec.Body.String())
	}
	return rec.Body.Bytes()
}

type GoogleServiceMock struct{}

func (gsm GoogleServiceMock) ValidateIdToken(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error) {

	return &idtoken.Payload{Issuer: "Issue", Audience: "AAA", Expires: 119919191919, IssuedAt: 12312321321, Subject: "fake@example.com", Claims: map[string]interface{}{
		"email":   "fake@example.com",
		"picture": "pictureurl",
		"sub":     "123googleid",
	}}, nil

}

type AWSProviderMock struct {
	MockUrl string
}

func (awsService AWSProviderMock) InitPresignClient(ctx context.Context) error {
	return nil
}

func (awsService AWSProviderMock) PresignLink(ctx context.Context, bucketName string, fileName string) (string, error) {

	return fmt.Sprintf("https://fakebucketurl.com/%s", fileName), nil
}

func (awsService AWSProviderMock) GetPresignedR2FileReadURL(ctx context.Context, bucketName, fileKey string) (string, error) {
	return awsService.MockUrl, nil
}

func (awsService AWSProviderMock) UploadToPresignedURL(ctx context.Context, bucketName, url string, fileContent []byte) (string, int, error) {
	return url, 204, nil
}

// URLCacheMock hands out deterministic read URLs without touching R2.
type URLCacheMock struct{}

func (m URLCacheMock) GetReadURL(ctx context.Context, objectKey string) (string, error) {
	if objectKey == "" {
		return "", nil
	}
	return fmt.Sprintf("https://fakecdn.com/%s", objectKey), nil
}

type StylistMock struct{}

func (m StylistMock) AnalyzeStyle(ctx context.Context, input engine.StyleAnalysisInput) (*engine.StyleAnalysis, error) {
	return &engine.StyleAnalysis{
		StylePersonality: "classic",
		DominantThemes:   []string{"classic", "professional"},
		ColorPalette:     []string{"navy", "white", "gray"},
		Recommendations:  []string{"Invest in timeless pieces"},
		Confidence:       0.85,
	}, nil
}

func (m StylistMock) DescribeOutfit(ctx context.Context, input engine.OutfitDescriptionInput) (*engine.OutfitDescription, error) {
	return &engine.OutfitDescription{
		Description: "A clean, put-together look.",
		StyleNotes:  []string{"Balanced proportions with coordinated colors."},
		OccasionFit: "Works well for casual outings",
		Confidence:  0.9,
	}, nil
}

// FailingStylistMock forces the engine down its fallback path.
type FailingStylistMock struct{}

func (m FailingStylistMock) AnalyzeStyle(ctx context.Context, input engine.StyleAnalysisInput) (*engine.StyleAnalysis, error) {
	return nil, fmt.Errorf("stylist unavailable")
}

func (m FailingStylistMock) DescribeOutfit(ctx context.Context, input engine.OutfitDescriptionInput) (*engine.OutfitDescription, error) {
	return nil, fmt.Errorf("stylist unavailable")
}
