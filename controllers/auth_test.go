package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"closetbuddyapi/dbhelper"
	"closetbuddyapi/models"
	"closetbuddyapi/services"
	"closetbuddyapi/test"
)

func TestAuthGoogleNewUser(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})

	param := models.GoogleAuthSignIn{
		IdToken:  "fake-id-token",
		Platform: "ios",
	}
	req := test.NewJSONRequest("POST", "/auth/google", param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)

	assert.Equal(t, "fake@example.com", resp["email"], resp)
	assert.Equal(t, true, resp["new"], resp)
	assert.Equal(t, "pictureurl", resp["avatar"], resp)
	assert.NotEmpty(t, resp["access_token"], resp)
	assert.NotEmpty(t, resp["refresh_token"], resp)

	var user models.UserAccount
	db.First(&user, "email = ?", "fake@example.com")

	assert.Equal(t, "fake@example.com", user.Email)
	assert.Equal(t, "FINISHED_AUTH", user.Status)
	assert.Equal(t, models.PlatformIOS, user.Platform)
	assert.Equal(t, "123googleid", user.GoogleID)
}

func TestAuthGoogleExistingUser(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})

	existing := models.UserAccount{
		Name:     "Existing",
		Email:    "fake@example.com",
		GoogleID: "123googleid",
		Platform: models.PlatformAndroid,
		Status:   "FINISHED_AUTH",
	}
	db.Create(&existing)

	param := models.GoogleAuthSignIn{
		IdToken:  "fake-id-token",
		Platform: "ios",
	}
	req := test.NewJSONRequest("POST", "/auth/google", param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, false, resp["new"], resp)

	var count int64
	db.Model(&models.UserAccount{}).Where("email = ?", "fake@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAuthGoogleBadPlatform(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})

	param := models.GoogleAuthSignIn{
		IdToken:  "fake-id-token",
		Platform: "blackberry",
	}
	req := test.NewJSONRequest("POST", "/auth/google", param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
}

func TestRefreshToken(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})

	userDb := test.FakeUserV2(db, "name", "refresh@closetbuddyapp.com")
	refreshToken, err := GenerateRefreshToken(fmt.Sprint(userDb.ID))
	if err != nil {
		fmt.Println("Error generating refesh", err)
	}
	param := echo.Map{
		"refresh_token": refreshToken,
	}
	req := test.NewJSONRequest("POST", "/auth/refresh", param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.NotEmpty(t, resp["access_token"], resp)
}

func TestRefreshTokenInvalid(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})

	param := echo.Map{
		"refresh_token": "not-a-token",
	}
	req := test.NewJSONRequest("POST", "/auth/refresh", param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
}
