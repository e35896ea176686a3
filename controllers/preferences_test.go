package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"closetbuddyapi/dbhelper"
	"closetbuddyapi/models"
	"closetbuddyapi/services"
	"closetbuddyapi/test"
)

func TestGetPreferencesDefaults(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("GET", "/closet/preferences", strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response models.UserPreferences
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Empty(t, response.FavoriteColors)

	// no row is created until the user saves
	var count int64
	db.Model(&models.UserPreferences{}).Where("owner_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUpsertPreferences(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})
	user := test.FakeUser(db)

	param := models.UserPreferencesIn{
		FavoriteColors:   []string{"#000080", "#FFFFFF"},
		StylePreferences: []string{"classic", "professional"},
		BrandPreferences: []string{"Uniqlo"},
		BudgetMin:        IntPointer32(50),
		BudgetMax:        IntPointer32(300),
	}
	req := test.NewJSONAuthRequest("PUT", "/closet/preferences", strconv.FormatUint(uint64(user.ID), 10), param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored models.UserPreferences
	db.Where("owner_id = ?", user.ID).First(&stored)
	assert.Equal(t, []string{"#000080", "#FFFFFF"}, []string(stored.FavoriteColors))
	assert.Equal(t, int32(50), *stored.BudgetMin)

	// second save replaces, no duplicate row
	param.FavoriteColors = []string{"#FF0000"}
	req = test.NewJSONAuthRequest("PUT", "/closet/preferences", strconv.FormatUint(uint64(user.ID), 10), param)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var count int64
	db.Model(&models.UserPreferences{}).Where("owner_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
	db.Where("owner_id = ?", user.ID).First(&stored)
	assert.Equal(t, []string{"#FF0000"}, []string(stored.FavoriteColors))
}

func TestUpsertPreferencesInvalidStyle(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})
	user := test.FakeUser(db)

	param := models.UserPreferencesIn{
		StylePreferences: []string{"grunge-metal"},
	}
	req := test.NewJSONAuthRequest("PUT", "/closet/preferences", strconv.FormatUint(uint64(user.ID), 10), param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func IntPointer32(i int32) *int32 {
	return &i
}
