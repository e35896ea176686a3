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
	"closetbuddyapi/engine"
	"closetbuddyapi/models"
	"closetbuddyapi/services"
	"closetbuddyapi/test"
)

func TestSuggestOutfits(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})
	user := test.FakeUser(db)

	test.FakeWardrobeItem(db, user.ID, "White Tee", models.CategoryTops, []string{"#FFFFFF"})
	test.FakeWardrobeItem(db, user.ID, "Navy Trousers", models.CategoryBottoms, []string{"#000080"})
	test.FakeWardrobeItem(db, user.ID, "White Sneakers", models.CategoryShoes, []string{"#FFFFFF"})

	param := models.SuggestionFiltersIn{}
	req := test.NewJSONAuthRequest("POST", "/closet/outfits/suggest", strconv.FormatUint(uint64(user.ID), 10), param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response struct {
		Suggestions []engine.Suggestion `json:"suggestions"`
		Count       int                 `json:"count"`
	}
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Equal(t, 1, response.Count)
	suggestion := response.Suggestions[0]
	assert.Len(t, suggestion.Items, 3)
	assert.Greater(t, suggestion.Score, 0.0)
	assert.NotEmpty(t, suggestion.ID)
}

func TestSuggestOutfitsWithAI(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})
	user := test.FakeUser(db)

	test.FakeWardrobeItem(db, user.ID, "White Tee", models.CategoryTops, []string{"#FFFFFF"})
	test.FakeWardrobeItem(db, user.ID, "Navy Trousers", models.CategoryBottoms, []string{"#000080"})

	param := models.SuggestionFiltersIn{UseAI: true}
	req := test.NewJSONAuthRequest("POST", "/closet/outfits/suggest", strconv.FormatUint(uint64(user.ID), 10), param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response struct {
		Suggestions []engine.Suggestion `json:"suggestions"`
	}
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Len(t, response.Suggestions, 1)
	assert.Equal(t, "A clean, put-together look.", response.Suggestions[0].AIDescription)
	assert.Equal(t, 0.9, response.Suggestions[0].AIConfidence)
}

func TestSuggestEmptyWardrobe(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})
	user := test.FakeUser(db)

	param := models.SuggestionFiltersIn{}
	req := test.NewJSONAuthRequest("POST", "/closet/outfits/suggest", strconv.FormatUint(uint64(user.ID), 10), param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Your wardrobe is empty. Add some clothing items to get outfit suggestions!", response["message"])
}

func TestSuggestSingleItemWardrobe(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})
	user := test.FakeUser(db)

	test.FakeWardrobeItem(db, user.ID, "Lonely Tee", models.CategoryTops, []string{"#FFFFFF"})

	param := models.SuggestionFiltersIn{}
	req := test.NewJSONAuthRequest("POST", "/closet/outfits/suggest", strconv.FormatUint(uint64(user.ID), 10), param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "You need at least 2 items in your wardrobe to generate outfit suggestions. Add more items to your wardrobe!", response["message"])
}

func TestQuickSuggest(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})
	user := test.FakeUser(db)

	test.FakeWardrobeItem(db, user.ID, "White Tee", models.CategoryTops, []string{"#FFFFFF"})
	test.FakeWardrobeItem(db, user.ID, "Navy Trousers", models.CategoryBottoms, []string{"#000080"})

	req := test.NewJSONAuthRequest("GET", "/closet/outfits/quick", strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response struct {
		Suggestions []engine.Suggestion `json:"suggestions"`
		Season      string              `json:"season"`
	}
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(response.Suggestions), 3)
	assert.Equal(t, string(services.CurrentSeason()), response.Season)
}

func TestGetInsights(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})
	user := test.FakeUser(db)

	test.FakeWardrobeItem(db, user.ID, "White Tee", models.CategoryTops, []string{"#FFFFFF"})
	test.FakeWardrobeItem(db, user.ID, "Navy Trousers", models.CategoryBottoms, []string{"#000080"})

	req := test.NewJSONAuthRequest("GET", "/closet/outfits/insights", strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var insights services.StyleInsights
	err := json.Unmarshal(rec.Body.Bytes(), &insights)
	require.NoError(t, err)
	assert.NotEmpty(t, insights.StylePersonality)
	assert.NotEmpty(t, insights.Headline)
	assert.NotEmpty(t, insights.Recommendations)
}

func TestGetStyleProfilePrefersSnapshot(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})
	user := test.FakeUser(db)

	snapshot := models.StyleProfileSnapshot{
		OwnerID:          user.ID,
		StylePersonality: "classic",
		RiskTolerance:    "conservative",
		Confidence:       0.85,
		Source:           "ai",
	}
	db.Create(&snapshot)

	req := test.NewJSONAuthRequest("GET", "/closet/outfits/style-profile", strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response map[string]interface{}
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "classic", response["style_personality"])
	assert.Equal(t, "ai", response["source"])
}

func TestSaveAndListFavorites(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})
	user := test.FakeUser(db)

	item1 := test.FakeWardrobeItem(db, user.ID, "White Tee", models.CategoryTops, []string{"#FFFFFF"})
	item2 := test.FakeWardrobeItem(db, user.ID, "Navy Trousers", models.CategoryBottoms, []string{"#000080"})

	param := models.FavoriteOutfitIn{
		Name:    "Monday Standard",
		ItemIDs: []uint{item1.ID, item2.ID},
		Score:   0.82,
	}
	req := test.NewJSONAuthRequest("POST", "/closet/outfits/favorites", strconv.FormatUint(uint64(user.ID), 10), param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req = test.NewJSONAuthRequest("GET", "/closet/outfits/favorites", strconv.FormatUint(uint64(user.ID), 10), "")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var favorites []models.FavoriteOutfit
	err := json.Unmarshal(rec.Body.Bytes(), &favorites)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Monday Standard", favorites[0].Name)
	assert.Equal(t, 0.82, favorites[0].Score)
}

func TestSaveFavoriteRejectsForeignItems(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, &test.URLCacheMock{}, &services.OutfitService{Stylist: test.StylistMock{}})
	user := test.FakeUser(db)
	otherUser := test.FakeUserV2(db, "Other", "other@example.com")

	mine := test.FakeWardrobeItem(db, user.ID, "White Tee", models.CategoryTops, []string{"#FFFFFF"})
	theirs := test.FakeWardrobeItem(db, otherUser.ID, "Their Trousers", models.CategoryBottoms, []string{"#000080"})

	param := models.FavoriteOutfitIn{
		Name:    "Sneaky",
		ItemIDs: []uint{mine.ID, theirs.ID},
	}
	req := test.NewJSONAuthRequest("POST", "/closet/outfits/favorites", strconv.FormatUint(uint64(user.ID), 10), param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}
