package tasks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"closetbuddyapi/dbhelper"
	"closetbuddyapi/models"
	"closetbuddyapi/test"
)

func TestStyleAnalysisTask(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUserV2(db, "Analyzed", "analyzed@example.com")

	test.FakeWardrobeItem(db, user.ID, "White Tee", models.CategoryTops, []string{"#FFFFFF"})
	test.FakeWardrobeItem(db, user.ID, "Navy Trousers", models.CategoryBottoms, []string{"#000080"})
	test.FakeWardrobeItem(db, user.ID, "White Sneakers", models.CategoryShoes, []string{"#FFFFFF"})

	fakeTask, err := NewStyleAnalysisTask(user.ID)
	require.NoError(t, err)

	err = HandleStyleAnalysisTask(context.Background(), fakeTask, db, test.StylistMock{}, nil)
	assert.NoError(t, err)

	var snapshot models.StyleProfileSnapshot
	res := db.Where("owner_id = ?", user.ID).First(&snapshot)
	require.NoError(t, res.Error)
	assert.Equal(t, "classic", snapshot.StylePersonality)
	assert.Equal(t, "ai", snapshot.Source)
	assert.Equal(t, 0.85, snapshot.Confidence)
	assert.Equal(t, []string{"classic", "professional"}, []string(snapshot.DominantThemes))
}

func TestStyleAnalysisTaskStylistDown(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUserV2(db, "Offline", "offline@example.com")

	test.FakeWardrobeItem(db, user.ID, "White Tee", models.CategoryTops, []string{"#FFFFFF"})
	test.FakeWardrobeItem(db, user.ID, "Navy Trousers", models.CategoryBottoms, []string{"#000080"})

	fakeTask, err := NewStyleAnalysisTask(user.ID)
	require.NoError(t, err)

	err = HandleStyleAnalysisTask(context.Background(), fakeTask, db, test.FailingStylistMock{}, nil)
	assert.NoError(t, err)

	// stylist failure degrades to the rule based profile, never fails the task
	var snapshot models.StyleProfileSnapshot
	res := db.Where("owner_id = ?", user.ID).First(&snapshot)
	require.NoError(t, res.Error)
	assert.Equal(t, "rules", snapshot.Source)
	assert.NotEmpty(t, snapshot.StylePersonality)
}

func TestStyleAnalysisTaskEmptyWardrobe(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUserV2(db, "Empty", "empty@example.com")

	fakeTask, err := NewStyleAnalysisTask(user.ID)
	require.NoError(t, err)

	err = HandleStyleAnalysisTask(context.Background(), fakeTask, db, test.StylistMock{}, nil)
	assert.NoError(t, err)

	var count int64
	db.Model(&models.StyleProfileSnapshot{}).Where("owner_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
