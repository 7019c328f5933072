package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&City{}, &Case{}, &File{}, &Person{}))
	return db
}

func TestCaseDefaults(t *testing.T) {
	db := openTestDB(t)
	c := Case{Title: "t", Summary: "s", Context: "c"}
	require.NoError(t, db.Create(&c).Error)

	_, err := uuid.Parse(c.ID)
	assert.NoError(t, err, "id should be a uuid")
	assert.Equal(t, StatusActive, c.Status)
	assert.WithinDuration(t, time.Now(), c.PublishedAt, time.Minute)
}

func TestCaseKeepsExplicitValues(t *testing.T) {
	db := openTestDB(t)
	published := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	c := Case{ID: "fixed-id", Title: "t", Summary: "s", Context: "c", Status: StatusArchived, PublishedAt: published}
	require.NoError(t, db.Create(&c).Error)

	assert.Equal(t, "fixed-id", c.ID)
	assert.Equal(t, StatusArchived, c.Status)
	assert.True(t, c.PublishedAt.Equal(published))
}

func TestFileDefaultsAvailableAt(t *testing.T) {
	db := openTestDB(t)
	c := Case{Title: "t", Summary: "s", Context: "c"}
	require.NoError(t, db.Create(&c).Error)

	f := File{CaseID: c.ID, Type: FileNarrative, Title: "t", Content: "c"}
	require.NoError(t, db.Create(&f).Error)

	_, err := uuid.Parse(f.ID)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), f.AvailableAt, time.Minute)
}

func TestPersonGetsUUID(t *testing.T) {
	db := openTestDB(t)
	p := Person{CaseID: "x", Name: "n", Role: RoleWitness, Description: "d"}
	require.NoError(t, db.Create(&p).Error)
	_, err := uuid.Parse(p.ID)
	assert.NoError(t, err)
}

func TestCityGetsUUID(t *testing.T) {
	db := openTestDB(t)
	city := City{Name: "Porto Seguro", Description: "d", Difficulty: 2}
	require.NoError(t, db.Create(&city).Error)
	_, err := uuid.Parse(city.ID)
	assert.NoError(t, err)
}

func TestCasePreloadsRelations(t *testing.T) {
	db := openTestDB(t)
	city := City{Name: "Metropolis", Description: "d", Difficulty: 4}
	require.NoError(t, db.Create(&city).Error)
	c := Case{Title: "t", Summary: "s", Context: "c", CityID: &city.ID}
	require.NoError(t, db.Create(&c).Error)
	require.NoError(t, db.Create(&File{CaseID: c.ID, Type: FileDocument, Title: "f", Content: "x"}).Error)
	require.NoError(t, db.Create(&Person{CaseID: c.ID, Name: "n", Role: RoleSuspect, Description: "d"}).Error)

	var got Case
	require.NoError(t, db.Preload("City").Preload("Files").Preload("People").First(&got, "id = ?", c.ID).Error)
	require.NotNil(t, got.City)
	assert.Equal(t, "Metropolis", got.City.Name)
	assert.Len(t, got.Files, 1)
	assert.Len(t, got.People, 1)
}
