package db

import (
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/case-archive/internal/models"
)

// seed inserts a small archive for local development. Idempotent per city
// name so repeated boots with DB_SEED=1 do not duplicate.
func seed(conn *gorm.DB) {
	var existing models.City
	if err := conn.Where("name = ?", "Porto Seguro").First(&existing).Error; err == nil {
		return
	}

	coastal := models.City{Name: "Porto Seguro", Difficulty: 2,
		Description: "Quiet coastal town with few criminal cases, suited to beginner investigators."}
	conn.Create(&coastal)
	metro := models.City{Name: "Metropolis", Difficulty: 4,
		Description: "Large urban center with a high crime rate and complex cases that demand experience."}
	conn.Create(&metro)

	c := models.Case{
		Title:   "Disappearance on the High Seas",
		Summary: "Investigation into the mysterious disappearance of a cruise passenger.",
		Context: "A passenger on the Oceanic Dream vanished during a Caribbean voyage. There is no sign he went overboard, and the security cameras never recorded him leaving his cabin.",
		Status:  models.StatusActive,
		CityID:  &coastal.ID,
	}
	conn.Create(&c)

	conn.Create(&models.Person{CaseID: c.ID, Name: "Carlos Mendes", Role: models.RoleVictim,
		Description: "45-year-old tourist who disappeared from the ship on the third night of the voyage.",
		Image:       "https://i.pravatar.cc/150?img=68"})
	conn.Create(&models.Person{CaseID: c.ID, Name: "Helena Mendes", Role: models.RoleWitness,
		Description: "The passenger's wife, last person known to have spoken with him."})

	today := time.Now().Truncate(time.Hour)
	conn.Create(&models.File{CaseID: c.ID, Type: models.FileInterview, Title: "The wife's account",
		Description: "Statement about the final hours before the disappearance",
		Content:     "She states they had dinner together and then went to the casino. She retired at 11pm while he kept playing. Cameras show him leaving the casino at 1:20am, but there is no record of him reaching the cabin.",
		AvailableAt: today})
	conn.Create(&models.File{CaseID: c.ID, Type: models.FileDocument, Title: "Ship security log",
		Content:     "Extract of the overnight security log covering decks 7 through 9.",
		AvailableAt: today.Add(7 * 24 * time.Hour)})
}
