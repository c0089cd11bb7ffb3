package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Meal{},
		&models.MealItem{},
		&models.DailyGoal{},
		&models.DailyProgress{},
		&models.GoalNotice{},
		&models.Notification{},
		&models.UserDevice{},
	))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{Email: email, Password: "x", FullName: "Test User"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedGoal(t *testing.T, db *gorm.DB, userID uint, goal models.DailyGoal) {
	t.Helper()
	goal.UserID = userID
	require.NoError(t, db.Create(&goal).Error)
}

// logMealItem inserts one meal with a single item and runs the pipeline,
// the way a real meal-log request would.
func logMealItem(t *testing.T, db *gorm.DB, tracker *GoalTracker, userID uint, at time.Time, item models.MealItem) {
	t.Helper()
	meal := models.Meal{UserID: userID, Type: "Lunch", AteAt: at}
	require.NoError(t, db.Create(&meal).Error)
	item.MealID = meal.ID
	require.NoError(t, db.Create(&item).Error)
	require.NoError(t, tracker.OnMealLogged(userID, at))
}
