package services

import (
	"errors"
	"time"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/models"

	"gorm.io/gorm"
)

// All calendar-day bucketing uses the server's local timezone.
func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

func dayKey(t time.Time) string {
	return dayStartLocal(t).Format("2006-01-02")
}

type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// GetGoals returns the user's goal row, or a zero-valued one (nothing
// tracked) when none was configured yet.
func (s *ProgressService) GetGoals(userID uint) (models.DailyGoal, error) {
	var goal models.DailyGoal
	err := s.db.Where("user_id = ?", userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DailyGoal{UserID: userID}, nil
		}
		return goal, err
	}
	return goal, nil
}

func (s *ProgressService) UpsertGoals(
	userID uint,
	calories, protein, carbs, fat, sodium, sugar float64,
) error {
	var goal models.DailyGoal
	err := s.db.Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		goal = models.DailyGoal{
			UserID:   userID,
			Calories: calories,
			Protein:  protein,
			Carbs:    carbs,
			Fat:      fat,
			Sodium:   sodium,
			Sugar:    sugar,
		}
		return s.db.Create(&goal).Error
	}
	if err != nil {
		return err
	}

	// update
	goal.Calories = calories
	goal.Protein = protein
	goal.Carbs = carbs
	goal.Fat = fat
	goal.Sodium = sodium
	goal.Sugar = sugar

	return s.db.Save(&goal).Error
}

// DailyTotals sums every meal item the user logged on the given local day.
func (s *ProgressService) DailyTotals(userID uint, day time.Time) (NutrientTotals, error) {
	start := dayStartLocal(day)
	end := start.Add(24 * time.Hour)

	var meals []models.Meal
	err := s.db.
		Preload("Items").
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, start, end).
		Find(&meals).Error
	if err != nil {
		return nil, err
	}

	totals := NutrientTotals{}
	for _, m := range meals {
		for _, it := range m.Items {
			totals["calories"] += it.Calories
			totals["protein"] += it.Protein
			totals["carbs"] += it.Carbs
			totals["fat"] += it.Fat
			totals["sodium"] += it.Sodium
			totals["sugar"] += it.Sugar
		}
	}
	return totals, nil
}

// GetGoalsAndProgress builds the dashboard view for one local day and
// refreshes the DailyProgress snapshot row. Percentages here are capped
// at 1.0 for progress bars; the goal tracker uses uncapped values.
func (s *ProgressService) GetGoalsAndProgress(userID uint, date time.Time) (*models.DailyGoal, map[string]interface{}, error) {
	goal, err := s.GetGoals(userID)
	if err != nil {
		return nil, nil, err
	}

	totals, err := s.DailyTotals(userID, date)
	if err != nil {
		return &goal, nil, err
	}

	start := dayStartLocal(date)
	dp := models.DailyProgress{
		UserID:   userID,
		Date:     start,
		Calories: totals["calories"],
		Protein:  totals["protein"],
		Carbs:    totals["carbs"],
		Fat:      totals["fat"],
		Sodium:   totals["sodium"],
		Sugar:    totals["sugar"],
	}
	s.db.
		Where("user_id = ? AND date = ?", userID, start).
		Assign(dp).
		FirstOrCreate(&dp)

	pct := func(consumed, target float64) float64 {
		if target <= 0 {
			return 0
		}
		p := consumed / target
		if p > 1 {
			return 1
		}
		return p
	}

	goals := GoalsToMap(goal)
	progress := map[string]interface{}{}
	for _, n := range trackedNutrients {
		progress[n] = map[string]float64{
			"consumed": totals[n],
			"goal":     goals[n],
			"percent":  pct(totals[n], goals[n]),
		}
	}

	return &goal, progress, nil
}

func (s *ProgressService) GetAllDailyProgress(userID uint) ([]models.DailyProgress, error) {
	var logs []models.DailyProgress
	err := s.db.
		Where("user_id = ?", userID).
		Order("date desc").
		Find(&logs).Error
	return logs, err
}
