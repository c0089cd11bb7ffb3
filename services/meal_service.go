package services

import (
	"time"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MealService struct {
	db      *gorm.DB
	tracker *GoalTracker
}

func NewMealService(db *gorm.DB, tracker *GoalTracker) *MealService {
	return &MealService{db: db, tracker: tracker}
}

// MealItemRequest carries the nutrition snapshot computed upstream; the
// server stores it verbatim.
type MealItemRequest struct {
	FoodLabel string  `json:"food_label"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fat       float64 `json:"fat"`
	Sodium    float64 `json:"sodium"`
	Sugar     float64 `json:"sugar"`
}

func (s *MealService) AddMeal(
	userID uint,
	mealType string,
	ateAt time.Time,
	items []MealItemRequest,
) (*models.Meal, error) {
	// create the parent meal
	meal := &models.Meal{UserID: userID, Type: mealType, AteAt: ateAt}
	if err := s.db.Create(meal).Error; err != nil {
		return nil, err
	}

	for _, it := range items {
		mi := &models.MealItem{
			MealID:    meal.ID,
			FoodLabel: it.FoodLabel,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			Calories:  it.Calories,
			Protein:   it.Protein,
			Carbs:     it.Carbs,
			Fat:       it.Fat,
			Sodium:    it.Sodium,
			Sugar:     it.Sugar,
		}
		if err := s.db.Create(mi).Error; err != nil {
			return nil, err
		}
	}

	s.checkGoals(userID, ateAt)

	// reload with items
	var populatedMeal models.Meal
	if err := s.db.Preload("Items").
		First(&populatedMeal, meal.ID).Error; err != nil {
		return nil, err
	}
	return &populatedMeal, nil
}

func (s *MealService) ListMeals(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) UpdateMeal(
	userID, mealID uint,
	mealType string,
	ateAt time.Time,
	items []MealItemRequest,
) (*models.Meal, error) {
	// fetch & update the parent meal
	var meal models.Meal
	if err := s.db.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return nil, err
	}
	meal.Type = mealType
	meal.AteAt = ateAt
	if err := s.db.Save(&meal).Error; err != nil {
		return nil, err
	}

	// delete old items
	if err := s.db.
		Where("meal_id = ?", meal.ID).
		Delete(&models.MealItem{}).Error; err != nil {
		return nil, err
	}

	for _, it := range items {
		mi := &models.MealItem{
			MealID:    meal.ID,
			FoodLabel: it.FoodLabel,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			Calories:  it.Calories,
			Protein:   it.Protein,
			Carbs:     it.Carbs,
			Fat:       it.Fat,
			Sodium:    it.Sodium,
			Sugar:     it.Sugar,
		}
		if err := s.db.Create(mi).Error; err != nil {
			return nil, err
		}
	}

	s.checkGoals(userID, ateAt)

	// reload
	var updated models.Meal
	if err := s.db.
		Preload("Items").
		First(&updated, meal.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MealService) DeleteMeal(userID, mealID uint) error {
	var meal models.Meal
	if err := s.db.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return err
	}
	if err := s.db.
		Where("meal_id = ?", meal.ID).
		Delete(&models.MealItem{}).Error; err != nil {
		return err
	}
	if err := s.db.Delete(&meal).Error; err != nil {
		return err
	}

	s.checkGoals(userID, meal.AteAt)
	return nil
}

func (s *MealService) GetMeal(userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.
		Preload("Items").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &meal, nil
}

func (s *MealService) ListMealsByDateRange(userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Preload("Items").
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

// checkGoals runs the notification pipeline after a ledger write. The
// meal write already committed; evaluation trouble is advisory only and
// must never bubble up to the logging request.
func (s *MealService) checkGoals(userID uint, at time.Time) {
	if s.tracker == nil {
		return
	}
	if err := s.tracker.OnMealLogged(userID, at); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("goal evaluation failed")
	}
}
