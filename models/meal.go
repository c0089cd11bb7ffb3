package models

import (
	"time"

	"gorm.io/gorm"
)

// One Meal (breakfast/lunch/…)
type Meal struct {
	gorm.Model
	UserID uint      `gorm:"index"` // FK → users.id
	Type   string    // “Breakfast”|“Lunch”|…
	AteAt  time.Time // timestamp of the meal
	Items  []MealItem
}

// Each MealItem stores the nutrition snapshot the client submitted
// (macros come pre-computed from the analysis step upstream).
type MealItem struct {
	gorm.Model
	MealID uint
	Meal   Meal

	FoodLabel string  // human label
	Quantity  float64 // e.g. 200
	Unit      string  // e.g. "g"
	Calories  float64
	Protein   float64
	Carbs     float64
	Fat       float64
	Sodium    float64
	Sugar     float64
}
