package models

import "time"

// Achievement is the payload embedded in a goal notification.
type Achievement struct {
	GoalType    string  `json:"goal_type"`
	Percentage  float64 `json:"percentage"`
	ActualValue float64 `json:"actual_value"`
	GoalValue   float64 `json:"goal_value"`
	Achieved    bool    `json:"achieved"`
}

// Notification is one delivered goal-progress toast. The id is derived
// from (user, goal type, date, band) so re-delivery of the same crossing
// collapses onto the same row.
type Notification struct {
	ID          string      `gorm:"primaryKey;size:120" json:"id"`
	UserID      uint        `gorm:"index;not null" json:"-"`
	Type        string      `gorm:"size:32" json:"type"` // "goal_achievement"
	Title       string      `json:"title"`
	Message     string      `gorm:"type:text" json:"message"`
	Achievement Achievement `gorm:"embedded;embeddedPrefix:achievement_" json:"achievement"`
	Read        bool        `gorm:"default:false" json:"read"`
	CreatedAt   time.Time   `json:"created_at"`
}
