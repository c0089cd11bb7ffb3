package models

import "time"

// GoalNotice records the highest threshold band already announced for a
// (user, goal type, local date). It is the dedup ledger: a band is only
// announced again if a later evaluation moves strictly past it, and the
// record survives restarts unlike an in-process cache.
type GoalNotice struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"uniqueIndex:idx_goal_notice_key;not null"`
	GoalType   string `gorm:"uniqueIndex:idx_goal_notice_key;size:32;not null"`
	Date       string `gorm:"uniqueIndex:idx_goal_notice_key;size:10;not null"` // YYYY-MM-DD, server-local
	Band       int    `gorm:"not null"`
	NotifiedAt time.Time
}
