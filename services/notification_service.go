package services

import (
	"fmt"
	"time"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	maxNotificationsPerUser = 10
	readNotificationTTL     = 7 * 24 * time.Hour
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// NotificationID derives the stable id for a threshold crossing. Two
// deliveries of the same (user, goal, date, band) collapse onto one row.
func NotificationID(userID uint, goalType, date string, band ThresholdBand) string {
	return fmt.Sprintf("%d_%s_%s_%s", userID, goalType, date, band)
}

// Put stores a notification; writing an id that already exists is a no-op.
func (s *NotificationService) Put(n *models.Notification) error {
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(n).Error
}

// List returns the user's notifications oldest first, so a milestone
// toast is shown before the achieved toast it preceded.
func (s *NotificationService) List(userID uint, unreadOnly bool) ([]models.Notification, error) {
	if err := s.cleanup(userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("notification cleanup failed")
	}

	q := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}

	var out []models.Notification
	err := q.Order("created_at ASC").Find(&out).Error
	return out, err
}

// MarkRead flags one notification read. Already-read or unknown ids are
// fine; the poller races its own previous cycle and double-marks.
func (s *NotificationService) MarkRead(userID uint, id string) error {
	return s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error
}

// Clear deletes every notification for the user. The goal_notices
// ledger is left alone so cleared bands are not re-announced today.
func (s *NotificationService) Clear(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.Notification{}).Error
}

// cleanup drops stale read notifications and enforces the per-user cap,
// sacrificing oldest read rows first so unread ones survive.
func (s *NotificationService) cleanup(userID uint) error {
	cutoff := time.Now().Add(-readNotificationTTL)
	if err := s.db.
		Where("user_id = ? AND read = ? AND created_at < ?", userID, true, cutoff).
		Delete(&models.Notification{}).Error; err != nil {
		return err
	}

	var total int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return err
	}
	if total <= maxNotificationsPerUser {
		return nil
	}

	excess := int(total - maxNotificationsPerUser)
	var victims []models.Notification
	if err := s.db.
		Where("user_id = ? AND read = ?", userID, true).
		Order("created_at ASC").
		Limit(excess).
		Find(&victims).Error; err != nil {
		return err
	}
	if len(victims) == 0 {
		return nil
	}

	ids := make([]string, 0, len(victims))
	for _, v := range victims {
		ids = append(ids, v.ID)
	}
	return s.db.Where("id IN ?", ids).Delete(&models.Notification{}).Error
}
