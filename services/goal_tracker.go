package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/models"
	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GoalTracker runs the meal-logged → evaluate → admit → deliver pipeline.
// The websocket hub and push service are optional delivery channels; the
// stored notification rows are the contract the poller relies on.
type GoalTracker struct {
	db       *gorm.DB
	progress *ProgressService
	store    *NotificationService
	rt       *RealtimeHub
	push     *PushService
}

func NewGoalTracker(db *gorm.DB, progress *ProgressService, store *NotificationService, rt *RealtimeHub, push *PushService) *GoalTracker {
	return &GoalTracker{db: db, progress: progress, store: store, rt: rt, push: push}
}

// OnMealLogged is the pipeline's sole inbound entry point, invoked after
// every write to the meal ledger. Each event's admission is independent:
// one failing nutrient does not block the others.
func (t *GoalTracker) OnMealLogged(userID uint, at time.Time) error {
	goal, err := t.progress.GetGoals(userID)
	if err != nil {
		return fmt.Errorf("load goals for user %d: %w", userID, err)
	}

	totals, err := t.progress.DailyTotals(userID, at)
	if err != nil {
		return fmt.Errorf("load daily totals for user %d: %w", userID, err)
	}

	events := EvaluateGoals(userID, dayKey(at), totals, GoalsToMap(goal))

	var errs []error
	for _, ev := range events {
		admitted, err := t.admit(ev)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !admitted {
			continue
		}
		t.deliver(ev)
	}
	return errors.Join(errs...)
}

// admit records the event in the goal_notices ledger iff its band is
// strictly higher than anything announced for (user, goal, date) today.
// The compare-and-set happens in a single upsert statement, so two
// concurrent meal-log requests cannot both win the same band: the loser
// sees zero affected rows and admits nothing.
func (t *GoalTracker) admit(ev AchievementEvent) (bool, error) {
	notice := models.GoalNotice{
		UserID:     ev.UserID,
		GoalType:   ev.GoalType,
		Date:       ev.Date,
		Band:       int(ev.Band),
		NotifiedAt: time.Now(),
	}

	res := t.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "goal_type"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"band":        int(ev.Band),
			"notified_at": notice.NotifiedAt,
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			gorm.Expr("goal_notices.band < ?", int(ev.Band)),
		}},
	}).Create(&notice)

	if res.Error != nil {
		return false, fmt.Errorf("admit %s %s band for user %d: %w", ev.GoalType, ev.Band, ev.UserID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// deliver stores the notification and fans it out. Channel failures are
// logged and swallowed; the stored row alone satisfies the contract.
func (t *GoalTracker) deliver(ev AchievementEvent) {
	n := &models.Notification{
		ID:      NotificationID(ev.UserID, ev.GoalType, ev.Date, ev.Band),
		UserID:  ev.UserID,
		Type:    "goal_achievement",
		Title:   achievementTitle(ev),
		Message: achievementMessage(ev),
		Achievement: models.Achievement{
			GoalType:    ev.GoalType,
			Percentage:  ev.Percentage,
			ActualValue: ev.ActualValue,
			GoalValue:   ev.GoalValue,
			Achieved:    ev.Band == BandAchieved,
		},
		CreatedAt: time.Now(),
	}

	if err := t.store.Put(n); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id":   ev.UserID,
			"goal_type": ev.GoalType,
		}).Error("failed to store goal notification")
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    ev.UserID,
		"goal_type":  ev.GoalType,
		"band":       ev.Band.String(),
		"percentage": ev.Percentage,
	}).Info("goal notification created")

	if t.rt != nil {
		t.rt.BroadcastNotification(ev.UserID, n)
	}

	if ev.Band != BandAchieved {
		return
	}
	if t.push != nil {
		t.push.PushToUser(ev.UserID, n.Title, n.Message, map[string]string{
			"type":           n.Type,
			"notificationId": n.ID,
		})
	}
	var user models.User
	if err := t.db.First(&user, ev.UserID).Error; err == nil {
		if err := sendGoalAchievedMail(user.Email, ev.GoalType, ev.GoalValue); err != nil {
			logrus.WithError(err).Warn("goal achievement email failed")
		}
	}
}

var sendGoalAchievedMail = utils.SendGoalAchievedEmail

func achievementTitle(ev AchievementEvent) string {
	name := capitalize(ev.GoalType)
	switch ev.Band {
	case BandAchieved:
		return fmt.Sprintf("🎉 %s Goal Achieved!", name)
	case BandAlmost:
		return fmt.Sprintf("🔥 Almost There! %s Goal", name)
	default:
		return fmt.Sprintf("💪 Progress: %s Goal", name)
	}
}

func achievementMessage(ev AchievementEvent) string {
	unit := nutrientUnit(ev.GoalType)
	switch ev.Band {
	case BandAchieved:
		return fmt.Sprintf("Great job! You've reached your daily %s goal of %g%s!", ev.GoalType, ev.GoalValue, unit)
	case BandAlmost:
		return fmt.Sprintf("You're at %g%s of %g%s (%g%%). Keep going!", ev.ActualValue, unit, ev.GoalValue, unit, ev.Percentage)
	default:
		return fmt.Sprintf("Current: %g%s / %g%s (%g%%)", ev.ActualValue, unit, ev.GoalValue, unit, ev.Percentage)
	}
}

func nutrientUnit(goalType string) string {
	switch goalType {
	case "calories":
		return " kcal"
	case "sodium":
		return "mg"
	default:
		return "g"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
