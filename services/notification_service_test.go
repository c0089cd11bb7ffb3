package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeNotification(userID uint, id string, createdAt time.Time, read bool) *models.Notification {
	return &models.Notification{
		ID:      id,
		UserID:  userID,
		Type:    "goal_achievement",
		Title:   "🎉 Protein Goal Achieved!",
		Message: "Great job!",
		Achievement: models.Achievement{
			GoalType: "protein", Percentage: 101, ActualValue: 151.5, GoalValue: 150, Achieved: true,
		},
		Read:      read,
		CreatedAt: createdAt,
	}
}

func TestPutIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	store := NewNotificationService(db)

	n := makeNotification(1, "1_protein_2026-08-29_achieved", time.Now(), false)
	require.NoError(t, store.Put(n))

	dup := makeNotification(1, "1_protein_2026-08-29_achieved", time.Now(), false)
	dup.Message = "retried delivery"
	require.NoError(t, store.Put(dup), "second put of the same id must be a no-op, not an error")

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var stored models.Notification
	require.NoError(t, db.First(&stored, "id = ?", n.ID).Error)
	assert.Equal(t, "Great job!", stored.Message, "first write wins")
}

func TestListUnreadOldestFirst(t *testing.T) {
	db := newTestDB(t)
	store := NewNotificationService(db)
	now := time.Now()

	// insert newest first to prove ordering comes from created_at
	require.NoError(t, store.Put(makeNotification(1, "c", now, false)))
	require.NoError(t, store.Put(makeNotification(1, "a", now.Add(-2*time.Minute), false)))
	require.NoError(t, store.Put(makeNotification(1, "b", now.Add(-time.Minute), false)))
	require.NoError(t, store.Put(makeNotification(2, "other-user", now, false)))

	ns, err := store.List(1, true)
	require.NoError(t, err)
	require.Len(t, ns, 3)
	assert.Equal(t, "a", ns[0].ID)
	assert.Equal(t, "b", ns[1].ID)
	assert.Equal(t, "c", ns[2].ID)
}

func TestListUnreadExcludesRead(t *testing.T) {
	db := newTestDB(t)
	store := NewNotificationService(db)
	now := time.Now()

	require.NoError(t, store.Put(makeNotification(1, "read", now, true)))
	require.NoError(t, store.Put(makeNotification(1, "unread", now, false)))

	ns, err := store.List(1, true)
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, "unread", ns[0].ID)

	all, err := store.List(1, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	store := NewNotificationService(db)

	require.NoError(t, store.Put(makeNotification(1, "n1", time.Now(), false)))

	require.NoError(t, store.MarkRead(1, "n1"))
	require.NoError(t, store.MarkRead(1, "n1"), "double mark is expected, not exceptional")
	require.NoError(t, store.MarkRead(1, "does-not-exist"))

	var n models.Notification
	require.NoError(t, db.First(&n, "id = ?", "n1").Error)
	assert.True(t, n.Read)
}

func TestMarkReadScopedToUser(t *testing.T) {
	db := newTestDB(t)
	store := NewNotificationService(db)

	require.NoError(t, store.Put(makeNotification(1, "n1", time.Now(), false)))
	require.NoError(t, store.MarkRead(2, "n1"), "foreign id is a silent no-op")

	var n models.Notification
	require.NoError(t, db.First(&n, "id = ?", "n1").Error)
	assert.False(t, n.Read)
}

func TestClearRemovesOnlyThatUser(t *testing.T) {
	db := newTestDB(t)
	store := NewNotificationService(db)
	now := time.Now()

	require.NoError(t, store.Put(makeNotification(1, "mine", now, false)))
	require.NoError(t, store.Put(makeNotification(2, "theirs", now, false)))

	require.NoError(t, store.Clear(1))

	ns, err := store.List(1, false)
	require.NoError(t, err)
	assert.Empty(t, ns)

	ns, err = store.List(2, false)
	require.NoError(t, err)
	assert.Len(t, ns, 1)
}

func TestCleanupDropsStaleReadNotifications(t *testing.T) {
	db := newTestDB(t)
	store := NewNotificationService(db)
	old := time.Now().Add(-8 * 24 * time.Hour)

	require.NoError(t, store.Put(makeNotification(1, "stale-read", old, true)))
	require.NoError(t, store.Put(makeNotification(1, "old-unread", old, false)))
	require.NoError(t, store.Put(makeNotification(1, "fresh-read", time.Now(), true)))

	_, err := store.List(1, true)
	require.NoError(t, err)

	var ids []string
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", 1).Pluck("id", &ids).Error)
	assert.ElementsMatch(t, []string{"old-unread", "fresh-read"}, ids,
		"only read notifications older than a week are removed")
}

func TestCleanupCapPrefersUnread(t *testing.T) {
	db := newTestDB(t)
	store := NewNotificationService(db)
	now := time.Now()

	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("read-%02d", i)
		require.NoError(t, store.Put(makeNotification(1, id, now.Add(time.Duration(i)*time.Second), true)))
	}
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("unread-%d", i)
		require.NoError(t, store.Put(makeNotification(1, id, now.Add(time.Duration(20+i)*time.Second), false)))
	}

	unread, err := store.List(1, true)
	require.NoError(t, err)
	assert.Len(t, unread, 3, "unread notifications survive the cap")

	var total int64
	db.Model(&models.Notification{}).Where("user_id = ?", 1).Count(&total)
	assert.EqualValues(t, maxNotificationsPerUser, total)

	// the evicted rows are the oldest read ones
	var gone int64
	db.Model(&models.Notification{}).Where("id IN ?", []string{"read-00", "read-01", "read-02", "read-03", "read-04"}).Count(&gone)
	assert.EqualValues(t, 0, gone)
}
