package controllers

import (
	"net/http"
	"strconv"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/models"
	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Store *services.NotificationService
}

func NewNotificationController(store *services.NotificationService) *NotificationController {
	return &NotificationController{Store: store}
}

// GET /user/notifications?unread_only=true
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	uid := c.GetUint("userID")

	unreadOnly := true
	if v, err := strconv.ParseBool(c.DefaultQuery("unread_only", "true")); err == nil {
		unreadOnly = v
	}

	notifications, err := nc.Store.List(uid, unreadOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// POST /user/notifications/:id/read
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	uid := c.GetUint("userID")

	if err := nc.Store.MarkRead(uid, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /user/notifications
func (nc *NotificationController) ClearNotifications(c *gin.Context) {
	uid := c.GetUint("userID")

	if err := nc.Store.Clear(uid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "All notifications cleared",
	})
}
