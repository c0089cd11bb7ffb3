// controllers/dev_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/services"

	"github.com/gin-gonic/gin"
)

type DevController struct {
	Tracker *services.GoalTracker
}

func NewDevController(t *services.GoalTracker) *DevController {
	return &DevController{Tracker: t}
}

// POST /dev/evaluate — force a goal evaluation pass for the current user
// without logging a meal. Handy for poking the notification pipeline.
func (d *DevController) EvaluateNow(c *gin.Context) {
	uid := c.GetUint("userID")

	if err := d.Tracker.OnMealLogged(uid, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
