// controllers/daily_goal_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/services"

	"github.com/gin-gonic/gin"
)

type DailyGoalController struct {
	Progress *services.ProgressService
}

func NewDailyGoalController(progress *services.ProgressService) *DailyGoalController {
	return &DailyGoalController{Progress: progress}
}

func (gc *DailyGoalController) GetGoals(c *gin.Context) {
	uid := c.GetUint("userID")

	goal, progress, err := gc.Progress.GetGoalsAndProgress(uid, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goal, "progress": progress})
}

func (gc *DailyGoalController) UpdateGoals(c *gin.Context) {
	uid := c.GetUint("userID")

	var req struct {
		Calories float64  `json:"calories"`
		Protein  float64  `json:"protein"`
		Carbs    float64  `json:"carbs"`
		Fat      *float64 `json:"fat"`
		Sodium   *float64 `json:"sodium"`
		Sugar    *float64 `json:"sugar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// default missing to 0 (0 disables tracking for that nutrient)
	fat, sodium, sugar := 0.0, 0.0, 0.0
	if req.Fat != nil {
		fat = *req.Fat
	}
	if req.Sodium != nil {
		sodium = *req.Sodium
	}
	if req.Sugar != nil {
		sugar = *req.Sugar
	}

	if err := gc.Progress.UpsertGoals(uid, req.Calories, req.Protein, req.Carbs, fat, sodium, sugar); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (gc *DailyGoalController) GetDailyProgressHistory(c *gin.Context) {
	uid := c.GetUint("userID")

	history, err := gc.Progress.GetAllDailyProgress(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}

func (gc *DailyGoalController) GetGoalsByDate(c *gin.Context) {
	uid := c.GetUint("userID")

	dateStr := c.Query("date") // expected format: YYYY-MM-DD
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'date' query param"})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	goal, progress, err := gc.Progress.GetGoalsAndProgress(uid, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     dateStr,
		"goals":    goal,
		"progress": progress,
	})
}
