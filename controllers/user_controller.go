package controllers

import (
	"net/http"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/config"
	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/models"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"full_name":     user.FullName,
		"fitness_goals": user.FitnessGoals,
	})
}

func UpdateProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	var req struct {
		FullName     string `json:"full_name"`
		FitnessGoals string `json:"fitness_goals"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Model(&models.User{}).
		Where("id = ?", uid).
		Updates(map[string]interface{}{
			"full_name":     req.FullName,
			"fitness_goals": req.FitnessGoals,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
