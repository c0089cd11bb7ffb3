package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Meals *services.MealService
}

func NewMealController(meals *services.MealService) *MealController {
	return &MealController{Meals: meals}
}

type mealReq struct {
	Type  string                     `json:"type"`
	AteAt time.Time                  `json:"ate_at"`
	Items []services.MealItemRequest `json:"items"`
}

func (mc *MealController) LogMeal(c *gin.Context) {
	var body mealReq
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uid := c.GetUint("userID")
	if body.AteAt.IsZero() {
		body.AteAt = time.Now()
	}

	meal, err := mc.Meals.AddMeal(uid, body.Type, body.AteAt, body.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (mc *MealController) ListMeals(c *gin.Context) {
	uid := c.GetUint("userID")

	meals, err := mc.Meals.ListMeals(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (mc *MealController) GetMeal(c *gin.Context) {
	uid := c.GetUint("userID")
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := mc.Meals.GetMeal(uid, uint(mealID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (mc *MealController) UpdateMeal(c *gin.Context) {
	uid := c.GetUint("userID")
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	var body mealReq
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.AteAt.IsZero() {
		body.AteAt = time.Now()
	}

	meal, err := mc.Meals.UpdateMeal(uid, uint(mealID), body.Type, body.AteAt, body.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (mc *MealController) DeleteMeal(c *gin.Context) {
	uid := c.GetUint("userID")
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := mc.Meals.DeleteMeal(uid, uint(mealID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
