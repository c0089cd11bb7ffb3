package routes

import (
	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/controllers"
	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/middlewares"
	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/services"

	"github.com/gin-gonic/gin"
)

// Deps carries the wired services; push may be nil when AWS is absent.
type Deps struct {
	Meals         *services.MealService
	Progress      *services.ProgressService
	Notifications *services.NotificationService
	Tracker       *services.GoalTracker
	RT            *services.RealtimeHub
	Push          *services.PushService
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)

		gc := controllers.NewDailyGoalController(d.Progress)
		user.GET("/goals", gc.GetGoals)
		user.PUT("/goals", gc.UpdateGoals)
		user.GET("/goals/by-date", gc.GetGoalsByDate)
		user.GET("/progress/history", gc.GetDailyProgressHistory)

		mc := controllers.NewMealController(d.Meals)
		user.POST("/meals", mc.LogMeal)
		user.GET("/meals", mc.ListMeals)
		user.GET("/meals/:id", mc.GetMeal)
		user.PUT("/meals/:id", mc.UpdateMeal)
		user.DELETE("/meals/:id", mc.DeleteMeal)

		nc := controllers.NewNotificationController(d.Notifications)
		user.GET("/notifications", nc.ListNotifications)
		user.POST("/notifications/:id/read", nc.MarkNotificationRead)
		user.DELETE("/notifications", nc.ClearNotifications)

		rc := controllers.NewRealtimeController(d.RT)
		user.GET("/realtime", rc.NotificationsWS)

		if d.Push != nil {
			dc := controllers.NewDeviceController(d.Push)
			user.POST("/devices", dc.RegisterDevice)
		}
	}

	dev := r.Group("/dev")
	dev.Use(middlewares.AuthMiddleware())
	{
		dev.POST("/evaluate", controllers.NewDevController(d.Tracker).EvaluateNow)
	}

	return r
}
