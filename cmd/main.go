package main

import (
	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/config"
	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/routes"
	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/services"
	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/utils"

	"github.com/sirupsen/logrus"
)

func main() {
	config.InitLogger()
	config.InitDB()
	utils.InitMailer()

	rt := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		logrus.WithError(err).Warn("push service disabled")
		push = nil
	}

	progress := services.NewProgressService(config.DB)
	store := services.NewNotificationService(config.DB)
	tracker := services.NewGoalTracker(config.DB, progress, store, rt, push)
	meals := services.NewMealService(config.DB, tracker)

	r := routes.SetupRouter(routes.Deps{
		Meals:         meals,
		Progress:      progress,
		Notifications: store,
		Tracker:       tracker,
		RT:            rt,
		Push:          push,
	})
	if err := r.Run(":8080"); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
