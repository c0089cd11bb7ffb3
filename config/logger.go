package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

func InitLogger() {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	level := logrus.InfoLevel
	if lv, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		level = lv
	}
	logrus.SetLevel(level)
}
