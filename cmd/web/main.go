package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/chemsecure/config"
	"github.com/yeremiapane/chemsecure/utils"
	"github.com/yeremiapane/chemsecure/webclient"
)

func main() {
	cfg, err := config.LoadWeb(".env")
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	utils.InitLogger(cfg.LogLevel)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	api := webclient.NewClient(cfg.APIBaseURL)
	r := webclient.NewRouter(api, cfg.SessionSecret)

	utils.InfoLogger.Printf("Web layer listening on port %s, API at %s", cfg.Port, cfg.APIBaseURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
