package main

import (
	"github.com/SundayYogurt/league_service/config"
	"github.com/SundayYogurt/league_service/internal/api"
	"github.com/SundayYogurt/league_service/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.InitLogger(cfg.LogLevel)

	log.WithField("env", cfg.Env).Info("league service starting")
	api.StartServer(cfg, log)
}
