package main

import (
	"lagoon/config"
	"lagoon/di"
	"lagoon/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
