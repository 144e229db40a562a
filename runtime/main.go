package main

import (
	"github.com/brightpath-edu/academy_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using system environment")
	}

	ctx, err := context.NewCtx(
		&services.JWTService{},
		&services.AuthMiddleware{},
		&services.SqlService{},
		&services.RedisService{},

		&services.AssessmentService{},
		&services.ContentService{},

		&services.MonitoringService{},
		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service context exited")
		return
	}
}
