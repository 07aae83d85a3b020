package main

import (
	"errors"
	"os"

	"icpac/config"
	"icpac/helper"
	"icpac/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/drop/step-up) is required")
	}

	cfg := config.Get()

	logger.InitLogger(cfg.Server.Env)
	logger.SetLogLevel(cfg)

	action := helper.Action(os.Args[1])

	if err := helper.Runner(cfg, action); err != nil {
		if errors.Is(err, helper.ErrUnknownAction) {
			log.Fatal().Str("direction", string(action)).Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
		}

		log.Fatal().Err(err).Str("direction", string(action)).Msg("Migration failed")
	}
}
