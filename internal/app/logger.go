package app

import (
	"github.com/guttosm/flock-service/config"
	"github.com/guttosm/flock-service/internal/logger"
	"github.com/rs/zerolog/log"
)

// InitializeLogger configures the global logger from the LOG_* settings.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
	log.Debug().Str("level", cfg.Level).Bool("pretty", cfg.Pretty).Msg("Logger initialized")
}
