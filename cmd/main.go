// Package main is the entry point for the flock-service application.
//
// @title           Flock Service API
// @version         1.0.0
// @description     Farm management API: batches of birds, houses, bird allocations, stock, production and feed formulas.
//
//	Birds of a batch are either unallocated or allocated to exactly one house; every move keeps that balance.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/flock-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer access token issued by /api/v1/auth/login.
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for service callers. Required if authentication is enabled.
//
// @tag.name        Farms
// @tag.description The caller's farm
//
// @tag.name        Batches
// @tag.description Batches of birds
//
// @tag.name        Houses
// @tag.description Houses and their capacity
//
// @tag.name        Allocations
// @tag.description Moving birds between batches and houses
//
// @tag.name        Stock
// @tag.description Stock items and low stock alerts
//
// @tag.name        Production
// @tag.description Daily egg collection and losses
//
// @tag.name        Feed formulas
// @tag.description Feed formulas and the external optimizer
//
// @tag.name        Auth
// @tag.description Authentication and authorization endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/guttosm/flock-service/docs" // swagger docs

	"github.com/guttosm/flock-service/config"
	"github.com/guttosm/flock-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server)

	err := server.Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	application.Close(closeCtx)
	cancel()

	if err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
