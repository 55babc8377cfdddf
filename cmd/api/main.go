package main

import (
	"context"

	_ "oficina_assistant/docs"
	"oficina_assistant/internal/adapter/http/routes"
	"oficina_assistant/internal/infrastructure/config"
	"oficina_assistant/pkg/logging"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Oficina Assistant API
// @version         1.0
// @description     AI assistant and quote payments for multi-tenant auto repair shops.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	bootLog := logging.NewLogger("info")
	cfg, err := config.Load()
	if err != nil {
		bootLog.WithError(err).Fatal("[app] failed to load configuration")
	}

	logger := logging.NewLogger(cfg.LogLevel)
	if err := routes.Run(context.Background(), cfg, logger); err != nil {
		logger.WithError(err).Fatal("[app] server stopped")
	}
}
