package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "oficina_assistant/docs"
	"oficina_assistant/internal/adapter/http/handlers"
	"oficina_assistant/internal/adapter/http/middleware"
	"oficina_assistant/internal/infrastructure/config"
	"oficina_assistant/internal/infrastructure/llm"
	"oficina_assistant/internal/infrastructure/payments"
	"oficina_assistant/internal/usecase"
	"oficina_assistant/internal/usecase/assistant"
	"oficina_assistant/internal/usecase/interfaces"
)

// Run will start the server
func Run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}

	router := newRouter(cfg, repos, logger)
	logger.WithField("port", cfg.Port).Info("[http][server] listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("failed to startup the application: %w", err)
	}
	return nil
}

// newRouter wires use cases and handlers on top of the given repositories.
func newRouter(cfg *config.Config, repos repositories, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, logger)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	executor := assistant.NewExecutor(repos.toolStore(), logger, assistant.ExecutorConfig{
		ToolTimeout: cfg.AI.ToolTimeout,
		Location:    cfg.Location(),
	})
	completion := llm.NewOpenAIClient(llm.Config{APIKey: cfg.AI.APIKey, BaseURL: cfg.AI.BaseURL}, logger)
	orchestrator := assistant.NewOrchestrator(completion, executor, assistant.OrchestratorConfig{
		Model:             cfg.AI.Model,
		MaxRounds:         cfg.AI.MaxRounds,
		ChatTimeout:       cfg.AI.ChatTimeout,
		CompletionTimeout: cfg.AI.CompletionTimeout,
		Location:          cfg.Location(),
	}, logger)
	meter := assistant.NewUsageMeter(repos.tenants, logger)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments.MercadoPagoAccessToken, cfg.Payments.MockEnabled(), logger)
	if err != nil {
		logger.WithError(err).Warn("[http][routes] Mercado Pago gateway not configured")
	} else {
		paymentGateway = mpGateway
	}
	paymentUseCase := usecase.NewBillingPaymentUseCase(repos.payments, repos.quotes, paymentGateway, usecase.PaymentOptions{
		MockMode:          cfg.Payments.MockEnabled(),
		SandboxPayerEmail: cfg.Payments.TestPayerEmail,
	}, logger)

	chatHandler := handlers.NewChatHandler(orchestrator, meter, logger)
	billingPaymentHandler := handlers.NewBillingPaymentHandler(paymentUseCase, cfg.Payments.MockEnabled(), logger)

	auth := middleware.TenantAuth(cfg.Auth.JWTSecret, logger)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)

	// Rotas autenticadas por tenant
	addAIRoutes(router.Group("", auth), chatHandler)
	addAIRoutes(v1.Group("", auth), chatHandler)
	addBillingRoutes(v1.Group("", auth), billingPaymentHandler)

	return router
}

func setMiddlewares(router *gin.Engine, logger *logrus.Logger) {
	router.Use(gin.Logger())
	router.Use(middleware.Metrics())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithField("panic", recovered).Error("[http][server] recovered from panic")
		c.AbortWithStatus(500)
	}))
}
