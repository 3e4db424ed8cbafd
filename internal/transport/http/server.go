package http

import (
	"github.com/gin-gonic/gin"

	"letterforge/internal/ai"
	appsvc "letterforge/internal/app"
	"letterforge/internal/billing"
	"letterforge/internal/bootstrap"
	"letterforge/internal/platform/rabbitmq"
	"letterforge/internal/repository"
	"letterforge/internal/transport/http/handler"
	"letterforge/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	chain := ai.NewChain(
		ai.NewOpenAICompatibleClient(ai.OpenAIConfig{
			BaseURL: app.Config.LLM.BaseURL,
			APIKey:  app.Config.LLM.APIKey,
			Model:   app.Config.LLM.Model,
		}),
		ai.NewAnthropicClient(ai.AnthropicConfig{
			BaseURL: app.Config.Anthropic.BaseURL,
			APIKey:  app.Config.Anthropic.APIKey,
			Model:   app.Config.Anthropic.Model,
			Version: app.Config.Anthropic.Version,
		}),
	)

	letterService := appsvc.NewLetterService(
		app.Store,
		chain,
		app.Config.LLM.MaxTokens,
		app.Config.LLM.Temperature,
		app.Config.Letter.MinExplanationChars,
	)

	payments := billing.New(app.Config.Stripe, app.Config.App.BaseURL)

	var events *repository.BillingEventRepository
	if app.MySQL != nil {
		events = repository.NewBillingEventRepository(app.MySQL)
	}

	var dispatcher appsvc.EmailDispatcher
	switch {
	case app.MQConn != nil && app.Mailer != nil:
		dispatcher = rabbitmq.NewEmailPublisher(app.MQConn, app.Config.RabbitMQ.EmailSendQueue)
	case app.Mailer != nil:
		dispatcher = app.Mailer
	}

	billingService := appsvc.NewBillingService(app.Store, payments, events, dispatcher)

	var mailer appsvc.LetterMailer
	if app.Mailer != nil {
		mailer = app.Mailer
	}
	deliveryService := appsvc.NewDeliveryService(app.Store, mailer)

	letterHandler := handler.NewLetterHandler(letterService)
	documentHandler := handler.NewDocumentHandler(letterService)
	billingHandler := handler.NewBillingHandler(billingService, payments)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService)

	v1 := router.Group("/api/v1")
	v1.POST("/letters",
		middleware.RateLimit(app.Config.Letter.GenerateRPS, app.Config.Letter.GenerateBurst),
		letterHandler.Generate,
	)
	v1.GET("/documents/:id", documentHandler.Verify)
	v1.POST("/documents/:id/paid", documentHandler.MarkPaid)
	v1.DELETE("/documents/:id", documentHandler.Delete)
	v1.POST("/checkout", billingHandler.CreateCheckout)
	v1.POST("/billing/webhook", billingHandler.Webhook)
	v1.POST("/export/pdf", deliveryHandler.ExportPDF)
	v1.POST("/email", deliveryHandler.SendEmail)

	return router
}
