package routes

import (
	"oficina_assistant/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes = "/quotes"
)

func addBillingRoutes(rg *gin.RouterGroup, paymentHandler *handlers.BillingPaymentHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("/:quote_id/payments", paymentHandler.CreateQuotePayment)
		quotes.GET("/:quote_id/payments", paymentHandler.GetQuotePayment)
	}
}
