package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"oficina_assistant/internal/adapter/http/dto/response"
	"oficina_assistant/internal/adapter/http/middleware"
	"oficina_assistant/internal/usecase"
	"oficina_assistant/pkg"
)

//go:generate mockgen -destination=mocks/billing_payment_usecase_mock.go -package=mocks oficina_assistant/internal/usecase IBillingPaymentUseCase

// BillingPaymentHandler handles HTTP requests for quote payments.
type BillingPaymentHandler struct {
	usecase  usecase.IBillingPaymentUseCase
	mockMode bool
	log      *logrus.Entry
}

func NewBillingPaymentHandler(uc usecase.IBillingPaymentUseCase, mockMode bool, logger *logrus.Logger) *BillingPaymentHandler {
	return &BillingPaymentHandler{usecase: uc, mockMode: mockMode, log: logger.WithField("component", "billing_payment_handler")}
}

// CreateQuotePayment godoc
// @Summary      Charge a quote
// @Description  Charges the quote's pending amount through Mercado Pago. Only aprovada or concluida quotes can be charged.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        quote_id  path      string                       true  "Quote ID"
// @Param        request   body      request.QuotePaymentRequest  false "Mercado Pago payload"
// @Success      200       {object}  response.QuotePaymentResponse
// @Failure      400       {object}  pkg.HTTPError
// @Failure      404       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Router       /quotes/{quote_id}/payments [post]
func (h *BillingPaymentHandler) CreateQuotePayment(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	quoteID := c.Param("quote_id")
	log := h.log.WithFields(logrus.Fields{"tenant_id": tenantID, "quote_id": quoteID})

	mpPayload, err := readMPPayload(c)
	if err != nil {
		if !h.mockMode {
			log.WithError(err).Info("[payment][handler] invalid payload")
			appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		mpPayload = json.RawMessage("{}")
	}

	res, err := h.usecase.ChargeQuote(c.Request.Context(), tenantID, quoteID, mpPayload)
	if err != nil {
		log.WithError(err).Info("[payment][handler] charge failed")
		appErr := mapBillingPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentResult(res))
}

// GetQuotePayment godoc
// @Summary      Latest payment of a quote
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Param        quote_id  path      string  true  "Quote ID"
// @Success      200       {object}  response.BillingPaymentResponse
// @Failure      404       {object}  pkg.HTTPError
// @Router       /quotes/{quote_id}/payments [get]
func (h *BillingPaymentHandler) GetQuotePayment(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	quoteID := c.Param("quote_id")

	p, err := h.usecase.LatestByQuote(c.Request.Context(), tenantID, quoteID)
	if err != nil {
		appErr := mapBillingPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromBillingPayment(p))
}

// readMPPayload accepts either the raw Mercado Pago body or {"mp_payload": {...}}.
func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			trimmed := strings.TrimSpace(string(wrapped))
			if trimmed == "" || trimmed == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}
	return json.RawMessage(raw), nil
}

func mapBillingPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentQuoteID), errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotChargeable):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_CHARGEABLE", "Quote must be approved or completed", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteAlreadyPaid):
		return pkg.NewDomainErrorSimple("QUOTE_ALREADY_PAID", "Quote has no pending amount", http.StatusConflict)
	case errors.Is(err, usecase.ErrBillingPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
