package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"
)

var (
	ErrBillingPaymentNotFound         = errors.New("billing payment not found")
	ErrInvalidPaymentQuoteID          = errors.New("invalid quote_id")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrQuoteNotFound                  = errors.New("quote not found")
	ErrQuoteNotChargeable             = errors.New("quote must be aprovada or concluida to be charged")
	ErrQuoteAlreadyPaid               = errors.New("quote has no pending amount")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentResult is a stored charge and the quote after it was applied.
type PaymentResult struct {
	Payment entities.BillingPayment
	Quote   entities.Quote
}

// IBillingPaymentUseCase charges a quote's pending amount through the
// payment gateway and keeps the quote's paid/pending totals in sync.
type IBillingPaymentUseCase interface {
	ChargeQuote(ctx context.Context, tenantID, quoteID string, mpPayload json.RawMessage) (PaymentResult, error)
	LatestByQuote(ctx context.Context, tenantID, quoteID string) (entities.BillingPayment, error)
}

type PaymentOptions struct {
	// MockMode relaxes payload validation; the gateway approves locally.
	MockMode bool
	// SandboxPayerEmail fills payer.email when the request carries no payer.
	SandboxPayerEmail string
}

type BillingPaymentUseCase struct {
	repo    interfaces.IBillingPaymentRepository
	quotes  interfaces.IQuoteRepository
	gateway interfaces.IPaymentGateway
	opts    PaymentOptions
	log     *logrus.Entry
	now     func() time.Time
}

var _ IBillingPaymentUseCase = (*BillingPaymentUseCase)(nil)

func NewBillingPaymentUseCase(
	repo interfaces.IBillingPaymentRepository,
	quotes interfaces.IQuoteRepository,
	gateway interfaces.IPaymentGateway,
	opts PaymentOptions,
	logger *logrus.Logger,
) *BillingPaymentUseCase {
	return &BillingPaymentUseCase{
		repo:    repo,
		quotes:  quotes,
		gateway: gateway,
		opts:    opts,
		log:     logger.WithField("component", "billing_payment_usecase"),
		now:     time.Now,
	}
}

func (u *BillingPaymentUseCase) ChargeQuote(ctx context.Context, tenantID, quoteID string, mpPayload json.RawMessage) (PaymentResult, error) {
	quoteID = strings.TrimSpace(quoteID)
	log := u.log.WithFields(logrus.Fields{"tenant_id": tenantID, "quote_id": quoteID})
	if quoteID == "" {
		return PaymentResult{}, ErrInvalidPaymentQuoteID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !u.opts.MockMode {
			log.Info("[payment][usecase] invalid payload")
			return PaymentResult{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil {
		return PaymentResult{}, ErrPaymentGatewayNotConfigured
	}

	q, err := u.quotes.GetByID(ctx, tenantID, quoteID)
	if err != nil {
		return PaymentResult{}, fmt.Errorf("load quote: %w", err)
	}
	if q.ID == "" {
		return PaymentResult{}, ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusAprovada && q.Status != entities.QuoteStatusConcluida {
		log.WithField("status", q.Status).Info("[payment][usecase] quote not chargeable")
		return PaymentResult{}, ErrQuoteNotChargeable
	}
	if q.AmountPending <= 0 {
		return PaymentResult{}, ErrQuoteAlreadyPaid
	}

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		return PaymentResult{}, ErrInvalidMPPayload
	}
	if !u.opts.MockMode {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Info("[payment][usecase] missing payment_method_id")
			return PaymentResult{}, ErrInvalidMPPayload
		}
		ensurePayerDefaults(reqMap, u.opts.SandboxPayerEmail)
		if !hasPayer(reqMap) {
			log.Info("[payment][usecase] missing payer")
			return PaymentResult{}, ErrInvalidMPPayload
		}
	}
	reqMap["external_reference"] = q.ID
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Orçamento %s", q.QuoteNumber)
	}
	// the charged amount always comes from the stored quote
	amount := q.AmountPending
	reqMap["transaction_amount"] = amount
	payload, err := json.Marshal(reqMap)
	if err != nil {
		return PaymentResult{}, fmt.Errorf("encode payment request: %w", err)
	}

	providerID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		log.WithError(err).Error("[payment][usecase] payment gateway failed")
		return PaymentResult{}, mapGatewayError(err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.WithError(err).Warn("[payment][usecase] provider response is not json")
	}

	now := u.now().UTC()
	p, err := u.repo.Create(ctx, entities.BillingPayment{
		ID:           providerID,
		TenantID:     tenantID,
		QuoteID:      q.ID,
		Amount:       amount,
		Date:         now,
		Status:       paymentStatusFromProvider(providerStatus),
		MPPayloadRaw: providerResp,
		MPPayload:    parsed,
	})
	if err != nil {
		log.WithError(err).WithField("payment_id", providerID).Error("[payment][usecase] payment repository create failed")
		return PaymentResult{}, err
	}

	if p.Status == entities.PaymentStatusAprovado {
		q.ApplyPayment(amount)
		q.UpdatedAt = now
		if q, err = u.quotes.UpdatePayment(ctx, q); err != nil {
			log.WithError(err).WithField("payment_id", p.ID).Error("[payment][usecase] quote update failed after approved payment")
			return PaymentResult{}, fmt.Errorf("update quote payment: %w", err)
		}
	}

	log.WithFields(logrus.Fields{
		"payment_id":     p.ID,
		"status":         p.Status,
		"amount":         amount,
		"payment_status": q.PaymentStatus,
	}).Info("[payment][usecase] quote charged")
	return PaymentResult{Payment: p, Quote: q}, nil
}

// LatestByQuote returns the most recent payment of a tenant's quote.
func (u *BillingPaymentUseCase) LatestByQuote(ctx context.Context, tenantID, quoteID string) (entities.BillingPayment, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.BillingPayment{}, ErrInvalidPaymentQuoteID
	}
	payments, err := u.repo.ListByQuoteID(ctx, tenantID, quoteID)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if len(payments) == 0 {
		return entities.BillingPayment{}, ErrBillingPaymentNotFound
	}
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].Date.After(payments[j].Date) })
	return payments[0], nil
}

func paymentStatusFromProvider(status string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "authorized":
		return entities.PaymentStatusAprovado
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusNegado
	default:
		return entities.PaymentStatusPendente
	}
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v)) != ""
}

func ensurePayerDefaults(m map[string]any, sandboxEmail string) {
	if m["payer"] == nil {
		m["payer"] = map[string]any{}
	}
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") && sandboxEmail != "" {
		payer["email"] = sandboxEmail
	}
}

func mapGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found"), strings.Contains(msg, `"code":2002`):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved"), strings.Contains(msg, `"code":2034`):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, `"error":"unauthorized"`), strings.Contains(msg, `"status":401`):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, `"error":"bad_request"`), strings.Contains(msg, `"status":400`):
		return ErrPaymentGatewayBadRequest
	}
	return err
}
