package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/procurement/internal/model"
	"github.com/nurpe/procurement/internal/repository"
	"github.com/nurpe/procurement/internal/scoring"
)

const (
	ChannelInternal = "internal"
	ChannelSupplier = "supplier"
)

type QuoteService struct {
	quotes    QuoteRepository
	suppliers SupplierRepository
	parts     PartReader
	rates     CurrencyRepository
	tokens    QuoteTokenIssuer
	excel     ExcelGenerator
	pdf       PDFGenerator
	notifier  Notifier
	metrics   Recorder
	scoring   scoring.Config
	log       zerolog.Logger
}

type QuoteServiceDeps struct {
	Quotes    QuoteRepository
	Suppliers SupplierRepository
	Parts     PartReader
	Rates     CurrencyRepository
	Tokens    QuoteTokenIssuer
	Excel     ExcelGenerator
	PDF       PDFGenerator
	Notifier  Notifier
	Metrics   Recorder
	Scoring   scoring.Config
	Log       zerolog.Logger
}

type QuoteRequestInput struct {
	PartID              uuid.UUID
	SupplierIDs         []uuid.UUID
	ManufacturingMethod string
	Deadline            time.Time
	Notes               string
}

type QuoteResponseInput struct {
	QuoteRequestID uuid.UUID
	SupplierID     uuid.UUID
	UnitPrice      float64
	TotalPrice     float64
	Currency       string
	DeliveryDate   time.Time
	PaymentTerms   *int
	Notes          string
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func NewQuoteService(deps QuoteServiceDeps) *QuoteService {
	return &QuoteService{
		quotes:    deps.Quotes,
		suppliers: deps.Suppliers,
		parts:     deps.Parts,
		rates:     deps.Rates,
		tokens:    deps.Tokens,
		excel:     deps.Excel,
		pdf:       deps.PDF,
		notifier:  deps.Notifier,
		metrics:   deps.Metrics,
		scoring:   deps.Scoring,
		log:       deps.Log,
	}
}

// CreateRequest opens a quote request and issues one access token per invited
// supplier. Tokens are only returned here.
func (s *QuoteService) CreateRequest(ctx context.Context, input QuoteRequestInput) (*model.QuoteRequest, error) {
	supplierIDs := uniqueIDs(input.SupplierIDs)
	if len(supplierIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one supplier is required", ErrInvalidInput)
	}
	if _, ok := model.ManufacturingMethods[input.ManufacturingMethod]; !ok {
		return nil, fmt.Errorf("%w: unknown manufacturing method %q", ErrInvalidInput, input.ManufacturingMethod)
	}
	if input.Deadline.IsZero() {
		return nil, fmt.Errorf("%w: deadline is required", ErrInvalidInput)
	}

	part, err := s.parts.GetPart(ctx, input.PartID)
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return nil, fmt.Errorf("%w: part %s does not exist", ErrInvalidInput, input.PartID)
		}
		return nil, err
	}

	suppliers, err := s.suppliers.GetSuppliers(ctx, supplierIDs)
	if err != nil {
		return nil, err
	}
	if len(suppliers) != len(supplierIDs) {
		return nil, fmt.Errorf("%w: %d of %d suppliers do not exist", ErrInvalidInput, len(supplierIDs)-len(suppliers), len(supplierIDs))
	}

	request := &model.QuoteRequest{
		ID:                  uuid.New(),
		PartID:              part.ID,
		ManufacturingMethod: input.ManufacturingMethod,
		Deadline:            input.Deadline,
		Status:              model.QuoteStatusRequested,
		Notes:               input.Notes,
		CreatedAt:           time.Now().UTC(),
	}
	for _, supplierID := range supplierIDs {
		tokenID := uuid.New()
		token, err := s.tokens.Issue(request.ID, supplierID, tokenID)
		if err != nil {
			return nil, fmt.Errorf("issue access token: %w", err)
		}
		request.Invitations = append(request.Invitations, model.QuoteInvitation{
			QuoteRequestID: request.ID,
			SupplierID:     supplierID,
			TokenID:        tokenID,
			AccessToken:    token,
		})
	}

	if err := s.quotes.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, model.NotificationQuoteRequest,
		"Quote request sent",
		fmt.Sprintf("Quote request for part %s sent to %d suppliers", part.Code, len(supplierIDs)),
		"quote_request", request.ID)
	return request, nil
}

func (s *QuoteService) ListRequests(ctx context.Context, filter repository.QuoteRequestFilter) ([]model.QuoteRequest, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown quote status %q", ErrInvalidInput, *filter.Status)
	}
	return s.quotes.ListRequests(ctx, filter)
}

func (s *QuoteService) GetRequest(ctx context.Context, id uuid.UUID) (*model.QuoteRequest, error) {
	request, err := s.quotes.GetRequest(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return request, nil
}

func (s *QuoteService) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status model.QuoteStatus) (*model.QuoteRequest, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown quote status %q", ErrInvalidInput, status)
	}
	request, err := s.quotes.UpdateRequestStatus(ctx, id, func(request *model.QuoteRequest) error {
		if !request.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: quote request cannot move from %s to %s", ErrConflict, request.Status, status)
		}
		request.Status = status
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return request, nil
}

// SubmitResponse records a response entered by staff on a supplier's behalf.
func (s *QuoteService) SubmitResponse(ctx context.Context, input QuoteResponseInput) (*model.QuoteResponse, error) {
	return s.submit(ctx, input, nil, ChannelInternal)
}

// SubmitWithToken records a response sent by the supplier with its access
// token. Request and supplier come from the token, never from the body.
func (s *QuoteService) SubmitWithToken(ctx context.Context, rawToken string, input QuoteResponseInput) (*model.QuoteResponse, error) {
	claims, err := s.tokens.Parse(strings.TrimSpace(rawToken))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	tokenID, err := claims.TokenID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	input.QuoteRequestID = claims.QuoteRequestID
	input.SupplierID = claims.SupplierID
	return s.submit(ctx, input, &tokenID, ChannelSupplier)
}

func (s *QuoteService) submit(ctx context.Context, input QuoteResponseInput, tokenID *uuid.UUID, channel string) (*model.QuoteResponse, error) {
	currency, ok := model.ParseCurrency(input.Currency)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported currency %q", ErrInvalidInput, input.Currency)
	}
	if input.UnitPrice <= 0 || input.TotalPrice <= 0 {
		return nil, fmt.Errorf("%w: unit_price and total_price must be positive", ErrInvalidInput)
	}
	if input.PaymentTerms != nil && *input.PaymentTerms < 0 {
		return nil, fmt.Errorf("%w: payment_terms must not be negative", ErrInvalidInput)
	}
	if input.DeliveryDate.IsZero() {
		return nil, fmt.Errorf("%w: delivery_date is required", ErrInvalidInput)
	}

	request, err := s.quotes.GetRequest(ctx, input.QuoteRequestID)
	if err != nil {
		return nil, translate(err)
	}
	if request.Status.Closed() {
		return nil, fmt.Errorf("%w: quote request is %s", ErrConflict, request.Status)
	}
	invitation, ok := request.Invitation(input.SupplierID)
	if !ok {
		return nil, fmt.Errorf("%w: supplier %s was not invited", ErrInvalidInput, input.SupplierID)
	}
	if tokenID != nil {
		if invitation.TokenID != *tokenID {
			return nil, fmt.Errorf("%w: access token was replaced", ErrUnauthorized)
		}
		if invitation.UsedAt != nil {
			return nil, fmt.Errorf("%w: access token already used", ErrConflict)
		}
	}

	exists, err := s.quotes.ResponseExists(ctx, request.ID, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if exists {
		s.metrics.DuplicateResponseRejected()
		return nil, fmt.Errorf("%w: supplier already responded to this request", ErrConflict)
	}

	terms, err := s.paymentTerms(ctx, input)
	if err != nil {
		return nil, err
	}

	response := &model.QuoteResponse{
		ID:             uuid.New(),
		QuoteRequestID: request.ID,
		SupplierID:     input.SupplierID,
		UnitPrice:      input.UnitPrice,
		Currency:       currency,
		TotalPrice:     input.TotalPrice,
		DeliveryDate:   input.DeliveryDate,
		PaymentTerms:   terms,
		Status:         model.QuoteResponseReceived,
		Notes:          input.Notes,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.quotes.CreateResponse(ctx, response, tokenID); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateResponse):
			s.metrics.DuplicateResponseRejected()
			return nil, fmt.Errorf("%w: supplier already responded to this request", ErrConflict)
		case errors.Is(err, repository.ErrTokenUsed), errors.Is(err, repository.ErrRequestClosed):
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, translate(err)
	}

	s.metrics.QuoteResponseAccepted(channel)
	s.log.Info().
		Str("quote_request_id", request.ID.String()).
		Str("supplier_id", input.SupplierID.String()).
		Str("channel", channel).
		Msg("quote response received")
	s.notifier.Notify(ctx, model.NotificationQuote,
		"Quote received",
		fmt.Sprintf("A quote of %.2f %s was received", response.TotalPrice, response.Currency),
		"quote_response", response.ID)
	return response, nil
}

// paymentTerms falls back to the supplier's standing terms when the response
// does not state any.
func (s *QuoteService) paymentTerms(ctx context.Context, input QuoteResponseInput) (int, error) {
	if input.PaymentTerms != nil {
		return *input.PaymentTerms, nil
	}
	supplier, err := s.suppliers.GetSupplier(ctx, input.SupplierID)
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return model.DefaultPaymentTermsDays, nil
		}
		return 0, err
	}
	return supplier.PaymentTerms, nil
}

func (s *QuoteService) ListResponses(ctx context.Context, requestID uuid.UUID) ([]model.QuoteResponse, error) {
	if _, err := s.quotes.GetRequest(ctx, requestID); err != nil {
		return nil, translate(err)
	}
	return s.quotes.ListResponses(ctx, requestID)
}

// CompareQuotes ranks every response to the request. It reads only.
func (s *QuoteService) CompareQuotes(ctx context.Context, requestID uuid.UUID) (*model.QuoteComparison, error) {
	request, err := s.quotes.GetRequest(ctx, requestID)
	if err != nil {
		return nil, translate(err)
	}
	responses, err := s.quotes.ListResponses(ctx, requestID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(responses))
	for _, resp := range responses {
		ids = append(ids, resp.SupplierID)
	}
	var suppliers []model.Supplier
	if ids = uniqueIDs(ids); len(ids) > 0 {
		suppliers, err = s.suppliers.GetSuppliers(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	latest, err := s.rates.LatestRate(ctx)
	if err != nil {
		return nil, err
	}

	comparison := scoring.Compare(*request, responses, suppliers, latest, s.scoring)
	s.metrics.ComparisonComputed()
	return &comparison, nil
}

func (s *QuoteService) ExportComparison(ctx context.Context, requestID uuid.UUID) (*ExportResult, error) {
	comparison, err := s.CompareQuotes(ctx, requestID)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(*comparison)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: comparisonFileName(comparison, "xlsx"), Content: content}, nil
}

func (s *QuoteService) ExportComparisonPDF(ctx context.Context, requestID uuid.UUID) (*ExportResult, error) {
	comparison, err := s.CompareQuotes(ctx, requestID)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*comparison)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: comparisonFileName(comparison, "pdf"), Content: content}, nil
}

func comparisonFileName(comparison *model.QuoteComparison, ext string) string {
	method := sanitizeFileName(comparison.QuoteRequest.ManufacturingMethod)
	date := comparison.QuoteRequest.CreatedAt.Format("20060102")
	short := strings.SplitN(comparison.QuoteRequest.ID.String(), "-", 2)[0]
	return fmt.Sprintf("quote-comparison-%s-%s-%s.%s", method, date, short, ext)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	result := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
