package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/procurement/internal/model"
	"github.com/nurpe/procurement/internal/repository"
	"github.com/nurpe/procurement/internal/service"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

type quoteRequestRequest struct {
	PartID              string   `json:"part_id" binding:"required"`
	SupplierIDs         []string `json:"supplier_ids" binding:"required"`
	ManufacturingMethod string   `json:"manufacturing_method" binding:"required"`
	Deadline            string   `json:"deadline" binding:"required"`
	Notes               string   `json:"notes"`
}

func (h *Handler) createQuoteRequest(c *gin.Context) {
	var req quoteRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	partID, err := uuid.Parse(strings.TrimSpace(req.PartID))
	if err != nil {
		h.badRequest(c, "invalid part_id")
		return
	}
	supplierIDs := make([]uuid.UUID, 0, len(req.SupplierIDs))
	for _, raw := range req.SupplierIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			h.badRequest(c, "invalid supplier_ids")
			return
		}
		supplierIDs = append(supplierIDs, id)
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		h.badRequest(c, "invalid deadline")
		return
	}

	request, err := h.quotes.CreateRequest(c.Request.Context(), service.QuoteRequestInput{
		PartID:              partID,
		SupplierIDs:         supplierIDs,
		ManufacturingMethod: strings.TrimSpace(req.ManufacturingMethod),
		Deadline:            deadline,
		Notes:               req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *Handler) listQuoteRequests(c *gin.Context) {
	partID, ok := queryID(c, "part_id")
	if !ok {
		return
	}
	filter := repository.QuoteRequestFilter{PartID: partID}
	if raw := c.Query("status"); raw != "" {
		s := model.QuoteStatus(raw)
		filter.Status = &s
	}
	requests, err := h.quotes.ListRequests(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) getQuoteRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	request, err := h.quotes.GetRequest(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) updateQuoteRequestStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	request, err := h.quotes.UpdateRequestStatus(c.Request.Context(), id, model.QuoteStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

type quoteResponseRequest struct {
	QuoteRequestID string  `json:"quote_request_id"`
	SupplierID     string  `json:"supplier_id"`
	UnitPrice      float64 `json:"unit_price" binding:"required"`
	TotalPrice     float64 `json:"total_price" binding:"required"`
	Currency       string  `json:"currency"`
	DeliveryDate   string  `json:"delivery_date" binding:"required"`
	PaymentTerms   *int    `json:"payment_terms"`
	Notes          string  `json:"notes"`
	Token          string  `json:"token"`
}

func (r quoteResponseRequest) toInput() (service.QuoteResponseInput, string) {
	delivery, err := parseDate(r.DeliveryDate)
	if err != nil {
		return service.QuoteResponseInput{}, "invalid delivery_date"
	}
	return service.QuoteResponseInput{
		UnitPrice:    r.UnitPrice,
		TotalPrice:   r.TotalPrice,
		Currency:     r.Currency,
		DeliveryDate: delivery,
		PaymentTerms: r.PaymentTerms,
		Notes:        r.Notes,
	}, ""
}

func (h *Handler) submitQuoteResponse(c *gin.Context) {
	var req quoteResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	input, problem := req.toInput()
	if problem != "" {
		h.badRequest(c, problem)
		return
	}
	requestID, err := uuid.Parse(strings.TrimSpace(req.QuoteRequestID))
	if err != nil {
		h.badRequest(c, "invalid quote_request_id")
		return
	}
	supplierID, err := uuid.Parse(strings.TrimSpace(req.SupplierID))
	if err != nil {
		h.badRequest(c, "invalid supplier_id")
		return
	}
	input.QuoteRequestID = requestID
	input.SupplierID = supplierID

	response, err := h.quotes.SubmitResponse(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// submitSupplierQuoteResponse is the supplier-facing endpoint. The access
// token comes from the Authorization header or the body.
func (h *Handler) submitSupplierQuoteResponse(c *gin.Context) {
	var req quoteResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		token = strings.TrimSpace(req.Token)
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing access token"})
		return
	}
	input, problem := req.toInput()
	if problem != "" {
		h.badRequest(c, problem)
		return
	}

	response, err := h.quotes.SubmitWithToken(c.Request.Context(), token, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// listQuoteResponses serves both /quote-requests/:id/responses and
// /quote-responses?quote_request_id=.
func (h *Handler) listQuoteResponses(c *gin.Context) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("quote_request_id")
	}
	requestID, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		h.badRequest(c, "invalid quote_request_id")
		return
	}
	responses, err := h.quotes.ListResponses(c.Request.Context(), requestID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

func (h *Handler) compareQuotes(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	comparison, err := h.quotes.CompareQuotes(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}

func (h *Handler) exportComparison(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.quotes.ExportComparison(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	attachment(c, contentTypeXLSX, result.FileName, result.Content)
}

func (h *Handler) exportComparisonPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.quotes.ExportComparisonPDF(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	attachment(c, contentTypePDF, result.FileName, result.Content)
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
