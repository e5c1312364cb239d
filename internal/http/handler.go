package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/procurement/internal/http/middleware"
	"github.com/nurpe/procurement/internal/service"
)

type Services struct {
	Projects      *service.ProjectService
	Suppliers     *service.SupplierService
	Quotes        *service.QuoteService
	Orders        *service.OrderService
	Currency      *service.CurrencyService
	Notifications *service.NotificationService
}

type Handler struct {
	projects      *service.ProjectService
	suppliers     *service.SupplierService
	quotes        *service.QuoteService
	orders        *service.OrderService
	currency      *service.CurrencyService
	notifications *service.NotificationService
	log           zerolog.Logger
}

func NewHandler(services Services, log zerolog.Logger) *Handler {
	return &Handler{
		projects:      services.Projects,
		suppliers:     services.Suppliers,
		quotes:        services.Quotes,
		orders:        services.Orders,
		currency:      services.Currency,
		notifications: services.Notifications,
		log:           log,
	}
}

func (h *Handler) Register(router *gin.Engine) {
	api := router.Group("/api")

	catalog := api.Group("/catalog")
	catalog.GET("/materials", h.listMaterials)
	catalog.GET("/form-types", h.listFormTypes)
	catalog.GET("/manufacturing-methods", h.listManufacturingMethods)
	catalog.GET("/statuses", h.listStatuses)
	catalog.GET("/currencies", h.listCurrencies)

	api.POST("/projects", h.createProject)
	api.GET("/projects", h.listProjects)
	api.GET("/projects/:id", h.getProject)
	api.PUT("/projects/:id", h.updateProject)
	api.DELETE("/projects/:id", h.deleteProject)

	api.POST("/parts", h.createPart)
	api.GET("/parts", h.listParts)
	api.GET("/parts/:id", h.getPart)
	api.PUT("/parts/:id", h.updatePart)
	api.DELETE("/parts/:id", h.deletePart)

	api.POST("/suppliers", h.createSupplier)
	api.GET("/suppliers", h.listSuppliers)
	api.GET("/suppliers/:id", h.getSupplier)
	api.PUT("/suppliers/:id", h.updateSupplier)
	api.DELETE("/suppliers/:id", h.deleteSupplier)
	api.PUT("/suppliers/:id/performance", h.editSupplierPerformance)
	api.POST("/supplier-scores", h.computeSupplierScore)

	api.POST("/quote-requests", h.createQuoteRequest)
	api.GET("/quote-requests", h.listQuoteRequests)
	api.GET("/quote-requests/:id", h.getQuoteRequest)
	api.PUT("/quote-requests/:id/status", h.updateQuoteRequestStatus)
	api.GET("/quote-requests/:id/responses", h.listQuoteResponses)

	api.POST("/quote-responses", h.submitQuoteResponse)
	api.GET("/quote-responses", h.listQuoteResponses)
	api.POST("/public/quote-responses", h.submitSupplierQuoteResponse)

	api.GET("/quote-comparison/:id", h.compareQuotes)
	api.GET("/quote-comparison/:id/export", h.exportComparison)
	api.GET("/quote-comparison/:id/export/pdf", h.exportComparisonPDF)

	api.POST("/orders", h.createOrder)
	api.GET("/orders", h.listOrders)
	api.GET("/orders/:id", h.getOrder)
	api.PUT("/orders/:id/status", h.updateOrderStatus)

	api.GET("/currency-rates", h.getCurrencyRates)
	api.POST("/currency-rates", h.updateCurrencyRates)

	api.GET("/notifications", h.listNotifications)
	api.PUT("/notifications/read-all", h.markAllNotificationsRead)
	api.PUT("/notifications/:id/read", h.markNotificationRead)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional uuid query parameter.
func queryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	return &id, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

// parseOptionalDate treats an empty string as absent.
func parseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parsed, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func attachment(c *gin.Context, contentType, fileName string, content []byte) {
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, contentType, content)
}
