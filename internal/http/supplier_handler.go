package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/procurement/internal/scoring"
	"github.com/nurpe/procurement/internal/service"
)

type supplierRequest struct {
	Name            string   `json:"name" binding:"required"`
	ContactPerson   string   `json:"contact_person" binding:"required"`
	Email           string   `json:"email" binding:"required"`
	Phone           string   `json:"phone"`
	Address         string   `json:"address"`
	TaxID           string   `json:"tax_id"`
	Specializations []string `json:"specializations"`
	PaymentTerms    *int     `json:"payment_terms"`
	Notes           string   `json:"notes"`
}

func (r supplierRequest) toInput() service.SupplierInput {
	return service.SupplierInput{
		Name:            r.Name,
		ContactPerson:   r.ContactPerson,
		Email:           r.Email,
		Phone:           r.Phone,
		Address:         r.Address,
		TaxID:           r.TaxID,
		Specializations: r.Specializations,
		PaymentTerms:    r.PaymentTerms,
		Notes:           r.Notes,
	}
}

func (h *Handler) createSupplier(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	supplier, err := h.suppliers.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *Handler) listSuppliers(c *gin.Context) {
	suppliers, err := h.suppliers.List(c.Request.Context(), c.Query("specialization"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (h *Handler) getSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	supplier, err := h.suppliers.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *Handler) updateSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	supplier, err := h.suppliers.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *Handler) deleteSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.suppliers.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type performanceRequest struct {
	TotalOrders       int     `json:"total_orders"`
	OnTimeDeliveries  int     `json:"on_time_deliveries"`
	QualityRejections int     `json:"quality_rejections"`
	AveragePriceRatio float64 `json:"average_price_ratio" binding:"required"`
}

func (h *Handler) editSupplierPerformance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req performanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	supplier, err := h.suppliers.EditPerformance(c.Request.Context(), id, service.PerformanceEdit{
		TotalOrders:       req.TotalOrders,
		OnTimeDeliveries:  req.OnTimeDeliveries,
		QualityRejections: req.QualityRejections,
		AveragePriceRatio: req.AveragePriceRatio,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// computeSupplierScore scores arbitrary counters without touching storage.
func (h *Handler) computeSupplierScore(c *gin.Context) {
	var req scoring.PerformanceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	scores, err := h.suppliers.ComputeScore(req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}
