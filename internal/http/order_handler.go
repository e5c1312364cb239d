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

type orderRequest struct {
	QuoteResponseID  string `json:"quote_response_id" binding:"required"`
	Quantity         int    `json:"quantity" binding:"required"`
	ExpectedDelivery string `json:"expected_delivery"`
	Notes            string `json:"notes"`
}

func (h *Handler) createOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	responseID, err := uuid.Parse(strings.TrimSpace(req.QuoteResponseID))
	if err != nil {
		h.badRequest(c, "invalid quote_response_id")
		return
	}
	expected, err := parseOptionalDate(req.ExpectedDelivery)
	if err != nil {
		h.badRequest(c, "invalid expected_delivery")
		return
	}

	order, err := h.orders.Create(c.Request.Context(), service.OrderInput{
		QuoteResponseID:  responseID,
		Quantity:         req.Quantity,
		ExpectedDelivery: expected,
		Notes:            req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) listOrders(c *gin.Context) {
	supplierID, ok := queryID(c, "supplier_id")
	if !ok {
		return
	}
	filter := repository.OrderFilter{SupplierID: supplierID}
	if raw := c.Query("status"); raw != "" {
		s := model.OrderStatus(raw)
		filter.Status = &s
	}
	orders, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type orderStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	ActualDelivery string `json:"actual_delivery"`
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	actual, err := parseOptionalDate(req.ActualDelivery)
	if err != nil {
		h.badRequest(c, "invalid actual_delivery")
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, service.OrderStatusInput{
		Status:         model.OrderStatus(strings.TrimSpace(req.Status)),
		ActualDelivery: actual,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
