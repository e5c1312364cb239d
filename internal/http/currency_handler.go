package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getCurrencyRates(c *gin.Context) {
	current, err := h.currency.Current(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, current)
}

type currencyRatesRequest struct {
	USDToTRY  float64 `json:"usd_to_try" binding:"required"`
	EURToTRY  float64 `json:"eur_to_try" binding:"required"`
	UpdatedBy string  `json:"updated_by"`
}

func (h *Handler) updateCurrencyRates(c *gin.Context) {
	var req currencyRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	rate, err := h.currency.Update(c.Request.Context(), req.USDToTRY, req.EURToTRY, req.UpdatedBy)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rate)
}
