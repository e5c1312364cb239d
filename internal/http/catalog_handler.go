package http

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/procurement/internal/model"
)

func (h *Handler) listMaterials(c *gin.Context) {
	c.JSON(http.StatusOK, model.Materials)
}

func (h *Handler) listFormTypes(c *gin.Context) {
	c.JSON(http.StatusOK, model.FormTypes)
}

// listManufacturingMethods returns the methods ordered by code.
func (h *Handler) listManufacturingMethods(c *gin.Context) {
	methods := make([]model.ManufacturingMethod, 0, len(model.ManufacturingMethods))
	for _, method := range model.ManufacturingMethods {
		methods = append(methods, method)
	}
	sort.Slice(methods, func(i, j int) bool {
		return methods[i].Code < methods[j].Code
	})
	c.JSON(http.StatusOK, methods)
}

func (h *Handler) listStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"project": model.ProjectStatuses,
		"part":    model.PartStatuses,
		"order":   model.OrderStatuses,
		"quote":   model.QuoteStatuses,
	})
}

func (h *Handler) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, model.Currencies)
}
