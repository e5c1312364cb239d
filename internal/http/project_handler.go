package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/procurement/internal/model"
	"github.com/nurpe/procurement/internal/repository"
	"github.com/nurpe/procurement/internal/service"
)

type projectRequest struct {
	Name         string `json:"name" binding:"required"`
	CustomerName string `json:"customer_name"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

func (r projectRequest) toInput() (service.ProjectInput, string) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return service.ProjectInput{}, "invalid start_date"
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return service.ProjectInput{}, "invalid end_date"
	}
	return service.ProjectInput{
		Name:         r.Name,
		CustomerName: r.CustomerName,
		StartDate:    start,
		EndDate:      end,
		Status:       model.ProjectStatus(r.Status),
		Notes:        r.Notes,
	}, ""
}

func (h *Handler) createProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	input, problem := req.toInput()
	if problem != "" {
		h.badRequest(c, problem)
		return
	}

	project, err := h.projects.CreateProject(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) listProjects(c *gin.Context) {
	var status *model.ProjectStatus
	if raw := c.Query("status"); raw != "" {
		s := model.ProjectStatus(raw)
		status = &s
	}
	projects, err := h.projects.ListProjects(c.Request.Context(), status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) getProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	project, err := h.projects.GetProject(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) updateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	input, problem := req.toInput()
	if problem != "" {
		h.badRequest(c, problem)
		return
	}

	project, err := h.projects.UpdateProject(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.projects.DeleteProject(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type partRequest struct {
	ProjectID            string                `json:"project_id"`
	Name                 string                `json:"name" binding:"required"`
	Code                 string                `json:"code" binding:"required"`
	Quantity             int                   `json:"quantity" binding:"required"`
	Material             string                `json:"material"`
	FormType             string                `json:"form_type"`
	Dimensions           *model.PartDimensions `json:"dimensions"`
	ManufacturingMethods []string              `json:"manufacturing_methods"`
	Status               string                `json:"status"`
	Notes                string                `json:"notes"`
}

func (r partRequest) toInput() service.PartInput {
	return service.PartInput{
		Name:                 r.Name,
		Code:                 r.Code,
		Quantity:             r.Quantity,
		Material:             r.Material,
		FormType:             r.FormType,
		Dimensions:           r.Dimensions,
		ManufacturingMethods: r.ManufacturingMethods,
		Status:               model.PartStatus(r.Status),
		Notes:                r.Notes,
	}
}

func (h *Handler) createPart(c *gin.Context) {
	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		h.badRequest(c, "invalid project_id")
		return
	}
	input := req.toInput()
	input.ProjectID = projectID

	part, err := h.projects.CreatePart(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, part)
}

func (h *Handler) listParts(c *gin.Context) {
	projectID, ok := queryID(c, "project_id")
	if !ok {
		return
	}
	filter := repository.PartFilter{ProjectID: projectID}
	if raw := c.Query("status"); raw != "" {
		s := model.PartStatus(raw)
		filter.Status = &s
	}
	parts, err := h.projects.ListParts(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (h *Handler) getPart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	part, err := h.projects.GetPart(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (h *Handler) updatePart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	part, err := h.projects.UpdatePart(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (h *Handler) deletePart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.projects.DeletePart(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
