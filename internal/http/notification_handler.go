package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listNotifications(c *gin.Context) {
	var isRead *bool
	if raw := c.Query("is_read"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.badRequest(c, "invalid is_read")
			return
		}
		isRead = &parsed
	}
	notifications, err := h.notifications.List(c.Request.Context(), isRead)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) markNotificationRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.notifications.MarkRead(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "is_read": true})
}

func (h *Handler) markAllNotificationsRead(c *gin.Context) {
	updated, err := h.notifications.MarkAllRead(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
