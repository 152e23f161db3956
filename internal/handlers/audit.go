package handlers

import (
	"net/http"
	"strconv"

	"dayflow/internal/database"
	"dayflow/internal/httpx"
	"dayflow/internal/models"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs returns recent audit entries, newest first.
func ListAuditLogs(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	var logs []models.AuditLog
	err := database.DB.
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		httpx.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
