package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepmitra/mocktest-backend/internal/response"
)

// SystemHandler handles unauthenticated service endpoints.
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// Health godoc
// GET /
// Liveness check; never gated by authentication.
func (h *SystemHandler) Health(c *gin.Context) {
	response.OK(c, http.StatusOK, gin.H{
		"message": "Mock test admin service is running",
	})
}
