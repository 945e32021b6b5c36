package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepmitra/mocktest-backend/internal/model"
	"github.com/prepmitra/mocktest-backend/internal/response"
	"github.com/prepmitra/mocktest-backend/internal/service"
	"github.com/prepmitra/mocktest-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  *service.AuthService
	adminService *service.AdminService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, adminService *service.AdminService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		adminService: adminService,
	}
}

// Login godoc
// POST /admin/login
// Validates email + password and returns a bearer token. Unknown email
// and wrong password are indistinguishable in the response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.AdminLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailMessage(c, http.StatusBadRequest, validator.Summarize(fields))
		return
	}

	admin, err := h.adminService.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	if err := h.authService.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	token, err := h.authService.GenerateAdminToken(admin.ID, admin.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"token": token})
}
