package handler

import (
	"errors"
	"net/http"

	"pos-admin-gateway/internal/domains/auth/model"
	"pos-admin-gateway/internal/domains/auth/service"
	"pos-admin-gateway/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Handler handles authentication HTTP requests.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(s service.ServiceInterface) *Handler {
	return &Handler{service: s}
}

// Login handles POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	result, err := h.service.Login(req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			response.ErrorResponse(c, http.StatusUnauthorized, model.ErrCodeInvalidCredentials, err.Error())
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}
