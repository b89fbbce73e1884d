package http

import (
	"github.com/gin-gonic/gin"
	"github.com/procuramart/backoffice/internal/core/port"
	"go.uber.org/zap"
)

type UserHandler struct {
	Handler
	service port.Service
}

func NewUserHandler(service port.Service, logger *zap.Logger) (*UserHandler, error) {
	return &UserHandler{
		Handler: Handler{logger: logger},
		service: service,
	}, nil
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *UserHandler) LoginUser(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(ctx, err)
		return
	}

	token, err := h.service.LoginUser(ctx, req.Login, req.Password)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	h.handleSuccess(ctx, loginResponse{Token: token})
}
