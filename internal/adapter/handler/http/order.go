package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/procuramart/backoffice/internal/core/domain"
	"github.com/procuramart/backoffice/internal/core/port"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: Handler{logger: logger},
		service: service,
	}, nil
}

func orderIDParam(ctx *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("order"), 10, 64)
	if err != nil {
		return 0, domain.ErrBadRequest
	}
	return id, nil
}

type createOrderRequest struct {
	ClientRef string `json:"clientRef" binding:"required"`
}

func (h *OrderHandler) CreateOrder(ctx *gin.Context) {
	var req createOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(ctx, err)
		return
	}

	h.logger.Debug("create order",
		zap.Uint64("user", getAuthPayload(ctx).UserID),
		zap.String("client", req.ClientRef))

	order, err := h.service.CreateOrder(ctx, req.ClientRef)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	h.handleSuccessWithStatus(ctx, newOrderResponse(order), http.StatusCreated)
}

func (h *OrderHandler) GetOrder(ctx *gin.Context) {
	id, err := orderIDParam(ctx)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	order, err := h.service.GetOrder(ctx, id)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	h.handleSuccess(ctx, newOrderResponse(order))
}

func (h *OrderHandler) ListOrdersByClient(ctx *gin.Context) {
	clientRef := ctx.Query("client")
	if clientRef == "" {
		h.handleError(ctx, domain.ErrBadRequest)
		return
	}

	orders, err := h.service.ListOrdersByClient(ctx, clientRef)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	list := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		list = append(list, newOrderResponse(order))
	}

	h.handleSuccess(ctx, list)
}

type changeStatusRequest struct {
	Status          string `json:"status" binding:"required"`
	RejectionReason string `json:"rejectionReason"`
}

func (h *OrderHandler) ChangeStatus(ctx *gin.Context) {
	id, err := orderIDParam(ctx)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	var req changeStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(ctx, err)
		return
	}

	order, err := h.service.ChangeStatus(ctx, id,
		domain.OrderStatus(req.Status), req.RejectionReason)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	h.handleSuccess(ctx, newOrderResponse(order))
}
