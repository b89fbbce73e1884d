package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/procuramart/backoffice/internal/core/domain"
)

func lineItemIDParam(ctx *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("item"))
	if err != nil {
		return uuid.Nil, domain.ErrBadRequest
	}
	return id, nil
}

type addLineItemRequest struct {
	ReferenceID uint64 `json:"referenceId" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
}

func (h *OrderHandler) AddLineItem(ctx *gin.Context) {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	var req addLineItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(ctx, err)
		return
	}

	item, err := h.service.AddLineItem(ctx, orderID, req.ReferenceID, req.Quantity)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	h.handleSuccessWithStatus(ctx, newLineItemResponse(*item), http.StatusCreated)
}

func (h *OrderHandler) RemoveLineItem(ctx *gin.Context) {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		h.handleError(ctx, err)
		return
	}
	itemID, err := lineItemIDParam(ctx)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	if err := h.service.RemoveLineItem(ctx, orderID, itemID); err != nil {
		h.handleError(ctx, err)
		return
	}

	h.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *OrderHandler) SetLineItemActive(ctx *gin.Context) {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		h.handleError(ctx, err)
		return
	}
	itemID, err := lineItemIDParam(ctx)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	var req setActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(ctx, err)
		return
	}

	if err := h.service.SetLineItemActive(ctx, orderID, itemID, *req.Active); err != nil {
		h.handleError(ctx, err)
		return
	}

	h.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}
