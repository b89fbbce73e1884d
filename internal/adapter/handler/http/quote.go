package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/procuramart/backoffice/internal/core/domain"
)

type addQuoteRequest struct {
	SupplierRef   string `json:"supplierRef" binding:"required"`
	UnitCost      string `json:"unitCost" binding:"required"`
	MarginPercent string `json:"marginPercent"`
	Quantity      int    `json:"quantity" binding:"required"`
	DeliveryDays  int    `json:"deliveryDays"`
	Location      string `json:"location" binding:"required,oneof=DOMESTIC INTERNATIONAL"`
}

func (h *OrderHandler) AddQuote(ctx *gin.Context) {
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

	var req addQuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(ctx, err)
		return
	}

	unitCost, err := decimal.Parse(req.UnitCost)
	if err != nil {
		h.handleValidationError(ctx, err)
		return
	}
	margin := decimal.Zero
	if req.MarginPercent != "" {
		margin, err = decimal.Parse(req.MarginPercent)
		if err != nil {
			h.handleValidationError(ctx, err)
			return
		}
	}

	quote := domain.SupplierQuote{
		SupplierRef:   req.SupplierRef,
		UnitCost:      unitCost,
		MarginPercent: margin,
		Quantity:      req.Quantity,
		DeliveryDays:  req.DeliveryDays,
		Location:      domain.QuoteLocation(req.Location),
	}

	added, err := h.service.AddQuote(ctx, orderID, itemID, quote)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	h.handleSuccessWithStatus(ctx, newQuoteResponse(*added), http.StatusCreated)
}

func (h *OrderHandler) RemoveQuote(ctx *gin.Context) {
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
	quoteID, err := uuid.Parse(ctx.Param("quote"))
	if err != nil {
		h.handleError(ctx, domain.ErrBadRequest)
		return
	}

	if err := h.service.RemoveQuote(ctx, orderID, itemID, quoteID); err != nil {
		h.handleError(ctx, err)
		return
	}

	h.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}

func (h *OrderHandler) CompareQuotes(ctx *gin.Context) {
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

	cmp, err := h.service.CompareQuotes(ctx, orderID, itemID)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	h.handleSuccess(ctx, newComparisonResponse(cmp))
}
