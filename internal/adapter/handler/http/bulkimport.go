package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/procuramart/backoffice/internal/core/domain"
)

type bulkImportRequest struct {
	Text string `json:"text" binding:"required"`
}

// ImportBulkLines accepts pasted "<qty> <code>" text. A partially
// failed import still answers 200 with the failures listed; an import
// that added nothing answers 422 with the same failure breakdown.
func (h *OrderHandler) ImportBulkLines(ctx *gin.Context) {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	var req bulkImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(ctx, err)
		return
	}

	result, err := h.service.ImportBulkLines(ctx, orderID, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrBulkImportFailed) && result != nil {
			ctx.JSON(http.StatusUnprocessableEntity, newImportResultResponse(result))
			return
		}
		h.handleError(ctx, err)
		return
	}

	h.handleSuccess(ctx, newImportResultResponse(result))
}
