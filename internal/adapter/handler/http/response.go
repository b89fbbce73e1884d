package http

import (
	"fmt"
	"time"

	"github.com/govalues/decimal"
	"github.com/procuramart/backoffice/internal/core/domain"
	"github.com/procuramart/backoffice/internal/core/port"
)

type jsonDecimal decimal.Decimal

func (j jsonDecimal) MarshalJSON() ([]byte, error) {
	s := fmt.Sprintf("%f", decimal.Decimal(j))
	return []byte(s), nil
}

type quoteResponse struct {
	ID            string      `json:"id"`
	SupplierRef   string      `json:"supplierRef"`
	UnitCost      jsonDecimal `json:"unitCost"`
	MarginPercent jsonDecimal `json:"marginPercent"`
	Quantity      int         `json:"quantity"`
	DeliveryDays  int         `json:"deliveryDays"`
	Location      string      `json:"location"`
	TotalCost     jsonDecimal `json:"totalCost"`
}

type lineItemResponse struct {
	ID          string          `json:"id"`
	ReferenceID uint64          `json:"referenceId"`
	Quantity    int             `json:"quantity"`
	Active      bool            `json:"active"`
	Quotes      []quoteResponse `json:"quotes"`
}

type orderResponse struct {
	ID              uint64             `json:"id"`
	ClientRef       string             `json:"clientRef"`
	Status          string             `json:"status"`
	RejectionReason string             `json:"rejectionReason,omitempty"`
	LineItems       []lineItemResponse `json:"lineItems"`
	Version         uint64             `json:"version"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

type comparisonResponse struct {
	BestPrice    quoteResponse `json:"bestPrice"`
	BestDelivery quoteResponse `json:"bestDelivery"`
}

type importFailureResponse struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

type importResultResponse struct {
	Added    int                     `json:"addedLineItems"`
	Failures []importFailureResponse `json:"failures"`
}

func newQuoteResponse(q domain.SupplierQuote) quoteResponse {
	return quoteResponse{
		ID:            q.ID.String(),
		SupplierRef:   q.SupplierRef,
		UnitCost:      jsonDecimal(q.UnitCost),
		MarginPercent: jsonDecimal(q.MarginPercent),
		Quantity:      q.Quantity,
		DeliveryDays:  q.DeliveryDays,
		Location:      string(q.Location),
		TotalCost:     jsonDecimal(q.TotalCost),
	}
}

func newLineItemResponse(item domain.LineItem) lineItemResponse {
	quotes := make([]quoteResponse, 0, len(item.Quotes))
	for _, q := range item.Quotes {
		quotes = append(quotes, newQuoteResponse(q))
	}
	return lineItemResponse{
		ID:          item.ID.String(),
		ReferenceID: item.ReferenceID,
		Quantity:    item.Quantity,
		Active:      item.Active,
		Quotes:      quotes,
	}
}

func newOrderResponse(order *domain.Order) orderResponse {
	items := make([]lineItemResponse, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		items = append(items, newLineItemResponse(item))
	}
	return orderResponse{
		ID:              order.ID,
		ClientRef:       order.ClientRef,
		Status:          string(order.Status),
		RejectionReason: order.RejectionReason,
		LineItems:       items,
		Version:         order.Version,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func newComparisonResponse(cmp *port.QuoteComparison) comparisonResponse {
	return comparisonResponse{
		BestPrice:    newQuoteResponse(cmp.BestPrice),
		BestDelivery: newQuoteResponse(cmp.BestDelivery),
	}
}

func newImportResultResponse(result *domain.ImportResult) importResultResponse {
	failures := make([]importFailureResponse, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, importFailureResponse{Code: f.Code, Reason: f.Reason})
	}
	return importResultResponse{
		Added:    result.Added,
		Failures: failures,
	}
}
