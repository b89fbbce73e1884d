package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusSent      OrderStatus = "SENT"
	OrderStatusCosting   OrderStatus = "COSTING"
	OrderStatusQuoted    OrderStatus = "QUOTED"
	OrderStatusApproved  OrderStatus = "APPROVED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusRejected  OrderStatus = "REJECTED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// MinRejectionReasonLen is the shortest rejection reason accepted on a
// transition to REJECTED.
const MinRejectionReasonLen = 10

type QuoteLocation string

const (
	LocationDomestic      QuoteLocation = "DOMESTIC"
	LocationInternational QuoteLocation = "INTERNATIONAL"
)

// Order is the aggregate root for one purchase order. Line items and
// their supplier quotes are owned by the order and persisted with it.
type Order struct {
	ID              uint64
	ClientRef       string
	Status          OrderStatus
	RejectionReason string
	LineItems       []LineItem
	Version         uint64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type LineItem struct {
	ID          uuid.UUID
	ReferenceID uint64
	Quantity    int
	Active      bool
	Quotes      []SupplierQuote
}

type SupplierQuote struct {
	ID            uuid.UUID
	SupplierRef   string
	UnitCost      decimal.Decimal
	MarginPercent decimal.Decimal
	Quantity      int
	DeliveryDays  int
	Location      QuoteLocation
	TotalCost     decimal.Decimal
}

// NewLineItem builds an active line item for a catalog reference.
func NewLineItem(referenceID uint64, quantity int) LineItem {
	return LineItem{
		ID:          uuid.New(),
		ReferenceID: referenceID,
		Quantity:    quantity,
		Active:      true,
		Quotes:      []SupplierQuote{},
	}
}

// LineItem returns a pointer into the order's line item slice, so
// mutations through it are visible on the aggregate.
func (o *Order) LineItem(id uuid.UUID) *LineItem {
	for i := range o.LineItems {
		if o.LineItems[i].ID == id {
			return &o.LineItems[i]
		}
	}
	return nil
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusRejected || s == OrderStatusCancelled
}

func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusNew:       {OrderStatusSent, OrderStatusCosting, OrderStatusCancelled},
	OrderStatusSent:      {OrderStatusCosting, OrderStatusCancelled},
	OrderStatusCosting:   {OrderStatusQuoted, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusQuoted:    {OrderStatusApproved, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusApproved:  {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusRejected:  {},
	OrderStatusCancelled: {},
}

// AllowedTransitions returns the destination set for a status.
func AllowedTransitions(from OrderStatus) []OrderStatus {
	return allowedTransitions[from]
}

// Transition moves the order to newStatus, enforcing the transition
// table. A transition to the current status is a no-op success and
// leaves the order untouched. A transition to REJECTED requires a
// reason of at least MinRejectionReasonLen characters; the reason is
// cleared when the destination is any other status.
func (o *Order) Transition(newStatus OrderStatus, reason string) error {
	if newStatus == o.Status {
		return nil
	}

	allowed := allowedTransitions[o.Status]
	found := false
	for _, s := range allowed {
		if s == newStatus {
			found = true
			break
		}
	}
	if !found {
		return &InvalidTransitionError{From: o.Status, To: newStatus, Allowed: allowed}
	}

	if newStatus == OrderStatusRejected {
		if len(reason) < MinRejectionReasonLen {
			return ErrMissingRejectionReason
		}
		o.RejectionReason = reason
	} else {
		o.RejectionReason = ""
	}

	o.Status = newStatus
	o.UpdatedAt = time.Now()

	return nil
}
