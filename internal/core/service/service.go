package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/procuramart/backoffice/internal/core/domain"
	"github.com/procuramart/backoffice/internal/core/port"
	"github.com/procuramart/backoffice/internal/core/utils"
	"go.uber.org/zap"
)

// Service is the facade over the order aggregate: status transitions,
// line item and quote management, quote comparison and bulk import.
// Every mutation goes through SaveOrder, which enforces the optimistic
// version check on the aggregate.
type Service struct {
	orders       port.OrderRepository
	users        port.UserRepository
	tokenService port.TokenService
	importer     port.BulkImporter
	logger       *zap.Logger
}

func NewService(orders port.OrderRepository, users port.UserRepository,
	tokenService port.TokenService, importer port.BulkImporter, logger *zap.Logger) (*Service, error) {
	return &Service{
		orders:       orders,
		users:        users,
		tokenService: tokenService,
		importer:     importer,
		logger:       logger,
	}, nil
}

func (s *Service) LoginUser(ctx context.Context, login string, password string) (string, error) {
	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.ErrInternal
	}

	err = utils.ComparePassword(password, user.Password)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(user)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	return token, nil
}

func (s *Service) CreateOrder(ctx context.Context, clientRef string) (*domain.Order, error) {
	now := time.Now()
	order := &domain.Order{
		ClientRef: clientRef,
		Status:    domain.OrderStatusNew,
		LineItems: []domain.LineItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	newOrder, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error("Create order", zap.Error(err))
		return nil, err
	}

	return newOrder, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID uint64) (*domain.Order, error) {
	return s.orders.ReadOrder(ctx, orderID)
}

func (s *Service) ListOrdersByClient(ctx context.Context, clientRef string) ([]*domain.Order, error) {
	list, err := s.orders.ListOrdersByClient(ctx, clientRef)
	if err != nil {
		s.logger.Error("List orders for client", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) ChangeStatus(ctx context.Context, orderID uint64,
	status domain.OrderStatus, reason string) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.ErrUnknownStatus
	}

	order, err := s.orders.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Transition(status, reason); err != nil {
		return nil, err
	}

	return s.save(ctx, order)
}

func (s *Service) AddLineItem(ctx context.Context, orderID uint64,
	referenceID uint64, quantity int) (*domain.LineItem, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	order, err := s.orders.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, domain.ErrOrderTerminal
	}

	item := domain.NewLineItem(referenceID, quantity)
	order.LineItems = append(order.LineItems, item)

	if _, err := s.save(ctx, order); err != nil {
		return nil, err
	}

	return &item, nil
}

func (s *Service) RemoveLineItem(ctx context.Context, orderID uint64, lineItemID uuid.UUID) error {
	order, err := s.orders.ReadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status.IsTerminal() {
		return domain.ErrOrderTerminal
	}

	for i := range order.LineItems {
		if order.LineItems[i].ID == lineItemID {
			order.LineItems = append(order.LineItems[:i], order.LineItems[i+1:]...)
			_, err := s.save(ctx, order)
			return err
		}
	}

	return domain.ErrLineItemNotFound
}

func (s *Service) SetLineItemActive(ctx context.Context, orderID uint64,
	lineItemID uuid.UUID, active bool) error {
	order, err := s.orders.ReadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status.IsTerminal() {
		return domain.ErrOrderTerminal
	}

	item := order.LineItem(lineItemID)
	if item == nil {
		return domain.ErrLineItemNotFound
	}

	item.Active = active
	_, err = s.save(ctx, order)
	return err
}

func (s *Service) AddQuote(ctx context.Context, orderID uint64,
	lineItemID uuid.UUID, quote domain.SupplierQuote) (*domain.SupplierQuote, error) {
	if quote.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	// cache the landed cost on the quote; this also rejects negative inputs
	total, err := domain.ComputeTotal(quote)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, domain.ErrOrderTerminal
	}

	item := order.LineItem(lineItemID)
	if item == nil {
		return nil, domain.ErrLineItemNotFound
	}

	quote.ID = uuid.New()
	quote.TotalCost = total
	item.Quotes = append(item.Quotes, quote)

	if _, err := s.save(ctx, order); err != nil {
		return nil, err
	}

	return &quote, nil
}

func (s *Service) RemoveQuote(ctx context.Context, orderID uint64,
	lineItemID uuid.UUID, quoteID uuid.UUID) error {
	order, err := s.orders.ReadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status.IsTerminal() {
		return domain.ErrOrderTerminal
	}

	item := order.LineItem(lineItemID)
	if item == nil {
		return domain.ErrLineItemNotFound
	}

	for i := range item.Quotes {
		if item.Quotes[i].ID == quoteID {
			item.Quotes = append(item.Quotes[:i], item.Quotes[i+1:]...)
			_, err := s.save(ctx, order)
			return err
		}
	}

	return domain.ErrQuoteNotFound
}

func (s *Service) CompareQuotes(ctx context.Context, orderID uint64,
	lineItemID uuid.UUID) (*port.QuoteComparison, error) {
	order, err := s.orders.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item := order.LineItem(lineItemID)
	if item == nil {
		return nil, domain.ErrLineItemNotFound
	}

	// the aggregator has the same guard, but the precondition belongs
	// to the facade contract
	if len(item.Quotes) < 2 {
		return nil, domain.ErrInsufficientQuotes
	}

	bestPrice, err := domain.BestPrice(item.Quotes)
	if err != nil {
		return nil, err
	}
	bestDelivery, err := domain.BestDelivery(item.Quotes)
	if err != nil {
		return nil, err
	}

	return &port.QuoteComparison{
		BestPrice:    bestPrice,
		BestDelivery: bestDelivery,
	}, nil
}

func (s *Service) ImportBulkLines(ctx context.Context, orderID uint64, text string) (*domain.ImportResult, error) {
	order, err := s.orders.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, domain.ErrOrderTerminal
	}
	if order.Status != domain.OrderStatusNew && order.Status != domain.OrderStatusSent {
		return nil, domain.ErrInvalidStateForBulkImport
	}

	result, err := s.importer.ImportLines(ctx, order, text)
	if err != nil {
		return result, err
	}

	if _, err := s.save(ctx, order); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	order.UpdatedAt = time.Now()

	saved, err := s.orders.SaveOrder(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrConcurrentModification) {
			return nil, err
		}
		s.logger.Error("Save order", zap.Uint64("order", order.ID), zap.Error(err))
		return nil, err
	}
	return saved, nil
}
