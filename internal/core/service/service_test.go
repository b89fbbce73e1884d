package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/procuramart/backoffice/internal/core/bulk"
	"github.com/procuramart/backoffice/internal/core/domain"
	"github.com/procuramart/backoffice/internal/core/port/mock"
	"github.com/procuramart/backoffice/internal/core/service"
	"github.com/procuramart/backoffice/internal/core/utils"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type prepareMocks func(orders *mock.MockOrderRepository)

const goodReason = "Missing required documentation"

func testOrder(status domain.OrderStatus, items ...domain.LineItem) *domain.Order {
	return &domain.Order{
		ID:        42,
		ClientRef: "client-1",
		Status:    status,
		LineItems: items,
		Version:   3,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func testQuote(unitCost string, days int) domain.SupplierQuote {
	return domain.SupplierQuote{
		SupplierRef:   "SUP-1",
		UnitCost:      decimal.MustParse(unitCost),
		MarginPercent: decimal.MustParse("10"),
		Quantity:      2,
		DeliveryDays:  days,
		Location:      domain.LocationDomestic,
	}
}

func newTestService(t *testing.T, mockCtrl *gomock.Controller,
	orders *mock.MockOrderRepository, resolver *mock.MockCatalogResolver) *service.Service {
	t.Helper()

	logger, _ := zap.NewProduction()

	users := mock.NewMockUserRepository(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)

	if resolver == nil {
		resolver = mock.NewMockCatalogResolver(mockCtrl)
	}
	importer, err := bulk.NewImporter(resolver, logger)
	assert.NoError(t, err)

	s, err := service.NewService(orders, users, ts, importer, logger)
	assert.NoError(t, err)
	return s
}

func TestService_ChangeStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	tests := []struct {
		name      string
		newStatus domain.OrderStatus
		reason    string
		mock      prepareMocks
		expError  error
		expStatus domain.OrderStatus
	}{
		{
			name:      "new to sent",
			newStatus: domain.OrderStatusSent,
			mock: func(orders *mock.MockOrderRepository) {
				orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
					Return(testOrder(domain.OrderStatusNew), nil)
				orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						return o, nil
					})
			},
			expStatus: domain.OrderStatusSent,
		},
		{
			name:      "self transition saves nothing new",
			newStatus: domain.OrderStatusNew,
			mock: func(orders *mock.MockOrderRepository) {
				orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
					Return(testOrder(domain.OrderStatusNew), nil)
				orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						return o, nil
					})
			},
			expStatus: domain.OrderStatusNew,
		},
		{
			name:      "invalid transition not persisted",
			newStatus: domain.OrderStatusDelivered,
			mock: func(orders *mock.MockOrderRepository) {
				orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
					Return(testOrder(domain.OrderStatusNew), nil)
			},
			expError: domain.ErrInvalidTransition,
		},
		{
			name:      "rejection without reason",
			newStatus: domain.OrderStatusRejected,
			reason:    "short",
			mock: func(orders *mock.MockOrderRepository) {
				orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
					Return(testOrder(domain.OrderStatusCosting), nil)
			},
			expError: domain.ErrMissingRejectionReason,
		},
		{
			name:      "rejection with reason",
			newStatus: domain.OrderStatusRejected,
			reason:    goodReason,
			mock: func(orders *mock.MockOrderRepository) {
				orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
					Return(testOrder(domain.OrderStatusCosting), nil)
				orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						return o, nil
					})
			},
			expStatus: domain.OrderStatusRejected,
		},
		{
			name:      "unknown status rejected before load",
			newStatus: domain.OrderStatus("SHIPPED"),
			mock:      func(orders *mock.MockOrderRepository) {},
			expError:  domain.ErrUnknownStatus,
		},
		{
			name:      "version conflict surfaces",
			newStatus: domain.OrderStatusSent,
			mock: func(orders *mock.MockOrderRepository) {
				orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
					Return(testOrder(domain.OrderStatusNew), nil)
				orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrConcurrentModification)
			},
			expError: domain.ErrConcurrentModification,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			orders := mock.NewMockOrderRepository(mockCtrl)
			test.mock(orders)

			s := newTestService(t, mockCtrl, orders, nil)

			result, err := s.ChangeStatus(context.Background(), 42, test.newStatus, test.reason)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expStatus, result.Status)
			if test.expStatus == domain.OrderStatusRejected {
				assert.Equal(t, test.reason, result.RejectionReason)
			} else {
				assert.Empty(t, result.RejectionReason)
			}
		})
	}
}

func TestService_AddLineItem(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	tests := []struct {
		name     string
		quantity int
		mock     prepareMocks
		expError error
	}{
		{
			name:     "quantity below one rejected without load",
			quantity: 0,
			mock:     func(orders *mock.MockOrderRepository) {},
			expError: domain.ErrInvalidQuantity,
		},
		{
			name:     "terminal order rejected",
			quantity: 3,
			mock: func(orders *mock.MockOrderRepository) {
				orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
					Return(testOrder(domain.OrderStatusCancelled), nil)
			},
			expError: domain.ErrOrderTerminal,
		},
		{
			name:     "added to open order",
			quantity: 3,
			mock: func(orders *mock.MockOrderRepository) {
				orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
					Return(testOrder(domain.OrderStatusSent), nil)
				orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						return o, nil
					})
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			orders := mock.NewMockOrderRepository(mockCtrl)
			test.mock(orders)

			s := newTestService(t, mockCtrl, orders, nil)

			item, err := s.AddLineItem(context.Background(), 42, 7, test.quantity)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, item)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, uint64(7), item.ReferenceID)
			assert.Equal(t, test.quantity, item.Quantity)
			assert.True(t, item.Active)
		})
	}
}

func TestService_AddRemoveQuote(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	lineID := uuid.New()
	quoteID := uuid.New()

	itemWithQuote := func() domain.LineItem {
		q := testQuote("10", 4)
		q.ID = quoteID
		return domain.LineItem{ID: lineID, ReferenceID: 7, Quantity: 2, Active: true,
			Quotes: []domain.SupplierQuote{q}}
	}

	t.Run("add to unknown line item", func(t *testing.T) {
		orders := mock.NewMockOrderRepository(mockCtrl)
		orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
			Return(testOrder(domain.OrderStatusCosting), nil)

		s := newTestService(t, mockCtrl, orders, nil)

		_, err := s.AddQuote(context.Background(), 42, lineID, testQuote("10", 4))
		assert.ErrorIs(t, err, domain.ErrLineItemNotFound)
	})

	t.Run("add to terminal order", func(t *testing.T) {
		orders := mock.NewMockOrderRepository(mockCtrl)
		orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
			Return(testOrder(domain.OrderStatusDelivered, itemWithQuote()), nil)

		s := newTestService(t, mockCtrl, orders, nil)

		_, err := s.AddQuote(context.Background(), 42, lineID, testQuote("10", 4))
		assert.ErrorIs(t, err, domain.ErrOrderTerminal)
	})

	t.Run("negative cost rejected before load", func(t *testing.T) {
		orders := mock.NewMockOrderRepository(mockCtrl)

		s := newTestService(t, mockCtrl, orders, nil)

		bad := testQuote("10", 4)
		bad.UnitCost = decimal.MustParse("-5")
		_, err := s.AddQuote(context.Background(), 42, lineID, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidQuoteInput)
	})

	t.Run("add caches landed cost", func(t *testing.T) {
		orders := mock.NewMockOrderRepository(mockCtrl)
		orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
			Return(testOrder(domain.OrderStatusCosting, itemWithQuote()), nil)
		orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
				return o, nil
			})

		s := newTestService(t, mockCtrl, orders, nil)

		// 10 * 2 * 1.10 = 22
		added, err := s.AddQuote(context.Background(), 42, lineID, testQuote("10", 4))
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, added.ID)
		assert.Zero(t, added.TotalCost.Cmp(decimal.MustParse("22")))
	})

	t.Run("remove unknown quote", func(t *testing.T) {
		orders := mock.NewMockOrderRepository(mockCtrl)
		orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
			Return(testOrder(domain.OrderStatusCosting, itemWithQuote()), nil)

		s := newTestService(t, mockCtrl, orders, nil)

		err := s.RemoveQuote(context.Background(), 42, lineID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrQuoteNotFound)
	})

	t.Run("remove existing quote", func(t *testing.T) {
		orders := mock.NewMockOrderRepository(mockCtrl)
		orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
			Return(testOrder(domain.OrderStatusCosting, itemWithQuote()), nil)
		orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
				assert.Empty(t, o.LineItems[0].Quotes)
				return o, nil
			})

		s := newTestService(t, mockCtrl, orders, nil)

		err := s.RemoveQuote(context.Background(), 42, lineID, quoteID)
		assert.NoError(t, err)
	})
}

func TestService_CompareQuotes(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	lineID := uuid.New()

	cheapSlow := testQuote("10", 20)
	cheapSlow.ID = uuid.New()
	pricyFast := testQuote("50", 2)
	pricyFast.ID = uuid.New()

	t.Run("single quote is not comparable", func(t *testing.T) {
		orders := mock.NewMockOrderRepository(mockCtrl)
		orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
			Return(testOrder(domain.OrderStatusCosting, domain.LineItem{
				ID: lineID, Quantity: 1, Active: true,
				Quotes: []domain.SupplierQuote{cheapSlow},
			}), nil)

		s := newTestService(t, mockCtrl, orders, nil)

		_, err := s.CompareQuotes(context.Background(), 42, lineID)
		assert.ErrorIs(t, err, domain.ErrInsufficientQuotes)
	})

	t.Run("best price and best delivery reported", func(t *testing.T) {
		orders := mock.NewMockOrderRepository(mockCtrl)
		orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
			Return(testOrder(domain.OrderStatusCosting, domain.LineItem{
				ID: lineID, Quantity: 1, Active: true,
				Quotes: []domain.SupplierQuote{cheapSlow, pricyFast},
			}), nil)

		s := newTestService(t, mockCtrl, orders, nil)

		cmp, err := s.CompareQuotes(context.Background(), 42, lineID)
		assert.NoError(t, err)
		assert.Equal(t, cheapSlow.ID, cmp.BestPrice.ID)
		assert.Equal(t, pricyFast.ID, cmp.BestDelivery.ID)
	})
}

func TestService_ImportBulkLines(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("terminal order", func(t *testing.T) {
		orders := mock.NewMockOrderRepository(mockCtrl)
		orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
			Return(testOrder(domain.OrderStatusRejected), nil)

		s := newTestService(t, mockCtrl, orders, nil)

		_, err := s.ImportBulkLines(context.Background(), 42, "5 ABC-100")
		assert.ErrorIs(t, err, domain.ErrOrderTerminal)
	})

	t.Run("costing order not eligible", func(t *testing.T) {
		orders := mock.NewMockOrderRepository(mockCtrl)
		orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
			Return(testOrder(domain.OrderStatusCosting), nil)

		s := newTestService(t, mockCtrl, orders, nil)

		_, err := s.ImportBulkLines(context.Background(), 42, "5 ABC-100")
		assert.ErrorIs(t, err, domain.ErrInvalidStateForBulkImport)
	})

	t.Run("partial import persisted as success", func(t *testing.T) {
		orders := mock.NewMockOrderRepository(mockCtrl)
		orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
			Return(testOrder(domain.OrderStatusSent), nil)
		orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
				assert.Len(t, o.LineItems, 1)
				return o, nil
			})

		resolver := mock.NewMockCatalogResolver(mockCtrl)
		resolver.EXPECT().Resolve(gomock.Any(), "ABC-100").
			Return(&domain.CatalogReference{ID: 1, Code: "ABC-100"}, nil)
		resolver.EXPECT().Resolve(gomock.Any(), "XYZ-9").
			Return(nil, domain.ErrCatalogCreate)

		s := newTestService(t, mockCtrl, orders, resolver)

		result, err := s.ImportBulkLines(context.Background(), 42, "5 ABC-100\n3 XYZ-9")
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Added)
		assert.Len(t, result.Failures, 1)
	})

	t.Run("no valid lines leaves order untouched", func(t *testing.T) {
		orders := mock.NewMockOrderRepository(mockCtrl)
		orders.EXPECT().ReadOrder(gomock.Any(), uint64(42)).
			Return(testOrder(domain.OrderStatusNew), nil)

		s := newTestService(t, mockCtrl, orders, nil)

		_, err := s.ImportBulkLines(context.Background(), 42, "garbage\n\n")
		assert.ErrorIs(t, err, domain.ErrNoValidLines)
	})
}

func TestService_LoginUser(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{ID: 1, Login: "test", Password: hashedPass}

	tests := []struct {
		name     string
		login    string
		password string
		mock     func(users *mock.MockUserRepository, ts *mock.MockTokenService)
		expError error
	}{
		{
			name:     "login good",
			login:    "test",
			password: "test",
			mock: func(users *mock.MockUserRepository, ts *mock.MockTokenService) {
				users.EXPECT().GetUserByLogin(gomock.Any(), "test").Return(&user, nil)
				ts.EXPECT().CreateToken(&user).Return("token", nil)
			},
		},
		{
			name:     "password bad",
			login:    "test",
			password: "hacker",
			mock: func(users *mock.MockUserRepository, ts *mock.MockTokenService) {
				users.EXPECT().GetUserByLogin(gomock.Any(), "test").Return(&user, nil)
			},
			expError: domain.ErrInvalidCredentials,
		},
		{
			name:     "login bad",
			login:    "hacker",
			password: "test",
			mock: func(users *mock.MockUserRepository, ts *mock.MockTokenService) {
				users.EXPECT().GetUserByLogin(gomock.Any(), "hacker").
					Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrInvalidCredentials,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			orders := mock.NewMockOrderRepository(mockCtrl)
			users := mock.NewMockUserRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			resolver := mock.NewMockCatalogResolver(mockCtrl)
			test.mock(users, ts)

			importer, err := bulk.NewImporter(resolver, logger)
			assert.NoError(t, err)

			s, err := service.NewService(orders, users, ts, importer, logger)
			assert.NoError(t, err)

			token, err := s.LoginUser(context.Background(), test.login, test.password)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Empty(t, token)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "token", token)
		})
	}
}
