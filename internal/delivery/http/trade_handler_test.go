package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bricsbtc/internal/domain"
	"bricsbtc/internal/repository"
	"bricsbtc/internal/usecase"
)

type stubTradeRepo struct {
	trade    *domain.TradeDetail
	statuses []string
}

func (s *stubTradeRepo) Create(_ context.Context, _ *domain.Trade) error { return nil }

func (s *stubTradeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.TradeDetail, error) {
	if s.trade != nil && s.trade.ID == id {
		return s.trade, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubTradeRepo) GetByUser(_ context.Context, _ uuid.UUID, _ int) ([]*domain.Trade, error) {
	return nil, nil
}

func (s *stubTradeRepo) GetAll(_ context.Context) ([]*domain.TradeDetail, error) { return nil, nil }

func (s *stubTradeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	if s.trade == nil || s.trade.ID != id {
		return repository.ErrNotFound
	}
	s.trade.Status = status
	s.statuses = append(s.statuses, status)
	return nil
}

func (s *stubTradeRepo) ExpirePastWindow(_ context.Context) (int64, error) { return 0, nil }

func (s *stubTradeRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type stubNotificationRepo struct {
	notifications []*domain.Notification
}

func (s *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	s.notifications = append(s.notifications, n)
	return nil
}

func (s *stubNotificationRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubNotificationRepo) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *stubNotificationRepo) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	for _, n := range s.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func newStatusContext(e *echo.Echo, tradeID, userID uuid.UUID, role, status string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"status":"`+status+`"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(tradeID.String())
	c.Set("user_id", userID)
	c.Set("role", role)
	return c, rec
}

func TestTradeHandler_UpdateStatus(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()
	strangerID := uuid.New()
	adminID := uuid.New()
	tradeID := uuid.New()

	newTrade := func() *domain.TradeDetail {
		return &domain.TradeDetail{
			Trade: domain.Trade{
				ID:                   tradeID,
				BuyerID:              buyerID,
				AmountUSD:            100,
				AmountCrypto:         0.001,
				Status:               domain.TradePendingPayment,
				PaymentWindowMinutes: 60,
				CreatedAt:            time.Now(),
			},
			Offer: &domain.OfferDetail{
				Offer:  domain.Offer{UserID: sellerID},
				Crypto: &domain.Crypto{Symbol: "BTC"},
			},
		}
	}

	tests := []struct {
		name       string
		userID     uuid.UUID
		role       string
		status     string
		wantCode   int
		wantStatus string
	}{
		{
			name:       "stranger cannot complete another user's trade",
			userID:     strangerID,
			role:       domain.RoleUser,
			status:     domain.TradeCompleted,
			wantCode:   http.StatusForbidden,
			wantStatus: domain.TradePendingPayment,
		},
		{
			name:       "stranger cannot confirm payment on another user's trade",
			userID:     strangerID,
			role:       domain.RoleUser,
			status:     domain.TradePaid,
			wantCode:   http.StatusForbidden,
			wantStatus: domain.TradePendingPayment,
		},
		{
			name:       "buyer can confirm payment",
			userID:     buyerID,
			role:       domain.RoleUser,
			status:     domain.TradePaid,
			wantCode:   http.StatusOK,
			wantStatus: domain.TradePaid,
		},
		{
			name:       "buyer cannot complete their own trade",
			userID:     buyerID,
			role:       domain.RoleUser,
			status:     domain.TradeCompleted,
			wantCode:   http.StatusForbidden,
			wantStatus: domain.TradePendingPayment,
		},
		{
			name:       "buyer cannot cancel their own trade",
			userID:     buyerID,
			role:       domain.RoleUser,
			status:     domain.TradeCancelled,
			wantCode:   http.StatusForbidden,
			wantStatus: domain.TradePendingPayment,
		},
		{
			name:       "admin can complete any trade",
			userID:     adminID,
			role:       domain.RoleAdmin,
			status:     domain.TradeCompleted,
			wantCode:   http.StatusOK,
			wantStatus: domain.TradeCompleted,
		},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trades := &stubTradeRepo{trade: newTrade()}
			notifications := &stubNotificationRepo{}
			svc := usecase.NewTradeService(nil, trades, nil, notifications, 60)
			h := NewTradeHandler(svc, trades)

			c, rec := newStatusContext(e, tradeID, tt.userID, tt.role, tt.status)
			if err := h.UpdateStatus(c); err != nil {
				t.Fatalf("UpdateStatus() error = %v", err)
			}

			if rec.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", rec.Code, tt.wantCode)
			}
			if trades.trade.Status != tt.wantStatus {
				t.Errorf("trade status = %s, want %s", trades.trade.Status, tt.wantStatus)
			}
		})
	}
}

func TestTradeHandler_UpdateStatus_UnknownTrade(t *testing.T) {
	e := echo.New()
	trades := &stubTradeRepo{}
	svc := usecase.NewTradeService(nil, trades, nil, &stubNotificationRepo{}, 60)
	h := NewTradeHandler(svc, trades)

	c, rec := newStatusContext(e, uuid.New(), uuid.New(), domain.RoleAdmin, domain.TradeCompleted)
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
