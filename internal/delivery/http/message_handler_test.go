package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bricsbtc/internal/domain"
)

func TestMessageHandler_MarkRead(t *testing.T) {
	ownerID := uuid.New()
	strangerID := uuid.New()
	notificationID := uuid.New()

	tests := []struct {
		name     string
		userID   uuid.UUID
		wantCode int
		wantRead bool
	}{
		{
			name:     "owner can mark their notification read",
			userID:   ownerID,
			wantCode: http.StatusOK,
			wantRead: true,
		},
		{
			name:     "stranger cannot mark another user's notification read",
			userID:   strangerID,
			wantCode: http.StatusNotFound,
			wantRead: false,
		},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifications := &stubNotificationRepo{
				notifications: []*domain.Notification{{
					ID:        notificationID,
					UserID:    ownerID,
					Title:     "Trade completed",
					CreatedAt: time.Now(),
				}},
			}
			h := NewMessageHandler(nil, notifications, nil)

			req := httptest.NewRequest(http.MethodPut, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(notificationID.String())
			c.Set("user_id", tt.userID)

			if err := h.MarkRead(c); err != nil {
				t.Fatalf("MarkRead() error = %v", err)
			}

			if rec.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", rec.Code, tt.wantCode)
			}
			if got := notifications.notifications[0].Read; got != tt.wantRead {
				t.Errorf("read = %v, want %v", got, tt.wantRead)
			}
		})
	}
}
