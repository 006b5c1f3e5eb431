package update

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/videonest/backend/internal/http/middlewarectx"
	"github.com/videonest/backend/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) UpdateDetails(ctx context.Context, userUID, fullname, email string) (*models.User, error) {
	args := m.Called(ctx, userUID, fullname, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestUpdateHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()
	ctxUser := &models.User{UID: "uid-1", Username: "testuser"}

	tests := []struct {
		name           string
		withUser       bool
		requestBody    interface{}
		mockUser       *models.User
		mockErr        error
		expectCall     bool
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:        "successful update",
			withUser:    true,
			requestBody: Request{Fullname: "New Name", Email: "new@example.com"},
			mockUser: &models.User{
				UID: "uid-1", Username: "testuser",
				Fullname: "New Name", Email: "new@example.com",
			},
			expectCall:     true,
			wantStatusCode: http.StatusOK,
			wantMessage:    "account details updated successfully",
		},
		{
			name:           "missing fullname",
			withUser:       true,
			requestBody:    Request{Email: "new@example.com"},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "validation failed",
		},
		{
			name:           "invalid email",
			withUser:       true,
			requestBody:    Request{Fullname: "New Name", Email: "not-an-email"},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "validation failed",
		},
		{
			name:           "invalid json body",
			withUser:       true,
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "invalid request body",
		},
		{
			name:           "missing user in context",
			requestBody:    Request{Fullname: "New Name", Email: "new@example.com"},
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "unauthorized request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			if tt.expectCall {
				body := tt.requestBody.(Request)
				serviceMock.On("UpdateDetails", mock.Anything, "uid-1", body.Fullname, body.Email).
					Return(tt.mockUser, tt.mockErr).Once()
			}

			handler := New(logger, serviceMock)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPatch, "/users/update-account", bytes.NewReader(bodyBytes))
			if tt.withUser {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserKey, ctxUser))
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantMessage, got["message"])

			if tt.mockUser != nil {
				data, ok := got["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "New Name", data["fullname"])
				assert.Equal(t, "new@example.com", data["email"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
