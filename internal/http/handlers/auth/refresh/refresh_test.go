package refresh

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

	"github.com/videonest/backend/internal/lib/apperror"
	"github.com/videonest/backend/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Refresh(ctx context.Context, incomingToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, incomingToken)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.String(2), args.Error(3)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRefreshHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()
	testUser := &models.User{UID: "uid-1", Username: "testuser"}

	tests := []struct {
		name           string
		cookieToken    string
		bodyToken      string
		mockToken      string
		mockUser       *models.User
		mockErr        error
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:           "token from cookie",
			cookieToken:    "cookie-refresh",
			mockToken:      "cookie-refresh",
			mockUser:       testUser,
			wantStatusCode: http.StatusOK,
			wantMessage:    "access token refreshed",
		},
		{
			name:           "token from body",
			bodyToken:      "body-refresh",
			mockToken:      "body-refresh",
			mockUser:       testUser,
			wantStatusCode: http.StatusOK,
			wantMessage:    "access token refreshed",
		},
		{
			name:           "cookie takes precedence over body",
			cookieToken:    "cookie-refresh",
			bodyToken:      "body-refresh",
			mockToken:      "cookie-refresh",
			mockUser:       testUser,
			wantStatusCode: http.StatusOK,
			wantMessage:    "access token refreshed",
		},
		{
			name:           "missing token",
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "unauthorized request",
		},
		{
			name:           "expired or used token",
			cookieToken:    "stale-refresh",
			mockToken:      "stale-refresh",
			mockErr:        apperror.Unauthorized("Refresh token is expired or used"),
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "Refresh token is expired or used",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			if tt.mockToken != "" {
				serviceMock.On("Refresh", mock.Anything, tt.mockToken).
					Return(tt.mockUser, "new-access", "new-refresh", tt.mockErr).Once()
			}

			handler := New(logger, serviceMock)

			var body io.Reader = http.NoBody
			if tt.bodyToken != "" {
				raw, err := json.Marshal(Request{RefreshToken: tt.bodyToken})
				require.NoError(t, err)
				body = bytes.NewReader(raw)
			}

			req := httptest.NewRequest(http.MethodPost, "/users/refresh-token", body)
			if tt.cookieToken != "" {
				req.AddCookie(&http.Cookie{Name: "refreshToken", Value: tt.cookieToken})
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantMessage, got["message"])

			if tt.wantStatusCode == http.StatusOK {
				data, ok := got["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "new-access", data["accessToken"])
				assert.Equal(t, "new-refresh", data["refreshToken"])

				gotCookies := map[string]string{}
				for _, c := range rec.Result().Cookies() {
					gotCookies[c.Name] = c.Value
				}
				assert.Equal(t, "new-access", gotCookies["accessToken"])
				assert.Equal(t, "new-refresh", gotCookies["refreshToken"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
