package logout

import (
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

func (m *ServiceMock) Logout(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLogoutHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()

	t.Run("successful logout clears cookies", func(t *testing.T) {
		serviceMock := new(ServiceMock)
		serviceMock.On("Logout", mock.Anything, "uid-1").Return(nil).Once()

		handler := New(logger, serviceMock)

		req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
		ctx := context.WithValue(req.Context(), middlewarectx.UserKey,
			&models.User{UID: "uid-1", Username: "testuser"})
		req = req.WithContext(ctx)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, true, got["success"])
		assert.Equal(t, "user logged out", got["message"])

		expired := map[string]bool{}
		for _, c := range rec.Result().Cookies() {
			if c.MaxAge < 0 && c.Value == "" {
				expired[c.Name] = true
			}
		}
		assert.True(t, expired["accessToken"])
		assert.True(t, expired["refreshToken"])

		serviceMock.AssertExpectations(t)
	})

	t.Run("missing user in context", func(t *testing.T) {
		handler := New(logger, new(ServiceMock))

		req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
