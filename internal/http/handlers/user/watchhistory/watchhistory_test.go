package watchhistory

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/videonest/backend/internal/http/middlewarectx"
	"github.com/videonest/backend/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) WatchHistory(ctx context.Context, userUID string) ([]*models.WatchHistoryEntry, error) {
	args := m.Called(ctx, userUID)
	entries, _ := args.Get(0).([]*models.WatchHistoryEntry)
	return entries, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestWatchHistoryHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()
	ctxUser := &models.User{UID: "uid-1", Username: "testuser"}

	t.Run("returns entries with flattened owner", func(t *testing.T) {
		entries := []*models.WatchHistoryEntry{
			{
				Video: models.Video{
					UID:   "video-2",
					Title: "second video",
				},
				Owner:     models.VideoOwner{Fullname: "Owner Two", Username: "owner2", AvatarURL: "http://cdn.local/a2.png"},
				WatchedAt: time.Now(),
			},
			{
				Video: models.Video{
					UID:   "video-1",
					Title: "first video",
				},
				Owner:     models.VideoOwner{Fullname: "Owner One", Username: "owner1", AvatarURL: "http://cdn.local/a1.png"},
				WatchedAt: time.Now().Add(-time.Hour),
			},
		}

		serviceMock := new(ServiceMock)
		serviceMock.On("WatchHistory", mock.Anything, "uid-1").Return(entries, nil).Once()

		handler := New(logger, serviceMock)

		req := httptest.NewRequest(http.MethodGet, "/users/history", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserKey, ctxUser))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "watch history fetched successfully", got["message"])

		data, ok := got["data"].([]any)
		require.True(t, ok)
		require.Len(t, data, 2)

		first, ok := data[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "video-2", first["uid"])
		owner, ok := first["owner"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "owner2", owner["username"])

		serviceMock.AssertExpectations(t)
	})

	t.Run("empty history", func(t *testing.T) {
		serviceMock := new(ServiceMock)
		serviceMock.On("WatchHistory", mock.Anything, "uid-1").
			Return([]*models.WatchHistoryEntry{}, nil).Once()

		handler := New(logger, serviceMock)

		req := httptest.NewRequest(http.MethodGet, "/users/history", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserKey, ctxUser))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		data, ok := got["data"].([]any)
		require.True(t, ok)
		assert.Empty(t, data)
	})

	t.Run("missing user in context", func(t *testing.T) {
		handler := New(logger, new(ServiceMock))

		req := httptest.NewRequest(http.MethodGet, "/users/history", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
