// Package services содержит бизнес-логику профилей: обновление данных
// учетной записи, загрузку аватара и обложки, агрегированный профиль
// канала и историю просмотров.
package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/videonest/backend/internal/lib/apperror"
	"github.com/videonest/backend/internal/lib/sl"
	"github.com/videonest/backend/internal/models"
	"github.com/videonest/backend/internal/storage"
)

// profileCacheTTL время жизни кэша профиля канала.
const profileCacheTTL = time.Minute

// UserRepository описывает контракт для работы с профилями в базе данных.
type UserRepository interface {
	GetUserByUID(ctx context.Context, userUID string) (*models.User, error)
	UpdateDetails(ctx context.Context, userUID, fullname, email string) (int, error)
	UpdateAvatarURL(ctx context.Context, userUID, avatarURL string) (int, error)
	UpdateCoverImageURL(ctx context.Context, userUID, coverImageURL string) (int, error)
	GetChannelProfile(ctx context.Context, username, viewerUID string) (*models.ChannelProfile, error)
	ListWatchHistory(ctx context.Context, userUID string) ([]*models.WatchHistoryEntry, error)
}

// Uploader описывает контракт загрузки медиафайлов в хранилище.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder, filename, contentType string) (string, error)
}

// ProfileCache описывает контракт кэша профилей каналов.
type ProfileCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// UserService реализует операции над профилем пользователя.
type UserService struct {
	users    UserRepository
	uploader Uploader
	cache    ProfileCache
	log      *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserRepository, uploader Uploader, cache ProfileCache, log *slog.Logger) *UserService {
	return &UserService{
		users:    users,
		uploader: uploader,
		cache:    cache,
		log:      log,
	}
}

// UpdateDetails обновляет отображаемое имя и email, возвращает обновленного
// пользователя и сбрасывает кэш его профиля.
func (s *UserService) UpdateDetails(ctx context.Context, userUID, fullname, email string) (*models.User, error) {
	rows, err := s.users.UpdateDetails(ctx, userUID, fullname, email)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperror.NotFound("user does not exist")
	}
	return s.reload(ctx, userUID)
}

// UpdateAvatar загружает новый аватар в хранилище и сохраняет его URL.
func (s *UserService) UpdateAvatar(ctx context.Context, userUID string, file io.Reader, filename, contentType string) (*models.User, error) {
	url, err := s.uploader.Upload(ctx, file, "avatars", filename, contentType)
	if err != nil {
		s.log.Error("avatar upload failed", sl.Err(err))
		return nil, apperror.BadRequest("error while uploading avatar")
	}

	rows, err := s.users.UpdateAvatarURL(ctx, userUID, url)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperror.NotFound("user does not exist")
	}
	return s.reload(ctx, userUID)
}

// UpdateCoverImage загружает новую обложку профиля и сохраняет её URL.
func (s *UserService) UpdateCoverImage(ctx context.Context, userUID string, file io.Reader, filename, contentType string) (*models.User, error) {
	url, err := s.uploader.Upload(ctx, file, "covers", filename, contentType)
	if err != nil {
		s.log.Error("cover image upload failed", sl.Err(err))
		return nil, apperror.BadRequest("error while uploading cover image")
	}

	rows, err := s.users.UpdateCoverImageURL(ctx, userUID, url)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperror.NotFound("user does not exist")
	}
	return s.reload(ctx, userUID)
}

// ChannelProfile возвращает агрегированный профиль канала. Кэшируются
// только анонимные запросы: флаг isSubscribed зависит от зрителя.
func (s *UserService) ChannelProfile(ctx context.Context, username, viewerUID string) (*models.ChannelProfile, error) {
	cacheKey := "channel:" + username

	if viewerUID == "" {
		var cached models.ChannelProfile
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.log.Error("profile cache read failed", sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	profile, err := s.users.GetChannelProfile(ctx, username, viewerUID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, apperror.NotFound("channel does not exist")
		}
		return nil, err
	}

	if viewerUID == "" {
		if err := s.cache.Set(ctx, cacheKey, profile, profileCacheTTL); err != nil {
			s.log.Error("profile cache write failed", sl.Err(err))
		}
	}
	return profile, nil
}

// WatchHistory возвращает историю просмотров пользователя, новые раньше.
func (s *UserService) WatchHistory(ctx context.Context, userUID string) ([]*models.WatchHistoryEntry, error) {
	return s.users.ListWatchHistory(ctx, userUID)
}

func (s *UserService) reload(ctx context.Context, userUID string) (*models.User, error) {
	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, "channel:"+user.Username); err != nil {
		s.log.Error("profile cache invalidation failed", sl.Err(err))
	}
	public := user.Public()
	return &public, nil
}
