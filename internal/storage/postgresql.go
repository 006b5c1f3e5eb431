// Package storage реализует хранилище данных на основе PostgreSQL
// для управления пользователями, подписками на каналы, видеороликами
// и историей просмотров. Агрегирующие запросы профиля канала и истории
// выполняются на стороне базы одним запросом.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/videonest/backend/internal/models"
)

// ErrUserNotFound возвращается, когда пользователь не найден в базе.
var ErrUserNotFound = errors.New("user not found")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, подписками и видео.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close закрывает пул соединений с базой.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// ===== USER METHODS =====

// CreateUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (fullname, email, username, password_hash, avatar_url, cover_image_url)
			  VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Fullname, user.Email, user.Username, user.PasswordHash,
		user.AvatarURL, user.CoverImageURL).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByUID возвращает пользователя по его UID.
func (s *Storage) GetUserByUID(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, fullname, email, username, password_hash, avatar_url,
			      cover_image_url, refresh_token, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

// GetUserByLogin возвращает пользователя по username или email.
func (s *Storage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	const op = "storage.GetUserByLogin"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, fullname, email, username, password_hash, avatar_url,
			      cover_image_url, refresh_token, created_at
			  FROM users
			  WHERE username = lower($1) OR email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, login), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var coverImageURL, refreshToken sql.NullString
	var createdAt sql.NullTime
	if err := row.Scan(&u.UID, &u.Fullname, &u.Email, &u.Username, &u.PasswordHash,
		&u.AvatarURL, &coverImageURL, &refreshToken, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if coverImageURL.Valid {
		u.CoverImageURL = coverImageURL.String
	}
	if refreshToken.Valid {
		u.RefreshToken = refreshToken.String
	}
	if createdAt.Valid {
		u.CreatedAt = &createdAt.Time
	}
	return u, nil
}

// ExistsUser проверяет, занят ли username (без учета регистра) или email.
func (s *Storage) ExistsUser(ctx context.Context, username, email string) (bool, error) {
	const op = "storage.ExistsUser"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = lower($1) OR email = $2)`
	if err := s.DB.QueryRowContext(ctx, query, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// UpdateRefreshToken записывает текущий refresh-токен пользователя,
// перезаписывая предыдущий. Пустая строка очищает токен (logout).
func (s *Storage) UpdateRefreshToken(ctx context.Context, userUID, refreshToken string) (int, error) {
	const op = "storage.UpdateRefreshToken"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET refresh_token = NULLIF($2, '') WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID, refreshToken)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdatePassword записывает новый хэш пароля пользователя.
func (s *Storage) UpdatePassword(ctx context.Context, userUID, passwordHash string) (int, error) {
	const op = "storage.UpdatePassword"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET password_hash = $2 WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateDetails обновляет отображаемое имя и email пользователя.
func (s *Storage) UpdateDetails(ctx context.Context, userUID, fullname, email string) (int, error) {
	const op = "storage.UpdateDetails"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET fullname = $2, email = $3 WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID, fullname, email)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateAvatarURL обновляет URL аватара пользователя.
func (s *Storage) UpdateAvatarURL(ctx context.Context, userUID, avatarURL string) (int, error) {
	const op = "storage.UpdateAvatarURL"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET avatar_url = $2 WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID, avatarURL)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateCoverImageURL обновляет URL обложки профиля пользователя.
func (s *Storage) UpdateCoverImageURL(ctx context.Context, userUID, coverImageURL string) (int, error) {
	const op = "storage.UpdateCoverImageURL"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET cover_image_url = $2 WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID, coverImageURL)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ===== CHANNEL METHODS =====

// GetChannelProfile возвращает публичный профиль канала с числом подписчиков,
// числом собственных подписок и признаком подписки запрашивающего пользователя.
// viewerUID может быть пустым для анонимного запроса.
func (s *Storage) GetChannelProfile(ctx context.Context, username, viewerUID string) (*models.ChannelProfile, error) {
	const op = "storage.GetChannelProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.fullname, u.username, u.email, u.avatar_url, COALESCE(u.cover_image_url, ''),
				(SELECT COUNT(*) FROM subscriptions sub WHERE sub.channel_uid = u.uid),
				(SELECT COUNT(*) FROM subscriptions sub WHERE sub.subscriber_uid = u.uid),
				EXISTS (SELECT 1 FROM subscriptions sub
					WHERE sub.channel_uid = u.uid AND sub.subscriber_uid = NULLIF($2, '')::uuid)
			  FROM users u
			  WHERE u.username = lower($1)`
	profile := &models.ChannelProfile{}
	row := s.DB.QueryRowContext(ctx, query, username, viewerUID)
	if err := row.Scan(&profile.Fullname, &profile.Username, &profile.Email,
		&profile.AvatarURL, &profile.CoverImageURL, &profile.SubscribersCount,
		&profile.ChannelsSubscribedToCount, &profile.IsSubscribed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}

// CreateSubscription добавляет подписку subscriber -> channel.
func (s *Storage) CreateSubscription(ctx context.Context, subscriberUID, channelUID string) error {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (subscriber_uid, channel_uid) VALUES ($1, $2)`
	if _, err := s.DB.ExecContext(ctx, query, subscriberUID, channelUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ===== VIDEO AND WATCH HISTORY METHODS =====

// CreateVideo вставляет новую запись видеоролика и возвращает её UID.
func (s *Storage) CreateVideo(ctx context.Context, video models.Video) (string, error) {
	const op = "storage.CreateVideo"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO videos (title, description, video_url, thumbnail_url, duration, views, owner_uid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING uid`
	if err := s.DB.QueryRowContext(ctx, query,
		video.Title, video.Description, video.VideoURL, video.ThumbnailURL,
		video.Duration, video.Views, video.OwnerUID).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// AddWatchHistory добавляет ролик в историю просмотров пользователя.
func (s *Storage) AddWatchHistory(ctx context.Context, userUID, videoUID string) error {
	const op = "storage.AddWatchHistory"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO watch_history (user_uid, video_uid) VALUES ($1, $2)`
	if _, err := s.DB.ExecContext(ctx, query, userUID, videoUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListWatchHistory возвращает историю просмотров пользователя, новые раньше.
// Каждый элемент содержит ролик и публичные поля его владельца одним запросом.
func (s *Storage) ListWatchHistory(ctx context.Context, userUID string) ([]*models.WatchHistoryEntry, error) {
	const op = "storage.ListWatchHistory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT v.uid, v.title, v.description, v.video_url, v.thumbnail_url,
				v.duration, v.views, o.fullname, o.username, o.avatar_url, h.watched_at
			  FROM watch_history h
			  JOIN videos v ON v.uid = h.video_uid
			  JOIN users o ON o.uid = v.owner_uid
			  WHERE h.user_uid = $1
			  ORDER BY h.watched_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.WatchHistoryEntry
	for rows.Next() {
		var item models.WatchHistoryEntry
		if err := rows.Scan(&item.Video.UID, &item.Title, &item.Description, &item.VideoURL,
			&item.ThumbnailURL, &item.Duration, &item.Views, &item.Owner.Fullname,
			&item.Owner.Username, &item.Owner.AvatarURL, &item.WatchedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
