package models

import "time"

// Video представляет загруженный видеоролик.
type Video struct {
	UID          string     `json:"uid"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	VideoURL     string     `json:"videoFile"`
	ThumbnailURL string     `json:"thumbnail"`
	Duration     float64    `json:"duration"` // Длительность в секундах
	Views        int64      `json:"views"`
	OwnerUID     string     `json:"-"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// VideoOwner публичные поля владельца ролика, подмешиваются в историю просмотров.
type VideoOwner struct {
	Fullname  string `json:"fullname"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar"`
}

// WatchHistoryEntry элемент истории просмотров: ролик вместе с владельцем.
type WatchHistoryEntry struct {
	Video
	Owner     VideoOwner `json:"owner"`
	WatchedAt time.Time  `json:"watchedAt"`
}
