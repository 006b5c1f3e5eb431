package models

// ChannelProfile публичный профиль канала с агрегированными счетчиками подписок.
type ChannelProfile struct {
	Fullname                  string `json:"fullname"`
	Username                  string `json:"username"`
	Email                     string `json:"email"`
	AvatarURL                 string `json:"avatar"`
	CoverImageURL             string `json:"coverImage,omitempty"`
	SubscribersCount          int    `json:"subscribersCount"`          // Сколько подписано на канал
	ChannelsSubscribedToCount int    `json:"channelsSubscribedToCount"` // На сколько каналов подписан сам
	IsSubscribed              bool   `json:"isSubscribed"`              // Подписан ли текущий пользователь
}
