package models

// WelcomeNotification сообщение для очереди приветственных писем,
// публикуется при успешной регистрации пользователя.
type WelcomeNotification struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
