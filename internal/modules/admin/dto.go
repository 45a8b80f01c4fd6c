package admin

import "time"

type CreateUserRequest struct {
	Login      string    `json:"login" binding:"required,max=64"`
	Password   string    `json:"password" binding:"required,min=8,max=72"`
	Name       string    `json:"name" binding:"required,max=200"`
	TelegramID string    `json:"telegramId" binding:"max=64"`
	JoinDate   time.Time `json:"joinDate"`
	Ronin      bool      `json:"ronin"`
}

type roninRequest struct {
	Granted *bool `json:"granted" binding:"required"`
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}
