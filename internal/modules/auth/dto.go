package auth

import (
	"time"

	"gutvbooker/internal/domain"
)

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       int64     `json:"id"`
	Login    string    `json:"login"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	Osnova   bool      `json:"osnova"`
	Ronin    bool      `json:"ronin"`
	JoinDate time.Time `json:"joinDate"`
}

type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresIn   int64        `json:"expiresIn"`
	User        UserResponse `json:"user"`
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Login:    u.Login,
		Name:     u.Name,
		Role:     string(u.Role),
		Osnova:   u.Osnova,
		Ronin:    u.Ronin,
		JoinDate: u.JoinDate,
	}
}
