package response

import (
	"time"

	"bodyshop/internal/usecase/queries"
)

type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUserView(v *queries.UserView) (*UserResponse, error) {
	return copyInto[UserResponse](v)
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   int64         `json:"expires_in"`
	User        *UserResponse `json:"user"`
}

type RegisterResponse struct {
	User *UserResponse `json:"user"`
}
