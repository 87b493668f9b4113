package identity

import (
	"time"

	domain "github.com/faktulove/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterInput contains the input for tenant signup. The first registered
// account becomes the tenant owner.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// RegisterResult contains the result of a successful signup
type RegisterResult struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Email    string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Email       string
	DisplayName string
	Role        string
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// ChangePasswordInput contains the input for a password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	TenantID    uuid.UUID
	OldPassword string
	NewPassword string
}

func toUserInfo(u *domain.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
	}
}
