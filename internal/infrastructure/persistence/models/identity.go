package models

import (
	"time"

	"github.com/faktulove/backend/internal/domain/identity"
)

// UserModel is the GORM model for login identities
type UserModel struct {
	TenantAggregateModel
	Email          string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_user_email"`
	PasswordHash   string     `gorm:"type:varchar(255);not null"`
	DisplayName    string     `gorm:"type:varchar(200)"`
	Role           string     `gorm:"type:varchar(20);not null"`
	Status         string     `gorm:"type:varchar(20);not null;index"`
	LastLoginAt    *time.Time `gorm:""`
	FailedAttempts int        `gorm:"not null;default:0"`
	LockedUntil    *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		DisplayName:    m.DisplayName,
		Role:           identity.Role(m.Role),
		Status:         identity.UserStatus(m.Status),
		LastLoginAt:    m.LastLoginAt,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
	}
	m.PopulateTenantAggregateRoot(&user.TenantAggregateRoot)
	return user
}

// FromDomain populates the model from a domain user
func (m *UserModel) FromDomain(user *identity.User) {
	m.FromDomainTenantAggregateRoot(user.TenantAggregateRoot)
	m.Email = user.Email
	m.PasswordHash = user.PasswordHash
	m.DisplayName = user.DisplayName
	m.Role = string(user.Role)
	m.Status = string(user.Status)
	m.LastLoginAt = user.LastLoginAt
	m.FailedAttempts = user.FailedAttempts
	m.LockedUntil = user.LockedUntil
}
