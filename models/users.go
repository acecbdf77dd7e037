package models

import (
	"strings"
	"time"
)

// Role names used in role claims and route guards.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleUser    = "User"
)

// DefaultRoles are created on startup if missing.
var DefaultRoles = []string{RoleAdmin, RoleUser, RoleManager}

type User struct {
	ID       string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserName string `gorm:"type:varchar(255);uniqueIndex;not null" json:"userName"`
	Email    string `gorm:"type:varchar(255);not null" json:"email"`
	// NormalizedEmail is the lookup key for the email; comparisons ignore case.
	NormalizedEmail string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	Password        string    `gorm:"type:varchar(255);not null" json:"-"`
	PhoneNumber     string    `gorm:"type:varchar(50)" json:"phoneNumber"`
	Address         string    `gorm:"type:varchar(255)" json:"address"`
	Roles           []Role    `gorm:"many2many:user_roles" json:"-"`
	Tanks           []Tank    `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// NormalizeEmail trims and upper-cases an email for lookups.
func NormalizeEmail(email string) string {
	return strings.ToUpper(strings.TrimSpace(email))
}

type Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(50);uniqueIndex;not null"`
}

// RoleNames returns the names of the loaded roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// UserView is the public shape of a user record.
type UserView struct {
	ID          string `json:"id"`
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

func (u *User) View() UserView {
	return UserView{
		ID:          u.ID,
		UserName:    u.UserName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
	}
}
