package models

import "time"

const (
	UserTypeAdmin      = "admin"
	UserTypeAccountant = "accountant"
	UserTypeUser       = "user"
)

// PermissionAll grants every capability regardless of the other tags.
const PermissionAll = "all"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password,omitempty"`
	Type         string    `json:"type"`
	FullName     string    `json:"fullName,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role,omitempty"`
	Permissions  []string  `json:"permissions,omitempty"`
	LoginCount   int       `json:"loginCount,omitempty"`
	LastLogin    time.Time `json:"lastLogin,omitzero"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
}

func (user *User) HasPermission(permission string) bool {
	if user.Type == UserTypeAdmin {
		return true
	}
	for _, tag := range user.Permissions {
		if tag == PermissionAll || tag == permission {
			return true
		}
	}
	return false
}
