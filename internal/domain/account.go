package domain

import (
	"time"

	"gorm.io/gorm"
)

// AccountRole site-wide role of an account
type AccountRole string

const (
	AccountRoleUser      AccountRole = "USER"
	AccountRoleModerator AccountRole = "MODERATOR"
	AccountRoleAdmin     AccountRole = "ADMIN"
)

// Account represents a registered user (accounts table)
type Account struct {
	ID          int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Handle      string         `gorm:"column:handle;type:varchar(50);uniqueIndex" json:"handle"`
	DisplayName string         `gorm:"column:display_name;type:varchar(100)" json:"display_name"`
	Role        AccountRole    `gorm:"column:role;type:varchar(20);default:USER" json:"role"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Account) TableName() string { return "accounts" }

// IsPrivileged reports whether the account bypasses row visibility checks.
// Site moderators and admins are privileged.
func (a *Account) IsPrivileged() bool {
	return a.Role == AccountRoleModerator || a.Role == AccountRoleAdmin
}

// AccountHit account projection returned by search
type AccountHit struct {
	ID          int64     `json:"id"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// HitID implements Identifiable
func (h AccountHit) HitID() int64 { return h.ID }
