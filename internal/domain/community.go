package domain

import (
	"time"

	"gorm.io/gorm"
)

// ContainerVisibility visibility of a community
type ContainerVisibility string

const (
	ContainerPublic  ContainerVisibility = "PUBLIC"
	ContainerGroup   ContainerVisibility = "GROUP"
	ContainerPrivate ContainerVisibility = "PRIVATE"
)

// MembershipRole role of an account inside one community.
// PENDING is a join request and never grants read access; BANNED overrides every grant.
type MembershipRole string

const (
	RolePending   MembershipRole = "PENDING"
	RoleMember    MembershipRole = "MEMBER"
	RoleModerator MembershipRole = "MODERATOR"
	RoleOwner     MembershipRole = "OWNER"
	RoleBanned    MembershipRole = "BANNED"
)

// Community represents a board grouping posts (communities table)
type Community struct {
	ID          int64               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string              `gorm:"column:name;type:varchar(100)" json:"name"`
	Slug        string              `gorm:"column:slug;type:varchar(50);uniqueIndex" json:"slug"`
	Description string              `gorm:"column:description;type:text" json:"description"`
	Visibility  ContainerVisibility `gorm:"column:visibility;type:varchar(10);default:PUBLIC" json:"visibility"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"column:deleted_at;index" json:"-"`
}

func (Community) TableName() string { return "communities" }

// Membership one role row per (community, account)
type Membership struct {
	ID          int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CommunityID int64          `gorm:"column:community_id;uniqueIndex:uk_membership_pair" json:"community_id"`
	AccountID   int64          `gorm:"column:account_id;uniqueIndex:uk_membership_pair;index" json:"account_id"`
	Role        MembershipRole `gorm:"column:role;type:varchar(10)" json:"role"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Membership) TableName() string { return "community_memberships" }

// CommunityImage image reference (object key) attached to a community
type CommunityImage struct {
	CommunityID int64     `gorm:"column:community_id;primaryKey;autoIncrement:false" json:"community_id"`
	ObjectKey   string    `gorm:"column:object_key;type:varchar(500)" json:"object_key"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CommunityImage) TableName() string { return "community_images" }

// CommunityHit community projection returned by search
type CommunityHit struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Slug        string              `json:"slug"`
	Description string              `json:"description"`
	Visibility  ContainerVisibility `json:"visibility"`
	ImageRef    *string             `json:"image_ref,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// HitID implements Identifiable
func (h CommunityHit) HitID() int64 { return h.ID }
