package domain

import (
	"time"

	"gorm.io/gorm"
)

// ContentVisibility per-item visibility, ordered PUBLIC < MEMBERS < MODERATORS
type ContentVisibility string

const (
	ContentPublic     ContentVisibility = "PUBLIC"
	ContentMembers    ContentVisibility = "MEMBERS"
	ContentModerators ContentVisibility = "MODERATORS"
)

// ReactionKind like or dislike
type ReactionKind string

const (
	ReactionLike    ReactionKind = "LIKE"
	ReactionDislike ReactionKind = "DISLIKE"
)

// Post represents a post in a community (posts table)
type Post struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CommunityID int64             `gorm:"column:community_id;index" json:"community_id"`
	AuthorID    int64             `gorm:"column:author_id;index" json:"author_id"`
	Title       string            `gorm:"column:title;type:varchar(255)" json:"title"`
	Content     string            `gorm:"column:content;type:text" json:"content"`
	Visibility  ContentVisibility `gorm:"column:visibility;type:varchar(12);default:PUBLIC" json:"visibility"`
	ViewCount   int64             `gorm:"column:view_count;default:0" json:"view_count"`
	IsPinned    bool              `gorm:"column:is_pinned;default:false" json:"is_pinned"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"column:deleted_at;index" json:"-"`
}

func (Post) TableName() string { return "posts" }

// Comment represents a comment on a post (comments table).
// A comment has no visibility of its own; it follows its post.
type Comment struct {
	ID        int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID    int64          `gorm:"column:post_id;index" json:"post_id"`
	AuthorID  int64          `gorm:"column:author_id;index" json:"author_id"`
	Content   string         `gorm:"column:content;type:text" json:"content"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Comment) TableName() string { return "comments" }

// PostReaction one like/dislike per (post, account)
type PostReaction struct {
	ID        int64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID    int64        `gorm:"column:post_id;uniqueIndex:uk_post_reaction" json:"post_id"`
	AccountID int64        `gorm:"column:account_id;uniqueIndex:uk_post_reaction" json:"account_id"`
	Kind      ReactionKind `gorm:"column:kind;type:varchar(10)" json:"kind"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PostReaction) TableName() string { return "post_reactions" }

// ReactionTally like/dislike counts for one post
type ReactionTally struct {
	PostID   int64 `gorm:"column:post_id"`
	Likes    int64 `gorm:"column:likes"`
	Dislikes int64 `gorm:"column:dislikes"`
}

// PostHit post projection returned by search
type PostHit struct {
	ID                int64     `gorm:"column:id" json:"id"`
	CommunityID       int64     `gorm:"column:community_id" json:"community_id"`
	CommunitySlug     string    `gorm:"column:community_slug" json:"community_slug"`
	CommunityName     string    `gorm:"column:community_name" json:"community_name"`
	AuthorID          int64     `gorm:"column:author_id" json:"author_id"`
	AuthorDisplayName string    `gorm:"column:author_display_name" json:"author_display_name"`
	Title             string    `gorm:"column:title" json:"title"`
	ViewCount         int64     `gorm:"column:view_count" json:"view_count"`
	CommentCount      int64     `gorm:"-" json:"comment_count"`
	LikeCount         int64     `gorm:"-" json:"like_count"`
	DislikeCount      int64     `gorm:"-" json:"dislike_count"`
	IsPinned          bool      `gorm:"column:is_pinned" json:"is_pinned"`
	CreatedAt         time.Time `gorm:"column:created_at" json:"created_at"`
}

// HitID implements Identifiable
func (h PostHit) HitID() int64 { return h.ID }

// CommentHit comment projection returned by search
type CommentHit struct {
	ID                int64     `gorm:"column:id" json:"id"`
	PostID            int64     `gorm:"column:post_id" json:"post_id"`
	PostTitle         string    `gorm:"column:post_title" json:"post_title"`
	CommunityID       int64     `gorm:"column:community_id" json:"community_id"`
	CommunitySlug     string    `gorm:"column:community_slug" json:"community_slug"`
	CommunityName     string    `gorm:"column:community_name" json:"community_name"`
	AuthorID          int64     `gorm:"column:author_id" json:"author_id"`
	AuthorDisplayName string    `gorm:"column:author_display_name" json:"author_display_name"`
	BodyText          string    `gorm:"column:body_text" json:"body_text"`
	CreatedAt         time.Time `gorm:"column:created_at" json:"created_at"`
}

// HitID implements Identifiable
func (h CommentHit) HitID() int64 { return h.ID }
