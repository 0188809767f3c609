package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Username string    `json:"username" db:"username"`
	Password string    `json:"-" db:"password"`
	Email    string    `json:"email" db:"email"`
	Created  time.Time `json:"created" db:"created"`
	IsActive bool      `json:"is_active" db:"is_active"`
}

type Channel struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Avatar      *string    `json:"avatar" db:"avatar"`
	Description *string    `json:"description" db:"description"`
	Created     time.Time  `json:"created" db:"created"`
	Updated     *time.Time `json:"updated" db:"updated"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
}

type Post struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Created     time.Time  `json:"created" db:"created"`
	Updated     *time.Time `json:"updated" db:"updated"`
	ChannelID   uuid.UUID  `json:"channel_id" db:"channel_id"`
}

type Comment struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Description string     `json:"description" db:"description"`
	Created     time.Time  `json:"created" db:"created"`
	Updated     *time.Time `json:"updated" db:"updated"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	PostID      uuid.UUID  `json:"post_id" db:"post_id"`
}

type ChannelWithPosts struct {
	Channel
	Posts []Post `json:"posts"`
}

type PostWithComments struct {
	Post
	Comments []Comment `json:"comments"`
}

// UserChannel is a follow edge: the user follows the channel.
type UserChannel struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ChannelID uuid.UUID `json:"channel_id" db:"channel_id"`
}

// UserPost is a like edge: the user likes the post.
type UserPost struct {
	UserID uuid.UUID `json:"user_id" db:"user_id"`
	PostID uuid.UUID `json:"post_id" db:"post_id"`
}

// ChannelUpdate names every mutable channel column. Owner is not among them.
type ChannelUpdate struct {
	Name        string
	Avatar      *string
	Description *string
}

type PostUpdate struct {
	Name        string
	Description string
}

type CommentUpdate struct {
	Description string
}

// Profile is the signed-in user's view of themselves.
type Profile struct {
	User
	Following []uuid.UUID `json:"following"`
	Likes     []uuid.UUID `json:"likes"`
}
