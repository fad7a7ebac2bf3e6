package application

import (
	"time"

	"github.com/realworld-go/conduit/internal/domain/entity"
)

// Profile is the public face of a user as seen by a viewer.
type Profile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// UserView is the account owner's own record. Token is only set on the
// auth endpoints that mint one.
type UserView struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	Token    string `json:"token,omitempty"`
}

// ArticleView is an article as seen by a viewer; Favorited and
// Author.Following depend on who is asking.
type ArticleView struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tagList"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int       `json:"favoritesCount"`
	Author         Profile   `json:"author"`
}

// CommentView is a comment as seen by a viewer.
type CommentView struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	ArticleID string    `json:"articleId"`
	CreatedAt time.Time `json:"createdAt"`
	Author    Profile   `json:"author"`
}

func profileOf(u *entity.User, following bool) Profile {
	if u == nil {
		return Profile{}
	}
	return Profile{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: following,
	}
}

func userViewOf(u *entity.User, token string) *UserView {
	return &UserView{
		Email:    u.Email,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.Image,
		Token:    token,
	}
}
