package entity

import (
	"time"

	"github.com/google/uuid"
)

// Comment is immutable once posted; there is no update operation, so it
// carries a single CreatedAt timestamp.
type Comment struct {
	ID        string
	Body      string
	AuthorID  string
	ArticleID string
	CreatedAt time.Time
}

// NewComment builds a comment attached to an article.
func NewComment(body, authorID, articleID string) (*Comment, error) {
	if err := notBlank("body", body); err != nil {
		return nil, err
	}
	if err := notBlank("author", authorID); err != nil {
		return nil, err
	}
	if err := notBlank("article", articleID); err != nil {
		return nil, err
	}
	return &Comment{
		ID:        uuid.NewString(),
		Body:      body,
		AuthorID:  authorID,
		ArticleID: articleID,
		CreatedAt: time.Now().UTC(),
	}, nil
}
