package repository

import "context"

// TagRepository lists the distinct tag names in use.
type TagRepository interface {
	List(ctx context.Context) ([]string, error)
}
