package entity

import (
	"crypto/rand"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Article is the aggregate root for published content
// Slug is unique and derived from the title plus a random suffix, so
// two articles may carry the same title.
type Article struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Body        string
	TagList     []string
	AuthorID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewArticle builds an article stamped with the current time.
func NewArticle(title, description, body string, tagList []string, authorID string) (*Article, error) {
	return NewArticleAt(title, description, body, tagList, authorID, time.Now().UTC())
}

// NewArticleAt pins CreatedAt and UpdatedAt to a caller-supplied
// instant, for imports and deterministic fixtures. Both timestamps
// start out equal.
func NewArticleAt(title, description, body string, tagList []string, authorID string, at time.Time) (*Article, error) {
	if err := notBlank("title", title); err != nil {
		return nil, err
	}
	if err := notBlank("description", description); err != nil {
		return nil, err
	}
	if err := notBlank("body", body); err != nil {
		return nil, err
	}
	if err := notBlank("author", authorID); err != nil {
		return nil, err
	}
	at = at.UTC()
	return &Article{
		ID:          uuid.NewString(),
		Slug:        ToSlug(title),
		Title:       title,
		Description: description,
		Body:        body,
		TagList:     normalizeTags(tagList),
		AuthorID:    authorID,
		CreatedAt:   at,
		UpdatedAt:   at,
	}, nil
}

// Update applies a partial edit. Nil fields keep their current value.
// The slug is recomputed only when the title is supplied and actually
// differs, while UpdatedAt moves on every call, even an all-nil one.
// Validation runs before any field is touched.
func (a *Article) Update(title, description, body *string) error {
	if title != nil {
		if err := notBlank("title", *title); err != nil {
			return err
		}
	}
	if description != nil {
		if err := notBlank("description", *description); err != nil {
			return err
		}
	}
	if body != nil {
		if err := notBlank("body", *body); err != nil {
			return err
		}
	}
	if title != nil && *title != a.Title {
		a.Title = *title
		a.Slug = ToSlug(*title)
	}
	if description != nil {
		a.Description = *description
	}
	if body != nil {
		a.Body = *body
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// ToSlug lowercases the title, collapses runs of anything that is not a
// letter or digit into single hyphens and appends a short random
// suffix: "Hello, World!" becomes something like "hello-world-x7k2qa".
// A title with no usable characters yields just the suffix.
func ToSlug(title string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && b.Len() > 0 {
			b.WriteByte('-')
			hyphen = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return slugSuffix()
	}
	return slug + "-" + slugSuffix()
}

const slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func slugSuffix() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	for i, c := range b {
		b[i] = slugAlphabet[int(c)%len(slugAlphabet)]
	}
	return string(b)
}

// normalizeTags trims, drops blanks and duplicates, and sorts so the
// stored order is stable regardless of input order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
