package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/realworld-go/conduit/internal/domain/entity"
	"github.com/realworld-go/conduit/internal/domain/repository"
)

var errNoRowsAffected = errors.New("memory: no rows affected")

// Store keeps every aggregate in one place so relations between them
// (follows, favorites, comments) stay consistent, the way a single
// database does. It backs the repository interfaces in tests; the
// accessors hand out views that share this state.
type Store struct {
	mu        sync.RWMutex
	users     []*entity.User
	articles  []*entity.Article
	comments  []*entity.Comment
	follows   map[string]map[string]bool // follower id -> followee ids
	favorites map[string]map[string]bool // article id -> user ids
}

func NewStore() *Store {
	return &Store{
		follows:   make(map[string]map[string]bool),
		favorites: make(map[string]map[string]bool),
	}
}

func (s *Store) Users() repository.UserRepository         { return userRepo{s} }
func (s *Store) Articles() repository.ArticleRepository   { return articleRepo{s} }
func (s *Store) Comments() repository.CommentRepository   { return commentRepo{s} }
func (s *Store) Favorites() repository.FavoriteRepository { return favoriteRepo{s} }
func (s *Store) Tags() repository.TagRepository           { return tagRepo{s} }

// Rows are cloned on the way in and out so callers cannot reach the
// stored state through aliased pointers, mirroring how scanned database
// rows behave.

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func cloneArticle(a *entity.Article) *entity.Article {
	c := *a
	c.TagList = append([]string(nil), a.TagList...)
	return &c
}

func cloneComment(c *entity.Comment) *entity.Comment {
	d := *c
	return &d
}

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users = append(r.s.users, cloneUser(u))
	return nil
}

func (r userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r userRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r userRepo) Update(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, have := range r.s.users {
		if have.ID == u.ID {
			r.s.users[i] = cloneUser(u)
			return nil
		}
	}
	return errNoRowsAffected
}

func (r userRepo) SaveFollow(ctx context.Context, followerID, followeeID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set := r.s.follows[followerID]
	if set == nil {
		set = make(map[string]bool)
		r.s.follows[followerID] = set
	}
	set[followeeID] = true
	return nil
}

func (r userRepo) RemoveFollow(ctx context.Context, followerID, followeeID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.follows[followerID], followeeID)
	return nil
}

func (r userRepo) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.follows[followerID][followeeID], nil
}

type articleRepo struct{ s *Store }

func (r articleRepo) Create(ctx context.Context, a *entity.Article) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.articles = append(r.s.articles, cloneArticle(a))
	return nil
}

func (r articleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	return r.find(func(a *entity.Article) bool { return a.ID == id })
}

func (r articleRepo) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	return r.find(func(a *entity.Article) bool { return a.Slug == slug })
}

func (r articleRepo) find(match func(*entity.Article) bool) (*entity.Article, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.articles {
		if match(a) {
			return cloneArticle(a), nil
		}
	}
	return nil, nil
}

func (r articleRepo) Update(ctx context.Context, a *entity.Article) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, have := range r.s.articles {
		if have.ID == a.ID {
			r.s.articles[i] = cloneArticle(a)
			return nil
		}
	}
	return errNoRowsAffected
}

// Delete removes the article together with its comments and favorites,
// matching the cascading foreign keys in the schema.
func (r articleRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	idx := -1
	for i, a := range r.s.articles {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errNoRowsAffected
	}
	r.s.articles = append(r.s.articles[:idx], r.s.articles[idx+1:]...)
	delete(r.s.favorites, id)
	kept := r.s.comments[:0]
	for _, c := range r.s.comments {
		if c.ArticleID != id {
			kept = append(kept, c)
		}
	}
	r.s.comments = kept
	return nil
}

func (r articleRepo) List(ctx context.Context, f repository.ArticleFilter) ([]*entity.Article, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*entity.Article, 0, len(r.s.articles))
	for _, a := range r.s.articles {
		if r.matches(a, f) {
			matched = append(matched, a)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := f.Offset
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]*entity.Article, 0, end-offset)
	for _, a := range matched[offset:end] {
		page = append(page, cloneArticle(a))
	}
	return page, total, nil
}

func (r articleRepo) matches(a *entity.Article, f repository.ArticleFilter) bool {
	if f.Tag != "" && !contains(a.TagList, f.Tag) {
		return false
	}
	if f.Author != "" {
		u := r.userByUsername(f.Author)
		if u == nil || a.AuthorID != u.ID {
			return false
		}
	}
	if f.FavoritedBy != "" {
		u := r.userByUsername(f.FavoritedBy)
		if u == nil || !r.s.favorites[a.ID][u.ID] {
			return false
		}
	}
	if f.FollowedBy != "" && !r.s.follows[f.FollowedBy][a.AuthorID] {
		return false
	}
	return true
}

func (r articleRepo) userByUsername(username string) *entity.User {
	for _, u := range r.s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

type commentRepo struct{ s *Store }

func (r commentRepo) Create(ctx context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.comments = append(r.s.comments, cloneComment(c))
	return nil
}

func (r commentRepo) GetByID(ctx context.Context, articleID, commentID string) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.comments {
		if c.ID == commentID && c.ArticleID == articleID {
			return cloneComment(c), nil
		}
	}
	return nil, nil
}

func (r commentRepo) ListByArticle(ctx context.Context, articleID string) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Comment, 0)
	for _, c := range r.s.comments {
		if c.ArticleID == articleID {
			out = append(out, cloneComment(c))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r commentRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, c := range r.s.comments {
		if c.ID == id {
			r.s.comments = append(r.s.comments[:i], r.s.comments[i+1:]...)
			return nil
		}
	}
	return errNoRowsAffected
}

type favoriteRepo struct{ s *Store }

func (r favoriteRepo) Save(ctx context.Context, articleID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set := r.s.favorites[articleID]
	if set == nil {
		set = make(map[string]bool)
		r.s.favorites[articleID] = set
	}
	set[userID] = true
	return nil
}

func (r favoriteRepo) Remove(ctx context.Context, articleID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.favorites[articleID], userID)
	return nil
}

func (r favoriteRepo) IsFavorited(ctx context.Context, articleID, userID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.favorites[articleID][userID], nil
}

func (r favoriteRepo) Count(ctx context.Context, articleID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.favorites[articleID]), nil
}

type tagRepo struct{ s *Store }

// List reports the distinct tags attached to live articles, sorted the
// way the database returns them.
func (r tagRepo) List(ctx context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, a := range r.s.articles {
		for _, t := range a.TagList {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

var (
	_ repository.UserRepository     = userRepo{}
	_ repository.ArticleRepository  = articleRepo{}
	_ repository.CommentRepository  = commentRepo{}
	_ repository.FavoriteRepository = favoriteRepo{}
	_ repository.TagRepository      = tagRepo{}
)
