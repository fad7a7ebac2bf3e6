package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/realworld-go/conduit/internal/domain/entity"
	"github.com/realworld-go/conduit/internal/domain/repository"
	"github.com/realworld-go/conduit/pkg/helpers"
)

// ArticleService owns the article lifecycle plus the read side: feeds,
// filtered lists, favorites and full-text search. Redis, ES and Logger
// are optional; writes succeed even when the search index or the tag
// cache is unreachable.
type ArticleService struct {
	Articles  repository.ArticleRepository
	Users     repository.UserRepository
	Favorites repository.FavoriteRepository
	Redis     *redis.Client
	Logger    *logrus.Logger
	ES        *elasticsearch.Client
	ESIndex   string
}

func NewArticleService(articles repository.ArticleRepository, users repository.UserRepository, favorites repository.FavoriteRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *ArticleService {
	return &ArticleService{
		Articles:  articles,
		Users:     users,
		Favorites: favorites,
		Redis:     rdb,
		Logger:    logger,
		ES:        es,
		ESIndex:   esIndex,
	}
}

type CreateArticleInput struct {
	Title       string
	Description string
	Body        string
	TagList     []string
}

func (s *ArticleService) Create(ctx context.Context, authorID string, in CreateArticleInput) (*ArticleView, error) {
	a, err := entity.NewArticle(in.Title, in.Description, in.Body, in.TagList, authorID)
	if err != nil {
		return nil, err
	}
	if err := s.Articles.Create(ctx, a); err != nil {
		return nil, err
	}
	s.indexArticle(ctx, a)
	s.invalidateTagCache(ctx)
	return s.view(ctx, authorID, a)
}

func (s *ArticleService) Get(ctx context.Context, viewerID, slug string) (*ArticleView, error) {
	a, err := s.bySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, viewerID, a)
}

type ListArticlesInput struct {
	Tag         string
	Author      string
	FavoritedBy string
	Limit       int
	Offset      int
}

// List returns the global article stream, newest first, narrowed by the
// optional filters. The second result is the total match count.
func (s *ArticleService) List(ctx context.Context, viewerID string, in ListArticlesInput) ([]*ArticleView, int, error) {
	f := repository.ArticleFilter{
		Tag:         in.Tag,
		Author:      in.Author,
		FavoritedBy: in.FavoritedBy,
		Limit:       clampLimit(in.Limit),
		Offset:      clampOffset(in.Offset),
	}
	articles, total, err := s.Articles.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.views(ctx, viewerID, articles)
	return views, total, err
}

// Feed returns articles authored by users the viewer follows.
func (s *ArticleService) Feed(ctx context.Context, viewerID string, limit, offset int) ([]*ArticleView, int, error) {
	f := repository.ArticleFilter{
		FollowedBy: viewerID,
		Limit:      clampLimit(limit),
		Offset:     clampOffset(offset),
	}
	articles, total, err := s.Articles.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.views(ctx, viewerID, articles)
	return views, total, err
}

type UpdateArticleInput struct {
	Title       *string
	Description *string
	Body        *string
}

// Update edits an article in place. Only the author may edit; the slug
// changes only when the title does, and even an all-nil input bumps
// UpdatedAt.
func (s *ArticleService) Update(ctx context.Context, actorID, slug string, in UpdateArticleInput) (*ArticleView, error) {
	a, err := s.bySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if a.AuthorID != actorID {
		return nil, ErrForbidden
	}
	if err := a.Update(in.Title, in.Description, in.Body); err != nil {
		return nil, err
	}
	if err := s.Articles.Update(ctx, a); err != nil {
		return nil, err
	}
	s.indexArticle(ctx, a)
	return s.view(ctx, actorID, a)
}

func (s *ArticleService) Delete(ctx context.Context, actorID, slug string) error {
	a, err := s.bySlug(ctx, slug)
	if err != nil {
		return err
	}
	if a.AuthorID != actorID {
		return ErrForbidden
	}
	if err := s.Articles.Delete(ctx, a.ID); err != nil {
		return err
	}
	s.removeFromIndex(ctx, a.ID)
	return nil
}

func (s *ArticleService) Favorite(ctx context.Context, viewerID, slug string) (*ArticleView, error) {
	a, err := s.bySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.Favorites.Save(ctx, a.ID, viewerID); err != nil {
		return nil, err
	}
	return s.view(ctx, viewerID, a)
}

func (s *ArticleService) Unfavorite(ctx context.Context, viewerID, slug string) (*ArticleView, error) {
	a, err := s.bySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.Favorites.Remove(ctx, a.ID, viewerID); err != nil {
		return nil, err
	}
	return s.view(ctx, viewerID, a)
}

// Search performs a multi_match query over title, description and body
// and returns the raw index documents.
func (s *ArticleService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "body"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *ArticleService) bySlug(ctx context.Context, slug string) (*entity.Article, error) {
	a, err := s.Articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *ArticleService) view(ctx context.Context, viewerID string, a *entity.Article) (*ArticleView, error) {
	views, err := s.views(ctx, viewerID, []*entity.Article{a})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// views assembles viewer-dependent article views; author and follow
// lookups are cached across the page.
func (s *ArticleService) views(ctx context.Context, viewerID string, articles []*entity.Article) ([]*ArticleView, error) {
	out := make([]*ArticleView, 0, len(articles))
	authors := make(map[string]*entity.User)
	followed := make(map[string]bool)

	for _, a := range articles {
		author, seen := authors[a.AuthorID]
		if !seen {
			var err error
			author, err = s.Users.GetByID(ctx, a.AuthorID)
			if err != nil {
				return nil, err
			}
			authors[a.AuthorID] = author
			if viewerID != "" && author != nil {
				f, err := s.Users.IsFollowing(ctx, viewerID, author.ID)
				if err != nil {
					return nil, err
				}
				followed[author.ID] = f
			}
		}

		favorited := false
		if viewerID != "" {
			var err error
			favorited, err = s.Favorites.IsFavorited(ctx, a.ID, viewerID)
			if err != nil {
				return nil, err
			}
		}
		count, err := s.Favorites.Count(ctx, a.ID)
		if err != nil {
			return nil, err
		}

		following := author != nil && followed[author.ID]
		out = append(out, &ArticleView{
			ID:             a.ID,
			Slug:           a.Slug,
			Title:          a.Title,
			Description:    a.Description,
			Body:           a.Body,
			TagList:        a.TagList,
			CreatedAt:      a.CreatedAt,
			UpdatedAt:      a.UpdatedAt,
			Favorited:      favorited,
			FavoritesCount: count,
			Author:         profileOf(author, following),
		})
	}
	return out, nil
}

func (s *ArticleService) indexArticle(ctx context.Context, a *entity.Article) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          a.ID,
		"slug":        a.Slug,
		"title":       a.Title,
		"description": a.Description,
		"body":        a.Body,
		"tagList":     a.TagList,
		"authorId":    a.AuthorID,
		"createdAt":   a.CreatedAt.Format(time.RFC3339Nano),
		"updatedAt":   a.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: a.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("article_id", a.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("article_id", a.ID).Warn("es index response error")
	}
}

func (s *ArticleService) removeFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("article_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

func (s *ArticleService) invalidateTagCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.Invalidate(ctx, s.Redis, tagCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("tag cache invalidation failed")
	}
}

func clampLimit(n int) int {
	if n <= 0 {
		return 20
	}
	if n > 100 {
		return 100
	}
	return n
}

func clampOffset(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
