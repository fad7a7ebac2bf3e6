package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/realworld-go/conduit/internal/domain/entity"
	"github.com/realworld-go/conduit/internal/domain/repository"
	"github.com/realworld-go/conduit/pkg/helpers"
	"github.com/realworld-go/conduit/pkg/mailer"
	"github.com/realworld-go/conduit/pkg/mailer/templates"
)

// CommentService owns the comment thread under each article.
type CommentService struct {
	Comments  repository.CommentRepository
	Articles  repository.ArticleRepository
	Users     repository.UserRepository
	Publisher *helpers.RabbitPublisher
	Logger    *logrus.Logger
	AppName   string
	AppURL    string
}

func NewCommentService(comments repository.CommentRepository, articles repository.ArticleRepository, users repository.UserRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger, appName, appURL string) *CommentService {
	return &CommentService{
		Comments:  comments,
		Articles:  articles,
		Users:     users,
		Publisher: pub,
		Logger:    logger,
		AppName:   appName,
		AppURL:    appURL,
	}
}

// Add posts a comment and notifies the article author by email, unless
// they are commenting under their own article.
func (s *CommentService) Add(ctx context.Context, authorID, slug, body string) (*CommentView, error) {
	article, err := s.articleBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	c, err := entity.NewComment(body, authorID, article.ID)
	if err != nil {
		return nil, err
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	view, err := s.view(ctx, authorID, c)
	if err != nil {
		return nil, err
	}
	s.notifyArticleAuthor(ctx, article, view.Author.Username, c)
	return view, nil
}

func (s *CommentService) List(ctx context.Context, viewerID, slug string) ([]*CommentView, error) {
	article, err := s.articleBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	comments, err := s.Comments.ListByArticle(ctx, article.ID)
	if err != nil {
		return nil, err
	}
	views := make([]*CommentView, 0, len(comments))
	for _, c := range comments {
		v, err := s.view(ctx, viewerID, c)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// Delete removes a comment. The comment's author and the article's
// author may delete; anyone else is refused.
func (s *CommentService) Delete(ctx context.Context, actorID, slug, commentID string) error {
	article, err := s.articleBySlug(ctx, slug)
	if err != nil {
		return err
	}
	c, err := s.Comments.GetByID(ctx, article.ID, commentID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNotFound
	}
	if c.AuthorID != actorID && article.AuthorID != actorID {
		return ErrForbidden
	}
	return s.Comments.Delete(ctx, c.ID)
}

func (s *CommentService) articleBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	a, err := s.Articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *CommentService) view(ctx context.Context, viewerID string, c *entity.Comment) (*CommentView, error) {
	author, err := s.Users.GetByID(ctx, c.AuthorID)
	if err != nil {
		return nil, err
	}
	following := false
	if viewerID != "" && author != nil {
		following, err = s.Users.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}
	return &CommentView{
		ID:        c.ID,
		Body:      c.Body,
		ArticleID: c.ArticleID,
		CreatedAt: c.CreatedAt,
		Author:    profileOf(author, following),
	}, nil
}

func (s *CommentService) notifyArticleAuthor(ctx context.Context, article *entity.Article, commenter string, c *entity.Comment) {
	if s.Publisher == nil || article.AuthorID == c.AuthorID {
		return
	}
	author, err := s.Users.GetByID(ctx, article.AuthorID)
	if err != nil || author == nil {
		return
	}
	data := templates.NewCommentAddedData(s.AppName, s.AppURL, author.Username, author.Email,
		templates.WithArticle(article.Title, s.AppURL+"/article/"+article.Slug),
		templates.WithComment(commenter, c.Body),
		templates.WithTime(c.CreatedAt),
	)
	job := mailer.EmailJob{
		To:       author.Email,
		Template: templates.CommentAdded,
		Data:     templates.ToMap(data),
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("article_id", article.ID).Warn("enqueue comment notification failed")
	}
}
