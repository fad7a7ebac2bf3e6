package router

import (
	"github.com/realworld-go/conduit/internal/application"
	"github.com/realworld-go/conduit/internal/container"
	"github.com/realworld-go/conduit/internal/infrastructure/postgres"
	graphqlapi "github.com/realworld-go/conduit/internal/interface/graphql"
	handlers "github.com/realworld-go/conduit/internal/interface/http"
	"github.com/realworld-go/conduit/internal/router/modules"
)

// InitModules builds the repository, service and handler graph from the
// container singletons and registers every feature module. Call it once
// during startup, after the container is populated.
func InitModules(r *Registry) error {
	cfg := container.GetConfig()
	log := container.GetLogger()
	pool := container.GetPGPool()

	users := postgres.NewUserRepository(pool)
	articles := postgres.NewArticleRepository(pool)
	comments := postgres.NewCommentRepository(pool)
	favorites := postgres.NewFavoriteRepository(pool)
	tags := postgres.NewTagRepository(pool)

	userSvc := application.NewUserService(users, container.GetTokens(), container.GetRabbitPub(),
		container.GetGCS(), cfg.GCSBucket, log, cfg.AppName, cfg.AppURL)
	profileSvc := application.NewProfileService(users, log)
	articleSvc := application.NewArticleService(articles, users, favorites,
		container.GetRedis(), log, container.GetES(), cfg.ESArticlesIndex)
	commentSvc := application.NewCommentService(comments, articles, users,
		container.GetRabbitPub(), log, cfg.AppName, cfg.AppURL)
	tagSvc := application.NewTagService(tags, container.GetRedis(), log)

	schema, err := graphqlapi.NewSchema(graphqlapi.Services{
		Users:    userSvc,
		Profiles: profileSvc,
		Articles: articleSvc,
		Comments: commentSvc,
		Tags:     tagSvc,
	})
	if err != nil {
		return err
	}

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, log)))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(profileSvc, log)))
	r.Add(modules.NewArticleModule(
		handlers.NewArticleHandler(articleSvc, log),
		handlers.NewCommentHandler(commentSvc, log),
	))
	r.Add(modules.NewTagModule(handlers.NewTagHandler(tagSvc, log)))
	r.Add(modules.NewGraphQLModule(schema))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	return nil
}
