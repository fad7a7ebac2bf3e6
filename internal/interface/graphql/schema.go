package graphql

import (
	gql "github.com/graphql-go/graphql"

	"github.com/realworld-go/conduit/internal/application"
)

// Services bundles the application services the resolvers delegate to.
// The GraphQL layer adds no behavior of its own; every field resolves
// through the same services the REST handlers use.
type Services struct {
	Users    *application.UserService
	Profiles *application.ProfileService
	Articles *application.ArticleService
	Comments *application.CommentService
	Tags     *application.TagService
}

// NewSchema builds the executable schema. View structs resolve through
// the default field resolver, which matches GraphQL field names against
// the views' json tags.
func NewSchema(svc Services) (gql.Schema, error) {
	profileType := gql.NewObject(gql.ObjectConfig{
		Name: "Profile",
		Fields: gql.Fields{
			"username":  &gql.Field{Type: gql.NewNonNull(gql.String)},
			"bio":       &gql.Field{Type: gql.String},
			"image":     &gql.Field{Type: gql.String},
			"following": &gql.Field{Type: gql.NewNonNull(gql.Boolean)},
		},
	})

	commentType := gql.NewObject(gql.ObjectConfig{
		Name: "Comment",
		Fields: gql.Fields{
			"id":        &gql.Field{Type: gql.NewNonNull(gql.ID)},
			"body":      &gql.Field{Type: gql.NewNonNull(gql.String)},
			"articleId": &gql.Field{Type: gql.NewNonNull(gql.ID)},
			"createdAt": &gql.Field{Type: gql.NewNonNull(gql.DateTime)},
			"author":    &gql.Field{Type: gql.NewNonNull(profileType)},
		},
	})

	articleType := gql.NewObject(gql.ObjectConfig{
		Name: "Article",
		Fields: gql.Fields{
			"id":             &gql.Field{Type: gql.NewNonNull(gql.ID)},
			"slug":           &gql.Field{Type: gql.NewNonNull(gql.String)},
			"title":          &gql.Field{Type: gql.NewNonNull(gql.String)},
			"description":    &gql.Field{Type: gql.NewNonNull(gql.String)},
			"body":           &gql.Field{Type: gql.NewNonNull(gql.String)},
			"tagList":        &gql.Field{Type: gql.NewList(gql.String)},
			"createdAt":      &gql.Field{Type: gql.NewNonNull(gql.DateTime)},
			"updatedAt":      &gql.Field{Type: gql.NewNonNull(gql.DateTime)},
			"favorited":      &gql.Field{Type: gql.NewNonNull(gql.Boolean)},
			"favoritesCount": &gql.Field{Type: gql.NewNonNull(gql.Int)},
			"author":         &gql.Field{Type: gql.NewNonNull(profileType)},
		},
	})

	// comments hang off the article so clients can fetch a full thread
	// in one query.
	articleType.AddFieldConfig("comments", &gql.Field{
		Type: gql.NewList(commentType),
		Resolve: func(p gql.ResolveParams) (interface{}, error) {
			a, ok := p.Source.(*application.ArticleView)
			if !ok {
				return nil, nil
			}
			return svc.Comments.List(p.Context, ViewerID(p.Context), a.Slug)
		},
	})

	userType := gql.NewObject(gql.ObjectConfig{
		Name: "User",
		Fields: gql.Fields{
			"email":    &gql.Field{Type: gql.NewNonNull(gql.String)},
			"username": &gql.Field{Type: gql.NewNonNull(gql.String)},
			"bio":      &gql.Field{Type: gql.String},
			"image":    &gql.Field{Type: gql.String},
		},
	})

	articlesPageType := gql.NewObject(gql.ObjectConfig{
		Name: "ArticlesPage",
		Fields: gql.Fields{
			"articles":      &gql.Field{Type: gql.NewList(articleType)},
			"articlesCount": &gql.Field{Type: gql.NewNonNull(gql.Int)},
		},
	})

	query := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"article": &gql.Field{
				Type: articleType,
				Args: gql.FieldConfigArgument{
					"slug": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return svc.Articles.Get(p.Context, ViewerID(p.Context), stringArg(p.Args, "slug"))
				},
			},
			"articles": &gql.Field{
				Type: articlesPageType,
				Args: gql.FieldConfigArgument{
					"tag":       &gql.ArgumentConfig{Type: gql.String},
					"author":    &gql.ArgumentConfig{Type: gql.String},
					"favorited": &gql.ArgumentConfig{Type: gql.String},
					"limit":     &gql.ArgumentConfig{Type: gql.Int},
					"offset":    &gql.ArgumentConfig{Type: gql.Int},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					views, total, err := svc.Articles.List(p.Context, ViewerID(p.Context), application.ListArticlesInput{
						Tag:         stringArg(p.Args, "tag"),
						Author:      stringArg(p.Args, "author"),
						FavoritedBy: stringArg(p.Args, "favorited"),
						Limit:       intArg(p.Args, "limit"),
						Offset:      intArg(p.Args, "offset"),
					})
					if err != nil {
						return nil, err
					}
					return articlesPage(views, total), nil
				},
			},
			"feed": &gql.Field{
				Type: articlesPageType,
				Args: gql.FieldConfigArgument{
					"limit":  &gql.ArgumentConfig{Type: gql.Int},
					"offset": &gql.ArgumentConfig{Type: gql.Int},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					viewer, err := requireViewer(p.Context)
					if err != nil {
						return nil, err
					}
					views, total, err := svc.Articles.Feed(p.Context, viewer, intArg(p.Args, "limit"), intArg(p.Args, "offset"))
					if err != nil {
						return nil, err
					}
					return articlesPage(views, total), nil
				},
			},
			"tags": &gql.Field{
				Type: gql.NewList(gql.String),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return svc.Tags.List(p.Context)
				},
			},
			"me": &gql.Field{
				Type: userType,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					viewer, err := requireViewer(p.Context)
					if err != nil {
						return nil, err
					}
					return svc.Users.Current(p.Context, viewer)
				},
			},
			"profile": &gql.Field{
				Type: profileType,
				Args: gql.FieldConfigArgument{
					"username": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return svc.Profiles.Get(p.Context, ViewerID(p.Context), stringArg(p.Args, "username"))
				},
			},
		},
	})

	mutation := gql.NewObject(gql.ObjectConfig{
		Name: "Mutation",
		Fields: gql.Fields{
			"createArticle": &gql.Field{
				Type: articleType,
				Args: gql.FieldConfigArgument{
					"title":       &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"description": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"body":        &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"tagList":     &gql.ArgumentConfig{Type: gql.NewList(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					viewer, err := requireViewer(p.Context)
					if err != nil {
						return nil, err
					}
					return svc.Articles.Create(p.Context, viewer, application.CreateArticleInput{
						Title:       stringArg(p.Args, "title"),
						Description: stringArg(p.Args, "description"),
						Body:        stringArg(p.Args, "body"),
						TagList:     stringListArg(p.Args, "tagList"),
					})
				},
			},
			"updateArticle": &gql.Field{
				Type: articleType,
				Args: gql.FieldConfigArgument{
					"slug":        &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"title":       &gql.ArgumentConfig{Type: gql.String},
					"description": &gql.ArgumentConfig{Type: gql.String},
					"body":        &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					viewer, err := requireViewer(p.Context)
					if err != nil {
						return nil, err
					}
					return svc.Articles.Update(p.Context, viewer, stringArg(p.Args, "slug"), application.UpdateArticleInput{
						Title:       stringPtrArg(p.Args, "title"),
						Description: stringPtrArg(p.Args, "description"),
						Body:        stringPtrArg(p.Args, "body"),
					})
				},
			},
			"deleteArticle": &gql.Field{
				Type: gql.Boolean,
				Args: gql.FieldConfigArgument{
					"slug": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					viewer, err := requireViewer(p.Context)
					if err != nil {
						return nil, err
					}
					if err := svc.Articles.Delete(p.Context, viewer, stringArg(p.Args, "slug")); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"addComment": &gql.Field{
				Type: commentType,
				Args: gql.FieldConfigArgument{
					"slug": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"body": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					viewer, err := requireViewer(p.Context)
					if err != nil {
						return nil, err
					}
					return svc.Comments.Add(p.Context, viewer, stringArg(p.Args, "slug"), stringArg(p.Args, "body"))
				},
			},
			"deleteComment": &gql.Field{
				Type: gql.Boolean,
				Args: gql.FieldConfigArgument{
					"slug": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"id":   &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					viewer, err := requireViewer(p.Context)
					if err != nil {
						return nil, err
					}
					if err := svc.Comments.Delete(p.Context, viewer, stringArg(p.Args, "slug"), stringArg(p.Args, "id")); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"favoriteArticle": &gql.Field{
				Type: articleType,
				Args: gql.FieldConfigArgument{
					"slug": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					viewer, err := requireViewer(p.Context)
					if err != nil {
						return nil, err
					}
					return svc.Articles.Favorite(p.Context, viewer, stringArg(p.Args, "slug"))
				},
			},
			"unfavoriteArticle": &gql.Field{
				Type: articleType,
				Args: gql.FieldConfigArgument{
					"slug": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					viewer, err := requireViewer(p.Context)
					if err != nil {
						return nil, err
					}
					return svc.Articles.Unfavorite(p.Context, viewer, stringArg(p.Args, "slug"))
				},
			},
			"followUser": &gql.Field{
				Type: profileType,
				Args: gql.FieldConfigArgument{
					"username": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					viewer, err := requireViewer(p.Context)
					if err != nil {
						return nil, err
					}
					return svc.Profiles.Follow(p.Context, viewer, stringArg(p.Args, "username"))
				},
			},
			"unfollowUser": &gql.Field{
				Type: profileType,
				Args: gql.FieldConfigArgument{
					"username": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					viewer, err := requireViewer(p.Context)
					if err != nil {
						return nil, err
					}
					return svc.Profiles.Unfollow(p.Context, viewer, stringArg(p.Args, "username"))
				},
			},
		},
	})

	return gql.NewSchema(gql.SchemaConfig{Query: query, Mutation: mutation})
}

func articlesPage(views []*application.ArticleView, total int) map[string]interface{} {
	return map[string]interface{}{
		"articles":      views,
		"articlesCount": total,
	}
}

func stringArg(args map[string]interface{}, name string) string {
	if v, ok := args[name].(string); ok {
		return v
	}
	return ""
}

func stringPtrArg(args map[string]interface{}, name string) *string {
	if v, ok := args[name].(string); ok {
		return &v
	}
	return nil
}

func intArg(args map[string]interface{}, name string) int {
	if v, ok := args[name].(int); ok {
		return v
	}
	return 0
}

func stringListArg(args map[string]interface{}, name string) []string {
	raw, ok := args[name].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
