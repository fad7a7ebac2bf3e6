package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	gql "github.com/graphql-go/graphql"

	"github.com/realworld-go/conduit/internal/container"

	graphqlapi "github.com/realworld-go/conduit/internal/interface/graphql"
	"github.com/realworld-go/conduit/internal/interface/middleware"
)

// GraphQLModule wires POST /api/graphql. Authentication is optional at
// the transport level; resolvers that need a viewer enforce it
// themselves so a single request can mix public and private fields.

type GraphQLModule struct {
	Handler gin.HandlerFunc
}

func NewGraphQLModule(schema gql.Schema) *GraphQLModule {
	return &GraphQLModule{Handler: graphqlapi.Handler(schema)}
}

func (m *GraphQLModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil)
	rg.POST("/graphql", limiter, middleware.OptionalAuth(container.GetTokens()), m.Handler)
}
