package graphql

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gql "github.com/graphql-go/graphql"

	"github.com/realworld-go/conduit/internal/interface/middleware"
)

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves POST /graphql. Responses use the standard GraphQL
// data/errors shape rather than the REST envelope, so clients of either
// API get the format they expect.
func Handler(schema gql.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"errors": []gin.H{{"message": "request body must carry a query"}},
			})
			return
		}

		ctx := c.Request.Context()
		if viewer := c.GetString(middleware.CtxUserIDKey); viewer != "" {
			ctx = WithViewer(ctx, viewer)
		}

		result := gql.Do(gql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        ctx,
		})
		c.JSON(http.StatusOK, result)
	}
}
