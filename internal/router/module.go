package router

import "github.com/gin-gonic/gin"

// Module is a feature's route table. Each module owns its paths and
// per-route middleware and registers them on the shared group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
