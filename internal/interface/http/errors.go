package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/realworld-go/conduit/internal/application"
	"github.com/realworld-go/conduit/internal/domain/entity"
	"github.com/realworld-go/conduit/pkg/response"
)

// writeError maps domain and application errors onto the response
// envelope. Anything unrecognized is a persistence or infrastructure
// failure and surfaces as a 500, logged with its cause; the client only
// sees a generic message.
func writeError(c *gin.Context, log *logrus.Logger, err error) {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusUnprocessableEntity, "validation failed", map[string]string{verr.Field: verr.Reason})
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error(c, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error(c, http.StatusConflict, "email already registered", map[string]string{"email": "already registered"})
	case errors.Is(err, application.ErrUsernameTaken):
		response.Error(c, http.StatusConflict, "username already taken", map[string]string{"username": "already taken"})
	default:
		if log != nil {
			log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}
