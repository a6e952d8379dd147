package api

import (
	"net/http"
	"strconv"

	"bodyshop/internal/domain/user"
	"bodyshop/internal/handler/httperr"
	"bodyshop/internal/handler/middleware"
	"bodyshop/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidID = errs.Mark(errs.New("invalid id"), errs.ErrValidation)
	errNoActor   = errs.New("actor missing from context")
)

// pathID parses a positive numeric path parameter, aborting with 400 otherwise.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Wrapf(errInvalidID, "%s=%q", name, c.Param(name)), "Invalid id", nil)
		return 0, false
	}
	return id, true
}

func requireActor(c *gin.Context) (user.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoActor, "Unauthorized", nil)
		return user.Actor{}, false
	}
	return actor, true
}
