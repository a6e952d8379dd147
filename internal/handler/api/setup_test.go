//go:build unit

package api_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"strconv"
	"testing"

	"bodyshop/internal/domain/user"
	"bodyshop/internal/handler/httperr"
	"bodyshop/internal/handler/middleware"
	"bodyshop/internal/pkg/errs"
	th "bodyshop/internal/testutil/httptest"

	"github.com/gin-gonic/gin"
)

const (
	headerUserID = "X-Test-User-ID"
	headerRole   = "X-Test-Role"
)

var (
	clientActor = user.NewActor(10, user.RoleClient)
	staffActor  = user.NewActor(2, user.RoleStaff)
	adminActor  = user.NewActor(1, user.RoleAdmin)
)

// fakeAuth stands in for RequireAuth: the bearer token only has to be present
// and the actor comes from test headers.
func fakeAuth(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.Mark(errs.New("no token"), errs.ErrUnauthenticated), "Access token required", nil)
		return
	}
	id, _ := strconv.ParseInt(c.GetHeader(headerUserID), 10, 64)
	if id == 0 {
		id = clientActor.ID
	}
	role := user.Role(c.GetHeader(headerRole))
	if role == "" {
		role = user.RoleClient
	}
	middleware.SetActor(c, user.NewActor(id, role))
	c.Next()
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.ErrorHandler())
	return engine
}

// perform sends the request through the engine, authenticating as actor when
// it is non-nil.
func perform(t *testing.T, engine http.Handler, method, path string, body any, actor *user.Actor) *nethttptest.ResponseRecorder {
	t.Helper()
	if actor == nil {
		return th.PerformRequest(t, engine, method, path, body, "")
	}
	withActor := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Set(headerUserID, strconv.FormatInt(actor.ID, 10))
		r.Header.Set(headerRole, actor.Role.String())
		engine.ServeHTTP(w, r)
	})
	return th.PerformRequest(t, withActor, method, path, body, "token")
}

// withHeader sets a request header before handing off to next.
func withHeader(next http.Handler, name, value string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Set(name, value)
		next.ServeHTTP(w, r)
	})
}
