package handler

import (
	"net/http"

	"bodyshop/internal/handler/api"
	"bodyshop/internal/handler/middleware"
	"bodyshop/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine         *gin.Engine
	Config         config.Config
	Logger         *middleware.Logger
	Metrics        *middleware.Metrics
	RateLimiter    *middleware.RateLimiter
	AuthMiddleware *middleware.AuthMiddleware
	Auth           *api.AuthHandler
	Bookings       *api.BookingHandler
	Services       *api.ServiceHandler
	Vehicles       *api.VehicleHandler
	Reviews        *api.ReviewHandler
}

func NewRouter(p RouterParams) {
	setupMiddleware(p)
	setupRoutes(p)
}

func setupMiddleware(p RouterParams) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	p.Engine.Use(middleware.CustomRecovery())
	p.Engine.Use(p.Logger.LoggingMiddleware())
	p.Engine.Use(p.Metrics.Middleware())
	p.Engine.Use(middleware.NewCORSMiddleware(p.Config.CORS))
	p.Engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	authMw := p.AuthMiddleware
	limited := []gin.HandlerFunc{p.RateLimiter.Middleware()}

	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: p.Auth.Register, Mw: limited},
				{Method: http.MethodPost, Path: "/login", Handler: p.Auth.Login, Mw: limited},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMw.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: p.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: p.Auth.Me},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/services", Handler: p.Services.List},
			{Method: http.MethodGet, Path: "/reviews", Handler: p.Reviews.List},
			{Method: http.MethodGet, Path: "/bookings/available-slots/:date", Handler: p.Bookings.AvailableSlots, Mw: limited},
		})

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMw.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: p.Bookings.Create},
				{Method: http.MethodGet, Path: "", Handler: p.Bookings.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: p.Bookings.Get},
				{Method: http.MethodPut, Path: "/:id/cancel", Handler: p.Bookings.Cancel},
				{Method: http.MethodPut, Path: "/:id/status", Handler: p.Bookings.UpdateStatus, Mw: []gin.HandlerFunc{authMw.RequireStaff()}},
				{Method: http.MethodPut, Path: "/:id/services", Handler: p.Bookings.UpdateServices},
			})
		}

		vehicles := apiGroup.Group("/vehicles")
		vehicles.Use(authMw.RequireAuth())
		{
			addRoutes(vehicles, []route{
				{Method: http.MethodGet, Path: "", Handler: p.Vehicles.List},
				{Method: http.MethodPost, Path: "", Handler: p.Vehicles.Create},
				{Method: http.MethodDelete, Path: "/:id", Handler: p.Vehicles.Delete},
			})
		}

		reviews := apiGroup.Group("/reviews")
		reviews.Use(authMw.RequireAuth())
		{
			addRoutes(reviews, []route{
				{Method: http.MethodPost, Path: "", Handler: p.Reviews.Create},
				{Method: http.MethodDelete, Path: "/:id", Handler: p.Reviews.Delete},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMw.RequireAuth(), authMw.RequireStaff())
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/bookings", Handler: p.Bookings.ListAll},
				{Method: http.MethodGet, Path: "/bookings/export", Handler: p.Bookings.Export},
				{Method: http.MethodPut, Path: "/reviews/:id/approve", Handler: p.Reviews.Approve},
				{Method: http.MethodPost, Path: "/services", Handler: p.Services.Create, Mw: []gin.HandlerFunc{authMw.RequireAdmin()}},
				{Method: http.MethodPut, Path: "/services/:id", Handler: p.Services.Update, Mw: []gin.HandlerFunc{authMw.RequireAdmin()}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
