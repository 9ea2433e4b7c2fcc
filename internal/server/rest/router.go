// Package rest exposes the services as a JSON API over gin.
package rest

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/config"
	"github.com/dmitrijs2005/finplanner/internal/server/rest/handlers"
	"github.com/dmitrijs2005/finplanner/internal/server/rest/middleware"
	"github.com/dmitrijs2005/finplanner/internal/server/rest/respond"
	"github.com/dmitrijs2005/finplanner/internal/server/services"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	Config        *config.Config
	Users         *services.UserService
	Resets        *services.ResetService
	Todos         *services.TodoService
	Notes         *services.NoteService
	Records       *services.RecordService
	Authenticator *middleware.Authenticator
	Logger        logging.Logger
}

func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Config.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	respond.UseJSONFieldNames()

	router := gin.New()
	// gin trusts X-Forwarded-For from any peer unless told otherwise; the
	// rate limiter keys on the resolved client IP.
	if err := router.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		deps.Logger.Warn(context.Background(), "Ignoring trusted proxies", "error", err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger.With("module", "http")))
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.CORS(deps.Config.AllowedOrigins))
	router.Use(middleware.Timeout(deps.Config.RequestTimeout))

	router.NoRoute(func(c *gin.Context) {
		respond.Abort(c, http.StatusNotFound, respond.MsgNotFound)
	})

	authn := deps.Authenticator
	limiter := middleware.NewRateLimiter(deps.Config.RateLimitPerMinute)

	userHandler := handlers.NewUserHandler(deps.Users, deps.Resets, deps.Logger)
	todoHandler := handlers.NewTodoHandler(deps.Todos, deps.Logger)
	noteHandler := handlers.NewNoteHandler(deps.Notes, deps.Logger)
	recordHandler := handlers.NewRecordHandler(deps.Records, deps.Logger)

	api := router.Group("/api")
	api.Use(gzip.Gzip(gzip.DefaultCompression))

	api.GET("/health", authn.Optional(), handlers.Health)
	api.GET("/currencies", userHandler.Currencies)

	users := api.Group("/users")
	{
		public := users.Group("")
		public.Use(limiter.Middleware())
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/forgot-password", userHandler.ForgotPassword)
		public.POST("/reset-password", userHandler.ResetPassword)

		private := users.Group("")
		private.Use(authn.Require())
		private.GET("/profile", userHandler.Profile)
		private.GET("/settings", userHandler.GetSettings)
		private.PUT("/settings", userHandler.UpdateSettings)
		private.POST("/change-password", userHandler.ChangePassword)
	}

	todos := api.Group("/todos", authn.Require())
	{
		todos.GET("", todoHandler.List)
		todos.POST("", todoHandler.Create)
		todos.GET("/:id", todoHandler.Get)
		todos.PUT("/:id", todoHandler.Update)
		todos.DELETE("/:id", todoHandler.Delete)
	}

	notes := api.Group("/notes", authn.Require())
	{
		notes.GET("", noteHandler.List)
		notes.POST("", noteHandler.Create)
		notes.GET("/:id", noteHandler.Get)
		notes.PUT("/:id", noteHandler.Update)
		notes.DELETE("/:id", noteHandler.Delete)
	}

	records := api.Group("/income-expenses", authn.Require())
	{
		records.GET("", recordHandler.List)
		records.POST("", recordHandler.Create)
		records.GET("/summary", recordHandler.Summary)
		records.GET("/categories", recordHandler.Categories)
		records.GET("/:id", recordHandler.Get)
		records.PUT("/:id", recordHandler.Update)
		records.DELETE("/:id", recordHandler.Delete)
	}

	return router
}
