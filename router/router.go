package router

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/JerryLinyx/NewsSummarizer/config"
	"github.com/JerryLinyx/NewsSummarizer/controllers"
	"github.com/JerryLinyx/NewsSummarizer/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the handlers' collaborators.
type Deps struct {
	Articles controllers.ArticleService
	DB       controllers.Pinger
	Logger   *slog.Logger
}

func InitRouter(cfg *config.Config, deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(middlewares.RequestID(), middlewares.RequestLogger(logger), gin.Recovery())

	allowedOrigins := cfg.App.AllowedOrigins
	if raw := os.Getenv("FRONTEND_ORIGINS"); raw != "" {
		allowedOrigins = splitOrigins(raw)
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	allowCreds := true
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		allowCreds = false
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middlewares.RequestIDHeader},
		AllowCredentials: allowCreds,
		MaxAge:           12 * time.Hour,
	}))

	health := controllers.NewHealthController(cfg.App.Name, cfg.App.Version, deps.DB)
	articles := controllers.NewArticleController(deps.Articles)

	r.GET("/", health.Welcome)

	api := r.Group(cfg.App.Prefix)
	api.GET("/health", health.Health)
	api.GET("/articles", articles.GetArticles)
	api.GET("/articles/:id", articles.GetArticleByID)
	api.GET("/articles/category/:category", articles.GetArticlesByCategory)
	api.GET("/categories", articles.GetCategories)

	write := api.Group("")
	if cfg.Auth.Enabled() {
		auth := controllers.NewAuthController(cfg.Auth)
		api.POST("/auth/login", auth.Login)
		write.Use(middlewares.AuthMiddleware(cfg.Auth.JWTSecret))
	}
	{
		write.POST("/articles", articles.CreateArticle)
		write.DELETE("/articles/:id", articles.DeleteArticle)
	}

	return r
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, v := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
